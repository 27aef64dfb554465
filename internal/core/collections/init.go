// Package collections registers the sheet-backed collections with the core
// registry. Import it for side effects.
package collections

func init() {
	registerCustomers()
	registerItems()
	registerStudents()
}
