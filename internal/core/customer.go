package core

import "strings"

// Collection keys.
const (
	CustomersKey = "customers"
	ItemsKey     = "items"
	StudentsKey  = "students"
)

// Customer and item column labels as they appear in the sheet header rows.
const (
	ColCustomerID    = "Customer ID"
	ColCustomerName  = "Customer Name"
	ColContactName   = "Contact Name"
	ColContactNumber = "Contact Number"
	ColDate          = "date"
	ColAddress       = "Address"
	ColItemIDs       = "Item ID's"

	ColItemID          = "Item ID"
	ColItemCode        = "Item Code"
	ColItemDescription = "Item Description"
	ColQty             = "Qty"
	ColRate            = "Rate"
	ColAmount          = "Amount"
)

// CustomerForm is the editable part of a customer row.
type CustomerForm struct {
	Name          string `json:"Customer Name"`
	ContactName   string `json:"Contact Name"`
	ContactNumber string `json:"Contact Number"`
	Date          string `json:"date"`
	Address       string `json:"Address"`
}

// Fields returns the form keyed by column label.
func (f CustomerForm) Fields() map[string]string {
	return map[string]string{
		ColCustomerName:  strings.TrimSpace(f.Name),
		ColContactName:   strings.TrimSpace(f.ContactName),
		ColContactNumber: strings.TrimSpace(f.ContactNumber),
		ColDate:          strings.TrimSpace(f.Date),
		ColAddress:       strings.TrimSpace(f.Address),
	}
}
