// Package core provides the record synchronisation logic for sheet-backed
// registries. This package has no UI dependencies and can be used by any frontend.
package core

import (
	"context"
	"errors"

	"github.com/JonMunkholm/sheetsync/internal/sheet"
)

// ErrUnknownCollection is returned for collection keys that are not registered
// or have no store configured.
var ErrUnknownCollection = errors.New("unknown collection")

// ErrNotImportable is returned when importing into a collection that does not
// accept imports.
var ErrNotImportable = errors.New("collection does not accept imports")

// SheetStore is the row store behind one collection.
// Satisfied by *sheet.Client.
type SheetStore interface {
	Collection() string
	ReadAll(ctx context.Context) (*sheet.Snapshot, error)
	Create(ctx context.Context, values []any) error
	Update(ctx context.Context, handle int, values []any) error
	Delete(ctx context.Context, handle int) error
}

var _ SheetStore = (*sheet.Client)(nil)

// CollectionInfo contains display information about a collection.
type CollectionInfo struct {
	Key   string `json:"key"`   // Unique identifier: "customers"
	Group string `json:"group"` // Registry the collection belongs to: "Customers", "Students"
	Label string `json:"label"` // Display name: "Customers"
}

// ItemColumns names the columns of a line-item collection that hold the
// LineItem attributes.
type ItemColumns struct {
	Code        string
	Description string
	Qty         string
	Rate        string
	Amount      string
}

// Messages are the notice texts shown after a mutation.
type Messages struct {
	CreateOK   string
	CreateFail string
	UpdateOK   string
	UpdateFail string
	DeleteOK   string
	DeleteFail string
	ImportOK   string
	ImportFail string
}

func (m Messages) withDefaults() Messages {
	set := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	set(&m.CreateOK, "Record saved.")
	set(&m.CreateFail, "Failed to save record.")
	set(&m.UpdateOK, "Record updated.")
	set(&m.UpdateFail, "Failed to update record.")
	set(&m.DeleteOK, "Record deleted.")
	set(&m.DeleteFail, "Failed to delete record.")
	set(&m.ImportOK, "Rows imported.")
	set(&m.ImportFail, "Failed to import rows.")
	return m
}

// CollectionDefinition contains everything needed to read and mutate a collection.
type CollectionDefinition struct {
	Info CollectionInfo

	// Columns is the fixed column order of the backing sheet. When empty the
	// header row of the latest read is authoritative.
	Columns []string

	// ListColumns are the columns shown in list views. Defaults to all columns.
	ListColumns []string

	// Required fields must be non-blank on create and update.
	Required []string

	// KeyField identifies a row across reads. Empty means rows are compared by
	// their full value list when checking for stale handles.
	KeyField string

	// IDPrefix is prepended to generated identifiers: "CUST" -> CUST-<millis>.
	IDPrefix string

	// LinkField holds the comma-joined identifiers of child rows stored in
	// the ChildKey collection.
	LinkField string
	ChildKey  string

	// ParentField is the back-reference column on child collections.
	ParentField string

	// Items maps LineItem attributes onto child columns.
	Items ItemColumns

	// Importable collections accept spreadsheet imports. Collections that take
	// part in a relationship are not importable.
	Importable bool

	Messages Messages
}

// HasChildren reports whether the collection links to a child collection.
func (d CollectionDefinition) HasChildren() bool {
	return d.LinkField != "" && d.ChildKey != ""
}

// Display returns the columns for list views.
func (d CollectionDefinition) Display(headers []string) []string {
	if len(d.ListColumns) > 0 {
		return d.ListColumns
	}
	if len(d.Columns) > 0 {
		return d.Columns
	}
	return headers
}

// columnsFor returns the authoritative column order given the headers of a
// fresh read.
func (d CollectionDefinition) columnsFor(headers []string) []string {
	if len(headers) > 0 {
		return headers
	}
	return d.Columns
}

// MutationResult is returned by every mutating operation.
type MutationResult struct {
	RecordID string     `json:"recordId,omitempty"`
	Notice   Notice     `json:"notice"`
	Plan     PlanReport `json:"plan"`
}
