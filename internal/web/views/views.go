// Package views renders the HTML pages of the web UI as templ components.
// The *_templ.go files are generated from the .templ sources.
package views

//go:generate templ generate

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/sheetsync/internal/sheet"
)

// Shell holds the settings every page needs.
type Shell struct {
	Title      string
	Active     string // collection key of the current nav entry
	CloseDelay time.Duration
}

// ListData is one searchable collection table.
type ListData struct {
	Heading    string
	Action     string // form action of the search box
	Columns    []string
	Records    []sheet.Record
	Total      int
	Search     string
	Empty      string // shown when no record matches
	DetailPath string // rows link to DetailPath/<handle>
	ExportKey  string
}

// FormField is one labelled input.
type FormField struct {
	Name     string // column label, sent as the field key
	Label    string
	Type     string
	Required bool
	Value    string
}

func (f FormField) label() string {
	if f.Label == "" {
		return f.Name
	}
	return f.Label
}

func (f FormField) inputType() string {
	if f.Type == "" {
		return "text"
	}
	return f.Type
}

// DetailData is the edit view of one record.
type DetailData struct {
	Heading   string
	BackPath  string
	UpdateURL string
	DeleteURL string // empty hides the delete button

	// Rows and Original identify the record as it was read; they are sent
	// back with every mutation so the server can detect a stale handle.
	Rows     int
	Original string

	ReadOnly []FormField
	Fields   []FormField

	ShowItems   bool
	ItemColumns []string
	Items       []sheet.Record
}

// Stack renders components one after another.
func Stack(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range components {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
