package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/JonMunkholm/sheetsync/internal/sheet"
	"github.com/xuri/excelize/v2"
)

// ExportFormat is a supported download format.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ContentType returns the MIME type for the format.
func (f ExportFormat) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// ParseExportFormat accepts "csv" (default when blank) and "xlsx".
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Export reads the collection and writes it to w. Export always reads the
// sheet directly.
func (s *Service) Export(ctx context.Context, key string, format ExportFormat, w io.Writer) error {
	_, store, err := s.Definition(key)
	if err != nil {
		return err
	}
	snap, err := fresh(ctx, store)
	if err != nil {
		return fmt.Errorf("export %s: %w", key, err)
	}
	if format == FormatXLSX {
		return ExportXLSX(w, snap)
	}
	return ExportCSV(w, snap)
}

// exportRows returns the header row followed by each record's values.
func exportRows(snap *sheet.Snapshot) [][]string {
	rows := make([][]string, 0, snap.Len()+1)
	rows = append(rows, snap.Headers)
	for _, rec := range snap.Records {
		rows = append(rows, rec.Values())
	}
	return rows
}

// ExportCSV writes the snapshot as CSV.
func ExportCSV(w io.Writer, snap *sheet.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(exportRows(snap)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ExportXLSX writes the snapshot as a single-sheet workbook named after the
// collection.
func ExportXLSX(w io.Writer, snap *sheet.Snapshot) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	name := snap.Collection
	if name == "" {
		name = "Sheet1"
	}
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("name worksheet: %w", err)
	}

	for i, row := range exportRows(snap) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
