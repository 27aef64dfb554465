package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX returns the rows of the first worksheet in r.
func ReadXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, errors.New("workbook has no worksheets")
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", name, err)
	}
	return rows, nil
}

// ImportXLSX appends every data row of the workbook's first worksheet to the
// collection. Columns are matched by header label, ignoring case and
// surrounding whitespace; workbook columns the sheet does not have are
// ignored. Rows are appended one at a time and the first failure stops the
// import.
func (s *Service) ImportXLSX(ctx context.Context, key string, r io.Reader) (MutationResult, error) {
	def, store, err := s.Definition(key)
	if err != nil {
		return s.result(ctx, "import", nil, "", "", "Failed to import rows.", err)
	}
	msgs := def.Messages
	if !def.Importable {
		err := fmt.Errorf("%w: %s", ErrNotImportable, key)
		return s.result(ctx, "import", nil, "", msgs.ImportOK, msgs.ImportFail, err)
	}

	rows, err := ReadXLSX(r)
	if err != nil {
		return s.result(ctx, "import", nil, "", msgs.ImportOK, msgs.ImportFail, err)
	}
	if len(rows) < 2 {
		return s.result(ctx, "import", nil, "", msgs.ImportOK, msgs.ImportFail, errors.New("workbook has no data rows"))
	}
	header, data := rows[0], rows[1:]

	release, err := s.guard.Acquire(ctx, key)
	if err != nil {
		return s.result(ctx, "import", nil, "", msgs.ImportOK, msgs.ImportFail, err)
	}
	defer release()
	defer s.invalidate(ctx, store)

	runCtx, cancel := s.mutationContext(ctx)
	defer cancel()

	var columns []string
	plan := NewPlan("import " + key)
	plan.Add("read "+key+" headers", func(ctx context.Context) (string, error) {
		snap, err := fresh(ctx, store)
		if err != nil {
			return "", err
		}
		columns = def.columnsFor(snap.Headers)
		if matched := matchColumns(columns, header); len(matched) == 0 {
			return "", &ValidationError{Kind: UnknownField, Field: strings.Join(header, ", ")}
		}
		return fmt.Sprintf("%d columns", len(columns)), nil
	})
	for i, row := range data {
		plan.Add(fmt.Sprintf("append row %d", i+2), func(ctx context.Context) (string, error) {
			fields := rowFields(matchColumns(columns, header), row)
			if err := checkRequired(def, fields); err != nil {
				return "", err
			}
			return "", store.Create(ctx, orderValues(columns, fields))
		})
	}

	err = plan.Run(runCtx)
	s.audit(ctx, ActionImport, key, "", map[string]string{"rows": fmt.Sprint(len(data))}, plan, err)
	return s.result(ctx, "import", plan, "", msgs.ImportOK, msgs.ImportFail, err)
}

// matchColumns maps workbook column indexes to sheet column labels.
func matchColumns(columns, header []string) map[int]string {
	byName := make(map[string]string, len(columns))
	for _, col := range columns {
		byName[normalizeHeader(col)] = col
	}
	matched := make(map[int]string)
	for i, h := range header {
		if col, ok := byName[normalizeHeader(h)]; ok {
			matched[i] = col
		}
	}
	return matched
}

func rowFields(matched map[int]string, row []string) map[string]string {
	fields := make(map[string]string, len(matched))
	for i, col := range matched {
		if i < len(row) {
			fields[col] = strings.TrimSpace(row[i])
		}
	}
	return fields
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
