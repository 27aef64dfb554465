package sheet

import (
	"strconv"
	"strings"
)

// Record is one data row keyed by header label.
//
// Handle is the row's 1-based offset among data rows and Rows the data-row
// count of the snapshot it came from. Neither is persisted.
type Record struct {
	Handle  int               `json:"handle"`
	Rows    int               `json:"rows"`
	Fields  map[string]string `json:"fields"`
	Columns []string          `json:"-"`
}

// Get returns the value for field and whether the row had that cell.
func (r Record) Get(field string) (string, bool) {
	v, ok := r.Fields[field]
	return v, ok
}

// Value returns the value for field, or "" when the cell is absent.
func (r Record) Value(field string) string {
	return r.Fields[field]
}

// Values returns the row's values in column order. Absent cells are "".
func (r Record) Values() []string {
	out := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		out[i] = r.Fields[col]
	}
	return out
}

// SearchText is the space-joined string of every value, the handle included.
func (r Record) SearchText() string {
	parts := make([]string, 0, len(r.Columns)+1)
	for _, col := range r.Columns {
		if v, ok := r.Fields[col]; ok {
			parts = append(parts, v)
		}
	}
	parts = append(parts, strconv.Itoa(r.Handle))
	return strings.Join(parts, " ")
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	fields := make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	r.Fields = fields
	return r
}

// Snapshot is the mapped result of one full-collection read.
type Snapshot struct {
	Collection string
	Headers    []string
	Records    []Record

	table [][]string
}

// MapRows converts a header row plus data rows into records.
//
// Row 0 holds the header labels. Each following row at zero-based offset i
// becomes a record with handle i+1. Short rows leave their trailing fields
// absent; cells past the header width are ignored.
func MapRows(collection string, table [][]string) *Snapshot {
	snap := &Snapshot{Collection: collection, table: table}
	if len(table) == 0 {
		return snap
	}

	snap.Headers = append([]string(nil), table[0]...)
	data := table[1:]
	snap.Records = make([]Record, len(data))

	for i, row := range data {
		fields := make(map[string]string, len(snap.Headers))
		for j, header := range snap.Headers {
			if j >= len(row) {
				break
			}
			fields[header] = row[j]
		}
		snap.Records[i] = Record{
			Handle:  i + 1,
			Rows:    len(data),
			Fields:  fields,
			Columns: snap.Headers,
		}
	}
	return snap
}

// Len returns the number of data rows.
func (s *Snapshot) Len() int {
	return len(s.Records)
}

// Table returns the raw header + data rows the snapshot was mapped from.
func (s *Snapshot) Table() [][]string {
	out := make([][]string, len(s.table))
	for i, row := range s.table {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// At returns the record at handle.
func (s *Snapshot) At(handle int) (Record, bool) {
	if handle < 1 || handle > len(s.Records) {
		return Record{}, false
	}
	return s.Records[handle-1], true
}

// Find returns the first record whose field equals value.
func (s *Snapshot) Find(field, value string) (Record, bool) {
	for _, rec := range s.Records {
		if v, ok := rec.Fields[field]; ok && v == value {
			return rec, true
		}
	}
	return Record{}, false
}

// Verify checks that r's handle still addresses the same row in s.
//
// With keyField set the rows are compared by that field only; otherwise every
// value must match.
func (s *Snapshot) Verify(r Record, keyField string) error {
	stale := func(reason string) error {
		return &StaleHandleError{Collection: s.Collection, Handle: r.Handle, Reason: reason}
	}

	current, ok := s.At(r.Handle)
	if !ok {
		return stale("row no longer exists (" + strconv.Itoa(s.Len()) + " rows)")
	}
	if r.Rows != 0 && r.Rows != s.Len() {
		return stale("row count changed from " + strconv.Itoa(r.Rows) + " to " + strconv.Itoa(s.Len()))
	}

	if keyField != "" {
		if current.Value(keyField) != r.Value(keyField) {
			return stale(keyField + " changed")
		}
		return nil
	}

	for _, col := range current.Columns {
		if current.Value(col) != r.Value(col) {
			return stale(col + " changed")
		}
	}
	for field, v := range r.Fields {
		if current.Value(field) != v {
			return stale(field + " changed")
		}
	}
	return nil
}
