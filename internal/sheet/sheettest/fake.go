// Package sheettest provides an in-memory implementation of the sheet RPC
// endpoint for tests and local development.
package sheettest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/JonMunkholm/sheetsync/internal/sheet"
)

// Call is one request received by the fake, in arrival order.
type Call struct {
	Fn         string
	Collection string
	RowID      int
	Data       []any
}

type table struct {
	headers []any
	rows    [][]any
}

type failure struct {
	fn         string
	collection string
	status     int
}

// Fake is a spreadsheet with named tabs served over the RPC convention.
type Fake struct {
	SheetID string

	mu       sync.Mutex
	tables   map[string]*table
	calls    []Call
	failures []failure
}

// New returns an empty fake for the spreadsheet id.
func New(sheetID string) *Fake {
	return &Fake{SheetID: sheetID, tables: make(map[string]*table)}
}

// NewServer starts an httptest server backed by a new Fake.
// The caller closes the server.
func NewServer(sheetID string) (*Fake, *httptest.Server) {
	f := New(sheetID)
	return f, httptest.NewServer(f)
}

// Seed creates (or replaces) a tab with headers and string rows.
func (f *Fake) Seed(collection string, headers []string, rows ...[]string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &table{headers: toAny(headers)}
	for _, r := range rows {
		t.rows = append(t.rows, toAny(r))
	}
	f.tables[collection] = t
}

// Rows returns the tab's data rows rendered as strings.
func (f *Fake) Rows(collection string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tables[collection]
	if !ok {
		return nil
	}
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = toStrings(r)
	}
	return out
}

// Calls returns a copy of the recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsFor returns the recorded calls matching fn (and collection when set).
func (f *Fake) CallsFor(fn, collection string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Fn == fn && (collection == "" || c.Collection == collection) {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls forgets recorded calls.
func (f *Fake) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// FailNext makes the next fn call on collection answer with status.
// An empty collection matches any tab.
func (f *Fake) FailNext(fn, collection string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, failure{fn: fn, collection: collection, status: status})
}

// ServeHTTP implements the RPC convention.
func (f *Fake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fn := q.Get("FN")
	name := q.Get("SHEETNAME")

	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Fn: fn, Collection: name}
	if raw := q.Get("ROWID"); raw != "" {
		call.RowID, _ = strconv.Atoi(raw)
	}
	if raw := q.Get("DATA"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &call.Data); err != nil {
			f.calls = append(f.calls, call)
			http.Error(w, "DATA is not a JSON array", http.StatusBadRequest)
			return
		}
	}
	f.calls = append(f.calls, call)

	if status, ok := f.takeFailure(fn, name); ok {
		http.Error(w, "injected failure", status)
		return
	}

	if q.Get("SHEETID") != f.SheetID {
		http.Error(w, "unknown spreadsheet", http.StatusNotFound)
		return
	}
	t, ok := f.tables[name]
	if !ok {
		http.Error(w, fmt.Sprintf("unknown sheet %q", name), http.StatusNotFound)
		return
	}

	switch fn {
	case sheet.FnReadAll:
		out := make([][]any, 0, len(t.rows)+1)
		out = append(out, t.headers)
		out = append(out, t.rows...)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)

	case sheet.FnCreate:
		t.rows = append(t.rows, call.Data)
		writeStatus(w, "created")

	case sheet.FnUpdate:
		if call.RowID < 1 || call.RowID > len(t.rows) {
			http.Error(w, "ROWID out of range", http.StatusBadRequest)
			return
		}
		t.rows[call.RowID-1] = call.Data
		writeStatus(w, "updated")

	case sheet.FnDelete:
		if call.RowID < 1 || call.RowID > len(t.rows) {
			http.Error(w, "ROWID out of range", http.StatusBadRequest)
			return
		}
		t.rows = append(t.rows[:call.RowID-1], t.rows[call.RowID:]...)
		writeStatus(w, "deleted")

	default:
		http.Error(w, fmt.Sprintf("unknown FN %q", fn), http.StatusBadRequest)
	}
}

func (f *Fake) takeFailure(fn, collection string) (int, bool) {
	for i, fl := range f.failures {
		if fl.fn == fn && (fl.collection == "" || fl.collection == collection) {
			f.failures = append(f.failures[:i], f.failures[i+1:]...)
			return fl.status, true
		}
	}
	return 0, false
}

func writeStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":%q}`, status)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func toStrings(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = sheet.CellString(v)
	}
	return out
}
