package sheet

import (
	"testing"
)

func TestMapRows_HandlesAndCount(t *testing.T) {
	table := [][]string{
		{"Name", "City"},
		{"Asha", "Pune"},
		{"Ravi", "Delhi"},
		{"Meera", "Goa"},
	}

	snap := MapRows("Records", table)

	if snap.Len() != len(table)-1 {
		t.Fatalf("Len() = %d, want %d", snap.Len(), len(table)-1)
	}
	for i, rec := range snap.Records {
		if rec.Handle != i+1 {
			t.Errorf("Records[%d].Handle = %d, want %d", i, rec.Handle, i+1)
		}
		if rec.Rows != 3 {
			t.Errorf("Records[%d].Rows = %d, want 3", i, rec.Rows)
		}
	}
	if got := snap.Records[1].Value("City"); got != "Delhi" {
		t.Errorf("Records[1].City = %q, want %q", got, "Delhi")
	}
}

func TestMapRows_Degenerate(t *testing.T) {
	tests := []struct {
		name  string
		table [][]string
	}{
		{"nil payload", nil},
		{"empty payload", [][]string{}},
		{"header only", [][]string{{"Name", "City"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := MapRows("Records", tt.table)
			if snap.Len() != 0 {
				t.Errorf("Len() = %d, want 0", snap.Len())
			}
		})
	}
}

func TestMapRows_ShortAndLongRows(t *testing.T) {
	snap := MapRows("Records", [][]string{
		{"A", "B", "C"},
		{"1"},
		{"1", "2", "3", "extra"},
	})

	short := snap.Records[0]
	if _, ok := short.Get("B"); ok {
		t.Error("short row: B should be absent")
	}
	if _, ok := short.Get("C"); ok {
		t.Error("short row: C should be absent")
	}
	if got := short.Values(); len(got) != 3 || got[0] != "1" || got[1] != "" || got[2] != "" {
		t.Errorf("short row Values() = %q, want [1  ]", got)
	}

	long := snap.Records[1]
	if len(long.Fields) != 3 {
		t.Errorf("long row has %d fields, want 3", len(long.Fields))
	}
}

func TestRecord_SearchText(t *testing.T) {
	snap := MapRows("Customers", [][]string{
		{"Customer Name", "Address"},
		{"Acme", "12 Main St"},
		{"Solo"},
	})

	if got, want := snap.Records[0].SearchText(), "Acme 12 Main St 1"; got != want {
		t.Errorf("SearchText() = %q, want %q", got, want)
	}
	if got, want := snap.Records[1].SearchText(), "Solo 2"; got != want {
		t.Errorf("SearchText() = %q, want %q", got, want)
	}
}

func TestSnapshot_Find(t *testing.T) {
	snap := MapRows("Items", [][]string{
		{"Item ID", "Item Code"},
		{"ITEM-1-0", "A"},
		{"ITEM-1-1", "B"},
	})

	rec, ok := snap.Find("Item ID", "ITEM-1-1")
	if !ok {
		t.Fatal("Find() did not find ITEM-1-1")
	}
	if rec.Handle != 2 {
		t.Errorf("Handle = %d, want 2", rec.Handle)
	}
	if _, ok := snap.Find("Item ID", "ITEM-9-9"); ok {
		t.Error("Find() found a missing id")
	}
}

func TestSnapshot_Verify(t *testing.T) {
	original := MapRows("Customers", [][]string{
		{"Customer ID", "Customer Name"},
		{"CUST-1", "Acme"},
		{"CUST-2", "Globex"},
	})
	target := original.Records[1]

	tests := []struct {
		name      string
		fresh     [][]string
		keyField  string
		wantStale bool
	}{
		{
			name:     "unchanged by key",
			fresh:    [][]string{{"Customer ID", "Customer Name"}, {"CUST-1", "Acme"}, {"CUST-2", "Globex"}},
			keyField: "Customer ID",
		},
		{
			name:     "edited non-key field is not stale",
			fresh:    [][]string{{"Customer ID", "Customer Name"}, {"CUST-1", "Acme"}, {"CUST-2", "Globex Corp"}},
			keyField: "Customer ID",
		},
		{
			name:      "edited field is stale without key",
			fresh:     [][]string{{"Customer ID", "Customer Name"}, {"CUST-1", "Acme"}, {"CUST-2", "Globex Corp"}},
			wantStale: true,
		},
		{
			name:      "row removed before target",
			fresh:     [][]string{{"Customer ID", "Customer Name"}, {"CUST-2", "Globex"}},
			keyField:  "Customer ID",
			wantStale: true,
		},
		{
			name:      "row appended",
			fresh:     [][]string{{"Customer ID", "Customer Name"}, {"CUST-1", "Acme"}, {"CUST-2", "Globex"}, {"CUST-3", "Initech"}},
			keyField:  "Customer ID",
			wantStale: true,
		},
		{
			name:      "different row at same handle",
			fresh:     [][]string{{"Customer ID", "Customer Name"}, {"CUST-1", "Acme"}, {"CUST-9", "Umbrella"}},
			keyField:  "Customer ID",
			wantStale: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapRows("Customers", tt.fresh).Verify(target, tt.keyField)
			if tt.wantStale {
				if !IsStale(err) {
					t.Fatalf("Verify() = %v, want StaleHandleError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify() = %v, want nil", err)
			}
		})
	}
}

func TestSnapshot_Table(t *testing.T) {
	in := [][]string{{"A"}, {"1"}}
	snap := MapRows("X", in)

	out := snap.Table()
	out[1][0] = "changed"
	if snap.Table()[1][0] != "1" {
		t.Error("Table() returned shared rows")
	}
}
