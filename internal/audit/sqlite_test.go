package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonMunkholm/sheetsync/internal/core"
)

func TestSQLite_RecordRecent(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	entries := []core.AuditEntry{
		{
			ID:         "a1",
			PlanID:     "p1",
			Action:     core.ActionCreate,
			Collection: "customers",
			RowKey:     "CUST-1",
			RowData:    map[string]string{"Customer Name": "Acme"},
			Steps:      []core.StepReport{{Name: "create customer CUST-1", State: core.StepSucceeded}},
			Outcome:    core.OutcomeSucceeded,
			CreatedAt:  base,
		},
		{
			ID:         "a2",
			PlanID:     "p2",
			Action:     core.ActionDelete,
			Collection: "customers",
			Steps: []core.StepReport{
				{Name: "verify customers row 1", State: core.StepFailed, Error: "stale"},
				{Name: "delete customer CUST-1", State: core.StepPending},
			},
			Outcome:   core.OutcomeFailed,
			Error:     "stale",
			IPAddress: "10.0.0.1",
			CreatedAt: base.Add(time.Minute),
		},
	}
	for _, e := range entries {
		if err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record(%s) error = %v", e.ID, err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent() returned %d entries, want 2", len(got))
	}
	if got[0].ID != "a2" || got[1].ID != "a1" {
		t.Errorf("order = %s, %s, want a2, a1", got[0].ID, got[1].ID)
	}
	if got[0].Outcome != core.OutcomeFailed || len(got[0].Steps) != 2 || got[0].Steps[1].State != core.StepPending {
		t.Errorf("entry a2 = %+v", got[0])
	}
	if got[1].RowData["Customer Name"] != "Acme" {
		t.Errorf("row data = %v", got[1].RowData)
	}
	if !got[1].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got[1].CreatedAt, base)
	}

	limited, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent(1) error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Recent(1) returned %d entries", len(limited))
	}
}

func TestSQLite_Prune(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	cutoff := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, at := range []time.Time{
		cutoff.Add(-48 * time.Hour),
		cutoff.Add(-500 * time.Millisecond),
		cutoff,
		cutoff.Add(time.Hour),
	} {
		e := core.AuditEntry{
			ID:         string(rune('a' + i)),
			PlanID:     "p",
			Action:     core.ActionUpdate,
			Collection: "students",
			Steps:      []core.StepReport{},
			Outcome:    core.OutcomeSucceeded,
			CreatedAt:  at,
		}
		if err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record(%s) error = %v", e.ID, err)
		}
	}

	n, err := store.Prune(ctx, cutoff)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Prune() removed %d entries, want 2", n)
	}

	left, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(left) != 2 || left[0].ID != "d" || left[1].ID != "c" {
		t.Errorf("remaining entries = %+v, want d, c", left)
	}
}
