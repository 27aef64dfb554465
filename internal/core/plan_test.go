package core

import (
	"context"
	"errors"
	"testing"
)

func TestPlan_RunsInOrder(t *testing.T) {
	var order []string
	plan := NewPlan("test")
	for _, name := range []string{"a", "b", "c"} {
		plan.Add(name, func(ctx context.Context) (string, error) {
			order = append(order, name)
			return "done " + name, nil
		})
	}

	if err := plan.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("order = %v, want [a b c]", order)
	}
	if s, f, p := plan.Counts(); s != 3 || f != 0 || p != 0 {
		t.Errorf("Counts() = %d, %d, %d, want 3, 0, 0", s, f, p)
	}
	if plan.Steps[1].Note != "done b" {
		t.Errorf("Steps[1].Note = %q", plan.Steps[1].Note)
	}
	if plan.ID == "" {
		t.Error("plan ID is empty")
	}
}

func TestPlan_StopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	ran := 0
	plan := NewPlan("test")
	plan.Add("ok", func(ctx context.Context) (string, error) { ran++; return "", nil })
	plan.Add("fails", func(ctx context.Context) (string, error) { ran++; return "", boom })
	plan.Add("never", func(ctx context.Context) (string, error) { ran++; return "", nil })

	err := plan.Run(context.Background())

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("Run() error = %v, want *StepError", err)
	}
	if stepErr.Index != 1 || stepErr.Step != "fails" {
		t.Errorf("StepError = %+v", stepErr)
	}
	if !errors.Is(err, boom) {
		t.Error("StepError should unwrap to the step's error")
	}
	if ran != 2 {
		t.Errorf("ran %d steps, want 2", ran)
	}

	want := []StepState{StepSucceeded, StepFailed, StepPending}
	for i, s := range plan.Steps {
		if s.State != want[i] {
			t.Errorf("Steps[%d].State = %s, want %s", i, s.State, want[i])
		}
	}

	report := plan.Report()
	if report.Steps[1].Error != "boom" {
		t.Errorf("report error = %q, want boom", report.Steps[1].Error)
	}
}

func TestPlan_CancelledContextFailsNextStep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	plan := NewPlan("test")
	plan.Add("cancel", func(ctx context.Context) (string, error) { cancel(); return "", nil })
	plan.Add("after", func(ctx context.Context) (string, error) {
		t.Error("step after cancellation should not run")
		return "", nil
	})

	err := plan.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if plan.Steps[1].State != StepFailed {
		t.Errorf("Steps[1].State = %s, want failed", plan.Steps[1].State)
	}
}

func TestPlan_RunsOnce(t *testing.T) {
	plan := NewPlan("test")
	if err := plan.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if err := plan.Run(context.Background()); err == nil {
		t.Error("second Run() should fail")
	}
}
