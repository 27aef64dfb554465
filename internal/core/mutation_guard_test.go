package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMutationGuard_AcquireRelease(t *testing.T) {
	guard := NewMutationGuard(0)
	ctx := context.Background()

	if got := guard.ActiveCount(); got != 0 {
		t.Errorf("initial ActiveCount = %d, want 0", got)
	}

	release, err := guard.Acquire(ctx, "customers", "items")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if got := guard.ActiveCount(); got != 1 {
		t.Errorf("after Acquire, ActiveCount = %d, want 1", got)
	}
	if !guard.Busy("customers") || !guard.Busy("items") {
		t.Error("both keys should be busy while held")
	}
	if guard.Busy("students") {
		t.Error("students should not be busy")
	}

	release()
	release() // second call is a no-op

	if got := guard.ActiveCount(); got != 0 {
		t.Errorf("after release, ActiveCount = %d, want 0", got)
	}
	if guard.Busy("customers") {
		t.Error("customers should be free after release")
	}
}

func TestMutationGuard_BusyFailsFast(t *testing.T) {
	guard := NewMutationGuard(0)
	ctx := context.Background()

	release, err := guard.Acquire(ctx, "customers")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer release()

	_, err = guard.Acquire(ctx, "items", "customers")
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("second Acquire error = %v, want ErrBusy", err)
	}

	// The partially taken key must have been given back.
	if guard.Busy("items") {
		t.Error("items should be released after a failed Acquire")
	}
}

func TestMutationGuard_WaitsUpToMaxWait(t *testing.T) {
	guard := NewMutationGuard(100 * time.Millisecond)
	ctx := context.Background()

	release, err := guard.Acquire(ctx, "students")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer release()

	start := time.Now()
	_, err = guard.Acquire(ctx, "students")
	elapsed := time.Since(start)

	if !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	if elapsed < 80*time.Millisecond {
		t.Errorf("returned too quickly: %v", elapsed)
	}
}

func TestMutationGuard_WaiterGetsSlot(t *testing.T) {
	guard := NewMutationGuard(time.Second)
	ctx := context.Background()

	release, err := guard.Acquire(ctx, "students")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var waitErr error
	go func() {
		defer wg.Done()
		r, err := guard.Acquire(ctx, "students")
		waitErr = err
		if err == nil {
			r()
		}
	}()

	time.Sleep(20 * time.Millisecond)
	release()
	wg.Wait()

	if waitErr != nil {
		t.Errorf("waiting Acquire error = %v, want nil", waitErr)
	}
}

func TestMutationGuard_ContextCancellation(t *testing.T) {
	guard := NewMutationGuard(5 * time.Second)

	release, err := guard.Acquire(context.Background(), "customers")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = guard.Acquire(ctx, "customers")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMutationGuard_WaitForDrain(t *testing.T) {
	guard := NewMutationGuard(0)

	release, err := guard.Acquire(context.Background(), "customers")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := guard.WaitForDrain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitForDrain with held slot = %v, want DeadlineExceeded", err)
	}

	release()
	if err := guard.WaitForDrain(context.Background()); err != nil {
		t.Errorf("WaitForDrain after release = %v, want nil", err)
	}
}

func TestMutationGuard_Status(t *testing.T) {
	guard := NewMutationGuard(0)
	release, err := guard.Acquire(context.Background(), "items", "customers", "items")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer release()

	st := guard.Status()
	if st.Active != 1 {
		t.Errorf("Active = %d, want 1", st.Active)
	}
	if len(st.Busy) != 2 || st.Busy[0] != "customers" || st.Busy[1] != "items" {
		t.Errorf("Busy = %v, want [customers items]", st.Busy)
	}
}
