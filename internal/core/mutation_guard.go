package core

// mutation_guard.go implements the busy flag for collection mutations.
//
// Each collection has a single slot. A multi-step mutation holds the slots of
// every collection it touches until its plan finishes, so two plans never
// interleave their handle lookups on the same sheet. When a slot is taken the
// caller waits up to maxWait (zero means not at all) and then fails with
// ErrBusy. There is no way to cancel a plan that holds a slot.

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrBusy is returned when another mutation holds the collection.
var ErrBusy = errors.New("another change to this collection is in progress")

// MutationGuard serialises mutations per collection key.
type MutationGuard struct {
	maxWait time.Duration

	mu     sync.Mutex
	slots  map[string]chan struct{}
	active int
}

// NewMutationGuard creates a guard. Callers wait at most maxWait for a busy
// collection; negative values are treated as zero.
func NewMutationGuard(maxWait time.Duration) *MutationGuard {
	if maxWait < 0 {
		maxWait = 0
	}
	return &MutationGuard{
		maxWait: maxWait,
		slots:   make(map[string]chan struct{}),
	}
}

func (g *MutationGuard) slot(key string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()

	ch, ok := g.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		g.slots[key] = ch
	}
	return ch
}

// Acquire takes the slots for every key, in sorted order.
// On success the returned release func must be called exactly once.
func (g *MutationGuard) Acquire(ctx context.Context, keys ...string) (release func(), err error) {
	keys = uniqueSorted(keys)

	var held []chan struct{}
	releaseHeld := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i]
		}
	}

	for _, key := range keys {
		ch := g.slot(key)
		if err := g.take(ctx, ch); err != nil {
			releaseHeld()
			return nil, err
		}
		held = append(held, ch)
	}

	g.mu.Lock()
	g.active++
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			g.active--
			g.mu.Unlock()
			releaseHeld()
		})
	}, nil
}

func (g *MutationGuard) take(ctx context.Context, ch chan struct{}) error {
	select {
	case ch <- struct{}{}:
		return nil
	default:
	}

	if g.maxWait == 0 {
		return ErrBusy
	}

	waitCtx, cancel := context.WithTimeout(ctx, g.maxWait)
	defer cancel()

	select {
	case ch <- struct{}{}:
		return nil
	case <-waitCtx.Done():
		// Check if original context was cancelled vs timeout
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrBusy
	}
}

// Busy reports whether key is currently held.
func (g *MutationGuard) Busy(key string) bool {
	ch := g.slot(key)
	return len(ch) > 0
}

// ActiveCount returns the number of mutations in progress.
func (g *MutationGuard) ActiveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// WaitForDrain blocks until no mutation is in progress or ctx is done.
// Used for graceful shutdown so plans finish before termination.
func (g *MutationGuard) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if g.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// GuardStatus is a snapshot of the guard for monitoring.
type GuardStatus struct {
	Active int      `json:"active"`
	Busy   []string `json:"busy"`
}

// Status returns the keys currently held.
func (g *MutationGuard) Status() GuardStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := GuardStatus{Active: g.active, Busy: []string{}}
	for key, ch := range g.slots {
		if len(ch) > 0 {
			st.Busy = append(st.Busy, key)
		}
	}
	sort.Strings(st.Busy)
	return st
}

func uniqueSorted(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
