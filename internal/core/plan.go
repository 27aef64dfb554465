package core

// plan.go implements the step runner used for multi-step mutations.
//
// A Plan is an ordered list of steps executed one at a time. Each step either
// succeeds or fails; the first failure stops the plan and every later step
// stays pending. Completed steps are never undone, so a failed plan may leave
// partial writes behind. Steps share state through the closures that build
// them, which is how a step consumes what an earlier one produced.

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/sheetsync/internal/logging"
	"github.com/google/uuid"
)

// StepState is the lifecycle state of a single step.
type StepState string

const (
	StepPending   StepState = "pending"
	StepSucceeded StepState = "succeeded"
	StepFailed    StepState = "failed"
)

// StepFunc performs one step. The returned note is kept on the step.
type StepFunc func(ctx context.Context) (note string, err error)

// Step is one unit of a plan.
type Step struct {
	Name  string
	State StepState
	Note  string
	Err   error

	run StepFunc
}

// StepError is returned by Plan.Run when a step fails.
type StepError struct {
	Plan  string
	Step  string
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %d (%s): %v", e.Plan, e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Plan is an ordered list of steps run by a single goroutine.
type Plan struct {
	ID    string
	Name  string
	Steps []*Step

	ran bool
}

// NewPlan returns an empty plan with a fresh ID.
func NewPlan(name string) *Plan {
	return &Plan{ID: uuid.New().String(), Name: name}
}

// Add appends a pending step.
func (p *Plan) Add(name string, fn StepFunc) {
	p.Steps = append(p.Steps, &Step{Name: name, State: StepPending, run: fn})
}

// Run executes the steps in order and stops at the first failure.
// A plan runs at most once.
func (p *Plan) Run(ctx context.Context) error {
	if p.ran {
		return fmt.Errorf("%s: plan already ran", p.Name)
	}
	p.ran = true

	logger := logging.WithFields(ctx, "plan_id", p.ID, "plan", p.Name)
	start := time.Now()

	for i, step := range p.Steps {
		err := ctx.Err()
		if err == nil {
			step.Note, err = step.run(ctx)
		}
		if err != nil {
			step.State = StepFailed
			step.Err = err
			logger.Error("plan step failed",
				"step", step.Name,
				"index", i,
				"error", err,
				"pending", len(p.Steps)-i-1,
			)
			return &StepError{Plan: p.Name, Step: step.Name, Index: i, Err: err}
		}

		step.State = StepSucceeded
		logger.Debug("plan step succeeded", "step", step.Name, "index", i, "note", step.Note)
	}

	logger.Info("plan completed",
		"steps", len(p.Steps),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Counts returns how many steps are in each state.
func (p *Plan) Counts() (succeeded, failed, pending int) {
	for _, s := range p.Steps {
		switch s.State {
		case StepSucceeded:
			succeeded++
		case StepFailed:
			failed++
		default:
			pending++
		}
	}
	return succeeded, failed, pending
}

// StepReport is the JSON view of a step.
type StepReport struct {
	Name  string    `json:"name"`
	State StepState `json:"state"`
	Note  string    `json:"note,omitempty"`
	Error string    `json:"error,omitempty"`
}

// PlanReport is the JSON view of a plan.
type PlanReport struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Steps []StepReport `json:"steps"`
}

// Report summarises the plan's current state.
func (p *Plan) Report() PlanReport {
	r := PlanReport{ID: p.ID, Name: p.Name, Steps: make([]StepReport, len(p.Steps))}
	for i, s := range p.Steps {
		sr := StepReport{Name: s.Name, State: s.State, Note: s.Note}
		if s.Err != nil {
			sr.Error = s.Err.Error()
		}
		r.Steps[i] = sr
	}
	return r
}
