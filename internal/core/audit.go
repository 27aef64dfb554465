package core

import (
	"context"
	"time"

	"github.com/JonMunkholm/sheetsync/internal/logging"
	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionImport AuditAction = "import"
)

// AuditOutcome is the final state of the audited plan.
type AuditOutcome string

const (
	OutcomeSucceeded AuditOutcome = "succeeded"
	OutcomeFailed    AuditOutcome = "failed"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID         string            `json:"id"`
	PlanID     string            `json:"planId"`
	Action     AuditAction       `json:"action"`
	Collection string            `json:"collection"`
	RowKey     string            `json:"rowKey,omitempty"`
	RowData    map[string]string `json:"rowData,omitempty"`
	Steps      []StepReport      `json:"steps"`
	Outcome    AuditOutcome      `json:"outcome"`
	Error      string            `json:"error,omitempty"`
	IPAddress  string            `json:"ipAddress,omitempty"`
	UserAgent  string            `json:"userAgent,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// Auditor persists audit entries.
type Auditor interface {
	Record(ctx context.Context, entry AuditEntry) error
	Recent(ctx context.Context, limit int) ([]AuditEntry, error)
	// Prune deletes entries created before cutoff and reports how many went.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// NopAuditor discards entries.
type NopAuditor struct{}

func (NopAuditor) Record(context.Context, AuditEntry) error { return nil }

func (NopAuditor) Recent(context.Context, int) ([]AuditEntry, error) { return nil, nil }

func (NopAuditor) Prune(context.Context, time.Time) (int64, error) { return 0, nil }

// audit records the outcome of plan. Failures are logged and otherwise ignored.
func (s *Service) audit(ctx context.Context, action AuditAction, collection, rowKey string, rowData map[string]string, plan *Plan, runErr error) {
	ip, ua := RequestMeta(ctx)
	report := plan.Report()

	entry := AuditEntry{
		ID:         uuid.New().String(),
		PlanID:     plan.ID,
		Action:     action,
		Collection: collection,
		RowKey:     rowKey,
		RowData:    rowData,
		Steps:      report.Steps,
		Outcome:    OutcomeSucceeded,
		IPAddress:  ip,
		UserAgent:  ua,
		CreatedAt:  s.now().UTC(),
	}
	if runErr != nil {
		entry.Outcome = OutcomeFailed
		entry.Error = runErr.Error()
	}

	// Detached so a cancelled request still leaves a trail.
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.auditor.Record(auditCtx, entry); err != nil {
		logging.FromContext(ctx).Warn("audit record failed",
			"plan_id", plan.ID,
			"collection", collection,
			"error", err,
		)
	}
}

// RecentAudit returns the newest audit entries first.
func (s *Service) RecentAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.auditor.Recent(ctx, limit)
}
