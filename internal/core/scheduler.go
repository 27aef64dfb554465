package core

import (
	"context"
	"log/slog"
	"time"
)

// RetentionConfig controls how long audit entries are kept.
type RetentionConfig struct {
	MaxAge        time.Duration // entries older than this are pruned
	CheckInterval time.Duration // how often the pruner runs
}

// StartAuditRetention prunes old audit entries once at start and then every
// CheckInterval until ctx is cancelled. Failures are logged and retried on
// the next tick.
func (s *Service) StartAuditRetention(ctx context.Context, cfg RetentionConfig) {
	slog.Info("audit retention started", "max_age", cfg.MaxAge, "interval", cfg.CheckInterval)

	s.runRetentionJob(ctx, cfg.MaxAge)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit retention stopped")
			return
		case <-ticker.C:
			s.runRetentionJob(ctx, cfg.MaxAge)
		}
	}
}

func (s *Service) runRetentionJob(ctx context.Context, maxAge time.Duration) {
	start := time.Now()
	pruned, err := s.PruneAudit(ctx, maxAge)
	if err != nil {
		slog.Error("audit prune failed", "error", err)
		return
	}
	slog.Info("pruned audit log entries",
		"entries_pruned", pruned,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// PruneAudit deletes audit entries older than maxAge.
func (s *Service) PruneAudit(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.auditor.Prune(ctx, s.now().Add(-maxAge))
}
