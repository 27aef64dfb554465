package core

import (
	"context"

	"github.com/JonMunkholm/sheetsync/internal/logging"
	"github.com/JonMunkholm/sheetsync/internal/sheet"
)

// SnapshotCache holds recent list snapshots. Only list reads consult it;
// mutations always scan the sheet.
type SnapshotCache interface {
	// Get returns the cached snapshot, or ok=false on a miss.
	Get(ctx context.Context, collection string) (snap *sheet.Snapshot, ok bool, err error)
	Set(ctx context.Context, snap *sheet.Snapshot) error
	Invalidate(ctx context.Context, collections ...string) error
}

// listSnapshot reads a collection for display, through the cache when one is
// configured. Cache errors degrade to a direct read.
func (s *Service) listSnapshot(ctx context.Context, store SheetStore) (*sheet.Snapshot, error) {
	if s.cache == nil {
		return store.ReadAll(ctx)
	}

	logger := logging.FromContext(ctx)
	name := store.Collection()

	snap, ok, err := s.cache.Get(ctx, name)
	if err != nil {
		logger.Warn("snapshot cache read failed", "collection", name, "error", err)
	} else if ok {
		return snap, nil
	}

	snap, err = store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, snap); err != nil {
		logger.Warn("snapshot cache write failed", "collection", name, "error", err)
	}
	return snap, nil
}

// invalidate drops cached snapshots after a mutation, successful or not.
func (s *Service) invalidate(ctx context.Context, stores ...SheetStore) {
	if s.cache == nil || len(stores) == 0 {
		return
	}
	names := make([]string, len(stores))
	for i, st := range stores {
		names[i] = st.Collection()
	}
	if err := s.cache.Invalidate(context.WithoutCancel(ctx), names...); err != nil {
		logging.FromContext(ctx).Warn("snapshot cache invalidation failed", "collections", names, "error", err)
	}
}
