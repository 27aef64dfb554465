package core

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/sheetsync/internal/sheet"
)

// Options configures a Service.
type Options struct {
	// Stores maps collection keys to their backing sheet.
	Stores map[string]SheetStore

	Cache   SnapshotCache // optional
	Auditor Auditor       // optional, defaults to NopAuditor
	Guard   *MutationGuard

	// Clock defaults to time.Now.
	Clock func() time.Time

	// NoticeDuration defaults to DefaultNoticeDuration.
	NoticeDuration time.Duration

	// MutationTimeout bounds a whole plan. Defaults to DefaultMutationTimeout.
	MutationTimeout time.Duration
}

// DefaultMutationTimeout is the maximum duration of one mutation plan.
const DefaultMutationTimeout = 2 * time.Minute

// Service provides the record operations behind every frontend.
type Service struct {
	stores         map[string]SheetStore
	cache          SnapshotCache
	auditor        Auditor
	guard          *MutationGuard
	clock          func() time.Time
	ids            IDGenerator
	noticeDuration time.Duration
	timeout        time.Duration
}

// NewService creates a new Service instance.
//
// Every store must belong to a registered collection, and every parent
// collection needs a store for its children.
func NewService(opts Options) (*Service, error) {
	for key, store := range opts.Stores {
		def, ok := Get(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, key)
		}
		if store == nil {
			return nil, fmt.Errorf("no store for collection %s", key)
		}
		if def.HasChildren() {
			if _, ok := opts.Stores[def.ChildKey]; !ok {
				return nil, fmt.Errorf("collection %s links to %s, which has no store", key, def.ChildKey)
			}
		}
	}

	s := &Service{
		stores:         opts.Stores,
		cache:          opts.Cache,
		auditor:        opts.Auditor,
		guard:          opts.Guard,
		clock:          opts.Clock,
		noticeDuration: opts.NoticeDuration,
		timeout:        opts.MutationTimeout,
	}
	if s.auditor == nil {
		s.auditor = NopAuditor{}
	}
	if s.guard == nil {
		s.guard = NewMutationGuard(0)
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.noticeDuration <= 0 {
		s.noticeDuration = DefaultNoticeDuration
	}
	if s.timeout <= 0 {
		s.timeout = DefaultMutationTimeout
	}
	s.ids = IDGenerator{Now: s.clock}
	return s, nil
}

func (s *Service) now() time.Time {
	return s.clock()
}

// mutationContext detaches a plan from its caller so a dropped request does
// not stop it halfway. The plan is still bounded by the mutation timeout.
func (s *Service) mutationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
}

// Guard returns the mutation guard, for shutdown and status reporting.
func (s *Service) Guard() *MutationGuard {
	return s.guard
}

// Collections returns the registered collections that have a store.
func (s *Service) Collections() []CollectionInfo {
	var infos []CollectionInfo
	for _, def := range All() {
		if _, ok := s.stores[def.Info.Key]; ok {
			infos = append(infos, def.Info)
		}
	}
	return infos
}

// Definition returns the definition and store for key.
func (s *Service) Definition(key string) (CollectionDefinition, SheetStore, error) {
	def, ok := Get(key)
	if !ok {
		return CollectionDefinition{}, nil, fmt.Errorf("%w: %s", ErrUnknownCollection, key)
	}
	store, ok := s.stores[key]
	if !ok {
		return CollectionDefinition{}, nil, fmt.Errorf("%w: %s has no store", ErrUnknownCollection, key)
	}
	return def, store, nil
}

// fresh reads the whole collection, bypassing the cache. Every mutation step
// that needs a handle calls this immediately before it writes.
func fresh(ctx context.Context, store SheetStore) (*sheet.Snapshot, error) {
	return store.ReadAll(ctx)
}

// orderValues lays out fields in column order. Absent fields are sent as "".
func orderValues(columns []string, fields map[string]string) []any {
	values := make([]any, len(columns))
	for i, col := range columns {
		values[i] = fields[col]
	}
	return values
}
