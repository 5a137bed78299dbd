// Package ledger owns the canonical transaction sequence and its
// mutation protocol. The store is the single writer; every other
// component works from read-only snapshots.
package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"pulseledger/internal/core"
	"pulseledger/internal/events"
	applog "pulseledger/internal/log"

	"github.com/google/uuid"
)

// Gateway is the persistence collaborator: load once at startup, save
// the full set after each mutation. Saves are best-effort; the
// in-memory ledger stays the source of truth for the session.
type Gateway interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Save(ctx context.Context, items []core.Transaction) error
}

// Notifier receives a mutation event after each ledger change. May be
// nil; publishing is best-effort like persistence.
type Notifier interface {
	Publish(ctx context.Context, event *events.LedgerEvent) error
}

// ErrAlreadyInitialized is returned when Initialize is called twice;
// the uninitialized-to-ready transition fires at most once per process.
var ErrAlreadyInitialized = errors.New("ledger: store already initialized")

const defaultSaveTimeout = 5 * time.Second

// Store holds the ordered transaction set, newest-inserted-first.
// Mutations are serialized through an internal mutex, the Go analog of
// the single update thread the ledger model assumes.
type Store struct {
	mu          sync.Mutex
	items       []core.Transaction
	revision    uint64
	initialized bool

	gateway  Gateway
	notifier Notifier
	logger   *applog.Logger

	saveTimeout time.Duration
	saves       saveQueue
}

func NewStore(gateway Gateway, notifier Notifier, logger *applog.Logger) *Store {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Store{
		gateway:     gateway,
		notifier:    notifier,
		logger:      logger.WithComponent(applog.ComponentLedger),
		saveTimeout: defaultSaveTimeout,
	}
}

// Initialize performs the one-shot hydrate from the persistence
// gateway and transitions the store to ready. Hydration does not write
// back: the data just came from persistence.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return ErrAlreadyInitialized
	}

	items, err := s.gateway.Load(ctx)
	if err != nil {
		return err
	}

	s.items = items
	s.initialized = true
	s.logger.InfoContext(ctx, "Ledger hydrated", applog.FieldCount, len(items))
	return nil
}

// Initialized reports whether the one-shot hydrate has completed.
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Add assigns a fresh id and creation timestamp to the draft and
// prepends the resulting record. The draft is trusted: validation is
// the form boundary's responsibility, not the store's.
func (s *Store) Add(draft core.Draft) core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()

	tx := core.Transaction{
		ID:          uuid.NewString(),
		Label:       draft.Label,
		Description: draft.Description,
		Amount:      draft.Amount,
		Kind:        draft.Kind,
		Category:    draft.Category,
		OccurredAt:  draft.OccurredAt,
		CreatedAt:   time.Now(),
	}

	s.items = append([]core.Transaction{tx}, s.items...)
	s.afterMutation(events.ActionAdded, tx.ID)

	return tx
}

// Remove deletes the record with the given id. Removing an absent id
// is a silent no-op and does not trigger a persistence write.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()

	for i, tx := range s.items {
		if tx.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.afterMutation(events.ActionRemoved, id)
			return true
		}
	}
	return false
}

// Purge empties the ledger.
func (s *Store) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()

	s.items = nil
	s.afterMutation(events.ActionPurged, "")
}

// Snapshot returns a read-only copy of the current sequence,
// newest-inserted-first.
func (s *Store) Snapshot() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	return append([]core.Transaction(nil), s.items...)
}

// Len returns the number of recorded transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	return len(s.items)
}

// Revision increments on every mutation. Derived-view caches key on it
// to memoize by transaction-set identity.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Flush waits for in-flight persistence writes. Called at shutdown so
// the last mutation reaches the gateway before the process exits.
func (s *Store) Flush() {
	s.saves.wait()
}

// afterMutation bumps the revision and schedules the fire-and-forget
// persistence write plus the optional event publish. Caller holds mu.
func (s *Store) afterMutation(action, id string) {
	s.revision++
	snapshot := append([]core.Transaction(nil), s.items...)
	event := events.NewLedgerEvent(action, id, len(snapshot))
	s.saves.schedule(s, snapshot, s.revision, event)
}

// mustReady panics when the store is used before initialization: that
// is a programming-contract violation, not a recoverable condition.
func (s *Store) mustReady() {
	if !s.initialized {
		panic("ledger: store used before Initialize")
	}
}
