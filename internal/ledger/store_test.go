package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pulseledger/internal/core"
	"pulseledger/internal/events"
	"pulseledger/internal/storage"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []*events.LedgerEvent
}

func (n *recordingNotifier) Publish(_ context.Context, event *events.LedgerEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) actions() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Action
	}
	return out
}

type failingGateway struct{ err error }

func (g failingGateway) Load(context.Context) ([]core.Transaction, error) { return nil, g.err }
func (g failingGateway) Save(context.Context, []core.Transaction) error   { return g.err }

func draft(label string, cents int64, kind core.Kind) core.Draft {
	return core.Draft{
		Label:      label,
		Amount:     core.Money{Cents: cents},
		Kind:       kind,
		Category:   "General",
		OccurredAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local),
	}
}

func newReadyStore(t *testing.T) (*Store, *storage.MemoryGateway, *recordingNotifier) {
	t.Helper()
	gateway := storage.NewMemoryGateway()
	notifier := &recordingNotifier{}
	store := NewStore(gateway, notifier, nil)
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return store, gateway, notifier
}

func TestInitializeOnce(t *testing.T) {
	store, _, _ := newReadyStore(t)

	if err := store.Initialize(context.Background()); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Initialize() error = %v, want ErrAlreadyInitialized", err)
	}
	if !store.Initialized() {
		t.Error("Initialized() = false after hydrate")
	}
}

func TestInitializeLoadError(t *testing.T) {
	loadErr := errors.New("disk gone")
	store := NewStore(failingGateway{err: loadErr}, nil, nil)

	if err := store.Initialize(context.Background()); !errors.Is(err, loadErr) {
		t.Errorf("Initialize() error = %v, want %v", err, loadErr)
	}
	if store.Initialized() {
		t.Error("store reported ready after a failed hydrate")
	}
}

func TestInitializeHydratesExistingData(t *testing.T) {
	gateway := storage.NewMemoryGateway()
	seed := []core.Transaction{
		{ID: "a", Label: "Coffee", Amount: core.Money{Cents: 450}, Kind: core.Debit},
	}
	if err := gateway.Save(context.Background(), seed); err != nil {
		t.Fatalf("seed Save() error = %v", err)
	}

	store := NewStore(gateway, nil, nil)
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d after hydrate, want 1", store.Len())
	}
	// Hydration must not write back.
	store.Flush()
	if gateway.SaveCount() != 1 {
		t.Errorf("SaveCount() = %d after hydrate, want the seed save only", gateway.SaveCount())
	}
}

func TestAddPrependsAndAssignsIdentity(t *testing.T) {
	store, _, _ := newReadyStore(t)

	first := store.Add(draft("Paycheck", 120000, core.Credit))
	second := store.Add(draft("Coffee", 4550, core.Debit))

	if first.ID == "" || second.ID == "" {
		t.Fatal("Add() left an ID empty")
	}
	if first.ID == second.ID {
		t.Errorf("Add() reused id %q", first.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Error("Add() left CreatedAt zero")
	}

	snapshot := store.Snapshot()
	if snapshot[0].Label != "Coffee" || snapshot[1].Label != "Paycheck" {
		t.Errorf("snapshot order = [%s, %s], want newest first", snapshot[0].Label, snapshot[1].Label)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	store, _, _ := newReadyStore(t)
	store.Add(draft("Coffee", 450, core.Debit))

	snapshot := store.Snapshot()
	snapshot[0].Label = "tampered"

	if store.Snapshot()[0].Label != "Coffee" {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestRemove(t *testing.T) {
	store, gateway, _ := newReadyStore(t)
	tx := store.Add(draft("Coffee", 450, core.Debit))
	store.Flush()
	savesAfterAdd := gateway.SaveCount()

	if !store.Remove(tx.ID) {
		t.Fatal("Remove() = false for a present id")
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d after remove, want 0", store.Len())
	}
	store.Flush()
	if gateway.SaveCount() != savesAfterAdd+1 {
		t.Errorf("SaveCount() = %d, want %d", gateway.SaveCount(), savesAfterAdd+1)
	}

	// Absent id: silent no-op, no persistence write.
	rev := store.Revision()
	if store.Remove(tx.ID) {
		t.Error("Remove() = true for an absent id")
	}
	store.Flush()
	if gateway.SaveCount() != savesAfterAdd+1 {
		t.Error("removing an absent id triggered a persistence write")
	}
	if store.Revision() != rev {
		t.Error("removing an absent id bumped the revision")
	}
}

func TestPurge(t *testing.T) {
	store, gateway, notifier := newReadyStore(t)
	store.Add(draft("Coffee", 450, core.Debit))
	store.Add(draft("Paycheck", 120000, core.Credit))

	store.Purge()
	if store.Len() != 0 {
		t.Errorf("Len() = %d after purge, want 0", store.Len())
	}

	store.Flush()
	items, err := gateway.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("gateway holds %d items after purge, want 0", len(items))
	}

	actions := notifier.actions()
	if len(actions) != 3 || actions[2] != events.ActionPurged {
		t.Errorf("notifier actions = %v, want [added added purged]", actions)
	}
}

func TestRevisionIncrementsPerMutation(t *testing.T) {
	store, _, _ := newReadyStore(t)

	if store.Revision() != 0 {
		t.Errorf("fresh Revision() = %d, want 0", store.Revision())
	}
	tx := store.Add(draft("Coffee", 450, core.Debit))
	if store.Revision() != 1 {
		t.Errorf("Revision() = %d after add, want 1", store.Revision())
	}
	store.Remove(tx.ID)
	if store.Revision() != 2 {
		t.Errorf("Revision() = %d after remove, want 2", store.Revision())
	}
	store.Flush()
}

type flakyGateway struct {
	saveErr error
}

func (g flakyGateway) Load(context.Context) ([]core.Transaction, error) { return nil, nil }
func (g flakyGateway) Save(context.Context, []core.Transaction) error   { return g.saveErr }

func TestMutationSurvivesSaveError(t *testing.T) {
	store := NewStore(flakyGateway{saveErr: errors.New("disk full")}, nil, nil)
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	store.Add(draft("Coffee", 450, core.Debit))
	store.Flush()

	// Failed saves are swallowed; the in-memory ledger is untouched.
	if store.Len() != 1 {
		t.Errorf("Len() = %d after failed save, want 1", store.Len())
	}
}

func TestUseBeforeInitializePanics(t *testing.T) {
	store := NewStore(storage.NewMemoryGateway(), nil, nil)

	defer func() {
		if recover() == nil {
			t.Error("Snapshot() before Initialize did not panic")
		}
	}()
	store.Snapshot()
}
