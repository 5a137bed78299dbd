package ledger

import (
	"context"
	"sync"

	"pulseledger/internal/core"
	"pulseledger/internal/events"
	applog "pulseledger/internal/log"
)

// saveQueue runs persistence writes off the mutation path. Writes are
// serialized through their own mutex and ordered by revision so a slow
// older save can never clobber a newer snapshot.
type saveQueue struct {
	mu       sync.Mutex
	savedRev uint64
	wg       sync.WaitGroup
}

func (q *saveQueue) schedule(s *Store, snapshot []core.Transaction, rev uint64, event *events.LedgerEvent) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()

		q.mu.Lock()
		defer q.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
		defer cancel()

		if rev > q.savedRev {
			if err := s.gateway.Save(ctx, snapshot); err != nil {
				// Best-effort: the in-memory ledger remains the source
				// of truth for the session.
				s.logger.WarnContext(ctx, "Persistence write failed",
					applog.FieldRevision, rev,
					applog.FieldError, err)
			} else {
				q.savedRev = rev
			}
		}

		if s.notifier != nil {
			if err := s.notifier.Publish(ctx, event); err != nil {
				s.logger.WarnContext(ctx, "Event publish failed",
					applog.FieldAction, event.Action,
					applog.FieldError, err)
			}
		}
	}()
}

func (q *saveQueue) wait() {
	q.wg.Wait()
}
