package events

import (
	"encoding/json"
	"time"
)

const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
	ActionPurged  = "purged"
)

// LedgerEvent announces a single ledger mutation on the event feed.
// It carries only the mutation shape, not transaction payloads;
// consumers fetch details from the ledger service if they need them.
type LedgerEvent struct {
	Action    string    `json:"action"`
	ID        string    `json:"id,omitempty"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEvent builds an event for the given action. id is empty for
// purge events; count is the ledger length after the mutation.
func NewLedgerEvent(action, id string, count int) *LedgerEvent {
	return &LedgerEvent{
		Action:    action,
		ID:        id,
		Count:     count,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON parses an event from JSON bytes.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
