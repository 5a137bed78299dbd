package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Credit Kind = "credit"
	Debit  Kind = "debit"
)

type (
	// Kind is the flow direction of a transaction. Credits raise the
	// balance, debits lower it; the stored amount is always positive.
	Kind string

	// Transaction is a single recorded ledger event. Immutable once
	// created: edits are modeled as remove+add by callers.
	Transaction struct {
		ID          string    `json:"id"`
		Label       string    `json:"label"`
		Description string    `json:"description,omitempty"`
		Amount      Money     `json:"amount"`
		Kind        Kind      `json:"kind"`
		Category    string    `json:"category"`
		OccurredAt  time.Time `json:"occurredAt"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// Draft carries every Transaction field except the system-assigned
	// ID and CreatedAt. A Draft must be validated at the form boundary
	// before it reaches the ledger store.
	Draft struct {
		Label       string
		Description string
		Amount      Money
		Kind        Kind
		Category    string
		OccurredAt  time.Time
	}
)

var (
	ErrEmptyLabel       = errors.New("empty label")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidKind      = errors.New("invalid kind")
	ErrMissingTimestamp = errors.New("missing timestamp")
)

func (k Kind) Validate() error {
	switch k {
	case Credit, Debit:
		return nil
	default:
		return ErrInvalidKind
	}
}

// IsCredit reports whether the kind is an inflow.
func (k Kind) IsCredit() bool {
	return k == Credit
}

func (d Draft) Validate() error {
	if len(strings.TrimSpace(d.Label)) == 0 {
		return ErrEmptyLabel
	}
	if len(d.Label) > 200 {
		return errors.New("label too long (max 200 characters)")
	}
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	if err := d.Kind.Validate(); err != nil {
		return err
	}
	if d.OccurredAt.IsZero() {
		return ErrMissingTimestamp
	}
	return nil
}

// SuggestedCategories is the default category set offered by the entry
// form. Transactions may carry any category; this list is a suggestion,
// not a constraint.
func SuggestedCategories() []string {
	return []string{
		"General",
		"Food & Dining",
		"Housing",
		"Transportation",
		"Entertainment",
		"Savings",
		"Healthcare",
		"Utilities",
		"Travel",
		"Investments",
	}
}
