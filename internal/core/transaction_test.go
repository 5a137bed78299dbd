package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validDraft() Draft {
	return Draft{
		Label:      "Coffee",
		Amount:     Money{Cents: 4550},
		Kind:       Debit,
		Category:   "Food & Dining",
		OccurredAt: time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local),
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr error
	}{
		{
			name:   "valid draft",
			mutate: func(d *Draft) {},
		},
		{
			name:    "empty label",
			mutate:  func(d *Draft) { d.Label = "" },
			wantErr: ErrEmptyLabel,
		},
		{
			name:    "whitespace label",
			mutate:  func(d *Draft) { d.Label = "   " },
			wantErr: ErrEmptyLabel,
		},
		{
			name:    "zero amount",
			mutate:  func(d *Draft) { d.Amount = Money{} },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(d *Draft) { d.Amount = Money{Cents: -100} },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown kind",
			mutate:  func(d *Draft) { d.Kind = Kind("transfer") },
			wantErr: ErrInvalidKind,
		},
		{
			name:    "missing timestamp",
			mutate:  func(d *Draft) { d.OccurredAt = time.Time{} },
			wantErr: ErrMissingTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDraftValidateLongLabel(t *testing.T) {
	d := validDraft()
	d.Label = strings.Repeat("x", 201)
	if err := d.Validate(); err == nil {
		t.Error("Validate() accepted a 201-character label")
	}
}

func TestKindIsCredit(t *testing.T) {
	if !Credit.IsCredit() {
		t.Error("Credit.IsCredit() = false")
	}
	if Debit.IsCredit() {
		t.Error("Debit.IsCredit() = true")
	}
}

func TestSuggestedCategoriesContainsDefault(t *testing.T) {
	for _, c := range SuggestedCategories() {
		if c == "General" {
			return
		}
	}
	t.Error("SuggestedCategories() missing the General default")
}
