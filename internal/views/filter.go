package views

import (
	"sort"
	"strings"
	"time"

	"pulseledger/internal/core"
)

// Filter selects a subset of the ledger. Zero-valued fields are
// unconstrained; active clauses are ANDed.
type Filter struct {
	// Search is a case-insensitive substring match against label,
	// description, and category together.
	Search string
	// Kind restricts the flow type; empty means all.
	Kind core.Kind
	// Category requires an exact match; empty means all.
	Category string
	// From and To are inclusive calendar-date bounds on OccurredAt:
	// From compares against start of day, To against end of day. Zero
	// times leave that side unbounded.
	From time.Time
	To   time.Time
}

// IsZero reports whether the filter has no active clause.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Kind == "" && f.Category == "" &&
		f.From.IsZero() && f.To.IsZero()
}

// Matches reports whether a single transaction satisfies every active
// clause.
func (f Filter) Matches(tx core.Transaction) bool {
	if f.Kind != "" && tx.Kind != f.Kind {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if !f.From.IsZero() && tx.OccurredAt.Before(dayStart(f.From)) {
		return false
	}
	if !f.To.IsZero() && tx.OccurredAt.After(dayEnd(f.To)) {
		return false
	}
	if f.Search != "" {
		haystack := strings.ToLower(tx.Label + " " + tx.Description + " " + tx.Category)
		if !strings.Contains(haystack, strings.ToLower(f.Search)) {
			return false
		}
	}
	return true
}

// Apply returns the matching subsequence in the snapshot's existing
// order; no re-sort happens here.
func Apply(items []core.Transaction, f Filter) []core.Transaction {
	if f.IsZero() {
		return items
	}
	out := make([]core.Transaction, 0, len(items))
	for _, tx := range items {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Categories returns the distinct categories present in the full
// snapshot, sorted lexicographically. The filter UI offers these
// regardless of which filter is active.
func Categories(items []core.Transaction) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, tx := range items {
		if _, ok := seen[tx.Category]; ok {
			continue
		}
		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
	}
	sort.Strings(out)
	return out
}
