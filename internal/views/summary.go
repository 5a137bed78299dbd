// Package views derives read-only projections from a ledger snapshot:
// aggregate summary, filtered subsets, ranked insights, and the
// day-bucketed timeline. Every function here is pure; callers pass the
// snapshot and parameters, nothing is cached at this layer.
package views

import (
	"time"

	"pulseledger/internal/core"

	"github.com/shopspring/decimal"
)

// Velocity holds average per-day flow rates over the observed date
// span, in currency units.
type Velocity struct {
	AvgCredit decimal.Decimal `json:"avgCredit"`
	AvgDebit  decimal.Decimal `json:"avgDebit"`
	DailyNet  decimal.Decimal `json:"dailyNet"`
}

// Summary aggregates the full transaction set.
type Summary struct {
	TotalCredit  core.Money `json:"totalCredit"`
	TotalDebit   core.Money `json:"totalDebit"`
	Balance      core.Money `json:"balance"`
	LastActivity *time.Time `json:"lastActivity,omitempty"`
	Velocity     Velocity   `json:"velocity"`
}

// Summarize computes totals, balance, and velocity for a snapshot.
// The snapshot is newest-inserted-first, so LastActivity is the head
// record's creation time; it is nil for an empty ledger.
func Summarize(items []core.Transaction) Summary {
	var s Summary

	if len(items) == 0 {
		s.Velocity = Velocity{
			AvgCredit: decimal.Zero,
			AvgDebit:  decimal.Zero,
			DailyNet:  decimal.Zero,
		}
		return s
	}

	for _, tx := range items {
		if tx.Kind.IsCredit() {
			s.TotalCredit = s.TotalCredit.Add(tx.Amount)
		} else {
			s.TotalDebit = s.TotalDebit.Add(tx.Amount)
		}
	}
	s.Balance = s.TotalCredit.Sub(s.TotalDebit)

	last := items[0].CreatedAt
	s.LastActivity = &last

	s.Velocity = computeVelocity(items, s.TotalCredit, s.TotalDebit)
	return s
}

// computeVelocity averages the totals over the calendar-day distance
// between the earliest and latest event times. The span floor of one
// day avoids division blow-up when everything happened on one day.
func computeVelocity(items []core.Transaction, credit, debit core.Money) Velocity {
	earliest, latest := items[0].OccurredAt, items[0].OccurredAt
	for _, tx := range items[1:] {
		if tx.OccurredAt.Before(earliest) {
			earliest = tx.OccurredAt
		}
		if tx.OccurredAt.After(latest) {
			latest = tx.OccurredAt
		}
	}

	span := calendarDaysBetween(earliest, latest)
	if span < 1 {
		span = 1
	}
	days := decimal.NewFromInt(span)

	return Velocity{
		AvgCredit: credit.Decimal().DivRound(days, 4),
		AvgDebit:  debit.Decimal().DivRound(days, 4),
		DailyNet:  credit.Sub(debit).Decimal().DivRound(days, 4),
	}
}

// dayStart truncates a time to local midnight.
func dayStart(t time.Time) time.Time {
	t = t.In(time.Local)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// dayEnd is the last representable display instant of the local
// calendar day: 23:59:59.999.
func dayEnd(t time.Time) time.Time {
	return dayStart(t).Add(24*time.Hour - time.Millisecond)
}

// calendarDaysBetween counts whole local calendar days from a to b,
// ignoring clock time within each day.
func calendarDaysBetween(a, b time.Time) int64 {
	return int64(dayStart(b).Sub(dayStart(a)) / (24 * time.Hour))
}
