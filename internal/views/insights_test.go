package views

import (
	"testing"

	"pulseledger/internal/core"
)

func TestComputeInsightsEmpty(t *testing.T) {
	if got := ComputeInsights(nil); got != nil {
		t.Errorf("ComputeInsights(nil) = %v, want nil", got)
	}
}

func TestComputeInsights(t *testing.T) {
	// Newest-first snapshot: Coffee was inserted after Paycheck.
	items := []core.Transaction{
		tx("Coffee", 4550, core.Debit, "Food & Dining", localDay(15, 14)),
		tx("Paycheck", 120000, core.Credit, "Income", localDay(15, 9)),
	}

	got := ComputeInsights(items)
	if len(got) != 4 {
		t.Fatalf("len(insights) = %d, want 4", len(got))
	}

	want := []Insight{
		{Title: "Top debit sink", Value: "Food & Dining", Detail: "$45.50"},
		{Title: "Primary credit source", Value: "Income", Detail: "$1200.00"},
		{Title: "Peak activity hour", Value: "09:00", Detail: "1 movements"},
		{Title: "Latest recorded", Value: "Coffee", Detail: localDay(15, 14).Format("Jan 2, 2006 at 3:04 PM")},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("insights[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestComputeInsightsCategoryTies(t *testing.T) {
	// Equal debit totals: the category seen first in the snapshot wins.
	items := []core.Transaction{
		tx("Lunch", 2000, core.Debit, "Food & Dining", localDay(10, 12)),
		tx("Taxi", 2000, core.Debit, "Transportation", localDay(9, 12)),
	}

	got := ComputeInsights(items)
	if got[0].Value != "Food & Dining" {
		t.Errorf("tied top debit sink = %q, want first-seen %q", got[0].Value, "Food & Dining")
	}
}

func TestComputeInsightsPeakHourTie(t *testing.T) {
	// One movement at 08:00 and one at 17:00: the lowest hour wins.
	items := []core.Transaction{
		tx("Dinner", 3000, core.Debit, "Food & Dining", localDay(10, 17)),
		tx("Breakfast", 1000, core.Debit, "Food & Dining", localDay(10, 8)),
	}

	got := ComputeInsights(items)
	if got[2].Value != "08:00" {
		t.Errorf("tied peak hour = %q, want %q", got[2].Value, "08:00")
	}
	if got[2].Detail != "1 movements" {
		t.Errorf("peak hour detail = %q, want %q", got[2].Detail, "1 movements")
	}
}

func TestComputeInsightsLatestIsHeadOfSnapshot(t *testing.T) {
	// The newest insight tracks insertion order, not OccurredAt: a
	// backdated entry added last still counts as latest recorded.
	items := []core.Transaction{
		tx("Backdated rent", 90000, core.Debit, "Housing & Rent", localDay(1, 9)),
		tx("Coffee", 450, core.Debit, "Food & Dining", localDay(20, 8)),
	}

	got := ComputeInsights(items)
	if got[3].Value != "Backdated rent" {
		t.Errorf("latest recorded = %q, want %q", got[3].Value, "Backdated rent")
	}
}
