package views

import (
	"fmt"
	"testing"

	"pulseledger/internal/core"
)

func TestGroupTimelineEmpty(t *testing.T) {
	if got := GroupTimeline(nil); got != nil {
		t.Errorf("GroupTimeline(nil) = %v, want nil", got)
	}
}

func TestGroupTimeline(t *testing.T) {
	// Newest-first snapshot spanning three local days.
	items := []core.Transaction{
		tx("Coffee", 450, core.Debit, "Food & Dining", localDay(15, 14)),
		tx("Paycheck", 120000, core.Credit, "Income", localDay(15, 9)),
		tx("Groceries", 8230, core.Debit, "Food & Dining", localDay(12, 18)),
		tx("Bus ticket", 275, core.Debit, "Transportation", localDay(8, 7)),
	}

	got := GroupTimeline(items)
	if len(got) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(got))
	}

	wantDays := []string{"2024-03-15", "2024-03-12", "2024-03-08"}
	for i, day := range wantDays {
		if got[i].Day != day {
			t.Errorf("groups[%d].Day = %q, want %q", i, got[i].Day, day)
		}
	}

	first := got[0].Entries
	if len(first) != 2 {
		t.Fatalf("len(groups[0].Entries) = %d, want 2", len(first))
	}
	// Coffee occurred later in the day than Paycheck, so it leads.
	if first[0].ID != "Coffee" || first[1].ID != "Paycheck" {
		t.Errorf("day entries = [%s, %s], want [Coffee, Paycheck]", first[0].ID, first[1].ID)
	}
}

func TestGroupTimelineBackdatedEntrySortsByOccurrence(t *testing.T) {
	// Inserted most recently but occurred earlier in the day: occurrence
	// order wins inside a group.
	items := []core.Transaction{
		tx("Backdated breakfast", 900, core.Debit, "Food & Dining", localDay(15, 8)),
		tx("Lunch", 1500, core.Debit, "Food & Dining", localDay(15, 12)),
	}

	got := GroupTimeline(items)
	if len(got) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(got))
	}
	if got[0].Entries[0].ID != "Lunch" {
		t.Errorf("first entry = %q, want %q", got[0].Entries[0].ID, "Lunch")
	}
}

func TestGroupTimelineRecentWindow(t *testing.T) {
	// 45 records, one per hour-ish slot: only the first 40 of the
	// newest-first snapshot make the timeline.
	items := make([]core.Transaction, 0, 45)
	for i := 0; i < 45; i++ {
		label := fmt.Sprintf("entry-%02d", i)
		day := 28 - i%28
		items = append(items, tx(label, 100, core.Debit, "General", localDay(day, 12)))
	}

	got := GroupTimeline(items)
	total := 0
	seen := make(map[string]bool)
	for _, g := range got {
		total += len(g.Entries)
		for _, e := range g.Entries {
			seen[e.ID] = true
		}
	}
	if total != 40 {
		t.Errorf("timeline holds %d entries, want 40", total)
	}
	for i := 40; i < 45; i++ {
		if seen[fmt.Sprintf("entry-%02d", i)] {
			t.Errorf("entry-%02d is beyond the recent window but appeared", i)
		}
	}
}
