package views

import (
	"fmt"

	"pulseledger/internal/core"
)

// Insight is one ranked observation mined from the full set.
type Insight struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Detail string `json:"detail"`
}

type categoryFlow struct {
	name   string
	credit core.Money
	debit  core.Money
}

// ComputeInsights mines the snapshot for up to four insights: top
// debit sink, primary credit source, peak activity hour, and the most
// recently inserted record. An empty ledger yields no insights.
func ComputeInsights(items []core.Transaction) []Insight {
	if len(items) == 0 {
		return nil
	}

	// Accumulate per-category flows in first-seen order so ties go to
	// the earliest-seen category deterministically.
	index := make(map[string]int, len(items))
	var flows []categoryFlow
	var byHour [24]int

	for _, tx := range items {
		i, ok := index[tx.Category]
		if !ok {
			i = len(flows)
			index[tx.Category] = i
			flows = append(flows, categoryFlow{name: tx.Category})
		}
		if tx.Kind.IsCredit() {
			flows[i].credit = flows[i].credit.Add(tx.Amount)
		} else {
			flows[i].debit = flows[i].debit.Add(tx.Amount)
		}

		byHour[tx.OccurredAt.Hour()]++
	}

	topDebit := flows[0]
	topCredit := flows[0]
	for _, f := range flows[1:] {
		if f.debit.Cents > topDebit.debit.Cents {
			topDebit = f
		}
		if f.credit.Cents > topCredit.credit.Cents {
			topCredit = f
		}
	}

	// Ascending scan with a strict comparison: the lowest hour wins a
	// tie for the maximum count.
	peakHour, peakCount := 0, 0
	for hour, count := range byHour {
		if count > peakCount {
			peakHour, peakCount = hour, count
		}
	}

	newest := items[0]

	return []Insight{
		{
			Title:  "Top debit sink",
			Value:  topDebit.name,
			Detail: topDebit.debit.String(),
		},
		{
			Title:  "Primary credit source",
			Value:  topCredit.name,
			Detail: topCredit.credit.String(),
		},
		{
			Title:  "Peak activity hour",
			Value:  fmt.Sprintf("%02d:00", peakHour),
			Detail: fmt.Sprintf("%d movements", peakCount),
		},
		{
			Title:  "Latest recorded",
			Value:  newest.Label,
			Detail: newest.OccurredAt.Format("Jan 2, 2006 at 3:04 PM"),
		},
	}
}
