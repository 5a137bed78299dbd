package views

import (
	"sort"

	"pulseledger/internal/core"
)

// recentWindow bounds the timeline to the most recent insertions. The
// snapshot is already newest-first, so the window is a prefix take.
const recentWindow = 40

// DayGroup is one calendar day of the timeline. Day is the local day
// key in YYYY-MM-DD form; entries are ordered latest-event-first,
// which can differ from insertion order for backdated records.
type DayGroup struct {
	Day     string             `json:"day"`
	Entries []core.Transaction `json:"entries"`
}

// GroupTimeline buckets the most recent transactions by the local
// calendar day they occurred on, most recent day first. An empty
// snapshot yields no groups.
func GroupTimeline(items []core.Transaction) []DayGroup {
	if len(items) > recentWindow {
		items = items[:recentWindow]
	}
	if len(items) == 0 {
		return nil
	}

	buckets := make(map[string][]core.Transaction)
	var days []string
	for _, tx := range items {
		day := dayStart(tx.OccurredAt).Format("2006-01-02")
		if _, ok := buckets[day]; !ok {
			days = append(days, day)
		}
		buckets[day] = append(buckets[day], tx)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	groups := make([]DayGroup, 0, len(days))
	for _, day := range days {
		entries := buckets[day]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].OccurredAt.After(entries[j].OccurredAt)
		})
		groups = append(groups, DayGroup{Day: day, Entries: entries})
	}
	return groups
}
