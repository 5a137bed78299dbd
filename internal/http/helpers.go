package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pulseledger/internal/core"
	"pulseledger/internal/views"
)

// parseFilter builds a view filter from list query parameters.
func parseFilter(r *http.Request) (views.Filter, error) {
	q := r.URL.Query()
	f := views.Filter{
		Search:   sanitizeInput(q.Get("search")),
		Category: sanitizeInput(q.Get("category")),
	}

	switch kind := strings.ToLower(strings.TrimSpace(q.Get("kind"))); kind {
	case "", "all":
	case string(core.Credit), string(core.Debit):
		f.Kind = core.Kind(kind)
	default:
		return views.Filter{}, errors.New("Flow type filter must be all, credit, or debit.")
	}

	if f.Category == "all" {
		f.Category = ""
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return views.Filter{}, errors.New("From date must be in YYYY-MM-DD form.")
		}
		f.From = t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return views.Filter{}, errors.New("To date must be in YYYY-MM-DD form.")
		}
		f.To = t
	}

	return f, nil
}

// parseDate parses a calendar date in YYYY-MM-DD form, in local time.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// parseTimestamp accepts RFC 3339 timestamps and the shorter
// datetime-local form value, which is taken as local time.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", s, time.Local)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
