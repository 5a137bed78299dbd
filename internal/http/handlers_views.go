package http

import (
	"fmt"
	"net/http"

	"pulseledger/internal/core"
	"pulseledger/internal/views"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	key := revisionKey(s.store.Revision())
	summary, ok := s.summaryCache.Get(key)
	if !ok {
		summary = views.Summarize(s.store.Snapshot())
		s.summaryCache.Set(key, summary)
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	key := revisionKey(s.store.Revision())
	insights, ok := s.insightsCache.Get(key)
	if !ok {
		insights = views.ComputeInsights(s.store.Snapshot())
		s.insightsCache.Set(key, insights)
	}

	// Empty ledger yields an empty list, not null.
	if insights == nil {
		insights = []views.Insight{}
	}
	writeJSON(w, http.StatusOK, insights)
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	key := revisionKey(s.store.Revision())
	groups, ok := s.timelineCache.Get(key)
	if !ok {
		groups = views.GroupTimeline(s.store.Snapshot())
		s.timelineCache.Set(key, groups)
	}

	if groups == nil {
		groups = []views.DayGroup{}
	}
	writeJSON(w, http.StatusOK, groups)
}

type categoriesResponse struct {
	// Suggested is the default set offered by the entry form.
	Suggested []string `json:"suggested"`
	// Present is the distinct set currently in the ledger, sorted.
	Present []string `json:"present"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	present := views.Categories(s.store.Snapshot())
	if present == nil {
		present = []string{}
	}
	writeJSON(w, http.StatusOK, categoriesResponse{
		Suggested: core.SuggestedCategories(),
		Present:   present,
	})
}

func revisionKey(rev uint64) string {
	return fmt.Sprintf("rev:%d", rev)
}
