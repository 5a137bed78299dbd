package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"pulseledger/internal/core"
	"pulseledger/internal/views"

	applog "pulseledger/internal/log"
)

const maxBodyBytes = 1 << 20 // 1MB

// createRequest is the draft shape posted by the entry form. Amount
// arrives as a decimal number or string; occurredAt as RFC 3339 or the
// datetime-local form value.
type createRequest struct {
	Label       string      `json:"label"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Kind        string      `json:"kind"`
	Category    string      `json:"category"`
	OccurredAt  string      `json:"occurredAt"`
}

type listResponse struct {
	Transactions []core.Transaction `json:"transactions"`
	Categories   []string           `json:"categories"`
	Total        int                `json:"total"`
	Matched      int                `json:"matched"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	case http.MethodDelete:
		s.purgeTransactions(w, r)
	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshot := s.store.Snapshot()

	key := fmt.Sprintf("%d|%s|%s|%s|%s|%s",
		s.store.Revision(), filter.Search, filter.Kind, filter.Category,
		formatDate(filter.From), formatDate(filter.To))
	matched, ok := s.listCache.Get(key)
	if !ok {
		matched = views.Apply(snapshot, filter)
		s.listCache.Set(key, matched)
	}

	writeJSON(w, http.StatusOK, listResponse{
		Transactions: matched,
		Categories:   views.Categories(snapshot),
		Total:        len(snapshot),
		Matched:      len(matched),
	})
}

// createTransaction is the form boundary: the draft is validated here,
// with displayable messages, before it ever reaches the store.
func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}

	draft, msg := buildDraft(req)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	tx := s.store.Add(draft)
	s.logger.InfoContext(r.Context(), "Transaction recorded",
		applog.FieldTxID, tx.ID,
		applog.FieldTxLabel, tx.Label,
		applog.FieldAmountCents, tx.Amount.Cents,
		applog.FieldKind, string(tx.Kind),
		applog.FieldCategory, tx.Category)

	writeJSON(w, http.StatusCreated, tx)
}

// buildDraft validates the request and assembles a draft. It returns a
// displayable message on failure; a returned draft is safe to hand to
// the store as-is.
func buildDraft(req createRequest) (core.Draft, string) {
	label := sanitizeInput(req.Label)
	if label == "" {
		return core.Draft{}, "Add a short label to remember this entry."
	}

	amount, err := core.ParseMoney(req.Amount.String())
	if err != nil {
		return core.Draft{}, "Amount must be a positive number."
	}

	kind := core.Kind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if err := kind.Validate(); err != nil {
		return core.Draft{}, "Flow type must be credit or debit."
	}

	occurredAt, err := parseTimestamp(req.OccurredAt)
	if err != nil {
		return core.Draft{}, "Pick when this happened."
	}

	category := sanitizeInput(req.Category)
	if category == "" {
		category = "General"
	}

	draft := core.Draft{
		Label:       label,
		Description: sanitizeInput(req.Description),
		Amount:      amount,
		Kind:        kind,
		Category:    category,
		OccurredAt:  occurredAt,
	}
	if err := draft.Validate(); err != nil {
		return core.Draft{}, "Entry could not be validated: " + err.Error()
	}
	return draft, ""
}

func (s *Server) purgeTransactions(w http.ResponseWriter, r *http.Request) {
	s.store.Purge()
	s.logger.InfoContext(r.Context(), "Ledger purged")
	w.WriteHeader(http.StatusNoContent)
}

// handleTransactionByID serves DELETE /api/transactions/{id}. Removal
// is idempotent: deleting an absent id is not an error.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Unknown resource.")
		return
	}

	if s.store.Remove(id) {
		s.logger.InfoContext(r.Context(), "Transaction removed", applog.FieldTxID, id)
	}
	w.WriteHeader(http.StatusNoContent)
}
