package httpadapter

import (
	"encoding/json"
	"net/http"

	"adpilot/internal/core/port"
)

// handleListTransactions returns transactions scoped by role.
func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	transactions, err := h.transactions.List(r.Context(), actor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]transactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, toTransactionResponse(t))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// handleCreateTransaction records a wallet transaction for the caller.
// The amount keeps the caller's sign; spends and payouts arrive
// negative.
func (h *Handler) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	var in port.CreateTransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeError(w, port.Validation("", "invalid JSON"))
		return
	}
	created, err := h.transactions.Create(r.Context(), actor, in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordTransactionCreated()
	}
	h.writeJSON(w, http.StatusCreated, toTransactionResponse(*created))
}

// handleAnalytics returns the analytics samples visible to the caller.
// Gated like campaign creation.
func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	samples, err := h.analytics.List(r.Context(), actor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]analyticsResponse, 0, len(samples))
	for _, s := range samples {
		out = append(out, toAnalyticsResponse(s))
	}
	h.writeJSON(w, http.StatusOK, out)
}
