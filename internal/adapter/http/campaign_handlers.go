package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"adpilot/internal/core/port"
)

// handleListCampaigns returns campaigns scoped by role: admins see all
// rows, everyone else only their own.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	campaigns, err := h.campaigns.List(r.Context(), actor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]campaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, toCampaignResponse(c))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// handleCreateCampaign creates a campaign owned by the caller. The
// entitlement gate runs inside the use case; a free or inactive plan
// gets 403 with a pointer at the subscription flow.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	var in port.CreateCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeError(w, port.Validation("", "invalid JSON"))
		return
	}
	created, err := h.campaigns.Create(r.Context(), actor, in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordCampaignCreated()
	}
	h.writeJSON(w, http.StatusCreated, toCampaignResponse(*created))
}

// handleGetCampaign returns one campaign. Missing and foreign rows are
// both 404.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, port.ErrNotFound)
		return
	}
	c, err := h.campaigns.Get(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(*c))
}
