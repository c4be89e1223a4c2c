package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps the port error taxonomy onto status codes.
// Unrecognised errors are logged and answered with a generic 500 so
// store details never leak to callers.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var ve *port.ValidationError
	switch {
	case errors.As(err, &ve):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Message: ve.Message, Field: ve.Field})
	case errors.Is(err, port.ErrUnauthenticated):
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
	case errors.Is(err, port.ErrNotEntitled):
		h.writeJSON(w, http.StatusForbidden, errorResponse{
			Message: "Subscription required. Please activate your agency plan to use this feature.",
		})
	case errors.Is(err, port.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Message: "not found"})
	case errors.Is(err, port.ErrDuplicateUsername):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "username already taken", Field: "username"})
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal error"})
	}
}

// userResponse is the account shape returned to clients. The password
// hash never leaves the server.
type userResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	Balance   int64      `json:"balance"`
	Plan      string     `json:"plan"`
	Active    bool       `json:"active"`
	RenewsAt  *time.Time `json:"planRenewsAt,omitempty"`
	StartedAt *time.Time `json:"planStartedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Balance:   u.Balance,
		Plan:      u.Plan,
		Active:    u.Active,
		RenewsAt:  u.PlanRenewsAt,
		StartedAt: u.PlanStartedAt,
		CreatedAt: u.CreatedAt,
	}
}

type campaignResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Budget    int64     `json:"budget"`
	Geo       string    `json:"geo"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCampaignResponse(c domain.Campaign) campaignResponse {
	return campaignResponse{
		ID: c.ID, UserID: c.UserID, Name: c.Name,
		Budget: c.Budget, Geo: c.Geo, Status: c.Status, CreatedAt: c.CreatedAt,
	}
}

type transactionResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Amount    int64     `json:"amount"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTransactionResponse(t domain.Transaction) transactionResponse {
	return transactionResponse{
		ID: t.ID, UserID: t.UserID, Amount: t.Amount,
		Type: t.Type, Status: t.Status, CreatedAt: t.CreatedAt,
	}
}

type analyticsResponse struct {
	ID          int64     `json:"id"`
	CampaignID  int64     `json:"campaignId"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Spend       int64     `json:"spend"`
	SampleDate  time.Time `json:"date"`
}

func toAnalyticsResponse(s domain.AnalyticsSample) analyticsResponse {
	return analyticsResponse{
		ID: s.ID, CampaignID: s.CampaignID, Impressions: s.Impressions,
		Clicks: s.Clicks, Spend: s.Spend, SampleDate: s.SampleDate,
	}
}
