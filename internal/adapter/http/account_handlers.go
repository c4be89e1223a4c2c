package httpadapter

import (
	"encoding/json"
	"net/http"

	"adpilot/internal/core/port"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleRegister creates an account and opens a session for it, so a
// fresh registration is immediately logged in.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, port.Validation("", "invalid JSON"))
		return
	}
	user, err := h.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.setSessionCookie(w, h.sessions.Create(user.ID))
	h.writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// handleLogin checks credentials and opens a session.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, port.Validation("", "invalid JSON"))
		return
	}
	user, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.setSessionCookie(w, h.sessions.Create(user.ID))
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

// handleLogout ends the session and clears the cookie.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		h.sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusOK)
}

// handleCurrentUser returns the authenticated account.
func (h *Handler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := actorFrom(r.Context())
	if !ok {
		h.writeError(w, port.ErrUnauthenticated)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
