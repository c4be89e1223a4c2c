package httpadapter

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"adpilot/internal/core/port"
)

// webhookBodyLimit caps the raw payload read for signature
// verification.
const webhookBodyLimit = 1 << 20 // 1MiB

// handleProviderWebhook receives payment-provider lifecycle events.
// The raw body is read before any decoding because the signature is
// computed over the exact bytes sent. A bad signature is a client
// error and nothing is reconciled; a store failure is a server error so
// the provider retries, which the reconciler tolerates by being
// idempotent.
func (h *Handler) handleProviderWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, webhookBodyLimit)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, port.Validation("", "failed to read request body"))
		return
	}

	event, err := h.billing.VerifyAndTranslate(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, port.ErrSignatureInvalid) {
			h.logger.Warn("webhook signature verification failed", slog.Any("error", err))
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid signature"})
			return
		}
		h.logger.Warn("webhook payload rejected", slog.Any("error", err))
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid payload"})
		return
	}

	if err := h.reconciler.Apply(r.Context(), event); err != nil {
		h.logger.Error("reconciliation failed", slog.Any("error", err),
			slog.String("kind", string(event.Kind)))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "event processing failed"})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// handleCreateCheckoutSession starts a subscription checkout for the
// caller and returns the provider URL to redirect to.
func (h *Handler) handleCreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	url, err := h.billing.CreateCheckoutSession(actor.ID)
	if err != nil {
		h.logger.Error("create checkout session failed", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "could not start checkout"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
