package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
	"adpilot/pkg/metrics"
)

// BillingProvider is the slice of the billing service the handler
// needs: starting a checkout and verifying/translating webhook
// payloads. Kept as an interface so tests can stub the provider.
type BillingProvider interface {
	CreateCheckoutSession(accountID int64) (string, error)
	VerifyAndTranslate(payload []byte, sigHeader string) (domain.BillingEvent, error)
}

// Handler contains dependencies and routes. It is an inbound adapter
// for HTTP. Routes are registered on a chi.Router for convenient
// method handling.
type Handler struct {
	accounts     port.AccountUseCase
	campaigns    port.CampaignUseCase
	transactions port.TransactionUseCase
	analytics    port.AnalyticsUseCase
	reconciler   port.Reconciler
	billing      BillingProvider

	sessions   *SessionStore
	cookieName string
	logger     *slog.Logger
	metrics    *metrics.Collector
	router     chi.Router
}

// Deps bundles the handler's collaborators.
type Deps struct {
	Accounts     port.AccountUseCase
	Campaigns    port.CampaignUseCase
	Transactions port.TransactionUseCase
	Analytics    port.AnalyticsUseCase
	Reconciler   port.Reconciler
	Billing      BillingProvider
	Sessions     *SessionStore
	CookieName   string
	Logger       *slog.Logger
	Metrics      *metrics.Collector
}

// NewHandler creates a handler with all routes configured.
func NewHandler(d Deps) *Handler {
	h := &Handler{
		accounts:     d.Accounts,
		campaigns:    d.Campaigns,
		transactions: d.Transactions,
		analytics:    d.Analytics,
		reconciler:   d.Reconciler,
		billing:      d.Billing,
		sessions:     d.Sessions,
		cookieName:   d.CookieName,
		logger:       d.Logger,
		metrics:      d.Metrics,
	}

	r := chi.NewRouter()
	r.Use(h.instrument)

	// The webhook route reads the raw body itself; no body-parsing
	// middleware may run ahead of it or signature verification breaks.
	r.Post("/api/webhooks/provider", h.handleProviderWebhook)

	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	r.Post("/api/register", h.handleRegister)
	r.Post("/api/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(h.requireSession)
		r.Post("/api/logout", h.handleLogout)
		r.Get("/api/user", h.handleCurrentUser)
		r.Get("/api/campaigns", h.handleListCampaigns)
		r.Post("/api/campaigns", h.handleCreateCampaign)
		r.Get("/api/campaigns/{id}", h.handleGetCampaign)
		r.Get("/api/transactions", h.handleListTransactions)
		r.Post("/api/transactions", h.handleCreateTransaction)
		r.Get("/api/analytics", h.handleAnalytics)
		r.Post("/api/billing/create-session", h.handleCreateCheckoutSession)
	})

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

type contextKey string

const contextKeyUser contextKey = "user"

// actorFrom returns the authenticated account placed in the context by
// requireSession. The second return is false on unauthenticated routes.
func actorFrom(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(contextKeyUser).(*domain.User)
	return u, ok
}

// requireSession resolves the session cookie to an account and stores
// it in the request context. The account is loaded fresh from the
// ledger on every request so entitlement changes apply immediately.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.cookieName)
		if err != nil {
			h.writeError(w, port.ErrUnauthenticated)
			return
		}
		userID, ok := h.sessions.Resolve(cookie.Value)
		if !ok {
			h.writeError(w, port.ErrUnauthenticated)
			return
		}
		user, err := h.accounts.Get(r.Context(), userID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		if user == nil {
			// session outlived the account
			h.sessions.Delete(cookie.Value)
			h.writeError(w, port.ErrUnauthenticated)
			return
		}
		ctx := context.WithValue(r.Context(), contextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// instrument counts served requests by route pattern and status code.
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		h.metrics.RecordRequest(route, strconv.Itoa(sw.code))
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
