package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
	"adpilot/pkg/metrics"
)

var _ port.Reconciler = (*Reconciler)(nil)

// Reconciler translates verified provider lifecycle events into
// authoritative entitlement state. Every application is idempotent, so
// a provider retry of the same event re-asserts state without new side
// effects. Events for the same account are applied last-writer-wins in
// arrival order; there is no per-account sequence watermark, so a
// delayed stale event can overwrite fresher state. That trade-off is
// accepted here rather than hidden.
type Reconciler struct {
	repo    port.LedgerRepository
	logger  *slog.Logger
	metrics *metrics.Collector

	now func() time.Time
}

// NewReconciler creates a reconciler. The metrics collector may be nil.
func NewReconciler(repo port.LedgerRepository, logger *slog.Logger, collector *metrics.Collector) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{repo: repo, logger: logger, metrics: collector, now: time.Now}
}

// Apply dispatches one verified event. A returned error means the
// store could not be updated; the webhook endpoint answers 5xx so the
// provider redelivers the event.
func (r *Reconciler) Apply(ctx context.Context, ev domain.BillingEvent) error {
	if r.metrics != nil {
		r.metrics.RecordWebhookEvent(string(ev.Kind))
	}

	var err error
	switch ev.Kind {
	case domain.EventCheckoutCompleted:
		err = r.applyCheckoutCompleted(ctx, ev.AccountID, ev.CustomerID)
	case domain.EventInvoicePaid:
		err = r.applyInvoicePaid(ctx, ev.CustomerID, ev.PeriodEnd)
	case domain.EventSubscriptionDeleted:
		err = r.applySubscriptionDeleted(ctx, ev.CustomerID)
	default:
		r.logger.Info("billing event ignored", slog.String("kind", string(ev.Kind)))
		return nil
	}
	if err != nil && r.metrics != nil {
		r.metrics.RecordReconcileFailure()
	}
	return err
}

// applyCheckoutCompleted activates the agency plan for the account that
// completed checkout and stores the provider customer reference.
// Replays only re-assert the same state: plan_started_at is kept from
// the first application and no activation side effects repeat.
func (r *Reconciler) applyCheckoutCompleted(ctx context.Context, accountID int64, customerID string) error {
	u, err := r.repo.GetUser(ctx, accountID)
	if err != nil {
		return fmt.Errorf("load account %d: %w", accountID, err)
	}
	if u == nil {
		// The checkout session carried an account id we do not know.
		// Acknowledge anyway; retrying will not make the account appear.
		r.logger.Warn("checkout completed for unknown account",
			slog.Int64("account_id", accountID),
			slog.String("customer_id", customerID))
		return nil
	}

	upd := port.EntitlementUpdate{
		Plan:              ptr(domain.PlanAgency),
		Active:            ptr(true),
		BillingCustomerID: &customerID,
	}
	if u.PlanStartedAt == nil {
		upd.PlanStartedAt = ptr(r.now().UTC())
	}
	if _, err = r.repo.UpdateEntitlement(ctx, accountID, upd); err != nil {
		return fmt.Errorf("activate account %d: %w", accountID, err)
	}

	r.logger.Info("subscription activated",
		slog.Int64("account_id", accountID),
		slog.String("customer_id", customerID))
	return nil
}

// applyInvoicePaid re-asserts the active flag and records the next
// renewal date. The event carries only the provider customer reference,
// so the account is resolved through it. A missing mapping is logged
// and swallowed: the provider will retry regardless, and a crash here
// would turn retries into an outage.
func (r *Reconciler) applyInvoicePaid(ctx context.Context, customerID string, periodEnd time.Time) error {
	u, err := r.repo.GetUserByBillingRef(ctx, customerID)
	if err != nil {
		return fmt.Errorf("lookup customer %s: %w", customerID, err)
	}
	if u == nil {
		r.logger.Warn("invoice paid for unknown customer", slog.String("customer_id", customerID))
		return nil
	}

	_, err = r.repo.UpdateEntitlement(ctx, u.ID, port.EntitlementUpdate{
		Active:       ptr(true),
		PlanRenewsAt: ptr(periodEnd.UTC()),
	})
	if err != nil {
		return fmt.Errorf("renew account %d: %w", u.ID, err)
	}

	r.logger.Info("subscription renewed",
		slog.Int64("account_id", u.ID),
		slog.Time("renews_at", periodEnd))
	return nil
}

// applySubscriptionDeleted downgrades the account to the free plan.
// The customer reference is retained so a later resubscription still
// reconciles onto the same account.
func (r *Reconciler) applySubscriptionDeleted(ctx context.Context, customerID string) error {
	u, err := r.repo.GetUserByBillingRef(ctx, customerID)
	if err != nil {
		return fmt.Errorf("lookup customer %s: %w", customerID, err)
	}
	if u == nil {
		r.logger.Warn("subscription deleted for unknown customer", slog.String("customer_id", customerID))
		return nil
	}

	_, err = r.repo.UpdateEntitlement(ctx, u.ID, port.EntitlementUpdate{
		Plan:           ptr(domain.PlanFree),
		Active:         ptr(false),
		PlanCanceledAt: ptr(r.now().UTC()),
	})
	if err != nil {
		return fmt.Errorf("deactivate account %d: %w", u.ID, err)
	}

	r.logger.Info("subscription canceled",
		slog.Int64("account_id", u.ID),
		slog.String("customer_id", customerID))
	return nil
}

func ptr[T any](v T) *T { return &v }
