package domain

import "time"

// BillingEventKind enumerates the provider lifecycle events the
// reconciler understands. Anything else translates to EventUnknown and
// is acknowledged without side effects.
type BillingEventKind string

const (
	EventCheckoutCompleted   BillingEventKind = "checkout.completed"
	EventInvoicePaid         BillingEventKind = "invoice.paid"
	EventSubscriptionDeleted BillingEventKind = "subscription.deleted"
	EventUnknown             BillingEventKind = "unknown"
)

// BillingEvent is the internal representation of a verified provider
// event. It is produced by a translation step immediately after
// signature verification so the reconciler never sees the provider's
// wire format.
//
// AccountID is only set for checkout events; the later lifecycle
// events carry the provider's customer reference instead.
type BillingEvent struct {
	Kind       BillingEventKind
	AccountID  int64
	CustomerID string
	PeriodEnd  time.Time
}
