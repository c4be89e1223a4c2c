package billing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"adpilot/internal/config/configs"
	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

// metadataAccountKey is the checkout-session metadata key carrying the
// account id through the provider and back in the webhook.
const metadataAccountKey = "userId"

// Service wraps the Stripe integration: creating subscription checkout
// sessions and turning signed webhook payloads into internal billing
// events. The reconciler never sees Stripe types.
type Service struct {
	cfg configs.Billing
}

// NewService configures the Stripe client and returns the service.
func NewService(cfg configs.Billing) *Service {
	stripe.Key = cfg.SecretKey
	return &Service{cfg: cfg}
}

// CreateCheckoutSession starts a subscription checkout for the account
// and returns the URL to redirect the caller to.
func (s *Service) CreateCheckoutSession(accountID int64) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(s.cfg.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(s.cfg.Domain + "/success"),
		CancelURL:  stripe.String(s.cfg.Domain + "/cancel"),
	}
	params.AddMetadata(metadataAccountKey, strconv.FormatInt(accountID, 10))

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

// checkoutSession is the slice of the provider payload this service
// reads. Decoding into a local struct keeps the wire format out of the
// domain.
type checkoutSession struct {
	Customer string            `json:"customer"`
	Metadata map[string]string `json:"metadata"`
}

type invoice struct {
	Customer  string `json:"customer"`
	PeriodEnd int64  `json:"period_end"`
}

type subscription struct {
	Customer string `json:"customer"`
}

// VerifyAndTranslate checks the webhook signature over the raw body and
// translates the event into the internal variant type. Signature
// failures return port.ErrSignatureInvalid; the caller must not
// reconcile in that case. Unhandled event types come back as
// EventUnknown with no error.
func (s *Service) VerifyAndTranslate(payload []byte, sigHeader string) (domain.BillingEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, s.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return domain.BillingEvent{}, fmt.Errorf("%w: %v", port.ErrSignatureInvalid, err)
	}
	return translate(event)
}

func translate(event stripe.Event) (domain.BillingEvent, error) {
	switch event.Type {
	case "checkout.session.completed":
		var sess checkoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return domain.BillingEvent{}, fmt.Errorf("decode checkout session: %w", err)
		}
		accountID, err := strconv.ParseInt(strings.TrimSpace(sess.Metadata[metadataAccountKey]), 10, 64)
		if err != nil {
			return domain.BillingEvent{}, fmt.Errorf("checkout session missing account metadata: %w", err)
		}
		return domain.BillingEvent{
			Kind:       domain.EventCheckoutCompleted,
			AccountID:  accountID,
			CustomerID: sess.Customer,
		}, nil

	case "invoice.paid":
		var inv invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return domain.BillingEvent{}, fmt.Errorf("decode invoice: %w", err)
		}
		return domain.BillingEvent{
			Kind:       domain.EventInvoicePaid,
			CustomerID: inv.Customer,
			PeriodEnd:  time.Unix(inv.PeriodEnd, 0).UTC(),
		}, nil

	case "customer.subscription.deleted":
		var sub subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return domain.BillingEvent{}, fmt.Errorf("decode subscription: %w", err)
		}
		return domain.BillingEvent{
			Kind:       domain.EventSubscriptionDeleted,
			CustomerID: sub.Customer,
		}, nil

	default:
		return domain.BillingEvent{Kind: domain.EventUnknown}, nil
	}
}
