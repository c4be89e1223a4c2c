package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"

	"adpilot/internal/config/configs"
	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

func eventWith(t *testing.T, eventType string, object any) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(object)
	require.NoError(t, err)
	return stripe.Event{
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestTranslateCheckoutCompleted(t *testing.T) {
	ev := eventWith(t, "checkout.session.completed", map[string]any{
		"customer": "cus_42",
		"metadata": map[string]string{"userId": "7"},
	})

	got, err := translate(ev)
	require.NoError(t, err)
	require.Equal(t, domain.EventCheckoutCompleted, got.Kind)
	require.Equal(t, int64(7), got.AccountID)
	require.Equal(t, "cus_42", got.CustomerID)
}

func TestTranslateCheckoutWithoutAccountMetadata(t *testing.T) {
	ev := eventWith(t, "checkout.session.completed", map[string]any{
		"customer": "cus_42",
	})

	_, err := translate(ev)
	require.Error(t, err)
}

func TestTranslateInvoicePaid(t *testing.T) {
	periodEnd := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	ev := eventWith(t, "invoice.paid", map[string]any{
		"customer":   "cus_42",
		"period_end": periodEnd.Unix(),
	})

	got, err := translate(ev)
	require.NoError(t, err)
	require.Equal(t, domain.EventInvoicePaid, got.Kind)
	require.Equal(t, "cus_42", got.CustomerID)
	require.Equal(t, periodEnd, got.PeriodEnd)
}

func TestTranslateSubscriptionDeleted(t *testing.T) {
	ev := eventWith(t, "customer.subscription.deleted", map[string]any{
		"customer": "cus_42",
	})

	got, err := translate(ev)
	require.NoError(t, err)
	require.Equal(t, domain.EventSubscriptionDeleted, got.Kind)
	require.Equal(t, "cus_42", got.CustomerID)
}

func TestTranslateUnhandledType(t *testing.T) {
	ev := eventWith(t, "payment_intent.created", map[string]any{})

	got, err := translate(ev)
	require.NoError(t, err)
	require.Equal(t, domain.EventUnknown, got.Kind)
}

// signPayload builds a Stripe-Signature header the way the provider
// does: v1 = HMAC-SHA256(secret, "<timestamp>.<payload>").
func signPayload(secret string, payload []byte, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyAndTranslate(t *testing.T) {
	const secret = "whsec_test"
	svc := NewService(configs.Billing{WebhookSecret: secret})

	payload := []byte(`{"id":"evt_1","type":"customer.subscription.deleted","data":{"object":{"customer":"cus_9"}}}`)

	got, err := svc.VerifyAndTranslate(payload, signPayload(secret, payload, time.Now()))
	require.NoError(t, err)
	require.Equal(t, domain.EventSubscriptionDeleted, got.Kind)
	require.Equal(t, "cus_9", got.CustomerID)
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	svc := NewService(configs.Billing{WebhookSecret: "whsec_test"})

	payload := []byte(`{"id":"evt_1","type":"customer.subscription.deleted","data":{"object":{"customer":"cus_9"}}}`)

	_, err := svc.VerifyAndTranslate(payload, signPayload("whsec_other", payload, time.Now()))
	require.ErrorIs(t, err, port.ErrSignatureInvalid)
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	const secret = "whsec_test"
	svc := NewService(configs.Billing{WebhookSecret: secret})

	payload := []byte(`{"id":"evt_1","type":"customer.subscription.deleted","data":{"object":{"customer":"cus_9"}}}`)
	header := signPayload(secret, payload, time.Now())
	tampered := []byte(`{"id":"evt_1","type":"customer.subscription.deleted","data":{"object":{"customer":"cus_ATTACKER"}}}`)

	_, err := svc.VerifyAndTranslate(tampered, header)
	require.ErrorIs(t, err, port.ErrSignatureInvalid)
}
