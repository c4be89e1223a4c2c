package configs

// Billing holds configuration for the Stripe integration. SecretKey
// authenticates API calls, WebhookSecret verifies incoming webhook
// signatures and PriceID selects the subscription price used by the
// checkout session. Domain is the public base URL the checkout flow
// redirects back to.
type Billing struct {
	// SecretKey is the Stripe API secret key.
	SecretKey string `env:"SECRET_KEY"`
	// WebhookSecret is the signing secret of the webhook endpoint.
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	// PriceID is the Stripe price of the agency subscription.
	PriceID string `env:"PRICE_ID"`
	// Domain is the public base URL used for checkout redirects,
	// e.g. https://app.example.com.
	Domain string `env:"DOMAIN" envDefault:"http://localhost:8080"`
}
