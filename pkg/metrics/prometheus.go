package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus instruments the service emits. Each
// instance owns its registry so tests can create collectors without
// global registration conflicts.
type Collector struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	webhookEvents       *prometheus.CounterVec
	reconcilerFailures  prometheus.Counter
	transactionsCreated prometheus.Counter
	campaignsCreated    prometheus.Counter
}

// NewCollector builds a collector with a fresh registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	return &Collector{
		registry: registry,
		httpRequests: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		webhookEvents: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "billing_webhook_events_total",
			Help: "Webhook events received by kind",
		}, []string{"kind"}),
		reconcilerFailures: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "billing_reconcile_failures_total",
			Help: "Reconciliation attempts that failed on the store",
		}),
		transactionsCreated: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "wallet_transactions_created_total",
			Help: "Wallet transactions accepted",
		}),
		campaignsCreated: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "campaigns_created_total",
			Help: "Campaigns created",
		}),
	}
}

// RecordRequest counts one served HTTP request.
func (c *Collector) RecordRequest(route, code string) {
	c.httpRequests.WithLabelValues(route, code).Inc()
}

// RecordWebhookEvent counts one received provider event.
func (c *Collector) RecordWebhookEvent(kind string) {
	c.webhookEvents.WithLabelValues(kind).Inc()
}

// RecordReconcileFailure counts one failed reconciliation.
func (c *Collector) RecordReconcileFailure() {
	c.reconcilerFailures.Inc()
}

// RecordTransactionCreated counts one accepted wallet transaction.
func (c *Collector) RecordTransactionCreated() {
	c.transactionsCreated.Inc()
}

// RecordCampaignCreated counts one created campaign.
func (c *Collector) RecordCampaignCreated() {
	c.campaignsCreated.Inc()
}

// Handler serves the collected metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
