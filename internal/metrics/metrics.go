package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// OAuth Metrics
var (
	OAuthExchanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOAuthExchangesTotal,
			Help: HelpTextOAuthExchangesTotal,
		},
		[]string{LabelPlatform, LabelOutcome},
	)

	TokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTokenRefreshesTotal,
			Help: HelpTextTokenRefreshesTotal,
		},
		[]string{LabelPlatform, LabelOutcome},
	)

	StateTokensActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameStateTokensActive,
			Help: HelpTextStateTokensActive,
		},
	)

	StateTokensConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStateTokensConsumed,
			Help: HelpTextStateTokensConsumed,
		},
		[]string{LabelOutcome},
	)
)

// Messaging Metrics
var (
	WebhookMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWebhookMessagesTotal,
			Help: HelpTextWebhookMessagesTotal,
		},
		[]string{LabelType},
	)

	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMessagesSentTotal,
			Help: HelpTextMessagesSentTotal,
		},
		[]string{LabelType},
	)
)
