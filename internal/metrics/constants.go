package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// OAuth metric names
const (
	MetricNameOAuthExchangesTotal  = "oauth_exchanges_total"
	MetricNameTokenRefreshesTotal  = "oauth_token_refreshes_total"
	MetricNameStateTokensActive    = "oauth_state_tokens_active"
	MetricNameStateTokensConsumed  = "oauth_state_tokens_consumed_total"
)

// Messaging metric names
const (
	MetricNameWebhookMessagesTotal = "whatsapp_webhook_messages_total"
	MetricNameMessagesSentTotal    = "whatsapp_messages_sent_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// OAuth metric help text
const (
	HelpTextOAuthExchangesTotal = "Total number of OAuth code exchanges"
	HelpTextTokenRefreshesTotal = "Total number of access token refreshes"
	HelpTextStateTokensActive   = "Current number of unconsumed OAuth state tokens"
	HelpTextStateTokensConsumed = "Total number of OAuth state token validations"
)

// Messaging metric help text
const (
	HelpTextWebhookMessagesTotal = "Total number of WhatsApp webhook messages received"
	HelpTextMessagesSentTotal    = "Total number of WhatsApp messages sent"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelPlatform = "platform"
	LabelOutcome  = "outcome"
	LabelType     = "type"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
