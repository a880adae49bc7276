package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameCraftsStarted    = "crafts_started_total"
	MetricNameCraftActions     = "craft_actions_total"
	MetricNameCraftsCompleted  = "crafts_completed_total"
	MetricNameLevelUps         = "profession_level_ups_total"
	MetricNameMaterialConsumed = "crafting_materials_consumed_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextCraftsStarted    = "Total number of crafting sessions started"
	HelpTextCraftActions     = "Total number of minigame actions resolved"
	HelpTextCraftsCompleted  = "Total number of crafting sessions completed"
	HelpTextLevelUps         = "Total number of profession level-ups awarded"
	HelpTextMaterialConsumed = "Total quantity of crafting materials consumed"
)

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelProfession = "profession"
	LabelResult     = "result"
	LabelQuality    = "quality"
	LabelMaterial   = "material"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
