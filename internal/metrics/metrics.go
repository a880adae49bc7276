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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	CraftsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftsStarted,
			Help: HelpTextCraftsStarted,
		},
		[]string{LabelProfession},
	)

	CraftActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftActions,
			Help: HelpTextCraftActions,
		},
		[]string{LabelResult},
	)

	CraftsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftsCompleted,
			Help: HelpTextCraftsCompleted,
		},
		[]string{LabelProfession, LabelResult, LabelQuality},
	)

	LevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
		[]string{LabelProfession},
	)

	MaterialsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMaterialConsumed,
			Help: HelpTextMaterialConsumed,
		},
		[]string{LabelMaterial},
	)
)
