package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	FormsCreated      prometheus.Counter
	FormsUpdated      prometheus.Counter
	FormsDeleted      prometheus.Counter
	ResponsesAccepted prometheus.Counter
	ResponsesRejected prometheus.Counter
	RenderCacheHits   prometheus.Counter
	RenderCacheMisses prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on the given registerer. Tests pass a fresh
// registry so repeated construction does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FormsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "oppform_forms_created_total",
			Help: "Total number of opportunity forms created",
		}),
		FormsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "oppform_forms_updated_total",
			Help: "Total number of opportunity form updates applied",
		}),
		FormsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "oppform_forms_deleted_total",
			Help: "Total number of opportunity forms deleted",
		}),
		ResponsesAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "oppform_responses_accepted_total",
			Help: "Total number of form responses that passed validation and were stored",
		}),
		ResponsesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "oppform_responses_rejected_total",
			Help: "Total number of form submissions rejected by validation",
		}),
		RenderCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "oppform_render_cache_hits_total",
			Help: "Rendered form cache hits",
		}),
		RenderCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "oppform_render_cache_misses_total",
			Help: "Rendered form cache misses",
		}),
	}
}
