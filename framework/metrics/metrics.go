// Package metrics exposes container activity as Prometheus metrics.
//
// A Collector implements container.Observer; install it when building the
// container and mount Handler on the router:
//
//	m := metrics.New(prometheus.NewRegistry())
//	c := container.New(container.WithObserver(m))
//	r.Mount("/metrics", m.Handler())
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-inject/framework/container"
)

const namespace = "inject"

// Collector counts registrations, resolutions and failures.
type Collector struct {
	gatherer prometheus.Gatherer

	Registrations *prometheus.CounterVec
	Resolutions   *prometheus.CounterVec
	Failures      *prometheus.CounterVec
	Construction  *prometheus.HistogramVec
}

// New creates a Collector and registers its metrics with reg.
func New(reg *prometheus.Registry) *Collector {
	m := &Collector{
		gatherer: reg,
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "container",
				Name:      "registrations_total",
				Help:      "Bindings stored, by kind and whether an earlier binding was replaced.",
			},
			[]string{"kind", "replaced"},
		),
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "container",
				Name:      "resolutions_total",
				Help:      "Instances produced, by kind and source (cache | constructed).",
			},
			[]string{"kind", "source"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "container",
				Name:      "failures_total",
				Help:      "Failed Get calls, by reason.",
			},
			[]string{"reason"},
		),
		Construction: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "container",
				Name:      "construction_seconds",
				Help:      "Time spent constructing instances, dependencies included.",
				Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(m.Registrations, m.Resolutions, m.Failures, m.Construction)
	return m
}

func (m *Collector) Registered(_ string, kind container.Kind, replaced bool) {
	m.Registrations.WithLabelValues(kind.String(), strconv.FormatBool(replaced)).Inc()
}

func (m *Collector) Resolved(_ string, kind container.Kind, cached bool, took time.Duration) {
	if cached {
		m.Resolutions.WithLabelValues(kind.String(), "cache").Inc()
		return
	}
	m.Resolutions.WithLabelValues(kind.String(), "constructed").Inc()
	m.Construction.WithLabelValues(kind.String()).Observe(took.Seconds())
}

func (m *Collector) Failed(_ string, err error) {
	m.Failures.WithLabelValues(Reason(err)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

var reasons = []struct {
	err   error
	label string
}{
	{container.ErrConfiguration, "configuration"},
	{container.ErrNotRegistered, "not_registered"},
	{container.ErrMissingArguments, "missing_arguments"},
	{container.ErrNoImplementation, "no_implementation"},
	{container.ErrUnresolvedDependency, "unresolved_dependency"},
	{container.ErrCircularDependency, "circular_dependency"},
	{container.ErrArgumentCount, "argument_count"},
	{container.ErrArgumentType, "argument_type"},
	{container.ErrMaxDepth, "max_depth"},
	{container.ErrConstruction, "construction"},
}

// Reason maps a container error to a low-cardinality label.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "other"
}
