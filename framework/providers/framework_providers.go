// Package providers holds the service providers every Application starts
// with. Each one binds a single framework service under a well-known id.
package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/inspect"
	"github.com/km-arc/go-inject/framework/logging"
	"github.com/km-arc/go-inject/framework/metrics"
	"github.com/km-arc/go-inject/framework/routing"
)

// Well-known ids of the framework bindings.
const (
	ConfigID    = "config"
	LoggerID    = "logger"
	MetricsID   = "metrics"
	ContainerID = "container"
	InspectID   = "inspect"
	RouterID    = "router"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds "config" to a *config.Config. When Config is
// nil the configuration is loaded from EnvFiles on registration.
type ConfigServiceProvider struct {
	container.BaseProvider
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	cfg := p.Config
	if cfg == nil {
		cfg = config.Load(p.EnvFiles...)
	}
	return app.Instance(ConfigID, cfg)
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds "logger" to a *zap.Logger. A preset Logger is
// bound as a value; otherwise one is built from "config" on first use.
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(app *container.Container) error {
	if p.Logger != nil {
		return app.Instance(LoggerID, p.Logger)
	}
	return app.RegisterSingleton(LoggerID, container.Class(newLogger, ConfigID))
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log)
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider binds "metrics" to a *metrics.Collector backed by
// its own Prometheus registry unless Collector is preset.
type MetricsServiceProvider struct {
	container.BaseProvider
	Collector *metrics.Collector
}

func (p *MetricsServiceProvider) Register(app *container.Container) error {
	if p.Collector != nil {
		return app.Instance(MetricsID, p.Collector)
	}
	return app.RegisterSingleton(MetricsID, container.Factory(func() *metrics.Collector {
		return metrics.New(prometheus.NewRegistry())
	}))
}

// ── InspectServiceProvider ────────────────────────────────────────────────────

// InspectServiceProvider is deferred: the inspection handler is only bound
// the first time something asks for "inspect".
type InspectServiceProvider struct {
	container.BaseProvider
}

func (p *InspectServiceProvider) Register(app *container.Container) error {
	return app.RegisterSingleton(InspectID, container.Class(inspect.New, ContainerID))
}

func (p *InspectServiceProvider) IsDeferred() bool   { return true }
func (p *InspectServiceProvider) Provides() []string { return []string{InspectID} }

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider binds "router" to the HTTP router, with /health,
// /metrics and, when enabled in config, the /bindings inspection API.
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	return app.RegisterSingleton(RouterID, container.Class(newRouter, ConfigID, LoggerID, MetricsID, ContainerID))
}

func newRouter(cfg *config.Config, log *zap.Logger, m *metrics.Collector, c *container.Container) (*routing.Router, error) {
	r := routing.New(log)
	r.Get("/health", health)
	if m != nil {
		r.Mount("/metrics", m.Handler())
	}
	if cfg.Container.Inspect {
		h, err := container.Resolve[*inspect.Handler](c, InspectID)
		if err != nil {
			return nil, err
		}
		h.Routes(r)
	}
	return r, nil
}
