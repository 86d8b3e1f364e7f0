package container

import (
	"time"

	"go.uber.org/zap"
)

// DefaultMaxDepth is the resolution depth limit applied by New.
const DefaultMaxDepth = 512

// Observer receives resolution events. Callbacks run synchronously on the
// resolving goroutine and must not call back into the container.
type Observer interface {
	// Registered is called after a binding is stored. replaced is true when
	// an earlier binding for id was overwritten.
	Registered(id string, kind Kind, replaced bool)

	// Resolved is called for every identifier the engine produces an
	// instance for, including nested dependencies. cached is true when the
	// instance came from the singleton cache.
	Resolved(id string, kind Kind, cached bool, took time.Duration)

	// Failed is called once per failed Get.
	Failed(id string, err error)
}

// Option configures a Container in New.
type Option func(*Container)

// WithRegistry replaces the store backing the service registry.
func WithRegistry(s Store[Record]) Option {
	return func(c *Container) {
		if s != nil {
			c.registry = registry{store: s}
		}
	}
}

// WithArgumentTable replaces the store backing the constructor argument
// table. A pre-populated store acts as the argument metadata source for
// Class bindings registered without explicit deps.
func WithArgumentTable(s Store[[]string]) Option {
	return func(c *Container) {
		if s != nil {
			c.arguments = argumentTable{store: s}
		}
	}
}

// WithInstanceCache replaces the store backing the singleton cache.
func WithInstanceCache(s Store[any]) Option {
	return func(c *Container) {
		if s != nil {
			c.instances = instanceCache{store: s}
		}
	}
}

// WithLogger sets the logger used for debug tracing. The default discards.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver installs an Observer.
func WithObserver(o Observer) Option {
	return func(c *Container) { c.observer = o }
}

// WithMaxDepth bounds how deep a single Get may recurse. n <= 0 removes the
// bound, in which case a cycle that never reaches an ancestor overflows the
// goroutine stack.
func WithMaxDepth(n int) Option {
	return func(c *Container) { c.maxDepth = n }
}

type nopObserver struct{}

func (nopObserver) Registered(string, Kind, bool)              {}
func (nopObserver) Resolved(string, Kind, bool, time.Duration) {}
func (nopObserver) Failed(string, error)                       {}
