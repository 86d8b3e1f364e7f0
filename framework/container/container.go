package container

import (
	"go.uber.org/zap"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is a string-keyed service container.
//
// It owns three pieces of state: the registry (identifier → binding), the
// constructor argument table (identifier → ordered dependency identifiers)
// and the singleton instance cache. Instances are built lazily on Get.
//
// A Container is not safe for concurrent use. Registration and resolution
// assume a single writer; wrap the stores with NewSyncStore or hold an
// external lock when sharing one across goroutines.
type Container struct {
	registry  registry
	arguments argumentTable
	instances instanceCache

	logger   *zap.Logger
	observer Observer
	maxDepth int
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		registry:  registry{store: NewMapStore[Record]()},
		arguments: argumentTable{store: NewMapStore[[]string]()},
		instances: instanceCache{store: NewMapStore[any]()},
		logger:    zap.NewNop(),
		observer:  nopObserver{},
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// RegisterSingleton binds id to impl; the first Get builds the instance and
// later calls return that same instance.
//
//	c.RegisterSingleton("logger", container.Class(NewLogger))
func (c *Container) RegisterSingleton(id string, impl Implementation) error {
	return c.Register(Singleton, id, impl)
}

// RegisterTransient binds id to impl; every Get builds a fresh instance.
//
//	c.RegisterTransient("request", container.Class(NewRequest, "config"))
func (c *Container) RegisterTransient(id string, impl Implementation) error {
	return c.Register(Transient, id, impl)
}

// Instance binds a pre-built value as a singleton.
//
//	c.Instance("config", cfg)
func (c *Container) Instance(id string, v any) error {
	return c.Register(Singleton, id, Value(v))
}

// Register stores a binding for id, replacing any earlier one. A cached
// instance for id is evicted first so the next Get builds from impl.
func (c *Container) Register(kind Kind, id string, impl Implementation) error {
	if err := c.check(id); err != nil {
		return err
	}
	if kind != Singleton && kind != Transient {
		return configErr("unknown kind %d for %q", int(kind), id)
	}
	if err := impl.validate(); err != nil {
		return &ResolutionError{Kind: ErrNoImplementation, ID: id, Err: err}
	}

	evicted := c.instances.clear(id)
	prev, replaced := c.registry.lookup(id)

	// The argument table only holds lists for class bindings. A list the
	// previous binding declared is dropped unless the new one declares its
	// own; one supplied through SetArguments is left alone.
	switch {
	case impl.shape == ShapeClass && impl.declared:
		c.arguments.set(id, impl.deps)
	case impl.shape != ShapeClass:
		c.arguments.clear(id)
	case replaced && prev.Implementation.shape == ShapeClass && prev.Implementation.declared:
		c.arguments.clear(id)
	}
	c.registry.put(Record{ID: id, Kind: kind, Implementation: impl})

	c.logger.Debug("registered",
		zap.String("id", id),
		zap.Stringer("kind", kind),
		zap.Stringer("shape", impl.shape),
		zap.Bool("replaced", replaced),
		zap.Bool("evicted", evicted),
	)
	c.observer.Registered(id, kind, replaced)
	return nil
}

// SetArguments sets the ordered dependency identifiers injected into the
// constructor bound to id. It is the hook for external metadata sources;
// Class(ctor, deps...) calls it implicitly.
func (c *Container) SetArguments(id string, deps []string) error {
	if err := c.check(id); err != nil {
		return err
	}
	c.arguments.set(id, deps)
	return nil
}

// Arguments returns a copy of the dependency list stored for id.
func (c *Container) Arguments(id string) ([]string, bool) {
	if c.check(id) != nil {
		return nil, false
	}
	deps, ok := c.arguments.get(id)
	if !ok {
		return nil, false
	}
	return append([]string{}, deps...), true
}

// ── Queries ───────────────────────────────────────────────────────────────────

// Has reports whether id is registered, whether or not it was ever built.
func (c *Container) Has(id string) bool {
	if c.check(id) != nil {
		return false
	}
	return c.registry.has(id)
}

// Lookup returns the binding stored for id.
func (c *Container) Lookup(id string) (Record, bool) {
	if c.check(id) != nil {
		return Record{}, false
	}
	return c.registry.lookup(id)
}

// Resolved reports whether a singleton instance for id is currently cached.
func (c *Container) Resolved(id string) bool {
	if c.check(id) != nil {
		return false
	}
	_, ok := c.instances.get(id)
	return ok
}

// Binding is a read-only view of one registration, for debugging.
type Binding struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	Shape     string   `json:"shape"`
	Type      string   `json:"type,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	Resolved  bool     `json:"resolved"`
	Deferred  bool     `json:"deferred,omitempty"`
}

// Bindings describes every registration, ordered by the registry store's
// Keys (sorted for the default store).
func (c *Container) Bindings() []Binding {
	if c.ready() != nil {
		return nil
	}
	keys := c.registry.store.Keys()
	out := make([]Binding, 0, len(keys))
	for _, id := range keys {
		if b, ok := c.Describe(id); ok {
			out = append(out, b)
		}
	}
	return out
}

// Describe returns the Binding view for id.
func (c *Container) Describe(id string) (Binding, bool) {
	rec, ok := c.Lookup(id)
	if !ok {
		return Binding{}, false
	}
	b := Binding{
		ID:       id,
		Kind:     rec.Kind.String(),
		Shape:    rec.Implementation.shape.String(),
		Resolved: c.Resolved(id),
		Deferred: rec.Implementation.deferred,
	}
	if t := rec.Implementation.Type(); t != nil {
		b.Type = t.String()
	}
	if rec.Implementation.shape == ShapeClass {
		b.Arguments, _ = c.Arguments(id)
	}
	return b, true
}

// ready rejects a nil or zero Container.
func (c *Container) ready() error {
	if c == nil || c.registry.store == nil {
		return configErr("container not initialised, use container.New")
	}
	return nil
}

// check rejects calls that are missing what every call site must supply.
func (c *Container) check(id string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if id == "" {
		return configErr("empty identifier")
	}
	return nil
}
