package container

// Kind controls how many instances a binding produces.
type Kind int

const (
	// Singleton bindings are constructed once and cached until re-registered.
	Singleton Kind = iota

	// Transient bindings are constructed on every Get and never cached.
	Transient
)

func (k Kind) String() string {
	switch k {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

// Record is a stored binding.
type Record struct {
	ID             string
	Kind           Kind
	Implementation Implementation
}

// ── State ────────────────────────────────────────────────────────────────────

// registry maps identifiers to their records.
type registry struct{ store Store[Record] }

func (r registry) has(id string) bool {
	_, ok := r.store.Get(id)
	return ok
}

func (r registry) lookup(id string) (Record, bool) { return r.store.Get(id) }

func (r registry) put(rec Record) { r.store.Set(rec.ID, rec) }

// argumentTable maps class identifiers to their ordered dependency lists.
type argumentTable struct{ store Store[[]string] }

func (t argumentTable) set(id string, deps []string) {
	t.store.Set(id, append([]string{}, deps...))
}

func (t argumentTable) get(id string) ([]string, bool) { return t.store.Get(id) }

func (t argumentTable) clear(id string) { t.store.Delete(id) }

// instanceCache holds constructed singletons.
type instanceCache struct{ store Store[any] }

func (c instanceCache) get(id string) (any, bool) { return c.store.Get(id) }

func (c instanceCache) set(id string, v any) { c.store.Set(id, v) }

func (c instanceCache) clear(id string) bool {
	_, ok := c.store.Get(id)
	if ok {
		c.store.Delete(id)
	}
	return ok
}
