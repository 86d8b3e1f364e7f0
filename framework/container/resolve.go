package container

import (
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"
)

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves id, building it and its dependencies as needed.
//
//	svc, err := c.Get("mailer")
func (c *Container) Get(id string) (any, error) {
	if err := c.check(id); err != nil {
		return nil, err
	}
	inst, found, err := c.resolve(id, nil)
	if err == nil && !found {
		err = &ResolutionError{Kind: ErrNotRegistered, ID: id}
	}
	if err != nil {
		c.logger.Debug("resolve failed", zap.String("id", id), zap.Error(err))
		c.observer.Failed(id, err)
		return nil, err
	}
	return inst, nil
}

// Make is like Get but panics on failure.
func (c *Container) Make(id string) any {
	inst, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return inst
}

// link is one entry of the active resolution path: an identifier whose
// constructor has not returned yet, and the handle standing in for it.
type link struct {
	id  string
	ref *Ref
}

// resolve builds id. found is false when id has no binding; callers decide
// whether that is an error. chain holds the ancestors of id, outermost first.
func (c *Container) resolve(id string, chain []link) (inst any, found bool, err error) {
	if c.maxDepth > 0 && len(chain) >= c.maxDepth {
		return nil, false, c.fail(ErrMaxDepth, id, "", chain, nil)
	}

	rec, ok := c.registry.lookup(id)
	if !ok {
		return nil, false, nil
	}

	if rec.Kind == Singleton {
		if cached, ok := c.instances.get(id); ok {
			c.logger.Debug("cache hit", zap.String("id", id))
			c.observer.Resolved(id, rec.Kind, true, 0)
			return cached, true, nil
		}
	}

	start := time.Now()
	self := link{id: id, ref: newRef(id)}
	impl := rec.Implementation

	switch impl.shape {
	case ShapeClass:
		inst, err = c.construct(rec, self, chain)
	case ShapeFactory:
		inst, err = call(impl.fn, nil)
		if err != nil {
			err = c.fail(ErrConstruction, id, "", chain, err)
		}
	case ShapeValue:
		inst = impl.value
	default:
		err = c.fail(ErrNoImplementation, id, "", chain, nil)
	}
	if err != nil {
		return nil, true, err
	}
	self.ref.fill(inst)

	if rec.Kind == Singleton {
		c.instances.set(id, inst)
	}

	took := time.Since(start)
	c.logger.Debug("constructed",
		zap.String("id", id),
		zap.Stringer("kind", rec.Kind),
		zap.Strings("chain", ids(chain)),
		zap.Duration("took", took),
	)
	c.observer.Resolved(id, rec.Kind, false, took)
	return inst, true, nil
}

// construct calls a class constructor with its dependencies resolved in
// declared order. A dependency that is an ancestor in chain receives the
// ancestor's handle instead of being resolved again; that is what lets a
// cycle terminate.
func (c *Container) construct(rec Record, self link, chain []link) (any, error) {
	id := rec.ID
	deps, ok := c.arguments.get(id)
	if !ok {
		return nil, c.fail(ErrMissingArguments, id, "", chain, nil)
	}

	fn := rec.Implementation.fn
	ft := fn.Type()
	if len(deps) != ft.NumIn() {
		return nil, c.fail(ErrArgumentCount, id, "", chain,
			fmt.Errorf("constructor takes %d parameters, argument table lists %d", ft.NumIn(), len(deps)))
	}

	next := make([]link, len(chain), len(chain)+1)
	copy(next, chain)
	next = append(next, self)

	args := make([]reflect.Value, len(deps))
	for i, dep := range deps {
		pt := ft.In(i)

		if dep == Skip {
			args[i] = reflect.Zero(pt)
			continue
		}

		if anc, ok := ancestor(chain, dep); ok {
			if !acceptsRef(pt) {
				return nil, c.fail(ErrCircularDependency, id, dep, chain,
					fmt.Errorf("parameter %d (%s) cannot take a reference to %q under construction, declare it as container.Lazy", i, pt, dep))
			}
			c.logger.Debug("deferred reference", zap.String("id", id), zap.String("dependency", dep))
			args[i] = refArg(pt, anc.ref)
			continue
		}

		v, found, err := c.resolve(dep, next)
		if err != nil {
			return nil, err
		}
		if !found && !c.registry.has(dep) {
			return nil, c.fail(ErrUnresolvedDependency, id, dep, chain, nil)
		}

		arg, err := argValue(pt, dep, v)
		if err != nil {
			return nil, c.fail(ErrArgumentType, id, dep, chain, err)
		}
		args[i] = arg
	}

	inst, err := call(fn, args)
	if err != nil {
		return nil, c.fail(ErrConstruction, id, "", chain, err)
	}
	return inst, nil
}

// argValue adapts a resolved dependency to a parameter of type pt.
func argValue(pt reflect.Type, dep string, v any) (reflect.Value, error) {
	if acceptsRef(pt) {
		if target := refTarget(pt); target != nil && v != nil && !reflect.TypeOf(v).AssignableTo(target) {
			return reflect.Value{}, fmt.Errorf("%T is not assignable to %s", v, pt)
		}
		r := newRef(dep)
		r.fill(v)
		return refArg(pt, r), nil
	}
	if v == nil {
		return reflect.Zero(pt), nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(pt) {
		return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", rv.Type(), pt)
	}
	return rv, nil
}

func ancestor(chain []link, id string) (link, bool) {
	for _, l := range chain {
		if l.id == id {
			return l, true
		}
	}
	return link{}, false
}

func ids(chain []link) []string {
	out := make([]string, len(chain))
	for i, l := range chain {
		out[i] = l.id
	}
	return out
}

// fail builds a ResolutionError for id; the reported chain ends with id.
func (c *Container) fail(kind error, id, dep string, chain []link, cause error) error {
	return &ResolutionError{
		Kind:       kind,
		ID:         id,
		Dependency: dep,
		Chain:      append(ids(chain), id),
		Err:        cause,
	}
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Get and type-asserts the result.
//
//	mailer, err := container.Resolve[*Mailer](c, "mailer")
func Resolve[T any](c *Container, id string) (T, error) {
	var zero T
	inst, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	if inst == nil {
		return zero, nil
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q resolved to %T, not %s", ErrArgumentType, id, inst, reflect.TypeOf((*T)(nil)).Elem())
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure.
func MustResolve[T any](c *Container, id string) T {
	v, err := Resolve[T](c, id)
	if err != nil {
		panic(err)
	}
	return v
}
