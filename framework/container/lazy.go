package container

import (
	"fmt"
	"reflect"
)

// Ref is a single-assignment cell standing in for an instance that is still
// being constructed. The engine fills it exactly once, as soon as the
// constructor it stands in for returns.
type Ref struct {
	id     string
	value  any
	filled bool
}

func newRef(id string) *Ref { return &Ref{id: id} }

// ID returns the identifier the reference stands in for.
func (r *Ref) ID() string { return r.id }

// Filled reports whether the referenced instance is available.
func (r *Ref) Filled() bool { return r != nil && r.filled }

// Value returns the referenced instance, or ErrUnfilledReference when its
// constructor has not returned yet.
func (r *Ref) Value() (any, error) {
	if !r.Filled() {
		id := ""
		if r != nil {
			id = r.id
		}
		return nil, &UnfilledReferenceError{ID: id}
	}
	return r.value, nil
}

func (r *Ref) fill(v any) {
	if r.filled {
		panic(fmt.Sprintf("container: reference %q filled twice", r.id))
	}
	r.value = v
	r.filled = true
}

// Lazy is a typed forwarding handle. Declare a constructor parameter as
// Lazy[T] to accept a service that may still be under construction when the
// constructor runs, which is how two services can hold each other:
//
//	func NewA(b *B) *A        { return &A{B: b} }
//	func NewB(a container.Lazy[*A]) *B { return &B{A: a} }
//
// The handle must not be dereferenced inside the constructor that receives
// it; Get panics and Resolve errors until the referenced constructor has
// returned.
type Lazy[T any] struct {
	ref *Ref
}

// Get returns the referenced instance. It panics with an
// *UnfilledReferenceError when called too early.
func (l Lazy[T]) Get() T {
	v, err := l.Resolve()
	if err != nil {
		panic(err)
	}
	return v
}

// Resolve returns the referenced instance or an error when the reference is
// not yet filled or holds a value that is not a T.
func (l Lazy[T]) Resolve() (T, error) {
	var zero T
	raw, err := l.ref.Value()
	if err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, nil
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T, not %s", ErrArgumentType, l.ref.id, raw, l.target())
	}
	return v, nil
}

// Ready reports whether Get can be called without panicking.
func (l Lazy[T]) Ready() bool { return l.ref.Filled() }

// ID returns the identifier the handle refers to.
func (l Lazy[T]) ID() string {
	if l.ref == nil {
		return ""
	}
	return l.ref.id
}

func (l *Lazy[T]) bindRef(r *Ref) { l.ref = r }

func (l Lazy[T]) target() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// refBinder is implemented by *Lazy[T] for every T.
type refBinder interface {
	bindRef(*Ref)
	target() reflect.Type
}

var (
	refBinderType = reflect.TypeOf((*refBinder)(nil)).Elem()
	refPtrType    = reflect.TypeOf((*Ref)(nil))
)

// acceptsRef reports whether a parameter of type t can receive a forwarding
// handle.
func acceptsRef(t reflect.Type) bool {
	return t == refPtrType || reflect.PointerTo(t).Implements(refBinderType)
}

// refArg builds the argument value for a parameter of type t from r. t must
// satisfy acceptsRef.
func refArg(t reflect.Type, r *Ref) reflect.Value {
	if t == refPtrType {
		return reflect.ValueOf(r)
	}
	lv := reflect.New(t)
	lv.Interface().(refBinder).bindRef(r)
	return lv.Elem()
}

// refTarget returns the type a Lazy parameter forwards to, or nil for *Ref.
func refTarget(t reflect.Type) reflect.Type {
	if t == refPtrType {
		return nil
	}
	return reflect.New(t).Interface().(refBinder).target()
}
