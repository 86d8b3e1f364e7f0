package container

import (
	"errors"
	"fmt"
	"reflect"
)

// Skip marks a constructor parameter the container does not inject. The
// parameter receives its zero value.
const Skip = ""

// Shape says how an Implementation builds its instance.
type Shape int

const (
	// ShapeNone is the zero Shape; a binding with this shape cannot be built.
	ShapeNone Shape = iota
	ShapeClass
	ShapeFactory
	ShapeValue
)

func (s Shape) String() string {
	switch s {
	case ShapeClass:
		return "class"
	case ShapeFactory:
		return "factory"
	case ShapeValue:
		return "value"
	default:
		return "none"
	}
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Implementation is how a binding builds its instance. Build one with Class,
// Factory or Value; the zero Implementation is rejected by Register.
type Implementation struct {
	shape Shape
	fn    reflect.Value
	value any

	// deps and declared carry the argument list declared by Class. declared
	// is false when Class was called without deps.
	deps     []string
	declared bool

	// deferred marks the placeholder a ProviderRegistry binds for a
	// deferred provider.
	deferred bool

	err error
}

// Class binds a constructor function of the form func(deps...) T or
// func(deps...) (T, error). deps lists, in parameter order, the identifier
// injected into each parameter; use Skip for parameters the container should
// leave at their zero value.
//
//	c.RegisterSingleton("mailer", container.Class(NewMailer, "config", "logger"))
//
// When deps is omitted for a constructor that takes parameters, the argument
// list must be supplied separately with SetArguments.
func Class(ctor any, deps ...string) Implementation {
	fn, err := checkFunc(ctor, "class")
	if err != nil {
		return Implementation{err: err}
	}
	impl := Implementation{shape: ShapeClass, fn: fn}
	if len(deps) > 0 || fn.Type().NumIn() == 0 {
		impl.deps = append([]string{}, deps...)
		impl.declared = true
	}
	return impl
}

// Factory binds a zero-argument function of the form func() T or
// func() (T, error). The argument table is never consulted for factories.
//
//	c.RegisterTransient("request-id", container.Factory(uuid.NewString))
func Factory(fn any) Implementation {
	v, err := checkFunc(fn, "factory")
	if err != nil {
		return Implementation{err: err}
	}
	if n := v.Type().NumIn(); n != 0 {
		return Implementation{err: fmt.Errorf("factory must take no arguments, got %d", n)}
	}
	return Implementation{shape: ShapeFactory, fn: v}
}

// Value binds a pre-built instance. Construction is a no-op and the value
// is returned as-is on every Get, whatever the binding kind.
func Value(v any) Implementation {
	return Implementation{shape: ShapeValue, value: v}
}

// Shape reports how the implementation builds its instance.
func (i Implementation) Shape() Shape { return i.shape }

// Type returns the type the implementation produces, or nil when unknown
// (a nil Value, or an invalid implementation).
func (i Implementation) Type() reflect.Type {
	switch i.shape {
	case ShapeClass, ShapeFactory:
		return i.fn.Type().Out(0)
	case ShapeValue:
		return reflect.TypeOf(i.value)
	}
	return nil
}

func (i Implementation) validate() error {
	if i.err != nil {
		return i.err
	}
	if i.shape == ShapeNone {
		return errors.New("implementation is neither class, factory nor value")
	}
	return nil
}

func checkFunc(fn any, what string) (reflect.Value, error) {
	if fn == nil {
		return reflect.Value{}, fmt.Errorf("%s is nil", what)
	}
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return reflect.Value{}, fmt.Errorf("%s must be a function, got %s", what, t)
	}
	if v.IsNil() {
		return reflect.Value{}, fmt.Errorf("%s is a nil function", what)
	}
	if t.IsVariadic() {
		return reflect.Value{}, fmt.Errorf("%s must not be variadic", what)
	}
	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errorType {
			return reflect.Value{}, fmt.Errorf("%s second result must be error, got %s", what, t.Out(1))
		}
	default:
		return reflect.Value{}, fmt.Errorf("%s must return (T) or (T, error)", what)
	}
	return v, nil
}

// call invokes fn with args and splits the (T, error) result.
func call(fn reflect.Value, args []reflect.Value) (any, error) {
	out := fn.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}
