package container

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration is returned when a call site is missing something it
	// must always supply: a container built with New, a non-empty identifier,
	// or an implementation.
	ErrConfiguration = errors.New("container: configuration error")

	// ErrNotRegistered is returned by Get for an identifier with no binding.
	ErrNotRegistered = errors.New("container: not registered")

	// ErrMissingArguments is returned when a Class binding has no entry in the
	// constructor argument table.
	ErrMissingArguments = errors.New("container: missing constructor arguments")

	// ErrNoImplementation is returned when a binding is neither a class, a
	// factory nor a value.
	ErrNoImplementation = errors.New("container: no implementation")

	// ErrUnresolvedDependency is returned when a declared dependency has no
	// binding.
	ErrUnresolvedDependency = errors.New("container: unresolved dependency")

	// ErrCircularDependency is returned when a constructor asks for an
	// ancestor that is still under construction through a parameter that
	// cannot hold a Lazy handle.
	ErrCircularDependency = errors.New("container: circular dependency")

	// ErrArgumentCount is returned when the argument table entry does not
	// match the constructor arity.
	ErrArgumentCount = errors.New("container: argument count mismatch")

	// ErrArgumentType is returned when a resolved dependency is not
	// assignable to the constructor parameter it feeds.
	ErrArgumentType = errors.New("container: argument type mismatch")

	// ErrConstruction wraps an error returned by a constructor or factory.
	ErrConstruction = errors.New("container: construction failed")

	// ErrMaxDepth is returned when resolution recurses deeper than the
	// configured limit.
	ErrMaxDepth = errors.New("container: maximum resolution depth exceeded")

	// ErrUnfilledReference is returned when a forwarding handle is
	// dereferenced before the constructor it stands in for has returned.
	ErrUnfilledReference = errors.New("container: reference not yet filled")
)

// ResolutionError describes a failure during Get. Kind is one of the
// package sentinels and is matched by errors.Is.
type ResolutionError struct {
	Kind error

	// ID is the identifier whose resolution failed.
	ID string

	// Dependency is set when the failure concerns one of ID's dependencies.
	Dependency string

	// Chain is the active resolution path, outermost first, ending with ID.
	Chain []string

	// Err is the underlying cause, if any (a constructor error, for example).
	Err error
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Dependency != "" {
		fmt.Fprintf(&b, ": %q required by %q", e.Dependency, e.ID)
	} else {
		fmt.Fprintf(&b, ": %q", e.ID)
	}
	if len(e.Chain) > 0 {
		b.WriteString(" (chain: ")
		b.WriteString(strings.Join(e.Chain, " -> "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the sentinel kind and the underlying cause.
func (e *ResolutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UnfilledReferenceError is raised by Lazy.Get when the referenced service
// has not finished construction.
type UnfilledReferenceError struct{ ID string }

func (e *UnfilledReferenceError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnfilledReference, e.ID)
}

func (e *UnfilledReferenceError) Unwrap() error { return ErrUnfilledReference }

func configErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfiguration}, args...)...)
}
