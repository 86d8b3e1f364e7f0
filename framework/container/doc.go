// Package container is a string-keyed dependency injection container.
//
// # Overview
//
// A Container stores bindings (how to build a service) under string
// identifiers and builds them on demand. Dependencies between services are
// declared as ordered lists of identifiers, one per constructor parameter,
// and resolved recursively. Singleton bindings are cached; transient
// bindings are rebuilt on every Get.
//
// # Bindings
//
//	c := container.New()
//
//	// Constructor with dependencies, injected positionally
//	c.RegisterSingleton("mailer", container.Class(NewMailer, "config", "logger"))
//
//	// Zero-argument factory, fresh value each time
//	c.RegisterTransient("request-id", container.Factory(newRequestID))
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
// Registering an identifier again replaces its binding and drops any cached
// instance, so the next Get builds from the new binding.
//
// # Resolving
//
//	raw, err := c.Get("mailer")
//	mailer, err := container.Resolve[*Mailer](c, "mailer")
//
// # Circular dependencies
//
// When a constructor depends on a service that is one of its own ancestors
// in the current resolution, the container passes a forwarding handle for
// the ancestor instead of building it again. The parameter must be declared
// as Lazy[T]:
//
//	func NewA(b *B) *A                 { return &A{b: b} }
//	func NewB(a container.Lazy[*A]) *B { return &B{a: a} }
//
//	c.RegisterSingleton("a", container.Class(NewA, "b"))
//	c.RegisterSingleton("b", container.Class(NewB, "a"))
//	a, _ := container.Resolve[*A](c, "a") // a.b.a.Get() == a
//
// The handle is filled as soon as the ancestor's constructor returns. It
// must not be dereferenced from inside the constructor that receives it.
//
// # Argument metadata
//
// Class(ctor, deps...) records deps in the constructor argument table. A
// Class registered without deps takes its list from the table instead,
// populated with SetArguments or by a store passed to WithArgumentTable.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    return app.RegisterSingleton("mailer", container.Class(NewMailer, "config"))
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
package container
