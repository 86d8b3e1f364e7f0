package container

import (
	"errors"
	"fmt"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations.
//
// Register binds services and must not resolve anything. Boot runs after
// every eager provider has been registered and may resolve freely.
//
//	type MailProvider struct{ container.BaseProvider }
//
//	func (p *MailProvider) Register(app *container.Container) error {
//	    return app.RegisterSingleton("mailer", container.Class(NewMailer, "config", "logger"))
//	}
type ServiceProvider interface {
	Register(app *Container) error
	Boot(app *Container) error

	// Provides lists the identifiers a deferred provider registers.
	Provides() []string

	// IsDeferred reports whether Register should wait until one of the
	// Provides identifiers is first requested.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable no-op implementation of Boot, Provides and
// IsDeferred.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders against one
// container, loading deferred providers on first use.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	registered map[ServiceProvider]bool
	loaded     map[ServiceProvider]bool
	loading    map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
		loaded:     make(map[ServiceProvider]bool),
		loading:    make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Eager providers register immediately (and boot
// immediately if the registry is already booted). Deferred providers get a
// placeholder binding for each identifier they provide.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if provider == nil {
		return fmt.Errorf("%w: nil provider", ErrConfiguration)
	}
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		return r.deferProvider(provider)
	}

	if err := provider.Register(r.app); err != nil {
		return fmt.Errorf("registering %T: %w", provider, err)
	}
	r.eager = append(r.eager, provider)

	if r.booted {
		return r.boot(provider)
	}
	return nil
}

// deferProvider binds a transient placeholder for every provided identifier. The
// first Get of any of them runs the provider's Register, which overwrites
// the placeholders, and then resolves the real binding.
func (r *ProviderRegistry) deferProvider(provider ServiceProvider) error {
	provides := provider.Provides()
	if len(provides) == 0 {
		return fmt.Errorf("%w: deferred provider %T provides nothing", ErrConfiguration, provider)
	}
	for _, id := range provides {
		impl := Factory(func() (any, error) {
			if err := r.load(provider); err != nil {
				return nil, err
			}
			if rec, ok := r.app.Lookup(id); !ok || rec.Implementation.deferred {
				return nil, fmt.Errorf("deferred provider %T did not register %q", provider, id)
			}
			return r.app.Get(id)
		})
		impl.deferred = true
		if err := r.app.RegisterTransient(id, impl); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProviderRegistry) load(provider ServiceProvider) error {
	if r.loaded[provider] {
		return nil
	}
	if r.loading[provider] {
		return fmt.Errorf("deferred provider %T resolved its own binding while registering", provider)
	}
	r.loading[provider] = true
	err := provider.Register(r.app)
	delete(r.loading, provider)
	if err != nil {
		return fmt.Errorf("registering %T: %w", provider, err)
	}
	r.loaded[provider] = true
	if r.booted {
		return r.boot(provider)
	}
	return nil
}

// Boot boots every eager provider. Later calls are no-ops.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	var errs []error
	for _, provider := range r.eager {
		if err := r.boot(provider); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *ProviderRegistry) boot(provider ServiceProvider) error {
	if err := provider.Boot(r.app); err != nil {
		return fmt.Errorf("booting %T: %w", provider, err)
	}
	return nil
}

// Booted reports whether Boot has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the eager providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
