package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	container.BaseProvider
	registerCalled int
	bootCalled     int
}

func (p *eagerProvider) Register(app *container.Container) error {
	p.registerCalled++
	return app.RegisterSingleton("eager-svc", container.Factory(func() string { return "eager" }))
}

func (p *eagerProvider) Boot(app *container.Container) error {
	p.bootCalled++
	return nil
}

// deferredProvider is lazy: only registered when "deferred-svc" is first resolved.
type deferredProvider struct {
	container.BaseProvider
	registerCalled int
	bootCalled     int
}

func (p *deferredProvider) Register(app *container.Container) error {
	p.registerCalled++
	return app.RegisterSingleton("deferred-svc", container.Class(NewLogger))
}

func (p *deferredProvider) Boot(app *container.Container) error {
	p.bootCalled++
	return nil
}

func (p *deferredProvider) IsDeferred() bool   { return true }
func (p *deferredProvider) Provides() []string { return []string{"deferred-svc"} }

// lyingProvider claims to provide an identifier it never registers.
type lyingProvider struct{ container.BaseProvider }

func (p *lyingProvider) Register(app *container.Container) error { return nil }
func (p *lyingProvider) IsDeferred() bool                        { return true }
func (p *lyingProvider) Provides() []string                      { return []string{"ghost"} }

type failingProvider struct{ container.BaseProvider }

func (p *failingProvider) Register(app *container.Container) error { return errBoom }

type failingBootProvider struct{ container.BaseProvider }

func (p *failingBootProvider) Register(app *container.Container) error { return nil }
func (p *failingBootProvider) Boot(app *container.Container) error     { return errBoom }

// multiProvider registers multiple abstracts.
type multiProvider struct {
	container.BaseProvider
}

func (p *multiProvider) Register(app *container.Container) error {
	return errors.Join(
		app.RegisterSingleton("alpha", container.Value("α")),
		app.RegisterSingleton("beta", container.Value("β")),
	)
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_EagerProvider_RegisterCalled(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))

	assert.Equal(t, 1, p.registerCalled, "Register() should be called immediately for eager providers")
	assert.Equal(t, 0, p.bootCalled, "Boot() should not run before registry.Boot()")

	require.NoError(t, reg.Boot())
	assert.Equal(t, 1, p.bootCalled)
}

func TestRegistry_EagerProvider_ServiceResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&eagerProvider{}))
	require.NoError(t, reg.Boot())

	assert.Equal(t, "eager", container.MustResolve[string](c, "eager-svc"))
}

func TestRegistry_Boot_Idempotent(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	assert.False(t, reg.Booted())

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))
	require.NoError(t, reg.Boot())
	require.NoError(t, reg.Boot())

	assert.True(t, reg.Booted())
	assert.Equal(t, 1, p.bootCalled)
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))
	require.NoError(t, reg.Register(p))

	assert.Equal(t, 1, p.registerCalled)
	assert.Len(t, reg.Providers(), 1)
}

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	require.NoError(t, reg.Boot())

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))

	assert.Equal(t, 1, p.bootCalled)
}

func TestRegistry_NilProvider(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	assert.ErrorIs(t, reg.Register(nil), container.ErrConfiguration)
}

func TestRegistry_RegisterError(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	err := reg.Register(&failingProvider{})
	assert.ErrorIs(t, err, errBoom)
}

func TestRegistry_BootError(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	require.NoError(t, reg.Register(&failingBootProvider{}))
	require.NoError(t, reg.Register(&eagerProvider{}))

	err := reg.Boot()
	assert.ErrorIs(t, err, errBoom)
}

// ── Deferred providers ────────────────────────────────────────────────────────

func TestRegistry_DeferredProvider_NotRegisteredEagerly(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	require.NoError(t, reg.Register(p))
	require.NoError(t, reg.Boot())

	assert.Equal(t, 0, p.registerCalled)
	assert.True(t, c.Has("deferred-svc"), "a placeholder binding is visible before first use")

	b, ok := c.Describe("deferred-svc")
	require.True(t, ok)
	assert.True(t, b.Deferred)
}

func TestRegistry_DeferredProvider_RegisteredOnFirstGet(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	require.NoError(t, reg.Register(p))
	require.NoError(t, reg.Boot())

	first := container.MustResolve[*Logger](c, "deferred-svc")
	second := container.MustResolve[*Logger](c, "deferred-svc")

	assert.Same(t, first, second, "the real binding is a singleton")
	assert.Equal(t, 1, p.registerCalled)
	assert.Equal(t, 1, p.bootCalled, "booted on load because the registry was already booted")

	b, _ := c.Describe("deferred-svc")
	assert.False(t, b.Deferred)
}

func TestRegistry_DeferredProvider_MustRegisterWhatItProvides(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&lyingProvider{}))

	_, err := c.Get("ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, container.ErrConstruction)
	assert.Contains(t, err.Error(), `did not register "ghost"`)
}

func TestRegistry_DeferredProvider_ProvidesNothing(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	err := reg.Register(&emptyDeferred{})
	assert.ErrorIs(t, err, container.ErrConfiguration)
}

type emptyDeferred struct{ container.BaseProvider }

func (p *emptyDeferred) Register(app *container.Container) error { return nil }
func (p *emptyDeferred) IsDeferred() bool                        { return true }

// flakyDeferred fails its first Register and succeeds afterwards.
type flakyDeferred struct {
	container.BaseProvider
	attempts int
}

func (p *flakyDeferred) Register(app *container.Container) error {
	p.attempts++
	if p.attempts == 1 {
		return errBoom
	}
	return app.RegisterSingleton("flaky", container.Value("ok"))
}

func (p *flakyDeferred) IsDeferred() bool   { return true }
func (p *flakyDeferred) Provides() []string { return []string{"flaky"} }

func TestRegistry_DeferredProvider_RetriesAfterFailedRegister(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	p := &flakyDeferred{}
	require.NoError(t, reg.Register(p))

	_, err := c.Get("flaky")
	require.ErrorIs(t, err, errBoom)

	v, err := container.Resolve[string](c, "flaky")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, p.attempts)
}

// selfResolving asks for its own id while registering.
type selfResolving struct{ container.BaseProvider }

func (p *selfResolving) Register(app *container.Container) error {
	_, err := app.Get("loop")
	return err
}

func (p *selfResolving) IsDeferred() bool   { return true }
func (p *selfResolving) Provides() []string { return []string{"loop"} }

func TestRegistry_DeferredProvider_ReentrantRegisterFails(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&selfResolving{}))

	_, err := c.Get("loop")
	require.Error(t, err)
	assert.ErrorIs(t, err, container.ErrConstruction)
	assert.Contains(t, err.Error(), "while registering")
}

// ── Multiple providers ────────────────────────────────────────────────────────

func TestRegistry_MultipleProviders_AllServicesResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&multiProvider{}))
	require.NoError(t, reg.Register(&eagerProvider{}))
	require.NoError(t, reg.Register(&deferredProvider{}))
	require.NoError(t, reg.Boot())

	assert.Equal(t, "α", container.MustResolve[string](c, "alpha"))
	assert.Equal(t, "β", container.MustResolve[string](c, "beta"))
	assert.Equal(t, "eager", container.MustResolve[string](c, "eager-svc"))
	assert.Len(t, reg.Providers(), 2, "deferred providers are not listed")
}

// ── BaseProvider defaults ─────────────────────────────────────────────────────

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider

	assert.NoError(t, p.Boot(container.New()))
	assert.False(t, p.IsDeferred())
	assert.Empty(t, p.Provides())
}
