package container_test

import (
	"errors"
	"testing"

	"github.com/km-arc/autowire/framework/container"
	"github.com/km-arc/autowire/framework/reflection"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     bool
}

func (p *eagerProvider) Register(app *container.Container) {
	p.registerCalled = true
	app.Singleton("eager-svc", container.Value("eager"))
}

func (p *eagerProvider) Boot(app *container.Container) error {
	p.bootCalled = true
	return nil
}

// deferredProvider is lazy: only registered when "deferred-svc" is first resolved.
type deferredProvider struct {
	container.BaseProvider
	registerCalls int
}

func (p *deferredProvider) Register(app *container.Container) {
	p.registerCalls++
	app.Singleton("deferred-svc", container.Factory(func() string { return "deferred-value" }))
}

func (p *deferredProvider) IsDeferred() bool   { return true }
func (p *deferredProvider) Provides() []string { return []string{"deferred-svc"} }

// multiProvider registers multiple abstracts.
type multiProvider struct {
	container.BaseProvider
}

func (p *multiProvider) Register(app *container.Container) {
	app.Singleton("alpha", container.Value("α"))
	app.Singleton("beta", container.Value("β"))
}

type failingProvider struct {
	container.BaseProvider
}

func (p *failingProvider) Register(app *container.Container) {}

func (p *failingProvider) Boot(app *container.Container) error {
	return errors.New("boot failed")
}

func newRegistry() (*container.Container, *container.ProviderRegistry) {
	c := container.Create(nil, nil, nil)
	return c, container.NewProviderRegistry(c)
}

func mustString(t *testing.T, c *container.Container, abstract string) string {
	t.Helper()
	got, err := container.Resolve[string](c, abstract, nil)
	if err != nil {
		t.Fatalf("%s: %v", abstract, err)
	}
	return got
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_EagerProvider_RegisterCalled(t *testing.T) {
	_, reg := newRegistry()

	p := &eagerProvider{}
	if err := reg.Register(p); err != nil {
		t.Fatal(err)
	}

	if !p.registerCalled {
		t.Error("Register() should be called immediately for eager providers")
	}
}

func TestRegistry_EagerProvider_BootCalledAfterBoot(t *testing.T) {
	_, reg := newRegistry()

	p := &eagerProvider{}
	_ = reg.Register(p)

	if p.bootCalled {
		t.Error("Boot() should NOT be called before registry.Boot()")
	}

	if err := reg.Boot(); err != nil {
		t.Fatal(err)
	}

	if !p.bootCalled {
		t.Error("Boot() should be called after registry.Boot()")
	}
}

func TestRegistry_EagerProvider_ServiceResolvable(t *testing.T) {
	c, reg := newRegistry()
	_ = reg.Register(&eagerProvider{})
	_ = reg.Boot()

	if got := mustString(t, c, "eager-svc"); got != "eager" {
		t.Errorf("eager-svc: got %q, want 'eager'", got)
	}
}

func TestRegistry_Boot_IdempotentCallsAreIgnored(t *testing.T) {
	_, reg := newRegistry()
	_ = reg.Register(&eagerProvider{})

	_ = reg.Boot()
	_ = reg.Boot() // second call should be no-op

	if !reg.Booted() {
		t.Error("Booted() should be true after Boot()")
	}
}

func TestRegistry_Booted_FalseBeforeBoot(t *testing.T) {
	_, reg := newRegistry()
	if reg.Booted() {
		t.Error("Booted() should be false before Boot()")
	}
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	_, reg := newRegistry()

	p := &eagerProvider{}
	_ = reg.Register(p)
	_ = reg.Register(p) // second register of same instance

	if len(reg.Providers()) != 1 {
		t.Errorf("Providers(): got %d, want 1", len(reg.Providers()))
	}
}

func TestRegistry_BootError_Propagates(t *testing.T) {
	_, reg := newRegistry()
	_ = reg.Register(&failingProvider{})

	if err := reg.Boot(); err == nil || err.Error() != "boot failed" {
		t.Errorf("Boot(): got %v, want 'boot failed'", err)
	}
}

// ── Deferred providers ────────────────────────────────────────────────────────

func TestRegistry_DeferredProvider_NotRegisteredEagerly(t *testing.T) {
	_, reg := newRegistry()

	p := &deferredProvider{}
	_ = reg.Register(p)
	_ = reg.Boot()

	if p.registerCalls != 0 {
		t.Error("deferred provider Register() should not be called until Make()")
	}
}

func TestRegistry_DeferredProvider_RegisteredOnFirstMake(t *testing.T) {
	c, reg := newRegistry()

	p := &deferredProvider{}
	_ = reg.Register(p)
	_ = reg.Boot()

	if got := mustString(t, c, "deferred-svc"); got != "deferred-value" {
		t.Errorf("deferred-svc: got %q, want 'deferred-value'", got)
	}
	_ = mustString(t, c, "deferred-svc")

	if p.registerCalls != 1 {
		t.Errorf("Register() calls: got %d, want 1", p.registerCalls)
	}
}

// ── Multiple providers ────────────────────────────────────────────────────────

func TestRegistry_MultipleProviders_AllServicesResolvable(t *testing.T) {
	c, reg := newRegistry()
	_ = reg.Register(&multiProvider{})
	_ = reg.Register(&eagerProvider{})
	_ = reg.Boot()

	tests := []struct{ abstract, want string }{
		{"alpha", "α"},
		{"beta", "β"},
		{"eager-svc", "eager"},
	}
	for _, tt := range tests {
		if got := mustString(t, c, tt.abstract); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.abstract, got, tt.want)
		}
	}
}

// ── Providers list ────────────────────────────────────────────────────────────

func TestRegistry_Providers_ReturnsEagerOnes(t *testing.T) {
	_, reg := newRegistry()
	_ = reg.Register(&eagerProvider{})
	_ = reg.Register(&deferredProvider{}) // deferred, not in Providers()

	if len(reg.Providers()) != 1 {
		t.Errorf("Providers(): got %d, want 1 (eager only)", len(reg.Providers()))
	}
}

// ── BaseProvider defaults ─────────────────────────────────────────────────────

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	c := container.Create(nil, nil, nil)

	if err := p.Boot(c); err != nil {
		t.Errorf("BaseProvider.Boot(): got %v, want nil", err)
	}
	if p.IsDeferred() {
		t.Error("BaseProvider.IsDeferred() should be false")
	}
	if len(p.Provides()) != 0 {
		t.Error("BaseProvider.Provides() should return empty slice")
	}
}

// ── Boot after registration (late provider) ───────────────────────────────────

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	_, reg := newRegistry()
	_ = reg.Boot() // boot before registering

	p := &eagerProvider{}
	_ = reg.Register(p) // register after boot

	if !p.bootCalled {
		t.Error("provider registered after Boot() should be booted immediately")
	}
}

// ── Deferred providers: overrides and missing bindings ───────────────────────

type deferredGreetingProvider struct {
	container.BaseProvider
}

func (p *deferredGreetingProvider) Register(app *container.Container) {
	app.Bind("greeting", container.Factory(func(word string) string {
		return word + ", world"
	}, reflection.Arg("word", reflection.Default("hello"))))
}

func (p *deferredGreetingProvider) IsDeferred() bool   { return true }
func (p *deferredGreetingProvider) Provides() []string { return []string{"greeting"} }

// silentProvider claims an abstract but never binds it.
type silentProvider struct {
	container.BaseProvider
}

func (p *silentProvider) Register(app *container.Container) {}
func (p *silentProvider) IsDeferred() bool                  { return true }
func (p *silentProvider) Provides() []string                { return []string{"silent"} }

func TestRegistry_DeferredProvider_FirstMakeKeepsOverrides(t *testing.T) {
	c, reg := newRegistry()
	_ = reg.Register(&deferredGreetingProvider{})

	got, err := container.Resolve[string](c, "greeting", container.Args{"word": "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "hi, world" {
		t.Errorf("first Make: got %q, want 'hi, world'", got)
	}

	if got := mustString(t, c, "greeting"); got != "hello, world" {
		t.Errorf("second Make: got %q, want 'hello, world'", got)
	}
}

func TestRegistry_DeferredProvider_WithoutBindingFails(t *testing.T) {
	c, reg := newRegistry()
	_ = reg.Register(&silentProvider{})

	if _, err := c.Make("silent", nil); err == nil {
		t.Fatal("Make(silent): want error when the provider binds nothing")
	}
	if _, err := c.Make("silent", nil); err == nil {
		t.Error("second Make(silent): want error")
	}
}
