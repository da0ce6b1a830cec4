// Package container provides a reflective dependency-injection container and
// a Service Provider system.
//
// # Overview
//
// Given an abstract (a class identifier or any string key) the container
// looks up what it is bound to, inspects the constructor or factory
// parameters, resolves each one and invokes the target with the assembled
// argument list. Class identifiers and parameter metadata come from a
// reflection.Table.
//
// # Container Lifecycle
//
//  1. Declare classes: classes := reflection.NewTable(...)
//  2. Create: c := container.Create(classes, binds, singletons)
//  3. Register providers: registry.Register(&MyProvider{})
//  4. Boot: registry.Boot()
//  5. Make / Call
//
// # Bindings
//
//	// Interface → implementation, new instance every Make
//	c.Bind(reflection.Key[Mailer](), container.Class(reflection.Key[SMTPMailer]()))
//
//	// Singleton: created once, reused
//	c.Singleton(reflection.Key[Cache](), container.Factory(func(cfg *config.Config) *RedisCache {
//	    return NewRedisCache(cfg.App.URL)
//	}))
//
//	// Pre-built value
//	c.Instance("greeting", "hello")
//
// # Resolving
//
//	raw, err := c.Make(reflection.Key[Mailer](), nil)
//
//	// Named overrides skip autowiring for those parameters
//	raw, err = c.Make(reflection.Key[Mailer](), container.Args{"host": "smtp.local"})
//
//	// Generic
//	mailer, err := container.ResolveType[Mailer](c, nil)
//
// For each parameter, in order:
//
//   - an override with the parameter's name wins (a variadic parameter
//     spreads a slice override);
//   - a builtin parameter takes its default, else nil, else fails with
//     ReasonPrimitive;
//   - a class parameter is made recursively; on failure it takes its
//     default, else nil, else fails with ReasonClass.
//
// A singleton that has already been resolved is returned from the cache and
// its overrides are ignored.
//
// # Calling
//
//	c.Call(container.Func(sendWelcome, reflection.Arg("mailer"), reflection.Arg("to")), container.Args{"to": "a@b.c"})
//	c.Call(container.Method(ctrl, "Show"), container.Args{"id": "42"})
//	c.Call(container.Static(reflection.Key[Mailer]()+"::Make"), nil)
//	c.Call(container.Action(reflection.Key[UserController](), "Index"), nil)
//
// # Errors
//
// Resolution failures are *NotInstantiableError and match ErrNotInstantiable.
// Errors from the reflection table (unknown class, unknown method) and errors
// returned by constructors propagate unchanged.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    app.Singleton(reflection.Key[Mailer](), container.Class(reflection.Key[SMTPMailer]()))
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// # Deferred Providers
//
//	type HeavyProvider struct{ container.BaseProvider }
//
//	func (p *HeavyProvider) IsDeferred() bool   { return true }
//	func (p *HeavyProvider) Provides() []string { return []string{"heavy"} }
//	func (p *HeavyProvider) Register(app *container.Container) {
//	    app.Singleton("heavy", container.Factory(heavySetup)) // only on first Make("heavy")
//	}
package container
