package container

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/autowire/framework/reflection"
)

// Key is the abstract the container registers itself under. A parameter of
// type *Container resolves to the container doing the resolving.
var Key = reflection.Key[Container]()

// ── Container ─────────────────────────────────────────────────────────────────

// Container resolves abstracts by autowiring constructors and factories.
//
// It keeps:
//   - a binding registry (abstract → Concrete, last bind wins)
//   - singleton flags (never cleared)
//   - an instance cache (never evicted)
//   - an override stack (one Args frame per in-flight Make or Call)
//
// Registration is guarded by a mutex. Resolution is not: a container must
// not resolve from several goroutines at once.
type Container struct {
	mu sync.RWMutex

	classes *reflection.Table

	// abstract → concrete
	bound map[string]Concrete

	// abstracts flagged singleton
	shared map[string]struct{}

	// abstract → last resolved value
	instances map[string]any

	overrides overrideStack
	log       *zap.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for resolution tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.log = logger
		}
	}
}

// New creates an empty container over classes. Prefer Create, which also
// registers the container itself.
func New(classes *reflection.Table, opts ...Option) *Container {
	if classes == nil {
		classes = reflection.NewTable()
	}
	c := &Container{
		classes:   classes,
		bound:     make(map[string]Concrete),
		shared:    make(map[string]struct{}),
		instances: make(map[string]any),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create builds a container, applies binds, registers the container as a
// singleton under Key, then applies singletons. A caller may therefore
// replace the self-binding through singletons.
//
//	c := container.Create(classes,
//	    map[string]container.Concrete{reflection.Key[Repo](): container.Class(reflection.Key[SQLRepo]())},
//	    map[string]container.Concrete{reflection.Key[Cache](): nil},
//	)
func Create(classes *reflection.Table, binds, singletons map[string]Concrete, opts ...Option) *Container {
	c := New(classes, opts...)
	for abstract, concrete := range binds {
		c.Bind(abstract, concrete)
	}
	c.Singleton(Key, Factory(func() *Container { return c }))
	for abstract, concrete := range singletons {
		c.Singleton(abstract, concrete)
	}
	return c
}

// SetLogger replaces the resolution logger.
func (c *Container) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = logger
}

// Classes returns the class table.
func (c *Container) Classes() *reflection.Table { return c.classes }

// ── Registration ──────────────────────────────────────────────────────────────

// Bind binds abstract to concrete, or to itself when concrete is nil.
// Nothing is validated until abstract is resolved.
//
//	c.Bind(reflection.Key[Mailer](), container.Class(reflection.Key[SMTPMailer]()))
func (c *Container) Bind(abstract string, concrete Concrete) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(abstract, concrete, false)
	return c
}

// Singleton is Bind with the singleton flag set: the first resolution is
// cached and returned from then on.
func (c *Container) Singleton(abstract string, concrete Concrete) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(abstract, concrete, true)
	return c
}

// Instance registers an already built value as a singleton.
func (c *Container) Instance(abstract string, value any) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(abstract, Value(value), true)
	c.instances[abstract] = value
	return c
}

// bind must hold mu.Lock. A nil concrete, including a nil *FactoryFunc,
// binds abstract to itself.
func (c *Container) bind(abstract string, concrete Concrete, singleton bool) {
	if f, ok := concrete.(*FactoryFunc); concrete == nil || (ok && f == nil) {
		concrete = ClassName(abstract)
	}
	c.bound[abstract] = concrete
	if singleton {
		c.shared[abstract] = struct{}{}
	}
}

// ── Lookups ───────────────────────────────────────────────────────────────────

// concrete returns the binding for abstract, defaulting to the abstract itself.
func (c *Container) concrete(abstract string) Concrete {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if concrete, ok := c.bound[abstract]; ok {
		return concrete
	}
	return ClassName(abstract)
}

// cached returns the instance for a singleton abstract that was resolved.
func (c *Container) cached(abstract string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.shared[abstract]; !ok {
		return nil, false
	}
	inst, ok := c.instances[abstract]
	return inst, ok
}

func (c *Container) store(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[abstract] = instance
}

// Bound reports whether abstract has an explicit binding.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bound[abstract]
	return ok
}

// IsShared reports whether abstract is flagged singleton.
func (c *Container) IsShared(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.shared[abstract]
	return ok
}

// Resolved reports whether abstract has been resolved at least once.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[abstract]
	return ok
}

// Binding describes one registry entry.
type Binding struct {
	Abstract string
	Concrete string
	Shared   bool
	// Factory is set when Concrete describes a factory rather than a class.
	Factory bool
}

// Bindings returns the registry sorted by abstract (for debugging).
func (c *Container) Bindings() []Binding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Binding, 0, len(c.bound))
	for abstract, concrete := range c.bound {
		_, shared := c.shared[abstract]
		_, factory := concrete.(*FactoryFunc)
		out = append(out, Binding{
			Abstract: abstract,
			Concrete: describeConcrete(concrete),
			Shared:   shared,
			Factory:  factory,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Abstract < out[j].Abstract })
	return out
}

func describeConcrete(concrete Concrete) string {
	switch cc := concrete.(type) {
	case ClassName:
		return string(cc)
	case *FactoryFunc:
		if cc.fn == nil {
			return "factory(invalid)"
		}
		return "factory " + cc.fn.Name()
	}
	return fmt.Sprintf("%T", concrete)
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve makes abstract and type-asserts the result.
//
//	repo, err := container.Resolve[UserRepository](c, reflection.Key[UserRepository](), nil)
func Resolve[T any](c *Container, abstract string, args Args) (T, error) {
	var zero T
	instance, err := c.Make(abstract, args)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, errors.Errorf("container: Resolve[%T]: [%s] resolved to %T", zero, abstract, instance)
	}
	return typed, nil
}

// ResolveType resolves the abstract named by T's class identifier.
//
//	ctrl, err := container.ResolveType[*UserController](c, nil)
func ResolveType[T any](c *Container, args Args) (T, error) {
	return Resolve[T](c, reflection.Key[T](), args)
}

// MustResolve is Resolve that panics on failure.
func MustResolve[T any](c *Container, abstract string) T {
	typed, err := Resolve[T](c, abstract, nil)
	if err != nil {
		panic(err)
	}
	return typed
}
