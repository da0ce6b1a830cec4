package container

import "github.com/km-arc/autowire/framework/reflection"

// ── Concrete ──────────────────────────────────────────────────────────────────

// Concrete is what an abstract is bound to: a ClassName or a factory built
// with Factory. A nil Concrete binds the abstract to itself.
type Concrete interface {
	concrete()
}

// ClassName binds an abstract to a class in the container's table.
type ClassName string

func (ClassName) concrete() {}

// Class is shorthand for ClassName(name).
func Class(name string) Concrete { return ClassName(name) }

// FactoryFunc is a function whose result is the resolved value.
// Its parameters are autowired like a constructor's.
type FactoryFunc struct {
	fn  *reflection.Function
	err error
}

func (*FactoryFunc) concrete() {}

// Factory wraps fn as a Concrete. An invalid fn is reported when the abstract
// is first resolved.
//
//	c.Singleton(reflection.Key[Cache](), container.Factory(func(cfg *config.Config) *RedisCache {
//	    return NewRedisCache(cfg.App.URL)
//	}))
func Factory(fn any, params ...reflection.Param) *FactoryFunc {
	f, err := reflection.NewFunction(fn, params...)
	return &FactoryFunc{fn: f, err: err}
}

// Value returns a factory that always yields v.
func Value(v any) *FactoryFunc {
	return Factory(func() any { return v })
}
