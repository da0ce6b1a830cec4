package container

import (
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/autowire/framework/reflection"
)

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves abstract. args override parameters by name for this
// resolution only; nested dependencies do not see them.
//
// A singleton that was already resolved is returned as cached and args are
// ignored.
//
//	mailer, err := c.Make(reflection.Key[Mailer](), container.Args{"host": "smtp.local"})
func (c *Container) Make(abstract string, args Args) (any, error) {
	if inst, ok := c.cached(abstract); ok {
		c.log.Debug("container: cache hit", zap.String("abstract", abstract))
		return inst, nil
	}
	return c.resolve(abstract, args)
}

// MustMake is Make that panics on failure.
func (c *Container) MustMake(abstract string, args Args) any {
	inst, err := c.Make(abstract, args)
	if err != nil {
		panic(err)
	}
	return inst
}

func (c *Container) resolve(abstract string, args Args) (any, error) {
	defer c.overrides.push(args)()

	inst, err := c.build(abstract)
	if err != nil {
		c.log.Debug("container: resolution failed", zap.String("abstract", abstract), zap.Error(err))
		return nil, err
	}
	c.store(abstract, inst)

	c.log.Debug("container: resolved",
		zap.String("abstract", abstract),
		zap.Bool("shared", c.IsShared(abstract)),
		zap.Int("depth", c.overrides.depth()),
	)
	return inst, nil
}

// build instantiates the concrete bound to abstract.
func (c *Container) build(abstract string) (any, error) {
	switch concrete := c.concrete(abstract).(type) {
	case *FactoryFunc:
		if concrete.err != nil {
			return nil, concrete.err
		}
		return c.invoke(concrete.fn)

	case ClassName:
		class, err := c.classes.Class(string(concrete))
		if err != nil {
			return nil, err
		}
		if !class.Instantiable() {
			return nil, notInstantiable(ReasonDefault, abstract, nil)
		}
		ctor := class.Constructor()
		if ctor == nil {
			return class.NewInstance(), nil
		}
		return c.invoke(ctor)

	default:
		return nil, errors.Errorf("container: unsupported concrete %T for [%s]", concrete, abstract)
	}
}

// ── Call ──────────────────────────────────────────────────────────────────────

// Call invokes callable with autowired arguments. Nothing is cached.
//
//	out, err := c.Call(container.Method(ctrl, "Show"), container.Args{"id": "42"})
func (c *Container) Call(callable Callable, args Args) (any, error) {
	target, err := callable.target(c)
	if err != nil {
		return nil, err
	}

	defer c.overrides.push(args)()
	return c.invoke(target)
}

func (c *Container) invoke(target reflection.Resolvable) (any, error) {
	args, err := c.resolveDependencies(target.Parameters())
	if err != nil {
		return nil, err
	}
	return target.Invoke(args)
}

// ── Dependencies ──────────────────────────────────────────────────────────────

// resolveDependencies builds the positional argument list for params.
func (c *Container) resolveDependencies(params []reflection.Parameter) ([]any, error) {
	out := make([]any, 0, len(params))
	for _, p := range params {
		if v, ok := c.overrides.lookup(p.Name); ok {
			if p.Variadic {
				out = append(out, spread(v)...)
			} else {
				out = append(out, v)
			}
			continue
		}

		var (
			v   any
			err error
		)
		if p.Builtin {
			v, err = resolvePrimitive(p)
		} else {
			v, err = c.resolveClass(p)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// resolvePrimitive falls back to the default, then nil.
func resolvePrimitive(p reflection.Parameter) (any, error) {
	if p.HasDefault {
		return p.Default, nil
	}
	if p.Nullable {
		return nil, nil
	}
	return nil, notInstantiable(ReasonPrimitive, p.Name, nil)
}

// resolveClass makes the parameter's class. Any failure falls back to the
// default, then nil.
func (c *Container) resolveClass(p reflection.Parameter) (any, error) {
	inst, err := c.Make(p.ClassName(), nil)
	if err == nil {
		return inst, nil
	}
	if p.HasDefault {
		return p.Default, nil
	}
	if p.Nullable {
		return nil, nil
	}
	return nil, notInstantiable(ReasonClass, p.Name, err)
}

// spread expands a slice or array override into individual arguments.
// Any other value is passed as a single argument.
func spread(v any) []any {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
