package container

import "github.com/km-arc/autowire/framework/reflection"

// Callable is a target for Call: Func, Method, Static or Action.
type Callable interface {
	target(c *Container) (reflection.Resolvable, error)
}

type funcCallable struct {
	fn     any
	params []reflection.Param
}

// Func calls a plain function or closure.
//
//	c.Call(container.Func(func(m *Mailer, to string) error {
//	    return m.Send(to)
//	}, reflection.Arg("mailer"), reflection.Arg("to")), container.Args{"to": "a@b.c"})
func Func(fn any, params ...reflection.Param) Callable {
	return funcCallable{fn: fn, params: params}
}

func (f funcCallable) target(*Container) (reflection.Resolvable, error) {
	return reflection.NewFunction(f.fn, f.params...)
}

type methodCallable struct {
	recv any
	name string
}

// Method calls recv's method. Parameter names come from recv's class.
func Method(recv any, name string) Callable {
	return methodCallable{recv: recv, name: name}
}

func (m methodCallable) target(c *Container) (reflection.Resolvable, error) {
	return c.classes.Method(m.recv, m.name)
}

type staticCallable string

// Static calls a "Class::method" static method.
func Static(ref string) Callable {
	return staticCallable(ref)
}

func (s staticCallable) target(c *Container) (reflection.Resolvable, error) {
	return c.classes.Static(string(s))
}

type actionCallable struct {
	abstract string
	method   string
}

// Action makes abstract, then calls its method. The instance is resolved
// before the call's overrides are pushed.
func Action(abstract, method string) Callable {
	return actionCallable{abstract: abstract, method: method}
}

func (a actionCallable) target(c *Container) (reflection.Resolvable, error) {
	recv, err := c.Make(a.abstract, nil)
	if err != nil {
		return nil, err
	}
	return c.classes.Method(recv, a.method)
}
