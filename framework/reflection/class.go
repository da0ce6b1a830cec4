package reflection

import (
	"reflect"

	"github.com/pkg/errors"
)

// Class describes a constructible (or deliberately non-constructible) type.
type Class struct {
	// Name is the class identifier, KeyOf the declared type.
	Name string

	// Parent is the identifier Parent annotations resolve to.
	Parent string

	typ      reflect.Type
	abstract bool
	ctor     *Function
	methods  map[string][]Param
	statics  map[string]*Function
}

// ClassOption configures a Class while it is declared.
type ClassOption func(*Class) error

// NewClass declares the class of T. T may be a struct, a pointer to a struct
// or an interface; all three share the same identifier.
func NewClass[T any](opts ...ClassOption) (*Class, error) {
	return newClass(reflect.TypeOf((*T)(nil)).Elem(), opts)
}

// MustClass is NewClass that panics on an invalid declaration.
func MustClass[T any](opts ...ClassOption) *Class {
	c, err := NewClass[T](opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func newClass(t reflect.Type, opts []ClassOption) (*Class, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	c := &Class{
		Name:    KeyOf(t),
		typ:     t,
		methods: make(map[string][]Param),
		statics: make(map[string]*Function),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.Wrapf(err, "class %s", c.Name)
		}
	}
	return c, nil
}

// Constructor sets the function that builds instances.
func Constructor(fn any, params ...Param) ClassOption {
	return func(c *Class) error {
		f, err := newFunction(fn, params, c)
		if err != nil {
			return err
		}
		c.ctor = f
		return nil
	}
}

// Method declares parameter names for an instance method.
func Method(name string, params ...Param) ClassOption {
	return func(c *Class) error {
		c.methods[name] = params
		return nil
	}
}

// StaticMethod attaches a package-level function to the class, callable as
// "Class::name".
func StaticMethod(name string, fn any, params ...Param) ClassOption {
	return func(c *Class) error {
		f, err := newFunction(fn, params, c)
		if err != nil {
			return err
		}
		c.statics[name] = f
		return nil
	}
}

// Extends records the parent class identifier.
func Extends(parent string) ClassOption {
	return func(c *Class) error {
		c.Parent = parent
		return nil
	}
}

// Abstract marks the class as not instantiable.
func Abstract() ClassOption {
	return func(c *Class) error {
		c.abstract = true
		return nil
	}
}

// Type returns the declared Go type.
func (c *Class) Type() reflect.Type { return c.typ }

// Instantiable is false for abstract classes and interfaces.
func (c *Class) Instantiable() bool {
	return !c.abstract && c.typ.Kind() != reflect.Interface
}

// Constructor returns the constructor, or nil when the class has none.
func (c *Class) Constructor() *Function { return c.ctor }

// NewInstance builds a class without constructor: a pointer to its zero value.
func (c *Class) NewInstance() any {
	return reflect.New(c.typ).Interface()
}

// Static returns the named static method.
func (c *Class) Static(name string) (*Function, error) {
	f, ok := c.statics[name]
	if !ok {
		return nil, errors.Wrapf(ErrMethodNotFound, "%s::%s", c.Name, name)
	}
	return f, nil
}
