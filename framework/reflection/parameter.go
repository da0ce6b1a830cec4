package reflection

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Self and Parent are type annotations resolved against the declaring class.
const (
	Self   = "self"
	Parent = "parent"
)

// ── Declarations ──────────────────────────────────────────────────────────────

// Param declares what reflect cannot see about one parameter.
type Param struct {
	name       string
	typeName   string
	hasDefault bool
	def        any
	nullable   bool
}

// ParamOption configures a Param.
type ParamOption func(*Param)

// Arg declares the parameter at the same position in the function signature.
//
//	reflection.Arg("retries", reflection.Default(3))
func Arg(name string, opts ...ParamOption) Param {
	p := Param{name: name}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Default gives the parameter a default value.
func Default(v any) ParamOption {
	return func(p *Param) {
		p.hasDefault = true
		p.def = v
	}
}

// Nullable lets the parameter resolve to nil.
func Nullable() ParamOption {
	return func(p *Param) { p.nullable = true }
}

// As overrides the declared type with a class identifier, Self or Parent.
func As(typeName string) ParamOption {
	return func(p *Param) { p.typeName = typeName }
}

// ── Descriptors ───────────────────────────────────────────────────────────────

// Parameter is the resolved description of one parameter. It is built on
// every inspection and never cached.
type Parameter struct {
	Name string

	// Type is the Go type of the slot; the element type for variadics.
	Type reflect.Type

	// TypeName is the declared class identifier, empty for builtin types.
	TypeName string
	Builtin  bool

	HasDefault bool
	Default    any
	Nullable   bool
	Variadic   bool

	// Owner is the declaring class, nil for plain functions.
	Owner *Class
}

// ClassName returns the class identifier to resolve, mapping Self and
// Parent onto the owner.
func (p Parameter) ClassName() string {
	if p.Owner == nil {
		return p.TypeName
	}
	switch p.TypeName {
	case Self:
		return p.Owner.Name
	case Parent:
		if p.Owner.Parent != "" {
			return p.Owner.Parent
		}
	}
	return p.TypeName
}

// describe builds descriptors for ft from the optional declarations.
func describe(ft reflect.Type, decls []Param, owner *Class) ([]Parameter, error) {
	n := ft.NumIn()
	if len(decls) > n {
		return nil, errors.Wrapf(ErrArgument, "%d parameters declared for %s", len(decls), ft)
	}

	params := make([]Parameter, n)
	for i := 0; i < n; i++ {
		t := ft.In(i)
		variadic := ft.IsVariadic() && i == n-1
		if variadic {
			t = t.Elem()
		}

		p := Parameter{
			Name:     fmt.Sprintf("arg%d", i),
			Type:     t,
			Variadic: variadic,
			Owner:    owner,
		}
		p.TypeName, p.Builtin = classify(t)

		if i < len(decls) {
			d := decls[i]
			if d.name != "" {
				p.Name = d.name
			}
			if d.typeName != "" {
				p.TypeName, p.Builtin = d.typeName, false
			}
			p.HasDefault, p.Default = d.hasDefault, d.def
			p.Nullable = d.nullable
		}
		params[i] = p
	}
	return params, nil
}

// classify reports the class identifier of t, or builtin for anything that
// is not a named struct or named non-empty interface.
func classify(t reflect.Type) (string, bool) {
	base := t
	if base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	if base.Name() == "" || base.PkgPath() == "" {
		return "", true
	}
	switch base.Kind() {
	case reflect.Struct:
		return KeyOf(base), false
	case reflect.Interface:
		if base.NumMethod() > 0 {
			return KeyOf(base), false
		}
	}
	return "", true
}
