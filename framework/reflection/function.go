package reflection

import (
	"reflect"
	"runtime"

	"github.com/pkg/errors"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Resolvable is anything whose parameters can be inspected and which can be
// invoked with a positional argument list.
type Resolvable interface {
	Parameters() []Parameter
	Invoke(args []any) (any, error)
}

// ── Function ──────────────────────────────────────────────────────────────────

// Function adapts a plain Go function: closures, factories, constructors and
// static methods.
type Function struct {
	name   string
	fn     reflect.Value
	params []Parameter
}

// NewFunction inspects fn. Declarations are matched to parameters by position.
func NewFunction(fn any, params ...Param) (*Function, error) {
	return newFunction(fn, params, nil)
}

func newFunction(fn any, decls []Param, owner *Class) (*Function, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, errors.Wrapf(ErrInvalidCallable, "%T is not a function", fn)
	}
	params, err := describe(v.Type(), decls, owner)
	if err != nil {
		return nil, err
	}
	return &Function{
		name:   runtime.FuncForPC(v.Pointer()).Name(),
		fn:     v,
		params: params,
	}, nil
}

// Name returns the runtime name of the function.
func (f *Function) Name() string { return f.name }

// Parameters implements Resolvable.
func (f *Function) Parameters() []Parameter { return f.params }

// Invoke implements Resolvable.
func (f *Function) Invoke(args []any) (any, error) {
	return invoke(f.name, f.fn, args)
}

// ── BoundMethod ───────────────────────────────────────────────────────────────

// BoundMethod is a method value taken from an instance.
type BoundMethod struct {
	name   string
	fn     reflect.Value
	params []Parameter
}

// Name returns "Class.Method".
func (m *BoundMethod) Name() string { return m.name }

// Parameters implements Resolvable.
func (m *BoundMethod) Parameters() []Parameter { return m.params }

// Invoke implements Resolvable.
func (m *BoundMethod) Invoke(args []any) (any, error) {
	return invoke(m.name, m.fn, args)
}

// ── Invocation ────────────────────────────────────────────────────────────────

// invoke calls fn with args converted to the declared parameter types.
// Arguments past the last fixed parameter fill the variadic slot.
func invoke(name string, fn reflect.Value, args []any) (any, error) {
	ft := fn.Type()
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
	}
	if len(args) < fixed || (!ft.IsVariadic() && len(args) > fixed) {
		return nil, errors.Wrapf(ErrArgument, "%s takes %d arguments, got %d", name, ft.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var want reflect.Type
		if i < fixed {
			want = ft.In(i)
		} else {
			want = ft.In(fixed).Elem()
		}
		v, err := coerce(arg, want)
		if err != nil {
			return nil, errors.Wrapf(err, "%s argument %d", name, i)
		}
		in[i] = v
	}
	return results(fn.Call(in))
}

// coerce converts arg into a value assignable to want. A nil argument is
// the zero value of want.
func coerce(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(want), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if numeric(v.Kind()) && numeric(want.Kind()) && v.Type().ConvertibleTo(want) {
		return v.Convert(want), nil
	}
	if v.Kind() == want.Kind() && v.Type().ConvertibleTo(want) {
		return v.Convert(want), nil
	}
	return reflect.Value{}, errors.Wrapf(ErrArgument, "cannot use %s as %s", v.Type(), want)
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// results maps (), (T), (error) and (T, error) onto a single value.
func results(out []reflect.Value) (any, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}
