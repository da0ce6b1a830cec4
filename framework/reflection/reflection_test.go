package reflection_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/autowire/framework/reflection"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type Notifier interface{ Notify(msg string) string }

type Mailer struct {
	Host    string
	Retries int
}

func (m *Mailer) Notify(msg string) string { return m.Host + ":" + msg }

func (m *Mailer) Send(to string, cc ...string) int { return 1 + len(cc) }

func NewMailer(host string, retries int) *Mailer {
	return &Mailer{Host: host, Retries: retries}
}

func MakeMailer(host string) (*Mailer, error) {
	if host == "" {
		return nil, errors.New("empty host")
	}
	return &Mailer{Host: host}, nil
}

type Base struct{}

type Child struct{ Parent Notifier }

func NewChild(parent Notifier, sibling *Child) *Child { return &Child{Parent: parent} }

func classes() *reflection.Table {
	return reflection.NewTable(
		reflection.MustClass[Notifier](),
		reflection.MustClass[*Mailer](
			reflection.Constructor(NewMailer,
				reflection.Arg("host"),
				reflection.Arg("retries", reflection.Default(3)),
			),
			reflection.Method("Send", reflection.Arg("to"), reflection.Arg("cc")),
			reflection.StaticMethod("Make", MakeMailer, reflection.Arg("host")),
		),
		reflection.MustClass[Base](reflection.Abstract()),
		reflection.MustClass[*Child](
			reflection.Extends(reflection.Key[Base]()),
			reflection.Constructor(NewChild,
				reflection.Arg("parent", reflection.As(reflection.Parent)),
				reflection.Arg("sibling", reflection.As(reflection.Self), reflection.Nullable()),
			),
		),
	)
}

// ── keys ──────────────────────────────────────────────────────────────────────

func TestKeys(t *testing.T) {
	t.Parallel()

	want := "github.com/km-arc/autowire/framework/reflection_test.Mailer"
	assert.Equal(t, want, reflection.Key[*Mailer]())
	assert.Equal(t, want, reflection.Key[Mailer]())
	assert.Equal(t, want, reflection.TypeKey(&Mailer{}))
	assert.Equal(t, want, reflection.KeyOf(reflect.TypeOf(Mailer{})))
	assert.Equal(t, "int", reflection.Key[int]())
	assert.Equal(t, "", reflection.TypeKey(nil))
}

// ── parameters ────────────────────────────────────────────────────────────────

func TestFunction_Parameters(t *testing.T) {
	t.Parallel()

	fn, err := reflection.NewFunction(
		func(n Notifier, count int, m *Mailer, v any, tags ...string) {},
		reflection.Arg("notifier"),
		reflection.Arg("count", reflection.Default(7)),
	)
	require.NoError(t, err)

	params := fn.Parameters()
	require.Len(t, params, 5)

	assert.Equal(t, "notifier", params[0].Name)
	assert.False(t, params[0].Builtin)
	assert.Equal(t, reflection.Key[Notifier](), params[0].ClassName())

	assert.Equal(t, "count", params[1].Name)
	assert.True(t, params[1].Builtin)
	assert.True(t, params[1].HasDefault)
	assert.Equal(t, 7, params[1].Default)

	assert.Equal(t, "arg2", params[2].Name)
	assert.Equal(t, reflection.Key[Mailer](), params[2].TypeName)

	assert.True(t, params[3].Builtin, "empty interface is untyped")

	assert.True(t, params[4].Variadic)
	assert.True(t, params[4].Builtin)
	assert.Equal(t, reflect.TypeOf(""), params[4].Type)
}

func TestFunction_TooManyDeclarations(t *testing.T) {
	t.Parallel()

	_, err := reflection.NewFunction(func(a int) {}, reflection.Arg("a"), reflection.Arg("b"))
	assert.ErrorIs(t, err, reflection.ErrArgument)
}

func TestFunction_NotAFunction(t *testing.T) {
	t.Parallel()

	_, err := reflection.NewFunction("nope")
	assert.ErrorIs(t, err, reflection.ErrInvalidCallable)
}

func TestParameter_SelfAndParent(t *testing.T) {
	t.Parallel()

	child, err := classes().Class(reflection.Key[Child]())
	require.NoError(t, err)

	params := child.Constructor().Parameters()
	assert.Equal(t, reflection.Key[Base](), params[0].ClassName())
	assert.Equal(t, reflection.Key[Child](), params[1].ClassName())
	assert.True(t, params[1].Nullable)
}

// ── invocation ────────────────────────────────────────────────────────────────

func TestFunction_Invoke(t *testing.T) {
	t.Parallel()

	fn, err := reflection.NewFunction(func(a int64, b float64, rest ...int) []any {
		out := []any{a, b}
		for _, r := range rest {
			out = append(out, r)
		}
		return out
	})
	require.NoError(t, err)

	got, err := fn.Invoke([]any{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), float64(2), 3, 4}, got)
}

func TestFunction_InvokeNilIsZero(t *testing.T) {
	t.Parallel()

	fn, err := reflection.NewFunction(func(m *Mailer, n int) bool { return m == nil && n == 0 })
	require.NoError(t, err)

	got, err := fn.Invoke([]any{nil, nil})
	require.NoError(t, err)
	assert.Equal(t, true, got)
}

func TestFunction_InvokeErrors(t *testing.T) {
	t.Parallel()

	fn, err := reflection.NewFunction(func(host string) {})
	require.NoError(t, err)

	_, err = fn.Invoke(nil)
	assert.ErrorIs(t, err, reflection.ErrArgument)

	_, err = fn.Invoke([]any{42})
	assert.ErrorIs(t, err, reflection.ErrArgument)

	got, err := fn.Invoke([]any{"x"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFunction_InvokeReturnsError(t *testing.T) {
	t.Parallel()

	mk, err := classes().Static(reflection.Key[Mailer]() + "::Make")
	require.NoError(t, err)

	_, err = mk.Invoke([]any{""})
	assert.EqualError(t, err, "empty host")

	m, err := mk.Invoke([]any{"smtp"})
	require.NoError(t, err)
	assert.Equal(t, "smtp", m.(*Mailer).Host)
}

// ── classes & table ───────────────────────────────────────────────────────────

func TestClass_Instantiable(t *testing.T) {
	t.Parallel()

	tbl := classes()
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"interface", reflection.Key[Notifier](), false},
		{"abstract", reflection.Key[Base](), false},
		{"concrete", reflection.Key[Mailer](), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tbl.Class(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Instantiable())
		})
	}
}

func TestClass_NewInstance(t *testing.T) {
	t.Parallel()

	c := reflection.MustClass[Base]()
	assert.Nil(t, c.Constructor())
	assert.IsType(t, &Base{}, c.NewInstance())
}

func TestMustClass_PanicsOnBadConstructor(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		reflection.MustClass[*Mailer](reflection.Constructor(42))
	})
}

func TestTable_ClassNotFound(t *testing.T) {
	t.Parallel()

	_, err := classes().Class("missing.Type")
	assert.ErrorIs(t, err, reflection.ErrClassNotFound)
	assert.Contains(t, err.Error(), "missing.Type")
}

func TestTable_Names(t *testing.T) {
	t.Parallel()

	tbl := classes()
	names := tbl.Names()
	assert.Len(t, names, 4)
	assert.IsIncreasing(t, names)
	assert.True(t, tbl.Has(reflection.Key[Mailer]()))
}

func TestTable_Method(t *testing.T) {
	t.Parallel()

	tbl := classes()

	send, err := tbl.Method(&Mailer{}, "Send")
	require.NoError(t, err)
	params := send.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "to", params[0].Name)
	assert.Equal(t, "cc", params[1].Name)
	assert.True(t, params[1].Variadic)

	got, err := send.Invoke([]any{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	notify, err := tbl.Method(&Mailer{Host: "h"}, "Notify")
	require.NoError(t, err)
	assert.Equal(t, "arg0", notify.Parameters()[0].Name, "undeclared method is named positionally")

	_, err = tbl.Method(&Mailer{}, "Missing")
	assert.ErrorIs(t, err, reflection.ErrMethodNotFound)

	_, err = tbl.Method(nil, "Send")
	assert.ErrorIs(t, err, reflection.ErrInvalidCallable)
}

func TestTable_Static(t *testing.T) {
	t.Parallel()

	tbl := classes()
	tests := []struct {
		ref  string
		want error
	}{
		{"no-separator", reflection.ErrInvalidCallable},
		{"::Make", reflection.ErrInvalidCallable},
		{"missing.Type::Make", reflection.ErrClassNotFound},
		{reflection.Key[Mailer]() + "::Other", reflection.ErrMethodNotFound},
		{reflection.Key[Mailer]() + "::Make", nil},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			_, err := tbl.Static(tt.ref)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
