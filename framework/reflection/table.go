package reflection

import (
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// StaticSeparator splits "Class::method" references.
const StaticSeparator = "::"

// Table is the set of classes known to a container.
type Table struct {
	classes map[string]*Class
}

// NewTable creates a table holding classes.
func NewTable(classes ...*Class) *Table {
	t := &Table{classes: make(map[string]*Class, len(classes))}
	return t.Register(classes...)
}

// Register adds classes, replacing any with the same identifier.
func (t *Table) Register(classes ...*Class) *Table {
	for _, c := range classes {
		t.classes[c.Name] = c
	}
	return t
}

// Class looks up a class by identifier.
func (t *Table) Class(name string) (*Class, error) {
	c, ok := t.classes[name]
	if !ok {
		return nil, errors.Wrapf(ErrClassNotFound, "class %q", name)
	}
	return c, nil
}

// Has reports whether name is declared.
func (t *Table) Has(name string) bool {
	_, ok := t.classes[name]
	return ok
}

// Names returns all class identifiers, sorted.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.classes))
	for name := range t.classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Method binds the named method of recv. Parameter declarations come from
// recv's class when it is in the table; otherwise parameters are named
// positionally.
func (t *Table) Method(recv any, name string) (*BoundMethod, error) {
	v := reflect.ValueOf(recv)
	if !v.IsValid() {
		return nil, errors.Wrapf(ErrInvalidCallable, "nil receiver for method %s", name)
	}
	key := KeyOf(v.Type())

	m := v.MethodByName(name)
	if !m.IsValid() {
		return nil, errors.Wrapf(ErrMethodNotFound, "%s.%s", key, name)
	}

	var decls []Param
	owner := t.classes[key]
	if owner != nil {
		decls = owner.methods[name]
	}
	params, err := describe(m.Type(), decls, owner)
	if err != nil {
		return nil, err
	}
	return &BoundMethod{name: key + "." + name, fn: m, params: params}, nil
}

// Static resolves a "Class::method" reference.
func (t *Table) Static(ref string) (*Function, error) {
	class, method, ok := strings.Cut(ref, StaticSeparator)
	if !ok || class == "" || method == "" {
		return nil, errors.Wrapf(ErrInvalidCallable, "static reference %q", ref)
	}
	c, err := t.Class(class)
	if err != nil {
		return nil, err
	}
	return c.Static(method)
}
