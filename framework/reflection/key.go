package reflection

import "reflect"

// KeyOf returns the package-qualified name of t with pointers stripped.
// Unnamed types fall back to their string form.
//
//	KeyOf(reflect.TypeOf(&Mailer{}))  // "github.com/acme/mail.Mailer"
func KeyOf(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Key returns the class identifier of T. Use it for interfaces:
//
//	reflection.Key[Logger]()
func Key[T any]() string {
	return KeyOf(reflect.TypeOf((*T)(nil)).Elem())
}

// TypeKey returns the class identifier of v's dynamic type.
//
//	key := reflection.TypeKey((*UserRepository)(nil))
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	return KeyOf(t)
}
