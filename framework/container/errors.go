package container

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotInstantiable matches every NotInstantiableError via errors.Is.
var ErrNotInstantiable = errors.New("container: not instantiable")

// Reason says why resolution failed.
type Reason string

const (
	// ReasonDefault: the abstract resolves to an interface or abstract class.
	ReasonDefault Reason = "default"

	// ReasonPrimitive: a builtin parameter has no override, default or nil.
	ReasonPrimitive Reason = "primitive"

	// ReasonClass: a class parameter failed to resolve and has no fallback.
	ReasonClass Reason = "class"
)

// NotInstantiableError is the single resolution failure of the container.
type NotInstantiableError struct {
	Reason Reason

	// Name is the abstract for ReasonDefault, the parameter otherwise.
	Name string

	// Err is the nested failure for ReasonClass.
	Err error
}

// Error implements the error interface.
func (e *NotInstantiableError) Error() string {
	switch e.Reason {
	case ReasonPrimitive:
		return fmt.Sprintf("container: unresolvable primitive dependency [%s]", e.Name)
	case ReasonClass:
		msg := fmt.Sprintf("container: unresolvable class dependency [%s]", e.Name)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	default:
		return fmt.Sprintf("container: target [%s] is not instantiable", e.Name)
	}
}

// Unwrap returns the nested failure, if any.
func (e *NotInstantiableError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrNotInstantiable) true.
func (e *NotInstantiableError) Is(target error) bool {
	return target == ErrNotInstantiable
}

func notInstantiable(reason Reason, name string, cause error) error {
	return &NotInstantiableError{Reason: reason, Name: name, Err: cause}
}
