package reflection

import "github.com/pkg/errors"

var (
	// ErrClassNotFound is returned when a class identifier is not in the table.
	ErrClassNotFound = errors.New("reflection: class does not exist")

	// ErrMethodNotFound is returned when a method or static method is unknown.
	ErrMethodNotFound = errors.New("reflection: method does not exist")

	// ErrInvalidCallable is returned for values that cannot be invoked.
	ErrInvalidCallable = errors.New("reflection: invalid callable")

	// ErrArgument is returned when an argument list does not fit a signature.
	ErrArgument = errors.New("reflection: invalid argument")
)
