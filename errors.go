package argbind

import (
	"github.com/pkg/errors"
)

// ErrInvalidArgument is matched (with errors.Is) by every precondition
// failure: nil argument vectors, nil types or readers, nil marker targets.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrDuplicateName is matched by the error Init returns when two markers
// declare the same option name.
var ErrDuplicateName = errors.New("duplicate option name")

type invalidArgument struct {
	cause error
}

// InvalidArgument annotates an error as being a caller mistake.
func InvalidArgument(err error) error {
	if err == nil {
		return nil
	}
	return invalidArgument{
		cause: errors.WithStack(err),
	}
}

func (e invalidArgument) Error() string { return e.cause.Error() }
func (e invalidArgument) Unwrap() error { return e.cause }
func (e invalidArgument) Cause() error  { return e.cause }
func (e invalidArgument) Is(err error) bool {
	if err == ErrInvalidArgument {
		return true
	}
	_, ok := err.(invalidArgument)
	return ok
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
