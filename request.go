package argbind

import (
	"reflect"

	"github.com/pkg/errors"
)

// Kind says what a Marker binds.
type Kind int

const (
	ArgumentMarker Kind = iota + 1
	CommandMarker
)

func (k Kind) String() string {
	switch k {
	case ArgumentMarker:
		return "argument"
	case CommandMarker:
		return "command"
	default:
		return "unknown"
	}
}

// Marker is an explicit declaration of an argument or a command.  For
// arguments, Target is a pointer to the value to set.  For commands,
// Target is a func().
type Marker struct {
	Kind        Kind
	Name        string
	Description string
	Target      interface{}
}

// Argument declares that the value pointed to by target should be
// set from "-name VALUE" when Init runs.
func (b *Binder) Argument(target interface{}, name string, description string) error {
	v := reflect.ValueOf(target)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() {
		return InvalidArgument(errors.Wrapf(ErrInvalidArgument,
			"argument %s: target must be a non-nil pointer, not %T", name, target))
	}
	b.addMarker(Marker{
		Kind:        ArgumentMarker,
		Name:        name,
		Description: description,
		Target:      target,
	})
	return nil
}

// Command declares that fn should be invoked when "-name" is present
// when Init runs.  Only func() can be invoked.  Anything else is
// accepted here and ignored by Init.
func (b *Binder) Command(fn interface{}, name string, description string) error {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || (v.Kind() == reflect.Func && v.IsNil()) {
		return InvalidArgument(errors.Wrapf(ErrInvalidArgument, "command %s: nil function", name))
	}
	b.addMarker(Marker{
		Kind:        CommandMarker,
		Name:        name,
		Description: description,
		Target:      fn,
	})
	return nil
}

// Scan registers a container: a pointer to a struct, usually a package
// level variable, whose tagged fields are arguments and commands.
//
//	var settings struct {
//		Count int    `arg:"count,desc=how many widgets"`
//		Reset func() `cmd:"reset,desc=forget all widgets"`
//	}
//
//	func init() {
//		argbind.Scan(&settings)
//	}
//
// Unexported fields are eligible too.  Containers are re-examined on
// every Init so command functions assigned after Scan are seen.
func (b *Binder) Scan(container interface{}) error {
	v := reflect.ValueOf(container)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() || v.Type().Elem().Kind() != reflect.Struct {
		return InvalidArgument(errors.Wrapf(ErrInvalidArgument,
			"Scan requires a non-nil pointer to a struct, not %T", container))
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.containers = append(b.containers, v)
	return nil
}

func (b *Binder) addMarker(m Marker) {
	b.lock.Lock()
	defer b.lock.Unlock()
	debugf("declared %s marker %q", m.Kind, m.Name)
	b.markers = append(b.markers, m)
}

// Argument declares an argument on DefaultBinder.
func Argument(target interface{}, name string, description string) error {
	return DefaultBinder.Argument(target, name, description)
}

// Command declares a command on DefaultBinder.
func Command(fn interface{}, name string, description string) error {
	return DefaultBinder.Command(fn, name, description)
}

// Scan registers a container with DefaultBinder.
func Scan(container interface{}) error {
	return DefaultBinder.Scan(container)
}
