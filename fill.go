package argbind

import (
	"reflect"

	"github.com/pkg/errors"
)

// fillArgument sets the bound field from its option's raw value.  It
// reports if the field was set.  Failures are returned so that they
// can be logged, but the caller does not act on them.
//
// The order of resolution is: a reader for the exact field type, a
// reader for the element type of a pointer field, and finally a
// reader for the underlying integer type of an enum.  Pointers to
// enums use the underlying type of the element.
func fillArgument(readers *Readers, a *argumentBinding) (bool, error) {
	t := a.slot.Type()
	raw := a.option.Value()
	if reader, ok := readers.Lookup(t); ok {
		return setFrom(a.slot, reader, raw)
	}
	if t.Kind() != reflect.Ptr {
		reader, err := valueReader(readers, t)
		if err != nil {
			return false, err
		}
		return setFrom(a.slot, reader, raw)
	}
	reader, err := valueReader(readers, t.Elem())
	if err != nil {
		return false, err
	}
	p := reflect.New(t.Elem())
	set, err := setFrom(p.Elem(), reader, raw)
	if !set {
		return false, err
	}
	a.slot.Set(p)
	return true, nil
}

func valueReader(readers *Readers, t reflect.Type) (TypeReader, error) {
	if reader, ok := readers.Lookup(t); ok {
		return reader, nil
	}
	base, ok := enumBase(t)
	if !ok {
		return nil, errors.Errorf("no reader for %s", t)
	}
	reader, ok := readers.Lookup(base)
	if !ok {
		return nil, errors.Errorf("no reader for %s, the underlying type of %s", base, t)
	}
	return reader, nil
}

// setFrom runs reader on raw and stores the result in v.  A result that
// is not assignable is only converted when it has the same kind as v,
// which is the enum case: anything else is a reader for the wrong type.
func setFrom(v reflect.Value, reader TypeReader, raw string) (set bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			set = false
			err = errors.Errorf("reader panic: %v", r)
		}
	}()
	value, err := reader(raw)
	if err != nil {
		return false, errors.Wrapf(err, "read %q", raw)
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return false, errors.Errorf("reader returned nil for %q", raw)
	}
	switch {
	case rv.Type().AssignableTo(v.Type()):
	case rv.Kind() == v.Kind() && rv.Type().ConvertibleTo(v.Type()):
		rv = rv.Convert(v.Type())
	default:
		return false, errors.Errorf("reader returned %s, cannot be stored in %s", rv.Type(), v.Type())
	}
	v.Set(rv)
	return true, nil
}

// invoke calls a command.  A panic is the only way a func() can fail:
// it is recovered and returned.
func invoke(c *commandBinding) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("command -%s panic: %v", c.name, r)
		}
	}()
	c.fn()
	return nil
}
