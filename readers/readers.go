/*
Package readers provides argbind TypeReaders for types beyond the
built-in string, bool, integer, and float readers.

	err := readers.Register(argbind.ProcessReaders())

After that, fields of type time.Duration, time.Time, *url.URL, net.IP,
*version.Version, and version.Constraints can be bound.
*/
package readers

import (
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/hashicorp/go-version"
	"github.com/muir/argbind"
	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

// Register adds all of the readers in this package to r.  Readers already
// in r for the same types are replaced.
func Register(r *argbind.Readers) error {
	for t, reader := range All() {
		err := r.Register(t, reader)
		if err != nil {
			return errors.Wrap(err, t.String())
		}
	}
	return nil
}

// All returns the readers in this package keyed by the type they read.
func All() map[reflect.Type]argbind.TypeReader {
	return map[reflect.Type]argbind.TypeReader{
		reflect.TypeOf(time.Duration(0)):      Duration,
		reflect.TypeOf(time.Time{}):           Time,
		reflect.TypeOf(&url.URL{}):            URL,
		reflect.TypeOf(net.IP{}):              IP,
		reflect.TypeOf(&version.Version{}):    Version,
		reflect.TypeOf(version.Constraints{}): Constraints,
	}
}

// Duration reads Go durations like "90s" or "1h30m".
var Duration = fromStringSetter(reflect.TypeOf(time.Duration(0)))

// Time reads RFC 3339 timestamps.
var Time = fromStringSetter(reflect.TypeOf(time.Time{}))

// URL only accepts absolute URLs.
func URL(s string) (interface{}, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !u.IsAbs() {
		return nil, errors.Errorf("%q is not an absolute URL", s)
	}
	return u, nil
}

// IP reads IPv4 and IPv6 addresses.
var IP = fromStringSetter(reflect.TypeOf(net.IP{}))

// Version reads semantic versions like "1.2.3" or "v2.0.0-beta1".
func Version(s string) (interface{}, error) {
	v, err := version.NewVersion(s)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return v, nil
}

// Constraints reads version constraints like ">= 1.2, < 2.0".
func Constraints(s string) (interface{}, error) {
	c, err := version.NewConstraint(s)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return c, nil
}

// fromStringSetter makes a TypeReader from a reflectutils string setter.
// The setter fills a fresh value which is returned only if the setter
// succeeds.
func fromStringSetter(t reflect.Type) argbind.TypeReader {
	setter, err := reflectutils.MakeStringSetter(t)
	if err != nil {
		err = errors.Wrapf(err, "no string setter for %s", t)
		return func(string) (interface{}, error) {
			return nil, err
		}
	}
	return func(s string) (interface{}, error) {
		v := reflect.New(t).Elem()
		err := setter(v, s)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", t)
		}
		return v.Interface(), nil
	}
}
