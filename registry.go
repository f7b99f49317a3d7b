package argbind

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

// TypeReader converts one raw command line token into a value of the
// type it is registered for.
type TypeReader func(token string) (interface{}, error)

// Readers maps field types to the TypeReader used to fill them.
// Registration is last-write-wins and there is no way to remove a
// reader once added.
type Readers struct {
	lock    sync.RWMutex
	readers map[reflect.Type]TypeReader
}

// NewReaders returns a Readers without any readers, not even
// the built-in ones.
func NewReaders() *Readers {
	return &Readers{
		readers: make(map[reflect.Type]TypeReader),
	}
}

// DefaultReaders returns a fresh Readers pre-loaded with the built-in
// readers: string, bool, and all of the sized and unsized integer and
// float types.
func DefaultReaders() *Readers {
	r := NewReaders()
	for t, reader := range builtinReaders {
		r.readers[t] = reader
	}
	return r
}

var processReaders = DefaultReaders()

// Register adds a reader for t, replacing any reader previously
// registered for t.
func (r *Readers) Register(t reflect.Type, reader TypeReader) error {
	if t == nil {
		return InvalidArgument(errors.Wrap(ErrInvalidArgument, "register reader: nil type"))
	}
	if reader == nil {
		return InvalidArgument(errors.Wrapf(ErrInvalidArgument, "register reader for %s: nil reader", t))
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.readers[t]; ok {
		debugf("replacing reader for %s", t)
	}
	r.readers[t] = reader
	return nil
}

// Lookup returns the reader registered for exactly t.
func (r *Readers) Lookup(t reflect.Type) (TypeReader, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	reader, ok := r.readers[t]
	return reader, ok
}

// Copy makes a shallow copy.
func (r *Readers) Copy() *Readers {
	r.lock.RLock()
	defer r.lock.RUnlock()
	n := NewReaders()
	for t, reader := range r.readers {
		n.readers[t] = reader
	}
	return n
}

// AddReader registers fn as the reader for T.
func AddReader[T any](r *Readers, fn func(string) (T, error)) error {
	if fn == nil {
		return InvalidArgument(errors.Wrap(ErrInvalidArgument, "add reader: nil function"))
	}
	return r.Register(reflect.TypeOf((*T)(nil)).Elem(), func(token string) (interface{}, error) {
		return fn(token)
	})
}

// AddTypeReader registers reader for t in the process-wide Readers used
// by DefaultBinder and by any Binder created without WithReaders.  It
// should be called before Init.
func AddTypeReader(t reflect.Type, reader TypeReader) error {
	return processReaders.Register(t, reader)
}

// ProcessReaders returns the process-wide Readers.
func ProcessReaders() *Readers {
	return processReaders
}

var builtinReaders = map[reflect.Type]TypeReader{
	reflect.TypeOf(""): func(s string) (interface{}, error) {
		return s, nil
	},
	reflect.TypeOf(false): func(s string) (interface{}, error) {
		b, err := strconv.ParseBool(s)
		return b, errors.WithStack(err)
	},
	reflect.TypeOf(int(0)): func(s string) (interface{}, error) {
		i, err := strconv.ParseInt(s, 10, strconv.IntSize)
		return int(i), errors.WithStack(err)
	},
	reflect.TypeOf(int8(0)): func(s string) (interface{}, error) {
		i, err := strconv.ParseInt(s, 10, 8)
		return int8(i), errors.WithStack(err)
	},
	reflect.TypeOf(int16(0)): func(s string) (interface{}, error) {
		i, err := strconv.ParseInt(s, 10, 16)
		return int16(i), errors.WithStack(err)
	},
	reflect.TypeOf(int32(0)): func(s string) (interface{}, error) {
		i, err := strconv.ParseInt(s, 10, 32)
		return int32(i), errors.WithStack(err)
	},
	reflect.TypeOf(int64(0)): func(s string) (interface{}, error) {
		i, err := strconv.ParseInt(s, 10, 64)
		return i, errors.WithStack(err)
	},
	reflect.TypeOf(uint(0)): func(s string) (interface{}, error) {
		i, err := strconv.ParseUint(s, 10, strconv.IntSize)
		return uint(i), errors.WithStack(err)
	},
	reflect.TypeOf(uint8(0)): func(s string) (interface{}, error) {
		i, err := strconv.ParseUint(s, 10, 8)
		return uint8(i), errors.WithStack(err)
	},
	reflect.TypeOf(uint16(0)): func(s string) (interface{}, error) {
		i, err := strconv.ParseUint(s, 10, 16)
		return uint16(i), errors.WithStack(err)
	},
	reflect.TypeOf(uint32(0)): func(s string) (interface{}, error) {
		i, err := strconv.ParseUint(s, 10, 32)
		return uint32(i), errors.WithStack(err)
	},
	reflect.TypeOf(uint64(0)): func(s string) (interface{}, error) {
		i, err := strconv.ParseUint(s, 10, 64)
		return i, errors.WithStack(err)
	},
	reflect.TypeOf(float32(0)): func(s string) (interface{}, error) {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), errors.WithStack(err)
	},
	reflect.TypeOf(float64(0)): func(s string) (interface{}, error) {
		f, err := strconv.ParseFloat(s, 64)
		return f, errors.WithStack(err)
	},
}

// basicKinds is used to find the underlying representation of
// enum types.
var basicKinds = map[reflect.Kind]reflect.Type{
	reflect.Int:    reflect.TypeOf(int(0)),
	reflect.Int8:   reflect.TypeOf(int8(0)),
	reflect.Int16:  reflect.TypeOf(int16(0)),
	reflect.Int32:  reflect.TypeOf(int32(0)),
	reflect.Int64:  reflect.TypeOf(int64(0)),
	reflect.Uint:   reflect.TypeOf(uint(0)),
	reflect.Uint8:  reflect.TypeOf(uint8(0)),
	reflect.Uint16: reflect.TypeOf(uint16(0)),
	reflect.Uint32: reflect.TypeOf(uint32(0)),
	reflect.Uint64: reflect.TypeOf(uint64(0)),
}

// enumBase returns the basic integer type underneath a defined
// integer type like "type Mode int32".
func enumBase(t reflect.Type) (reflect.Type, bool) {
	base, ok := basicKinds[t.Kind()]
	if !ok || base == t {
		return nil, false
	}
	return base, true
}
