package argbind

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMode int32

const (
	modeOff testMode = iota
	modeOn
	modeAuto
)

type processToken string

var stringType = reflect.TypeOf("")

func TestRegisterNil(t *testing.T) {
	r := NewReaders()
	err := r.Register(nil, func(s string) (interface{}, error) { return s, nil })
	require.Error(t, err, "nil type")
	assert.True(t, IsInvalidArgument(err), "nil type is invalid argument")
	assert.True(t, errors.Is(err, ErrInvalidArgument), "errors.Is")

	err = r.Register(stringType, nil)
	require.Error(t, err, "nil reader")
	assert.True(t, IsInvalidArgument(err), "nil reader is invalid argument")

	_, ok := r.Lookup(stringType)
	assert.False(t, ok, "failed registration adds nothing")

	assert.True(t, IsInvalidArgument(AddTypeReader(nil, nil)), "process readers, nil type")
	assert.True(t, IsInvalidArgument(AddTypeReader(stringType, nil)), "process readers, nil reader")
}

func TestRegisterLastWins(t *testing.T) {
	r := NewReaders()
	require.NoError(t, r.Register(stringType, func(s string) (interface{}, error) {
		return "first " + s, nil
	}))
	require.NoError(t, r.Register(stringType, func(s string) (interface{}, error) {
		return "second " + s, nil
	}))
	reader, ok := r.Lookup(stringType)
	require.True(t, ok, "lookup")
	v, err := reader("x")
	require.NoError(t, err)
	assert.Equal(t, "second x", v)
}

func TestAddTypeReader(t *testing.T) {
	typ := reflect.TypeOf(processToken(""))
	require.NoError(t, AddTypeReader(typ, func(s string) (interface{}, error) {
		return processToken(strings.ToUpper(s)), nil
	}))
	require.NoError(t, AddTypeReader(typ, func(s string) (interface{}, error) {
		return processToken(strings.ToLower(s)), nil
	}))
	reader, ok := ProcessReaders().Lookup(typ)
	require.True(t, ok, "lookup")
	v, err := reader("MiXeD")
	require.NoError(t, err)
	assert.Equal(t, processToken("mixed"), v)
}

func TestBuiltinReaders(t *testing.T) {
	cases := []struct {
		token string
		want  interface{}
	}{
		{token: "text", want: "text"},
		{token: "true", want: true},
		{token: "-7", want: int(-7)},
		{token: "-8", want: int8(-8)},
		{token: "300", want: int16(300)},
		{token: "42", want: int32(42)},
		{token: "9000000000", want: int64(9000000000)},
		{token: "7", want: uint(7)},
		{token: "255", want: uint8(255)},
		{token: "65535", want: uint16(65535)},
		{token: "4000000000", want: uint32(4000000000)},
		{token: "18000000000000000000", want: uint64(18000000000000000000)},
		{token: "0.5", want: float32(0.5)},
		{token: "2.25", want: float64(2.25)},
	}
	r := DefaultReaders()
	for _, tc := range cases {
		typ := reflect.TypeOf(tc.want)
		t.Run(typ.String(), func(t *testing.T) {
			reader, ok := r.Lookup(typ)
			require.True(t, ok, "lookup")
			v, err := reader(tc.token)
			require.NoError(t, err, "read")
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestBuiltinReadersReject(t *testing.T) {
	r := DefaultReaders()
	for typ, token := range map[reflect.Type]string{
		reflect.TypeOf(false):      "maybe",
		reflect.TypeOf(int32(0)):   "forty-two",
		reflect.TypeOf(uint8(0)):   "256",
		reflect.TypeOf(uint(0)):    "-1",
		reflect.TypeOf(float64(0)): "1.2.3",
	} {
		reader, ok := r.Lookup(typ)
		require.True(t, ok, typ.String())
		_, err := reader(token)
		assert.Errorf(t, err, "%s %s", typ, token)
	}
}

func TestReadersCopy(t *testing.T) {
	r := DefaultReaders()
	c := r.Copy()
	require.NoError(t, c.Register(stringType, func(s string) (interface{}, error) {
		return "copy", nil
	}))
	reader, ok := r.Lookup(stringType)
	require.True(t, ok)
	v, err := reader("original")
	require.NoError(t, err)
	assert.Equal(t, "original", v, "original is untouched")

	_, ok = NewReaders().Lookup(stringType)
	assert.False(t, ok, "NewReaders is empty")
}

func TestAddReader(t *testing.T) {
	r := NewReaders()
	require.NoError(t, AddReader(r, func(s string) (testMode, error) {
		i, err := strconv.Atoi(s)
		return testMode(i * 2), err
	}))
	reader, ok := r.Lookup(reflect.TypeOf(modeOff))
	require.True(t, ok)
	v, err := reader("1")
	require.NoError(t, err)
	assert.Equal(t, testMode(2), v)

	assert.True(t, IsInvalidArgument(AddReader[int](r, nil)), "nil function")
}

func TestEnumBase(t *testing.T) {
	base, ok := enumBase(reflect.TypeOf(modeOn))
	require.True(t, ok, "testMode is an enum")
	assert.Equal(t, reflect.TypeOf(int32(0)), base)

	_, ok = enumBase(reflect.TypeOf(int32(0)))
	assert.False(t, ok, "int32 is not an enum")
	_, ok = enumBase(reflect.TypeOf(processToken("")))
	assert.False(t, ok, "string types are not enums")
}
