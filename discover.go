package argbind

import (
	"reflect"
	"strings"
	"unsafe"

	"github.com/muir/reflectutils"
)

type argumentBinding struct {
	name        string
	description string
	slot        reflect.Value // settable
	source      string
	option      *Option
}

type commandBinding struct {
	name        string
	description string
	fn          func()
	source      string
	option      *Option
}

var funcType = reflect.TypeOf(func() {})

type markerTag struct {
	Name string `pt:"0"`
	Desc string `pt:"desc"`
}

// discovery is a snapshot of what was declared on a Binder when Init
// began.  Nothing from one discovery is kept for the next.
type discovery struct {
	markers    []Marker
	containers []reflect.Value
	argTag     string
	cmdTag     string
}

func (d discovery) discoverArguments() []*argumentBinding {
	var found []*argumentBinding
	for _, m := range d.markers {
		if m.Kind != ArgumentMarker {
			continue
		}
		if !validName(m.Name) {
			debugf("skipping argument marker for %T: bad name %q", m.Target, m.Name)
			continue
		}
		found = append(found, &argumentBinding{
			name:        m.Name,
			description: m.Description,
			slot:        reflect.ValueOf(m.Target).Elem(),
			source:      "marker",
		})
	}
	for _, c := range d.containers {
		walkFields(c.Elem(), "", func(f reflect.StructField, v reflect.Value, path string) bool {
			mt, ok := d.readTag(f, d.argTag)
			if !ok {
				return true
			}
			if !validName(mt.Name) {
				debugf("skipping argument %s: bad name %q", path, mt.Name)
				return false
			}
			found = append(found, &argumentBinding{
				name:        mt.Name,
				description: mt.Desc,
				slot:        settable(v),
				source:      path,
			})
			return false
		})
	}
	return found
}

func (d discovery) discoverCommands() []*commandBinding {
	var found []*commandBinding
	add := func(name, description string, fn reflect.Value, source string) {
		if !validName(name) {
			debugf("skipping command %s: bad name %q", source, name)
			return
		}
		if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
			debugf("skipping command %s: not a function", source)
			return
		}
		if !fn.Type().ConvertibleTo(funcType) {
			debugf("skipping command %s: %s is not func()", source, fn.Type())
			return
		}
		call := fn.Convert(funcType).Interface().(func())
		found = append(found, &commandBinding{
			name:        name,
			description: description,
			fn:          call,
			source:      source,
		})
	}
	for _, m := range d.markers {
		if m.Kind != CommandMarker {
			continue
		}
		add(m.Name, m.Description, reflect.ValueOf(m.Target), "marker "+m.Name)
	}
	for _, c := range d.containers {
		walkFields(c.Elem(), "", func(f reflect.StructField, v reflect.Value, path string) bool {
			mt, ok := d.readTag(f, d.cmdTag)
			if !ok {
				return true
			}
			if f.Type.Kind() != reflect.Func {
				debugf("skipping command %s: field type %s", path, f.Type)
				return false
			}
			add(mt.Name, mt.Desc, settable(v), path)
			return false
		})
	}
	return found
}

func (d discovery) readTag(f reflect.StructField, tagName string) (markerTag, bool) {
	tag := reflectutils.SplitTag(f.Tag).Set().Get(tagName)
	if tag.Tag == "" {
		return markerTag{}, false
	}
	var mt markerTag
	err := tag.Fill(&mt)
	if err != nil {
		debugf("skipping field %s: %s tag: %s", f.Name, tagName, err)
		return markerTag{}, false
	}
	switch mt.Name {
	case "-":
		return markerTag{}, false
	case "":
		mt.Name = strings.ToLower(f.Name)
	}
	return mt, true
}

// walkFields visits the fields of a struct, descending into nested
// struct fields when visit returns true.
func walkFields(v reflect.Value, prefix string, visit func(reflect.StructField, reflect.Value, string) bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := v.Field(i)
		path := prefix + f.Name
		if visit(f, fv, path) && f.Type.Kind() == reflect.Struct {
			walkFields(fv, path+".", visit)
		}
	}
}

// settable returns a version of v that can be set and read even if
// it was reached through an unexported field.  v must be addressable.
func settable(v reflect.Value) reflect.Value {
	if v.CanSet() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}
