package module

import (
	"fmt"
	"reflect"
)

// PortsOf finds a T in m.Ports(): the value itself, or else the first exported struct field holding one
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		if !rv.Type().Field(i).IsExported() {
			continue
		}
		if v, ok := rv.Field(i).Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for startup wiring
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic(fmt.Sprintf("module %s exposes no %T", m.Name(), &v))
	}
	return v
}
