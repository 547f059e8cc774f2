package reflecthost

import (
	"fmt"
	"io"
	"reflect"

	"reflectbridge/internal/wire"
)

// builtinOrder is the canonical, ordered list of well-known types from
// spec.md §3: virtual handle -n denotes the n-th entry (1-indexed).
var builtinOrder = []struct {
	name string
	typ  reflect.Type
}{
	{"byte", reflect.TypeOf(byte(0))},
	{"boolean", reflect.TypeOf(false)},
	{"short", reflect.TypeOf(int16(0))},
	{"char", reflect.TypeOf(uint16(0))},
	{"int", reflect.TypeOf(int32(0))},
	{"float", reflect.TypeOf(float32(0))},
	{"long", reflect.TypeOf(int64(0))},
	{"double", reflect.TypeOf(float64(0))},
	{"Object", reflect.TypeOf((*any)(nil)).Elem()},
	{"String", reflect.TypeOf("")},
	{"Class", reflect.TypeOf((*reflect.Type)(nil)).Elem()},
}

var (
	builtins      []*Class
	builtinsByName map[string]*Class
)

func init() {
	builtins = make([]*Class, len(builtinOrder))
	builtinsByName = make(map[string]*Class, len(builtinOrder))
	for i, b := range builtinOrder {
		c := &Class{Name: b.name, Type: b.typ}
		builtins[i] = c
		builtinsByName[b.name] = c
	}
}

// inlinePrimitiveBandSize is the number of inline-primitive virtual codes
// (-1 through -8) defined in spec.md §4.5.
const inlinePrimitiveBandSize = 8

// ResolveClass resolves a handle appearing where a class reference is
// expected (GET_METHOD's owner handle and parameter-type handles): h >= 0
// resolves through the object table, h < 0 indexes directly into the
// built-in type list (virtual handle -n is the n-th built-in).
func ResolveClass(h int32, resolveSlot func(int32) (any, error)) (*Class, error) {
	if h >= 0 {
		obj, err := resolveSlot(h)
		if err != nil {
			return nil, err
		}
		c, ok := obj.(*Class)
		if !ok {
			return nil, fmt.Errorf("reflecthost: handle %d does not hold a class", h)
		}
		return c, nil
	}
	idx := int(-h) - 1
	if idx < 0 || idx >= len(builtins) {
		return nil, fmt.Errorf("reflecthost: invalid built-in class virtual handle %d", h)
	}
	return builtins[idx], nil
}

// ResolveArgument resolves a handle appearing as a method-invocation
// argument, per spec.md §4.5: non-negative handles are stored references,
// the inline-primitive band (-1..-8) consumes its bits from r, and handles
// beyond that band name a built-in Class object directly (used when the
// argument itself is a Class reference).
func ResolveArgument(h int32, r io.Reader, resolveSlot func(int32) (any, error)) (any, error) {
	if h >= 0 {
		return resolveSlot(h)
	}
	switch h {
	case -1:
		v, err := wire.ReadInt(r)
		if err != nil {
			return nil, err
		}
		return byte(v), nil
	case -2:
		v, err := wire.ReadInt(r)
		if err != nil {
			return nil, err
		}
		return v != 0, nil
	case -3:
		v, err := wire.ReadInt(r)
		if err != nil {
			return nil, err
		}
		return int16(v), nil
	case -4:
		v, err := wire.ReadInt(r)
		if err != nil {
			return nil, err
		}
		return uint16(v), nil
	case -5:
		v, err := wire.ReadInt(r)
		if err != nil {
			return nil, err
		}
		return int32(v), nil
	case -6:
		v, err := wire.ReadInt(r)
		if err != nil {
			return nil, err
		}
		return math32FromBits(v), nil
	case -7:
		hi, err := wire.ReadInt(r)
		if err != nil {
			return nil, err
		}
		lo, err := wire.ReadInt(r)
		if err != nil {
			return nil, err
		}
		return int64(uint64(hi)<<32 | uint64(lo)), nil
	case -8:
		hi, err := wire.ReadInt(r)
		if err != nil {
			return nil, err
		}
		lo, err := wire.ReadInt(r)
		if err != nil {
			return nil, err
		}
		return math64FromBits(uint64(hi)<<32 | uint64(lo)), nil
	default:
		idx := int(-h) - 1 - inlinePrimitiveBandSize
		if idx < 0 || idx >= len(builtins) {
			return nil, fmt.Errorf("reflecthost: invalid virtual argument handle %d", h)
		}
		return builtins[idx], nil
	}
}
