// Package reflecthost is the Go stand-in for the host runtime's reflective
// object system. Java's java.lang.reflect lets the original worker resolve
// any class by name (Class.forName) and any of its methods by name and
// parameter types (Class.getMethod), then invoke that method via
// java.lang.reflect.Method.invoke. Go's reflect package only introspects
// values the caller already holds; it has no string-keyed global type or
// function loader. Registry is the explicit substitute, grounded on
// chazu-maggie's GoTypeRegistry (_examples/chazu-maggie/vm/go_object.go):
// classes and their static methods must be registered up front by whatever
// embeds the worker, and are thereafter resolved by name exactly the way
// GET_CLASS/GET_METHOD expect.
package reflecthost

import (
	"fmt"
	"reflect"
	"strings"
)

// Class is the worker's notion of a resolvable type: either one of the
// fixed built-in types (see builtinOrder) or a type registered by name via
// Registry.RegisterType.
type Class struct {
	Name string
	Type reflect.Type
}

func (c *Class) String() string {
	if c == nil {
		return "class <nil>"
	}
	return "class " + c.Name
}

// Method is a resolved static method: a callable Go func value together
// with the Class signature GET_METHOD matched it against.
type Method struct {
	Owner      *Class
	Name       string
	ParamTypes []*Class
	fn         reflect.Value
}

func (m *Method) String() string {
	names := make([]string, len(m.ParamTypes))
	for i, c := range m.ParamTypes {
		names[i] = c.Name
	}
	return fmt.Sprintf("%s.%s(%s)", m.Owner.Name, m.Name, strings.Join(names, ","))
}

// Call invokes the method with the given arguments, already converted to
// the Go types the underlying func expects. It returns the single return
// value (nil for a void method) or the error a func(...) (T, error)-shaped
// registration reported.
func (m *Method) Call(args []reflect.Value) (any, error) {
	results := m.fn.Call(args)
	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		if err, ok := results[0].Interface().(error); ok {
			return nil, err
		}
		return results[0].Interface(), nil
	default:
		last := results[len(results)-1]
		if err, ok := last.Interface().(error); ok && !last.IsNil() {
			return nil, err
		}
		return results[0].Interface(), nil
	}
}

// Registry is the worker's process-lifetime table of registered classes and
// static methods.
type Registry struct {
	types   map[string]*Class
	methods map[string]*Method
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:   make(map[string]*Class),
		methods: make(map[string]*Method),
	}
}

// RegisterType registers a resolvable class by name. Re-registering the
// same name returns the existing Class rather than replacing it.
func (r *Registry) RegisterType(name string, t reflect.Type) *Class {
	if c, ok := r.types[name]; ok {
		return c
	}
	c := &Class{Name: name, Type: t}
	r.types[name] = c
	return c
}

// GetClass resolves a class by name: a registered class first, then a
// built-in type.
func (r *Registry) GetClass(name string) (*Class, error) {
	if c, ok := r.types[name]; ok {
		return c, nil
	}
	if c, ok := builtinsByName[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("reflecthost: class not found: %s", name)
}

// RegisterStaticMethod registers fn, a Go func value, as the static method
// ownerName.methodName. fn must be a func whose parameter types are each
// either a built-in class's Go type or a type already passed to
// RegisterType, and whose results are (R), (), or (R, error).
func (r *Registry) RegisterStaticMethod(ownerName, methodName string, fn any) error {
	owner, err := r.GetClass(ownerName)
	if err != nil {
		owner = r.RegisterType(ownerName, nil)
	}
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return fmt.Errorf("reflecthost: RegisterStaticMethod(%s.%s): fn is not a func", ownerName, methodName)
	}
	ft := fv.Type()
	params := make([]*Class, ft.NumIn())
	for i := range params {
		pt := ft.In(i)
		c := r.classForGoType(pt)
		if c == nil {
			return fmt.Errorf("reflecthost: RegisterStaticMethod(%s.%s): parameter %d has unregistered type %s", ownerName, methodName, i, pt)
		}
		params[i] = c
	}
	m := &Method{Owner: owner, Name: methodName, ParamTypes: params, fn: fv}
	r.methods[methodKey(owner.Name, methodName, params)] = m
	return nil
}

// GetMethod resolves a static method by owner class, name, and the exact
// ordered list of parameter classes, mirroring Class.getMethod(name, types).
func (r *Registry) GetMethod(owner *Class, name string, paramTypes []*Class) (*Method, error) {
	key := methodKey(owner.Name, name, paramTypes)
	if m, ok := r.methods[key]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("reflecthost: no such method %s.%s%s", owner.Name, name, signature(paramTypes))
}

func (r *Registry) classForGoType(t reflect.Type) *Class {
	for _, c := range builtins {
		if c.Type == t {
			return c
		}
	}
	for _, c := range r.types {
		if c.Type == t {
			return c
		}
	}
	return nil
}

func methodKey(owner, name string, params []*Class) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return owner + "#" + name + "#" + strings.Join(names, ",")
}

func signature(params []*Class) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return "(" + strings.Join(names, ", ") + ")"
}
