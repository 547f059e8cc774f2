// Package dispatch implements the worker's request-processing loop:
// spec.md §4.4. It is the glue between the wire codec, the object table,
// and the reflective host substrate.
package dispatch

import (
	"fmt"
	"io"
	"reflect"

	"go.uber.org/zap"

	"reflectbridge/internal/frame"
	"reflectbridge/internal/objtable"
	"reflectbridge/internal/reflecthost"
	"reflectbridge/internal/wire"
)

// Dispatcher runs the command-processing loop described in spec.md §4.4.
type Dispatcher struct {
	in       io.Reader
	out      *frame.Writer
	table    *objtable.Table
	registry *reflecthost.Registry
	log      *zap.Logger
}

// New builds a Dispatcher. log may be zap.NewNop() to disable the debug
// command-name echo.
func New(in io.Reader, out *frame.Writer, table *objtable.Table, registry *reflecthost.Registry, log *zap.Logger) *Dispatcher {
	return &Dispatcher{in: in, out: out, table: table, registry: registry, log: log}
}

// Run executes the Running/Shutting-down state machine until SHUTDOWN or
// EOF, emitting a terminal SHUTDOWN frame on the way out.
func (d *Dispatcher) Run() error {
	for {
		tag, err := wire.ReadCommandTag(d.in)
		if err != nil {
			return d.out.Shutdown()
		}
		if tag == wire.Shutdown {
			return d.out.Shutdown()
		}

		d.log.Debug("command", zap.Stringer("tag", tag))

		if err := d.handleRecovering(tag); err != nil {
			if werr := d.out.Error(err.Error()); werr != nil {
				return werr // fatal I/O error on stdout: no graceful shutdown frame
			}
		}
	}
}

// handleRecovering runs handle and converts a panic escaping it into an
// error, the Go counterpart to PyJavaExecutor.java's catch (Exception e)
// around Method.invoke: a malformed argument reaching reflect.Value.Call
// panics rather than returning an error, and that must not take down the
// whole command loop.
func (d *Dispatcher) handleRecovering(tag wire.CommandTag) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dispatch: panic handling %s: %v", tag, r)
		}
	}()
	return d.handle(tag)
}

func (d *Dispatcher) handle(tag wire.CommandTag) error {
	switch tag {
	case wire.GetClass:
		return d.handleGetClass()
	case wire.FreeObject:
		return d.handleFreeObject()
	case wire.GetMethod:
		return d.handleGetMethod()
	case wire.ToString:
		return d.handleToString()
	case wire.CreateString:
		return d.handleCreateString()
	case wire.InvokeStaticMethod:
		return d.handleInvokeStaticMethod()
	default:
		return fmt.Errorf("dispatch: unrecognized command tag %v", tag)
	}
}

func (d *Dispatcher) handleGetClass() error {
	name, err := wire.ReadText(d.in)
	if err != nil {
		return err
	}
	class, err := d.registry.GetClass(name)
	if err != nil {
		return err
	}
	return d.out.Int(uint32(d.table.Admit(class)))
}

func (d *Dispatcher) handleFreeObject() error {
	h, err := wire.ReadInt(d.in)
	if err != nil {
		return err
	}
	if err := d.table.Free(int32(h)); err != nil {
		return err
	}
	return d.out.Void()
}

func (d *Dispatcher) resolveClassHandle() (*reflecthost.Class, error) {
	h, err := wire.ReadInt(d.in)
	if err != nil {
		return nil, err
	}
	return reflecthost.ResolveClass(int32(h), d.table.Resolve)
}

func (d *Dispatcher) handleGetMethod() error {
	owner, err := d.resolveClassHandle()
	if err != nil {
		return err
	}
	name, err := wire.ReadText(d.in)
	if err != nil {
		return err
	}
	arity, err := wire.ReadInt(d.in)
	if err != nil {
		return err
	}
	params := make([]*reflecthost.Class, arity)
	for i := range params {
		c, err := d.resolveClassHandle()
		if err != nil {
			return err
		}
		params[i] = c
	}
	method, err := d.registry.GetMethod(owner, name, params)
	if err != nil {
		return err
	}
	return d.out.Int(uint32(d.table.Admit(method)))
}

func (d *Dispatcher) handleToString() error {
	h, err := wire.ReadInt(d.in)
	if err != nil {
		return err
	}
	obj, err := reflecthost.ResolveArgument(int32(h), d.in, d.table.Resolve)
	if err != nil {
		return err
	}
	return d.out.String(stringify(obj))
}

func (d *Dispatcher) handleCreateString() error {
	text, err := wire.ReadText(d.in)
	if err != nil {
		return err
	}
	return d.out.Int(uint32(d.table.Admit(text)))
}

func (d *Dispatcher) handleInvokeStaticMethod() error {
	h, err := wire.ReadInt(d.in)
	if err != nil {
		return err
	}
	obj, err := d.table.Resolve(int32(h))
	if err != nil {
		return err
	}
	method, ok := obj.(*reflecthost.Method)
	if !ok {
		return fmt.Errorf("dispatch: handle %d is not a method", h)
	}

	arity, err := wire.ReadInt(d.in)
	if err != nil {
		return err
	}
	if int(arity) != len(method.ParamTypes) {
		return fmt.Errorf("dispatch: %s expects %d argument(s), got %d", method, len(method.ParamTypes), arity)
	}

	args := make([]reflect.Value, arity)
	for i := range args {
		ah, err := wire.ReadInt(d.in)
		if err != nil {
			return err
		}
		arg, err := reflecthost.ResolveArgument(int32(ah), d.in, d.table.Resolve)
		if err != nil {
			return err
		}
		if arg == nil {
			// A stored nil (e.g. the admitted result of a void method)
			// passed as an argument: reflect.ValueOf(nil) is an invalid
			// Value and Call would panic on it, but Java's Method.invoke
			// accepts null for any reference-typed parameter, so the Go
			// equivalent is the zero Value of the declared parameter type.
			args[i] = reflect.Zero(method.ParamTypes[i].Type)
			continue
		}
		args[i] = reflect.ValueOf(arg)
	}

	result, err := method.Call(args)
	if err != nil {
		return err
	}
	return d.out.Int(uint32(d.table.Admit(result)))
}

func stringify(obj any) string {
	if obj == nil {
		return "null"
	}
	if s, ok := obj.(interface{ String() string }); ok {
		return s.String()
	}
	return fmt.Sprint(obj)
}
