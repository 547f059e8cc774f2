// Example demonstrates driving the reflective-bridge worker from an
// in-process caller: registering a custom static method, then writing the
// command stream a real driver would send over stdin and reading the
// result stream the worker writes to stdout.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"go.uber.org/zap"

	"reflectbridge/internal/dispatch"
	"reflectbridge/internal/frame"
	"reflectbridge/internal/hostio"
	"reflectbridge/internal/objtable"
	"reflectbridge/internal/reflecthost"
	"reflectbridge/internal/wire"
)

func main() {
	table := objtable.New()
	registry := reflecthost.NewRegistry()

	var outBuf bytes.Buffer
	out := frame.New(&outBuf)
	reflecthost.RegisterDefaults(registry, hostio.New(out))

	// example.Repeat.Twice(string) string: a custom registered static
	// method beyond the built-in demo classes.
	registry.RegisterType("example.Repeat", nil)
	if err := registry.RegisterStaticMethod("example.Repeat", "Twice", func(s string) string {
		return s + s
	}); err != nil {
		log.Fatal(err)
	}

	in := encodeRequests()

	d := dispatch.New(in, out, table, registry, zap.NewNop())
	if err := d.Run(); err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== raw result stream ===")
	fmt.Println(outBuf.String())

	decodeResults(&outBuf)
}

// encodeRequests builds the command stream for: GET_CLASS("example.Repeat"),
// GET_METHOD(owner, "Twice", [String]), CREATE_STRING("ab"),
// INVOKE_STATIC_METHOD(method, ["ab"]), FREE_OBJECT(method), SHUTDOWN.
func encodeRequests() io.Reader {
	var buf bytes.Buffer

	writeTag := func(t wire.CommandTag) { buf.WriteByte(wire.EncodeTag(int(t))) }
	writeInt := func(v uint32) { buf.Write(wire.EncodeInt(v)) }
	writeText := func(s string) { wire.WriteText(&buf, s) }

	writeTag(wire.GetClass)
	writeText("example.Repeat")

	writeTag(wire.GetMethod)
	writeInt(0) // handle 0: the example.Repeat class from GET_CLASS above
	writeText("Twice")
	writeInt(1) // one parameter
	// The String built-in is virtual handle -10 (10th entry in builtinOrder).
	stringHandle := int32(-10)
	writeInt(uint32(stringHandle))

	writeTag(wire.CreateString)
	writeText("ab")

	writeTag(wire.InvokeStaticMethod)
	writeInt(1) // handle 1: the method from GET_METHOD above
	writeInt(1) // one argument
	writeInt(2) // handle 2: the string from CREATE_STRING above

	writeTag(wire.FreeObject)
	writeInt(1)

	writeTag(wire.Shutdown)

	return &buf
}

func decodeResults(r io.Reader) {
	fmt.Println("=== decoded results ===")
	for {
		tag, err := readResultTag(r)
		if err != nil {
			fmt.Println("read error:", err)
			return
		}
		switch tag {
		case wire.ResultShutdown:
			fmt.Println("SHUTDOWN")
			return
		case wire.IntResult:
			v, _ := wire.ReadInt(r)
			fmt.Println("INT_RESULT", v)
		case wire.VoidResult:
			fmt.Println("VOID_RESULT")
		case wire.StringResult:
			s, _ := wire.ReadText(r)
			fmt.Printf("STRING_RESULT %q\n", s)
		case wire.ErrorResult:
			s, _ := wire.ReadText(r)
			fmt.Println("ERROR_RESULT", s)
		case wire.PrintOut:
			s, _ := wire.ReadText(r)
			fmt.Printf("PRINT_OUT %q\n", s)
		}
	}
}

func readResultTag(r io.Reader) (wire.ResultTag, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	for i, c := range "0123456789abcdefghijklmnopqrstuvwxyz" {
		if byte(c) == b[0] {
			return wire.ResultTag(i), nil
		}
	}
	return 0, fmt.Errorf("unrecognized result tag byte %q", b[0])
}
