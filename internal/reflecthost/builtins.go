package reflecthost

import (
	"strconv"
	"time"

	"reflectbridge/internal/hostio"
)

// RegisterDefaults pre-registers the small set of classes described in
// SPEC_FULL.md §9, so the worker is exercisable end to end without a driver
// supplying its own classes. out is the installed output interceptor that
// demo.Console.Greet prints through.
func RegisterDefaults(r *Registry, out *hostio.Writer) {
	r.RegisterType("time.Clock", nil)
	if err := r.RegisterStaticMethod("time.Clock", "Now", func() int64 {
		return time.Now().UnixMilli()
	}); err != nil {
		panic(err) // programmer error: signature mismatch in a built-in registration
	}

	r.RegisterType("strconv.Convert", nil)
	if err := r.RegisterStaticMethod("strconv.Convert", "ToHexString", func(v int32) string {
		return strconv.FormatInt(int64(uint32(v)), 16)
	}); err != nil {
		panic(err)
	}

	r.RegisterType("demo.Console", nil)
	if err := r.RegisterStaticMethod("demo.Console", "Greet", func(name string) string {
		_ = out.Print(name + "? ")
		greeting := "hello, " + name
		_ = out.Println(greeting)
		return greeting
	}); err != nil {
		panic(err)
	}
}
