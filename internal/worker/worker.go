// Package worker wires the bridge's components into a runnable loop over a
// pair of byte streams, and owns the ambient configuration/logging that
// spec.md §6 carves out as external to the protocol itself.
package worker

import (
	"bufio"
	"io"

	"go.uber.org/zap"

	"reflectbridge/internal/dispatch"
	"reflectbridge/internal/frame"
	"reflectbridge/internal/hostio"
	"reflectbridge/internal/objtable"
	"reflectbridge/internal/reflecthost"
)

// Config is the worker's sole externally-recognized option: spec.md §6's
// one-key configuration surface.
type Config struct {
	// Debug, when true, echoes each incoming command's name to the logger
	// before execution.
	Debug bool
}

// Run drives the request-processing loop over in/out until SHUTDOWN or EOF,
// best-effort-forwarding the real process stdout to the same PRINT_OUT
// channel while it runs. It returns only on a fatal stdout I/O error or
// after a graceful SHUTDOWN frame has been written.
func Run(in io.Reader, out io.Writer, cfg Config, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if !cfg.Debug {
		log = zap.NewNop()
	}

	bufOut := bufio.NewWriter(out)
	fw := frame.New(bufOut)
	defer fw.Flush()

	sink := hostio.New(fw)
	restore, err := hostio.Redirect(sink)
	if err == nil {
		defer restore()
	} else {
		log.Warn("stdout redirect unavailable; uninstrumented print calls will not be captured", zap.Error(err))
	}

	table := objtable.New()
	registry := reflecthost.NewRegistry()
	reflecthost.RegisterDefaults(registry, sink)

	d := dispatch.New(in, fw, table, registry, log)
	return d.Run()
}
