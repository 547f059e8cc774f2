// Package frame provides the atomic, tagged frame writer shared by the
// dispatcher and the output interceptor. Every frame is assembled in a
// local buffer and emitted with a single underlying Write call, so tag
// byte, length, and payload never interleave with any other frame.
package frame

import (
	"bytes"
	"io"
	"sync"

	"reflectbridge/internal/wire"
)

// Writer serializes frames onto a single underlying byte stream.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// New wraps w as a frame Writer. w is written to directly; callers must not
// write to it through any other path once a Writer owns it, or frames may
// interleave.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Shutdown emits the terminal SHUTDOWN frame: one tag byte, no payload.
func (fw *Writer) Shutdown() error {
	return fw.writeTag(wire.ResultShutdown)
}

// Void emits a VOID_RESULT frame.
func (fw *Writer) Void() error {
	return fw.writeTag(wire.VoidResult)
}

// Int emits an INT_RESULT frame carrying v.
func (fw *Writer) Int(v uint32) error {
	return fw.writeTagged(wire.IntResult, wire.EncodeInt(v))
}

// Error emits an ERROR_RESULT frame carrying the given text.
func (fw *Writer) Error(text string) error {
	return fw.writeTextFrame(wire.ErrorResult, text)
}

// String emits a STRING_RESULT frame carrying the given text.
func (fw *Writer) String(text string) error {
	return fw.writeTextFrame(wire.StringResult, text)
}

// PrintOut emits a PRINT_OUT frame. The payload is written verbatim; any
// trailing newline is part of text as the caller composed it.
func (fw *Writer) PrintOut(text string) error {
	return fw.writeTextFrame(wire.PrintOut, text)
}

func (fw *Writer) writeTag(tag wire.ResultTag) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	_, err := fw.w.Write([]byte{wire.EncodeTag(int(tag))})
	return err
}

func (fw *Writer) writeTagged(tag wire.ResultTag, payload []byte) error {
	var buf bytes.Buffer
	buf.WriteByte(wire.EncodeTag(int(tag)))
	buf.Write(payload)
	fw.mu.Lock()
	defer fw.mu.Unlock()
	_, err := fw.w.Write(buf.Bytes())
	return err
}

func (fw *Writer) writeTextFrame(tag wire.ResultTag, text string) error {
	var buf bytes.Buffer
	buf.WriteByte(wire.EncodeTag(int(tag)))
	if err := wire.WriteText(&buf, text); err != nil {
		return err
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	_, err := fw.w.Write(buf.Bytes())
	return err
}

// Flusher is implemented by underlying writers (e.g. bufio.Writer) that
// buffer independently of frame assembly.
type Flusher interface {
	Flush() error
}

// Flush flushes the underlying stream, if it supports it. The frame Writer
// itself does no buffering beyond per-frame assembly, but the stream it
// wraps (typically a bufio.Writer over os.Stdout) may.
func (fw *Writer) Flush() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if f, ok := fw.w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
