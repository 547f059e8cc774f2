// Package hostio implements the worker's output interceptor: the Go
// adaptation of the original System.out replacement described in
// spec.md §4.3.
//
// Go has no global, monkey-patchable standard-output primitive the way Java
// exposes System.setOut: fmt.Println always targets the package-level
// os.Stdout *os.File, and swapping that for anything other than another
// *os.File requires OS-pipe plumbing whose background drain goroutine would
// race against the dispatcher's per-command frame-ordering guarantee (every
// PRINT_OUT frame for a command must be written before that command's
// terminal result frame — spec.md §5). So Writer is installed as the sole
// output primitive available to code invoked through the object table:
// registered static methods are expected to print through it instead of
// calling fmt.Println against the real process stdout. Each method call
// below mirrors one overload of the original OutputManager and produces
// exactly one PRINT_OUT frame, assembled in a single buffer by frame.Writer
// and flushed immediately whenever the write does not end in a newline.
package hostio

import (
	"fmt"
	"strconv"
	"strings"

	"reflectbridge/internal/frame"
)

// Writer is the bridge's output interceptor sink.
type Writer struct {
	frames *frame.Writer
}

// New returns a Writer that frames every write through fw.
func New(fw *frame.Writer) *Writer {
	return &Writer{frames: fw}
}

// Write implements io.Writer so Writer can also be handed to fmt.Fprint-style
// callers directly; each call is framed as one PRINT_OUT record with no
// newline coercion (the caller's bytes are carried verbatim).
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.emit(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *Writer) emit(text string) error {
	if err := w.frames.PrintOut(text); err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		return w.frames.Flush()
	}
	return nil
}

// Print writes s with no trailing newline, flushing immediately since the
// write is partial-line (e.g. a progress prompt).
func (w *Writer) Print(s string) error { return w.emit(s) }

// Println writes s followed by a newline.
func (w *Writer) Println(s string) error { return w.emit(s + "\n") }

// PrintBool is the bool overload, canonicalized via strconv.FormatBool.
func (w *Writer) PrintBool(b bool) error { return w.emit(strconv.FormatBool(b)) }

// PrintlnBool is the newline-terminated bool overload.
func (w *Writer) PrintlnBool(b bool) error { return w.emit(strconv.FormatBool(b) + "\n") }

// PrintRune is the char overload.
func (w *Writer) PrintRune(r rune) error { return w.emit(string(r)) }

// PrintlnRune is the newline-terminated char overload.
func (w *Writer) PrintlnRune(r rune) error { return w.emit(string(r) + "\n") }

// PrintInt is the int/short/byte overload.
func (w *Writer) PrintInt(v int64) error { return w.emit(strconv.FormatInt(v, 10)) }

// PrintlnInt is the newline-terminated int overload.
func (w *Writer) PrintlnInt(v int64) error { return w.emit(strconv.FormatInt(v, 10) + "\n") }

// PrintFloat is the float32 overload.
func (w *Writer) PrintFloat(v float32) error {
	return w.emit(strconv.FormatFloat(float64(v), 'g', -1, 32))
}

// PrintlnFloat is the newline-terminated float32 overload.
func (w *Writer) PrintlnFloat(v float32) error {
	return w.emit(strconv.FormatFloat(float64(v), 'g', -1, 32) + "\n")
}

// PrintDouble is the float64 overload.
func (w *Writer) PrintDouble(v float64) error {
	return w.emit(strconv.FormatFloat(v, 'g', -1, 64))
}

// PrintlnDouble is the newline-terminated float64 overload.
func (w *Writer) PrintlnDouble(v float64) error {
	return w.emit(strconv.FormatFloat(v, 'g', -1, 64) + "\n")
}

// PrintAny is the catch-all overload for any value, canonicalized with
// fmt-style %v formatting (via Sprint) exactly as the original stringified
// arbitrary objects via String.valueOf/toString.
func (w *Writer) PrintAny(v any) error { return w.emit(toText(v)) }

// PrintlnAny is the newline-terminated catch-all overload.
func (w *Writer) PrintlnAny(v any) error { return w.emit(toText(v) + "\n") }

// Newline is the no-argument println() overload: a bare newline.
func (w *Writer) Newline() error { return w.emit("\n") }

func toText(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}
