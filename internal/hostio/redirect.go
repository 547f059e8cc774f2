package hostio

import (
	"bufio"
	"io"
	"os"
)

// Redirect best-effort-forwards the real process os.Stdout to w, for
// output produced by code that calls fmt.Println directly rather than
// going through Writer (e.g. third-party libraries linked into a
// registered static method). It returns a restore function that must be
// called to stop forwarding and put the original os.Stdout back.
//
// This path is not on the synchronous command-dispatch path: a background
// goroutine drains the pipe as bytes arrive, so it cannot make the same
// same-command ordering guarantee that Writer's direct calls make (spec.md
// §5). It exists purely so output from uninstrumented code is not lost.
func Redirect(w *Writer) (restore func(), err error) {
	r, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	original := os.Stdout
	os.Stdout = pw

	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewReader(r)
		for {
			line, err := scanner.ReadString('\n')
			if len(line) > 0 {
				_ = w.emit(line)
			}
			if err != nil {
				if err != io.EOF {
					_ = w.emit(line)
				}
				return
			}
		}
	}()

	return func() {
		os.Stdout = original
		_ = pw.Close()
		<-done
		_ = r.Close()
	}, nil
}
