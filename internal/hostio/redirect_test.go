package hostio

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflectbridge/internal/frame"
	"reflectbridge/internal/wire"
)

func TestRedirectForwardsFmtPrintln(t *testing.T) {
	var buf bytes.Buffer
	w := New(frame.New(&buf))

	restore, err := Redirect(w)
	require.NoError(t, err)

	fmt.Println("captured via real stdout")
	restore()

	assert.Equal(t, "captured via real stdout\n", decodeOnePrintOut(t, &buf))
}

func TestRedirectRestoresOriginalStdout(t *testing.T) {
	var buf bytes.Buffer
	w := New(frame.New(&buf))
	original := os.Stdout

	restore, err := Redirect(w)
	require.NoError(t, err)
	assert.NotEqual(t, original, os.Stdout)

	restore()
	assert.Equal(t, original, os.Stdout)
}

func TestRedirectForwardsPartialFinalLine(t *testing.T) {
	var buf bytes.Buffer
	w := New(frame.New(&buf))

	restore, err := Redirect(w)
	require.NoError(t, err)

	fmt.Print("no trailing newline")
	restore()

	tagByte, err := buf.ReadByte()
	require.NoError(t, err)
	require.Equal(t, wire.EncodeTag(int(wire.PrintOut)), tagByte)
	text, err := wire.ReadText(&buf)
	require.NoError(t, err)
	assert.Equal(t, "no trailing newline", text)
}
