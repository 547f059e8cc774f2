package wire

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeInt(t *testing.T) {
	cases := []uint32{0, 1, 255, 65535, 0xDEADBEEF, 0xFFFFFFFF}
	for _, v := range cases {
		enc := EncodeInt(v)
		require.Len(t, enc, 8)
		got, err := ReadInt(bytes.NewReader(enc))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestEncodeIntZeroPadded(t *testing.T) {
	assert.Equal(t, "00000000", string(EncodeInt(0)))
	assert.Equal(t, "000000ff", string(EncodeInt(255)))
}

func TestReadIntShortRead(t *testing.T) {
	_, err := ReadInt(strings.NewReader("abc"))
	assert.ErrorIs(t, err, ErrShortRead)
}

func TestReadIntMalformed(t *testing.T) {
	_, err := ReadInt(strings.NewReader("!!!!!!!!"))
	assert.Error(t, err)
}

func TestTextBlobRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, "class java.lang.Math"))
	got, err := ReadText(&buf)
	require.NoError(t, err)
	assert.Equal(t, "class java.lang.Math", got)
}

func TestTextBlobEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, ""))
	got, err := ReadText(&buf)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestTextBlob8BitTransparent(t *testing.T) {
	raw := string([]byte{0x00, 0x7F, 0x80, 0xFF, 0x01})
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, raw))
	got, err := ReadText(&buf)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestReadCommandTagEOFIsShutdown(t *testing.T) {
	tag, err := ReadCommandTag(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Shutdown, tag)
}

func TestReadCommandTagOutsideAlphabetIsShutdown(t *testing.T) {
	tag, err := ReadCommandTag(strings.NewReader("!"))
	require.NoError(t, err)
	assert.Equal(t, Shutdown, tag)
}

func TestReadCommandTagOrdinals(t *testing.T) {
	want := []CommandTag{Shutdown, GetClass, FreeObject, GetMethod, ToString, CreateString, InvokeStaticMethod}
	for i, w := range want {
		tag, err := ReadCommandTag(strings.NewReader(string(EncodeTag(i))))
		require.NoError(t, err)
		assert.Equal(t, w, tag)
	}
}

func TestReadIntPropagatesUnderlyingError(t *testing.T) {
	_, err := ReadInt(io.LimitReader(strings.NewReader("0000000"), 7))
	assert.Error(t, err)
}
