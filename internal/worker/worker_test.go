package worker

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reflectbridge/internal/wire"
)

func TestRunShutsDownOnEmptyInput(t *testing.T) {
	var in, out bytes.Buffer
	require.NoError(t, Run(&in, &out, Config{}, nil))

	tagByte, err := out.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, wire.EncodeTag(int(wire.ResultShutdown)), tagByte)
}

func TestRunHonorsExplicitShutdownCommand(t *testing.T) {
	in := bytes.NewBufferString(string(wire.EncodeTag(int(wire.Shutdown))))
	var out bytes.Buffer
	require.NoError(t, Run(in, &out, Config{Debug: true}, zap.NewNop()))

	tagByte, err := out.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, wire.EncodeTag(int(wire.ResultShutdown)), tagByte)
}

func TestRunDrivesGetClassThroughToAResult(t *testing.T) {
	var req bytes.Buffer
	req.WriteByte(wire.EncodeTag(int(wire.GetClass)))
	require.NoError(t, wire.WriteText(&req, "String"))
	req.WriteByte(wire.EncodeTag(int(wire.Shutdown)))

	var out bytes.Buffer
	require.NoError(t, Run(&req, &out, Config{}, nil))

	tagByte, err := out.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, wire.EncodeTag(int(wire.IntResult)), tagByte)
	_, err = wire.ReadInt(&out)
	require.NoError(t, err)

	tagByte, err = out.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, wire.EncodeTag(int(wire.ResultShutdown)), tagByte)
}
