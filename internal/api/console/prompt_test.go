package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrompter_Ask(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  unet.onnx \nislet.png"), &out)

	v, err := p.Ask("preset.onnx", "Model: ")
	require.NoError(t, err)
	require.Equal(t, "preset.onnx", v)
	require.Empty(t, out.String())

	v, err = p.Ask("", "Model: ")
	require.NoError(t, err)
	require.Equal(t, "unet.onnx", v)
	require.Equal(t, "Model: ", out.String())

	v, err = p.Ask("", "Image: ")
	require.NoError(t, err)
	require.Equal(t, "islet.png", v)

	_, err = p.Ask("", "Again: ")
	require.Error(t, err)
}
