package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadImage_ColorAndGray(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(1, 0, color.RGBA{R: 255, G: 10, B: 20, A: 255})
	src.SetRGBA(2, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	path := filepath.Join(t.TempDir(), "islet.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	img, err := ReadImage(path, ReadColor)
	require.NoError(t, err)
	require.Equal(t, 2, img.Height)
	require.Equal(t, 3, img.Width)
	require.Equal(t, 3, img.Channels)
	require.Equal(t, uint8(255), img.At(0, 1, 0))
	require.Equal(t, uint8(10), img.At(0, 1, 1))
	require.Equal(t, uint8(20), img.At(0, 1, 2))

	gray, err := ReadImage(path, ReadGrayscale)
	require.NoError(t, err)
	require.Equal(t, 1, gray.Channels)
	require.Equal(t, uint8(255), gray.At(1, 2, 0))
	require.Equal(t, uint8(0), gray.At(0, 0, 0))
}

func TestReadImage_Missing(t *testing.T) {
	_, err := ReadImage(filepath.Join(t.TempDir(), "nope.png"), ReadColor)
	require.Error(t, err)
}

func TestReadImage_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := ReadImage(path, ReadColor)
	require.Error(t, err)
}

func TestToGoImageRoundTrip(t *testing.T) {
	img := filledImage(2, 2, 3, 0)
	img.Set(1, 0, 2, 77)

	g, err := ToGoImage(img)
	require.NoError(t, err)
	back, err := FromGoImage(g, ReadColor)
	require.NoError(t, err)
	require.Equal(t, img, back)
}
