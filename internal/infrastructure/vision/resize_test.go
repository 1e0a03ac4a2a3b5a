package vision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"islet-seg/internal/domain/entity"
)

func filledImage(h, w, c int, v uint8) entity.Image {
	img := entity.NewImage(h, w, c)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// contentBox возвращает габариты ненулевой области одноканального изображения.
func contentBox(img entity.Image) (width, height int) {
	minX, minY, maxX, maxY := img.Width, img.Height, -1, -1
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if img.At(y, x, 0) == 0 {
				continue
			}
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}
	if maxX < 0 {
		return 0, 0
	}
	return maxX - minX + 1, maxY - minY + 1
}

func TestResize_SameSizeReturnsCopy(t *testing.T) {
	img := filledImage(256, 256, 3, 10)
	img.Set(5, 7, 1, 200)

	out, err := ResizeWithAspectRatio(img, 256, 256, DirectionDown)
	require.NoError(t, err)
	require.Equal(t, img, out)

	out.Pix[0] = 99
	require.Equal(t, uint8(10), img.Pix[0])
}

func TestResize_DownPadsPreservingAspect(t *testing.T) {
	img := filledImage(50, 100, 1, 255)

	out, err := ResizeWithAspectRatio(img, 256, 256, DirectionDown)
	require.NoError(t, err)
	require.Equal(t, 256, out.Height)
	require.Equal(t, 256, out.Width)
	require.Equal(t, 1, out.Channels)

	w, h := contentBox(out)
	require.InDelta(t, 256, w, 1)
	require.InDelta(t, 128, h, 1)
	require.InDelta(t, 2.0, float64(w)/float64(h), 0.02)

	// Поля сверху и снизу одинаковые.
	require.Equal(t, uint8(0), out.At(0, 128, 0))
	require.Equal(t, uint8(0), out.At(255, 128, 0))
	require.NotEqual(t, uint8(0), out.At(128, 128, 0))
}

func TestResize_DownColorTallImage(t *testing.T) {
	img := filledImage(400, 100, 3, 200)

	out, err := ResizeWithAspectRatio(img, 256, 256, DirectionDown)
	require.NoError(t, err)
	require.Equal(t, 3, out.Channels)

	gray := entity.NewImage(out.Height, out.Width, 1)
	for i := 0; i < out.Height*out.Width; i++ {
		gray.Pix[i] = out.Pix[i*3]
	}
	w, h := contentBox(gray)
	require.InDelta(t, 64, w, 1)
	require.InDelta(t, 256, h, 1)
}

func TestResize_UpCropsToTarget(t *testing.T) {
	img := filledImage(50, 100, 1, 255)

	out, err := ResizeWithAspectRatio(img, 256, 256, DirectionUp)
	require.NoError(t, err)
	require.Equal(t, 256, out.Height)
	require.Equal(t, 256, out.Width)

	w, h := contentBox(out)
	require.Equal(t, 256, w)
	require.Equal(t, 256, h)
}

func TestResize_Deterministic(t *testing.T) {
	img := entity.NewImage(37, 91, 3)
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 31 % 251)
	}

	a, err := ResizeWithAspectRatio(img, 64, 64, DirectionDown)
	require.NoError(t, err)
	b, err := ResizeWithAspectRatio(img, 64, 64, DirectionDown)
	require.NoError(t, err)
	require.Equal(t, a.Pix, b.Pix)
}

func TestResize_Errors(t *testing.T) {
	_, err := ResizeWithAspectRatio(entity.Image{}, 256, 256, DirectionDown)
	require.ErrorIs(t, err, ErrEmptyImage)

	_, err = ResizeWithAspectRatio(entity.Image{Height: 0, Width: 10, Channels: 3}, 256, 256, DirectionDown)
	require.ErrorIs(t, err, ErrEmptyImage)

	_, err = ResizeWithAspectRatio(filledImage(4, 4, 1, 1), 8, 8, Direction("sideways"))
	require.Error(t, err)

	_, err = ResizeWithAspectRatio(filledImage(4, 4, 1, 1), 0, 8, DirectionDown)
	require.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("up")
	require.NoError(t, err)
	require.Equal(t, DirectionUp, d)

	_, err = ParseDirection("left")
	require.Error(t, err)
}
