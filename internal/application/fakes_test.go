package app

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"islet-seg/internal/domain/entity"
)

// redModel считает вероятностью значение красного канала.
type redModel struct {
	height, width int
	calls         int
}

func (m *redModel) InputShape() (int, int, int) { return m.height, m.width, 3 }

func (m *redModel) Predict(_ context.Context, batch entity.Batch) (entity.Batch, error) {
	m.calls++
	out := entity.Batch{N: 1, Height: batch.Height, Width: batch.Width, Channels: 1,
		Data: make([]float32, batch.Height*batch.Width)}
	for i := range out.Data {
		out.Data[i] = batch.Data[i*3]
	}
	return out, nil
}

func (m *redModel) Close() error { return nil }

type staticDataset struct {
	split entity.Split
}

func (d staticDataset) Load(context.Context) (entity.Split, error) { return d.split, nil }

// writeSample пишет снимок и маску size×size, где квадрат [lo, hi) отмечен.
func writeSample(t *testing.T, dir, name string, size, lo, hi int) entity.Sample {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	mask := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, color.RGBA{G: 40, B: 90, A: 255})
			if x >= lo && x < hi && y >= lo && y < hi {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 40, B: 90, A: 255})
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	s := entity.Sample{
		ImagePath: filepath.Join(dir, "images", name),
		MaskPath:  filepath.Join(dir, "masks", name),
	}
	writePNG(t, s.ImagePath, img)
	writePNG(t, s.MaskPath, mask)
	return s
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}
