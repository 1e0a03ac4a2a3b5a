package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"islet-seg/internal/domain/entity"
)

// ColorMode задаёт, сколько каналов получает прочитанное изображение.
type ColorMode int

const (
	ReadColor     ColorMode = 3 // RGB
	ReadGrayscale ColorMode = 1
)

// ErrEmptyImage возвращается для изображений без пикселей.
var ErrEmptyImage = errors.New("empty image")

// ReadImage читает файл с диска (JPEG, PNG, TIFF, BMP).
func ReadImage(path string, mode ColorMode) (entity.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Image{}, fmt.Errorf("read image %s: %w", path, err)
	}
	img, err := DecodeImage(data, mode)
	if err != nil {
		return entity.Image{}, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage превращает байты изображения в entity.Image.
func DecodeImage(data []byte, mode ColorMode) (entity.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return entity.Image{}, err
	}
	return FromGoImage(src, mode)
}

// FromGoImage копирует пиксели image.Image в раскладку H×W×C.
func FromGoImage(src image.Image, mode ColorMode) (entity.Image, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return entity.Image{}, ErrEmptyImage
	}
	channels := int(mode)
	out := entity.NewImage(b.Dy(), b.Dx(), channels)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := src.At(b.Min.X+x, b.Min.Y+y)
			if channels == 1 {
				out.Set(y, x, 0, color.GrayModel.Convert(c).(color.Gray).Y)
				continue
			}
			r, g, bl, _ := c.RGBA()
			out.Set(y, x, 0, uint8(r>>8))
			out.Set(y, x, 1, uint8(g>>8))
			out.Set(y, x, 2, uint8(bl>>8))
		}
	}
	return out, nil
}

// ToGoImage строит image.Gray или image.RGBA из entity.Image.
func ToGoImage(img entity.Image) (image.Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, img.Width, img.Height)
	switch img.Channels {
	case 1:
		out := image.NewGray(rect)
		for y := 0; y < img.Height; y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+img.Width], img.Pix[y*img.Width:(y+1)*img.Width])
		}
		return out, nil
	case 3:
		out := image.NewRGBA(rect)
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				out.SetRGBA(x, y, color.RGBA{
					R: img.At(y, x, 0),
					G: img.At(y, x, 1),
					B: img.At(y, x, 2),
					A: 255,
				})
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported channel count %d", img.Channels)
	}
}
