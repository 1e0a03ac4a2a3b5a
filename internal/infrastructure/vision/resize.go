package vision

import (
	"fmt"
	"math"

	"github.com/nfnt/resize"

	"islet-seg/internal/domain/entity"
)

// Direction выбирает, вписывать изображение в рамку или накрывать её.
type Direction string

const (
	// DirectionDown: масштаб по меньшей стороне, недостающее дополняется нулями.
	DirectionDown Direction = "down"
	// DirectionUp: масштаб по большей стороне, лишнее обрезается по центру.
	DirectionUp Direction = "up"
)

// ParseDirection разбирает "down"/"up".
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionDown, DirectionUp:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown resize direction %q", s)
}

// ResizeWithAspectRatio приводит изображение к размеру height×width без искажений.
func ResizeWithAspectRatio(img entity.Image, height, width int, dir Direction) (entity.Image, error) {
	if img.Empty() {
		return entity.Image{}, ErrEmptyImage
	}
	if err := img.Validate(); err != nil {
		return entity.Image{}, err
	}
	if height <= 0 || width <= 0 {
		return entity.Image{}, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	if img.Height == height && img.Width == width {
		return img.Clone(), nil
	}

	sx := float64(width) / float64(img.Width)
	sy := float64(height) / float64(img.Height)
	var scale float64
	switch dir {
	case DirectionDown:
		scale = math.Min(sx, sy)
	case DirectionUp:
		scale = math.Max(sx, sy)
	default:
		return entity.Image{}, fmt.Errorf("unknown resize direction %q", dir)
	}

	newW := scaledSide(img.Width, scale)
	newH := scaledSide(img.Height, scale)

	scaled := img
	if newW != img.Width || newH != img.Height {
		src, err := ToGoImage(img)
		if err != nil {
			return entity.Image{}, err
		}
		dst := resize.Resize(uint(newW), uint(newH), src, resize.Bilinear)
		scaled, err = FromGoImage(dst, ColorMode(img.Channels))
		if err != nil {
			return entity.Image{}, err
		}
	}

	return placeCentered(scaled, height, width), nil
}

// placeCentered кладёт изображение в центр холста: меньшая сторона
// дополняется нулями, большая обрезается.
func placeCentered(src entity.Image, height, width int) entity.Image {
	out := entity.NewImage(height, width, src.Channels)

	dstX, srcX, w := centerOffsets(src.Width, width)
	dstY, srcY, h := centerOffsets(src.Height, height)

	rowLen := w * src.Channels
	for y := 0; y < h; y++ {
		from := ((srcY+y)*src.Width + srcX) * src.Channels
		to := ((dstY+y)*width + dstX) * src.Channels
		copy(out.Pix[to:to+rowLen], src.Pix[from:from+rowLen])
	}
	return out
}

// centerOffsets возвращает смещение на холсте, смещение в источнике и длину копируемого отрезка.
func centerOffsets(srcLen, dstLen int) (dstOff, srcOff, n int) {
	if srcLen <= dstLen {
		return (dstLen - srcLen) / 2, 0, srcLen
	}
	return 0, (srcLen - dstLen) / 2, dstLen
}

func scaledSide(side int, scale float64) int {
	n := int(math.Round(float64(side) * scale))
	if n < 1 {
		return 1
	}
	return n
}
