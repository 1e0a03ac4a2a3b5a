package entity

import "fmt"

// Image хранит пиксели в порядке H×W×C (для цветных изображений — RGB).
type Image struct {
	Height   int
	Width    int
	Channels int
	Pix      []uint8
}

// NewImage создаёт пустое (чёрное) изображение заданного размера.
func NewImage(height, width, channels int) Image {
	return Image{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pix:      make([]uint8, height*width*channels),
	}
}

// Empty сообщает, что в изображении нет пикселей.
func (img Image) Empty() bool {
	return img.Height <= 0 || img.Width <= 0 || img.Channels <= 0 || len(img.Pix) == 0
}

// Validate проверяет, что размер буфера совпадает с заявленной формой.
func (img Image) Validate() error {
	if img.Empty() {
		return fmt.Errorf("image %dx%dx%d is empty", img.Height, img.Width, img.Channels)
	}
	if len(img.Pix) != img.Height*img.Width*img.Channels {
		return fmt.Errorf("image buffer has %d values, want %d", len(img.Pix), img.Height*img.Width*img.Channels)
	}
	return nil
}

// At возвращает значение канала c в точке (y, x).
func (img Image) At(y, x, c int) uint8 {
	return img.Pix[(y*img.Width+x)*img.Channels+c]
}

// Set записывает значение канала c в точке (y, x).
func (img Image) Set(y, x, c int, v uint8) {
	img.Pix[(y*img.Width+x)*img.Channels+c] = v
}

// Clone возвращает независимую копию изображения.
func (img Image) Clone() Image {
	pix := make([]uint8, len(img.Pix))
	copy(pix, img.Pix)
	img.Pix = pix
	return img
}

// Gray3 размножает одноканальное изображение в три канала.
func (img Image) Gray3() Image {
	if img.Channels == 3 {
		return img.Clone()
	}
	out := NewImage(img.Height, img.Width, 3)
	for i := 0; i < img.Height*img.Width; i++ {
		v := img.Pix[i*img.Channels]
		out.Pix[i*3] = v
		out.Pix[i*3+1] = v
		out.Pix[i*3+2] = v
	}
	return out
}
