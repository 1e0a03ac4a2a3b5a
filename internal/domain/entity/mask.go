package entity

import "fmt"

// Mask — бинарная разметка 0/1 размером H×W.
type Mask struct {
	Height int
	Width  int
	Data   []uint8
}

// NewMask создаёт маску из нулей.
func NewMask(height, width int) Mask {
	return Mask{Height: height, Width: width, Data: make([]uint8, height*width)}
}

// MaskFromGray бинаризует одноканальное изображение: пиксель попадает в маску,
// если v/255 > threshold.
func MaskFromGray(img Image, threshold float64) (Mask, error) {
	if img.Channels != 1 {
		return Mask{}, fmt.Errorf("mask source must have 1 channel, got %d", img.Channels)
	}
	if err := img.Validate(); err != nil {
		return Mask{}, err
	}
	m := NewMask(img.Height, img.Width)
	for i, v := range img.Pix {
		if float64(v)/255.0 > threshold {
			m.Data[i] = 1
		}
	}
	return m, nil
}

// Flatten возвращает метки построчно.
func (m Mask) Flatten() []uint8 {
	out := make([]uint8, len(m.Data))
	copy(out, m.Data)
	return out
}

// Floats возвращает метки как float64 (для dice).
func (m Mask) Floats() []float64 {
	out := make([]float64, len(m.Data))
	for i, v := range m.Data {
		out[i] = float64(v)
	}
	return out
}

// Scaled переводит маску в изображение 0/255.
func (m Mask) Scaled() Image {
	img := NewImage(m.Height, m.Width, 1)
	for i, v := range m.Data {
		if v != 0 {
			img.Pix[i] = 255
		}
	}
	return img
}

// Count возвращает количество пикселей с меткой 1.
func (m Mask) Count() int {
	n := 0
	for _, v := range m.Data {
		if v != 0 {
			n++
		}
	}
	return n
}

// SameShape сообщает, совпадают ли размеры маски и изображения.
func (m Mask) SameShape(img Image) bool {
	return m.Height == img.Height && m.Width == img.Width
}
