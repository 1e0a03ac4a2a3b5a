package entity

import "fmt"

// Batch — тензор float32 в раскладке NHWC.
type Batch struct {
	N        int
	Height   int
	Width    int
	Channels int
	Data     []float32
}

// Shape возвращает форму [N, H, W, C].
func (b Batch) Shape() []int64 {
	return []int64{int64(b.N), int64(b.Height), int64(b.Width), int64(b.Channels)}
}

// NewBatchOfOne превращает одно изображение [H, W, C] в батч [1, H, W, C],
// нормализуя значения каналов в диапазон [0, 1].
func NewBatchOfOne(img Image) (Batch, error) {
	if err := img.Validate(); err != nil {
		return Batch{}, err
	}
	data := make([]float32, len(img.Pix))
	for i, v := range img.Pix {
		data[i] = float32(v) / 255.0
	}
	return Batch{
		N:        1,
		Height:   img.Height,
		Width:    img.Width,
		Channels: img.Channels,
		Data:     data,
	}, nil
}

// ProbabilityMap — вероятности по пикселям, форма [H, W].
type ProbabilityMap struct {
	Height int
	Width  int
	Data   []float32
}

// Single снимает ось батча и одиночный канал: [1, H, W, 1] -> [H, W].
func (b Batch) Single() (ProbabilityMap, error) {
	if b.N != 1 || b.Channels != 1 {
		return ProbabilityMap{}, fmt.Errorf("expected batch shape [1 H W 1], got %v", b.Shape())
	}
	if len(b.Data) != b.Height*b.Width {
		return ProbabilityMap{}, fmt.Errorf("batch buffer has %d values, want %d", len(b.Data), b.Height*b.Width)
	}
	data := make([]float32, len(b.Data))
	copy(data, b.Data)
	return ProbabilityMap{Height: b.Height, Width: b.Width, Data: data}, nil
}

// Threshold строит бинарную маску: 1 там, где p >= t.
func (p ProbabilityMap) Threshold(t float32) Mask {
	m := NewMask(p.Height, p.Width)
	for i, v := range p.Data {
		if v >= t {
			m.Data[i] = 1
		}
	}
	return m
}
