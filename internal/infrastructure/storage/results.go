package storage

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"

	"islet-seg/internal/domain/entity"
	"islet-seg/internal/domain/port"
	"islet-seg/internal/infrastructure/vision"
)

// SaveForm выбирает, что сохраняется для тестового изображения.
type SaveForm string

const (
	SaveFormComposite  SaveForm = "cat"  // склейка снимок | эталон | предсказание (JPEG)
	SaveFormPrediction SaveForm = "pred" // только предсказанная маска (TIFF)
)

// SeparatorWidth — ширина белой полосы между частями склейки.
const SeparatorWidth = 10

// ResultStore пишет результаты в каталог результатов.
// Существующие файлы перезаписываются.
type ResultStore struct {
	dir string
}

// NewResultStore создаёт каталог результатов, если его нет.
func NewResultStore(dir string) (*ResultStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	return &ResultStore{dir: dir}, nil
}

// Dir возвращает каталог результатов.
func (s *ResultStore) Dir() string {
	return s.dir
}

// SaveResult сохраняет результат в выбранной форме.
func (s *ResultStore) SaveResult(form SaveForm, name string, img, truth entity.Image, pred entity.Mask) (string, error) {
	switch form {
	case SaveFormComposite:
		return s.SaveComposite(name, img, truth, pred)
	case SaveFormPrediction:
		return s.SavePrediction(name, pred)
	default:
		return "", fmt.Errorf("unknown save form %q", form)
	}
}

// SavePrediction пишет маску 0/255 в TIFF под именем исходного файла.
func (s *ResultStore) SavePrediction(name string, pred entity.Mask) (string, error) {
	path := filepath.Join(s.dir, name)
	err := s.encode(path, pred.Scaled(), func(f *os.File, img image.Image) error {
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	})
	return path, err
}

// SaveComposite склеивает [снимок | полоса | эталон | полоса | предсказание] и пишет JPEG.
func (s *ResultStore) SaveComposite(name string, img, truth entity.Image, pred entity.Mask) (string, error) {
	composite, err := Composite(img, truth, pred)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name+".jpg")
	err = s.encode(path, composite, func(f *os.File, img image.Image) error {
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	})
	return path, err
}

// SaveImage пишет снимок в islet_<name>.png.
func (s *ResultStore) SaveImage(name string, img entity.Image) (string, error) {
	path := filepath.Join(s.dir, "islet_"+name+".png")
	return path, s.encode(path, img, encodePNG)
}

// SaveMask пишет маску в mask_<name>.png.
func (s *ResultStore) SaveMask(name string, mask entity.Mask) (string, error) {
	path := filepath.Join(s.dir, "mask_"+name+".png")
	return path, s.encode(path, mask.Scaled(), encodePNG)
}

func (s *ResultStore) encode(path string, img entity.Image, enc func(*os.File, image.Image) error) error {
	src, err := vision.ToGoImage(img)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := enc(f, src); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func encodePNG(f *os.File, img image.Image) error {
	return png.Encode(f, img)
}

// Composite строит склейку шириной 3W+20 и высотой H.
func Composite(img, truth entity.Image, pred entity.Mask) (entity.Image, error) {
	if err := img.Validate(); err != nil {
		return entity.Image{}, err
	}
	if err := truth.Validate(); err != nil {
		return entity.Image{}, err
	}
	if truth.Height != img.Height || pred.Height != img.Height {
		return entity.Image{}, fmt.Errorf("composite parts differ in height: %d, %d, %d", img.Height, truth.Height, pred.Height)
	}

	parts := []entity.Image{img.Gray3(), truth.Gray3(), pred.Scaled().Gray3()}
	width := parts[0].Width + parts[1].Width + parts[2].Width + 2*SeparatorWidth
	out := entity.NewImage(img.Height, width, 3)

	x := 0
	for i, part := range parts {
		for y := 0; y < part.Height; y++ {
			from := y * part.Width * 3
			to := (y*width + x) * 3
			copy(out.Pix[to:to+part.Width*3], part.Pix[from:from+part.Width*3])
		}
		x += part.Width
		if i < len(parts)-1 {
			for y := 0; y < out.Height; y++ {
				start := (y*width + x) * 3
				for j := start; j < start+SeparatorWidth*3; j++ {
					out.Pix[j] = 255
				}
			}
			x += SeparatorWidth
		}
	}
	return out, nil
}

var _ port.ResultPersister = (*ResultStore)(nil)
