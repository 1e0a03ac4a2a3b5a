package dataset

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"islet-seg/internal/domain/entity"
	"islet-seg/internal/domain/port"
)

// ErrMissingMask возвращается, если для снимка не нашлась маска.
var ErrMissingMask = errors.New("mask not found")

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true, ".bmp": true,
}

// DirectoryDataset читает пары снимок/маска из каталогов Root/images и Root/masks.
// Маска сопоставляется снимку по имени файла без расширения.
type DirectoryDataset struct {
	Root       string
	ImagesDir  string
	MasksDir   string
	ValidRatio float64
	TestRatio  float64
	Seed       int64
}

// NewDirectoryDataset создаёт источник с каталогами по умолчанию.
func NewDirectoryDataset(root string, validRatio, testRatio float64, seed int64) *DirectoryDataset {
	return &DirectoryDataset{
		Root:       root,
		ImagesDir:  "images",
		MasksDir:   "masks",
		ValidRatio: validRatio,
		TestRatio:  testRatio,
		Seed:       seed,
	}
}

// Load перемешивает пары с фиксированным seed и делит их на test, valid и train.
func (d *DirectoryDataset) Load(ctx context.Context) (entity.Split, error) {
	if err := ctx.Err(); err != nil {
		return entity.Split{}, err
	}
	if d.ValidRatio < 0 || d.TestRatio < 0 || d.ValidRatio+d.TestRatio > 1 {
		return entity.Split{}, fmt.Errorf("invalid split ratios valid=%.2f test=%.2f", d.ValidRatio, d.TestRatio)
	}

	images, err := listImages(filepath.Join(d.Root, d.ImagesDir))
	if err != nil {
		return entity.Split{}, err
	}
	masks, err := listImages(filepath.Join(d.Root, d.MasksDir))
	if err != nil {
		return entity.Split{}, err
	}

	byStem := make(map[string]string, len(masks))
	for _, m := range masks {
		byStem[stem(m)] = m
	}

	samples := make([]entity.Sample, 0, len(images))
	for _, img := range images {
		mask, ok := byStem[stem(img)]
		if !ok {
			return entity.Split{}, fmt.Errorf("%w for %s", ErrMissingMask, img)
		}
		samples = append(samples, entity.Sample{ImagePath: img, MaskPath: mask})
	}

	rng := rand.New(rand.NewSource(d.Seed))
	rng.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})

	nTest := int(math.Round(float64(len(samples)) * d.TestRatio))
	nValid := int(math.Round(float64(len(samples)) * d.ValidRatio))
	if nTest+nValid > len(samples) {
		nValid = len(samples) - nTest
	}

	return entity.Split{
		Test:  samples[:nTest],
		Valid: samples[nTest : nTest+nValid],
		Train: samples[nTest+nValid:],
	}, nil
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var _ port.DatasetProvider = (*DirectoryDataset)(nil)
