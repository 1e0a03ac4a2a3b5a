package app

import (
	"context"
	"fmt"

	"islet-seg/internal/domain/entity"
	"islet-seg/internal/domain/port"
)

// DefaultThreshold — порог вероятности для бинарной маски.
const DefaultThreshold = 0.5

// Infer прогоняет одно нормализуемое изображение через модель и возвращает маску 0/1.
// Изображение [H,W,C] превращается в батч [1,H,W,C], выход [1,H,W,1] — в карту [H,W].
func Infer(ctx context.Context, model port.Model, img entity.Image, threshold float32) (entity.Mask, error) {
	h, w, c := model.InputShape()
	if img.Height != h || img.Width != w || img.Channels != c {
		return entity.Mask{}, fmt.Errorf("%w: model expects %dx%dx%d, image is %dx%dx%d",
			port.ErrShapeMismatch, h, w, c, img.Height, img.Width, img.Channels)
	}

	batch, err := entity.NewBatchOfOne(img)
	if err != nil {
		return entity.Mask{}, err
	}

	out, err := model.Predict(ctx, batch)
	if err != nil {
		return entity.Mask{}, fmt.Errorf("predict: %w", err)
	}
	if out.Height != h || out.Width != w {
		return entity.Mask{}, fmt.Errorf("%w: model returned %v for input %v", port.ErrShapeMismatch, out.Shape(), batch.Shape())
	}

	probs, err := out.Single()
	if err != nil {
		return entity.Mask{}, fmt.Errorf("%w: %v", port.ErrShapeMismatch, err)
	}
	return probs.Threshold(threshold), nil
}
