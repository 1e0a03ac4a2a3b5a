package port

import (
	"context"
	"errors"

	"islet-seg/internal/domain/entity"
)

// ErrMeasurementUnavailable возвращается, когда измеритель собран без поддержки.
var ErrMeasurementUnavailable = errors.New("roi measurement is unavailable")

// ROIMeasurer интерфейс измерителя областей интереса
type ROIMeasurer interface {
	// Measure находит и измеряет связные области на маске
	Measure(ctx context.Context, imagePath string, mask entity.Mask) (*entity.ROIReport, error)

	// Highlight рисует найденные области поверх изображения и кодирует результат
	Highlight(img entity.Image, report *entity.ROIReport) ([]byte, error)
}
