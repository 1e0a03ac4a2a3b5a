//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"fmt"

	"islet-seg/internal/domain/entity"
	"islet-seg/internal/domain/port"
)

// ErrGoCVDisabled возвращается, если сборка без тега gocv.
var ErrGoCVDisabled = fmt.Errorf("gocv build tag is not enabled: %w", port.ErrMeasurementUnavailable)

type ContourMeasurer struct {
	MinAreaRatio float64
}

// NewContourMeasurer создаёт измеритель-заглушку (без OpenCV).
func NewContourMeasurer() *ContourMeasurer {
	return &ContourMeasurer{
		MinAreaRatio: 0.0001,
	}
}

// Measure возвращает ошибку, если сборка без тега gocv.
func (m *ContourMeasurer) Measure(ctx context.Context, imagePath string, mask entity.Mask) (*entity.ROIReport, error) {
	_ = ctx
	_ = imagePath
	_ = mask
	return nil, ErrGoCVDisabled
}

// Highlight возвращает ошибку, если сборка без тега gocv.
func (m *ContourMeasurer) Highlight(img entity.Image, report *entity.ROIReport) ([]byte, error) {
	_ = img
	_ = report
	return nil, ErrGoCVDisabled
}

var _ port.ROIMeasurer = (*ContourMeasurer)(nil)
