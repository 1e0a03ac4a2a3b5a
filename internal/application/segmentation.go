package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"islet-seg/internal/domain/entity"
	"islet-seg/internal/domain/port"
	"islet-seg/internal/infrastructure/vision"
)

// SegmentationOutput содержит маску одного снимка и пути к визуализациям.
type SegmentationOutput struct {
	Image     entity.Image
	Mask      entity.Mask
	ImagePath string
	MaskPath  string
}

type SegmentationService struct {
	model     port.Model
	results   port.ResultPersister
	measurer  port.ROIMeasurer
	threshold float32
}

// NewSegmentationService создаёт сервис сегментации одиночных снимков.
func NewSegmentationService(model port.Model, results port.ResultPersister, measurer port.ROIMeasurer) *SegmentationService {
	return &SegmentationService{
		model:     model,
		results:   results,
		measurer:  measurer,
		threshold: DefaultThreshold,
	}
}

// WithThreshold задаёт порог бинаризации вероятностей.
func (s *SegmentationService) WithThreshold(t float32) *SegmentationService {
	if t > 0 {
		s.threshold = t
	}
	return s
}

// Segment приводит снимок к размеру модели, сохраняет islet_<name>.png,
// строит маску и сохраняет mask_<name>.png.
func (s *SegmentationService) Segment(ctx context.Context, imagePath string) (*SegmentationOutput, error) {
	if s.model == nil {
		return nil, errors.New("model is not configured")
	}
	name := filepath.Base(imagePath)

	img, err := vision.ReadImage(imagePath, vision.ReadColor)
	if err != nil {
		return nil, err
	}
	h, w, _ := s.model.InputShape()
	img, err = vision.ResizeWithAspectRatio(img, h, w, vision.DirectionDown)
	if err != nil {
		return nil, fmt.Errorf("resize %s: %w", name, err)
	}

	islet, err := s.results.SaveImage(name, img)
	if err != nil {
		return nil, err
	}
	log.Printf("Islet saved: %s", islet)

	mask, err := Infer(ctx, s.model, img, s.threshold)
	if err != nil {
		return nil, fmt.Errorf("segment %s: %w", name, err)
	}

	maskPath, err := s.results.SaveMask(name, mask)
	if err != nil {
		return nil, err
	}
	log.Printf("Segmentation mask saved: %s", maskPath)

	return &SegmentationOutput{
		Image:     img,
		Mask:      mask,
		ImagePath: islet,
		MaskPath:  maskPath,
	}, nil
}

// MeasureROIs передаёт маску измерителю областей.
func (s *SegmentationService) MeasureROIs(ctx context.Context, imagePath string, mask entity.Mask) (*entity.ROIReport, error) {
	if s.measurer == nil {
		return nil, port.ErrMeasurementUnavailable
	}
	return s.measurer.Measure(ctx, imagePath, mask)
}

// HighlightROIs рисует найденные области поверх снимка.
func (s *SegmentationService) HighlightROIs(img entity.Image, report *entity.ROIReport) ([]byte, error) {
	if s.measurer == nil {
		return nil, port.ErrMeasurementUnavailable
	}
	return s.measurer.Highlight(img, report)
}
