//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"runtime"

	"gocv.io/x/gocv"

	"islet-seg/internal/domain/entity"
	"islet-seg/internal/domain/port"
)

type ContourMeasurer struct {
	MinAreaRatio float64
}

// NewContourMeasurer создаёт измеритель связных областей на маске.
func NewContourMeasurer() *ContourMeasurer {
	return &ContourMeasurer{
		MinAreaRatio: 0.0001,
	}
}

// Measure находит внешние контуры маски и измеряет каждый из них.
func (m *ContourMeasurer) Measure(ctx context.Context, imagePath string, mask entity.Mask) (*entity.ROIReport, error) {
	_ = ctx
	if mask.Height <= 0 || mask.Width <= 0 {
		return nil, errors.New("empty mask")
	}

	pix := mask.Scaled().Pix
	mat, err := gocv.NewMatFromBytes(mask.Height, mask.Width, gocv.MatTypeCV8U, pix)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	contours := gocv.FindContours(mat, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	runtime.KeepAlive(pix)

	total := float64(mask.Height * mask.Width)
	minArea := total * m.MinAreaRatio
	rois := make([]entity.ROI, 0, contours.Size())
	var sum float64
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		rect := gocv.BoundingRect(c)
		area := gocv.ContourArea(c)
		if area < minArea || rect.Dx() == 0 || rect.Dy() == 0 {
			continue
		}
		rois = append(rois, entity.ROI{
			X:      rect.Min.X,
			Y:      rect.Min.Y,
			Width:  rect.Dx(),
			Height: rect.Dy(),
			Area:   area,
		})
		sum += area
	}

	return &entity.ROIReport{
		ImagePath:   imagePath,
		ImageWidth:  mask.Width,
		ImageHeight: mask.Height,
		ROIs:        rois,
		TotalArea:   sum,
		Coverage:    sum / total,
	}, nil
}

// Highlight рисует прямоугольники вокруг областей и возвращает JPEG.
func (m *ContourMeasurer) Highlight(img entity.Image, report *entity.ROIReport) ([]byte, error) {
	src, err := ToGoImage(img.Gray3())
	if err != nil {
		return nil, err
	}
	mat, err := gocv.ImageToMatRGB(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	green := color.RGBA{G: 255, A: 255}
	if report != nil {
		for _, roi := range report.ROIs {
			rect := image.Rect(roi.X, roi.Y, roi.X+roi.Width, roi.Y+roi.Height)
			gocv.Rectangle(&mat, rect, green, 1)
		}
	}

	out, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

var _ port.ROIMeasurer = (*ContourMeasurer)(nil)
