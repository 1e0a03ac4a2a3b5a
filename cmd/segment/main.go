// Command segment builds a mask for one image and measures its regions of interest.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"islet-seg/config"
	"islet-seg/internal/api/console"
	app "islet-seg/internal/application"
	"islet-seg/internal/domain/metric"
	"islet-seg/internal/domain/port"
	"islet-seg/internal/infrastructure/onnx"
	"islet-seg/internal/infrastructure/storage"
	"islet-seg/internal/infrastructure/vision"
)

func main() {
	imagePath := flag.String("image", "", "Path to islet image")
	modelName := flag.String("model", "", "Model filename inside the models directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	prompt := console.NewPrompter(os.Stdin, os.Stdout)
	if *imagePath, err = prompt.Ask(*imagePath, "Enter path to Islet Image: "); err != nil {
		log.Fatalf("Failed to read image path: %v", err)
	}
	if *modelName == "" {
		*modelName = cfg.ModelName
	}
	if *modelName, err = prompt.Ask(*modelName, "Enter filename of the Model to use: "); err != nil {
		log.Fatalf("Failed to read model name: %v", err)
	}

	ctx := context.Background()

	model, err := onnx.NewLoader(cfg.ModelsDir, cfg.OnnxRuntimeLib).Load(ctx, *modelName, metric.DefaultRegistry())
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	defer model.Close()

	results, err := storage.NewResultStore(cfg.ResultsDir)
	if err != nil {
		log.Fatalf("Failed to create results store: %v", err)
	}

	svc := app.NewSegmentationService(model, results, vision.NewContourMeasurer()).
		WithThreshold(float32(cfg.MaskThreshold))

	out, err := svc.Segment(ctx, *imagePath)
	if err != nil {
		log.Fatalf("Segmentation failed: %v", err)
	}

	report, err := svc.MeasureROIs(ctx, *imagePath, out.Mask)
	if errors.Is(err, port.ErrMeasurementUnavailable) {
		log.Printf("ROI measurement skipped: %v", err)
		return
	}
	if err != nil {
		log.Fatalf("ROI measurement failed: %v", err)
	}

	fmt.Printf("ROIs: %d\n", len(report.ROIs))
	fmt.Printf("%-6s %6s %6s %6s %6s %10s\n", "ID", "X", "Y", "W", "H", "Area")
	for i, roi := range report.ROIs {
		fmt.Printf("%-6d %6d %6d %6d %6d %10.1f\n", i+1, roi.X, roi.Y, roi.Width, roi.Height, roi.Area)
	}
	fmt.Printf("Total area: %.1f px, coverage: %.2f%%\n", report.TotalArea, report.Coverage*100)
}
