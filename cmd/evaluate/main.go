// Command evaluate scores a trained model on the test split and writes score_<model>.csv.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"islet-seg/config"
	"islet-seg/internal/api/console"
	app "islet-seg/internal/application"
	"islet-seg/internal/domain/metric"
	"islet-seg/internal/infrastructure/dataset"
	"islet-seg/internal/infrastructure/onnx"
	"islet-seg/internal/infrastructure/storage"
)

func main() {
	modelName := flag.String("model", "", "Model filename inside the models directory")
	composite := flag.Bool("composite", false, "Also save image | mask | prediction composites")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *modelName == "" {
		*modelName = cfg.ModelName
	}
	*modelName, err = console.NewPrompter(os.Stdin, os.Stdout).Ask(*modelName, "Enter filename of the Model to test: ")
	if err != nil {
		log.Fatalf("Failed to read model name: %v", err)
	}

	results, err := storage.NewResultStore(cfg.ResultsDir)
	if err != nil {
		log.Fatalf("Failed to create results store: %v", err)
	}

	ctx := context.Background()

	model, err := onnx.NewLoader(cfg.ModelsDir, cfg.OnnxRuntimeLib).Load(ctx, *modelName, metric.DefaultRegistry())
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	defer model.Close()

	svc, err := app.NewEvaluationService(app.EvaluationConfig{
		ModelID:       strings.SplitN(*modelName, ".", 2)[0],
		Height:        cfg.ImageHeight,
		Width:         cfg.ImageWidth,
		Threshold:     float32(cfg.MaskThreshold),
		Seed:          cfg.Seed,
		SaveComposite: cfg.SaveComposite || *composite,
		Progress:      os.Stderr,
		Summary:       os.Stdout,
	},
		dataset.NewDirectoryDataset(cfg.DatasetDir, cfg.ValidSplit, cfg.TestSplit, cfg.Seed),
		results,
	)
	if err != nil {
		log.Fatalf("Failed to create evaluation: %v", err)
	}

	report, err := svc.Evaluate(ctx, model)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}
	log.Printf("Evaluated %d samples, report: %s", len(report.Records), report.ReportPath)
}
