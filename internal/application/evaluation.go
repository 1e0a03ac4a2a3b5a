package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/schollz/progressbar/v2"

	"islet-seg/internal/domain/entity"
	"islet-seg/internal/domain/metric"
	"islet-seg/internal/domain/port"
	"islet-seg/internal/infrastructure/vision"
)

// EvaluationConfig задаёт параметры одного прогона оценки.
type EvaluationConfig struct {
	ModelID       string
	Height        int
	Width         int
	Threshold     float32
	Seed          int64
	SaveComposite bool
	Progress      io.Writer // nil — без индикатора
	Summary       io.Writer // nil — без вывода средних метрик
}

type EvaluationService struct {
	cfg     EvaluationConfig
	dataset port.DatasetProvider
	results port.ResultPersister
}

// NewEvaluationService создаёт сервис оценки модели на тестовой выборке.
func NewEvaluationService(cfg EvaluationConfig, dataset port.DatasetProvider, results port.ResultPersister) (*EvaluationService, error) {
	if cfg.ModelID == "" {
		return nil, errors.New("model id is required")
	}
	if cfg.Height <= 0 || cfg.Width <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	return &EvaluationService{cfg: cfg, dataset: dataset, results: results}, nil
}

// Evaluate прогоняет модель по тестовой выборке, сохраняет предсказания
// и пишет отчёт score_<model_id>.csv. Ошибка на любом образце прерывает прогон.
func (s *EvaluationService) Evaluate(ctx context.Context, model port.Model) (*entity.EvaluationReport, error) {
	split, err := s.dataset.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	log.Printf("Evaluating %s on %d test samples", s.cfg.ModelID, len(split.Test))

	var bar *progressbar.ProgressBar
	if s.cfg.Progress != nil {
		bar = progressbar.NewOptions(len(split.Test),
			progressbar.OptionSetWriter(s.cfg.Progress),
			progressbar.OptionSetDescription(s.cfg.ModelID),
		)
	}

	records := make([]entity.ScoreRecord, 0, len(split.Test))
	for _, sample := range split.Test {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := s.evaluateSample(ctx, model, sample)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	mean := metric.Mean(records)
	if s.cfg.Summary != nil {
		fmt.Fprintf(s.cfg.Summary, "\nF1: %0.5f\n", mean.F1)
		fmt.Fprintf(s.cfg.Summary, "Jaccard: %0.5f\n", mean.Jaccard)
		fmt.Fprintf(s.cfg.Summary, "Recall: %0.5f\n", mean.Recall)
		fmt.Fprintf(s.cfg.Summary, "Precision: %0.5f\n", mean.Precision)
	}

	path, err := s.results.WriteScores(s.cfg.ModelID, records, mean)
	if err != nil {
		return nil, err
	}
	log.Printf("Scores written to %s", path)

	return &entity.EvaluationReport{
		ModelID:    s.cfg.ModelID,
		Seed:       s.cfg.Seed,
		Records:    records,
		Mean:       mean,
		ReportPath: path,
	}, nil
}

func (s *EvaluationService) evaluateSample(ctx context.Context, model port.Model, sample entity.Sample) (entity.ScoreRecord, error) {
	name := filepath.Base(sample.ImagePath)

	img, err := vision.ReadImage(sample.ImagePath, vision.ReadColor)
	if err != nil {
		return entity.ScoreRecord{}, fmt.Errorf("sample %s: %w", name, err)
	}
	img, err = vision.ResizeWithAspectRatio(img, s.cfg.Height, s.cfg.Width, vision.DirectionDown)
	if err != nil {
		return entity.ScoreRecord{}, fmt.Errorf("sample %s: resize image: %w", name, err)
	}

	truth, err := vision.ReadImage(sample.MaskPath, vision.ReadGrayscale)
	if err != nil {
		return entity.ScoreRecord{}, fmt.Errorf("sample %s: %w", name, err)
	}
	truth, err = vision.ResizeWithAspectRatio(truth, s.cfg.Height, s.cfg.Width, vision.DirectionDown)
	if err != nil {
		return entity.ScoreRecord{}, fmt.Errorf("sample %s: resize mask: %w", name, err)
	}

	pred, err := Infer(ctx, model, img, s.cfg.Threshold)
	if err != nil {
		return entity.ScoreRecord{}, fmt.Errorf("sample %s: %w", name, err)
	}

	if _, err := s.results.SavePrediction(name, pred); err != nil {
		return entity.ScoreRecord{}, fmt.Errorf("sample %s: %w", name, err)
	}
	if s.cfg.SaveComposite {
		if _, err := s.results.SaveComposite(name, img, truth, pred); err != nil {
			return entity.ScoreRecord{}, fmt.Errorf("sample %s: %w", name, err)
		}
	}

	truthMask, err := entity.MaskFromGray(truth, 0.5)
	if err != nil {
		return entity.ScoreRecord{}, fmt.Errorf("sample %s: %w", name, err)
	}
	if dice, err := metric.DiceCoef(truthMask.Floats(), pred.Floats()); err == nil {
		log.Printf("%s: dice=%.5f", name, dice)
	}

	return metric.Score(name, truthMask.Flatten(), pred.Flatten())
}
