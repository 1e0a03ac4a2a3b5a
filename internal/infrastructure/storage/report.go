package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"islet-seg/internal/domain/entity"
)

// ScoreHeader — колонки отчёта с метриками.
var ScoreHeader = []string{"Image", "F1", "Jaccard", "Recall", "Precision"}

// ScoreReportPath возвращает путь score_<model_id>.csv.
func (s *ResultStore) ScoreReportPath(modelID string) string {
	return filepath.Join(s.dir, "score_"+modelID+".csv")
}

// WriteScores пишет строку на каждое изображение в порядке выборки и итоговую строку mean.
func (s *ResultStore) WriteScores(modelID string, records []entity.ScoreRecord, mean entity.ScoreRecord) (string, error) {
	path := s.ScoreReportPath(modelID)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create score report: %w", err)
	}

	w := csv.NewWriter(f)
	rows := make([][]string, 0, len(records)+2)
	rows = append(rows, ScoreHeader)
	for _, r := range records {
		rows = append(rows, scoreRow(r))
	}
	rows = append(rows, scoreRow(mean))

	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return "", fmt.Errorf("write score report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close score report: %w", err)
	}
	return path, nil
}

func scoreRow(r entity.ScoreRecord) []string {
	row := []string{r.Image}
	for _, v := range r.Values() {
		row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return row
}
