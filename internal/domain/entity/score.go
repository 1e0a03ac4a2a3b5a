package entity

// ScoreRecord — метрики перекрытия для одного тестового изображения.
type ScoreRecord struct {
	Image     string
	F1        float64
	Jaccard   float64
	Recall    float64
	Precision float64
}

// Values возвращает числовые поля в порядке колонок отчёта.
func (s ScoreRecord) Values() []float64 {
	return []float64{s.F1, s.Jaccard, s.Recall, s.Precision}
}

// EvaluationReport — итог прогона по тестовой выборке.
type EvaluationReport struct {
	ModelID    string
	Seed       int64
	Records    []ScoreRecord
	Mean       ScoreRecord
	ReportPath string
}
