package metric

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"islet-seg/internal/domain/entity"
)

// Confusion — матрица ошибок бинарной классификации, класс 1 положительный.
type Confusion struct {
	TP, FP, FN, TN int
}

// NewConfusion сравнивает эталонные и предсказанные метки.
func NewConfusion(truth, pred []uint8) (Confusion, error) {
	if len(truth) != len(pred) {
		return Confusion{}, fmt.Errorf("label vectors differ in length: %d != %d", len(truth), len(pred))
	}
	var c Confusion
	for i := range truth {
		t, p := truth[i] != 0, pred[i] != 0
		switch {
		case t && p:
			c.TP++
		case !t && p:
			c.FP++
		case t && !p:
			c.FN++
		default:
			c.TN++
		}
	}
	return c, nil
}

// Precision = TP / (TP + FP), 0 при пустом знаменателе.
func (c Confusion) Precision() float64 {
	return safeDiv(c.TP, c.TP+c.FP)
}

// Recall = TP / (TP + FN), 0 при пустом знаменателе.
func (c Confusion) Recall() float64 {
	return safeDiv(c.TP, c.TP+c.FN)
}

// F1 = 2TP / (2TP + FP + FN), 0 при пустом знаменателе.
func (c Confusion) F1() float64 {
	return safeDiv(2*c.TP, 2*c.TP+c.FP+c.FN)
}

// Jaccard = TP / (TP + FP + FN), 0 при пустом знаменателе.
func (c Confusion) Jaccard() float64 {
	return safeDiv(c.TP, c.TP+c.FP+c.FN)
}

// Score считает четыре метрики перекрытия для одного изображения.
func Score(name string, truth, pred []uint8) (entity.ScoreRecord, error) {
	c, err := NewConfusion(truth, pred)
	if err != nil {
		return entity.ScoreRecord{}, fmt.Errorf("score %s: %w", name, err)
	}
	return entity.ScoreRecord{
		Image:     name,
		F1:        c.F1(),
		Jaccard:   c.Jaccard(),
		Recall:    c.Recall(),
		Precision: c.Precision(),
	}, nil
}

// Mean усредняет метрики по всем записям.
func Mean(records []entity.ScoreRecord) entity.ScoreRecord {
	mean := entity.ScoreRecord{Image: "mean"}
	if len(records) == 0 {
		return mean
	}
	f1 := make([]float64, len(records))
	jac := make([]float64, len(records))
	rec := make([]float64, len(records))
	prec := make([]float64, len(records))
	for i, r := range records {
		f1[i], jac[i], rec[i], prec[i] = r.F1, r.Jaccard, r.Recall, r.Precision
	}
	mean.F1 = stat.Mean(f1, nil)
	mean.Jaccard = stat.Mean(jac, nil)
	mean.Recall = stat.Mean(rec, nil)
	mean.Precision = stat.Mean(prec, nil)
	return mean
}

func safeDiv(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
