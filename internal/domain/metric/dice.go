package metric

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Epsilon защищает знаменатель dice от деления на ноль.
const Epsilon = 1e-15

// DiceCoef считает 2·|A∩B| / (|A| + |B| + ε) по развёрнутым массивам.
func DiceCoef(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("dice: length mismatch %d != %d", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return 0, nil
	}
	intersection := floats.Dot(yTrue, yPred)
	return 2 * intersection / (floats.Sum(yTrue) + floats.Sum(yPred) + Epsilon), nil
}

// DiceLoss возвращает 1 − DiceCoef.
func DiceLoss(yTrue, yPred []float64) (float64, error) {
	coef, err := DiceCoef(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - coef, nil
}
