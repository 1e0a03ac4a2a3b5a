package metric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiceCoef_Identical(t *testing.T) {
	a := []float64{0, 1, 1, 0, 1}

	coef, err := DiceCoef(a, a)
	require.NoError(t, err)
	require.InDelta(t, 1.0, coef, 1e-9)

	loss, err := DiceLoss(a, a)
	require.NoError(t, err)
	require.InDelta(t, 0.0, loss, 1e-9)
}

func TestDiceCoef_Symmetric(t *testing.T) {
	a := []float64{0, 1, 1, 0, 1, 0.3}
	b := []float64{1, 1, 0, 0, 0.5, 0.7}

	ab, err := DiceCoef(a, b)
	require.NoError(t, err)
	ba, err := DiceCoef(b, a)
	require.NoError(t, err)
	require.Equal(t, ab, ba)
}

func TestDiceCoef_Disjoint(t *testing.T) {
	coef, err := DiceCoef([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	require.Equal(t, 0.0, coef)
}

func TestDiceCoef_LengthMismatch(t *testing.T) {
	_, err := DiceCoef([]float64{1}, []float64{1, 0})
	require.Error(t, err)

	_, err = DiceLoss([]float64{1}, []float64{1, 0})
	require.Error(t, err)
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	require.Equal(t, []string{NameDiceCoef, NameDiceLoss}, r.Names())

	fn, ok := r.Lookup(NameDiceLoss)
	require.True(t, ok)
	loss, err := fn([]float64{1, 1}, []float64{1, 1})
	require.NoError(t, err)
	require.InDelta(t, 0.0, loss, 1e-9)

	require.Equal(t, []string{"iou"}, r.Missing([]string{NameDiceCoef, "iou"}))
	require.Empty(t, r.Missing([]string{NameDiceCoef, NameDiceLoss}))
}

func TestRegistry_Require(t *testing.T) {
	r := DefaultRegistry()
	require.NoError(t, r.Require([]string{NameDiceCoef, NameDiceLoss}))
	require.NoError(t, r.Require(nil))

	err := r.Require([]string{NameDiceCoef, "focal_loss"})
	require.ErrorIs(t, err, ErrUnknownObject)
	require.Contains(t, err.Error(), "focal_loss")

	err = Registry{}.Require([]string{NameDiceCoef})
	require.ErrorIs(t, err, ErrUnknownObject)
}
