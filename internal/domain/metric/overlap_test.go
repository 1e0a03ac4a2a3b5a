package metric

import (
	"testing"

	"github.com/stretchr/testify/require"

	"islet-seg/internal/domain/entity"
)

func TestScore_Partial(t *testing.T) {
	truth := []uint8{1, 1, 0, 0, 1}
	pred := []uint8{1, 0, 1, 0, 1}

	s, err := Score("a.png", truth, pred)
	require.NoError(t, err)
	require.Equal(t, "a.png", s.Image)
	// TP=2 FP=1 FN=1
	require.InDelta(t, 2.0/3.0, s.Precision, 1e-12)
	require.InDelta(t, 2.0/3.0, s.Recall, 1e-12)
	require.InDelta(t, 4.0/6.0, s.F1, 1e-12)
	require.InDelta(t, 0.5, s.Jaccard, 1e-12)
}

func TestScore_AllZeroResolvesToZero(t *testing.T) {
	truth := make([]uint8, 256*256)
	pred := make([]uint8, 256*256)

	s, err := Score("black.png", truth, pred)
	require.NoError(t, err)
	require.Equal(t, 0.0, s.F1)
	require.Equal(t, 0.0, s.Jaccard)
	require.Equal(t, 0.0, s.Recall)
	require.Equal(t, 0.0, s.Precision)
}

func TestScore_LengthMismatch(t *testing.T) {
	_, err := Score("x", []uint8{1}, []uint8{1, 0})
	require.Error(t, err)
}

func TestMean(t *testing.T) {
	records := []entity.ScoreRecord{
		{Image: "a", F1: 1, Jaccard: 1, Recall: 1, Precision: 1},
		{Image: "b", F1: 0, Jaccard: 0.5, Recall: 0.25, Precision: 0},
	}

	m := Mean(records)
	require.Equal(t, "mean", m.Image)
	require.InDelta(t, 0.5, m.F1, 1e-12)
	require.InDelta(t, 0.75, m.Jaccard, 1e-12)
	require.InDelta(t, 0.625, m.Recall, 1e-12)
	require.InDelta(t, 0.5, m.Precision, 1e-12)

	require.Equal(t, entity.ScoreRecord{Image: "mean"}, Mean(nil))
}
