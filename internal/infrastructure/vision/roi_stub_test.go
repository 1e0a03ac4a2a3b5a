//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"islet-seg/internal/domain/entity"
	"islet-seg/internal/domain/port"
)

func TestContourMeasurerStub(t *testing.T) {
	m := NewContourMeasurer()

	_, err := m.Measure(context.Background(), "x.png", entity.NewMask(2, 2))
	require.ErrorIs(t, err, port.ErrMeasurementUnavailable)

	_, err = m.Highlight(entity.NewImage(2, 2, 3), nil)
	require.ErrorIs(t, err, ErrGoCVDisabled)
}
