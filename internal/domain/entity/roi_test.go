package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestROICenter(t *testing.T) {
	r := ROI{X: 10, Y: 20, Width: 8, Height: 6}
	x, y := r.Center()
	require.Equal(t, 14, x)
	require.Equal(t, 23, y)
}

func TestROIReport_HasROIs(t *testing.T) {
	var empty *ROIReport
	require.False(t, empty.HasROIs())
	require.False(t, (&ROIReport{}).HasROIs())
	require.True(t, (&ROIReport{ROIs: []ROI{{Width: 1, Height: 1}}}).HasROIs())
}
