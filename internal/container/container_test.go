package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"islet-seg/internal/domain/entity"
	"islet-seg/internal/infrastructure/storage"
)

func TestNew_WiresServices(t *testing.T) {
	results, err := storage.NewResultStore(t.TempDir())
	require.NoError(t, err)

	c := New(storage.NewMemoryUserRepository(), nil, results, nil)
	require.NotNil(t, c.UserService)
	require.NotNil(t, c.SegmentationService)

	user, err := c.UserService.BeginSegmentation(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingImage, user.State)
}
