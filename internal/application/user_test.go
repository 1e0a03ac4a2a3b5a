package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"islet-seg/internal/domain/entity"
	"islet-seg/internal/infrastructure/storage"
)

func TestUserService_BeginSegmentationAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.BeginSegmentation(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingImage, user.State)

	user, err = svc.StartProcessing(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)

	user, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateAwaitingImage)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingImage, user.State)

	got, err := svc.Get(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingImage, got.State)
}
