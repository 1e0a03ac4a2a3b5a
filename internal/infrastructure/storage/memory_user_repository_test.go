package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"islet-seg/internal/domain/entity"
)

func TestMemoryUserRepository(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	require.NoError(t, repo.UpdateState(ctx, 1, entity.StateAwaitingImage))
	user, err = repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingImage, user.State)
}

func TestMemoryUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 5, 50)
	require.NoError(t, err)
	user.SetState(entity.StateProcessing)

	again, err := repo.Get(ctx, 5, 50)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, again.State)

	require.NoError(t, repo.Save(ctx, user))
	again, err = repo.Get(ctx, 5, 50)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, again.State)
}
