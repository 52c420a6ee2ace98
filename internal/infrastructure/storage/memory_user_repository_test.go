package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"acnemap/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreates(t *testing.T) {
	repo := NewMemoryUserRepository()
	user, err := repo.Get(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	// Копия не меняет хранилище без Save
	user.SetState(entity.StateProcessing)
	again, err := repo.Get(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, again.State)
}

func TestMemoryUserRepository_UpdateRollback(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.Update(ctx, 1, 10, func(u *entity.User) error {
		u.SetState(entity.StateProcessing)
		return errors.New("boom")
	})
	require.Error(t, err)

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	user, err = repo.Update(ctx, 1, 10, func(u *entity.User) error {
		u.SetState(entity.StateAwaitingPhoto)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
}
