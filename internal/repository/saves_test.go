package repository

import (
	"context"
	"os"
	"testing"

	"github.com/lk16/gamesuite/internal/models"
	"github.com/lk16/gamesuite/internal/services"
	"github.com/stretchr/testify/require"
)

func TestSaveRepositoryDisabled(t *testing.T) {
	repo := NewSaveRepositoryFromServices(&services.Services{})
	ctx := context.Background()

	require.False(t, repo.Enabled())
	require.ErrorIs(t, repo.EnsureSchema(ctx), ErrSavesDisabled)
	require.ErrorIs(t, repo.Save(ctx, "slot", testRecord()), ErrSavesDisabled)
	require.ErrorIs(t, repo.Delete(ctx, "slot"), ErrSavesDisabled)

	_, err := repo.Load(ctx, "slot")
	require.ErrorIs(t, err, ErrSavesDisabled)

	_, err = repo.List(ctx)
	require.ErrorIs(t, err, ErrSavesDisabled)
}

func TestSaveRepository(t *testing.T) {
	url := os.Getenv("GAMESUITE_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("GAMESUITE_TEST_POSTGRES_URL is not set")
	}

	db, err := services.InitPostgres(url)
	require.NoError(t, err)
	defer db.Close()

	repo := NewSaveRepositoryFromServices(&services.Services{Postgres: db})
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))

	name := "repository-test"
	_ = repo.Delete(ctx, name)

	_, err = repo.Load(ctx, name)
	require.ErrorIs(t, err, ErrSaveNotFound)

	require.Error(t, repo.Save(ctx, "bad name", testRecord()))

	record := testRecord()
	require.NoError(t, repo.Save(ctx, name, record))

	record.Current.Ply = 2
	require.NoError(t, repo.Save(ctx, name, record))

	loaded, err := repo.Load(ctx, name)
	require.NoError(t, err)
	require.Equal(t, record, loaded)

	slots, err := repo.List(ctx, models.KindOthello)
	require.NoError(t, err)
	require.Contains(t, names(slots), name)

	slots, err = repo.List(ctx, models.KindCheckers)
	require.NoError(t, err)
	require.NotContains(t, names(slots), name)

	require.NoError(t, repo.Delete(ctx, name))
	require.ErrorIs(t, repo.Delete(ctx, name), ErrSaveNotFound)
}

func names(slots []models.SaveSlot) []string {
	result := make([]string, len(slots))
	for i, slot := range slots {
		result[i] = slot.Name
	}
	return result
}
