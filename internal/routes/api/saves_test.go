package api_test

import (
	"net/http"
	"os"
	"testing"

	"github.com/lk16/gamesuite/internal"
	"github.com/lk16/gamesuite/internal/models"
	"github.com/lk16/gamesuite/internal/repository"
	"github.com/lk16/gamesuite/internal/services"
	"github.com/lk16/gamesuite/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestSavesDisabled(t *testing.T) {
	id, do := newGame(t, models.NewGameRequest{Kind: models.KindOthello})
	require.NotEmpty(t, id)

	resp := do(http.MethodPost, "/save", models.SaveRequest{Name: "slot"})
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	app := tests.NewApp()

	resp = tests.Request(t, app, http.MethodGet, "/api/saves", nil, tests.TestToken)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = tests.Request(t, app, http.MethodPost, "/api/saves/slot/load", nil, tests.TestToken)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = tests.Request(t, app, http.MethodDelete, "/api/saves/slot", nil, tests.TestToken)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSaveInvalidName(t *testing.T) {
	_, do := newGame(t, models.NewGameRequest{Kind: models.KindOthello})

	resp := do(http.MethodPost, "/save", models.SaveRequest{Name: "no spaces allowed"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListSavesInvalidKind(t *testing.T) {
	resp := tests.Request(t, tests.NewApp(), http.MethodGet, "/api/saves?kind=chess", nil, tests.TestToken)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaveAndLoad(t *testing.T) {
	url := os.Getenv("GAMESUITE_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("GAMESUITE_TEST_POSTGRES_URL is not set")
	}

	postgres, err := services.InitPostgres(url)
	require.NoError(t, err)
	defer postgres.Close()

	svc := &services.Services{Postgres: postgres}
	require.NoError(t, repository.NewSaveRepositoryFromServices(svc).EnsureSchema(t.Context()))

	app := internal.BuildApp(tests.Config(), svc)

	resp := tests.Request(t, app, http.MethodPost, "/api/games", models.NewGameRequest{Kind: models.KindCheckers}, tests.TestToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := tests.Decode[models.GameView](t, resp).ID

	resp = tests.Request(t, app, http.MethodPost, "/api/games/"+id+"/moves", models.MoveRequest{Move: "c3-d4"}, tests.TestToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	name := "api-test-" + id[:8]

	resp = tests.Request(t, app, http.MethodPost, "/api/games/"+id+"/save", models.SaveRequest{Name: name}, tests.TestToken)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = tests.Request(t, app, http.MethodGet, "/api/saves?kind=checkers", nil, tests.TestToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	found := false
	for _, slot := range tests.Decode[[]models.SaveSlot](t, resp) {
		if slot.Name == name {
			found = true
			require.Equal(t, models.KindCheckers, slot.Kind)
		}
	}
	require.True(t, found)

	resp = tests.Request(t, app, http.MethodPost, "/api/saves/"+name+"/load", nil, tests.TestToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	loaded := tests.Decode[models.GameView](t, resp)
	require.NotEqual(t, id, loaded.ID)
	require.Equal(t, 1, loaded.Ply)
	require.Equal(t, "c3-d4", loaded.LastMove)
	require.True(t, loaded.CanUndo)

	resp = tests.Request(t, app, http.MethodDelete, "/api/saves/"+name, nil, tests.TestToken)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = tests.Request(t, app, http.MethodPost, "/api/saves/"+name+"/load", nil, tests.TestToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
