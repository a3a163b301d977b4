package api_test

import (
	"net/http"
	"testing"

	"github.com/lk16/gamesuite/internal/models"
	"github.com/lk16/gamesuite/internal/tests"
	"github.com/stretchr/testify/require"
)

type errorResponse struct {
	Error string `json:"error"`
}

func TestCreateGame(t *testing.T) {
	cases := []struct {
		name           string
		payload        any
		token          string
		wantStatusCode int
		wantMoves      int
	}{
		{
			name:           "no auth",
			payload:        models.NewGameRequest{Kind: models.KindCheckers},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "invalid payload",
			payload:        "not a game",
			token:          tests.TestToken,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unknown kind",
			payload:        models.NewGameRequest{Kind: "chess"},
			token:          tests.TestToken,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "depth too high",
			payload:        models.NewGameRequest{Kind: models.KindOthello, AISide: "white", AIDepth: 99},
			token:          tests.TestToken,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "checkers",
			payload:        models.NewGameRequest{Kind: models.KindCheckers},
			token:          tests.TestToken,
			wantStatusCode: http.StatusCreated,
			wantMoves:      7,
		},
		{
			name:           "othello",
			payload:        models.NewGameRequest{Kind: models.KindOthello},
			token:          tests.TestToken,
			wantStatusCode: http.StatusCreated,
			wantMoves:      4,
		},
	}

	app := tests.NewApp()

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			resp := tests.Request(t, app, http.MethodPost, "/api/games", tt.payload, tt.token)
			require.Equal(t, tt.wantStatusCode, resp.StatusCode)

			if tt.wantStatusCode != http.StatusCreated {
				return
			}

			view := tests.Decode[models.GameView](t, resp)
			require.NotEmpty(t, view.ID)
			require.Equal(t, "black", view.Turn)
			require.Equal(t, "none", view.Status)
			require.Len(t, view.Moves, tt.wantMoves)
			require.Len(t, view.ASCIIArt, 10)
		})
	}
}

func TestCreateGameAIMovesFirst(t *testing.T) {
	app := tests.NewApp()

	payload := models.NewGameRequest{Kind: models.KindOthello, AISide: "black", AIDepth: 1, AutoReply: true}
	resp := tests.Request(t, app, http.MethodPost, "/api/games", payload, tests.TestToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	view := tests.Decode[models.GameView](t, resp)
	require.Equal(t, 1, view.Ply)
	require.Equal(t, "white", view.Turn)
	require.NotEmpty(t, view.LastMove)
}

func newGame(t *testing.T, payload models.NewGameRequest) (string, func(method, path string, payload any) *http.Response) {
	app := tests.NewApp()

	resp := tests.Request(t, app, http.MethodPost, "/api/games", payload, tests.TestToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	id := tests.Decode[models.GameView](t, resp).ID

	do := func(method, path string, payload any) *http.Response {
		return tests.Request(t, app, method, "/api/games/"+id+path, payload, tests.TestToken)
	}

	return id, do
}

func TestGameLifecycle(t *testing.T) {
	id, do := newGame(t, models.NewGameRequest{Kind: models.KindCheckers})

	resp := do(http.MethodGet, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, id, tests.Decode[models.GameView](t, resp).ID)

	resp = do(http.MethodPost, "/moves", models.MoveRequest{Move: "c3-d4"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := tests.Decode[models.GameView](t, resp)
	require.Equal(t, 1, view.Ply)
	require.Equal(t, "white", view.Turn)
	require.Equal(t, "c3-d4", view.LastMove)
	require.True(t, view.CanUndo)

	resp = do(http.MethodPost, "/moves", models.MoveRequest{Move: "c3-d4"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Contains(t, tests.Decode[errorResponse](t, resp).Error, "illegal move")

	resp = do(http.MethodPost, "/undo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = tests.Decode[models.GameView](t, resp)
	require.Equal(t, 0, view.Ply)
	require.True(t, view.CanRedo)

	resp = do(http.MethodPost, "/redo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = tests.Decode[models.GameView](t, resp)
	require.Equal(t, 1, view.Ply)
	require.Equal(t, "c3-d4", view.LastMove)

	resp = do(http.MethodPost, "/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = tests.Decode[models.GameView](t, resp)
	require.Equal(t, 0, view.Ply)
	require.False(t, view.CanUndo)
	require.False(t, view.CanRedo)

	resp = do(http.MethodDelete, "", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(http.MethodGet, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUndoWithoutHistory(t *testing.T) {
	_, do := newGame(t, models.NewGameRequest{Kind: models.KindOthello})

	resp := do(http.MethodPost, "/undo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 0, tests.Decode[models.GameView](t, resp).Ply)
}

func TestCommitMoveInvalidBody(t *testing.T) {
	_, do := newGame(t, models.NewGameRequest{Kind: models.KindOthello})

	resp := do(http.MethodPost, "/moves", models.MoveRequest{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCommitMoveAutoReply(t *testing.T) {
	_, do := newGame(t, models.NewGameRequest{
		Kind: models.KindOthello, AISide: "white", AIDepth: 1, AutoReply: true,
	})

	resp := do(http.MethodPost, "/moves", models.MoveRequest{Move: "d3"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := tests.Decode[models.GameView](t, resp)
	require.Equal(t, 2, view.Ply)
	require.Equal(t, "black", view.Turn)
	require.NotEqual(t, "d3", view.LastMove)
}

func TestPlayAI(t *testing.T) {
	_, do := newGame(t, models.NewGameRequest{Kind: models.KindOthello, AISide: "white", AIDepth: 1})

	// Black is a human player.
	resp := do(http.MethodPost, "/ai", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(http.MethodPost, "/moves", models.MoveRequest{Move: "d3"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, tests.Decode[models.GameView](t, resp).Ply)

	resp = do(http.MethodPost, "/ai", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := tests.Decode[models.GameView](t, resp)
	require.Equal(t, 2, view.Ply)
	require.Equal(t, "black", view.Turn)
}

func TestPlayAIWithoutAI(t *testing.T) {
	_, do := newGame(t, models.NewGameRequest{Kind: models.KindCheckers})

	resp := do(http.MethodPost, "/ai", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGameNotFound(t *testing.T) {
	app := tests.NewApp()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/games/missing"},
		{http.MethodPost, "/api/games/missing/undo"},
		{http.MethodPost, "/api/games/missing/ai"},
		{http.MethodPost, "/api/games/missing/save"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			var payload any
			if p.path == "/api/games/missing/save" {
				payload = models.SaveRequest{Name: "slot"}
			}

			resp := tests.Request(t, app, p.method, p.path, payload, tests.TestToken)
			require.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestDeleteUnknownGame(t *testing.T) {
	resp := tests.Request(t, tests.NewApp(), http.MethodDelete, "/api/games/missing", nil, tests.TestToken)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}
