package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/gamesuite/internal/models"
	"github.com/lk16/gamesuite/internal/repository"
	"github.com/lk16/gamesuite/internal/session"
)

const (
	aiTimeout = 8 * time.Second
)

// Conn is the part of a websocket connection the handler uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
}

type Handler struct {
	sessions repository.SessionStore
	ws       Conn
	id       string
}

// NewHandler creates a new Handler for the game session with the given ID.
func NewHandler(ws Conn, sessions repository.SessionStore, id string) *Handler {
	return &Handler{sessions: sessions, ws: ws, id: id}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", msg)

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

// action returns the session update for an event.
func (h *Handler) action(ctx context.Context, req *Incoming) (func(s session.Session) error, error) {
	switch req.Event {
	case "":
		return nil, errors.New("event field is either empty or missing")
	case EventState:
		return func(session.Session) error { return nil }, nil
	case EventMove:
		var reqData models.MoveRequest
		if err := json.Unmarshal(req.Data, &reqData); err != nil {
			return nil, fmt.Errorf("ws move unmarshal error: %w", err)
		}
		return func(s session.Session) error {
			return session.CommitAndReply(ctx, s, reqData.Move)
		}, nil
	case EventAIMove:
		return func(s session.Session) error { return s.PlayAI(ctx) }, nil
	case EventUndo:
		return func(s session.Session) error { s.Undo(); return nil }, nil
	case EventRedo:
		return func(s session.Session) error { s.Redo(); return nil }, nil
	case EventReset:
		return func(s session.Session) error { s.Reset(); return nil }, nil
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

func (h *Handler) handleMessage(req *Incoming) (*Outgoing, error) {
	ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
	defer cancel()

	action, err := h.action(ctx, req)
	if err != nil {
		return nil, err
	}

	view, err := session.Update(ctx, h.sessions, h.id, action)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, err
	}

	outgoing := &Outgoing{ID: req.ID}
	if view.ID != "" {
		outgoing.Data = &view
	}
	if err != nil {
		outgoing.Error = err.Error()
	}

	return outgoing, nil
}

// Handle handles the websocket connection until it is closed, a malformed
// message arrives or the session disappears.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		respData, err := h.handleMessage(req)
		if err != nil {
			return fmt.Errorf("ws handle error: %w", err)
		}

		if err = h.writeMessage(respData); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}
