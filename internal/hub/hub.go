// Package hub is the process-wide room registry: an actor owning the
// code-to-room map, room code generation and empty-room teardown.
package hub

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/gamehub/party-games-backend/internal/game"
	"github.com/gamehub/party-games-backend/internal/room"
)

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 6
	maxCodeAttempts = 16
)

var ErrCodeSpaceExhausted = errors.New("could not generate an unused room code")

type HubMsg interface{ isHubMsg() }

type CreateRoom struct {
	GameType game.Type
	Reply    chan CreateResult
}

type CreateResult struct {
	Code string
	Err  error
}

type GetRoom struct {
	Code  string
	Reply chan *room.Room
}

// RemoveRoom drops a code from the registry. Idempotent; rooms send it
// through the onEmpty callback when their last player leaves.
type RemoveRoom struct{ Code string }

type Stats struct{ Reply chan int }

type ShutdownHub struct{}

func (CreateRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (RemoveRoom) isHubMsg()  {}
func (Stats) isHubMsg()       {}
func (ShutdownHub) isHubMsg() {}

type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	rules  game.Rules
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, logger *zap.Logger, rules game.Rules) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		rules:  rules,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				msg.Reply <- h.handleCreate(msg.GameType)

			case GetRoom:
				msg.Reply <- h.rooms[msg.Code] // may be nil

			case RemoveRoom:
				if _, ok := h.rooms[msg.Code]; ok {
					delete(h.rooms, msg.Code)
					h.logger.Info("room removed", zap.String("room", msg.Code))
				}

			case Stats:
				msg.Reply <- len(h.rooms)

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) handleCreate(t game.Type) CreateResult {
	v := game.New(t, h.rules)
	if v == nil {
		return CreateResult{Err: fmt.Errorf("unknown game type %q", t)}
	}

	code, err := h.freeCode()
	if err != nil {
		return CreateResult{Err: err}
	}

	h.rooms[code] = room.NewRoom(h.ctx, h.logger, code, v, h.requestRemove)
	h.logger.Info("room created", zap.String("room", code), zap.String("game", string(t)))
	return CreateResult{Code: code}
}

func (h *Hub) freeCode() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateCode()
		if err != nil {
			return "", fmt.Errorf("generating room code: %w", err)
		}
		if _, taken := h.rooms[code]; !taken {
			return code, nil
		}
		h.logger.Warn("room code collision", zap.String("room", code))
	}
	return "", ErrCodeSpaceExhausted
}

// requestRemove is invoked from a room goroutine, so it goes through
// the inbox rather than touching the map directly.
func (h *Hub) requestRemove(code string) {
	select {
	case h.inbox <- RemoveRoom{Code: code}:
	case <-h.ctx.Done():
	}
}

func (h *Hub) shutdown() {
	for code, r := range h.rooms {
		r.Inbox() <- room.Shutdown{}
		delete(h.rooms, code)
	}
	h.cancel()
}

func generateCode() (string, error) {
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
