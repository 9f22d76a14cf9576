// Package protocol defines the JSON frames exchanged with clients and
// the mapping from inbound frames to game events.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gamehub/party-games-backend/internal/game"
)

var ErrUnknownType = errors.New("unknown message type")

// Message is one wire frame in either direction. Timestamp is unix
// milliseconds, assigned by the room at emission so clients observe
// server ordering.
type Message struct {
	Type      string          `json:"type"`
	RoomCode  string          `json:"roomCode,omitempty"`
	PlayerID  string          `json:"playerId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`
}

// Inbound frame types.
const (
	TypeJoinRoom  = "join-room"
	TypeGameStart = "game-start"
	TypeChat      = "chat-message"
)

// Outbound frame types. Variant notices (question, round-word,
// correct-guess, ...) pass through with the variant's own type tag.
const (
	TypeJoinSuccess  = "join-success"
	TypeJoinError    = "join-error"
	TypePlayerJoined = "player-joined"
	TypePlayerLeft   = "player-left"
	TypePhaseStart   = "phase-start"
	TypePhaseEnd     = "phase-end"
	TypeGameOver     = "game-over"
	TypeRoomClosed   = "room-closed"
	TypeError        = "error"
)

type JoinRoom struct {
	RoomCode string `json:"roomCode"`
	Username string `json:"username"`
}

type Chat struct {
	Message string `json:"message"`
}

type SubmitAnswer struct {
	Question int `json:"question"`
	Answer   int `json:"answer"`
}

type Guess struct {
	Guess string `json:"guess"`
	Round int    `json:"round,omitempty"`
}

type Solve struct {
	Enigma int `json:"enigma"`
}

type JoinSuccess struct {
	PlayerID string `json:"playerId"`
	RoomCode string `json:"roomCode"`
}

type JoinError struct {
	Message string `json:"message"`
}

type PlayerInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Ready    bool   `json:"ready"`
	Role     string `json:"role,omitempty"`
}

type RoomUpdate struct {
	PlayerCount int          `json:"playerCount"`
	Players     []PlayerInfo `json:"players"`
}

type PhaseStart struct {
	Phase    int   `json:"phase"`
	Deadline int64 `json:"deadline"` // unix ms
	Payload  any   `json:"payload,omitempty"`
}

type PhaseEnd struct {
	Phase  int            `json:"phase"`
	Scores map[string]int `json:"scores"`
}

type GameOver struct {
	Scores map[string]int `json:"scores"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// Outbound builds a server frame, stamping the emission time.
func Outbound(typ, roomCode string, data any) Message {
	raw, err := json.Marshal(data)
	if err != nil {
		// Payloads are server-built; a marshal failure is a programming
		// error, surface it as an error frame rather than silence.
		return Message{Type: TypeError, RoomCode: roomCode, Timestamp: time.Now().UnixMilli()}
	}
	return Message{
		Type:      typ,
		RoomCode:  roomCode,
		Data:      raw,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Decode parses one inbound client frame.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("malformed frame: %w", err)
	}
	if m.Type == "" {
		return Message{}, fmt.Errorf("%w: empty", ErrUnknownType)
	}
	return m, nil
}

// ToGameEvent maps a post-join inbound frame to a game event. Frames
// that are not game events (chat, game-start) are handled by the room
// directly and never reach this function.
func ToGameEvent(m Message) (game.Event, error) {
	switch game.EventType(m.Type) {
	case game.EvtSubmitAnswer:
		var p SubmitAnswer
		if err := json.Unmarshal(m.Data, &p); err != nil {
			return game.Event{}, fmt.Errorf("submit-answer payload: %w", err)
		}
		return game.Event{Type: game.EvtSubmitAnswer, Phase: p.Question, Answer: p.Answer}, nil

	case game.EvtDrawStroke:
		// Opaque relay, the payload is never interpreted server-side.
		return game.Event{Type: game.EvtDrawStroke, Stroke: m.Data}, nil

	case game.EvtGuess:
		var p Guess
		if err := json.Unmarshal(m.Data, &p); err != nil {
			return game.Event{}, fmt.Errorf("guess payload: %w", err)
		}
		return game.Event{Type: game.EvtGuess, Phase: p.Round, Guess: p.Guess}, nil

	case game.EvtSolve:
		var p Solve
		if err := json.Unmarshal(m.Data, &p); err != nil {
			return game.Event{}, fmt.Errorf("solve payload: %w", err)
		}
		return game.Event{Type: game.EvtSolve, Phase: p.Enigma}, nil

	case game.EvtRequestHint:
		return game.Event{Type: game.EvtRequestHint}, nil

	default:
		return game.Event{}, fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
}
