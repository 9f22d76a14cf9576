// Package game holds the per-variant state machines. A Variant owns the
// rules of one game type; the room session owns the clock, the player
// set and the scores, and drives the variant through OnEnter, OnEvent
// and OnExpiry.
package game

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrWrongPhase = errors.New("event for a non-current phase")
var ErrUnsupportedEvent = errors.New("unsupported event for this variant")
var ErrNotAllowed = errors.New("player may not send this event now")
var ErrAlreadySubmitted = errors.New("player already submitted this phase")
var ErrHintsExhausted = errors.New("hint budget exhausted")

type Type string

const (
	TypeQuiz    Type = "brainrush"
	TypeDrawing Type = "crazydraws"
	TypePuzzle  Type = "mindmaze"
)

// ParseType maps a wire gameType string to a Type.
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeQuiz, TypeDrawing, TypePuzzle:
		return Type(s), true
	default:
		return "", false
	}
}

type EventType string

const (
	EvtSubmitAnswer EventType = "submit-answer"
	EvtDrawStroke   EventType = "drawing-stroke"
	EvtGuess        EventType = "guess"
	EvtSolve        EventType = "solve"
	EvtRequestHint  EventType = "request-hint"
)

// Event is one validated inbound game action. Fields beyond Type are
// populated per event type; unused ones stay zero. Remaining is the
// time left before the server-held deadline at the moment the room
// applied the event, so time bonuses never trust a client clock.
type Event struct {
	Type      EventType
	Phase     int // phase index the sender believes is current
	Answer    int // submit-answer: chosen option index
	Guess     string
	Stroke    json.RawMessage // drawing-stroke: opaque, relayed as-is
	Remaining time.Duration
}

// Notice is a variant-produced broadcast payload. Only restricts
// delivery to a single player, Exclude skips one; both empty means
// every room member.
type Notice struct {
	Type    string
	Data    any
	Only    string
	Exclude string
}

// Transition is the outcome of applying one event or one expiry.
type Transition struct {
	Deltas  map[string]int // score deltas per player id
	Advance bool           // leave the current phase
	Notices []Notice
}

// Enter describes a freshly entered phase. Payload is the public
// phase announcement, broadcast together with the new deadline;
// Notices are extra targeted frames (e.g. the drawer's secret word).
// The room turns Duration into an absolute deadline; variants never
// see wall-clock time.
type Enter struct {
	Payload  any
	Notices  []Notice
	Duration time.Duration
}

// Variant is the state machine for one game type. Phases are numbered
// by the room: 0 is the lobby, 1..Phases() are play phases, and
// Phases()+1 is finished. The room serializes all calls, so variants
// need no locking.
type Variant interface {
	Type() Type
	MaxPlayers() int
	Phases() int

	// OnEnter is called once per phase entry with the player ids in
	// join order. Any per-phase transient state resets here.
	OnEnter(phase int, players []string) Enter

	// OnEvent applies one event from a known player in the current
	// phase. A returned error means the event is dropped.
	OnEvent(phase int, player string, ev Event) (Transition, error)

	// OnExpiry is the deadline transition. It is total: defined for
	// every play phase, so the room timer can never stall.
	OnExpiry(phase int) Transition

	// PlayerLeft reacts to a mid-game departure with the remaining
	// players in join order. Returns nil when nothing changes.
	PlayerLeft(player string, phase int, players []string) *Transition
}

// New builds the variant for a game type with the given rules.
func New(t Type, rules Rules) Variant {
	switch t {
	case TypeQuiz:
		return NewQuiz(rules)
	case TypeDrawing:
		return NewDrawing(rules)
	case TypePuzzle:
		return NewPuzzle(rules)
	default:
		return nil
	}
}
