package game

import (
	"encoding/json"
	"math/rand"
	"strings"
)

// Drawing is the turn-based variant: one drawer per round relays
// strokes, everybody else guesses the secret word.
type Drawing struct {
	rules      Rules
	roster     []string
	drawer     string
	word       string
	constraint Constraint
	guessed    map[string]bool
	firstGone  bool // the first-correct bonus has been claimed this round
}

type Constraint struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func NewDrawing(rules Rules) *Drawing {
	return &Drawing{rules: rules, guessed: map[string]bool{}}
}

// Drawer is the player holding the drawer role this round.
func (d *Drawing) Drawer() string { return d.drawer }

func (d *Drawing) Type() Type      { return TypeDrawing }
func (d *Drawing) MaxPlayers() int { return MaxPlayersFor(TypeDrawing) }
func (d *Drawing) Phases() int     { return d.rules.DrawRounds }

// Swappable so tests can pin the word and constraint.
var pickWord = func() string { return DrawWords[rand.Intn(len(DrawWords))] }
var pickConstraint = func() Constraint { return DrawConstraints[rand.Intn(len(DrawConstraints))] }

type roundPayload struct {
	Round      int        `json:"round"`
	Total      int        `json:"total"`
	Drawer     string     `json:"drawer"`
	Constraint Constraint `json:"constraint"`
	WordLength int        `json:"wordLength"`
}

func (d *Drawing) OnEnter(phase int, players []string) Enter {
	d.roster = players
	d.drawer = players[(phase-1)%len(players)]
	d.word = pickWord()
	d.constraint = pickConstraint()
	d.guessed = map[string]bool{}
	d.firstGone = false

	return Enter{
		Payload: roundPayload{
			Round:      phase,
			Total:      d.rules.DrawRounds,
			Drawer:     d.drawer,
			Constraint: d.constraint,
			WordLength: len(d.word),
		},
		Notices: []Notice{
			{Type: "round-word", Only: d.drawer, Data: map[string]any{"word": d.word}},
		},
		Duration: d.rules.DrawRoundTime,
	}
}

func (d *Drawing) OnEvent(phase int, player string, ev Event) (Transition, error) {
	switch ev.Type {
	case EvtDrawStroke:
		if player != d.drawer {
			return Transition{}, ErrNotAllowed
		}
		// View-only relay to the guessers, never read back for scoring.
		return Transition{Notices: []Notice{
			{Type: "drawing-stroke", Data: json.RawMessage(ev.Stroke), Exclude: d.drawer},
		}}, nil

	case EvtGuess:
		return d.onGuess(player, ev.Guess)

	default:
		return Transition{}, ErrUnsupportedEvent
	}
}

func (d *Drawing) onGuess(player, guess string) (Transition, error) {
	if player == d.drawer {
		return Transition{}, ErrNotAllowed
	}
	if d.guessed[player] {
		return Transition{}, ErrAlreadySubmitted
	}

	if !strings.EqualFold(guess, d.word) {
		// Wrong guesses are public, they are half the fun.
		return Transition{Notices: []Notice{
			{Type: "guess", Data: map[string]any{"playerId": player, "guess": guess}},
		}}, nil
	}

	d.guessed[player] = true
	points := d.rules.GuessPoints
	if !d.firstGone {
		points += d.rules.FirstGuessBonus
		d.firstGone = true
	}

	t := Transition{
		Deltas: map[string]int{player: points, d.drawer: d.rules.DrawerPoints},
		Notices: []Notice{
			{Type: "correct-guess", Data: map[string]any{"playerId": player, "points": points}},
		},
	}
	t.Advance = d.allGuessed()
	return t, nil
}

func (d *Drawing) OnExpiry(phase int) Transition {
	return Transition{
		Advance: true,
		Notices: []Notice{
			{Type: "round-timeout", Data: map[string]any{"word": d.word}},
		},
	}
}

// PlayerLeft hands the active round to the player who followed the
// drawer in join order when the drawer disconnects: same word, same
// deadline, new drawer.
func (d *Drawing) PlayerLeft(player string, phase int, players []string) *Transition {
	wasDrawer := player == d.drawer
	next := d.successor(player, players)
	d.roster = players
	delete(d.guessed, player)
	if phase < 1 || phase > d.Phases() || len(players) == 0 {
		return nil
	}

	if wasDrawer {
		d.drawer = next
		return &Transition{Notices: []Notice{
			{Type: "drawer-changed", Data: map[string]any{"drawer": d.drawer, "round": phase}},
			{Type: "round-word", Only: d.drawer, Data: map[string]any{"word": d.word}},
		}}
	}

	if d.allGuessed() {
		return &Transition{Advance: true}
	}
	return nil
}

// successor walks the round's roster forward from the departed player,
// wrapping, and returns the first id still present.
func (d *Drawing) successor(departed string, remaining []string) string {
	if len(remaining) == 0 {
		return ""
	}
	present := make(map[string]bool, len(remaining))
	for _, id := range remaining {
		present[id] = true
	}
	idx := -1
	for i, id := range d.roster {
		if id == departed {
			idx = i
			break
		}
	}
	if idx < 0 {
		return remaining[0]
	}
	for i := 1; i <= len(d.roster); i++ {
		if cand := d.roster[(idx+i)%len(d.roster)]; present[cand] {
			return cand
		}
	}
	return remaining[0]
}

func (d *Drawing) allGuessed() bool {
	n := 0
	for _, p := range d.roster {
		if p == d.drawer {
			continue
		}
		if !d.guessed[p] {
			return false
		}
		n++
	}
	return n > 0
}
