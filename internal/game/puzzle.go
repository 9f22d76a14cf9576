package game

import "time"

// Puzzle is the cooperative variant: one collective score, one shared
// hint budget, anyone may solve the current enigma for the whole team.
type Puzzle struct {
	rules     Rules
	enigmas   []Enigma
	roster    []string
	hintsUsed int
}

type Enigma struct {
	ID          int
	Kind        string
	Title       string
	Description string
	Difficulty  string
	TimeLimit   time.Duration
	MaxPoints   int
}

func NewPuzzle(rules Rules) *Puzzle {
	es := Enigmas
	if rules.PuzzleEnigmas > 0 && rules.PuzzleEnigmas < len(es) {
		es = es[:rules.PuzzleEnigmas]
	}
	return &Puzzle{rules: rules, enigmas: es}
}

func (p *Puzzle) Type() Type      { return TypePuzzle }
func (p *Puzzle) MaxPlayers() int { return MaxPlayersFor(TypePuzzle) }
func (p *Puzzle) Phases() int     { return len(p.enigmas) }

type enigmaPayload struct {
	Enigma      int    `json:"enigma"`
	Total       int    `json:"total"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	MaxPoints   int    `json:"maxPoints"`
	HintsLeft   int    `json:"hintsLeft"`
}

func (p *Puzzle) OnEnter(phase int, players []string) Enter {
	p.roster = players
	e := p.enigmas[phase-1]
	return Enter{
		Payload: enigmaPayload{
			Enigma:      phase,
			Total:       len(p.enigmas),
			Kind:        e.Kind,
			Title:       e.Title,
			Description: e.Description,
			Difficulty:  e.Difficulty,
			MaxPoints:   e.MaxPoints,
			HintsLeft:   p.rules.MaxHints - p.hintsUsed,
		},
		Duration: e.TimeLimit,
	}
}

func (p *Puzzle) OnEvent(phase int, player string, ev Event) (Transition, error) {
	switch ev.Type {
	case EvtSolve:
		points := p.enigmas[phase-1].MaxPoints
		return Transition{
			Deltas:  p.collective(points),
			Advance: true,
			Notices: []Notice{
				{Type: "enigma-solved", Data: map[string]any{"playerId": player, "points": points}},
			},
		}, nil

	case EvtRequestHint:
		if p.hintsUsed >= p.rules.MaxHints {
			return Transition{}, ErrHintsExhausted
		}
		p.hintsUsed++
		return Transition{
			Deltas: p.collective(-p.rules.HintPenalty),
			Notices: []Notice{
				{Type: "hint-used", Data: map[string]any{
					"playerId":   player,
					"hintNumber": p.hintsUsed,
					"hintsLeft":  p.rules.MaxHints - p.hintsUsed,
					"penalty":    p.rules.HintPenalty,
				}},
			},
		}, nil

	default:
		return Transition{}, ErrUnsupportedEvent
	}
}

func (p *Puzzle) OnExpiry(phase int) Transition {
	return Transition{
		Advance: true,
		Notices: []Notice{
			{Type: "enigma-timeout", Data: map[string]any{"enigma": phase}},
		},
	}
}

func (p *Puzzle) PlayerLeft(player string, phase int, players []string) *Transition {
	p.roster = players
	return nil
}

// collective mirrors the shared team score onto every player, so the
// room's generic per-player score map stays the single source of truth.
func (p *Puzzle) collective(points int) map[string]int {
	deltas := make(map[string]int, len(p.roster))
	for _, id := range p.roster {
		deltas[id] = points
	}
	return deltas
}
