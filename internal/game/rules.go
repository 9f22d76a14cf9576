package game

import "time"

// Rules carries every tunable constant of the three variants. Scoring
// numbers are product choices, so they live here instead of being
// baked into the state machines.
type Rules struct {
	// Quiz
	QuizQuestions    int
	QuizQuestionTime time.Duration
	QuizBasePoints   int
	QuizTimeBonus    int // points per whole remaining second

	// Drawing
	DrawRounds      int
	DrawRoundTime   time.Duration
	GuessPoints     int
	FirstGuessBonus int
	DrawerPoints    int // awarded to the drawer per correct guess

	// Puzzle
	PuzzleEnigmas int
	MaxHints      int
	HintPenalty   int
}

func DefaultRules() Rules {
	return Rules{
		QuizQuestions:    15,
		QuizQuestionTime: 15 * time.Second,
		QuizBasePoints:   100,
		QuizTimeBonus:    10,

		DrawRounds:      8,
		DrawRoundTime:   60 * time.Second,
		GuessPoints:     100,
		FirstGuessBonus: 50,
		DrawerPoints:    25,

		PuzzleEnigmas: 10,
		MaxHints:      3,
		HintPenalty:   50,
	}
}

// MaxPlayersFor returns the room capacity for a game type.
func MaxPlayersFor(t Type) int {
	switch t {
	case TypePuzzle:
		// Cooperative enigmas are tuned for a small squad.
		return 3
	default:
		return 4
	}
}

// MinPlayersToStart is the same for every variant: a party game of one
// is not a party.
const MinPlayersToStart = 2
