package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPuzzle_SolveAwardsEveryPlayerAndAdvances(t *testing.T) {
	p := NewPuzzle(DefaultRules())
	p.OnEnter(1, []string{"p1", "p2", "p3"})

	tr, err := p.OnEvent(1, "p2", Event{Type: EvtSolve})
	require.NoError(t, err)
	assert.True(t, tr.Advance)
	for _, id := range []string{"p1", "p2", "p3"} {
		assert.Equal(t, Enigmas[0].MaxPoints, tr.Deltas[id], "collective score is shared")
	}
}

func TestPuzzle_HintBudgetAndPenalty(t *testing.T) {
	rules := DefaultRules()
	p := NewPuzzle(rules)
	p.OnEnter(1, []string{"p1", "p2"})

	for i := 1; i <= rules.MaxHints; i++ {
		tr, err := p.OnEvent(1, "p1", Event{Type: EvtRequestHint})
		require.NoError(t, err)
		assert.Equal(t, -rules.HintPenalty, tr.Deltas["p1"])
		assert.Equal(t, -rules.HintPenalty, tr.Deltas["p2"])
		assert.False(t, tr.Advance)
	}

	_, err := p.OnEvent(1, "p2", Event{Type: EvtRequestHint})
	assert.ErrorIs(t, err, ErrHintsExhausted)
}

func TestPuzzle_HintBudgetSpansEnigmas(t *testing.T) {
	rules := DefaultRules()
	p := NewPuzzle(rules)
	p.OnEnter(1, []string{"p1"})

	for i := 0; i < rules.MaxHints; i++ {
		_, err := p.OnEvent(1, "p1", Event{Type: EvtRequestHint})
		require.NoError(t, err)
	}

	enter := p.OnEnter(2, []string{"p1"})
	payload, ok := enter.Payload.(enigmaPayload)
	require.True(t, ok)
	assert.Equal(t, 0, payload.HintsLeft)

	_, err := p.OnEvent(2, "p1", Event{Type: EvtRequestHint})
	assert.ErrorIs(t, err, ErrHintsExhausted)
}

func TestPuzzle_ExpiryAdvancesWithNoAward(t *testing.T) {
	p := NewPuzzle(DefaultRules())
	p.OnEnter(1, []string{"p1", "p2"})

	tr := p.OnExpiry(1)
	assert.True(t, tr.Advance)
	assert.Empty(t, tr.Deltas)
}

func TestPuzzle_EnigmaDurationsComeFromTheTable(t *testing.T) {
	p := NewPuzzle(DefaultRules())

	first := p.OnEnter(1, []string{"p1"})
	assert.Equal(t, Enigmas[0].TimeLimit, first.Duration)

	last := p.OnEnter(p.Phases(), []string{"p1"})
	assert.Equal(t, Enigmas[len(Enigmas)-1].TimeLimit, last.Duration)
}

func TestPuzzle_EnigmaCountFollowsRules(t *testing.T) {
	rules := DefaultRules()
	rules.PuzzleEnigmas = 4
	assert.Equal(t, 4, NewPuzzle(rules).Phases())
}
