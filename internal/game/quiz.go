package game

// Quiz is the turn-free variant: every player answers the same
// question at once, score depends on correctness and on how much of
// the server deadline was left.
type Quiz struct {
	rules     Rules
	questions []Question
	roster    []string
	answered  map[string]bool
}

type Question struct {
	ID       int
	Prompt   string
	Options  []string
	Correct  int
	Category string
}

func NewQuiz(rules Rules) *Quiz {
	qs := QuizQuestions
	if rules.QuizQuestions > 0 && rules.QuizQuestions < len(qs) {
		qs = qs[:rules.QuizQuestions]
	}
	return &Quiz{
		rules:     rules,
		questions: qs,
		answered:  map[string]bool{},
	}
}

func (q *Quiz) Type() Type      { return TypeQuiz }
func (q *Quiz) MaxPlayers() int { return MaxPlayersFor(TypeQuiz) }
func (q *Quiz) Phases() int     { return len(q.questions) }

type questionPayload struct {
	Question int      `json:"question"`
	Total    int      `json:"total"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
}

func (q *Quiz) OnEnter(phase int, players []string) Enter {
	q.roster = players
	q.answered = map[string]bool{}

	qu := q.questions[phase-1]
	return Enter{
		Payload: questionPayload{
			Question: phase,
			Total:    len(q.questions),
			Prompt:   qu.Prompt,
			Options:  qu.Options,
			Category: qu.Category,
		},
		Duration: q.rules.QuizQuestionTime,
	}
}

func (q *Quiz) OnEvent(phase int, player string, ev Event) (Transition, error) {
	if ev.Type != EvtSubmitAnswer {
		return Transition{}, ErrUnsupportedEvent
	}
	if q.answered[player] {
		return Transition{}, ErrAlreadySubmitted
	}
	q.answered[player] = true

	correct := ev.Answer == q.questions[phase-1].Correct
	points := 0
	if correct {
		points = q.rules.QuizBasePoints + int(ev.Remaining.Seconds())*q.rules.QuizTimeBonus
	}

	t := Transition{
		Deltas: map[string]int{player: points},
		Notices: []Notice{
			{Type: "answer-received", Data: map[string]any{"playerId": player}},
			{Type: "answer-result", Only: player, Data: map[string]any{
				"correct": correct,
				"points":  points,
			}},
		},
	}
	t.Advance = q.allAnswered()
	return t, nil
}

func (q *Quiz) OnExpiry(phase int) Transition {
	// Lock everyone who never answered at zero for this question.
	deltas := map[string]int{}
	for _, p := range q.roster {
		if !q.answered[p] {
			deltas[p] = 0
			q.answered[p] = true
		}
	}
	return Transition{Deltas: deltas, Advance: true}
}

func (q *Quiz) PlayerLeft(player string, phase int, players []string) *Transition {
	q.roster = players
	delete(q.answered, player)
	if phase >= 1 && phase <= q.Phases() && q.allAnswered() {
		return &Transition{Advance: true}
	}
	return nil
}

func (q *Quiz) allAnswered() bool {
	for _, p := range q.roster {
		if !q.answered[p] {
			return false
		}
	}
	return len(q.roster) > 0
}
