package quiz

// ScoreEngine advances linearly through a ScoreScenario's questions,
// summing the score of every chosen option. After the last question the
// total is resolved against the result ranges.
type ScoreEngine struct {
	scenario *ScoreScenario
}

func NewScoreEngine(sc *ScoreScenario) *ScoreEngine {
	return &ScoreEngine{scenario: sc}
}

func (e *ScoreEngine) Mode() Mode { return ModeScore }

func (e *ScoreEngine) Scenario() *ScoreScenario { return e.scenario }

func (e *ScoreEngine) NewSession(id string) *Session {
	s := &Session{ID: id, Mode: ModeScore}
	e.Restart(s)
	return s
}

func (e *ScoreEngine) Start(s *Session) error {
	if err := checkMode(e, s); err != nil {
		return err
	}
	s.Index = 0
	s.Total = 0
	s.Answers = nil
	s.touch()
	return nil
}

// Select takes c.Score as authoritative: it is not checked against the
// current question's options.
func (e *ScoreEngine) Select(s *Session, c Choice) error {
	if err := checkMode(e, s); err != nil {
		return err
	}
	n := len(e.scenario.Questions)
	if s.Index < 0 || s.Index >= n {
		return ErrNotInProgress
	}
	s.Answers = append(s.Answers, c.Score)
	s.Total += c.Score
	if s.Index == n-1 {
		s.Index = n
	} else {
		s.Index++
	}
	s.touch()
	return nil
}

func (e *ScoreEngine) View(s *Session) View {
	n := len(e.scenario.Questions)
	switch {
	case s.Index < 0:
		return View{Kind: ViewNotStarted}
	case s.Index < n:
		return View{
			Kind:     ViewQuestion,
			Question: &e.scenario.Questions[s.Index],
			Number:   s.Index + 1,
			Total:    n,
			Score:    s.Total,
		}
	}
	res, ok := e.scenario.Resolve(s.Total)
	if !ok {
		return View{Kind: ViewNoResult, Total: n, Score: s.Total}
	}
	return View{Kind: ViewResult, Result: res, Total: n, Score: s.Total}
}

func (e *ScoreEngine) Restart(s *Session) {
	s.Index = -1
	s.Total = 0
	s.Answers = nil
	s.touch()
}

func (e *ScoreEngine) History(s *Session) []Choice {
	out := make([]Choice, len(s.Answers))
	for i, v := range s.Answers {
		out[i] = Choice{Score: v}
	}
	return out
}
