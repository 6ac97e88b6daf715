package quiz

import (
	"fmt"
	"time"
)

// Session is the mutable progression state of one quiz traversal. It is
// owned by the caller and passed into every Engine operation; an engine
// keeps no per-session state of its own. A Session must not be used from
// more than one goroutine at a time.
type Session struct {
	ID   string `json:"id"`
	Mode Mode   `json:"mode"`

	// Graph state. Empty NodeID means not started; Path holds the node ids
	// selected since Start, in order.
	NodeID string   `json:"nodeId,omitempty"`
	Path   []string `json:"path,omitempty"`

	// Score state. Index is -1 before Start, 0..N-1 while on question
	// Index, N once finished.
	Index   int   `json:"index"`
	Total   int   `json:"total"`
	Answers []int `json:"answers,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := *s
	c.Path = append([]string(nil), s.Path...)
	c.Answers = append([]int(nil), s.Answers...)
	return &c
}

func (s *Session) touch() { s.UpdatedAt = time.Now().UTC() }

// Choice is the input to Select. NextID is read by the graph engine and
// Score by the score engine.
type Choice struct {
	NextID string
	Score  int
}

type ViewKind string

const (
	ViewNotStarted ViewKind = "not_started"
	ViewQuestion   ViewKind = "question"
	ViewResult     ViewKind = "result"
	// ViewNotFound: the graph session points at a node id missing from the scenario.
	ViewNotFound ViewKind = "not_found"
	// ViewNoResult: the score total matched no result range and no [0,0] fallback exists.
	ViewNoResult ViewKind = "no_result"
)

// View is what the presentation layer renders. Which fields are set
// depends on Kind and on the engine's mode.
type View struct {
	Kind ViewKind

	// Graph: the current question or result node. For ViewNotFound,
	// NodeID holds the dangling id.
	Node   *Node
	NodeID string

	// Score: the current question with its 1-based number, or the
	// resolved result. Score is the running total.
	Question *Question
	Number   int
	Total    int
	Result   *BirdResult
	Score    int
}

// Terminal reports whether the view ends the session until Restart.
func (v View) Terminal() bool {
	switch v.Kind {
	case ViewResult, ViewNotFound, ViewNoResult:
		return true
	}
	return false
}

// Choices returns the selectable choices of a question view in authored
// order, or nil for any other view.
func (v View) Choices() []Choice {
	if v.Kind != ViewQuestion {
		return nil
	}
	switch {
	case v.Node != nil:
		out := make([]Choice, len(v.Node.Options))
		for i, o := range v.Node.Options {
			out[i] = Choice{NextID: o.NextID}
		}
		return out
	case v.Question != nil:
		out := make([]Choice, len(v.Question.Options))
		for i, o := range v.Question.Options {
			out[i] = Choice{Score: o.Score}
		}
		return out
	}
	return nil
}

// Engine is the quiz traversal contract shared by both data models.
type Engine interface {
	Mode() Mode
	// NewSession returns a not-started session with the given id.
	NewSession(id string) *Session
	Start(s *Session) error
	// Select applies the user's choice to a session showing a question.
	Select(s *Session, c Choice) error
	// View derives the current view. It never mutates s.
	View(s *Session) View
	Restart(s *Session)
	// History returns the choices applied since Start, in order.
	History(s *Session) []Choice
}

// Back rewinds s by one answer. Engines have no rewind operation, so the
// session is restarted and every earlier choice is replayed from Start.
func Back(e Engine, s *Session) error {
	history := e.History(s)
	if len(history) == 0 {
		return ErrNothingToUndo
	}
	e.Restart(s)
	if err := e.Start(s); err != nil {
		return fmt.Errorf("replaying from start: %w", err)
	}
	for i, c := range history[:len(history)-1] {
		if err := e.Select(s, c); err != nil {
			return fmt.Errorf("replaying answer %d: %w", i+1, err)
		}
	}
	return nil
}

func checkMode(e Engine, s *Session) error {
	if s.Mode != e.Mode() {
		return fmt.Errorf("%w: session %q is %s, engine is %s", ErrModeMismatch, s.ID, s.Mode, e.Mode())
	}
	return nil
}
