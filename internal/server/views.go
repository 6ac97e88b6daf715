package server

import "github.com/playperu/lovebird/internal/quiz"

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// QuizInfoResponse describes the quiz this process serves.
type QuizInfoResponse struct {
	Mode       string   `json:"mode"`
	Title      string   `json:"title,omitempty"`
	Questions  int      `json:"questions,omitempty"`
	Results    int      `json:"results"`
	Nodes      int      `json:"nodes,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

type SessionResponse struct {
	ID   string       `json:"id"`
	View ViewResponse `json:"view"`
}

type AnswerRequest struct {
	Option *int `json:"option" required:"true"`
}

// ViewResponse is the wire form of quiz.View. Score is set only for
// score-mode sessions.
type ViewResponse struct {
	Kind     string        `json:"kind"`
	Question *QuestionView `json:"question,omitempty"`
	Result   *ResultView   `json:"result,omitempty"`
	NodeID   string        `json:"nodeId,omitempty"`
	Score    *int          `json:"score,omitempty"`
}

type QuestionView struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	ImageURL string       `json:"imageUrl,omitempty"`
	Category string       `json:"category,omitempty"`
	Number   int          `json:"number,omitempty"`
	Total    int          `json:"total,omitempty"`
	Options  []OptionView `json:"options"`
}

type OptionView struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type ResultView struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name"`
	Summary       string   `json:"summary,omitempty"`
	Description   string   `json:"description,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Traits        []string `json:"traits,omitempty"`
	Compatibility []string `json:"compatibility,omitempty"`
	ScoreRange    *[2]int  `json:"scoreRange,omitempty"`
}

func newViewResponse(mode quiz.Mode, v quiz.View) ViewResponse {
	resp := ViewResponse{Kind: string(v.Kind)}
	if mode == quiz.ModeScore && v.Kind != quiz.ViewNotStarted {
		score := v.Score
		resp.Score = &score
	}

	switch v.Kind {
	case quiz.ViewQuestion:
		switch {
		case v.Node != nil:
			resp.Question = nodeQuestion(v.Node)
		case v.Question != nil:
			resp.Question = scoreQuestion(v.Question, v.Number, v.Total)
		}
	case quiz.ViewResult:
		switch {
		case v.Node != nil:
			resp.Result = &ResultView{
				ID:          v.Node.ID,
				Name:        v.Node.Title,
				Description: v.Node.Description,
				ImageURL:    v.Node.ImageURL,
			}
		case v.Result != nil:
			r := [2]int(v.Result.ScoreRange)
			resp.Result = &ResultView{
				Name:          v.Result.Name,
				Summary:       v.Result.Summary,
				Description:   v.Result.Description,
				ImageURL:      v.Result.ImageURL,
				Traits:        v.Result.Traits,
				Compatibility: v.Result.Compatibility,
				ScoreRange:    &r,
			}
		}
	case quiz.ViewNotFound:
		resp.NodeID = v.NodeID
	}
	return resp
}

func nodeQuestion(n *quiz.Node) *QuestionView {
	q := &QuestionView{ID: n.ID, Text: n.Text, ImageURL: n.ImageURL}
	q.Options = make([]OptionView, len(n.Options))
	for i, o := range n.Options {
		q.Options[i] = OptionView{Index: i, Text: o.Text}
	}
	return q
}

func scoreQuestion(sq *quiz.Question, number, total int) *QuestionView {
	q := &QuestionView{
		ID:       sq.ID,
		Text:     sq.Text,
		ImageURL: sq.ImageURL,
		Category: string(sq.Category),
		Number:   number,
		Total:    total,
	}
	q.Options = make([]OptionView, len(sq.Options))
	for i, o := range sq.Options {
		q.Options[i] = OptionView{Index: i, Text: o.Text}
	}
	return q
}
