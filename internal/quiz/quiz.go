// Package quiz defines the lovebird quiz data models and the traversal
// engines that turn a sequence of answers into a result.
// Apart from load-time parsing it has no dependencies outside the standard library.
package quiz

import "errors"

// Mode selects which of the two data models a process serves.
type Mode string

const (
	ModeGraph Mode = "graph"
	ModeScore Mode = "score"
)

func (m Mode) Valid() bool {
	return m == ModeGraph || m == ModeScore
}

var (
	// ErrStartNodeMissing is returned by GraphEngine.Start when the scenario's
	// start node is absent from its node map.
	ErrStartNodeMissing = errors.New("start node not found")

	// ErrNotInProgress is returned when an option is selected while the
	// session is not showing a question.
	ErrNotInProgress = errors.New("session is not on a question")

	// ErrNothingToUndo is returned by Back when no answer has been given yet.
	ErrNothingToUndo = errors.New("no answer to undo")

	// ErrModeMismatch is returned when a session created for one mode is
	// handed to the engine of the other.
	ErrModeMismatch = errors.New("session mode does not match engine")
)

// --- Graph model ---

type NodeType string

const (
	NodeQuestion NodeType = "question"
	NodeResult   NodeType = "result"
)

type Option struct {
	Text   string `json:"text"`
	NextID string `json:"nextId"`
}

type Node struct {
	ID          string   `json:"id"`
	Type        NodeType `json:"type"`
	Text        string   `json:"text,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Options     []Option `json:"options,omitempty"`
}

// Scenario is a graph quiz. Nodes may form cycles.
type Scenario struct {
	Title       string           `json:"title,omitempty"`
	StartNodeID string           `json:"startNodeId"`
	Nodes       map[string]*Node `json:"nodes"`
}

// --- Score model ---

// Category is one of the four fixed question categories. Values are the
// tags used in authored documents.
type Category string

const (
	CategorySociability  Category = "사교성"
	CategoryActivity     Category = "활동성"
	CategoryIntelligence Category = "지능/신중함"
	CategoryAttachment   Category = "애착도"
)

var Categories = []Category{
	CategorySociability,
	CategoryActivity,
	CategoryIntelligence,
	CategoryAttachment,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type ScoreOption struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type Question struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	ImageURL string         `json:"imageUrl,omitempty"`
	Options  [2]ScoreOption `json:"options"`
	Category Category       `json:"category"`
}

// ScoreRange is an inclusive [min, max] pair.
type ScoreRange [2]int

func (r ScoreRange) Min() int { return r[0] }
func (r ScoreRange) Max() int { return r[1] }

func (r ScoreRange) Contains(score int) bool {
	return score >= r[0] && score <= r[1]
}

type BirdResult struct {
	Name          string     `json:"name"`
	ScoreRange    ScoreRange `json:"scoreRange"`
	Summary       string     `json:"summary"`
	Description   string     `json:"description"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	Traits        []string   `json:"traits"`
	Compatibility []string   `json:"compatibility"`
}

// ScoreScenario is an additive-scoring quiz. Question order is the
// presentation order; result order decides overlapping ranges.
type ScoreScenario struct {
	Title     string       `json:"title,omitempty"`
	Questions []Question   `json:"questions"`
	Results   []BirdResult `json:"results"`
}

// Resolve returns the first result, in declared order, whose range
// contains score. When none does, a result with range exactly [0,0] is
// used. ok is false when neither exists.
func (sc *ScoreScenario) Resolve(score int) (res *BirdResult, ok bool) {
	return ResolveResult(sc.Results, score)
}

func ResolveResult(results []BirdResult, score int) (*BirdResult, bool) {
	for i := range results {
		if results[i].ScoreRange.Contains(score) {
			return &results[i], true
		}
	}
	for i := range results {
		if results[i].ScoreRange == (ScoreRange{0, 0}) {
			return &results[i], true
		}
	}
	return nil, false
}
