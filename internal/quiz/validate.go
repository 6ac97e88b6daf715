package quiz

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Issue is a single problem found in a scenario document.
type Issue struct {
	Path   string // location in the document, e.g. "questions[3].category"
	Reason string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Reason
	}
	return i.Path + ": " + i.Reason
}

// ConfigError reports every issue found while loading a scenario
// document. A process must not serve sessions from a document that
// produced one.
type ConfigError struct {
	Document string
	Issues   []Issue
}

func (e *ConfigError) Error() string {
	name := e.Document
	if name == "" {
		name = "scenario"
	}
	if len(e.Issues) == 1 {
		return fmt.Sprintf("invalid %s: %s", name, e.Issues[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s: %d issues:", name, len(e.Issues))
	for i, is := range e.Issues {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, is)
	}
	return b.String()
}

type issues []Issue

func (is *issues) add(path, format string, args ...any) {
	*is = append(*is, Issue{Path: path, Reason: fmt.Sprintf(format, args...)})
}

func (is issues) err(doc string) error {
	if len(is) == 0 {
		return nil
	}
	return &ConfigError{Document: doc, Issues: is}
}

// ValidateScenario checks the graph invariants: the start node exists,
// every map key matches its node id and every nextId resolves.
func ValidateScenario(sc *Scenario) error {
	var is issues
	if sc.StartNodeID == "" {
		is.add("startNodeId", "is required")
	} else if _, ok := sc.Nodes[sc.StartNodeID]; !ok {
		is.add("startNodeId", "node %q does not exist", sc.StartNodeID)
	}
	if len(sc.Nodes) == 0 {
		is.add("nodes", "at least one node is required")
	}

	for _, key := range slices.Sorted(maps.Keys(sc.Nodes)) {
		node := sc.Nodes[key]
		path := fmt.Sprintf("nodes[%q]", key)
		if node == nil {
			is.add(path, "is null")
			continue
		}
		if node.ID != key {
			is.add(path+".id", "%q does not match its key", node.ID)
		}
		switch node.Type {
		case NodeQuestion:
			if len(node.Options) == 0 {
				is.add(path+".options", "a question needs at least one option")
			}
		case NodeResult:
			if len(node.Options) > 0 {
				is.add(path+".options", "a result node cannot have options")
			}
		default:
			is.add(path+".type", "unknown node type %q", node.Type)
		}
		for i, opt := range node.Options {
			optPath := fmt.Sprintf("%s.options[%d]", path, i)
			if strings.TrimSpace(opt.Text) == "" {
				is.add(optPath+".text", "is required")
			}
			if _, ok := sc.Nodes[opt.NextID]; !ok {
				is.add(optPath+".nextId", "node %q does not exist", opt.NextID)
			}
		}
	}
	return is.err("graph scenario")
}

// ValidateScoreScenario checks the score invariants. Gaps between result
// ranges are not an error; see Unresolvable.
func ValidateScoreScenario(sc *ScoreScenario) error {
	var is issues
	if len(sc.Questions) == 0 {
		is.add("questions", "at least one question is required")
	}
	seen := make(map[string]int, len(sc.Questions))
	for i, q := range sc.Questions {
		path := fmt.Sprintf("questions[%d]", i)
		if q.ID == "" {
			is.add(path+".id", "is required")
		} else if prev, dup := seen[q.ID]; dup {
			is.add(path+".id", "%q duplicates questions[%d]", q.ID, prev)
		} else {
			seen[q.ID] = i
		}
		if strings.TrimSpace(q.Text) == "" {
			is.add(path+".text", "is required")
		}
		if !q.Category.Valid() {
			is.add(path+".category", "unknown category %q", q.Category)
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt.Text) == "" {
				is.add(fmt.Sprintf("%s.options[%d].text", path, j), "is required")
			}
		}
	}

	if len(sc.Results) == 0 {
		is.add("results", "at least one result is required")
	}
	for i, r := range sc.Results {
		path := fmt.Sprintf("results[%d]", i)
		if strings.TrimSpace(r.Name) == "" {
			is.add(path+".name", "is required")
		}
		if r.ScoreRange.Min() > r.ScoreRange.Max() {
			is.add(path+".scoreRange", "min %d is greater than max %d", r.ScoreRange.Min(), r.ScoreRange.Max())
		}
	}
	return is.err("score scenario")
}

// MaxReachableTotals bounds how many distinct totals ReachableTotals
// tracks. Option scores have no fixed magnitude, so the set can double
// with every question.
const MaxReachableTotals = 1 << 16

// ErrTooManyTotals is returned when a scenario can produce more than
// MaxReachableTotals distinct totals.
var ErrTooManyTotals = errors.New("too many reachable totals to check")

// ReachableTotals returns every total a completed session can produce,
// in ascending order.
func ReachableTotals(sc *ScoreScenario) ([]int, error) {
	totals := map[int]struct{}{0: {}}
	for _, q := range sc.Questions {
		next := make(map[int]struct{}, min(len(totals)*2, MaxReachableTotals))
		for t := range totals {
			for _, opt := range q.Options {
				next[t+opt.Score] = struct{}{}
			}
			if len(next) > MaxReachableTotals {
				return nil, fmt.Errorf("%w: more than %d", ErrTooManyTotals, MaxReachableTotals)
			}
		}
		totals = next
	}
	return slices.Sorted(maps.Keys(totals)), nil
}

// Unresolvable returns the reachable totals that resolve to no result,
// not even through the [0,0] fallback.
func Unresolvable(sc *ScoreScenario) ([]int, error) {
	totals, err := ReachableTotals(sc)
	if err != nil {
		return nil, err
	}
	var out []int
	for _, t := range totals {
		if _, ok := sc.Resolve(t); !ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// Unreachable returns the ids of graph nodes that cannot be reached from
// the start node.
func Unreachable(sc *Scenario) []string {
	seen := map[string]bool{}
	queue := []string{sc.StartNodeID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		node, ok := sc.Nodes[id]
		if !ok || node == nil {
			continue
		}
		seen[id] = true
		for _, opt := range node.Options {
			queue = append(queue, opt.NextID)
		}
	}
	var out []string
	for _, id := range slices.Sorted(maps.Keys(sc.Nodes)) {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}
