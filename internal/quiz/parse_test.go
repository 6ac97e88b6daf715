package quiz_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/lovebird/internal/quiz"
)

const validScoreJSON = `{
  "questions": [
    {"id": "q1", "text": "Hello?", "category": "사교성",
     "options": [{"text": "yes", "score": 1}, {"text": "no", "score": -1}]}
  ],
  "results": [
    {"name": "Low", "scoreRange": [-1, -1]},
    {"name": "High", "scoreRange": [0, 1], "traits": ["bold"]}
  ]
}`

const validScoreYAML = `
questions:
  - id: q1
    text: Hello?
    category: 활동성
    options:
      - {text: "yes", score: 1}
      - {text: "no", score: -1}
results:
  - name: Any
    scoreRange: [-1, 1]
`

const validGraphJSON = `{
  "startNodeId": "q1",
  "nodes": {
    "q1": {"id": "q1", "type": "question", "text": "Go?",
           "options": [{"text": "go", "nextId": "r1"}]},
    "r1": {"id": "r1", "type": "result", "title": "Done"}
  }
}`

func configIssues(t *testing.T, err error) []quiz.Issue {
	t.Helper()
	var ce *quiz.ConfigError
	require.True(t, errors.As(err, &ce), "expected *quiz.ConfigError, got %v", err)
	return ce.Issues
}

func hasIssue(issues []quiz.Issue, pathPrefix, reasonPart string) bool {
	for _, is := range issues {
		if strings.HasPrefix(is.Path, pathPrefix) && strings.Contains(is.Reason, reasonPart) {
			return true
		}
	}
	return false
}

func TestParseScoreScenario(t *testing.T) {
	sc, err := quiz.ParseScoreScenario([]byte(validScoreJSON), quiz.FormatJSON)
	require.NoError(t, err)
	require.Len(t, sc.Questions, 1)
	assert.Equal(t, quiz.CategorySociability, sc.Questions[0].Category)
	assert.Equal(t, -1, sc.Questions[0].Options[1].Score)
	assert.Equal(t, quiz.ScoreRange{0, 1}, sc.Results[1].ScoreRange)
	assert.Equal(t, []string{"bold"}, sc.Results[1].Traits)
}

func TestParseScoreScenario_YAML(t *testing.T) {
	sc, err := quiz.ParseScoreScenario([]byte(validScoreYAML), quiz.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, quiz.CategoryActivity, sc.Questions[0].Category)
	assert.Equal(t, "Any", sc.Results[0].Name)
}

func TestParseScoreScenario_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		pathPrefix string
		reason     string
	}{
		{
			name: "three options",
			doc: `{"questions": [{"id": "q1", "text": "x", "category": "사교성",
				"options": [{"text": "a", "score": 1}, {"text": "b", "score": -1}, {"text": "c", "score": 0}]}],
				"results": [{"name": "r", "scoreRange": [0, 0]}]}`,
			pathPrefix: "questions.0.options",
			reason:     "maxItems",
		},
		{
			name: "one option",
			doc: `{"questions": [{"id": "q1", "text": "x", "category": "사교성",
				"options": [{"text": "a", "score": 1}]}],
				"results": [{"name": "r", "scoreRange": [0, 0]}]}`,
			pathPrefix: "questions.0.options",
			reason:     "minItems",
		},
		{
			name: "unknown category",
			doc: `{"questions": [{"id": "q1", "text": "x", "category": "speed",
				"options": [{"text": "a", "score": 1}, {"text": "b", "score": -1}]}],
				"results": [{"name": "r", "scoreRange": [0, 0]}]}`,
			pathPrefix: "questions.0.category",
			reason:     "",
		},
		{
			name: "unparsable range",
			doc: `{"questions": [{"id": "q1", "text": "x", "category": "사교성",
				"options": [{"text": "a", "score": 1}, {"text": "b", "score": -1}]}],
				"results": [{"name": "r", "scoreRange": [0, "high"]}]}`,
			pathPrefix: "results.0.scoreRange",
			reason:     "",
		},
		{
			name: "inverted range",
			doc: `{"questions": [{"id": "q1", "text": "x", "category": "사교성",
				"options": [{"text": "a", "score": 1}, {"text": "b", "score": -1}]}],
				"results": [{"name": "r", "scoreRange": [5, 1]}]}`,
			pathPrefix: "results[0].scoreRange",
			reason:     "greater than",
		},
		{
			name: "duplicate question id",
			doc: `{"questions": [
				{"id": "q1", "text": "x", "category": "사교성", "options": [{"text": "a", "score": 1}, {"text": "b", "score": -1}]},
				{"id": "q1", "text": "y", "category": "애착도", "options": [{"text": "a", "score": 1}, {"text": "b", "score": -1}]}],
				"results": [{"name": "r", "scoreRange": [0, 0]}]}`,
			pathPrefix: "questions[1].id",
			reason:     "duplicates",
		},
		{
			name:       "missing results",
			doc:        `{"questions": []}`,
			pathPrefix: "",
			reason:     "",
		},
		{
			name:       "not json",
			doc:        `{"questions": [`,
			pathPrefix: "",
			reason:     "not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quiz.ParseScoreScenario([]byte(tt.doc), quiz.FormatJSON)
			require.Error(t, err)
			issues := configIssues(t, err)
			assert.True(t, hasIssue(issues, tt.pathPrefix, tt.reason), "issues: %v", issues)
		})
	}
}

func TestParseScenario(t *testing.T) {
	sc, err := quiz.ParseScenario([]byte(validGraphJSON), quiz.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "q1", sc.StartNodeID)
	assert.Equal(t, quiz.NodeResult, sc.Nodes["r1"].Type)
	assert.Equal(t, "r1", sc.Nodes["q1"].Options[0].NextID)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		pathPrefix string
		reason     string
	}{
		{
			name:       "missing start node",
			doc:        `{"startNodeId": "nope", "nodes": {"r1": {"id": "r1", "type": "result"}}}`,
			pathPrefix: "startNodeId",
			reason:     "does not exist",
		},
		{
			name: "dangling nextId",
			doc: `{"startNodeId": "q1", "nodes": {
				"q1": {"id": "q1", "type": "question", "options": [{"text": "go", "nextId": "ghost"}]}}}`,
			pathPrefix: `nodes["q1"].options[0].nextId`,
			reason:     "ghost",
		},
		{
			name:       "key and id differ",
			doc:        `{"startNodeId": "a", "nodes": {"a": {"id": "b", "type": "result"}}}`,
			pathPrefix: `nodes["a"].id`,
			reason:     "does not match",
		},
		{
			name:       "unknown node type",
			doc:        `{"startNodeId": "a", "nodes": {"a": {"id": "a", "type": "maybe"}}}`,
			pathPrefix: "nodes.a.type",
			reason:     "",
		},
		{
			name:       "question without options",
			doc:        `{"startNodeId": "a", "nodes": {"a": {"id": "a", "type": "question"}}}`,
			pathPrefix: `nodes["a"].options`,
			reason:     "at least one option",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quiz.ParseScenario([]byte(tt.doc), quiz.FormatJSON)
			require.Error(t, err)
			issues := configIssues(t, err)
			assert.True(t, hasIssue(issues, tt.pathPrefix, tt.reason), "issues: %v", issues)
		})
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &quiz.ConfigError{Document: "score scenario", Issues: []quiz.Issue{
		{Path: "questions[0].id", Reason: "is required"},
		{Reason: "at least one result is required"},
	}}
	msg := err.Error()
	assert.Contains(t, msg, "invalid score scenario: 2 issues")
	assert.Contains(t, msg, "1. questions[0].id: is required")
	assert.Contains(t, msg, "2. at least one result is required")
}

func TestNewEngine(t *testing.T) {
	e, err := quiz.NewEngine(quiz.ModeGraph, []byte(validGraphJSON), quiz.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, quiz.ModeGraph, e.Mode())

	e, err = quiz.NewEngine(quiz.ModeScore, []byte(validScoreJSON), quiz.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, quiz.ModeScore, e.Mode())

	_, err = quiz.NewEngine("trivia", []byte(validScoreJSON), quiz.FormatJSON)
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, quiz.FormatYAML, quiz.FormatFromPath("birds.yaml"))
	assert.Equal(t, quiz.FormatYAML, quiz.FormatFromPath("BIRDS.YML"))
	assert.Equal(t, quiz.FormatJSON, quiz.FormatFromPath("birds.json"))
	assert.Equal(t, quiz.FormatJSON, quiz.FormatFromPath("birds"))
}

func TestUnreachable(t *testing.T) {
	sc := loopScenario()
	sc.Nodes["island"] = &quiz.Node{ID: "island", Type: quiz.NodeResult}
	assert.Equal(t, []string{"island"}, quiz.Unreachable(sc))
}
