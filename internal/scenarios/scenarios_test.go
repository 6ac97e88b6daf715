package scenarios_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/lovebird/internal/quiz"
	"github.com/playperu/lovebird/internal/scenarios"
)

func TestBuiltinScore(t *testing.T) {
	e, err := scenarios.Load(quiz.ModeScore, "")
	require.NoError(t, err)

	sc := e.(*quiz.ScoreEngine).Scenario()
	assert.Len(t, sc.Questions, 10)
	gaps, err := quiz.Unresolvable(sc)
	require.NoError(t, err)
	assert.Empty(t, gaps, "every reachable total should resolve")
}

func TestBuiltinGraph(t *testing.T) {
	e, err := scenarios.Load(quiz.ModeGraph, "")
	require.NoError(t, err)

	sc := e.(*quiz.GraphEngine).Scenario()
	assert.Empty(t, quiz.Unreachable(sc))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quiz.yaml")
	doc := `
startNodeId: q
nodes:
  q:
    id: q
    type: question
    text: Ready?
    options:
      - text: Go
        nextId: r
  r:
    id: r
    type: result
    title: Finished
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	e, err := scenarios.Load(quiz.ModeGraph, path)
	require.NoError(t, err)
	assert.Equal(t, quiz.ModeGraph, e.Mode())
}

func TestLoadErrors(t *testing.T) {
	_, err := scenarios.Load(quiz.ModeScore, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"startNodeId": "x", "nodes": {}}`), 0o644))
	_, err = scenarios.Load(quiz.ModeGraph, path)
	var ce *quiz.ConfigError
	assert.ErrorAs(t, err, &ce)

	_, err = scenarios.Builtin("trivia")
	assert.Error(t, err)
}
