// Package scenarios holds the built-in quiz documents and loads the one a
// process serves.
package scenarios

import (
	"embed"
	"fmt"
	"os"

	"github.com/playperu/lovebird/internal/quiz"
)

//go:embed score.json graph.json
var builtin embed.FS

// Builtin returns the embedded document for mode.
func Builtin(mode quiz.Mode) ([]byte, error) {
	switch mode {
	case quiz.ModeScore:
		return builtin.ReadFile("score.json")
	case quiz.ModeGraph:
		return builtin.ReadFile("graph.json")
	}
	return nil, fmt.Errorf("unknown quiz mode %q", mode)
}

// Load parses and validates the document for mode and returns its engine.
// An empty path selects the built-in document.
func Load(mode quiz.Mode, path string) (quiz.Engine, error) {
	var (
		data   []byte
		err    error
		format = quiz.FormatJSON
	)
	if path == "" {
		data, err = Builtin(mode)
	} else {
		data, err = os.ReadFile(path)
		format = quiz.FormatFromPath(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s scenario: %w", mode, err)
	}
	return quiz.NewEngine(mode, data, format)
}
