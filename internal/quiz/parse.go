package quiz

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a scenario document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

//go:embed schema/*.json
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schemas    map[Mode]*jsonschema.Schema
	schemaErr  error
)

func compileSchemas() (map[Mode]*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		out := make(map[Mode]*jsonschema.Schema, 2)
		for mode, file := range map[Mode]string{ModeScore: "score.json", ModeGraph: "graph.json"} {
			raw, err := schemaFS.ReadFile("schema/" + file)
			if err != nil {
				schemaErr = fmt.Errorf("reading schema %s: %w", file, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				schemaErr = fmt.Errorf("parsing schema %s: %w", file, err)
				return
			}
			url := "schema://lovebird/" + file
			if err := c.AddResource(url, doc); err != nil {
				schemaErr = fmt.Errorf("adding schema %s: %w", file, err)
				return
			}
			sch, err := c.Compile(url)
			if err != nil {
				schemaErr = fmt.Errorf("compiling schema %s: %w", file, err)
				return
			}
			out[mode] = sch
		}
		schemas = out
	})
	return schemas, schemaErr
}

// ParseScoreScenario decodes and validates a score scenario document.
// Invalid content is reported as a *ConfigError.
func ParseScoreScenario(data []byte, f Format) (*ScoreScenario, error) {
	raw, err := checkDocument(data, f, ModeScore, "score scenario")
	if err != nil {
		return nil, err
	}
	var sc ScoreScenario
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, &ConfigError{Document: "score scenario", Issues: []Issue{{Reason: err.Error()}}}
	}
	if err := ValidateScoreScenario(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ParseScenario decodes and validates a graph scenario document.
// Invalid content is reported as a *ConfigError.
func ParseScenario(data []byte, f Format) (*Scenario, error) {
	raw, err := checkDocument(data, f, ModeGraph, "graph scenario")
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, &ConfigError{Document: "graph scenario", Issues: []Issue{{Reason: err.Error()}}}
	}
	if err := ValidateScenario(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// NewEngine parses a document for mode and returns the matching engine.
func NewEngine(mode Mode, data []byte, f Format) (Engine, error) {
	switch mode {
	case ModeScore:
		sc, err := ParseScoreScenario(data, f)
		if err != nil {
			return nil, err
		}
		return NewScoreEngine(sc), nil
	case ModeGraph:
		sc, err := ParseScenario(data, f)
		if err != nil {
			return nil, err
		}
		return NewGraphEngine(sc), nil
	}
	return nil, fmt.Errorf("unknown quiz mode %q", mode)
}

// checkDocument normalizes data to JSON and validates it against the
// schema for mode.
func checkDocument(data []byte, f Format, mode Mode, doc string) ([]byte, error) {
	raw, err := toJSON(data, f)
	if err != nil {
		return nil, &ConfigError{Document: doc, Issues: []Issue{{Reason: err.Error()}}}
	}

	compiled, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, &ConfigError{Document: doc, Issues: []Issue{{Reason: err.Error()}}}
	}
	if err := compiled[mode].Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("validating %s: %w", doc, err)
		}
		return nil, &ConfigError{Document: doc, Issues: schemaIssues(ve)}
	}
	return raw, nil
}

func toJSON(data []byte, f Format) ([]byte, error) {
	switch f {
	case FormatJSON, "":
		if !json.Valid(data) {
			return nil, errors.New("document is not valid JSON")
		}
		return data, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("converting yaml to json: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown document format %q", f)
}

var schemaPrinter = message.NewPrinter(language.English)

// schemaIssues flattens a validation error tree into its leaf failures.
func schemaIssues(ve *jsonschema.ValidationError) []Issue {
	var out []Issue
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, Issue{
				Path:   pointerPath(e.InstanceLocation),
				Reason: e.ErrorKind.LocalizedString(schemaPrinter),
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return out
}

// pointerPath renders instance location tokens as a dotted path.
func pointerPath(tokens []string) string {
	return strings.Join(tokens, ".")
}
