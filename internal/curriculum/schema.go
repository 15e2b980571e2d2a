package curriculum

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

var versionProperty = map[string]any{"type": "string"}

var syllabusSchema = map[string]any{
	"type":     "object",
	"required": []any{"version", "topics", "relationships"},
	"properties": map[string]any{
		"version": versionProperty,
		"topics": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "chapter"},
				"properties": map[string]any{
					"id":         map[string]any{"type": "string", "minLength": 1},
					"chapter":    map[string]any{"type": "integer", "minimum": 1, "maximum": 4},
					"difficulty": map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
					"desc":       map[string]any{"type": "string"},
				},
			},
		},
		"relationships": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"source", "target"},
				"properties": map[string]any{
					"source": map[string]any{"type": "string"},
					"target": map[string]any{"type": "string"},
				},
			},
		},
		"composition_rules": map[string]any{"type": "object"},
	},
}

var trapsSchema = map[string]any{
	"type":     "object",
	"required": []any{"version", "traps"},
	"properties": map[string]any{
		"version": versionProperty,
		"traps": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"concept", "strategy"},
				"properties": map[string]any{
					"id":      map[string]any{"type": "string"},
					"concept": map[string]any{"type": "string", "minLength": 1},
					"related_concept_ids": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"strategy": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"instruction":     map[string]any{"type": "string"},
							"question_intent": map[string]any{"type": "string"},
							"distractor_logic": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						},
					},
					"trigger": map[string]any{"type": "object"},
				},
			},
		},
	},
}

var rulesSchema = map[string]any{
	"type":     "object",
	"required": []any{"version", "rules"},
	"properties": map[string]any{
		"version": versionProperty,
		"rules": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"concept", "functions"},
				"properties": map[string]any{
					"concept":          map[string]any{"type": "string", "minLength": 1},
					"forbidden_before": map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
					"functions": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"id", "snippet"},
						},
					},
				},
			},
		},
	},
}

// compiled caches compiled document schemas by name.
var compiled sync.Map // map[string]*jsonschema.Schema

func compileSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(name); ok {
		return s.(*jsonschema.Schema), nil
	}

	// Round-trip so the compiler sees plain JSON values ([]any, float64).
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://curriculum/%s.json", name)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	compiled.Store(name, s)
	return s, nil
}

// validateDocument checks raw JSON against the named schema and verifies the
// document version is a supported semantic version.
func validateDocument(name string, def map[string]any, raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compileSchema(name, def)
	if err != nil {
		return fmt.Errorf("schema %s: %w", name, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if m, ok := doc.(map[string]any); ok {
		v, _ := m["version"].(string)
		if err := checkVersion(v); err != nil {
			return err
		}
	}
	return nil
}

// SupportedMajor is the document major version this build understands.
const SupportedMajor = "v1"

func checkVersion(v string) error {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid document version %q", v)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("unsupported document version %s (want %s.x)", v, SupportedMajor)
	}
	return nil
}
