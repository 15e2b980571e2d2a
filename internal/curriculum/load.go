package curriculum

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

//go:embed data/*.json
var defaults embed.FS

const (
	syllabusFile = "data/syllabus.json"
	trapsFile    = "data/traps.json"
	rulesFile    = "data/operational_rules.json"
)

// Paths locates override documents on disk. Empty paths use the built-in
// documents.
type Paths struct {
	Syllabus string
	Traps    string
	Rules    string
}

// Curriculum holds the three static lookup documents, loaded once at start-up
// and never mutated afterwards.
type Curriculum struct {
	Syllabus *Syllabus
	Traps    *TrapSet
	Rules    *RuleSet
}

// Default returns the built-in curriculum.
func Default() *Curriculum {
	c, err := Load(Paths{}, nil)
	if err != nil {
		// The embedded documents are covered by tests.
		panic(fmt.Sprintf("curriculum: built-in documents invalid: %v", err))
	}
	return c
}

// Load reads the documents named in paths. A document that is missing or
// fails validation is replaced by its built-in default and a warning is
// logged; only a broken built-in document is an error.
func Load(paths Paths, logger *slog.Logger) (*Curriculum, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var c Curriculum
	var syl Syllabus
	if err := loadDocument("syllabus", syllabusSchema, paths.Syllabus, syllabusFile, &syl, logger); err != nil {
		return nil, err
	}
	var traps TrapSet
	if err := loadDocument("traps", trapsSchema, paths.Traps, trapsFile, &traps, logger); err != nil {
		return nil, err
	}
	var rules RuleSet
	if err := loadDocument("rules", rulesSchema, paths.Rules, rulesFile, &rules, logger); err != nil {
		return nil, err
	}

	if err := validateSyllabus(&syl); err != nil {
		return nil, fmt.Errorf("syllabus: %w", err)
	}

	c.Syllabus = &syl
	c.Traps = &traps
	c.Rules = &rules
	return &c, nil
}

func loadDocument(name string, schema map[string]any, path, builtin string, out any, logger *slog.Logger) error {
	if path != "" {
		raw, err := readOverride(name, schema, path)
		if err == nil {
			if err = json.Unmarshal(raw, out); err == nil {
				return nil
			}
		}
		logger.Warn("using built-in document", "document", name, "path", path, "error", err)
	}

	raw, err := defaults.ReadFile(builtin)
	if err != nil {
		return fmt.Errorf("read built-in %s: %w", name, err)
	}
	if err := validateDocument(name, schema, raw); err != nil {
		return fmt.Errorf("built-in %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode built-in %s: %w", name, err)
	}
	return nil
}

func readOverride(name string, schema map[string]any, path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := validateDocument(name, schema, raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}
