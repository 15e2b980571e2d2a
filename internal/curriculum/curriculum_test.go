package curriculum

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDocumentsLoad(t *testing.T) {
	c, err := Load(Paths{}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, c.Syllabus.Topics)
	assert.NotEmpty(t, c.Traps.Traps)
	assert.NotEmpty(t, c.Rules.Rules)

	top, ok := c.Syllabus.Topic("recursion")
	require.True(t, ok)
	assert.Equal(t, 1, top.Chapter)
}

func TestSyllabusComposition(t *testing.T) {
	s := Default().Syllabus
	assert.Equal(t, 1, s.MaxConcepts("easy"))
	assert.Equal(t, 2, s.MaxConcepts("medium"))
	assert.Equal(t, 3, s.MaxConcepts("hard"))
	assert.Equal(t, 1, s.MaxConcepts("unknown"))
	assert.Equal(t, 2, s.MaxHops("hard"))
}

func TestLoad_MissingOverrideFallsBack(t *testing.T) {
	c, err := Load(Paths{Syllabus: filepath.Join(t.TempDir(), "missing.json")}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, c.Syllabus.Topics)
}

func TestLoad_InvalidOverrideFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traps.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": "v1.0.0", "traps": [{"strategy": {}}]}`), 0o644))

	c, err := Load(Paths{Traps: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Traps.Traps, c.Traps.Traps)
}

func TestLoad_Override(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	doc := `{"version": "1.2.0", "rules": [{"concept": "loops", "forbidden_before": 3, "functions": [{"id": "while", "snippet": "while (x) {}"}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(Paths{Rules: path}, nil)
	require.NoError(t, err)
	require.Len(t, c.Rules.Rules, 1)
	assert.Equal(t, "loops", c.Rules.Rules[0].Concept)
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, checkVersion("v1.0.0"))
	assert.NoError(t, checkVersion("1.4.2"))
	assert.Error(t, checkVersion("v2.0.0"))
	assert.Error(t, checkVersion("banana"))
	assert.Error(t, checkVersion(""))
}

func TestValidateSyllabus(t *testing.T) {
	s := &Syllabus{
		Topics:        []Topic{{ID: "a", Chapter: 1}, {ID: "a", Chapter: 1}},
		Relationships: []Relationship{{Source: "a", Target: "zzz"}},
	}
	err := validateSyllabus(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate topic "a"`)
	assert.Contains(t, err.Error(), `"zzz" is not a topic`)
}

func TestTrapSelection(t *testing.T) {
	traps := Default().Traps
	rng := rand.New(rand.NewPCG(1, 2))

	tr := traps.Select(rng, []string{"lists"})
	assert.True(t, tr.Concept == "lists" || tr.Concept == "higher_order_functions",
		"unexpected trap %q", tr.Concept)

	assert.Equal(t, GenericTrap, traps.Select(rng, []string{"evaluator"}))
}

func TestRulesForbidden(t *testing.T) {
	rules := Default().Rules
	var concepts []string
	for _, r := range rules.Forbidden(1) {
		concepts = append(concepts, r.Concept)
	}
	assert.Contains(t, concepts, "lists")
	assert.Contains(t, concepts, "loops")
	assert.NotContains(t, concepts, "recursion")

	assert.Empty(t, rules.Forbidden(4))
}
