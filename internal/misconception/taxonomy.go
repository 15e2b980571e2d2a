package misconception

import (
	"sort"
	"strings"
)

// Category groups misconceptions that share a root cause.
type Category string

const (
	CategoryOffByOne   Category = "off_by_one"
	CategoryProcess    Category = "process"
	CategoryComplexity Category = "complexity"
	CategoryList       Category = "list"
	CategoryHOF        Category = "hof"
	CategoryScope      Category = "scope"
	CategoryLazy       Category = "lazy"
	CategoryMutation   Category = "mutation"
	// CategoryEvaluation holds catch-all labels that do not point at a
	// specific conceptual error.
	CategoryEvaluation Category = "evaluation"
)

// categoryKeywords recognise free-form labels, e.g. ones supplied by trap
// documents, as belonging to a known category.
var categoryKeywords = map[Category][]string{
	CategoryOffByOne:   {"off_by_one", "fence_post", "boundary"},
	CategoryProcess:    {"process", "recursive_vs_iterative", "tail_call"},
	CategoryComplexity: {"time_space", "complexity", "big_o"},
	CategoryList:       {"null", "empty_list", "pair_count"},
	CategoryHOF:        {"map_filter", "accumulate", "argument_order"},
	CategoryScope:      {"scope", "environment", "frame", "shadowing"},
	CategoryLazy:       {"lazy", "eager", "stream", "thunk"},
	CategoryMutation:   {"mutation", "shared", "structural_sharing"},
}

// Misconception describes a wrong mental model a distractor targets.
type Misconception struct {
	ID          string
	Category    Category
	Label       string
	Description string
}

// registry is the package-level misconception registry, keyed by ID.
var registry map[string]*Misconception

var byCategory map[Category][]*Misconception

func init() {
	registry = make(map[string]*Misconception, len(seedMisconceptions))
	byCategory = make(map[Category][]*Misconception)
	for i := range seedMisconceptions {
		m := &seedMisconceptions[i]
		registry[m.ID] = m
		byCategory[m.Category] = append(byCategory[m.Category], m)
	}
}

// Get returns a misconception by ID, or nil if not found.
func Get(id string) *Misconception {
	return registry[id]
}

// ByCategory returns the misconceptions in a category.
func ByCategory(c Category) []*Misconception {
	return byCategory[c]
}

// All returns every misconception sorted by ID.
func All() []*Misconception {
	out := make([]*Misconception, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Classify maps a label to its category, first by registry ID and then by
// keyword. The second return is false when nothing matched.
func Classify(label string) (Category, bool) {
	if m := registry[label]; m != nil {
		return m.Category, true
	}
	l := strings.ToLower(label)
	for _, c := range []Category{
		CategoryOffByOne, CategoryProcess, CategoryComplexity, CategoryList,
		CategoryHOF, CategoryScope, CategoryLazy, CategoryMutation,
	} {
		for _, kw := range categoryKeywords[c] {
			if strings.Contains(l, kw) {
				return c, true
			}
		}
	}
	return "", false
}

// Known reports whether a label names a specific, recognised misconception.
// Catch-all evaluation labels are not considered known.
func Known(label string) bool {
	c, ok := Classify(label)
	return ok && c != CategoryEvaluation
}

// Generic reports whether a label carries no misconception information.
func Generic(label string) bool {
	return label == GenericError || label == ArithmeticError || label == ""
}

// Describe returns the description for a label, or "" if unknown.
func Describe(label string) string {
	if m := registry[label]; m != nil {
		return m.Description
	}
	return ""
}
