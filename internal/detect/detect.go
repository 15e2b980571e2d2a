package detect

import (
	"regexp"
	"sort"
)

// ConceptDetector decides whether source text exercises a concept.
type ConceptDetector interface {
	Name() string
	Detect(code string) bool
}

// Matcher is a single textual predicate over source code.
type Matcher interface {
	Match(code string) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(code string) bool

func (f MatcherFunc) Match(code string) bool { return f(code) }

// Regexp matches when any of the patterns is found.
func Regexp(patterns ...string) Matcher {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return MatcherFunc(func(code string) bool {
		for _, re := range res {
			if re.MatchString(code) {
				return true
			}
		}
		return false
	})
}

// All matches when every matcher matches.
func All(ms ...Matcher) Matcher {
	return MatcherFunc(func(code string) bool {
		for _, m := range ms {
			if !m.Match(code) {
				return false
			}
		}
		return true
	})
}

// Rule is the table entry for one concept: a required pattern, an optional
// forbidden pattern and the weight used when scoring concept validity.
type Rule struct {
	Concept   string
	Weight    float64
	Required  Matcher
	Forbidden Matcher
}

func (r Rule) Name() string { return r.Concept }

// Detect reports whether the required pattern is present and the forbidden
// one absent.
func (r Rule) Detect(code string) bool {
	if !r.Required.Match(code) {
		return false
	}
	return r.Forbidden == nil || !r.Forbidden.Match(code)
}

// HasRequired reports whether the required pattern is present.
func (r Rule) HasRequired(code string) bool { return r.Required.Match(code) }

// HasForbidden reports whether the forbidden pattern is present.
func (r Rule) HasForbidden(code string) bool {
	return r.Forbidden != nil && r.Forbidden.Match(code)
}

// Recursion matches code that defines a function calling itself.
var Recursion Matcher = MatcherFunc(func(code string) bool {
	return len(RecursiveFunctions(code)) > 0
})

var accumulatorPattern = regexp.MustCompile(`,\s*\w+\s*[+\-*/]`)

// Accumulator matches a self call that threads an updated accumulator
// argument, the shape of an iterative process.
var Accumulator Matcher = MatcherFunc(func(code string) bool {
	for _, fn := range RecursiveFunctions(code) {
		call := CallPattern(fn.Name)
		for _, loc := range call.FindAllStringIndex(fn.Body, -1) {
			args := fn.Body[loc[1]:statementEnd(fn.Body, loc[1])]
			if accumulatorPattern.MatchString(args) {
				return true
			}
		}
	}
	return false
})

var rules = map[string]Rule{
	"recursion": {
		Concept:  "recursion",
		Weight:   1.0,
		Required: Recursion,
	},
	"recursion_process": {
		Concept:   "recursion_process",
		Weight:    1.0,
		Required:  Recursion,
		Forbidden: Accumulator,
	},
	"iterative_process": {
		Concept:  "iterative_process",
		Weight:   1.0,
		Required: All(Recursion, Accumulator),
	},
	"lists": {
		Concept:  "lists",
		Weight:   1.0,
		Required: Regexp(`\b(list|pair|head|tail|is_null)\s*\(`),
	},
	"list_library": {
		Concept:  "list_library",
		Weight:   1.0,
		Required: Regexp(`\b(map|filter|accumulate|append|reverse|member|remove)\s*\(`),
	},
	"higher_order_functions": {
		Concept:  "higher_order_functions",
		Weight:   1.0,
		Required: Regexp(`=>.*=>`, `\w+\s*\(\s*\(?\s*\w+(\s*,\s*\w+)*\s*\)?\s*=>`),
	},
	"orders_of_growth": {
		Concept:  "orders_of_growth",
		Weight:   0.8,
		Required: Recursion,
	},
	"streams": {
		Concept:  "streams",
		Weight:   1.0,
		Required: Regexp(`\b(stream|stream_tail|stream_map|stream_filter)\b`),
	},
	"pairs": {
		Concept:  "pairs",
		Weight:   1.0,
		Required: Regexp(`\b(pair|head|tail|is_pair)\s*\(`),
	},
	"trees": {
		Concept:  "trees",
		Weight:   1.0,
		Required: Regexp(`\b(left_branch|right_branch|entry|is_leaf|make_tree)\b`),
	},
	"loops": {
		Concept:  "loops",
		Weight:   1.0,
		Required: Regexp(`\b(while|for)\s*\(`),
	},
}

// Lookup returns the rule for a concept.
func Lookup(concept string) (Rule, bool) {
	r, ok := rules[concept]
	return r, ok
}

// Detector returns the ConceptDetector for a concept, or nil if unknown.
func Detector(concept string) ConceptDetector {
	if r, ok := rules[concept]; ok {
		return r
	}
	return nil
}

// Concepts returns the names of all concepts with a registered rule.
func Concepts() []string {
	out := make([]string, 0, len(rules))
	for name := range rules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DetectAll returns the registered concepts present in code.
func DetectAll(code string) []string {
	var out []string
	for _, name := range Concepts() {
		if rules[name].Detect(code) {
			out = append(out, name)
		}
	}
	return out
}
