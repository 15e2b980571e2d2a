// Package difficulty estimates how hard a piece of Source code is to trace
// by hand. All measurements are textual; nothing is executed.
package difficulty

import (
	"math/bits"
	"regexp"
	"strings"
	"sync"

	"github.com/abhisek/sourcequiz/internal/curriculum"
	"github.com/abhisek/sourcequiz/internal/detect"
)

// DefaultInputSize is the assumed size of the input a program recurses over.
const DefaultInputSize = 5

// traceCallCap bounds the call count estimated for tree recursion.
const traceCallCap = 1000

// defaultConceptDifficulty is used for syllabus topics without a rating.
const defaultConceptDifficulty = 2

// Metrics is a snapshot of the measurable properties of a code sample.
type Metrics struct {
	NestingDepth    int     `json:"nesting_depth"`
	VariableCount   int     `json:"variable_count"`
	RecursionDepth  int     `json:"recursive_depth"`
	BranchingFactor int     `json:"branching_factor"`
	TraceLength     int     `json:"trace_length_estimate"`
	ConceptCount    int     `json:"concept_count"`
	CognitiveLoad   float64 `json:"cognitive_load"`
}

var (
	ternaryChainPattern = regexp.MustCompile(`\?[^:]*\?`)
	declPattern         = regexp.MustCompile(`\b(?:const|let|function)\s+(\w+)`)
	arrowParamPattern   = regexp.MustCompile(`(\w+)\s*=>`)
	arrowParamsPattern  = regexp.MustCompile(`\(([^)]+)\)\s*=>`)
	halvingPattern      = regexp.MustCompile(`/\s*2|>>|Math\.floor`)
	operatorPattern     = regexp.MustCompile(`===|!==|>=|<=|&&|\|\||[+\-*/]`)
	callPattern         = regexp.MustCompile(`\w+\s*\(`)
	listOpPattern       = regexp.MustCompile(`\b(?:map|filter|accumulate|append|reverse)\s*\(`)
)

// Analyzer computes Metrics using a table of per-concept difficulty ratings.
type Analyzer struct {
	ratings map[string]int
}

// NewAnalyzer returns an Analyzer using the given concept ratings (1–5).
func NewAnalyzer(ratings map[string]int) *Analyzer {
	return &Analyzer{ratings: ratings}
}

var defaultAnalyzer = sync.OnceValue(func() *Analyzer {
	return NewAnalyzer(curriculum.Default().Syllabus.Difficulties())
})

// Analyze measures code with the built-in syllabus ratings.
func Analyze(code string, concepts []string, inputSize int) Metrics {
	return defaultAnalyzer().Analyze(code, concepts, inputSize)
}

// Analyze measures code. A non-positive inputSize means DefaultInputSize.
func (a *Analyzer) Analyze(code string, concepts []string, inputSize int) Metrics {
	if inputSize <= 0 {
		inputSize = DefaultInputSize
	}

	depth, branching := recursionShape(code, inputSize)
	m := Metrics{
		NestingDepth:    nestingDepth(code),
		VariableCount:   variableCount(code),
		RecursionDepth:  depth,
		BranchingFactor: branching,
		TraceLength:     traceLength(code, inputSize, depth, branching),
		ConceptCount:    len(concepts),
	}
	m.CognitiveLoad = a.cognitiveLoad(m, concepts)
	return m
}

func nestingDepth(code string) int {
	depth, maxDepth := 0, 0
	for _, c := range code {
		switch c {
		case '(', '[', '{':
			depth++
			maxDepth = max(maxDepth, depth)
		case ')', ']', '}':
			depth = max(0, depth-1)
		}
	}
	ternaries := len(ternaryChainPattern.FindAllStringIndex(code, -1))
	return max(maxDepth, ternaries+1)
}

func variableCount(code string) int {
	names := make(map[string]struct{})
	for _, m := range declPattern.FindAllStringSubmatch(code, -1) {
		names[m[1]] = struct{}{}
	}
	for _, m := range arrowParamPattern.FindAllStringSubmatch(code, -1) {
		names[m[1]] = struct{}{}
	}
	for _, m := range arrowParamsPattern.FindAllStringSubmatch(code, -1) {
		for _, p := range strings.Split(m[1], ",") {
			if p = strings.TrimSpace(p); p != "" {
				names[p] = struct{}{}
			}
		}
	}
	return len(names)
}

// recursionShape returns the estimated recursion depth and branching factor.
// A function whose name is called two or more times after its definition is
// treated as recursive with branching = calls - 1.
func recursionShape(code string, inputSize int) (depth, branching int) {
	fns := detect.Functions(code)
	if len(fns) == 0 {
		return 1, 1
	}

	branching = 1
	recursive := false
	for _, fn := range fns {
		if calls := detect.CallsAfterDefinition(code, fn); calls >= 2 {
			recursive = true
			branching = max(branching, calls-1)
		}
	}
	if !recursive {
		return 1, 1
	}

	if halvingPattern.MatchString(code) {
		return max(1, bits.Len(uint(inputSize))), branching
	}
	return inputSize, branching
}

func traceLength(code string, inputSize, depth, branching int) int {
	ops := len(operatorPattern.FindAllStringIndex(code, -1))
	calls := len(callPattern.FindAllStringIndex(code, -1))
	perLevel := max(1, ops+calls/2)

	totalCalls := depth
	if branching >= 2 {
		totalCalls = intPowCapped(branching, depth, traceCallCap)
	}

	listOps := len(listOpPattern.FindAllStringIndex(code, -1))
	return perLevel*totalCalls + listOps*inputSize
}

func intPowCapped(base, exp, limit int) int {
	result := 1
	for range exp {
		result *= base
		if result >= limit {
			return limit
		}
	}
	return result
}

func (a *Analyzer) cognitiveLoad(m Metrics, concepts []string) float64 {
	nesting := clamp10(float64(m.NestingDepth) * 1.5)
	variables := clamp10(float64(m.VariableCount) * 1.2)

	var recursion float64
	if m.BranchingFactor >= 2 {
		recursion = clamp10(float64(m.RecursionDepth*2 + m.BranchingFactor*2))
	} else {
		recursion = clamp10(float64(m.RecursionDepth) * 0.8)
	}

	var conceptScore float64
	for _, c := range concepts {
		rating, ok := a.ratings[c]
		if !ok {
			continue
		}
		if rating <= 0 {
			rating = defaultConceptDifficulty
		}
		conceptScore += float64(rating) * 0.4
	}
	conceptScore = clamp10(conceptScore)

	return clamp10(0.2*nesting + 0.15*variables + 0.35*recursion + 0.3*conceptScore)
}

func clamp10(v float64) float64 {
	return min(10, max(0, v))
}
