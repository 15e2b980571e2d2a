// Package distractor computes plausible wrong answers for a multiple-choice
// question from its verified correct answer.
package distractor

import (
	"math/rand/v2"

	"github.com/abhisek/sourcequiz/internal/misconception"
	"github.com/abhisek/sourcequiz/internal/value"
)

// DefaultCount is the number of distractors on a four-option question.
const DefaultCount = 3

// MaxCount is the most distractors a question can show; options are
// labelled A to F.
const MaxCount = 5

// MaxPairCount bounds the pair count used to pad list distractors.
const MaxPairCount = 1000

// Distractor is a wrong answer and the misconception it targets.
type Distractor struct {
	Value         value.Value `json:"-"`
	Misconception string      `json:"misconception"`
	Explanation   string      `json:"explanation,omitempty"`
}

// Values returns the values of ds in order.
func Values(ds []Distractor) []value.Value {
	out := make([]value.Value, len(ds))
	for i, d := range ds {
		out[i] = d.Value
	}
	return out
}

// Generate returns exactly n distractors for correct. They are pairwise
// distinct, never render like correct and share its category wherever the
// category has enough members.
func Generate(rng *rand.Rand, concept string, correct value.Value, gt value.GroundTruth, n int) []Distractor {
	return GenerateWithTrap(rng, concept, correct, gt, nil, n)
}

// GenerateWithTrap is Generate with trap-supplied candidates tried first.
// Candidates that do not parse into the correct answer's category are
// ignored.
func GenerateWithTrap(rng *rand.Rand, concept string, correct value.Value, gt value.GroundTruth, trapLogic []string, n int) []Distractor {
	if n <= 0 {
		return nil
	}
	if correct == nil {
		correct = value.StringValue{S: ""}
	}

	c := newCollector(correct, n)
	for _, raw := range trapLogic {
		v := value.ParseString(raw)
		if value.Compatible(correct, v) {
			c.add(v, trapLabel(concept, v), "")
		}
	}

	switch v := correct.(type) {
	case value.NumberValue:
		numeric(rng, c, concept, v, gt)
	case value.ListValue:
		list(c, concept, v.Elems, gt)
	case value.NullValue:
		list(c, concept, nil, gt)
	case value.PairValue:
		pair(c, v)
	case value.ComplexityValue:
		complexity(c, v)
	case value.BoolValue:
		boolean(c, v)
	case value.StringValue:
		if v.IsProcessLabel() {
			process(c, v)
		}
	}

	pad(c, correct)
	return c.out
}

func trapLabel(concept string, v value.Value) string {
	switch {
	case v.Kind() == value.KindComplexity:
		return misconception.ComplexityConfused
	case isProcess(v):
		return misconception.ProcessConfusion
	case concept == "streams":
		return misconception.EagerEvaluation
	case concept == "higher_order_functions" || concept == "list_library":
		return misconception.ArgumentOrder
	}
	return misconception.IncorrectEval
}

func isProcess(v value.Value) bool {
	s, ok := v.(value.StringValue)
	return ok && s.IsProcessLabel()
}

// collector accumulates distinct candidates up to a fixed count.
type collector struct {
	seen map[string]bool
	out  []Distractor
	n    int
}

func newCollector(correct value.Value, n int) *collector {
	return &collector{
		seen: map[string]bool{correct.String(): true},
		out:  make([]Distractor, 0, n),
		n:    n,
	}
}

func (c *collector) full() bool { return len(c.out) >= c.n }

// add records v unless the collector is full or v renders like an earlier
// candidate or the correct answer.
func (c *collector) add(v value.Value, label, explanation string) bool {
	if c.full() {
		return false
	}
	key := v.String()
	if c.seen[key] {
		return false
	}
	c.seen[key] = true
	if explanation == "" {
		explanation = misconception.Describe(label)
	}
	c.out = append(c.out, Distractor{Value: v, Misconception: label, Explanation: explanation})
	return true
}
