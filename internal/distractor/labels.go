package distractor

import (
	"fmt"
	"strings"

	"github.com/abhisek/sourcequiz/internal/misconception"
	"github.com/abhisek/sourcequiz/internal/value"
)

// canonicalClasses are the six growth classes in increasing order.
var canonicalClasses = []string{"O(1)", "O(log n)", "O(n)", "O(n log n)", "O(n^2)", "O(2^n)"}

// complexityConfusions maps a class to the classes students mistake it for.
var complexityConfusions = map[string][]string{
	"O(1)":       {"O(n)", "O(log n)"},
	"O(log n)":   {"O(1)", "O(n)"},
	"O(n)":       {"O(n^2)", "O(n log n)", "O(1)"},
	"O(n log n)": {"O(n)", "O(n^2)"},
	"O(n^2)":     {"O(n)", "O(2^n)"},
	"O(2^n)":     {"O(n^2)", "O(n)"},
}

func complexity(c *collector, correct value.ComplexityValue) {
	confused, ok := complexityConfusions[correct.Class]
	if !ok {
		confused = []string{"O(n)", "O(n^2)"}
	}
	for _, class := range confused {
		c.add(value.ComplexityValue{Class: class}, misconception.ComplexityConfused, "")
	}
}

func boolean(c *collector, correct value.BoolValue) {
	c.add(value.BoolValue{B: !correct.B}, misconception.BooleanNegation, "")
	c.add(value.StringValue{S: "undefined"}, misconception.IncorrectEval, "")
}

func process(c *collector, correct value.StringValue) {
	recursive := strings.HasPrefix(strings.ToLower(strings.TrimSpace(correct.S)), "recursive")
	if recursive {
		c.add(value.StringValue{S: value.IterativeProcess}, misconception.ProcessConfusion, "")
		c.add(value.StringValue{S: value.RecursiveProcess + " with constant space"}, misconception.TimeSpaceConfused, "")
	} else {
		c.add(value.StringValue{S: value.RecursiveProcess}, misconception.ProcessConfusion, "")
		c.add(value.StringValue{S: value.IterativeProcess + " with linear space"}, misconception.TimeSpaceConfused, "")
	}
}

// maxPadAttempts bounds each synthetic padding loop; sentinels finish the
// job if a loop gives up.
const maxPadAttempts = 1000

// sentinels are the last-resort options for answers of any type.
var sentinels = []struct {
	text  string
	label string
}{
	{"Error", misconception.RuntimeError},
	{"undefined", misconception.IncorrectEval},
	{"NaN", misconception.ArithmeticError},
	{"Infinity", misconception.ArithmeticError},
}

// pad tops the collector up to its count with synthetic variations of the
// correct answer's category, then with sentinels.
func pad(c *collector, correct value.Value) {
	switch v := correct.(type) {
	case value.NumberValue:
		for k := 3; !c.full() && k < maxPadAttempts; k++ {
			x := v.N + float64(k)
			if x == v.N {
				x = v.N * float64(k)
			}
			if v.Integer {
				c.add(value.Int(int64(x)), misconception.ArithmeticError, "")
			} else {
				c.add(value.Float(x), misconception.ArithmeticError, "")
			}
		}
	case value.ComplexityValue:
		padComplexity(c, v.Class)
	case value.ListValue, value.NullValue, value.PairValue:
		padList(c, correct)
	case value.StringValue:
		if v.IsProcessLabel() {
			c.add(value.StringValue{S: "Tree " + value.RecursiveProcess}, misconception.ProcessConfusion, "")
		}
	}

	for _, s := range sentinels {
		if c.full() {
			return
		}
		c.add(value.StringValue{S: s.text}, s.label, "")
	}
	for k := 2; !c.full(); k++ {
		c.add(value.StringValue{S: fmt.Sprintf("Error %d", k)}, misconception.RuntimeError, "")
	}
}

// padComplexity walks outwards from the correct class so that near
// confusions come first, then falls back to higher polynomial degrees.
func padComplexity(c *collector, class string) {
	idx := -1
	for i, cl := range canonicalClasses {
		if cl == class {
			idx = i
		}
	}
	if idx < 0 {
		for _, cl := range canonicalClasses {
			c.add(value.ComplexityValue{Class: cl}, misconception.ComplexityConfused, "")
		}
	}
	for d := 1; d < len(canonicalClasses) && !c.full(); d++ {
		for _, i := range []int{idx - d, idx + d} {
			if i >= 0 && i < len(canonicalClasses) {
				c.add(value.ComplexityValue{Class: canonicalClasses[i]}, misconception.ComplexityConfused, "")
			}
		}
	}
	for k := 3; !c.full() && k < maxPadAttempts; k++ {
		c.add(value.ComplexityValue{Class: fmt.Sprintf("O(n^%d)", k)}, misconception.ComplexityConfused, "")
	}
}

// padList appends increasing integers to the correct list until enough
// distinct lists exist.
func padList(c *collector, correct value.Value) {
	var base []value.Value
	if l, ok := correct.(value.ListValue); ok {
		base = l.Elems
	}
	for k := 0; !c.full() && k < maxPadAttempts; k++ {
		elems := append(append([]value.Value(nil), base...), value.Int(int64(k)))
		c.add(value.ListValue{Elems: elems}, misconception.PaddedToPairCount, "")
	}
}
