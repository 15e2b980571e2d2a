package distractor

import (
	"slices"

	"github.com/abhisek/sourcequiz/internal/misconception"
	"github.com/abhisek/sourcequiz/internal/value"
)

// elementConcepts compute list elements, so an element-wise off-by-one is a
// believable slip.
var elementConcepts = map[string]bool{
	"lists":                  true,
	"list_library":           true,
	"higher_order_functions": true,
	"recursion":              true,
	"streams":                true,
	"loops":                  true,
}

func asList(elems []value.Value) value.Value {
	if len(elems) == 0 {
		return value.NullValue{}
	}
	return value.ListValue{Elems: elems}
}

func list(c *collector, concept string, elems []value.Value, gt value.GroundTruth) {
	n := len(elems)
	if n > 0 {
		c.add(asList(slices.Clone(elems[:n-1])), misconception.DroppedLast, "")
	}
	if n > 1 {
		c.add(asList(slices.Clone(elems[1:])), misconception.DroppedFirst, "")

		rev := slices.Clone(elems)
		slices.Reverse(rev)
		c.add(asList(rev), misconception.ReversedOrder, "")
	}

	if n > 0 && elementConcepts[concept] {
		if bumped, ok := mapNumbers(elems, 1); ok {
			c.add(asList(bumped), misconception.ElementOffByOne, "")
		}
	}

	if n > 0 {
		c.add(value.ListValue{Elems: []value.Value{value.ListValue{Elems: slices.Clone(elems)}}},
			misconception.ExtraNesting, "")
	}

	if pairs := min(gt.PairCount, MaxPairCount); pairs > n {
		padded := slices.Clone(elems)
		fill := value.Value(value.Int(0))
		if n > 0 {
			fill = elems[n-1]
		}
		for len(padded) < pairs {
			padded = append(padded, fill)
		}
		c.add(asList(padded), misconception.PaddedToPairCount, "")
	}

	if n > 0 {
		c.add(value.NullValue{}, misconception.EmptyListConfused, "")
	}
}

func pair(c *collector, p value.PairValue) {
	c.add(value.ListValue{Elems: []value.Value{p.Head, p.Tail}}, misconception.PairListConfused, "")
	c.add(value.PairValue{Head: p.Tail, Tail: p.Head}, misconception.PairSwapped, "")
	if bumped, ok := mapNumbers([]value.Value{p.Head, p.Tail}, 1); ok {
		c.add(value.PairValue{Head: bumped[0], Tail: bumped[1]}, misconception.ElementOffByOne, "")
	}
	c.add(value.ListValue{Elems: []value.Value{p}}, misconception.ExtraNesting, "")
}

// mapNumbers adds delta to every element, failing if any is not a number.
func mapNumbers(elems []value.Value, delta float64) ([]value.Value, bool) {
	out := make([]value.Value, len(elems))
	for i, e := range elems {
		num, ok := e.(value.NumberValue)
		if !ok {
			return nil, false
		}
		num.N += delta
		out[i] = num
	}
	return out, true
}
