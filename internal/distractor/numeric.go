package distractor

import (
	"math"
	"math/rand/v2"

	"github.com/abhisek/sourcequiz/internal/misconception"
	"github.com/abhisek/sourcequiz/internal/value"
)

// maxOffsetAttempts bounds the random retries after the transform table.
const maxOffsetAttempts = 50

// maxSpread caps the random offset range so it always fits in an int.
const maxSpread = 1 << 30

type transform struct {
	label string
	apply func(x float64, gt value.GroundTruth) (float64, bool)
}

func constant(c float64) func(float64, value.GroundTruth) (float64, bool) {
	return func(float64, value.GroundTruth) (float64, bool) { return c, true }
}

// numericTransforms are tried in order. The first two are the classic
// off-by-one answers and always come first.
var numericTransforms = []transform{
	{misconception.OffByOneMinus, func(x float64, _ value.GroundTruth) (float64, bool) { return x - 1, true }},
	{misconception.OffByOnePlus, func(x float64, _ value.GroundTruth) (float64, bool) { return x + 1, true }},
	{misconception.PairCountConfused, func(_ float64, gt value.GroundTruth) (float64, bool) {
		return float64(gt.PairCount), gt.PairCount > 0
	}},
	{misconception.BoundaryOffByTwo, func(x float64, _ value.GroundTruth) (float64, bool) { return x - 2, true }},
	{misconception.DeferredDoubled, func(x float64, _ value.GroundTruth) (float64, bool) { return x * 2, true }},
	{misconception.DeferredHalved, func(x float64, _ value.GroundTruth) (float64, bool) { return x / 2, true }},
	{misconception.BaseCaseZero, constant(0)},
}

// baseCaseConcepts get an extra "returns the base case" guess of 1.
var baseCaseConcepts = map[string]bool{
	"recursion":         true,
	"recursion_process": true,
	"iterative_process": true,
}

func numeric(rng *rand.Rand, c *collector, concept string, correct value.NumberValue, gt value.GroundTruth) {
	allowNegative := correct.N < 0
	mk := func(x float64) value.NumberValue {
		if correct.Integer {
			return value.Int(int64(math.Floor(x)))
		}
		return value.Float(x)
	}
	try := func(x float64, label string) {
		if math.IsNaN(x) || math.IsInf(x, 0) || (x < 0 && !allowNegative) {
			return
		}
		c.add(mk(x), label, "")
	}

	for _, t := range numericTransforms {
		if x, ok := t.apply(correct.N, gt); ok {
			try(x, t.label)
		}
	}
	if baseCaseConcepts[concept] {
		try(1, misconception.BaseCaseOne)
	}

	spread := 3
	if a := math.Abs(correct.N) / 10; a > float64(spread) {
		spread = int(min(a, maxSpread))
	}
	for attempt := 0; attempt < maxOffsetAttempts && !c.full(); attempt++ {
		offset := rng.IntN(2*spread+1) - spread
		if offset == 0 {
			continue
		}
		try(correct.N+float64(offset), misconception.ArithmeticError)
	}
}
