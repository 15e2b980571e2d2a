// Package interpreter runs Source programs through an external interpreter
// to obtain the ground truth for generated questions.
package interpreter

import (
	"context"
	"encoding/json"

	"github.com/abhisek/sourcequiz/internal/value"
)

// Interpreter executes a program at a given chapter. A program that runs but
// fails is reported through EvalOutcome, not as an error; errors are reserved
// for failures of the interpreter itself.
type Interpreter interface {
	Execute(ctx context.Context, code string, chapter int) (*EvalOutcome, error)
}

// Func adapts a function to Interpreter.
type Func func(ctx context.Context, code string, chapter int) (*EvalOutcome, error)

func (f Func) Execute(ctx context.Context, code string, chapter int) (*EvalOutcome, error) {
	return f(ctx, code, chapter)
}

// Request is the JSON document written to the interpreter's stdin.
type Request struct {
	Code    string `json:"code"`
	Chapter int    `json:"chapter"`
}

// EvalOutcome is the JSON document the interpreter writes to stdout.
type EvalOutcome struct {
	Success      bool     `json:"success"`
	Value        any      `json:"value"`
	DisplayValue string   `json:"displayValue,omitempty"`
	PairCount    int      `json:"pairCount"`
	Output       []string `json:"output,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Undefined is how the interpreter displays Source's undefined, which is a
// different answer from null.
const Undefined = "undefined"

// GroundTruth converts the raw result into a typed value. Structured
// results are re-read from their rendering so pair chains come back as
// lists and other pairs keep their shape.
func (o *EvalOutcome) GroundTruth() value.GroundTruth {
	gt := value.GroundTruth{PairCount: o.PairCount, Output: o.Output}

	switch v := o.Value.(type) {
	case []any, map[string]any:
		if o.DisplayValue != "" {
			gt.Value = value.ParseString(o.DisplayValue)
			break
		}
		raw, err := json.Marshal(v)
		if err != nil {
			gt.Value = value.StringValue{S: o.DisplayValue}
			break
		}
		gt.Value = value.ParseString(string(raw))
	case nil:
		switch o.DisplayValue {
		case "", "null":
			gt.Value = value.NullValue{}
		case Undefined:
			gt.Value = value.StringValue{S: Undefined}
		default:
			gt.Value = value.ParseString(o.DisplayValue)
		}
	default:
		gt.Value = value.Parse(v)
	}
	return gt
}
