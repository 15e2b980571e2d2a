package problemgen

import (
	"github.com/abhisek/sourcequiz/internal/curriculum"
	"github.com/abhisek/sourcequiz/internal/distractor"
	"github.com/abhisek/sourcequiz/internal/interpreter"
	"github.com/abhisek/sourcequiz/internal/quiz"
	"github.com/abhisek/sourcequiz/internal/value"
)

// Origin records whether text came from the model or a built-in template.
type Origin string

const (
	OriginLLM      Origin = "llm"
	OriginTemplate Origin = "template"
)

// CodeInput holds everything needed to ask for a program.
type CodeInput struct {
	// Concepts are the syllabus topic IDs the program must exercise.
	Concepts []string

	// Chapter is the language level the program must stay within.
	Chapter int

	// Trap optionally steers the program towards a misconception.
	Trap *curriculum.Trap

	// PriorCode holds programs already produced in this run, used to
	// discourage near-duplicates.
	PriorCode []string

	// Feedback lists validation failures from the previous attempt.
	Feedback []string
}

// CodeSample is a candidate program with the context it is checked
// against. Outcome is nil until the program has been executed.
type CodeSample struct {
	Code     string
	Concepts []string
	Chapter  int
	Outcome  *interpreter.EvalOutcome
}

// QuestionInput holds everything needed to write the question around a
// verified program.
type QuestionInput struct {
	Code        string
	Concepts    []string
	Correct     value.Value
	Distractors []distractor.Distractor
	Trap        *curriculum.Trap
}

// Text is a rendered question with its shuffled options.
type Text struct {
	Body          string
	Options       []quiz.Option
	CorrectOption string
	Origin        Origin
}
