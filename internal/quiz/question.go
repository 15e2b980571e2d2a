// Package quiz holds the finished multiple-choice question record and its
// batch file format.
package quiz

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sourcequiz/internal/difficulty"
	"github.com/abhisek/sourcequiz/internal/distractor"
	"github.com/abhisek/sourcequiz/internal/quality"
	"github.com/abhisek/sourcequiz/internal/value"
)

// Labels are the option labels in display order.
var Labels = []string{"A", "B", "C", "D", "E", "F"}

// Option is one answer choice as shown to a student.
type Option struct {
	Label         string `json:"label"`
	Text          string `json:"text"`
	Correct       bool   `json:"correct,omitempty"`
	Misconception string `json:"misconception,omitempty"`
}

// Distractor is the stored form of a distractor, with its value rendered.
type Distractor struct {
	Value         string `json:"value"`
	Misconception string `json:"misconception"`
	Explanation   string `json:"explanation,omitempty"`
}

// Question is an accepted question with everything needed to render,
// grade and audit it.
type Question struct {
	ID      string `json:"id"`
	BatchID string `json:"batch_id,omitempty"`

	Chapter    int              `json:"chapter"`
	Difficulty difficulty.Level `json:"difficulty"`
	Concepts   []string         `json:"concepts"`
	Trap       string           `json:"trap,omitempty"`

	Code          string            `json:"code"`
	QuestionText  string            `json:"question_text"`
	Options       []Option          `json:"options"`
	CorrectOption string            `json:"correct_option"`
	CorrectAnswer string            `json:"correct_answer"`
	Distractors   []Distractor      `json:"distractors"`
	GroundTruth   value.GroundTruth `json:"ground_truth"`

	Metrics          difficulty.Metrics `json:"difficulty_metrics"`
	ActualDifficulty difficulty.Level   `json:"actual_difficulty"`
	Quality          quality.Score      `json:"quality"`
	Attempts         int                `json:"attempts"`
	CreatedAt        time.Time          `json:"created_at"`
}

// NewID returns a fresh question or batch identifier.
func NewID() string {
	return uuid.NewString()
}

// Records converts computed distractors to their stored form.
func Records(ds []distractor.Distractor) []Distractor {
	out := make([]Distractor, len(ds))
	for i, d := range ds {
		out[i] = Distractor{Value: d.Value.String(), Misconception: d.Misconception, Explanation: d.Explanation}
	}
	return out
}

// DistractorValues re-parses the stored distractor values.
func (q *Question) DistractorValues() []value.Value {
	out := make([]value.Value, len(q.Distractors))
	for i, d := range q.Distractors {
		out[i] = value.ParseString(d.Value)
	}
	return out
}

// ShuffleOptions labels the correct answer and distractors in random order
// and returns the options with the label of the correct one.
func ShuffleOptions(rng *rand.Rand, correct value.Value, ds []distractor.Distractor) ([]Option, string) {
	opts := make([]Option, 0, len(ds)+1)
	opts = append(opts, Option{Text: correct.String(), Correct: true})
	for _, d := range ds {
		opts = append(opts, Option{Text: d.Value.String(), Misconception: d.Misconception})
	}
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })

	var answer string
	for i := range opts {
		opts[i].Label = label(i)
		if opts[i].Correct {
			answer = opts[i].Label
		}
	}
	return opts, answer
}

func label(i int) string {
	if i < len(Labels) {
		return Labels[i]
	}
	return fmt.Sprintf("%d", i+1)
}

// Option returns the option with the given label, case-insensitively.
func (q *Question) Option(label string) (Option, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for _, o := range q.Options {
		if o.Label == label {
			return o, true
		}
	}
	return Option{}, false
}

// Check reports whether label names the correct option.
func (q *Question) Check(label string) bool {
	o, ok := q.Option(label)
	return ok && o.Correct
}
