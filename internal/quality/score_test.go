package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/sourcequiz/internal/difficulty"
	"github.com/abhisek/sourcequiz/internal/distractor"
	"github.com/abhisek/sourcequiz/internal/misconception"
	"github.com/abhisek/sourcequiz/internal/value"
)

const sumListCode = "const sum_list = lst => is_null(lst) ? 0 : head(lst) + sum_list(tail(lst));\nsum_list(list(1, 2, 3, 4, 5));"

const sumListQuestion = "Consider the following Source program:\n\n```javascript\n" + sumListCode +
	"\n```\n\nWhat is the value of the final expression?\n\nA) 14\nB) 15\nC) 16\nD) 5"

func TestEvaluate_GoodQuestion(t *testing.T) {
	s := Evaluate(Input{
		Code:     sumListCode,
		Concepts: []string{"recursion", "lists"},
		Correct:  value.Int(15),
		Distractors: []distractor.Distractor{
			{Value: value.Int(14), Misconception: misconception.OffByOneMinus},
			{Value: value.Int(16), Misconception: misconception.OffByOnePlus},
			{Value: value.Int(5), Misconception: "confused_with_length"},
		},
		Target:       difficulty.LevelMedium,
		Actual:       difficulty.LevelMedium,
		QuestionText: sumListQuestion,
	})

	assert.InDelta(t, 100, s.ConceptValidity, 1e-9)
	assert.InDelta(t, 95, s.DistractorQuality, 1e-9)
	assert.InDelta(t, 100, s.DifficultyCalibration, 1e-9)
	assert.InDelta(t, 80, s.CodeClarity, 1e-9)
	assert.InDelta(t, 100, s.QuestionClarity, 1e-9)
	assert.InDelta(t, 95.75, s.Total, 1e-9)
	assert.True(t, s.Acceptable(DefaultThreshold))

	assert.Equal(t, []string{"Code is too short (may be trivial)"}, s.Issues)
	assert.Equal(t, []string{"Add more meaningful computation steps"}, s.Suggestions)
}

func TestEvaluate_BadQuestion(t *testing.T) {
	s := Evaluate(Input{
		Code:     "const x = 5;",
		Concepts: []string{"recursion", "lists"},
		Correct:  value.Int(5),
		Distractors: []distractor.Distractor{
			{Value: value.StringValue{S: "Error"}, Misconception: "generic"},
			{Value: value.StringValue{S: "undefined"}, Misconception: "generic"},
			{Value: value.StringValue{S: "undefined"}, Misconception: "generic"},
		},
		Target:       difficulty.LevelHard,
		Actual:       difficulty.LevelEasy,
		QuestionText: "What is x?",
	})

	assert.InDelta(t, 30, s.ConceptValidity, 1e-9)
	assert.InDelta(t, 45, s.DistractorQuality, 1e-9)
	assert.InDelta(t, 40, s.DifficultyCalibration, 1e-9)
	assert.InDelta(t, 30, s.QuestionClarity, 1e-9)
	assert.InDelta(t, 43.25, s.Total, 1e-9)
	assert.False(t, s.Acceptable(DefaultThreshold))

	assert.Contains(t, s.Issues, "Concept 'recursion' pattern not found in code")
	assert.Contains(t, s.Issues, "3 distractor(s) have wrong type")
	assert.Contains(t, s.Issues, "Distractors are not all distinct")
	assert.Contains(t, s.Issues, "Difficulty mismatch: target=hard, actual=easy")
	assert.Contains(t, s.Suggestions, "Regenerate code to include required concept patterns")
	assert.Contains(t, s.Suggestions, "Adjust code complexity to match target difficulty")
}

func TestConceptValidity(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		concepts []string
		want     float64
	}{
		{"no concepts", "1;", nil, 0.5},
		{"unknown concept", "1;", []string{"evaluator"}, 0.7},
		{"forbidden accumulator", "const f = (n, acc) => n === 0 ? acc : f(n - 1, acc * n);\nf(5, 1);", []string{"recursion_process"}, 0.5},
		{"iterative process", "const f = (n, acc) => n === 0 ? acc : f(n - 1, acc * n);\nf(5, 1);", []string{"iterative_process"}, 1},
		{"growth weight", "const f = n => 1;", []string{"orders_of_growth"}, 0.3 * 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := conceptValidity(tt.code, tt.concepts)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDifficultyCalibration(t *testing.T) {
	tests := []struct {
		target, actual difficulty.Level
		want           float64
	}{
		{difficulty.LevelEasy, difficulty.LevelEasy, 1},
		{difficulty.LevelEasy, difficulty.LevelMedium, 0.75},
		{difficulty.LevelEasy, difficulty.LevelHard, 0.4},
		{difficulty.LevelEasy, difficulty.LevelVeryHard, 0.1},
		{difficulty.LevelEasy, "", 0.7},
		{"bogus", difficulty.LevelEasy, 0.5},
	}
	for _, tt := range tests {
		got, _ := difficultyCalibration(tt.target, tt.actual)
		assert.InDelta(t, tt.want, got, 1e-9, "%s vs %s", tt.target, tt.actual)
	}
}

func TestCodeClarity(t *testing.T) {
	code := "// helper\nconst a = 1;\nconst b = 2;\nconst c = 3;\nconst d = 4;\nfunction f(x) { return x; }\nconst g = y => y;"
	score, issues := codeClarity(code)
	assert.InDelta(t, 0.7, score, 1e-9)
	assert.Contains(t, issues, "Too many single-letter variable names")
	assert.Contains(t, issues, "Code contains comments (may give hints)")
	assert.Contains(t, issues, "Mixed function styles (arrow and function keyword)")
}

func TestQuestionClarity_Hedging(t *testing.T) {
	text := "What is the result? It might be tricky.\nA) 1\nB) 2"
	score, issues := questionClarity(text, "", value.Int(1))
	assert.InDelta(t, 0.9, score, 1e-9)
	assert.Equal(t, []string{"Ambiguous language: 'might be'"}, issues)
}

func TestQuickValidate(t *testing.T) {
	assert.Empty(t, QuickValidate(sumListCode, []string{"recursion"}, value.Int(15),
		[]value.Value{value.Int(14), value.Int(16), value.Int(13)}))

	problems := QuickValidate("x", nil, value.Int(120), []value.Value{value.Int(120), value.Int(24)})
	assert.Equal(t, []string{
		"No valid code",
		"No concepts specified",
		"Insufficient distractors: 2",
		"Duplicate values in answer options",
		"Distractor equals correct answer",
	}, problems)
}
