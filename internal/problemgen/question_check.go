package problemgen

import (
	"strings"

	"github.com/abhisek/sourcequiz/internal/distractor"
	"github.com/abhisek/sourcequiz/internal/value"
)

// Question validation messages.
const (
	MsgTextTooShort   = "Question text is too short"
	MsgCodeNotInText  = "Code is not included in question text"
	minQuestionLength = 10
)

// ValidateQuestion checks rendered text and its options. It returns every
// problem found; an empty result means the question is usable.
func ValidateQuestion(text, code string, correct value.Value, distractors []value.Value) []string {
	var problems []string

	if len(strings.TrimSpace(text)) < minQuestionLength {
		problems = append(problems, MsgTextTooShort)
	}
	if code != "" && !strings.Contains(text, strings.TrimSpace(code)) {
		problems = append(problems, MsgCodeNotInText)
	}
	return append(problems, distractor.Validate(correct, distractors)...)
}
