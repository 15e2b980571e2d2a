package quality

import (
	"regexp"
	"strings"

	"github.com/abhisek/sourcequiz/internal/value"
)

var (
	singleLetterDecl = regexp.MustCompile(`\b(?:const|let)\s+[a-z]\s*=`)
	interrogatives   = regexp.MustCompile(`what is|what are|which of|how many|what does`)
	optionLetters    = regexp.MustCompile(`[A-D][).]`)
	hedges           = []string{"might be", "could be", "possibly", "maybe"}
)

// codeIncludedPrefix is how much of the code the question text must quote.
const codeIncludedPrefix = 30

func codeClarity(code string) (float64, []string) {
	var issues []string
	score := 1.0

	lines := strings.Split(strings.TrimSpace(code), "\n")
	switch {
	case len(lines) < 3:
		issues = append(issues, "Code is too short (may be trivial)")
		score -= 0.2
	case len(lines) > 20:
		issues = append(issues, "Code is too long (may be confusing)")
		score -= 0.15
	}

	if len(singleLetterDecl.FindAllStringIndex(code, -1)) > 3 {
		issues = append(issues, "Too many single-letter variable names")
		score -= 0.1
	}

	long := 0
	for _, l := range lines {
		if len(l) > 80 {
			long++
		}
	}
	if long > 2 {
		issues = append(issues, "Some lines are too long")
		score -= 0.1
	}

	if strings.Contains(code, "//") || strings.Contains(code, "/*") {
		issues = append(issues, "Code contains comments (may give hints)")
		score -= 0.1
	}

	if strings.Contains(code, "=>") && strings.Contains(code, "function ") {
		issues = append(issues, "Mixed function styles (arrow and function keyword)")
		score -= 0.1
	}

	return max(0, score), issues
}

func questionClarity(text, code string, correct value.Value) (float64, []string) {
	if text == "" {
		return 0.5, []string{"No question text provided"}
	}

	var issues []string
	score := 1.0

	prefix := code
	if len(prefix) > codeIncludedPrefix {
		prefix = prefix[:codeIncludedPrefix]
	}
	if code != "" && !strings.Contains(text, prefix) {
		issues = append(issues, "Code may not be included in question text")
		score -= 0.2
	}

	lower := strings.ToLower(text)
	if !interrogatives.MatchString(lower) {
		issues = append(issues, "Question lacks clear interrogative")
		score -= 0.15
	}

	if !optionLetters.MatchString(text) {
		issues = append(issues, "No answer options (A/B/C/D) found")
		score -= 0.2
	}

	if correct == nil || !strings.Contains(text, correct.String()) {
		issues = append(issues, "Correct answer may not appear in options")
		score -= 0.3
	}

	for _, h := range hedges {
		if strings.Contains(lower, h) {
			issues = append(issues, "Ambiguous language: '"+h+"'")
			score -= 0.1
			break
		}
	}

	return max(0, score), issues
}
