package problemgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/sourcequiz/internal/curriculum"
	"github.com/abhisek/sourcequiz/internal/detect"
)

var (
	listCall     = regexp.MustCompile(`\blist\s*\(`)
	pairCall     = regexp.MustCompile(`\bpair\s*\(`)
	loopKeyword  = regexp.MustCompile(`\b(while|for)\s*\(`)
	letBinding   = regexp.MustCompile(`\blet\s+\w+\s*=`)
	streamWord   = regexp.MustCompile(`\bstream`)
	constBinding = regexp.MustCompile(`\bconst\s+(\w+)\s*=`)
	identifier   = regexp.MustCompile(`^\w+$`)
)

// ChapterValidator rejects language features the chapter has not
// introduced yet. Rules, when set, adds the operational rules' per-concept
// restrictions.
type ChapterValidator struct {
	Rules *curriculum.RuleSet
}

func (v *ChapterValidator) Name() string { return "chapter" }

func (v *ChapterValidator) Validate(s *CodeSample) *ValidationError {
	if msg := chapterViolation(s.Code, s.Chapter, v.Rules); msg != "" {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	return nil
}

func chapterViolation(code string, chapter int, rules *curriculum.RuleSet) string {
	if chapter < 2 {
		if listCall.MatchString(code) {
			return "list() not allowed in Chapter 1"
		}
		if pairCall.MatchString(code) {
			return "pair() not allowed in Chapter 1"
		}
	}

	if chapter < 3 {
		if loopKeyword.MatchString(code) {
			return fmt.Sprintf("Loops not allowed in Chapter %d", chapter)
		}
		if letBinding.MatchString(code) {
			return fmt.Sprintf("Variable assignment (let) not allowed in Chapter %d", chapter)
		}
		if reassigned(code) {
			return fmt.Sprintf("Reassignment not allowed in Chapter %d", chapter)
		}
		if streamWord.MatchString(code) {
			return fmt.Sprintf("Streams not allowed in Chapter %d", chapter)
		}
	}

	if rules != nil {
		for _, r := range rules.Forbidden(chapter) {
			for _, f := range r.Functions {
				if identifier.MatchString(f.ID) && detect.CallPattern(f.ID).MatchString(code) {
					return fmt.Sprintf("%s() not allowed before Chapter %d", f.ID, r.ForbiddenBefore)
				}
			}
		}
	}
	return ""
}

// reassigned reports whether a const-bound name is later the target of a
// plain assignment. Comparisons and arrows are not assignments.
func reassigned(code string) bool {
	for _, m := range constBinding.FindAllStringSubmatch(code, -1) {
		name := m[1]
		assign := regexp.MustCompile(`(^|[^\w.])` + regexp.QuoteMeta(name) + `\s*=([^=>]|$)`)
		for _, loc := range assign.FindAllStringIndex(code, -1) {
			before := strings.TrimSpace(code[:loc[0]+1])
			if strings.HasSuffix(before, "const") || strings.HasSuffix(before, "let") {
				continue
			}
			return true
		}
	}
	return false
}
