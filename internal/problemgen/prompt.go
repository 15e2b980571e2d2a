package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/sourcequiz/internal/curriculum"
	"github.com/abhisek/sourcequiz/internal/value"
)

const codeSystemPrompt = `You write short programs in Source, the JavaScript subset used in an introductory programming course, for multiple-choice exam questions.

Rules:
- The program must be 5-15 lines, self-contained, and define every function it uses.
- The last statement must be an expression that produces a value.
- The program must run without errors.
- Use const and arrow functions. Never use var.
- Do not add comments or explanation.
- Stay within the chapter constraints you are given.`

const questionSystemPrompt = `You write exam questions about short Source programs.

Rules:
- Keep the question to one or two sentences in professional exam language.
- Phrase it as "What is..." or "What are...".
- Never explain or hint at the answer.`

// chapterConstraints lists what the program may not use at this chapter.
func chapterConstraints(chapter int, rules *curriculum.RuleSet) []string {
	var out []string
	if chapter < 3 {
		out = append(out,
			"Do NOT use loops (while, for)",
			"Do NOT use variable assignment (let, =)")
	}
	if chapter < 2 {
		out = append(out, "Do NOT use lists or pairs")
	}
	if rules != nil {
		for _, r := range rules.Forbidden(chapter) {
			ids := make([]string, len(r.Functions))
			for i, f := range r.Functions {
				ids[i] = f.ID
			}
			out = append(out, fmt.Sprintf("Do NOT use %s (%s is introduced in Chapter %d)",
				strings.Join(ids, ", "), r.Concept, r.ForbiddenBefore))
		}
	}
	return out
}

// buildCodePrompt constructs the user message for program generation.
func buildCodePrompt(in CodeInput, rules *curriculum.RuleSet, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Concepts to test: %s\n", strings.Join(in.Concepts, ", "))
	fmt.Fprintf(&b, "Source chapter: %d\n", in.Chapter)

	b.WriteString("\nConstraints:\n")
	constraints := chapterConstraints(in.Chapter, rules)
	if len(constraints) == 0 {
		b.WriteString("- Use standard Source syntax\n")
	}
	for _, c := range constraints {
		fmt.Fprintf(&b, "- %s\n", c)
	}

	if rules != nil {
		var guide strings.Builder
		for _, concept := range in.Concepts {
			r, ok := rules.ForConcept(concept)
			if !ok {
				continue
			}
			for _, f := range r.Functions {
				fmt.Fprintf(&guide, "\n%s:\n```javascript\n%s\n```\n", f.ID, f.Snippet)
				if f.Time != "" {
					fmt.Fprintf(&guide, "Time complexity: %s\n", f.Time)
				}
				if f.Space != "" {
					fmt.Fprintf(&guide, "Space complexity: %s\n", f.Space)
				}
			}
		}
		if guide.Len() > 0 {
			b.WriteString("\nImplementation guidelines:")
			b.WriteString(guide.String())
		}
	}

	if in.Trap != nil {
		b.WriteString("\nTrap strategy:\n")
		fmt.Fprintf(&b, "The question should test: %s\n", orDefault(in.Trap.Strategy.QuestionIntent, "understanding of the concept"))
		if in.Trap.Trigger.CodePattern != "" {
			fmt.Fprintf(&b, "Code pattern to include: %s\n", in.Trap.Trigger.CodePattern)
		}
		if in.Trap.Strategy.Instruction != "" {
			fmt.Fprintf(&b, "Instruction: %s\n", in.Trap.Strategy.Instruction)
		}
	}

	b.WriteString("\nPrograms already generated (write something different):\n")
	b.WriteString(numbered(in.PriorCode, cfg.MaxPriorCode))

	if len(in.Feedback) > 0 {
		b.WriteString("\n\nThe previous attempt was rejected:\n")
		b.WriteString(numbered(in.Feedback, cfg.MaxFeedback))
	}

	return b.String()
}

// buildQuestionPrompt constructs the user message for question wording.
func buildQuestionPrompt(in QuestionInput, stem string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Concepts tested: %s\n\n", strings.Join(in.Concepts, ", "))
	fmt.Fprintf(&b, "Program:\n```javascript\n%s\n```\n\n", in.Code)
	fmt.Fprintf(&b, "Verified correct answer: %s\n\n", render(in.Correct))

	b.WriteString("Wrong answers that will be offered:\n")
	for _, d := range in.Distractors {
		fmt.Fprintf(&b, "- %s (misconception: %s)\n", d.Value.String(), orDefault(d.Misconception, "unknown"))
	}

	if in.Trap != nil && in.Trap.Strategy.QuestionIntent != "" {
		fmt.Fprintf(&b, "\nThe question should test: %s\n", in.Trap.Strategy.QuestionIntent)
	}
	fmt.Fprintf(&b, "\nA typical stem would be: \"What is %s?\"\n", stem)

	return b.String()
}

func render(v value.Value) string {
	if v == nil {
		return "undefined"
	}
	return v.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
