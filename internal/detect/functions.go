package detect

import (
	"regexp"
	"sort"
)

var (
	arrowDefPattern = regexp.MustCompile(`(?:\b(?:const|let)\s+)?\b(\w+)\s*=\s*(?:\([^)]*\)|\w+)\s*=>`)
	funcDefPattern  = regexp.MustCompile(`\bfunction\s+(\w+)\s*\(`)
)

// Function is a named function definition found in source text.
type Function struct {
	Name string
	// Start is the offset of the definition.
	Start int
	// End is the offset just past the definition header; calls counted
	// from here on are post-definition occurrences.
	End int
	// Body is the text of the function body.
	Body string
}

// Functions returns every named function definition in code, in source order.
func Functions(code string) []Function {
	var out []Function

	for _, m := range arrowDefPattern.FindAllStringSubmatchIndex(code, -1) {
		name := code[m[2]:m[3]]
		out = append(out, Function{
			Name:  name,
			Start: m[0],
			End:   m[1],
			Body:  code[m[1]:statementEnd(code, m[1])],
		})
	}

	for _, m := range funcDefPattern.FindAllStringSubmatchIndex(code, -1) {
		name := code[m[2]:m[3]]
		body := ""
		if open := indexFrom(code, '{', m[1]); open >= 0 {
			body = code[open:blockEnd(code, open)]
		}
		out = append(out, Function{
			Name:  name,
			Start: m[0],
			End:   m[1],
			Body:  body,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// CallPattern matches a call of the named function.
func CallPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
}

// CallsAfterDefinition counts occurrences of fn being called after its
// definition header, including calls from top-level code.
func CallsAfterDefinition(code string, fn Function) int {
	return len(CallPattern(fn.Name).FindAllStringIndex(code[fn.End:], -1))
}

// SelfRecursive reports whether fn calls itself from within its own body.
func SelfRecursive(fn Function) bool {
	return CallPattern(fn.Name).MatchString(fn.Body)
}

// RecursiveFunctions returns the definitions in code that call themselves.
func RecursiveFunctions(code string) []Function {
	var out []Function
	for _, fn := range Functions(code) {
		if SelfRecursive(fn) {
			out = append(out, fn)
		}
	}
	return out
}

// statementEnd returns the offset of the ';' that ends the statement
// starting at from, ignoring separators nested in brackets.
func statementEnd(code string, from int) int {
	depth := 0
	for i := from; i < len(code); i++ {
		switch code[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				return i
			}
			depth--
		case ';':
			if depth == 0 {
				return i
			}
		}
	}
	return len(code)
}

// blockEnd returns the offset just past the brace matching code[open].
func blockEnd(code string, open int) int {
	depth := 0
	for i := open; i < len(code); i++ {
		switch code[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(code)
}

func indexFrom(s string, c byte, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
