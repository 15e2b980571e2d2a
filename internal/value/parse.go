package value

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPattern        = regexp.MustCompile(`^-?\d+$`)
	floatPattern      = regexp.MustCompile(`^-?(\d+\.\d*|\.\d+|\d+(\.\d*)?[eE][+-]?\d+)$`)
	complexityPattern = regexp.MustCompile(`^[OΘ]\s*\(\s*(.+?)\s*\)$`)
)

// Parse classifies raw interpreter output into a Value. It never fails:
// anything unrecognised becomes a StringValue.
func Parse(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return NullValue{}
	case Value:
		return v
	case bool:
		return BoolValue{B: v}
	case int:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return Int(int64(v))
	case uint64:
		return Int(int64(v))
	case float32:
		return parseFloat(float64(v))
	case float64:
		return parseFloat(v)
	case json.Number:
		return ParseString(v.String())
	case string:
		return ParseString(v)
	case []any:
		return parseArray(v)
	default:
		return StringValue{S: fmt.Sprint(v)}
	}
}

// parseArray applies the box notation rules of ParseStructure to a decoded
// JSON array.
func parseArray(arr []any) Value {
	switch {
	case len(arr) == 0:
		return NullValue{}
	case isChain(arr):
		var elems []Value
		for cur := arr; cur != nil; {
			elems = append(elems, Parse(cur[0]))
			cur, _ = cur[1].([]any)
		}
		return ListValue{Elems: elems}
	case len(arr) == 2:
		return PairValue{Head: Parse(arr[0]), Tail: Parse(arr[1])}
	}
	elems := make([]Value, len(arr))
	for i, e := range arr {
		elems[i] = Parse(e)
	}
	return ListValue{Elems: elems}
}

func isChain(arr []any) bool {
	if len(arr) != 2 {
		return false
	}
	if arr[1] == nil {
		return true
	}
	tail, ok := arr[1].([]any)
	return ok && isChain(tail)
}

// parseFloat keeps integral JSON numbers as integers, since decoders hand
// every number over as float64.
func parseFloat(f float64) Value {
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return Int(int64(f))
	}
	return Float(f)
}

// ParseString applies the ordered literal checks to a string.
func ParseString(s string) Value {
	t := strings.TrimSpace(s)

	switch strings.ToLower(t) {
	case "true":
		return BoolValue{B: true}
	case "false":
		return BoolValue{B: false}
	case "null":
		return NullValue{}
	}

	if intPattern.MatchString(t) {
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return Int(n)
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return Float(f)
		}
	}

	if floatPattern.MatchString(t) {
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return Float(f)
		}
	}

	if c, ok := ParseComplexity(t); ok {
		return c
	}

	if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
		if v, err := ParseStructure(t); err == nil {
			return v
		}
	}

	return StringValue{S: s}
}

// ParseComplexity recognises big-O notation and normalises it.
func ParseComplexity(s string) (ComplexityValue, bool) {
	m := complexityPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ComplexityValue{}, false
	}
	return ComplexityValue{Class: "O(" + normalizeGrowth(m[1]) + ")"}, true
}

func normalizeGrowth(expr string) string {
	e := strings.ToLower(strings.Join(strings.Fields(expr), ""))
	e = strings.ReplaceAll(e, "²", "^2")
	e = strings.ReplaceAll(e, "**", "^")
	e = strings.ReplaceAll(e, "*", "")
	switch e {
	case "1":
		return "1"
	case "n":
		return "n"
	case "logn", "log(n)", "lgn":
		return "log n"
	case "nlogn", "nlog(n)", "nlgn":
		return "n log n"
	case "n^2":
		return "n^2"
	case "n^3":
		return "n^3"
	case "2^n":
		return "2^n"
	}
	return strings.TrimSpace(expr)
}
