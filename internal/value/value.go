package value

import (
	"strconv"
	"strings"
)

// Kind is the category of a Value.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindNull
	KindList
	KindComplexity
	KindString
	KindPair
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	case KindList:
		return "list"
	case KindComplexity:
		return "complexity"
	case KindString:
		return "string"
	case KindPair:
		return "pair"
	default:
		return "unknown"
	}
}

// Value is an interpreter result classified into one of a fixed set of
// variants. String renders the canonical form used for equality and
// distinctness checks.
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

// NumberValue is an integer or floating point number.
type NumberValue struct {
	N       float64
	Integer bool
}

// Int returns an integer NumberValue.
func Int(n int64) NumberValue { return NumberValue{N: float64(n), Integer: true} }

// Float returns a float NumberValue.
func Float(f float64) NumberValue { return NumberValue{N: f} }

func (NumberValue) Kind() Kind { return KindNumber }
func (NumberValue) isValue()   {}

func (v NumberValue) String() string {
	if v.Integer {
		return strconv.FormatInt(int64(v.N), 10)
	}
	return strconv.FormatFloat(v.N, 'g', -1, 64)
}

// Int64 returns the number truncated to an integer.
func (v NumberValue) Int64() int64 { return int64(v.N) }

// BoolValue is a boolean.
type BoolValue struct {
	B bool
}

func (BoolValue) Kind() Kind { return KindBool }
func (BoolValue) isValue()   {}

func (v BoolValue) String() string { return strconv.FormatBool(v.B) }

// NullValue is Source's null, which doubles as the empty list.
type NullValue struct{}

func (NullValue) Kind() Kind     { return KindNull }
func (NullValue) isValue()       {}
func (NullValue) String() string { return "null" }

// ListValue is a Source list held as a flat element slice.
type ListValue struct {
	Elems []Value
}

func (ListValue) Kind() Kind { return KindList }
func (ListValue) isValue()   {}

func (v ListValue) String() string { return FormatList(v.Elems) }

// Len returns the number of elements.
func (v ListValue) Len() int { return len(v.Elems) }

// PairValue is a pair whose tail is not a list, such as pair(1, 2). It
// renders in box notation as "[1, 2]".
type PairValue struct {
	Head, Tail Value
}

func (PairValue) Kind() Kind { return KindPair }
func (PairValue) isValue()   {}

func (v PairValue) String() string {
	return "[" + formatElem(v.Head) + ", " + formatElem(v.Tail) + "]"
}

// ComplexityValue is an order-of-growth class in canonical form, e.g. "O(n log n)".
type ComplexityValue struct {
	Class string
}

func (ComplexityValue) Kind() Kind { return KindComplexity }
func (ComplexityValue) isValue()   {}

func (v ComplexityValue) String() string { return v.Class }

// StringValue is any text that did not classify as something more specific.
type StringValue struct {
	S string
}

func (StringValue) Kind() Kind { return KindString }
func (StringValue) isValue()   {}

func (v StringValue) String() string { return v.S }

// Process labels used for recursive/iterative process questions.
const (
	RecursiveProcess = "Recursive Process"
	IterativeProcess = "Iterative Process"
)

// IsProcessLabel reports whether the string names a process type.
func (v StringValue) IsProcessLabel() bool {
	s := strings.ToLower(strings.TrimSpace(v.S))
	return s == "recursive process" || s == "iterative process" ||
		s == "recursive" || s == "iterative"
}

// Equal reports whether two values render identically within a compatible
// category.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Compatible(a, b) && a.String() == b.String()
}

// Compatible reports whether b may stand in for a as a multiple-choice
// option. Null, pairs and lists are interchangeable: all are box-and-pointer
// structures.
func Compatible(a, b Value) bool {
	return category(a.Kind()) == category(b.Kind())
}

func category(k Kind) Kind {
	if k == KindNull || k == KindPair {
		return KindList
	}
	return k
}

// Native converts v to a plain Go value suitable for JSON encoding.
func Native(v Value) any {
	switch t := v.(type) {
	case nil:
		return nil
	case NumberValue:
		if t.Integer {
			return t.Int64()
		}
		return t.N
	case BoolValue:
		return t.B
	case NullValue:
		return nil
	default:
		return v.String()
	}
}
