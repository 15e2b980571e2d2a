package value

import (
	"encoding/json"
	"testing"
)

func TestParse_OrderedChecks(t *testing.T) {
	tests := []struct {
		raw      any
		wantKind Kind
		wantStr  string
	}{
		{"true", KindBool, "true"},
		{"FALSE", KindBool, "false"},
		{"Null", KindNull, "null"},
		{"120", KindNumber, "120"},
		{"-7", KindNumber, "-7"},
		{"2.5", KindNumber, "2.5"},
		{"1e3", KindNumber, "1000"},
		{"O(n)", KindComplexity, "O(n)"},
		{"O(n²)", KindComplexity, "O(n^2)"},
		{"O( nlogn )", KindComplexity, "O(n log n)"},
		{"[1, [2, [3, null]]]", KindList, "[1, [2, [3, null]]]"},
		{"[1, 2, 3]", KindList, "[1, [2, [3, null]]]"},
		{"[]", KindNull, "null"},
		{"[1, 2]", KindPair, "[1, 2]"},
		{"Recursive Process", KindString, "Recursive Process"},
		{"hello world", KindString, "hello world"},
		{"[1, 2", KindString, "[1, 2"},
		{nil, KindNull, "null"},
		{true, KindBool, "true"},
		{42, KindNumber, "42"},
		{float64(120), KindNumber, "120"},
		{3.25, KindNumber, "3.25"},
		{json.Number("15"), KindNumber, "15"},
		{[]any{float64(1), float64(2)}, KindPair, "[1, 2]"},
		{[]any{float64(1), []any{float64(2), nil}}, KindList, "[1, [2, null]]"},
		{[]any{float64(1), float64(2), float64(3)}, KindList, "[1, [2, [3, null]]]"},
	}

	for _, tt := range tests {
		got := Parse(tt.raw)
		if got.Kind() != tt.wantKind {
			t.Errorf("Parse(%#v).Kind() = %s, want %s", tt.raw, got.Kind(), tt.wantKind)
		}
		if got.String() != tt.wantStr {
			t.Errorf("Parse(%#v).String() = %q, want %q", tt.raw, got.String(), tt.wantStr)
		}
	}
}

func TestParse_IntegerRoundTrip(t *testing.T) {
	v := Parse("120")
	n, ok := v.(NumberValue)
	if !ok {
		t.Fatalf("expected NumberValue, got %T", v)
	}
	if !n.Integer {
		t.Fatal("expected integer flavour")
	}
	if n.Int64() != 120 {
		t.Errorf("Int64() = %d, want 120", n.Int64())
	}
	if n.String() != "120" {
		t.Errorf("String() = %q, want %q", n.String(), "120")
	}
}

func TestParse_FloatIsNotInteger(t *testing.T) {
	n, ok := Parse("120.0").(NumberValue)
	if !ok {
		t.Fatal("expected NumberValue")
	}
	if n.Integer {
		t.Error("120.0 should classify as float")
	}
}

func TestParseList_NestedElements(t *testing.T) {
	elems, err := ParseList(`[[1, [2, null]], [3, null]]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elems))
	}
	inner, ok := elems[0].(ListValue)
	if !ok {
		t.Fatalf("expected nested list, got %T", elems[0])
	}
	if inner.Len() != 2 {
		t.Errorf("inner length = %d, want 2", inner.Len())
	}
}

func TestParseList_QuotedStrings(t *testing.T) {
	elems, err := ParseList(`["a", ['b', null]]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elems))
	}
	if got := FormatList(elems); got != `["a", ["b", null]]` {
		t.Errorf("FormatList = %q", got)
	}
}

func TestParseList_Errors(t *testing.T) {
	for _, in := range []string{"", "[1,", "[1]]", "5", `["x]`} {
		if _, err := ParseList(in); err == nil {
			t.Errorf("ParseList(%q) expected error", in)
		}
	}
}

func TestEqualAndCompatible(t *testing.T) {
	if !Equal(Int(3), Parse("3")) {
		t.Error("3 should equal parsed \"3\"")
	}
	if Equal(Int(3), StringValue{S: "3"}) {
		t.Error("number and string should not be equal")
	}
	if !Compatible(NullValue{}, ListValue{Elems: []Value{Int(1)}}) {
		t.Error("null should be compatible with lists")
	}
	if Compatible(BoolValue{}, Int(0)) {
		t.Error("bool should not be compatible with number")
	}
}

func TestNative(t *testing.T) {
	if got := Native(Int(5)); got != int64(5) {
		t.Errorf("Native(Int(5)) = %#v", got)
	}
	if got := Native(NullValue{}); got != nil {
		t.Errorf("Native(null) = %#v", got)
	}
	if got := Native(ComplexityValue{Class: "O(1)"}); got != "O(1)" {
		t.Errorf("Native(O(1)) = %#v", got)
	}
}

func TestProcessLabel(t *testing.T) {
	if !(StringValue{S: RecursiveProcess}).IsProcessLabel() {
		t.Error("expected process label")
	}
	if (StringValue{S: "banana"}).IsProcessLabel() {
		t.Error("unexpected process label")
	}
}

func TestParseString_PairsKeepTheirShape(t *testing.T) {
	tests := []string{
		"[1, 2]",
		"[[1, 2], [3, null]]",
		"[[1, 2], [3, 4]]",
		"[1, [2, 3]]",
		`["a", true]`,
		"[[1, [2, null]], [3, null]]",
	}
	for _, in := range tests {
		if got := ParseString(in).String(); got != in {
			t.Errorf("ParseString(%q).String() = %q", in, got)
		}
	}
}

func TestParseString_PairIsNotList(t *testing.T) {
	pair := ParseString("[1, 2]")
	list := ParseString("[1, [2, null]]")
	if _, ok := pair.(PairValue); !ok {
		t.Fatalf("expected PairValue, got %T", pair)
	}
	if Equal(pair, list) {
		t.Error("pair(1, 2) must differ from list(1, 2)")
	}
	if !Compatible(list, pair) {
		t.Error("pairs and lists should be interchangeable options")
	}
	if _, err := ParseList("[1, 2]"); err == nil {
		t.Error("ParseList should reject an improper pair")
	}
}

func TestParseString_TreeOfPairs(t *testing.T) {
	v := ParseString("[[1, 2], [3, null]]")
	l, ok := v.(ListValue)
	if !ok {
		t.Fatalf("expected ListValue, got %T", v)
	}
	if len(l.Elems) != 2 {
		t.Fatalf("len = %d, want 2", len(l.Elems))
	}
	head, ok := l.Elems[0].(PairValue)
	if !ok {
		t.Fatalf("first element %T, want PairValue", l.Elems[0])
	}
	if head.Head.String() != "1" || head.Tail.String() != "2" {
		t.Errorf("head = %s", head)
	}
}
