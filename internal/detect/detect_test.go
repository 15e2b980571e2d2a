package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	factorial     = "const factorial = n => n === 0 ? 1 : n * factorial(n - 1);\nfactorial(5);"
	factIter      = "const fact_iter = (n, acc) => n === 0 ? acc : fact_iter(n - 1, acc * n);\nfact_iter(5, 1);"
	sumList       = "const sum_list = lst => is_null(lst) ? 0 : head(lst) + sum_list(tail(lst));\nsum_list(list(1,2,3,4,5));"
	plainFunction = "function square(x) {\n  return x * x;\n}\nsquare(4);"
	recursiveDecl = "function fib(n) {\n  return n <= 1 ? n : fib(n - 1) + fib(n - 2);\n}\nfib(6);"
)

func TestFunctions(t *testing.T) {
	fns := Functions(factorial + "\n" + plainFunction)
	require.Len(t, fns, 2)
	assert.Equal(t, "factorial", fns[0].Name)
	assert.Equal(t, "square", fns[1].Name)
	assert.Contains(t, fns[1].Body, "return x * x")
}

func TestCallsAfterDefinition(t *testing.T) {
	fns := Functions(recursiveDecl)
	require.Len(t, fns, 1)
	assert.Equal(t, 3, CallsAfterDefinition(recursiveDecl, fns[0]))
}

func TestRecursionDetector(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"arrow recursion", factorial, true},
		{"declaration recursion", recursiveDecl, true},
		{"not recursive", plainFunction, false},
		{"called twice at top level", "const f = x => x + 1;\nf(1);\nf(2);", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detector("recursion").Detect(tt.code))
		})
	}
}

func TestProcessDetectors(t *testing.T) {
	assert.True(t, Detector("recursion_process").Detect(factorial))
	assert.False(t, Detector("recursion_process").Detect(factIter))
	assert.True(t, Detector("iterative_process").Detect(factIter))
	assert.False(t, Detector("iterative_process").Detect(factorial))
}

func TestListDetectors(t *testing.T) {
	assert.True(t, Detector("lists").Detect(sumList))
	assert.True(t, Detector("pairs").Detect("const p = pair(1, 2);\nhead(p);"))
	assert.True(t, Detector("list_library").Detect("map(x => x * 2, list(1, 2));"))
	assert.False(t, Detector("lists").Detect(plainFunction))
}

func TestHigherOrderDetector(t *testing.T) {
	d := Detector("higher_order_functions")
	assert.True(t, d.Detect("const adder = x => y => x + y;\nadder(1)(2);"))
	assert.True(t, d.Detect("map(x => x + 1, list(1, 2, 3));"))
	assert.False(t, d.Detect(plainFunction))
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("quantum_computing")
	assert.False(t, ok)
	assert.Nil(t, Detector("quantum_computing"))
}

func TestDetectAll(t *testing.T) {
	got := DetectAll(sumList)
	assert.Contains(t, got, "recursion")
	assert.Contains(t, got, "lists")
	assert.NotContains(t, got, "streams")
}
