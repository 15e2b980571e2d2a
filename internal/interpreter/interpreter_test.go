package interpreter

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sourcequiz/internal/value"
)

func shell(t *testing.T, script string, timeout time.Duration) *Subprocess {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	return NewSubprocess(Config{Command: []string{"sh", "-c", script}, Timeout: timeout}, nil)
}

func TestSubprocess_Success(t *testing.T) {
	s := shell(t, `cat >/dev/null; echo '{"success": true, "value": 120, "displayValue": "120", "pairCount": 0}'`, 5*time.Second)

	out, err := s.Execute(context.Background(), "factorial(5);", 1)
	require.NoError(t, err)
	assert.True(t, out.Success)

	gt := out.GroundTruth()
	assert.Equal(t, value.Int(120), gt.Value)
}

func TestSubprocess_ReceivesRequest(t *testing.T) {
	reqFile := filepath.Join(t.TempDir(), "request.json")
	s := shell(t, `cat > '`+reqFile+`'; echo '{"success": false, "error": "Name x not declared."}'`, 5*time.Second)

	out, err := s.Execute(context.Background(), "1 + 2;", 3)
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "Name x not declared.", out.Error)

	raw, err := os.ReadFile(reqFile)
	require.NoError(t, err)
	var req Request
	require.NoError(t, json.Unmarshal(raw, &req))
	assert.Equal(t, Request{Code: "1 + 2;", Chapter: 3}, req)
}

func TestSubprocess_Timeout(t *testing.T) {
	s := shell(t, `sleep 5`, 100*time.Millisecond)

	_, err := s.Execute(context.Background(), "while (true) {}", 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 100*time.Millisecond, te.Limit)
}

func TestSubprocess_NonJSONOutput(t *testing.T) {
	s := shell(t, `cat >/dev/null; echo 'Segmentation fault'`, 5*time.Second)

	_, err := s.Execute(context.Background(), "1;", 1)
	var oe *OutputError
	require.ErrorAs(t, err, &oe)
	assert.Contains(t, oe.Output, "Segmentation fault")
}

func TestSubprocess_ExitWithoutJSON(t *testing.T) {
	s := shell(t, `cat >/dev/null; echo boom >&2; exit 3`, 5*time.Second)

	_, err := s.Execute(context.Background(), "1;", 1)
	var pe *ProcessError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "boom", pe.Stderr)
}

func TestSubprocess_MissingExecutable(t *testing.T) {
	s := NewSubprocess(Config{Command: []string{"definitely-not-an-interpreter-binary"}}, nil)

	_, err := s.Execute(context.Background(), "1;", 1)
	var pe *ProcessError
	require.ErrorAs(t, err, &pe)
	assert.True(t, strings.Contains(pe.Error(), "definitely-not-an-interpreter-binary"))
}

func TestGroundTruth(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		kind value.Kind
	}{
		{"integer", `{"success": true, "value": 15}`, "15", value.KindNumber},
		{"boolean", `{"success": true, "value": false}`, "false", value.KindBool},
		{"null", `{"success": true, "value": null}`, "null", value.KindNull},
		{"pair chain", `{"success": true, "value": [1, [2, null]], "pairCount": 2}`, "[1, [2, null]]", value.KindList},
		{"display preferred", `{"success": true, "value": [1, [2, null]], "displayValue": "[1, [2, null]]"}`, "[1, [2, null]]", value.KindList},
		{"improper pair", `{"success": true, "value": [1, 2], "displayValue": "[1, 2]", "pairCount": 1}`, "[1, 2]", value.KindPair},
		{"improper pair without display", `{"success": true, "value": [1, 2], "pairCount": 1}`, "[1, 2]", value.KindPair},
		{"tree of pairs", `{"success": true, "value": [[1, 2], [3, null]], "displayValue": "[[1, 2], [3, null]]"}`, "[[1, 2], [3, null]]", value.KindList},
		{"undefined", `{"success": true, "value": null, "displayValue": "undefined"}`, "undefined", value.KindString},
		{"null display", `{"success": true, "value": null, "displayValue": "null"}`, "null", value.KindNull},
		{"complexity string", `{"success": true, "value": "O(n)"}`, "O(n)", value.KindComplexity},
		{"process label", `{"success": true, "value": "Iterative Process"}`, "Iterative Process", value.KindString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := json.NewDecoder(strings.NewReader(tt.in))
			dec.UseNumber()
			var o EvalOutcome
			require.NoError(t, dec.Decode(&o))

			gt := o.GroundTruth()
			assert.Equal(t, tt.kind, gt.Value.Kind())
			assert.Equal(t, tt.want, gt.Value.String())
		})
	}
}

func TestFunc(t *testing.T) {
	var i Interpreter = Func(func(_ context.Context, code string, chapter int) (*EvalOutcome, error) {
		return &EvalOutcome{Success: true, Value: json.Number("3")}, nil
	})
	out, err := i.Execute(context.Background(), "1 + 2;", 1)
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), out.GroundTruth().Value)
}
