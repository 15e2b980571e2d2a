package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sourcequiz/internal/difficulty"
	"github.com/abhisek/sourcequiz/internal/pipeline"
	"github.com/abhisek/sourcequiz/internal/quiz"
	"github.com/abhisek/sourcequiz/internal/store"
)

const factorial = `function factorial(n) {
    return n === 0 ? 1 : n * factorial(n - 1);
}
factorial(5);`

type fakeGenerator struct {
	out  pipeline.Outcome
	err  error
	reqs []pipeline.Request
}

func (g *fakeGenerator) Generate(_ context.Context, req pipeline.Request) (pipeline.Outcome, error) {
	g.reqs = append(g.reqs, req)
	return g.out, g.err
}

type memQuestions struct {
	mu sync.Mutex
	qs []*quiz.Question
}

func (m *memQuestions) Save(_ context.Context, q *quiz.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.qs = append(m.qs, q)
	return nil
}

func (m *memQuestions) Get(_ context.Context, id string) (*quiz.Question, error) {
	for _, q := range m.qs {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, nil
}

func (m *memQuestions) List(_ context.Context, f store.QuestionFilter) ([]*quiz.Question, error) {
	var out []*quiz.Question
	for _, q := range m.qs {
		if f.Chapter != 0 && q.Chapter != f.Chapter {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (m *memQuestions) CountByDifficulty(context.Context) (map[string]int, error) {
	return nil, nil
}

func newTestServer(t *testing.T, deps Deps) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(deps, Options{Seed: 7}, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Deps{})
	resp, body := do(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}

func TestListConcepts(t *testing.T) {
	srv := newTestServer(t, Deps{})

	_, all := do(t, http.MethodGet, srv.URL+"/api/concepts", "")
	_, ch1 := do(t, http.MethodGet, srv.URL+"/api/concepts?chapter=1", "")

	allTopics := all["concepts"].([]any)
	ch1Topics := ch1["concepts"].([]any)
	assert.Greater(t, len(allTopics), len(ch1Topics))
	for _, raw := range ch1Topics {
		topic := raw.(map[string]any)
		assert.EqualValues(t, 1, topic["chapter"], "topic %v", topic["id"])
	}

	resp, body := do(t, http.MethodGet, srv.URL+"/api/concepts?chapter=zero", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "invalid chapter")
}

func TestAnalyze(t *testing.T) {
	srv := newTestServer(t, Deps{})

	payload, _ := json.Marshal(map[string]any{
		"code":     factorial,
		"concepts": []string{"recursion"},
		"target":   "very hard",
	})
	resp, body := do(t, http.MethodPost, srv.URL+"/api/analyze", string(payload))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	metrics := body["metrics"].(map[string]any)
	assert.EqualValues(t, 1, metrics["concept_count"])
	assert.GreaterOrEqual(t, metrics["recursive_depth"].(float64), 1.0)
	assert.True(t, difficulty.Level(body["level"].(string)).Valid())
	require.Contains(t, body, "on_target")
	assert.NotEmpty(t, body["message"])
	if body["on_target"] == false {
		assert.NotEmpty(t, body["suggestions"])
	}
}

func TestAnalyze_BadRequests(t *testing.T) {
	srv := newTestServer(t, Deps{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"code":`, "invalid request body"},
		{"no code", `{"concepts":["recursion"]}`, "code is required"},
		{"bad target", `{"code":"1;","target":"impossible"}`, "unknown difficulty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/api/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, body["error"], tt.want)
		})
	}
}

func TestDistractors(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp, body := do(t, http.MethodPost, srv.URL+"/api/distractors",
		`{"concept":"recursion","correct":120,"count":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "120", body["correct"])
	ds := body["distractors"].([]any)
	require.Len(t, ds, 3)
	seen := map[string]bool{}
	for _, raw := range ds {
		d := raw.(map[string]any)
		v := d["value"].(string)
		assert.NotEqual(t, "120", v)
		assert.False(t, seen[v], "duplicate distractor %s", v)
		seen[v] = true
		assert.NotEmpty(t, d["misconception"])
	}
	assert.Empty(t, body["issues"])

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/distractors", `{"concept":"recursion"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDistractors_Limits(t *testing.T) {
	srv := newTestServer(t, Deps{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"count above option labels", `{"correct":120,"count":6}`, http.StatusBadRequest},
		{"huge count", `{"correct":120,"count":1000000000}`, http.StatusBadRequest},
		{"huge pair count", `{"correct":"[1, null]","pair_count":1000000000}`, http.StatusBadRequest},
		{"negative pair count", `{"correct":"[1, null]","pair_count":-1}`, http.StatusBadRequest},
		{"largest count", `{"correct":120,"count":5}`, http.StatusOK},
		{"largest pair count", `{"concept":"lists","correct":"[1, null]","pair_count":1000}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := do(t, http.MethodPost, srv.URL+"/api/distractors", tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestDistractors_PairKeepsShape(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp, body := do(t, http.MethodPost, srv.URL+"/api/distractors", `{"concept":"pairs","correct":"[1, 2]"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[1, 2]", body["correct"])
}

func TestScore(t *testing.T) {
	srv := newTestServer(t, Deps{})

	payload, _ := json.Marshal(map[string]any{
		"code":     factorial,
		"concepts": []string{"recursion"},
		"correct":  120,
		"distractors": []map[string]any{
			{"value": 24, "misconception": "off-by-one in base case"},
			{"value": 720, "misconception": "one extra recursive call"},
			{"value": 1, "misconception": "returns base case value"},
		},
		"target": "easy",
		"actual": "easy",
	})
	resp, body := do(t, http.MethodPost, srv.URL+"/api/score", string(payload))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	sc := body["score"].(map[string]any)
	total := sc["total_score"].(float64)
	assert.GreaterOrEqual(t, total, 0.0)
	assert.LessOrEqual(t, total, 100.0)
	assert.EqualValues(t, 100, sc["difficulty_calibration"])
	assert.Contains(t, body, "acceptable")
}

func TestGenerate(t *testing.T) {
	q := &quiz.Question{ID: "q-1", Chapter: 1, Difficulty: difficulty.LevelEasy, Code: factorial}
	gen := &fakeGenerator{out: pipeline.Outcome{Question: q, Attempts: 2}}
	srv := newTestServer(t, Deps{Generator: gen})

	resp, body := do(t, http.MethodPost, srv.URL+"/api/questions", `{"chapter":1,"difficulty":"Easy"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 2, body["attempts"])
	assert.Equal(t, "q-1", body["question"].(map[string]any)["id"])

	require.Len(t, gen.reqs, 1)
	assert.Equal(t, 1, gen.reqs[0].Chapter)
	assert.Equal(t, difficulty.LevelEasy, gen.reqs[0].Difficulty)
}

func TestGenerate_Failures(t *testing.T) {
	gen := &fakeGenerator{out: pipeline.Outcome{
		Attempts: 3,
		Failures: []pipeline.Failure{{Attempt: 3, Stage: pipeline.StageQuality, Kind: pipeline.FailureQuality, Messages: []string{"too easy"}}},
	}}
	srv := newTestServer(t, Deps{Generator: gen})

	resp, body := do(t, http.MethodPost, srv.URL+"/api/questions", `{"chapter":2,"difficulty":"hard"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Len(t, body["failures"], 1)

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/questions", `{"chapter":9,"difficulty":"hard"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	gen.err = context.DeadlineExceeded
	resp, _ = do(t, http.MethodPost, srv.URL+"/api/questions", `{"chapter":2,"difficulty":"hard"}`)
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
}

func TestQuestions(t *testing.T) {
	repo := &memQuestions{}
	require.NoError(t, repo.Save(context.Background(), &quiz.Question{ID: "a", Chapter: 1}))
	require.NoError(t, repo.Save(context.Background(), &quiz.Question{ID: "b", Chapter: 2}))
	srv := newTestServer(t, Deps{Questions: repo})

	resp, body := do(t, http.MethodGet, srv.URL+"/api/questions?chapter=2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])

	resp, body = do(t, http.MethodGet, srv.URL+"/api/questions/a", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a", body["id"])

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/questions/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/questions?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnconfiguredRoutes(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp, _ := do(t, http.MethodPost, srv.URL+"/api/questions", `{"chapter":1,"difficulty":"easy"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/questions", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	srv := httptest.NewServer(New(Deps{}, Options{AllowedOrigins: []string{"https://quiz.example"}}, nil).Handler())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set("Origin", "https://quiz.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://quiz.example", resp.Header.Get("Access-Control-Allow-Origin"))
}
