package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/sourcequiz/internal/curriculum"
	"github.com/abhisek/sourcequiz/internal/difficulty"
	"github.com/abhisek/sourcequiz/internal/distractor"
	"github.com/abhisek/sourcequiz/internal/pipeline"
	"github.com/abhisek/sourcequiz/internal/quality"
	"github.com/abhisek/sourcequiz/internal/store"
	"github.com/abhisek/sourcequiz/internal/value"
)

const maxBody = 1 << 20

var errUnavailable = errors.New("not configured on this server")

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listConcepts(w http.ResponseWriter, r *http.Request) {
	var topics []curriculum.Topic
	if c := r.URL.Query().Get("chapter"); c != "" {
		chapter, err := strconv.Atoi(c)
		if err != nil || chapter < 1 {
			s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid chapter %q", c))
			return
		}
		topics = s.deps.Graph.Available(chapter)
	} else {
		topics = s.deps.Graph.Topics()
	}
	writeJSON(w, http.StatusOK, map[string]any{"concepts": topics})
}

type analyzeRequest struct {
	Code      string   `json:"code"`
	Concepts  []string `json:"concepts"`
	InputSize int      `json:"input_size"`
	Target    string   `json:"target,omitempty"`
}

type analyzeResponse struct {
	Metrics     difficulty.Metrics `json:"metrics"`
	Level       difficulty.Level   `json:"level"`
	OnTarget    *bool              `json:"on_target,omitempty"`
	Message     string             `json:"message,omitempty"`
	Suggestions []string           `json:"suggestions,omitempty"`
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Code == "" {
		s.respondError(w, http.StatusBadRequest, errors.New("code is required"))
		return
	}
	if req.InputSize <= 0 {
		req.InputSize = difficulty.DefaultInputSize
	}

	m := s.deps.Analyzer.Analyze(req.Code, req.Concepts, req.InputSize)
	resp := analyzeResponse{Metrics: m, Level: difficulty.Classify(m)}
	if req.Target != "" {
		target, err := difficulty.ParseLevel(req.Target)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err)
			return
		}
		ok, msg := difficulty.ValidateTarget(target, resp.Level)
		resp.OnTarget, resp.Message = &ok, msg
		if !ok {
			resp.Suggestions = difficulty.SuggestAdjustments(m, target)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type distractorsRequest struct {
	Concept   string   `json:"concept"`
	Correct   any      `json:"correct"`
	PairCount int      `json:"pair_count,omitempty"`
	Output    []string `json:"output,omitempty"`
	TrapLogic []string `json:"trap_logic,omitempty"`
	Count     int      `json:"count,omitempty"`
}

type distractorJSON struct {
	Value         string `json:"value"`
	Misconception string `json:"misconception"`
	Explanation   string `json:"explanation,omitempty"`
}

func (s *Server) distractors(w http.ResponseWriter, r *http.Request) {
	var req distractorsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Correct == nil {
		s.respondError(w, http.StatusBadRequest, errors.New("correct is required"))
		return
	}
	if req.Count <= 0 {
		req.Count = distractor.DefaultCount
	}
	if req.Count > distractor.MaxCount {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("count must be at most %d, got %d", distractor.MaxCount, req.Count))
		return
	}
	if req.PairCount < 0 || req.PairCount > distractor.MaxPairCount {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("pair_count must be between 0 and %d, got %d", distractor.MaxPairCount, req.PairCount))
		return
	}

	correct := value.Parse(req.Correct)
	gt := value.GroundTruth{Value: correct, PairCount: req.PairCount, Output: req.Output}
	ds := distractor.GenerateWithTrap(s.requestRNG(), req.Concept, correct, gt, req.TrapLogic, req.Count)

	out := make([]distractorJSON, len(ds))
	for i, d := range ds {
		out[i] = distractorJSON{Value: d.Value.String(), Misconception: d.Misconception, Explanation: d.Explanation}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"correct":     correct.String(),
		"distractors": out,
		"issues":      distractor.Validate(correct, distractor.Values(ds)),
	})
}

type scoreRequest struct {
	Code        string   `json:"code"`
	Concepts    []string `json:"concepts"`
	Correct     any      `json:"correct"`
	Distractors []struct {
		Value         any    `json:"value"`
		Misconception string `json:"misconception"`
	} `json:"distractors"`
	Target       string `json:"target"`
	Actual       string `json:"actual,omitempty"`
	QuestionText string `json:"question_text,omitempty"`
}

func (s *Server) score(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !s.decode(w, r, &req) {
		return
	}
	target, err := difficulty.ParseLevel(req.Target)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	in := quality.Input{
		Code:         req.Code,
		Concepts:     req.Concepts,
		Correct:      value.Parse(req.Correct),
		Target:       target,
		QuestionText: req.QuestionText,
	}
	if req.Actual != "" {
		if in.Actual, err = difficulty.ParseLevel(req.Actual); err != nil {
			s.respondError(w, http.StatusBadRequest, err)
			return
		}
	}
	for _, d := range req.Distractors {
		in.Distractors = append(in.Distractors, distractor.Distractor{
			Value:         value.Parse(d.Value),
			Misconception: d.Misconception,
		})
	}

	sc := quality.Evaluate(in)
	writeJSON(w, http.StatusOK, map[string]any{
		"score":      sc,
		"acceptable": sc.Acceptable(quality.DefaultThreshold),
	})
}

type generateRequest struct {
	Chapter    int    `json:"chapter"`
	Difficulty string `json:"difficulty"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	if s.deps.Generator == nil {
		s.respondError(w, http.StatusServiceUnavailable, fmt.Errorf("question generation: %w", errUnavailable))
		return
	}
	var req generateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Chapter < 1 || req.Chapter > 4 {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("chapter must be between 1 and 4, got %d", req.Chapter))
		return
	}
	level, err := difficulty.ParseLevel(req.Difficulty)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.GenerateTimeout)
	defer cancel()

	out, err := s.deps.Generator.Generate(ctx, pipeline.Request{Chapter: req.Chapter, Difficulty: level})
	if err != nil {
		s.logger.Warn("generation aborted", "error", err)
		s.respondError(w, http.StatusGatewayTimeout, err)
		return
	}
	if !out.OK() {
		writeJSON(w, http.StatusUnprocessableEntity, out)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	if s.deps.Questions == nil {
		s.respondError(w, http.StatusServiceUnavailable, fmt.Errorf("question archive: %w", errUnavailable))
		return
	}
	q := r.URL.Query()
	f := store.QuestionFilter{
		Difficulty: q.Get("difficulty"),
		Concept:    q.Get("concept"),
		BatchID:    q.Get("batch"),
		Limit:      50,
	}
	if c := q.Get("chapter"); c != "" {
		n, err := strconv.Atoi(c)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid chapter %q", c))
			return
		}
		f.Chapter = n
	}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", l))
			return
		}
		f.Limit = n
	}

	qs, err := s.deps.Questions.List(r.Context(), f)
	if err != nil {
		s.logger.Error("list questions", "error", err)
		s.respondError(w, http.StatusInternalServerError, errors.New("failed to list questions"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": qs, "count": len(qs)})
}

func (s *Server) getQuestion(w http.ResponseWriter, r *http.Request) {
	if s.deps.Questions == nil {
		s.respondError(w, http.StatusServiceUnavailable, fmt.Errorf("question archive: %w", errUnavailable))
		return
	}
	id := chi.URLParam(r, "questionID")
	q, err := s.deps.Questions.Get(r.Context(), id)
	if err != nil {
		s.logger.Error("get question", "id", id, "error", err)
		s.respondError(w, http.StatusInternalServerError, errors.New("failed to load question"))
		return
	}
	if q == nil {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("question %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) respondError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
