package cmd

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/sourcequiz/internal/conceptgraph"
	"github.com/abhisek/sourcequiz/internal/config"
	"github.com/abhisek/sourcequiz/internal/curriculum"
	"github.com/abhisek/sourcequiz/internal/difficulty"
	"github.com/abhisek/sourcequiz/internal/interpreter"
	"github.com/abhisek/sourcequiz/internal/llm"
	"github.com/abhisek/sourcequiz/internal/pipeline"
	"github.com/abhisek/sourcequiz/internal/problemgen"
	"github.com/abhisek/sourcequiz/internal/store"
)

// env is everything a command may need, built from flags and config.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	cur    *curriculum.Curriculum
}

// loadEnv reads the config file, applies flag overrides and loads the
// curriculum documents.
func loadEnv(cmd *cobra.Command) (*env, error) {
	path, err := configPath(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path, nil)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))

	cur, err := curriculum.Load(cfg.CurriculumPaths(), logger)
	if err != nil {
		return nil, fmt.Errorf("load curriculum: %w", err)
	}
	return &env{cfg: cfg, logger: logger, cur: cur}, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then SOURCEQUIZ_DB and the default XDG path.
func (e *env) resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if e != nil && e.cfg.Data.DB != "" {
		return e.cfg.Data.DB, store.EnsureDir(e.cfg.Data.DB)
	}
	return store.DefaultDBPath()
}

func (e *env) openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := e.resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func (e *env) rng() *rand.Rand {
	seed := e.cfg.Pipeline.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (e *env) analyzer() *difficulty.Analyzer {
	return difficulty.NewAnalyzer(e.cur.Syllabus.Difficulties())
}

// provider builds the LLM provider. Without credentials it returns nil and
// generation falls back to templates.
func (e *env) provider(cmd *cobra.Command, events store.EventRepo, offline bool) llm.Provider {
	if offline {
		return nil
	}
	p, err := llm.NewProvider(cmd.Context(), e.cfg.LLMSettings(), events, e.logger)
	if err != nil {
		e.logger.Warn("LLM provider not configured, using templates", "error", err)
		return nil
	}
	return p
}

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("offline", false, "Skip the LLM and use built-in templates")
	cmd.Flags().Bool("no-save", false, "Do not archive accepted questions in the database")
	cmd.Flags().Int("max-attempts", 0, "Attempts per question (default from config)")
	cmd.Flags().Float64("threshold", -1, "Minimum quality score (default from config)")
}

// buildPipeline wires the generation pipeline. st may be nil.
func (e *env) buildPipeline(cmd *cobra.Command, st *store.Store) (*pipeline.Pipeline, error) {
	offline, _ := cmd.Flags().GetBool("offline")
	noSave, _ := cmd.Flags().GetBool("no-save")

	pcfg := e.cfg.PipelineSettings()
	if n, _ := cmd.Flags().GetInt("max-attempts"); n > 0 {
		pcfg.MaxAttempts = n
	}
	if th, _ := cmd.Flags().GetFloat64("threshold"); th >= 0 {
		pcfg.QualityThreshold = th
	}

	var events store.EventRepo
	if st != nil {
		events = st.EventRepo()
	}
	provider := e.provider(cmd, events, offline)

	rng := e.rng()
	gcfg := problemgen.DefaultConfig()
	gcfg.Validators = problemgen.ValidatorsFor(e.cur.Rules)

	deps := pipeline.Deps{
		Concepts:    conceptgraph.New(e.cur.Syllabus),
		Traps:       e.cur.Traps,
		Code:        problemgen.NewCodeGenerator(provider, e.cur.Rules, gcfg, e.logger),
		Writer:      problemgen.NewQuestionWriter(provider, gcfg, rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64())), e.logger),
		Interpreter: interpreter.NewSubprocess(e.cfg.InterpreterSettings(), e.logger),
		Analyzer:    e.analyzer(),
		Validators:  gcfg.Validators,
	}
	if st != nil && !noSave {
		deps.Archive = st.QuestionRepo()
	}
	return pipeline.New(deps, pcfg, rng, e.logger), nil
}

func parseRequest(cmd *cobra.Command) (pipeline.Request, error) {
	chapter, _ := cmd.Flags().GetInt("chapter")
	if chapter < 1 || chapter > 4 {
		return pipeline.Request{}, fmt.Errorf("--chapter must be between 1 and 4, got %d", chapter)
	}
	raw, _ := cmd.Flags().GetString("difficulty")
	level, err := difficulty.ParseLevel(raw)
	if err != nil {
		return pipeline.Request{}, err
	}
	return pipeline.Request{Chapter: chapter, Difficulty: level}, nil
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("chapter", "c", 1, "Source chapter (1-4)")
	cmd.Flags().StringP("difficulty", "d", "medium", "Target difficulty: easy, medium, hard or very_hard")
}
