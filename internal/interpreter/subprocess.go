package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout is the wall-clock limit for one program.
const DefaultTimeout = 10 * time.Second

// DefaultCommand runs the js-slang wrapper script with node.
var DefaultCommand = []string{"node", "js_slang_wrapper.js"}

// Config holds subprocess interpreter configuration.
type Config struct {
	// Command is the program and arguments to run.
	Command []string
	// Dir is the working directory; empty means the current directory.
	Dir     string
	Timeout time.Duration
}

// Subprocess runs one interpreter process per program, writing a Request
// to its stdin and reading an EvalOutcome from its stdout.
type Subprocess struct {
	command []string
	dir     string
	timeout time.Duration
	logger  *slog.Logger
}

// NewSubprocess creates a subprocess interpreter, filling in defaults.
func NewSubprocess(cfg Config, logger *slog.Logger) *Subprocess {
	if len(cfg.Command) == 0 {
		cfg.Command = DefaultCommand
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Subprocess{
		command: cfg.Command,
		dir:     cfg.Dir,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Execute runs code. Timeouts yield *TimeoutError, unparseable output
// *OutputError and launch or exit failures *ProcessError.
func (s *Subprocess) Execute(ctx context.Context, code string, chapter int) (*EvalOutcome, error) {
	input, err := json.Marshal(Request{Code: code, Chapter: chapter})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.command[0], s.command[1:]...)
	cmd.Dir = s.dir
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		s.logger.Warn("interpreter timed out", "chapter", chapter, "limit", s.timeout)
		return nil, &TimeoutError{Limit: s.timeout}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	name := strings.Join(s.command, " ")
	var execErr *exec.Error
	if errors.As(runErr, &execErr) {
		return nil, &ProcessError{Command: name, Err: runErr}
	}

	var out EvalOutcome
	dec := json.NewDecoder(bytes.NewReader(stdout.Bytes()))
	dec.UseNumber()
	if decErr := dec.Decode(&out); decErr != nil {
		if runErr != nil {
			return nil, &ProcessError{Command: name, Stderr: strings.TrimSpace(stderr.String()), Err: runErr}
		}
		return nil, &OutputError{Output: stdout.String(), Err: decErr}
	}

	s.logger.Debug("interpreter finished",
		"chapter", chapter,
		"success", out.Success,
		"duration", elapsed,
	)
	return &out, nil
}
