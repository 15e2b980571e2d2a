package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sourcequiz/internal/pipeline"
	"github.com/abhisek/sourcequiz/internal/quiz"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate a batch of questions and write them as JSON",
	RunE:  runBatch,
}

func init() {
	addRequestFlags(batchCmd)
	addPipelineFlags(batchCmd)
	batchCmd.Flags().IntP("count", "n", 5, "Number of questions to attempt")
	batchCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	req, err := parseRequest(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("count")
	if n < 1 {
		return fmt.Errorf("--count must be positive")
	}

	st, err := e.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := e.buildPipeline(cmd, st)
	if err != nil {
		return err
	}

	res, err := p.Batch(cmd.Context(), req, n, func(i int, o pipeline.Outcome) {
		if o.OK() {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s  quality %.1f  attempts %d\n",
				i+1, n, o.Question.ID, o.Question.Quality.Total, o.Attempts)
			return
		}
		fmt.Fprintf(os.Stderr, "[%d/%d] failed after %d attempts\n", i+1, n, o.Attempts)
	})
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := quiz.WriteBatch(out, res.Questions); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\nBatch %s: %d accepted, %d failed\n", res.BatchID, len(res.Questions), res.Failed())
	printSummary(quiz.Summarize(res.Questions))
	return nil
}

func printSummary(s quiz.Summary) {
	if s.Count == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "Mean quality %.1f, mean attempts %.1f\n\n", s.MeanQuality, s.MeanAttempts)
	fmt.Fprintf(os.Stderr, "%-28s %6s\n", "CONCEPT", "COUNT")
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 35))
	for _, c := range s.TopConcepts() {
		fmt.Fprintf(os.Stderr, "%-28s %6d\n", truncate(c.Concept, 28), c.Count)
	}
}
