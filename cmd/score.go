package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sourcequiz/internal/distractor"
	"github.com/abhisek/sourcequiz/internal/quality"
	"github.com/abhisek/sourcequiz/internal/quiz"
)

var scoreCmd = &cobra.Command{
	Use:   "score <batch.json>",
	Short: "Re-score the questions of a batch file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().Float64("threshold", -1, "Minimum acceptable score (default from config)")
	scoreCmd.Flags().BoolP("verbose", "v", false, "Print issues and suggestions")
}

func runScore(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	if threshold < 0 {
		threshold = e.cfg.Pipeline.QualityThreshold
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open batch: %w", err)
	}
	defer f.Close()
	qs, err := quiz.ReadBatch(f)
	if err != nil {
		return fmt.Errorf("read batch: %w", err)
	}

	fmt.Printf("%-10s %-10s %7s %7s %7s %7s %7s %7s  %s\n",
		"ID", "LEVEL", "TOTAL", "CONCEPT", "DISTR", "DIFF", "CODE", "TEXT", "OK")
	fmt.Println(strings.Repeat("─", 82))

	var failed int
	for i := range qs {
		q := &qs[i]
		sc := rescore(q)
		ok := sc.Acceptable(threshold)
		if !ok {
			failed++
		}
		fmt.Printf("%-10s %-10s %7.1f %7.1f %7.1f %7.1f %7.1f %7.1f  %s\n",
			truncate(q.ID, 10), q.Difficulty, sc.Total, sc.ConceptValidity, sc.DistractorQuality,
			sc.DifficultyCalibration, sc.CodeClarity, sc.QuestionClarity, yesNo(ok))
		if verbose {
			for _, s := range sc.Issues {
				fmt.Printf("    issue: %s\n", s)
			}
			for _, s := range sc.Suggestions {
				fmt.Printf("    suggestion: %s\n", s)
			}
		}
	}

	fmt.Printf("\n%d of %d questions below %.0f\n", failed, len(qs), threshold)
	return nil
}

func rescore(q *quiz.Question) quality.Score {
	values := q.DistractorValues()
	ds := make([]distractor.Distractor, len(q.Distractors))
	for i, d := range q.Distractors {
		ds[i] = distractor.Distractor{Value: values[i], Misconception: d.Misconception, Explanation: d.Explanation}
	}
	return quality.Evaluate(quality.Input{
		Code:         q.Code,
		Concepts:     q.Concepts,
		Correct:      q.GroundTruth.Value,
		Distractors:  ds,
		Target:       q.Difficulty,
		Actual:       q.ActualDifficulty,
		QuestionText: q.QuestionText,
	})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
