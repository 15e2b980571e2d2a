package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sourcequiz/internal/pipeline"
	"github.com/abhisek/sourcequiz/internal/quiz"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one verified question",
	RunE:  runGenerate,
}

func init() {
	addRequestFlags(generateCmd)
	addPipelineFlags(generateCmd)
	generateCmd.Flags().Bool("json", false, "Print the outcome as JSON")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	req, err := parseRequest(cmd)
	if err != nil {
		return err
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

	outcome, err := p.Generate(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcome); err != nil {
			return err
		}
	} else {
		printOutcome(outcome)
	}

	if !outcome.OK() {
		return fmt.Errorf("no question produced after %d attempts", outcome.Attempts)
	}
	return nil
}

func printOutcome(o pipeline.Outcome) {
	for _, f := range o.Failures {
		fmt.Fprintf(os.Stderr, "attempt %d failed at %s (%s): %s\n",
			f.Attempt, f.Stage, f.Kind, strings.Join(f.Messages, "; "))
	}
	if o.Question != nil {
		printQuestion(o.Question)
	}
}

func printQuestion(q *quiz.Question) {
	fmt.Printf("%s  chapter %d  %s (actual %s)  quality %.1f\n",
		q.ID, q.Chapter, q.Difficulty, q.ActualDifficulty, q.Quality.Total)
	fmt.Printf("Concepts: %s\n", strings.Join(q.Concepts, ", "))
	if q.Trap != "" {
		fmt.Printf("Trap:     %s\n", q.Trap)
	}
	fmt.Println(strings.Repeat("─", 60))
	fmt.Println(q.QuestionText)
	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("Answer: %s) %s\n", q.CorrectOption, q.CorrectAnswer)
	for _, d := range q.Distractors {
		fmt.Printf("  %-12s %s\n", d.Value, d.Misconception)
	}
}
