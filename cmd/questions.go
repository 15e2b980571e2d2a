package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sourcequiz/internal/difficulty"
	"github.com/abhisek/sourcequiz/internal/quiz"
	"github.com/abhisek/sourcequiz/internal/store"
)

var questionsCmd = &cobra.Command{
	Use:     "questions",
	Aliases: []string{"q"},
	Short:   "Browse archived questions",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived questions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, f, err := openQuestionQuery(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		qs, err := s.QuestionRepo().List(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("list questions: %w", err)
		}
		if len(qs) == 0 {
			fmt.Println("No questions found.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %2s  %-9s  %5s  %s\n", "ID", "Created", "Ch", "Level", "Score", "Concepts")
		fmt.Println(strings.Repeat("─", 100))
		for _, q := range qs {
			fmt.Printf("%-36s  %-16s  %2d  %-9s  %5.1f  %s\n",
				q.ID,
				q.CreatedAt.Local().Format("2006-01-02 15:04"),
				q.Chapter,
				q.Difficulty,
				q.Quality.Total,
				strings.Join(q.Concepts, ", "),
			)
		}
		return nil
	},
}

var questionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one archived question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		q, err := s.QuestionRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get question: %w", err)
		}
		if q == nil {
			return fmt.Errorf("question %s not found", args[0])
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(q)
		}
		printQuestion(q)

		reviews, err := s.ReviewRepo().ForQuestion(cmd.Context(), q.ID)
		if err != nil {
			return fmt.Errorf("get reviews: %w", err)
		}
		if len(reviews) > 0 {
			fmt.Println()
			fmt.Println("Reviews:")
		}
		for _, r := range reviews {
			fmt.Printf("  %s  picked %s (%s)  %s  %s\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Selected, yesNo(r.Correct), r.Verdict, r.Note)
		}
		return nil
	},
}

var questionsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived questions as a batch file",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, f, err := openQuestionQuery(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		qs, err := s.QuestionRepo().List(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("list questions: %w", err)
		}

		out := os.Stdout
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer file.Close()
			out = file
		}
		return quiz.WriteBatch(out, deref(qs))
	},
}

var questionsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count archived questions by difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		counts, err := s.QuestionRepo().CountByDifficulty(cmd.Context())
		if err != nil {
			return fmt.Errorf("count questions: %w", err)
		}

		var total int
		fmt.Printf("%-10s  %6s\n", "Level", "Count")
		fmt.Println(strings.Repeat("─", 18))
		for _, l := range difficulty.AllLevels() {
			fmt.Printf("%-10s  %6d\n", l, counts[string(l)])
			total += counts[string(l)]
		}
		fmt.Println(strings.Repeat("─", 18))
		fmt.Printf("%-10s  %6d\n", "TOTAL", total)
		return nil
	},
}

func addQuestionFilterFlags(cmd *cobra.Command, limit int) {
	cmd.Flags().IntP("chapter", "c", 0, "Filter by chapter")
	cmd.Flags().StringP("difficulty", "d", "", "Filter by difficulty")
	cmd.Flags().String("concept", "", "Filter by concept")
	cmd.Flags().String("batch", "", "Filter by batch ID")
	cmd.Flags().IntP("limit", "n", limit, "Maximum number of questions (0 = unlimited)")
}

// openQuestionQuery opens the store and builds a filter from the flags
// registered by addQuestionFilterFlags.
func openQuestionQuery(cmd *cobra.Command) (*store.Store, store.QuestionFilter, error) {
	var f store.QuestionFilter
	f.Chapter, _ = cmd.Flags().GetInt("chapter")
	f.Concept, _ = cmd.Flags().GetString("concept")
	f.BatchID, _ = cmd.Flags().GetString("batch")
	f.Limit, _ = cmd.Flags().GetInt("limit")
	if raw, _ := cmd.Flags().GetString("difficulty"); raw != "" {
		level, err := difficulty.ParseLevel(raw)
		if err != nil {
			return nil, f, err
		}
		f.Difficulty = string(level)
	}

	s, err := openEventStore(cmd)
	if err != nil {
		return nil, f, err
	}
	return s, f, nil
}

func deref(qs []*quiz.Question) []quiz.Question {
	out := make([]quiz.Question, len(qs))
	for i, q := range qs {
		out[i] = *q
	}
	return out
}

func init() {
	addQuestionFilterFlags(questionsListCmd, 20)
	addQuestionFilterFlags(questionsExportCmd, 0)
	questionsExportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	questionsShowCmd.Flags().Bool("json", false, "Print the question as JSON")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsShowCmd)
	questionsCmd.AddCommand(questionsExportCmd)
	questionsCmd.AddCommand(questionsStatsCmd)
}
