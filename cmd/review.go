package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/sourcequiz/internal/app"
	"github.com/abhisek/sourcequiz/internal/quiz"
	"github.com/abhisek/sourcequiz/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Answer and judge generated questions in the terminal",
	Long: "Walk through questions one at a time: pick an answer, see the verdict and\n" +
		"the misconception behind each distractor, then accept, reject or flag the\n" +
		"question. Verdicts are saved in the database.",
	RunE: runReview,
}

func init() {
	addQuestionFilterFlags(reviewCmd, 10)
	reviewCmd.Flags().StringP("file", "f", "", "Review questions from a batch file instead of the archive")
}

func runReview(cmd *cobra.Command, args []string) error {
	s, f, err := openQuestionQuery(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	qs, err := reviewQuestions(cmd, s, f)
	if err != nil {
		return err
	}
	if len(qs) == 0 {
		fmt.Println("No questions to review.")
		return nil
	}
	return app.Run(qs, s.ReviewRepo())
}

// reviewQuestions loads from --file when given. Questions from a file are
// archived first so reviews can reference them.
func reviewQuestions(cmd *cobra.Command, s *store.Store, f store.QuestionFilter) ([]*quiz.Question, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		qs, err := s.QuestionRepo().List(cmd.Context(), f)
		if err != nil {
			return nil, fmt.Errorf("list questions: %w", err)
		}
		return qs, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch: %w", err)
	}
	defer file.Close()
	batch, err := quiz.ReadBatch(file)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	var qs []*quiz.Question
	for i := range batch {
		q := &batch[i]
		if f.Limit > 0 && len(qs) == f.Limit {
			break
		}
		if err := s.QuestionRepo().Save(cmd.Context(), q); err != nil {
			return nil, fmt.Errorf("archive question %s: %w", q.ID, err)
		}
		qs = append(qs, q)
	}
	return qs, nil
}
