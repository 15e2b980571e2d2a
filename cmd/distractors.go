package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/abhisek/sourcequiz/internal/distractor"
	"github.com/abhisek/sourcequiz/internal/value"
)

var distractorsCmd = &cobra.Command{
	Use:   "distractors",
	Short: "Generate misconception-based wrong answers for a value",
	Example: `  sourcequiz distractors --concept recursion --correct 120
  sourcequiz distractors --concept lists --correct "[1, [2, null]]" -n 4`,
	RunE: runDistractors,
}

func init() {
	distractorsCmd.Flags().String("concept", "", "Concept the question tests")
	distractorsCmd.Flags().String("correct", "", "Correct answer, in Source notation")
	distractorsCmd.Flags().IntP("count", "n", distractor.DefaultCount, "Number of distractors")
	distractorsCmd.Flags().Int("pair-count", 0, "Pairs allocated by the program (ground truth)")
	distractorsCmd.Flags().StringSlice("trap-logic", nil, "Trap logic hints")
	distractorsCmd.Flags().Uint64("seed", 0, "Random seed (0 uses the clock)")
	_ = distractorsCmd.MarkFlagRequired("correct")
}

func runDistractors(cmd *cobra.Command, args []string) error {
	concept, _ := cmd.Flags().GetString("concept")
	raw, _ := cmd.Flags().GetString("correct")
	n, _ := cmd.Flags().GetInt("count")
	pairs, _ := cmd.Flags().GetInt("pair-count")
	trap, _ := cmd.Flags().GetStringSlice("trap-logic")
	seed, _ := cmd.Flags().GetUint64("seed")
	if err := checkDistractorLimits(n, pairs); err != nil {
		return err
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	correct := value.ParseString(raw)
	gt := value.GroundTruth{Value: correct, PairCount: pairs}
	ds := distractor.GenerateWithTrap(rng, concept, correct, gt, trap, n)

	fmt.Printf("Correct: %s (%s)\n\n", correct, correct.Kind())
	fmt.Printf("%-20s %-24s %s\n", "VALUE", "MISCONCEPTION", "EXPLANATION")
	for _, d := range ds {
		fmt.Printf("%-20s %-24s %s\n", truncate(d.Value.String(), 20), d.Misconception, d.Explanation)
	}
	for _, issue := range distractor.Validate(correct, distractor.Values(ds)) {
		fmt.Printf("warning: %s\n", issue)
	}
	return nil
}

func checkDistractorLimits(n, pairs int) error {
	if n < 1 || n > distractor.MaxCount {
		return fmt.Errorf("--count must be between 1 and %d", distractor.MaxCount)
	}
	if pairs < 0 || pairs > distractor.MaxPairCount {
		return fmt.Errorf("--pair-count must be between 0 and %d", distractor.MaxPairCount)
	}
	return nil
}
