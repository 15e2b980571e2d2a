package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sourcequiz/internal/difficulty"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|->",
	Short: "Measure the difficulty of a Source program",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSlice("concepts", nil, "Concepts the program tests")
	analyzeCmd.Flags().String("target", "", "Target difficulty to check against")
	analyzeCmd.Flags().Int("input-size", difficulty.DefaultInputSize, "Representative input size for trace estimates")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	code, err := readSource(args[0])
	if err != nil {
		return err
	}
	concepts, _ := cmd.Flags().GetStringSlice("concepts")
	inputSize, _ := cmd.Flags().GetInt("input-size")

	m := e.analyzer().Analyze(code, concepts, inputSize)
	level := difficulty.Classify(m)

	fmt.Printf("%-22s %d\n", "Nesting depth", m.NestingDepth)
	fmt.Printf("%-22s %d\n", "Variables", m.VariableCount)
	fmt.Printf("%-22s %d\n", "Recursion depth", m.RecursionDepth)
	fmt.Printf("%-22s %d\n", "Branching factor", m.BranchingFactor)
	fmt.Printf("%-22s %d\n", "Trace length", m.TraceLength)
	fmt.Printf("%-22s %d\n", "Concepts", m.ConceptCount)
	fmt.Printf("%-22s %.2f\n", "Cognitive load", m.CognitiveLoad)
	fmt.Println(strings.Repeat("─", 30))
	fmt.Printf("%-22s %s\n", "Difficulty", level)

	raw, _ := cmd.Flags().GetString("target")
	if raw == "" {
		return nil
	}
	target, err := difficulty.ParseLevel(raw)
	if err != nil {
		return err
	}
	ok, msg := difficulty.ValidateTarget(target, level)
	fmt.Println(msg)
	if !ok {
		for _, s := range difficulty.SuggestAdjustments(m, target) {
			fmt.Printf("  - %s\n", s)
		}
	}
	return nil
}

// readSource reads a program from path, or stdin for "-".
func readSource(path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read program: %w", err)
	}
	return string(b), nil
}
