package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sourcequiz",
	Short: "Generate and review multiple-choice questions about Source programs",
	Long: "sourcequiz generates multiple-choice questions about small Source (SICP JS) programs.\n" +
		"Every answer is verified by running the program, distractors come from known\n" +
		"misconceptions and each question is scored before it is accepted.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SOURCEQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/sourcequiz/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(distractorsCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(conceptsCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
