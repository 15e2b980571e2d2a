package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sourcequiz/internal/conceptgraph"
	"github.com/abhisek/sourcequiz/internal/curriculum"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "List syllabus concepts and their relationships",
	RunE:  runConcepts,
}

func init() {
	conceptsCmd.Flags().IntP("chapter", "c", 0, "Only concepts available in this chapter")
	conceptsCmd.Flags().String("neighbors", "", "Show concepts related to this one")
	conceptsCmd.Flags().Int("hops", 1, "Maximum distance for --neighbors")
}

func runConcepts(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	g := conceptgraph.New(e.cur.Syllabus)

	if id, _ := cmd.Flags().GetString("neighbors"); id != "" {
		if _, err := g.Topic(id); err != nil {
			return err
		}
		hops, _ := cmd.Flags().GetInt("hops")
		for _, n := range g.Neighbors(id, hops) {
			fmt.Println(n)
		}
		return nil
	}

	var topics []curriculum.Topic
	if ch, _ := cmd.Flags().GetInt("chapter"); ch > 0 {
		topics = g.Available(ch)
	} else {
		topics = g.Topics()
	}

	fmt.Printf("%-28s %7s %10s  %s\n", "CONCEPT", "CHAPTER", "DIFFICULTY", "DESCRIPTION")
	fmt.Println(strings.Repeat("─", 80))
	for _, t := range topics {
		fmt.Printf("%-28s %7d %10d  %s\n", truncate(t.ID, 28), t.Chapter, t.Difficulty, t.Desc)
	}
	return nil
}
