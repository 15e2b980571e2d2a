package conceptgraph

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/abhisek/sourcequiz/internal/curriculum"
	"github.com/abhisek/sourcequiz/internal/difficulty"
)

func defaultGraph(t *testing.T) *Graph {
	t.Helper()
	return New(curriculum.Default().Syllabus)
}

func TestTopic(t *testing.T) {
	g := defaultGraph(t)
	top, err := g.Topic("lists")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if top.Chapter != 2 {
		t.Errorf("got chapter %d, want 2", top.Chapter)
	}
	if _, err := g.Topic("nonexistent"); err == nil {
		t.Fatal("expected error for nonexistent concept")
	}
}

func TestTopics_OrderedByChapter(t *testing.T) {
	topics := defaultGraph(t).Topics()
	for i := 1; i < len(topics); i++ {
		if topics[i].Chapter < topics[i-1].Chapter {
			t.Errorf("topic %q (ch %d) listed after %q (ch %d)",
				topics[i].ID, topics[i].Chapter, topics[i-1].ID, topics[i-1].Chapter)
		}
	}
}

func TestAvailable(t *testing.T) {
	g := defaultGraph(t)
	for _, top := range g.Available(1) {
		if top.Chapter > 1 {
			t.Errorf("chapter 1 includes %q from chapter %d", top.ID, top.Chapter)
		}
	}
	if got, want := len(g.Available(4)), len(g.Topics()); got != want {
		t.Errorf("Available(4) = %d topics, want %d", got, want)
	}
	if len(g.Available(0)) != 0 {
		t.Error("Available(0) should be empty")
	}
}

func TestNeighbors(t *testing.T) {
	g := defaultGraph(t)

	oneHop := g.Neighbors("pairs", 1)
	want := []string{"functions", "lists", "mutation"}
	if !slices.Equal(oneHop, want) {
		t.Errorf("Neighbors(pairs, 1) = %v, want %v", oneHop, want)
	}

	twoHop := g.Neighbors("pairs", 2)
	for _, id := range want {
		if !slices.Contains(twoHop, id) {
			t.Errorf("2-hop neighbours missing %q", id)
		}
	}
	if slices.Contains(twoHop, "pairs") {
		t.Error("neighbours must not include the start concept")
	}
	if !slices.Contains(twoHop, "trees") {
		t.Error("expected trees within 2 hops of pairs")
	}

	if n := g.Neighbors("pairs", 0); len(n) != 0 {
		t.Errorf("0 hops should give nothing, got %v", n)
	}
	if n := g.Neighbors("nonexistent", 2); n != nil {
		t.Errorf("unknown concept should give nil, got %v", n)
	}
}

func TestValidateCombination(t *testing.T) {
	g := defaultGraph(t)
	if err := g.ValidateCombination([]string{"recursion", "orders_of_growth"}, 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := g.ValidateCombination([]string{"recursion", "lists"}, 1); err == nil {
		t.Error("lists should not be valid in chapter 1")
	}
	if err := g.ValidateCombination([]string{"bogus"}, 4); err == nil {
		t.Error("unknown concept should be invalid")
	}
}

func TestSelect(t *testing.T) {
	g := defaultGraph(t)
	rng := rand.New(rand.NewPCG(42, 7))

	tests := []struct {
		level difficulty.Level
		max   int
	}{
		{difficulty.LevelEasy, 1},
		{difficulty.LevelMedium, 2},
		{difficulty.LevelHard, 3},
		{difficulty.LevelVeryHard, 3},
	}

	for _, tt := range tests {
		for chapter := 1; chapter <= 4; chapter++ {
			for range 20 {
				got, err := g.Select(rng, chapter, tt.level)
				if err != nil {
					t.Fatalf("Select(%d, %s): %v", chapter, tt.level, err)
				}
				if len(got) == 0 || len(got) > tt.max {
					t.Fatalf("Select(%d, %s) = %v, want 1..%d concepts", chapter, tt.level, got, tt.max)
				}
				if err := g.ValidateCombination(got, chapter); err != nil {
					t.Errorf("Select(%d, %s) = %v: %v", chapter, tt.level, got, err)
				}
				seen := map[string]bool{}
				for _, id := range got {
					if seen[id] {
						t.Errorf("Select(%d, %s) repeated %q", chapter, tt.level, id)
					}
					seen[id] = true
				}
			}
		}
	}
}

func TestSelect_Deterministic(t *testing.T) {
	g := defaultGraph(t)
	a, _ := g.Select(rand.New(rand.NewPCG(1, 1)), 2, difficulty.LevelHard)
	b, _ := g.Select(rand.New(rand.NewPCG(1, 1)), 2, difficulty.LevelHard)
	if !slices.Equal(a, b) {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestSelect_NoConcepts(t *testing.T) {
	g := defaultGraph(t)
	if _, err := g.Select(rand.New(rand.NewPCG(1, 1)), 0, difficulty.LevelEasy); err == nil {
		t.Error("expected error for chapter 0")
	}
}
