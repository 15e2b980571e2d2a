package conceptgraph

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/sourcequiz/internal/difficulty"
)

// currentChapterWeight favours topics introduced in the requested chapter.
const currentChapterWeight = 2.0

// Select picks a core concept weighted towards the current chapter, then
// adds related concepts within the level's hop distance until the level's
// concept budget is reached. Every returned concept is available in chapter.
func (g *Graph) Select(rng *rand.Rand, chapter int, level difficulty.Level) ([]string, error) {
	available := g.Available(chapter)
	if len(available) == 0 {
		return nil, fmt.Errorf("no concepts available for chapter %d", chapter)
	}

	weights := make([]float64, len(available))
	var total float64
	for i, t := range available {
		weights[i] = 1.0
		if t.Chapter == chapter {
			weights[i] = currentChapterWeight
		}
		total += weights[i]
	}

	pick := rng.Float64() * total
	core := available[len(available)-1].ID
	for i, w := range weights {
		if pick < w {
			core = available[i].ID
			break
		}
		pick -= w
	}

	budget := g.syllabus.MaxConcepts(string(level)) - 1
	if budget <= 0 {
		return []string{core}, nil
	}

	var candidates []string
	for _, n := range g.Neighbors(core, g.syllabus.MaxHops(string(level))) {
		if g.byID[n].Chapter <= chapter {
			candidates = append(candidates, n)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > budget {
		candidates = candidates[:budget]
	}
	return append([]string{core}, candidates...), nil
}
