// Package conceptgraph walks the syllabus knowledge graph to pick coherent
// concept combinations for a question.
package conceptgraph

import (
	"fmt"
	"slices"
	"sort"

	"github.com/abhisek/sourcequiz/internal/curriculum"
)

// Graph is an undirected view of the syllabus with precomputed indices.
type Graph struct {
	syllabus  *curriculum.Syllabus
	byID      map[string]curriculum.Topic
	adjacent  map[string][]string
	byChapter map[int][]curriculum.Topic
	ordered   []curriculum.Topic
}

// New builds the graph. Relationships naming unknown topics are ignored.
func New(s *curriculum.Syllabus) *Graph {
	g := &Graph{
		syllabus:  s,
		byID:      make(map[string]curriculum.Topic, len(s.Topics)),
		adjacent:  make(map[string][]string, len(s.Topics)),
		byChapter: make(map[int][]curriculum.Topic),
	}

	for _, t := range s.Topics {
		g.byID[t.ID] = t
	}

	// Edges are added in both directions for exploration.
	for _, r := range s.Relationships {
		if _, ok := g.byID[r.Source]; !ok {
			continue
		}
		if _, ok := g.byID[r.Target]; !ok {
			continue
		}
		g.link(r.Source, r.Target)
		g.link(r.Target, r.Source)
	}

	// Declaration order within a chapter is kept so listings read like the
	// syllabus.
	g.ordered = slices.Clone(s.Topics)
	sort.SliceStable(g.ordered, func(i, j int) bool {
		return g.ordered[i].Chapter < g.ordered[j].Chapter
	})
	for _, t := range g.ordered {
		g.byChapter[t.Chapter] = append(g.byChapter[t.Chapter], t)
	}
	return g
}

func (g *Graph) link(from, to string) {
	if !slices.Contains(g.adjacent[from], to) {
		g.adjacent[from] = append(g.adjacent[from], to)
	}
}

// Topic returns a topic by ID.
func (g *Graph) Topic(id string) (curriculum.Topic, error) {
	t, ok := g.byID[id]
	if !ok {
		return curriculum.Topic{}, fmt.Errorf("concept not found: %q", id)
	}
	return t, nil
}

// Topics returns every topic ordered by chapter.
func (g *Graph) Topics() []curriculum.Topic {
	return slices.Clone(g.ordered)
}

// ByChapter returns the topics introduced in the given chapter.
func (g *Graph) ByChapter(chapter int) []curriculum.Topic {
	return slices.Clone(g.byChapter[chapter])
}

// Available returns every topic introduced at or before chapter.
func (g *Graph) Available(chapter int) []curriculum.Topic {
	var out []curriculum.Topic
	for _, t := range g.ordered {
		if t.Chapter <= chapter {
			out = append(out, t)
		}
	}
	return out
}

// Neighbors returns the topics reachable from id in at most maxHops steps,
// excluding id itself, sorted by ID.
func (g *Graph) Neighbors(id string, maxHops int) []string {
	if _, ok := g.byID[id]; !ok {
		return nil
	}

	visited := map[string]bool{id: true}
	frontier := []string{id}
	var out []string
	for range maxHops {
		var next []string
		for _, node := range frontier {
			for _, n := range g.adjacent[node] {
				if visited[n] {
					continue
				}
				visited[n] = true
				next = append(next, n)
				out = append(out, n)
			}
		}
		frontier = next
	}
	sort.Strings(out)
	return out
}

// ValidateCombination checks that every concept exists and is available in
// chapter.
func (g *Graph) ValidateCombination(ids []string, chapter int) error {
	for _, id := range ids {
		t, ok := g.byID[id]
		if !ok {
			return fmt.Errorf("unknown concept %q", id)
		}
		if t.Chapter > chapter {
			return fmt.Errorf("concept %q is introduced in chapter %d, after chapter %d", id, t.Chapter, chapter)
		}
	}
	return nil
}
