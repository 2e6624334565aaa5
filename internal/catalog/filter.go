package catalog

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Field weights for query scoring: title matters most, tags least.
const (
	weightTitle       = 2.0
	weightDescription = 1.0
	weightTags        = 0.5
)

// Filter narrows items first by category (order-preserving), then by a
// fuzzy text query across title, description and tags. A non-empty
// query reorders the result best match first; an empty query keeps the
// category step's order. Never errors: no matches means an empty slice.
func Filter(items []Prompt, category Category, query string) []Prompt {
	result := items
	if category != CategoryAll && category != "" {
		filtered := make([]Prompt, 0, len(result))
		for _, p := range result {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		result = filtered
	}

	q := strings.TrimSpace(query)
	if q == "" {
		return result
	}
	return rankByQuery(result, q)
}

// rankByQuery scores each prompt per field with the fuzzy matcher,
// combines the weighted field scores, drops prompts no field matched,
// and orders the rest by descending score. Matching is the only gate:
// a weak match can carry a negative combined score and still rank.
// Ties keep catalog order.
func rankByQuery(items []Prompt, query string) []Prompt {
	titles := make([]string, len(items))
	descriptions := make([]string, len(items))
	tags := make([]string, len(items))
	for i, p := range items {
		titles[i] = p.Title
		descriptions[i] = p.Description
		tags[i] = strings.Join(p.Tags, " ")
	}

	scores := make([]float64, len(items))
	hit := make([]bool, len(items))
	accumulate := func(matches fuzzy.Matches, weight float64) {
		for _, m := range matches {
			scores[m.Index] += weight * float64(m.Score)
			hit[m.Index] = true
		}
	}
	accumulate(fuzzy.Find(query, titles), weightTitle)
	accumulate(fuzzy.Find(query, descriptions), weightDescription)
	accumulate(fuzzy.Find(query, tags), weightTags)

	ranked := make([]int, 0, len(items))
	for i := range items {
		if hit[i] {
			ranked = append(ranked, i)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})

	out := make([]Prompt, len(ranked))
	for i, idx := range ranked {
		out[i] = items[idx]
	}
	return out
}
