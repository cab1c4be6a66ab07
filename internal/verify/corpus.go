package verify

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// corpus ranks known content names against a typo'd reference. Trigram
// overlap does the coarse cut, edit distance breaks the fine ranking.
type corpus struct {
	names    []string
	trigrams map[string]map[string]int
}

const (
	suggestionThreshold = 0.35
	maxSuggestions      = 3
)

func newCorpus(names []string) *corpus {
	c := &corpus{names: names, trigrams: make(map[string]map[string]int, len(names))}
	for _, n := range names {
		c.trigrams[n] = trigramCounts(n)
	}
	return c
}

func trigramCounts(s string) map[string]int {
	padded := "  " + strings.ToLower(s) + " "
	out := map[string]int{}
	runes := []rune(padded)
	for i := 0; i+3 <= len(runes); i++ {
		out[string(runes[i:i+3])]++
	}
	return out
}

// similarity is the trigram cosine-ish overlap in [0, 1].
func similarity(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	total := 0
	for g, n := range a {
		total += n
		if m, ok := b[g]; ok {
			if m < n {
				shared += m
			} else {
				shared += n
			}
		}
	}
	for _, n := range b {
		total += n
	}
	if total == 0 {
		return 0
	}
	return float64(2*shared) / float64(total)
}

// suggest returns up to maxSuggestions names scoring above the
// threshold, best first.
func (c *corpus) suggest(query string) []string {
	type scored struct {
		name  string
		score float64
		dist  int
	}
	q := trigramCounts(query)
	var results []scored
	for _, n := range c.names {
		score := similarity(q, c.trigrams[n])
		if score < suggestionThreshold {
			continue
		}
		dist := levenshtein.ComputeDistance(strings.ToLower(query), strings.ToLower(n))
		results = append(results, scored{name: n, score: score, dist: dist})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].dist != results[j].dist {
			return results[i].dist < results[j].dist
		}
		return results[i].score > results[j].score
	})
	if len(results) > maxSuggestions {
		results = results[:maxSuggestions]
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.name
	}
	return out
}
