package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestFindsTypos(t *testing.T) {
	c := newCorpus([]string{"Bractus Seed", "Hacker Vibes Vine Seed", "Coffea Cyl Seed"})

	got := c.suggest("Bractus Sed")
	assert.NotEmpty(t, got)
	assert.Equal(t, "Bractus Seed", got[0])

	got = c.suggest("coffea cyl seed")
	assert.NotEmpty(t, got)
	assert.Equal(t, "Coffea Cyl Seed", got[0])
}

func TestSuggestIgnoresGarbage(t *testing.T) {
	c := newCorpus([]string{"Bractus Seed", "Coffea Cyl Seed"})
	assert.Empty(t, c.suggest("xqzwv"))
}

func TestSuggestCapsResults(t *testing.T) {
	c := newCorpus([]string{"seed a", "seed b", "seed c", "seed d", "seed e"})
	got := c.suggest("seed f")
	assert.LessOrEqual(t, len(got), maxSuggestions)
}
