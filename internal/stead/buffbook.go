package stead

import "github.com/steadling/farmcore/internal/content"

// BuffBook is the per-tick fold of every plant's bonuses including
// what its neighbors radiate at it. Recomputed whenever the board
// changes; never persisted.
type BuffBook struct {
	Sums map[TileID]content.PlantAdvancementSum
}

// NewBuffBook folds plants' sums, spreading each plant's
// Neighbor-wrapped bonuses onto the tiles adjacent returns for it.
// Plants radiate both their unlocked ladder rungs and buffs rubbed
// onto them, so a neighborly effect item keeps working through its
// host plant.
func NewBuffBook(
	cfg *content.Config,
	plants map[TileID]*Plant,
	adjacent func(TileID) []TileID,
) *BuffBook {
	radiated := make(map[TileID][]content.PlantAdvancementKind[content.ItemHandle], len(plants))
	for id, p := range plants {
		ladder := p.ladder(cfg)
		kinds := append(unlockedNeighborKinds(ladder, p.XP), neighborEffectKinds(cfg, p)...)
		if len(kinds) > 0 {
			radiated[id] = content.UnwrapAll(kinds)
		}
	}

	sums := make(map[TileID]content.PlantAdvancementSum, len(plants))
	for id, p := range plants {
		extra := p.effectKinds(cfg)
		for _, nid := range adjacent(id) {
			extra = append(extra, radiated[nid]...)
		}
		sums[id] = content.PlantSum(p.ladder(cfg), p.XP, extra)
	}

	return &BuffBook{Sums: sums}
}

// Sum returns the folded bonuses for p, falling back to a
// neighborless fold for plants the book never saw.
func (b *BuffBook) Sum(p *Plant, cfg *content.Config) content.PlantAdvancementSum {
	if b != nil {
		if sum, ok := b.Sums[p.TileID]; ok {
			return sum
		}
	}
	return p.Sum(cfg)
}

func unlockedNeighborKinds(ladder *content.PlantLadder, xp int) []content.PlantAdvancementKind[content.ItemHandle] {
	var out []content.PlantAdvancementKind[content.ItemHandle]
	for _, a := range ladder.Unlocked(xp) {
		if a.Kind.Tag == content.PKNeighbor {
			out = append(out, a.Kind)
		}
	}
	return out
}

func neighborEffectKinds(cfg *content.Config, p *Plant) []content.PlantAdvancementKind[content.ItemHandle] {
	var out []content.PlantAdvancementKind[content.ItemHandle]
	for _, k := range p.effectKinds(cfg) {
		if k.Tag == content.PKNeighbor {
			out = append(out, k)
		}
	}
	return out
}
