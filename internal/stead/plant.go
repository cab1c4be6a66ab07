package stead

import (
	"fmt"

	"github.com/steadling/farmcore/internal/content"
)

// TileID identifies one land plot.
type TileID string

// Effect is an item rubbed onto a plant: a reference into the item's
// rub effect list plus how long it has left.
type Effect struct {
	Item        content.ItemHandle `json:"item"`
	EffectIndex int                `json:"effect_index"`
	UntilExpire *float64           `json:"until_expire,omitempty"`
}

// Details resolves the effect against cfg.
func (e *Effect) Details(cfg *content.Config) (*content.RubEffect, error) {
	return cfg.RubEffect(e.Item, e.EffectIndex)
}

// Craft is an in-progress recipe on a plant.
type Craft struct {
	RecipeIndex int     `json:"recipe_index"`
	UntilFinish float64 `json:"until_finish"`
}

// Plant is one growing plant on a tile.
type Plant struct {
	TileID        TileID              `json:"tile_id"`
	Archetype     content.PlantHandle `json:"archetype"`
	XP            int                 `json:"xp"`
	UntilYield    float64             `json:"until_yield"`
	Craft         *Craft              `json:"craft,omitempty"`
	Effects       []Effect            `json:"effects,omitempty"`
	QueuedXPBonus int                 `json:"queued_xp_bonus,omitempty"`
}

// NewPlantFromSeed plants seed on tile. Errors if the item isn't a
// seed.
func NewPlantFromSeed(cfg *content.Config, tile TileID, seed *Item) (*Plant, error) {
	a, err := cfg.Item(seed.Archetype)
	if err != nil {
		return nil, err
	}
	s, ok := a.SeedDetails()
	if !ok {
		return nil, fmt.Errorf("item %q isn't a seed", a.Name)
	}
	p := &Plant{TileID: tile, Archetype: s.GrowsInto}
	if arch := cfg.MustPlant(s.GrowsInto); arch.BaseYieldDuration != nil {
		p.UntilYield = *arch.BaseYieldDuration
	}
	return p, nil
}

// ArchetypeIn looks the plant's definition up in cfg.
func (p *Plant) ArchetypeIn(cfg *content.Config) (*content.PlantArchetype, error) {
	return cfg.Plant(p.Archetype)
}

func (p *Plant) ladder(cfg *content.Config) *content.PlantLadder {
	return &cfg.MustPlant(p.Archetype).Advancements
}

// effectKinds collects the buff kinds of every active rub effect.
// Transmogrify effects contribute nothing to sums.
func (p *Plant) effectKinds(cfg *content.Config) []content.PlantAdvancementKind[content.ItemHandle] {
	var kinds []content.PlantAdvancementKind[content.ItemHandle]
	for i := range p.Effects {
		d, err := p.Effects[i].Details(cfg)
		if err != nil || d.Buff == nil {
			continue
		}
		kinds = append(kinds, *d.Buff)
	}
	return kinds
}

// Sum folds this plant's bonuses without any neighbor contributions.
// Use a BuffBook when they matter.
func (p *Plant) Sum(cfg *content.Config) content.PlantAdvancementSum {
	return content.PlantSum(p.ladder(cfg), p.XP, p.effectKinds(cfg))
}

// RawSum includes the plant's own Neighbor bonuses as if it were its
// own neighbor, for inspection displays.
func (p *Plant) RawSum(cfg *content.Config) content.PlantAdvancementSum {
	return content.PlantRawSum(p.ladder(cfg), p.XP, p.effectKinds(cfg))
}

// MaxSum folds every rung regardless of xp.
func (p *Plant) MaxSum(cfg *content.Config) content.PlantAdvancementSum {
	return content.PlantMaxSum(p.ladder(cfg), p.effectKinds(cfg))
}

// IncreaseXP grants xp scaled by the plant's xp multiplier plus any
// queued bonus, returning the newly reached rung if one was crossed.
func (p *Plant) IncreaseXP(cfg *content.Config, base int) *content.Advancement[content.PlantAdvancementKind[content.ItemHandle]] {
	sum := p.Sum(cfg)
	amt := int(float64(base)*sum.XpMultiplier) + p.QueuedXPBonus
	p.QueuedXPBonus = 0
	return p.ladder(cfg).IncreaseXP(&p.XP, amt)
}

// CurrentRecipe resolves the recipe behind the in-progress craft.
func (p *Plant) CurrentRecipe(cfg *content.Config) (*content.Recipe[content.ItemHandle], error) {
	if p.Craft == nil {
		return nil, fmt.Errorf("plant on tile %s isn't crafting", p.TileID)
	}
	return p.RecipeAt(cfg, p.Craft.RecipeIndex)
}

// RecipeAt returns recipe idx of the plant's currently unlocked
// recipe list.
func (p *Plant) RecipeAt(cfg *content.Config, idx int) (*content.Recipe[content.ItemHandle], error) {
	recipes := p.Sum(cfg).Recipes
	if idx < 0 || idx >= len(recipes) {
		return nil, fmt.Errorf("plant on tile %s has no recipe %d", p.TileID, idx)
	}
	return &recipes[idx], nil
}

// StartCraft begins recipe idx. The plant must be idle and the recipe
// unlocked; the caller is responsible for having consumed the inputs.
func (p *Plant) StartCraft(cfg *content.Config, idx int) error {
	if p.Craft != nil {
		return fmt.Errorf("plant on tile %s is already crafting", p.TileID)
	}
	r, err := p.RecipeAt(cfg, idx)
	if err != nil {
		return err
	}
	sum := p.Sum(cfg)
	p.Craft = &Craft{RecipeIndex: idx, UntilFinish: r.Time / sum.CraftSpeedMultiplier}
	return nil
}

// Tick advances one game tick: effect expiry, yield and craft timers.
// It reports whether the yield timer elapsed and, if a craft finished,
// returns its recipe.
func (p *Plant) Tick(cfg *content.Config, book *BuffBook) (yielded bool, finished *content.Recipe[content.ItemHandle]) {
	live := p.Effects[:0]
	for _, e := range p.Effects {
		if e.UntilExpire != nil {
			*e.UntilExpire -= 1
			if *e.UntilExpire <= 0 {
				continue
			}
		}
		live = append(live, e)
	}
	p.Effects = live

	sum := book.Sum(p, cfg)

	arch := cfg.MustPlant(p.Archetype)
	if arch.BaseYieldDuration != nil {
		p.UntilYield -= sum.YieldSpeedMultiplier
		if p.UntilYield <= 0 {
			yielded = true
			p.UntilYield = *arch.BaseYieldDuration + float64(sum.TotalExtraTimeTicks)
		}
	}

	if p.Craft != nil {
		p.Craft.UntilFinish--
		if p.Craft.UntilFinish <= 0 {
			if r, err := p.CurrentRecipe(cfg); err == nil {
				finished = r
			}
			p.Craft = nil
		}
	}

	return yielded, finished
}
