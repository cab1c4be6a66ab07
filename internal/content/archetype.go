package content

// Archetypes: the immutable per-kind definitions the rest of the game
// reads. Instances (items in inventories, plants on tiles) carry only
// a handle into these.

// Filter restricts which plant kinds something applies to. Only wins
// over Not when both are set; empty means "everything".
type Filter[H comparable] struct {
	Only []H `json:"only,omitempty"`
	Not  []H `json:"not,omitempty"`
}

// Allows reports whether h passes the filter.
func (f Filter[H]) Allows(h H) bool {
	if len(f.Only) > 0 {
		for _, o := range f.Only {
			if o == h {
				return true
			}
		}
		return false
	}
	for _, n := range f.Not {
		if n == h {
			return false
		}
	}
	return true
}

// RubEffect is what happens when an item is rubbed on a plant: either
// a buff (possibly expiring after Duration ticks) or a transmogrify
// into another plant kind, never both.
type RubEffect struct {
	Description  string                            `json:"description"`
	Duration     *float64                          `json:"duration,omitempty"`
	ForPlants    Filter[PlantHandle]               `json:"for_plants"`
	Buff         *PlantAdvancementKind[ItemHandle] `json:"buff,omitempty"`
	Transmogrify *PlantHandle                      `json:"transmogrify,omitempty"`
}

// GotchiArchetype marks an item as a hatchable companion.
type GotchiArchetype struct {
	BaseHappiness int                  `json:"base_happiness"`
	Hatch         *Evalput[ItemHandle] `json:"hatch,omitempty"`
}

// SeedArchetype marks an item as plantable.
type SeedArchetype struct {
	GrowsInto PlantHandle `json:"grows_into"`
}

// KeepsakeArchetype marks an item as a plain collectible.
type KeepsakeArchetype struct{}

// LandUnlock marks an item as redeemable for extra land once the
// profile has enough xp.
type LandUnlock struct {
	RequiresXP bool `json:"requires_xp"`
	Amount     int  `json:"amount"`
}

// Archetype is one item definition. At most one of the role fields is
// set; WelcomeGift items are granted to fresh steads.
type Archetype struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	WelcomeGift bool               `json:"welcome_gift,omitempty"`
	Gotchi      *GotchiArchetype   `json:"gotchi,omitempty"`
	Seed        *SeedArchetype     `json:"seed,omitempty"`
	Keepsake    *KeepsakeArchetype `json:"keepsake,omitempty"`
	UnlocksLand *LandUnlock        `json:"unlocks_land,omitempty"`
	RubEffects  []RubEffect        `json:"rub_effects,omitempty"`
}

// GotchiDetails returns the gotchi payload if this item hatches.
func (a *Archetype) GotchiDetails() (*GotchiArchetype, bool) {
	return a.Gotchi, a.Gotchi != nil
}

// SeedDetails returns the seed payload if this item is plantable.
func (a *Archetype) SeedDetails() (*SeedArchetype, bool) {
	return a.Seed, a.Seed != nil
}

// LandUnlockDetails returns the land payload if this item unlocks land.
func (a *Archetype) LandUnlockDetails() (*LandUnlock, bool) {
	return a.UnlocksLand, a.UnlocksLand != nil
}

// Rubbable reports whether the item does anything when rubbed on a
// plant of kind p.
func (a *Archetype) Rubbable(p PlantHandle) bool {
	for _, e := range a.RubEffects {
		if e.ForPlants.Allows(p) {
			return true
		}
	}
	return false
}

// PlantArchetype is one plant definition. BaseYieldDuration is nil for
// plants that never yield on their own.
type PlantArchetype struct {
	Name              string      `json:"name"`
	BaseYieldDuration *float64    `json:"base_yield_duration,omitempty"`
	Advancements      PlantLadder `json:"advancements"`
}

// ProfileArchetype is the single stead-wide definition.
type ProfileArchetype struct {
	Advancements ProfileLadder `json:"advancements"`
}
