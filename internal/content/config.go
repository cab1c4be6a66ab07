package content

import "fmt"

// Handles index verified archetypes by position. They are only
// meaningful against the Config they were issued from; a reload that
// reorders content invalidates them.
type (
	ItemHandle  int
	PlantHandle int
)

// ConfigError reports a lookup against content that doesn't exist.
type ConfigError struct {
	What string
	Key  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("no %s %s in config", e.What, e.Key)
}

func unknownHandle(what string, h int) error {
	return &ConfigError{What: what, Key: fmt.Sprintf("handle %d", h)}
}

func unknownName(what, name string) error {
	return &ConfigError{What: what, Key: fmt.Sprintf("named %q", name)}
}

// Config is the verified, immutable content the whole game reads.
// Handles are indexes into the archetype slices.
type Config struct {
	Items        []Archetype      `json:"items"`
	Plants       []PlantArchetype `json:"plants"`
	Profile      ProfileArchetype `json:"profile"`
	SpecialUsers []string         `json:"special_users,omitempty"`
}

// Item returns the archetype behind h.
func (c *Config) Item(h ItemHandle) (*Archetype, error) {
	if h < 0 || int(h) >= len(c.Items) {
		return nil, unknownHandle("item", int(h))
	}
	return &c.Items[h], nil
}

// MustItem is Item for handles already validated at verify time.
func (c *Config) MustItem(h ItemHandle) *Archetype {
	a, err := c.Item(h)
	if err != nil {
		panic(err)
	}
	return a
}

// Plant returns the archetype behind h.
func (c *Config) Plant(h PlantHandle) (*PlantArchetype, error) {
	if h < 0 || int(h) >= len(c.Plants) {
		return nil, unknownHandle("plant", int(h))
	}
	return &c.Plants[h], nil
}

// MustPlant is Plant for handles already validated at verify time.
func (c *Config) MustPlant(h PlantHandle) *PlantArchetype {
	p, err := c.Plant(h)
	if err != nil {
		panic(err)
	}
	return p
}

// ItemNamed looks an item up by its display name. Linear scan; content
// sets are small and this is an edge path, not the hot path handles
// cover.
func (c *Config) ItemNamed(name string) (ItemHandle, error) {
	for i := range c.Items {
		if c.Items[i].Name == name {
			return ItemHandle(i), nil
		}
	}
	return 0, unknownName("item", name)
}

// ItemHandleOf recovers the handle behind an archetype pointer
// previously returned by Item or MustItem.
func (c *Config) ItemHandleOf(a *Archetype) (ItemHandle, error) {
	for i := range c.Items {
		if &c.Items[i] == a {
			return ItemHandle(i), nil
		}
	}
	return 0, unknownName("item", a.Name)
}

// PlantNamed looks a plant up by its display name.
func (c *Config) PlantNamed(name string) (PlantHandle, error) {
	for i := range c.Plants {
		if c.Plants[i].Name == name {
			return PlantHandle(i), nil
		}
	}
	return 0, unknownName("plant", name)
}

// RubEffect returns effect idx of item h.
func (c *Config) RubEffect(h ItemHandle, idx int) (*RubEffect, error) {
	a, err := c.Item(h)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(a.RubEffects) {
		return nil, &ConfigError{
			What: "rub effect",
			Key:  fmt.Sprintf("index %d on item %q", idx, a.Name),
		}
	}
	return &a.RubEffects[idx], nil
}

// WelcomeGifts lists the items granted to a freshly created stead.
func (c *Config) WelcomeGifts() []ItemHandle {
	var out []ItemHandle
	for i := range c.Items {
		if c.Items[i].WelcomeGift {
			out = append(out, ItemHandle(i))
		}
	}
	return out
}

// Seeds lists every plantable item alongside what it grows into.
func (c *Config) Seeds() map[ItemHandle]PlantHandle {
	out := map[ItemHandle]PlantHandle{}
	for i := range c.Items {
		if s := c.Items[i].Seed; s != nil {
			out[ItemHandle(i)] = s.GrowsInto
		}
	}
	return out
}

// LandUnlockers lists every item redeemable for land.
func (c *Config) LandUnlockers() []ItemHandle {
	var out []ItemHandle
	for i := range c.Items {
		if c.Items[i].UnlocksLand != nil {
			out = append(out, ItemHandle(i))
		}
	}
	return out
}

// Recipes enumerates every craft recipe any plant can ever unlock,
// tagged with the plant it belongs to.
func (c *Config) Recipes() map[PlantHandle][]Recipe[ItemHandle] {
	out := map[PlantHandle][]Recipe[ItemHandle]{}
	for i := range c.Plants {
		for _, a := range c.Plants[i].Advancements.All() {
			k := a.Kind.Unwrap()
			if k.Tag == PKCraft {
				out[PlantHandle(i)] = append(out[PlantHandle(i)], k.Craft...)
			}
		}
	}
	return out
}
