package stead

import (
	"fmt"

	"github.com/steadling/farmcore/internal/content"
)

// Tile is one land plot, planted or not.
type Tile struct {
	ID    TileID `json:"id"`
	Plant *Plant `json:"plant,omitempty"`
}

// Hackstead is everything one player owns.
type Hackstead struct {
	ID        string  `json:"id"`
	Owner     string  `json:"owner"`
	Profile   Profile `json:"profile"`
	Inventory []*Item `json:"inventory"`
	Tiles     []Tile  `json:"tiles"`
}

// NewHackstead sets up a fresh stead for owner: welcome gift items
// and a single open tile.
func NewHackstead(cfg *content.Config, owner string) (*Hackstead, error) {
	hs := &Hackstead{
		ID:    newID(),
		Owner: owner,
		Tiles: []Tile{{ID: TileID(newID())}},
	}
	for _, h := range cfg.WelcomeGifts() {
		it, err := NewItem(cfg, h, hs.ID, AcquiredWelcomeGift)
		if err != nil {
			return nil, err
		}
		hs.Inventory = append(hs.Inventory, it)
	}
	return hs, nil
}

// Plants lists the planted tiles keyed by tile.
func (hs *Hackstead) Plants() map[TileID]*Plant {
	out := map[TileID]*Plant{}
	for i := range hs.Tiles {
		if p := hs.Tiles[i].Plant; p != nil {
			out[hs.Tiles[i].ID] = p
		}
	}
	return out
}

// OpenTiles lists unplanted tiles.
func (hs *Hackstead) OpenTiles() []*Tile {
	var out []*Tile
	for i := range hs.Tiles {
		if hs.Tiles[i].Plant == nil {
			out = append(out, &hs.Tiles[i])
		}
	}
	return out
}

// Tile finds a tile by id.
func (hs *Hackstead) Tile(id TileID) (*Tile, error) {
	for i := range hs.Tiles {
		if hs.Tiles[i].ID == id {
			return &hs.Tiles[i], nil
		}
	}
	return nil, fmt.Errorf("stead %s has no tile %s", hs.ID, id)
}

// Item finds an inventory item by id.
func (hs *Hackstead) Item(id string) (*Item, error) {
	for _, it := range hs.Inventory {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, fmt.Errorf("stead %s has no item %s", hs.ID, id)
}

// RemoveItem takes an item out of the inventory by id.
func (hs *Hackstead) RemoveItem(id string) (*Item, error) {
	for i, it := range hs.Inventory {
		if it.ID == id {
			hs.Inventory = append(hs.Inventory[:i], hs.Inventory[i+1:]...)
			return it, nil
		}
	}
	return nil, fmt.Errorf("stead %s has no item %s", hs.ID, id)
}

// CountOf tallies inventory items of one archetype.
func (hs *Hackstead) CountOf(h content.ItemHandle) int {
	n := 0
	for _, it := range hs.Inventory {
		if it.Archetype == h {
			n++
		}
	}
	return n
}

// SpendOf removes count items of archetype h, all or nothing.
func (hs *Hackstead) SpendOf(h content.ItemHandle, count int) ([]*Item, error) {
	if hs.CountOf(h) < count {
		return nil, fmt.Errorf("stead %s has %d of item %d, needs %d", hs.ID, hs.CountOf(h), h, count)
	}
	var spent []*Item
	kept := hs.Inventory[:0]
	for _, it := range hs.Inventory {
		if it.Archetype == h && len(spent) < count {
			spent = append(spent, it)
			continue
		}
		kept = append(kept, it)
	}
	hs.Inventory = kept
	return spent, nil
}

// LandUnlockEligible reports whether item can currently be redeemed
// for land: xp-gated unlockers need the next profile rung to exist and
// grant land.
func (hs *Hackstead) LandUnlockEligible(cfg *content.Config, item *Item) (bool, error) {
	a, err := item.ArchetypeIn(cfg)
	if err != nil {
		return false, err
	}
	lu, ok := a.LandUnlockDetails()
	if !ok {
		return false, fmt.Errorf("item %q doesn't unlock land", a.Name)
	}
	if !lu.RequiresXP {
		return true, nil
	}
	next := hs.Profile.Next(cfg)
	return next != nil && next.Kind.Land > 0, nil
}

// UnlockLand redeems item for land plots, consuming it.
func (hs *Hackstead) UnlockLand(cfg *content.Config, itemID string) (int, error) {
	it, err := hs.Item(itemID)
	if err != nil {
		return 0, err
	}
	ok, err := hs.LandUnlockEligible(cfg, it)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("stead %s hasn't earned enough xp to redeem item %s", hs.ID, itemID)
	}
	a, _ := it.ArchetypeIn(cfg)
	lu, _ := a.LandUnlockDetails()
	if _, err := hs.RemoveItem(itemID); err != nil {
		return 0, err
	}
	hs.Profile.ExtraLandPlots += lu.Amount
	for i := 0; i < lu.Amount; i++ {
		hs.Tiles = append(hs.Tiles, Tile{ID: TileID(newID())})
	}
	return lu.Amount, nil
}

// PlantSeed plants inventory item seedID on tile, consuming the seed.
func (hs *Hackstead) PlantSeed(cfg *content.Config, tile TileID, seedID string) (*Plant, error) {
	t, err := hs.Tile(tile)
	if err != nil {
		return nil, err
	}
	if t.Plant != nil {
		return nil, fmt.Errorf("tile %s is already planted", tile)
	}
	seed, err := hs.Item(seedID)
	if err != nil {
		return nil, err
	}
	p, err := NewPlantFromSeed(cfg, tile, seed)
	if err != nil {
		return nil, err
	}
	if _, err := hs.RemoveItem(seedID); err != nil {
		return nil, err
	}
	t.Plant = p
	return p, nil
}
