// Package stead holds the mutable game state a player owns: their
// profile, inventory, and planted tiles. Everything here references
// content archetypes by handle and reads definitions through a
// verified Config.
package stead

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/steadling/farmcore/internal/content"
)

// newID mints a 16-byte random hex identifier.
func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("stead: id entropy unavailable: %v", err))
	}
	return hex.EncodeToString(b[:])
}

// Acquisition records how an item came to its current owner.
type Acquisition uint8

const (
	AcquiredTrade Acquisition = iota
	AcquiredFarmed
	AcquiredCrafted
	AcquiredHatched
	AcquiredWelcomeGift
)

func (a Acquisition) String() string {
	switch a {
	case AcquiredTrade:
		return "trade"
	case AcquiredFarmed:
		return "farmed"
	case AcquiredCrafted:
		return "crafted"
	case AcquiredHatched:
		return "hatched"
	case AcquiredWelcomeGift:
		return "welcome gift"
	}
	return "unknown"
}

// Owner is one entry in an item's ownership log.
type Owner struct {
	SteadID     string      `json:"stead_id"`
	Acquisition Acquisition `json:"acquisition"`
}

// GotchiState is the mutable half of a hatchable item.
type GotchiState struct {
	Nickname  string `json:"nickname"`
	Happiness int    `json:"happiness"`
}

// Item is one owned instance of an item archetype.
type Item struct {
	ID           string             `json:"id"`
	Archetype    content.ItemHandle `json:"archetype"`
	OwnershipLog []Owner            `json:"ownership_log"`
	Gotchi       *GotchiState       `json:"gotchi,omitempty"`
}

// NewItem spawns an instance of arch owned by steadID.
func NewItem(cfg *content.Config, arch content.ItemHandle, steadID string, how Acquisition) (*Item, error) {
	a, err := cfg.Item(arch)
	if err != nil {
		return nil, err
	}
	it := &Item{
		ID:           newID(),
		Archetype:    arch,
		OwnershipLog: []Owner{{SteadID: steadID, Acquisition: how}},
	}
	if g, ok := a.GotchiDetails(); ok {
		it.Gotchi = &GotchiState{Nickname: a.Name, Happiness: g.BaseHappiness}
	}
	return it, nil
}

// ArchetypeIn looks the item's definition up in cfg.
func (i *Item) ArchetypeIn(cfg *content.Config) (*content.Archetype, error) {
	return cfg.Item(i.Archetype)
}

// CurrentOwner is the newest ownership log entry.
func (i *Item) CurrentOwner() Owner {
	return i.OwnershipLog[len(i.OwnershipLog)-1]
}

// GiveTo appends owner steadID to the log.
func (i *Item) GiveTo(steadID string) {
	i.OwnershipLog = append(i.OwnershipLog, Owner{SteadID: steadID, Acquisition: AcquiredTrade})
}

// Hatch consumes the gotchi's hatch table, returning the archetypes of
// what pops out. Errors if the item isn't a hatchable gotchi.
func (i *Item) Hatch(cfg *content.Config, rng content.RandomSource) ([]content.ItemHandle, int, error) {
	a, err := cfg.Item(i.Archetype)
	if err != nil {
		return nil, 0, err
	}
	g, ok := a.GotchiDetails()
	if !ok || g.Hatch == nil {
		return nil, 0, fmt.Errorf("item %q doesn't hatch", a.Name)
	}
	out := g.Hatch.Evaluate(rng)
	return out.Items, out.XP, nil
}
