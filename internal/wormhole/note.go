// Package wormhole pushes game events to connected clients over
// websockets. Steads subscribe by id; anything that happens to a stead
// while a client is connected arrives as a Note.
package wormhole

// NoteKind tags what a Note describes.
type NoteKind string

const (
	NoteYieldResult NoteKind = "yield_result"
	NoteCraftResult NoteKind = "craft_result"
	NoteLevelUp     NoteKind = "level_up"
	NoteRubEffect   NoteKind = "rub_effect"
)

// Note is one event pushed to a stead's clients.
type Note struct {
	Kind    NoteKind `json:"kind"`
	SteadID string   `json:"stead_id"`
	TileID  string   `json:"tile_id,omitempty"`
	XP      int      `json:"xp,omitempty"`
	Items   []string `json:"items,omitempty"` // item archetype names
	Title   string   `json:"title,omitempty"` // level_up rung title
	Detail  string   `json:"detail,omitempty"`
}
