package content

// Advancement is one rung of a progression ladder. XP is the cost of
// this rung alone; unlock thresholds are the cumulative sum of the
// costs of all preceding rungs, never stored per rung.
type Advancement[K any] struct {
	Kind          K      `json:"kind"`
	XP            int    `json:"xp"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	AchieverTitle string `json:"achiever_title,omitempty"`
}

// AdvancementSet is a non-empty ordered ladder: the base rung is
// always unlocked, and ladder order equals unlock order.
type AdvancementSet[K any] struct {
	Base Advancement[K]   `json:"base"`
	Rest []Advancement[K] `json:"rest"`
}

// All returns every rung, base first.
func (s *AdvancementSet[K]) All() []Advancement[K] {
	out := make([]Advancement[K], 0, 1+len(s.Rest))
	out = append(out, s.Base)
	return append(out, s.Rest...)
}

func (s *AdvancementSet[K]) Len() int { return 1 + len(s.Rest) }

// MaxXP is the cumulative cost of the entire ladder.
func (s *AdvancementSet[K]) MaxXP() int {
	total := s.Base.XP
	for _, a := range s.Rest {
		total += a.XP
	}
	return total
}

// CurrentPosition returns the index of the last rung whose cumulative
// threshold is <= xp. Position 0 (the base rung) is always unlocked;
// the result is monotonic non-decreasing in xp.
func (s *AdvancementSet[K]) CurrentPosition(xp int) int {
	pos := 0
	remaining := xp - s.Base.XP
	if remaining < 0 {
		return 0
	}
	for i, a := range s.Rest {
		if remaining < a.XP {
			break
		}
		remaining -= a.XP
		pos = i + 1
	}
	return pos
}

// Current returns the highest unlocked rung.
func (s *AdvancementSet[K]) Current(xp int) *Advancement[K] {
	pos := s.CurrentPosition(xp)
	if pos == 0 {
		return &s.Base
	}
	return &s.Rest[pos-1]
}

// Next returns the first locked rung, or nil at the top of the ladder.
func (s *AdvancementSet[K]) Next(xp int) *Advancement[K] {
	pos := s.CurrentPosition(xp)
	if pos >= len(s.Rest) {
		return nil
	}
	return &s.Rest[pos]
}

// Unlocked returns every rung at or below the current position.
func (s *AdvancementSet[K]) Unlocked(xp int) []Advancement[K] {
	return s.All()[:s.CurrentPosition(xp)+1]
}

// IncreaseXP adds amt to the counter behind xp and returns the newly
// unlocked rung, but only when a threshold was actually crossed; an
// XP change that stays inside one rung returns nil.
func (s *AdvancementSet[K]) IncreaseXP(xp *int, amt int) *Advancement[K] {
	before := s.CurrentPosition(*xp)
	*xp += amt
	after := s.CurrentPosition(*xp)
	if after == before {
		return nil
	}
	return s.Current(*xp)
}

// LevelInfo describes progress within the current rung, for display.
type LevelInfo struct {
	XPSoFar      int // xp spent toward the next rung
	XPToGo       int // xp still needed for the next rung
	TotalLevelXP int // full cost of the next rung
	Position     int // index of the last unlocked rung
}

// Progress reports how far xp reaches into the ladder.
func (s *AdvancementSet[K]) Progress(xp int) LevelInfo {
	info := LevelInfo{Position: s.CurrentPosition(xp)}
	spent := s.Base.XP
	for i := 0; i < info.Position; i++ {
		spent += s.Rest[i].XP
	}
	if next := s.Next(xp); next != nil {
		info.TotalLevelXP = next.XP
		info.XPSoFar = xp - spent
		info.XPToGo = next.XP - info.XPSoFar
	}
	return info
}
