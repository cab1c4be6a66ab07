package content_test

import (
	"testing"

	"github.com/steadling/farmcore/internal/content"
)

func ladder() content.AdvancementSet[string] {
	return content.AdvancementSet[string]{
		Base: content.Advancement[string]{Kind: "sprout", XP: 0, Title: "Sprout"},
		Rest: []content.Advancement[string]{
			{Kind: "sapling", XP: 100, Title: "Sapling"},
			{Kind: "tree", XP: 150, Title: "Tree"},
		},
	}
}

func TestCurrentPosition(t *testing.T) {
	set := ladder()
	cases := []struct {
		xp   int
		want int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{249, 1},
		{250, 2},
		{1000, 2},
	}
	for _, c := range cases {
		if got := set.CurrentPosition(c.xp); got != c.want {
			t.Fatalf("CurrentPosition(%d)=%d, want %d", c.xp, got, c.want)
		}
	}
}

func TestPositionMonotonic(t *testing.T) {
	set := ladder()
	prev := 0
	for xp := 0; xp <= 400; xp++ {
		pos := set.CurrentPosition(xp)
		if pos < prev {
			t.Fatalf("position dropped from %d to %d at xp=%d", prev, pos, xp)
		}
		prev = pos
	}
}

func TestCurrentAndNext(t *testing.T) {
	set := ladder()
	if got := set.Current(120); got.Title != "Sapling" {
		t.Fatalf("Current(120)=%q", got.Title)
	}
	if got := set.Next(120); got.Title != "Tree" {
		t.Fatalf("Next(120)=%q", got.Title)
	}
	if got := set.Next(9999); got != nil {
		t.Fatalf("Next at the top should be nil, got %q", got.Title)
	}
}

func TestUnlocked(t *testing.T) {
	set := ladder()
	if got := set.Unlocked(0); len(got) != 1 {
		t.Fatalf("base should always be unlocked; got %d rungs", len(got))
	}
	if got := set.Unlocked(250); len(got) != 3 {
		t.Fatalf("Unlocked(250)=%d rungs, want all 3", len(got))
	}
}

func TestIncreaseXPCrossing(t *testing.T) {
	set := ladder()
	xp := 90
	if got := set.IncreaseXP(&xp, 5); got != nil {
		t.Fatalf("95 xp crossed nothing, got %q", got.Title)
	}
	if got := set.IncreaseXP(&xp, 10); got == nil || got.Title != "Sapling" {
		t.Fatalf("105 xp should cross into Sapling, got %v", got)
	}
	if xp != 105 {
		t.Fatalf("xp=%d, want 105", xp)
	}
	// one grant can cross several rungs; only the newest comes back
	xp = 0
	if got := set.IncreaseXP(&xp, 500); got == nil || got.Title != "Tree" {
		t.Fatalf("500 xp should land on Tree, got %v", got)
	}
}

func TestProgress(t *testing.T) {
	set := ladder()
	info := set.Progress(120)
	if info.Position != 1 {
		t.Fatalf("position=%d, want 1", info.Position)
	}
	if info.XPSoFar != 20 || info.XPToGo != 130 || info.TotalLevelXP != 150 {
		t.Fatalf("info=%+v", info)
	}
}

func TestMaxXP(t *testing.T) {
	set := ladder()
	if got := set.MaxXP(); got != 250 {
		t.Fatalf("MaxXP()=%d, want 250", got)
	}
}
