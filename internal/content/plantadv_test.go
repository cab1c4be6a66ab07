package content_test

import (
	"math"
	"testing"

	"github.com/steadling/farmcore/internal/content"
)

type kind = content.PlantAdvancementKind[content.ItemHandle]

func TestPlantSumFoldRules(t *testing.T) {
	sum := content.NewPlantSum([]kind{
		content.FactorKind[content.ItemHandle](content.PKXpMultiplier, 2),
		content.FactorKind[content.ItemHandle](content.PKXpMultiplier, 1.5),
		content.TicksKind[content.ItemHandle](10),
		content.TicksKind[content.ItemHandle](4),
		content.FactorKind[content.ItemHandle](content.PKExtraTimeTicksMultiplier, 0.5),
		content.FactorKind[content.ItemHandle](content.PKCraftInputReturnChance, 0.1),
		content.FactorKind[content.ItemHandle](content.PKCraftInputReturnChance, 0.2),
	})
	if sum.XpMultiplier != 3 {
		t.Fatalf("multipliers should compose; got %f", sum.XpMultiplier)
	}
	if sum.TotalExtraTimeTicks != 7 {
		t.Fatalf("ticks should add then scale; got %d", sum.TotalExtraTimeTicks)
	}
	if math.Abs(sum.CraftInputReturnChance-0.3) > 1e-9 {
		t.Fatalf("chances should add; got %f", sum.CraftInputReturnChance)
	}
}

func TestPlantSumCapsCraftChances(t *testing.T) {
	sum := content.NewPlantSum([]kind{
		content.FactorKind[content.ItemHandle](content.PKCraftInputReturnChance, 0.6),
		content.FactorKind[content.ItemHandle](content.PKCraftInputReturnChance, 0.6),
		content.FactorKind[content.ItemHandle](content.PKCraftOutputDoubleChance, 0.7),
		content.FactorKind[content.ItemHandle](content.PKCraftOutputDoubleChance, 0.7),
	})
	if sum.CraftInputReturnChance != 1.0 {
		t.Fatalf("return chance should cap at 1; got %f", sum.CraftInputReturnChance)
	}
	if sum.CraftOutputDoubleChance != 1.0 {
		t.Fatalf("double chance should cap at 1; got %f", sum.CraftOutputDoubleChance)
	}
}

func TestPlantSumDefaults(t *testing.T) {
	sum := content.NewPlantSum(nil)
	if sum.XpMultiplier != 1 || sum.YieldSpeedMultiplier != 1 ||
		sum.YieldSizeMultiplier != 1 || sum.CraftSpeedMultiplier != 1 {
		t.Fatalf("empty fold should be identity; got %+v", sum)
	}
	if sum.TotalExtraTimeTicks != 0 || sum.CraftInputReturnChance != 0 {
		t.Fatalf("empty fold should grant nothing; got %+v", sum)
	}
}

func TestYieldSizeScalesSpawnRules(t *testing.T) {
	sum := content.NewPlantSum([]kind{
		content.YieldKind(content.SpawnRule[content.ItemHandle]{
			Chance: 0.6, Lo: 1, Hi: 2, Item: 0,
		}),
		content.FactorKind[content.ItemHandle](content.PKYieldSizeMultiplier, 2),
	})
	if len(sum.Yields) != 1 {
		t.Fatalf("yields=%v", sum.Yields)
	}
	y := sum.Yields[0]
	if y.Chance != 1 {
		t.Fatalf("scaled chance should cap at 1; got %f", y.Chance)
	}
	if y.Lo != 2 || y.Hi != 4 {
		t.Fatalf("bounds should scale; got [%f, %f]", y.Lo, y.Hi)
	}
}

func TestNeighborAsymmetry(t *testing.T) {
	boost := content.FactorKind[content.ItemHandle](content.PKXpMultiplier, 3)
	set := &content.PlantLadder{
		Base: content.Advancement[kind]{Kind: content.NeighborKind(boost)},
	}

	// the plant's own Neighbor rung never applies to itself
	own := content.PlantSum(set, 0, nil)
	if own.XpMultiplier != 1 {
		t.Fatalf("own Neighbor rung leaked into own sum: %f", own.XpMultiplier)
	}

	// a recipient folds it unwrapped
	recipient := content.PlantSum(set, 0, content.UnwrapAll([]kind{content.NeighborKind(boost)}))
	if recipient.XpMultiplier != 3 {
		t.Fatalf("delivered bonus should apply; got %f", recipient.XpMultiplier)
	}

	// RawSum treats the plant as its own neighbor
	raw := content.PlantRawSum(set, 0, nil)
	if raw.XpMultiplier != 3 {
		t.Fatalf("raw sum should unwrap; got %f", raw.XpMultiplier)
	}
}

func TestPlantMaxSumIgnoresXP(t *testing.T) {
	set := &content.PlantLadder{
		Base: content.Advancement[kind]{Kind: content.FactorKind[content.ItemHandle](content.PKXpMultiplier, 2)},
		Rest: []content.Advancement[kind]{
			{XP: 1000, Kind: content.FactorKind[content.ItemHandle](content.PKXpMultiplier, 2)},
		},
	}
	if got := content.PlantSum(set, 0, nil).XpMultiplier; got != 2 {
		t.Fatalf("locked rung applied at 0 xp: %f", got)
	}
	if got := content.PlantMaxSum(set, nil).XpMultiplier; got != 4 {
		t.Fatalf("max sum should fold every rung: %f", got)
	}
}

func TestSpawnRuleEvalput(t *testing.T) {
	rule := content.SpawnRule[content.ItemHandle]{Chance: 0.5, Lo: 2, Hi: 2, Item: 7}
	tree := rule.Evalput()

	out := tree.Evaluate(&scriptRNG{vals: []float64{0.4}})
	if len(out.Items) != 2 {
		t.Fatalf("firing rule should drop both; got %v", out.Items)
	}
	out = tree.Evaluate(&scriptRNG{vals: []float64{0.6}})
	if len(out.Items) != 0 {
		t.Fatalf("missed rule should drop nothing; got %v", out.Items)
	}

	// chance >= 1 skips the gate entirely
	sure := content.SpawnRule[content.ItemHandle]{Chance: 1, Lo: 1, Hi: 1, Item: 7}
	if out := sure.Evalput().Evaluate(&scriptRNG{vals: []float64{0.999}}); len(out.Items) != 1 {
		t.Fatalf("certain rule should always drop; got %v", out.Items)
	}
}
