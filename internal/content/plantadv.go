package content

import "math"

// Plant advancement kinds: the typed payload of one plant-ladder rung.
// A kind either tweaks a numeric knob, grants a yield table or craft
// list, or wraps another kind in Neighbor, meaning "this bonus applies
// to adjacent plants instead of this one".

// PlantKindTag discriminates the kind variants. The zero value PKNone
// grants nothing, so rungs that exist purely for their title fold as
// no-ops.
type PlantKindTag uint8

const (
	PKNone PlantKindTag = iota
	PKNeighbor
	PKXpMultiplier
	PKExtraTimeTicks
	PKExtraTimeTicksMultiplier
	PKYieldSpeedMultiplier
	PKYieldSizeMultiplier
	PKYield
	PKCraft
	PKCraftSpeedMultiplier
	PKCraftInputReturnChance
	PKCraftOutputDoubleChance
)

func (t PlantKindTag) String() string {
	switch t {
	case PKNone:
		return "None"
	case PKNeighbor:
		return "Neighbor"
	case PKXpMultiplier:
		return "XpMultiplier"
	case PKExtraTimeTicks:
		return "ExtraTimeTicks"
	case PKExtraTimeTicksMultiplier:
		return "ExtraTimeTicksMultiplier"
	case PKYieldSpeedMultiplier:
		return "YieldSpeedMultiplier"
	case PKYieldSizeMultiplier:
		return "YieldSizeMultiplier"
	case PKYield:
		return "Yield"
	case PKCraft:
		return "Craft"
	case PKCraftSpeedMultiplier:
		return "CraftSpeedMultiplier"
	case PKCraftInputReturnChance:
		return "CraftInputReturnChance"
	case PKCraftOutputDoubleChance:
		return "CraftOutputDoubleChance"
	}
	return "unknown"
}

// SpawnRule is one entry of a yield grant: Item drops with probability
// Chance, in a quantity drawn between Lo and Hi.
type SpawnRule[H any] struct {
	Chance float64 `json:"chance"`
	Lo     float64 `json:"lo"`
	Hi     float64 `json:"hi"`
	Item   H       `json:"item"`
}

// Evalput bridges a (fold-time scaled) spawn rule into the evaluator:
// Chance(c, Amount(Between(lo, hi), Item)).
func (r SpawnRule[H]) Evalput() Evalput[H] {
	body := Amount(Between(r.Lo, r.Hi), Item(r.Item))
	if r.Chance >= 1 {
		return body
	}
	return Chance(r.Chance, body)
}

type PlantAdvancementKind[H any] struct {
	Tag    PlantKindTag             `json:"tag"`
	Factor float64                  `json:"factor,omitempty"` // all multiplier/chance tags
	Ticks  int                      `json:"ticks,omitempty"`  // ExtraTimeTicks
	Inner  *PlantAdvancementKind[H] `json:"inner,omitempty"`  // Neighbor
	Yield  []SpawnRule[H]           `json:"yield,omitempty"`  // Yield
	Craft  []Recipe[H]              `json:"craft,omitempty"`  // Craft
}

func NeighborKind[H any](inner PlantAdvancementKind[H]) PlantAdvancementKind[H] {
	return PlantAdvancementKind[H]{Tag: PKNeighbor, Inner: &inner}
}

func FactorKind[H any](tag PlantKindTag, f float64) PlantAdvancementKind[H] {
	return PlantAdvancementKind[H]{Tag: tag, Factor: f}
}

func TicksKind[H any](n int) PlantAdvancementKind[H] {
	return PlantAdvancementKind[H]{Tag: PKExtraTimeTicks, Ticks: n}
}

func YieldKind[H any](rules ...SpawnRule[H]) PlantAdvancementKind[H] {
	return PlantAdvancementKind[H]{Tag: PKYield, Yield: rules}
}

func CraftKind[H any](recipes ...Recipe[H]) PlantAdvancementKind[H] {
	return PlantAdvancementKind[H]{Tag: PKCraft, Craft: recipes}
}

// Unwrap strips every Neighbor layer, returning the effective kind a
// recipient plant should fold.
func (k PlantAdvancementKind[H]) Unwrap() PlantAdvancementKind[H] {
	for k.Tag == PKNeighbor && k.Inner != nil {
		k = *k.Inner
	}
	return k
}

// ResolvePlantKind transforms every item reference inside the kind,
// aborting on the first failure.
func ResolvePlantKind[H, T any](k PlantAdvancementKind[H], f func(H) (T, error)) (PlantAdvancementKind[T], error) {
	out := PlantAdvancementKind[T]{Tag: k.Tag, Factor: k.Factor, Ticks: k.Ticks}
	switch k.Tag {
	case PKNeighbor:
		if k.Inner == nil {
			return out, nil
		}
		inner, err := ResolvePlantKind(*k.Inner, f)
		if err != nil {
			return PlantAdvancementKind[T]{}, err
		}
		out.Inner = &inner
	case PKYield:
		out.Yield = make([]SpawnRule[T], len(k.Yield))
		for i, r := range k.Yield {
			item, err := f(r.Item)
			if err != nil {
				return PlantAdvancementKind[T]{}, err
			}
			out.Yield[i] = SpawnRule[T]{Chance: r.Chance, Lo: r.Lo, Hi: r.Hi, Item: item}
		}
	case PKCraft:
		out.Craft = make([]Recipe[T], len(k.Craft))
		for i, r := range k.Craft {
			rr, err := ResolveRecipe(r, f)
			if err != nil {
				return PlantAdvancementKind[T]{}, err
			}
			out.Craft[i] = rr
		}
	}
	return out, nil
}

// PlantAdvancementSum is the fold of all currently-applicable plant
// bonuses into one coherent modifier set. Ephemeral: recomputed on
// demand, never persisted.
type PlantAdvancementSum struct {
	XpMultiplier            float64                 `json:"xp_multiplier"`
	TotalExtraTimeTicks     int                     `json:"total_extra_time_ticks"`
	YieldSpeedMultiplier    float64                 `json:"yield_speed_multiplier"`
	YieldSizeMultiplier     float64                 `json:"yield_size_multiplier"`
	Yields                  []SpawnRule[ItemHandle] `json:"yields"`
	Recipes                 []Recipe[ItemHandle]    `json:"recipes"`
	CraftSpeedMultiplier    float64                 `json:"craft_speed_multiplier"`
	CraftInputReturnChance  float64                 `json:"craft_input_return_chance"`
	CraftOutputDoubleChance float64                 `json:"craft_output_double_chance"`
}

// YieldEvalput assembles the scaled yield table into one tree ready
// for evaluation.
func (s PlantAdvancementSum) YieldEvalput() Evalput[ItemHandle] {
	children := make([]Evalput[ItemHandle], len(s.Yields))
	for i, r := range s.Yields {
		children[i] = r.Evalput()
	}
	return All(children...)
}

// NewPlantSum folds kinds as given: multipliers compose
// multiplicatively, flat bonuses additively, collections concatenate.
// Accumulated probabilities (craft return/double, scaled yield chance)
// are capped at 1.0. The accumulated yield-size multiplier is applied
// to each yield's chance and amount bounds here, once; evaluation
// later operates on the already-scaled values. Neighbor-wrapped kinds
// are ignored: callers decide whether to exclude or unwrap them.
func NewPlantSum(kinds []PlantAdvancementKind[ItemHandle]) PlantAdvancementSum {
	sum := PlantAdvancementSum{
		XpMultiplier:         1,
		YieldSpeedMultiplier: 1,
		YieldSizeMultiplier:  1,
		CraftSpeedMultiplier: 1,
	}
	ticks := 0.0
	ticksMultiplier := 1.0

	for _, k := range kinds {
		switch k.Tag {
		case PKNeighbor:
		case PKXpMultiplier:
			sum.XpMultiplier *= k.Factor
		case PKExtraTimeTicks:
			ticks += float64(k.Ticks)
		case PKExtraTimeTicksMultiplier:
			ticksMultiplier *= k.Factor
		case PKYieldSpeedMultiplier:
			sum.YieldSpeedMultiplier *= k.Factor
		case PKYieldSizeMultiplier:
			sum.YieldSizeMultiplier *= k.Factor
		case PKYield:
			sum.Yields = append(sum.Yields, k.Yield...)
		case PKCraft:
			sum.Recipes = append(sum.Recipes, k.Craft...)
		case PKCraftSpeedMultiplier:
			sum.CraftSpeedMultiplier *= k.Factor
		case PKCraftInputReturnChance:
			sum.CraftInputReturnChance += k.Factor
		case PKCraftOutputDoubleChance:
			sum.CraftOutputDoubleChance += k.Factor
		}
	}

	sum.TotalExtraTimeTicks = int(math.Round(ticks * ticksMultiplier))
	sum.CraftInputReturnChance = math.Min(sum.CraftInputReturnChance, 1.0)
	sum.CraftOutputDoubleChance = math.Min(sum.CraftOutputDoubleChance, 1.0)

	if ys := sum.YieldSizeMultiplier; ys != 1 {
		scaled := make([]SpawnRule[ItemHandle], len(sum.Yields))
		for i, r := range sum.Yields {
			scaled[i] = SpawnRule[ItemHandle]{
				Chance: math.Min(r.Chance*ys, 1.0),
				Lo:     r.Lo * ys,
				Hi:     r.Hi * ys,
				Item:   r.Item,
			}
		}
		sum.Yields = scaled
	}

	return sum
}

// PlantLadder is the concrete ladder type carried by plant archetypes.
type PlantLadder = AdvancementSet[PlantAdvancementKind[ItemHandle]]

// filterBase drops Neighbor-wrapped kinds: an entity's own sum never
// includes what it grants to its neighbors.
func filterBase(kinds []PlantAdvancementKind[ItemHandle]) []PlantAdvancementKind[ItemHandle] {
	out := kinds[:0:0]
	for _, k := range kinds {
		if k.Tag != PKNeighbor {
			out = append(out, k)
		}
	}
	return out
}

// UnwrapAll strips Neighbor layers from every kind. Callers delivering
// a plant's radiated bonuses to its neighbors unwrap them on the way.
func UnwrapAll(kinds []PlantAdvancementKind[ItemHandle]) []PlantAdvancementKind[ItemHandle] {
	out := make([]PlantAdvancementKind[ItemHandle], len(kinds))
	for i, k := range kinds {
		out[i] = k.Unwrap()
	}
	return out
}

func unlockedKinds(set *PlantLadder, xp int) []PlantAdvancementKind[ItemHandle] {
	unlocked := set.Unlocked(xp)
	kinds := make([]PlantAdvancementKind[ItemHandle], len(unlocked))
	for i, a := range unlocked {
		kinds[i] = a.Kind
	}
	return kinds
}

func allKinds(set *PlantLadder) []PlantAdvancementKind[ItemHandle] {
	all := set.All()
	kinds := make([]PlantAdvancementKind[ItemHandle], len(all))
	for i, a := range all {
		kinds[i] = a.Kind
	}
	return kinds
}

// PlantSum folds the unlocked rungs plus any extra advancements (item
// effects, bonuses already received from neighbors). The fold skips
// anything still Neighbor-wrapped, so a plant never applies its own
// area-of-effect bonuses to itself: whoever delivers a neighbor's
// bonus unwraps it first. See UnwrapAll.
func PlantSum(set *PlantLadder, xp int, extra []PlantAdvancementKind[ItemHandle]) PlantAdvancementSum {
	kinds := filterBase(unlockedKinds(set, xp))
	return NewPlantSum(append(kinds, extra...))
}

// PlantRawSum folds unlocked rungs and extras with every Neighbor
// layer stripped, answering "what would this plant's bonuses do if
// they all landed here".
func PlantRawSum(set *PlantLadder, xp int, extra []PlantAdvancementKind[ItemHandle]) PlantAdvancementSum {
	kinds := UnwrapAll(unlockedKinds(set, xp))
	return NewPlantSum(append(kinds, UnwrapAll(extra)...))
}

// PlantMaxSum folds every rung regardless of xp, for "fully grown this
// plant could..." displays.
func PlantMaxSum(set *PlantLadder, extra []PlantAdvancementKind[ItemHandle]) PlantAdvancementSum {
	kinds := filterBase(allKinds(set))
	return NewPlantSum(append(kinds, extra...))
}
