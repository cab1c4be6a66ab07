package verify

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/steadling/farmcore/internal/content"
)

// Raw config types: exactly the shapes content authors write, with
// item and plant references still spelled as display names. Variant
// nodes (evalputs, repeats, makes, advancement kinds) are mappings
// with a single capitalized key, decoded by hand off the yaml tree.

// singleKey asserts n is a one-entry mapping and returns that entry.
func singleKey(n *yaml.Node) (string, *yaml.Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, fmt.Errorf("line %d: expected a mapping with a single variant key", n.Line)
	}
	return n.Content[0].Value, n.Content[1], nil
}

// pair asserts n is a two-element sequence.
func pair(n *yaml.Node) (*yaml.Node, *yaml.Node, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 2 {
		return nil, nil, fmt.Errorf("line %d: expected a two element list", n.Line)
	}
	return n.Content[0], n.Content[1], nil
}

// RawRepeats wraps a Repeats spelled as Exactly/Just/Between.
type RawRepeats struct {
	Reps content.Repeats
}

func (r *RawRepeats) UnmarshalYAML(n *yaml.Node) error {
	// bare number is shorthand for Exactly
	if n.Kind == yaml.ScalarNode {
		var count int
		if err := n.Decode(&count); err != nil {
			return fmt.Errorf("line %d: repeats shorthand must be a whole number", n.Line)
		}
		r.Reps = content.Exactly(count)
		return nil
	}
	key, val, err := singleKey(n)
	if err != nil {
		return err
	}
	switch key {
	case "Exactly":
		var count int
		if err := val.Decode(&count); err != nil {
			return fmt.Errorf("line %d: Exactly takes a whole number", val.Line)
		}
		r.Reps = content.Exactly(count)
	case "Just":
		var x float64
		if err := val.Decode(&x); err != nil {
			return fmt.Errorf("line %d: Just takes a number", val.Line)
		}
		r.Reps = content.Just(x)
	case "Between":
		loNode, hiNode, err := pair(val)
		if err != nil {
			return err
		}
		var lo, hi float64
		if err := loNode.Decode(&lo); err != nil {
			return fmt.Errorf("line %d: Between bounds must be numbers", loNode.Line)
		}
		if err := hiNode.Decode(&hi); err != nil {
			return fmt.Errorf("line %d: Between bounds must be numbers", hiNode.Line)
		}
		r.Reps = content.Between(lo, hi)
	default:
		return fmt.Errorf("line %d: unknown repeats variant %q, expected Exactly, Just, or Between", n.Line, key)
	}
	return nil
}

// RawEvalput wraps an Evalput over item names.
type RawEvalput struct {
	Node content.Evalput[string]
}

func (e *RawEvalput) UnmarshalYAML(n *yaml.Node) error {
	node, err := decodeEvalput(n)
	if err != nil {
		return err
	}
	e.Node = node
	return nil
}

func decodeEvalput(n *yaml.Node) (content.Evalput[string], error) {
	var zero content.Evalput[string]
	if n.Kind == yaml.ScalarNode {
		// bare string is shorthand for a single Item
		if n.Value == "Nothing" {
			return content.Nothing[string](), nil
		}
		return content.Item(n.Value), nil
	}
	key, val, err := singleKey(n)
	if err != nil {
		return zero, err
	}
	switch key {
	case "All":
		if val.Kind != yaml.SequenceNode {
			return zero, fmt.Errorf("line %d: All takes a list", val.Line)
		}
		children := make([]content.Evalput[string], len(val.Content))
		for i, c := range val.Content {
			child, err := decodeEvalput(c)
			if err != nil {
				return zero, err
			}
			children[i] = child
		}
		return content.All(children...), nil
	case "OneOf":
		if val.Kind != yaml.SequenceNode {
			return zero, fmt.Errorf("line %d: OneOf takes a list of [weight, result] pairs", val.Line)
		}
		branches := make([]content.Weighted[string], len(val.Content))
		for i, c := range val.Content {
			wNode, bNode, err := pair(c)
			if err != nil {
				return zero, err
			}
			var w float64
			if err := wNode.Decode(&w); err != nil {
				return zero, fmt.Errorf("line %d: OneOf weight must be a number", wNode.Line)
			}
			branch, err := decodeEvalput(bNode)
			if err != nil {
				return zero, err
			}
			branches[i] = content.Weighted[string]{Weight: w, Branch: branch}
		}
		return content.OneOf(branches...), nil
	case "Amount":
		rNode, bNode, err := pair(val)
		if err != nil {
			return zero, err
		}
		var reps RawRepeats
		if err := reps.UnmarshalYAML(rNode); err != nil {
			return zero, err
		}
		body, err := decodeEvalput(bNode)
		if err != nil {
			return zero, err
		}
		return content.Amount(reps.Reps, body), nil
	case "Chance":
		pNode, bNode, err := pair(val)
		if err != nil {
			return zero, err
		}
		var p float64
		if err := pNode.Decode(&p); err != nil {
			return zero, fmt.Errorf("line %d: Chance probability must be a number", pNode.Line)
		}
		body, err := decodeEvalput(bNode)
		if err != nil {
			return zero, err
		}
		return content.Chance(p, body), nil
	case "Xp":
		var reps RawRepeats
		if err := reps.UnmarshalYAML(val); err != nil {
			return zero, err
		}
		return content.Xp[string](reps.Reps), nil
	case "Item":
		if val.Kind != yaml.ScalarNode {
			return zero, fmt.Errorf("line %d: Item takes an item name", val.Line)
		}
		return content.Item(val.Value), nil
	}
	return zero, fmt.Errorf("line %d: unknown evalput variant %q", n.Line, key)
}

// RawMakes wraps a RecipeMakes over item names.
type RawMakes struct {
	Makes content.RecipeMakes[string]
}

func (m *RawMakes) UnmarshalYAML(n *yaml.Node) error {
	makes, err := decodeMakes(n)
	if err != nil {
		return err
	}
	m.Makes = makes
	return nil
}

func decodeAmountOf(n *yaml.Node) (content.AmountOf[string], error) {
	var zero content.AmountOf[string]
	cNode, iNode, err := pair(n)
	if err != nil {
		return zero, err
	}
	var count int
	if err := cNode.Decode(&count); err != nil {
		return zero, fmt.Errorf("line %d: count must be a whole number", cNode.Line)
	}
	if iNode.Kind != yaml.ScalarNode {
		return zero, fmt.Errorf("line %d: expected an item name", iNode.Line)
	}
	return content.AmountOf[string]{Count: count, Item: iNode.Value}, nil
}

func decodeMakes(n *yaml.Node) (content.RecipeMakes[string], error) {
	var zero content.RecipeMakes[string]
	if n.Kind == yaml.ScalarNode && n.Value == "Nothing" {
		return content.MakeNothing[string](), nil
	}
	key, val, err := singleKey(n)
	if err != nil {
		return zero, err
	}
	switch key {
	case "Just":
		a, err := decodeAmountOf(val)
		if err != nil {
			return zero, err
		}
		return content.MakeJust(a.Count, a.Item), nil
	case "OneOf":
		if val.Kind != yaml.SequenceNode {
			return zero, fmt.Errorf("line %d: OneOf takes a list of [weight, makes] pairs", val.Line)
		}
		branches := make([]content.WeightedMakes[string], len(val.Content))
		for i, c := range val.Content {
			wNode, mNode, err := pair(c)
			if err != nil {
				return zero, err
			}
			var w float64
			if err := wNode.Decode(&w); err != nil {
				return zero, fmt.Errorf("line %d: OneOf weight must be a number", wNode.Line)
			}
			makes, err := decodeMakes(mNode)
			if err != nil {
				return zero, err
			}
			branches[i] = content.WeightedMakes[string]{Weight: w, Makes: makes}
		}
		return content.MakeOneOf(branches...), nil
	case "AllOf":
		if val.Kind != yaml.SequenceNode {
			return zero, fmt.Errorf("line %d: AllOf takes a list of [count, item] pairs", val.Line)
		}
		fixed := make([]content.AmountOf[string], len(val.Content))
		for i, c := range val.Content {
			a, err := decodeAmountOf(c)
			if err != nil {
				return zero, err
			}
			fixed[i] = a
		}
		return content.MakeAllOf(fixed...), nil
	}
	return zero, fmt.Errorf("line %d: unknown makes variant %q", n.Line, key)
}

// RawRecipe is one craft definition, references by name.
type RawRecipe struct {
	Title         string    `yaml:"title"`
	Explanation   string    `yaml:"explanation"`
	Time          float64   `yaml:"time"`
	DestroysPlant bool      `yaml:"destroys_plant"`
	Needs         []rawNeed `yaml:"needs"`
	Makes         RawMakes  `yaml:"makes"`
}

type rawNeed struct {
	Amount content.AmountOf[string]
}

func (d *rawNeed) UnmarshalYAML(n *yaml.Node) error {
	a, err := decodeAmountOf(n)
	if err != nil {
		return err
	}
	d.Amount = a
	return nil
}

func (r RawRecipe) recipe() content.Recipe[string] {
	needs := make([]content.AmountOf[string], len(r.Needs))
	for i, d := range r.Needs {
		needs[i] = d.Amount
	}
	return content.Recipe[string]{
		Title:         r.Title,
		Explanation:   r.Explanation,
		Time:          r.Time,
		DestroysPlant: r.DestroysPlant,
		Needs:         needs,
		Makes:         r.Makes.Makes,
	}
}

// RawSpawnRule is one yield-table entry.
type RawSpawnRule struct {
	Chance float64 `yaml:"chance"`
	Lo     float64 `yaml:"lo"`
	Hi     float64 `yaml:"hi"`
	Item   string  `yaml:"item"`
}

// RawPlantKind wraps a plant advancement kind over item names.
type RawPlantKind struct {
	Kind content.PlantAdvancementKind[string]
}

func (k *RawPlantKind) UnmarshalYAML(n *yaml.Node) error {
	kind, err := decodePlantKind(n)
	if err != nil {
		return err
	}
	k.Kind = kind
	return nil
}

func decodePlantKind(n *yaml.Node) (content.PlantAdvancementKind[string], error) {
	var zero content.PlantAdvancementKind[string]
	key, val, err := singleKey(n)
	if err != nil {
		return zero, err
	}
	factor := func(tag content.PlantKindTag) (content.PlantAdvancementKind[string], error) {
		var f float64
		if err := val.Decode(&f); err != nil {
			return zero, fmt.Errorf("line %d: %s takes a number", val.Line, key)
		}
		return content.FactorKind[string](tag, f), nil
	}
	switch key {
	case "Neighbor":
		inner, err := decodePlantKind(val)
		if err != nil {
			return zero, err
		}
		return content.NeighborKind(inner), nil
	case "XpMultiplier":
		return factor(content.PKXpMultiplier)
	case "ExtraTimeTicks":
		var ticks int
		if err := val.Decode(&ticks); err != nil {
			return zero, fmt.Errorf("line %d: ExtraTimeTicks takes a whole number", val.Line)
		}
		return content.TicksKind[string](ticks), nil
	case "ExtraTimeTicksMultiplier":
		return factor(content.PKExtraTimeTicksMultiplier)
	case "YieldSpeedMultiplier":
		return factor(content.PKYieldSpeedMultiplier)
	case "YieldSizeMultiplier":
		return factor(content.PKYieldSizeMultiplier)
	case "CraftSpeedMultiplier":
		return factor(content.PKCraftSpeedMultiplier)
	case "CraftInputReturnChance":
		return factor(content.PKCraftInputReturnChance)
	case "CraftOutputDoubleChance":
		return factor(content.PKCraftOutputDoubleChance)
	case "Yield":
		var rules []RawSpawnRule
		if err := val.Decode(&rules); err != nil {
			return zero, fmt.Errorf("line %d: Yield takes a list of spawn rules: %v", val.Line, err)
		}
		out := make([]content.SpawnRule[string], len(rules))
		for i, r := range rules {
			out[i] = content.SpawnRule[string]{Chance: r.Chance, Lo: r.Lo, Hi: r.Hi, Item: r.Item}
		}
		return content.YieldKind(out...), nil
	case "Craft":
		var recipes []RawRecipe
		if err := val.Decode(&recipes); err != nil {
			return zero, fmt.Errorf("line %d: Craft takes a list of recipes: %v", val.Line, err)
		}
		out := make([]content.Recipe[string], len(recipes))
		for i, r := range recipes {
			out[i] = r.recipe()
		}
		return content.CraftKind(out...), nil
	}
	return zero, fmt.Errorf("line %d: unknown advancement kind %q", n.Line, key)
}

// RawFilter is a plant filter: the scalar All, or Only/Not lists.
type RawFilter struct {
	Filter content.Filter[string]
}

func (f *RawFilter) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode && n.Value == "All" {
		return nil
	}
	key, val, err := singleKey(n)
	if err != nil {
		return err
	}
	var names []string
	if err := val.Decode(&names); err != nil {
		return fmt.Errorf("line %d: %s takes a list of plant names", val.Line, key)
	}
	switch key {
	case "Only":
		f.Filter.Only = names
	case "Not":
		f.Filter.Not = names
	default:
		return fmt.Errorf("line %d: unknown filter variant %q, expected All, Only, or Not", n.Line, key)
	}
	return nil
}

// RawRubEffect is one effect of rubbing an item on a plant.
type RawRubEffect struct {
	Description  string        `yaml:"description"`
	Duration     *float64      `yaml:"duration"`
	ForPlants    RawFilter     `yaml:"for_plants"`
	Buff         *RawPlantKind `yaml:"buff"`
	Transmogrify *string       `yaml:"transmogrify"`
}

// RawGotchi marks an item as a hatchable companion.
type RawGotchi struct {
	BaseHappiness int         `yaml:"base_happiness"`
	Hatch         *RawEvalput `yaml:"hatch"`
}

// RawSeed marks an item as plantable.
type RawSeed struct {
	GrowsInto string `yaml:"grows_into"`
}

// RawLandUnlock marks an item as redeemable for land.
type RawLandUnlock struct {
	RequiresXP bool `yaml:"requires_xp"`
	Amount     int  `yaml:"amount"`
}

// RawItem is one item archetype, straight off disk.
type RawItem struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	WelcomeGift bool           `yaml:"welcome_gift"`
	Gotchi      *RawGotchi     `yaml:"gotchi"`
	Seed        *RawSeed       `yaml:"seed"`
	Keepsake    bool           `yaml:"keepsake"`
	UnlocksLand *RawLandUnlock `yaml:"unlocks_land"`
	RubEffects  []RawRubEffect `yaml:"rub_effects"`
}

// RawPlantAdvancement is one rung of a plant ladder.
type RawPlantAdvancement struct {
	Kind          RawPlantKind `yaml:"kind"`
	XP            int          `yaml:"xp"`
	Title         string       `yaml:"title"`
	Description   string       `yaml:"description"`
	AchieverTitle string       `yaml:"achiever_title"`
}

// RawLadder is a whole advancement ladder file.
type RawLadder struct {
	Base RawPlantAdvancement   `yaml:"base"`
	Rest []RawPlantAdvancement `yaml:"rest"`
}

// RawPlant is one plant archetype. Advancements come from the sibling
// ladder file, never inline; parse enforces that.
type RawPlant struct {
	Name              string   `yaml:"name"`
	BaseYieldDuration *float64 `yaml:"base_yield_duration"`

	Advancements RawLadder `yaml:"-"`
}

// RawProfileAdvancement is one rung of the profile ladder.
type RawProfileAdvancement struct {
	Kind          content.ProfileAdvancementKind `yaml:"kind"`
	XP            int                            `yaml:"xp"`
	Title         string                         `yaml:"title"`
	Description   string                         `yaml:"description"`
	AchieverTitle string                         `yaml:"achiever_title"`
}

// RawProfile is the stead-wide definition file.
type RawProfile struct {
	Advancements struct {
		Base RawProfileAdvancement   `yaml:"base"`
		Rest []RawProfileAdvancement `yaml:"rest"`
	} `yaml:"advancements"`
	SpecialUsers []string `yaml:"special_users"`
}

// FromFile tags a decoded value with the path it came from, so
// verification errors can name their source.
type FromFile[V any] struct {
	Inner V
	File  string
}

// RawConfig is everything parsed but not yet verified.
type RawConfig struct {
	Items   []FromFile[RawItem]
	Plants  []FromFile[RawPlant]
	Profile FromFile[RawProfile]
}
