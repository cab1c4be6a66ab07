package content

// RecipeMakes describes what a recipe produces. It is kept apart from
// Evalput because craft outputs must support an "all possible outputs,
// undrawn" query for recipe previews, and a craft completion must
// commit to one concrete multiset rather than a lazily re-evaluated
// tree. Generic over the item reference H for the same raw/verified
// split as Evalput.

// MakesKind discriminates the output shapes.
type MakesKind uint8

const (
	// MakesNothing produces no items.
	MakesNothing MakesKind = iota
	// MakesJust produces a fixed count of a single item.
	MakesJust
	// MakesOneOf commits to one weighted alternative.
	MakesOneOf
	// MakesAllOf produces every listed (count, item) pair.
	MakesAllOf
)

func (k MakesKind) String() string {
	switch k {
	case MakesNothing:
		return "Nothing"
	case MakesJust:
		return "Just"
	case MakesOneOf:
		return "OneOf"
	case MakesAllOf:
		return "AllOf"
	}
	return "unknown"
}

// AmountOf pairs an item reference with a count.
type AmountOf[H any] struct {
	Count int `json:"count"`
	Item  H   `json:"item"`
}

// WeightedMakes pairs an alternative with its share of the unit interval.
type WeightedMakes[H any] struct {
	Weight float64        `json:"weight"`
	Makes  RecipeMakes[H] `json:"makes"`
}

type RecipeMakes[H any] struct {
	Kind     MakesKind          `json:"kind"`
	Count    int                `json:"count,omitempty"`    // Just
	Item     H                  `json:"item,omitempty"`     // Just
	Branches []WeightedMakes[H] `json:"branches,omitempty"` // OneOf
	Fixed    []AmountOf[H]      `json:"fixed,omitempty"`    // AllOf
}

func MakeNothing[H any]() RecipeMakes[H] { return RecipeMakes[H]{Kind: MakesNothing} }

func MakeJust[H any](count int, item H) RecipeMakes[H] {
	return RecipeMakes[H]{Kind: MakesJust, Count: count, Item: item}
}

func MakeOneOf[H any](branches ...WeightedMakes[H]) RecipeMakes[H] {
	return RecipeMakes[H]{Kind: MakesOneOf, Branches: branches}
}

func MakeAllOf[H any](fixed ...AmountOf[H]) RecipeMakes[H] {
	return RecipeMakes[H]{Kind: MakesAllOf, Fixed: fixed}
}

// Any returns a single representative output for display, resolving
// nested OneOf by weighted pick and AllOf by uniform pick. The second
// return is false when the recipe produces nothing.
func (m RecipeMakes[H]) Any(rng RandomSource) (H, bool) {
	switch m.Kind {
	case MakesJust:
		return m.Item, true
	case MakesOneOf:
		if len(m.Branches) == 0 {
			break
		}
		return m.Branches[pickWeighted(m.Branches, rng)].Makes.Any(rng)
	case MakesAllOf:
		if len(m.Fixed) == 0 {
			break
		}
		return m.Fixed[int(rng.Float64()*float64(len(m.Fixed)))].Item, true
	}
	var zero H
	return zero, false
}

// All enumerates every possible output without committing to an
// outcome, for "this recipe can produce..." previews.
func (m RecipeMakes[H]) All() []AmountOf[H] {
	switch m.Kind {
	case MakesJust:
		return []AmountOf[H]{{Count: m.Count, Item: m.Item}}
	case MakesOneOf:
		var out []AmountOf[H]
		for _, b := range m.Branches {
			out = append(out, b.Makes.All()...)
		}
		return out
	case MakesAllOf:
		out := make([]AmountOf[H], len(m.Fixed))
		copy(out, m.Fixed)
		return out
	}
	return nil
}

// Output commits to one concrete multiset of outputs for an actual
// craft completion: Just expands to Count copies, AllOf expands every
// entry, OneOf recurses into exactly one weighted branch.
func (m RecipeMakes[H]) Output(rng RandomSource) []H {
	switch m.Kind {
	case MakesJust:
		out := make([]H, m.Count)
		for i := range out {
			out[i] = m.Item
		}
		return out
	case MakesOneOf:
		if len(m.Branches) == 0 {
			return nil
		}
		return m.Branches[pickWeighted(m.Branches, rng)].Makes.Output(rng)
	case MakesAllOf:
		var out []H
		for _, f := range m.Fixed {
			for i := 0; i < f.Count; i++ {
				out = append(out, f.Item)
			}
		}
		return out
	}
	return nil
}

// pickWeighted runs the same sequential subtraction draw as Evalput's
// OneOf; the last branch absorbs floating-point slack.
func pickWeighted[H any](branches []WeightedMakes[H], rng RandomSource) int {
	r := rng.Float64()
	for i := range branches {
		r -= branches[i].Weight
		if r < 0 {
			return i
		}
	}
	return len(branches) - 1
}

// MapMakes rebuilds the output description with every item reference
// transformed, preserving structure.
func MapMakes[H, T any](m RecipeMakes[H], f func(H) T) RecipeMakes[T] {
	out, _ := ResolveMakes(m, func(h H) (T, error) { return f(h), nil })
	return out
}

// ResolveMakes is MapMakes with a fallible transform; the first error
// aborts the whole resolution.
func ResolveMakes[H, T any](m RecipeMakes[H], f func(H) (T, error)) (RecipeMakes[T], error) {
	out := RecipeMakes[T]{Kind: m.Kind, Count: m.Count}
	switch m.Kind {
	case MakesJust:
		item, err := f(m.Item)
		if err != nil {
			return RecipeMakes[T]{}, err
		}
		out.Item = item
	case MakesOneOf:
		out.Branches = make([]WeightedMakes[T], len(m.Branches))
		for i, b := range m.Branches {
			r, err := ResolveMakes(b.Makes, f)
			if err != nil {
				return RecipeMakes[T]{}, err
			}
			out.Branches[i] = WeightedMakes[T]{Weight: b.Weight, Makes: r}
		}
	case MakesAllOf:
		out.Fixed = make([]AmountOf[T], len(m.Fixed))
		for i, a := range m.Fixed {
			item, err := f(a.Item)
			if err != nil {
				return RecipeMakes[T]{}, err
			}
			out.Fixed[i] = AmountOf[T]{Count: a.Count, Item: item}
		}
	}
	return out, nil
}

// Recipe describes one craft a plant can perform: what it consumes,
// how long it takes, and what it makes.
type Recipe[H any] struct {
	Title         string         `json:"title"`
	Explanation   string         `json:"explanation,omitempty"`
	Time          float64        `json:"time"`
	DestroysPlant bool           `json:"destroys_plant,omitempty"`
	Needs         []AmountOf[H]  `json:"needs"`
	Makes         RecipeMakes[H] `json:"makes"`
}

// ResolveRecipe transforms every item reference in the recipe,
// aborting on the first failure.
func ResolveRecipe[H, T any](r Recipe[H], f func(H) (T, error)) (Recipe[T], error) {
	out := Recipe[T]{
		Title:         r.Title,
		Explanation:   r.Explanation,
		Time:          r.Time,
		DestroysPlant: r.DestroysPlant,
	}
	out.Needs = make([]AmountOf[T], len(r.Needs))
	for i, n := range r.Needs {
		item, err := f(n.Item)
		if err != nil {
			return Recipe[T]{}, err
		}
		out.Needs[i] = AmountOf[T]{Count: n.Count, Item: item}
	}
	makes, err := ResolveMakes(r.Makes, f)
	if err != nil {
		return Recipe[T]{}, err
	}
	out.Makes = makes
	return out, nil
}
