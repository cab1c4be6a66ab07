package content

// Evalput is a recursive probabilistic reward-description tree. It is
// generic over the item reference type I so the same shape exists in
// two parametrizations: the author-facing raw form (I = string, names
// that may not resolve) and the verified form (I = ItemHandle,
// guaranteed valid against one loaded Config).
//
// Evaluation of a verified tree cannot fail; the only randomness comes
// from the caller-supplied RandomSource.

// EvalputKind discriminates the node variants.
type EvalputKind uint8

const (
	// EvalNothing yields nothing, always.
	EvalNothing EvalputKind = iota
	// EvalAll evaluates every child in listed order.
	EvalAll
	// EvalOneOf commits to exactly one weighted branch.
	EvalOneOf
	// EvalAmount re-evaluates its body a Repeats-determined number of times.
	EvalAmount
	// EvalChance evaluates its body with some probability.
	EvalChance
	// EvalXp grants experience.
	EvalXp
	// EvalItem grants one unit of the referenced item.
	EvalItem
)

func (k EvalputKind) String() string {
	switch k {
	case EvalNothing:
		return "Nothing"
	case EvalAll:
		return "All"
	case EvalOneOf:
		return "OneOf"
	case EvalAmount:
		return "Amount"
	case EvalChance:
		return "Chance"
	case EvalXp:
		return "Xp"
	case EvalItem:
		return "Item"
	}
	return "unknown"
}

// Weighted pairs a branch with its share of the unit interval.
type Weighted[I any] struct {
	Weight float64    `json:"weight"`
	Branch Evalput[I] `json:"branch"`
}

type Evalput[I any] struct {
	Kind     EvalputKind   `json:"kind"`
	Children []Evalput[I]  `json:"children,omitempty"` // All
	Branches []Weighted[I] `json:"branches,omitempty"` // OneOf
	Reps     Repeats       `json:"reps,omitempty"`     // Amount, Xp
	Body     *Evalput[I]   `json:"body,omitempty"`     // Amount, Chance
	Prob     float64       `json:"prob,omitempty"`     // Chance
	Leaf     I             `json:"leaf,omitempty"`     // Item
}

func Nothing[I any]() Evalput[I] { return Evalput[I]{Kind: EvalNothing} }

func All[I any](children ...Evalput[I]) Evalput[I] {
	return Evalput[I]{Kind: EvalAll, Children: children}
}

func OneOf[I any](branches ...Weighted[I]) Evalput[I] {
	return Evalput[I]{Kind: EvalOneOf, Branches: branches}
}

func Amount[I any](reps Repeats, body Evalput[I]) Evalput[I] {
	return Evalput[I]{Kind: EvalAmount, Reps: reps, Body: &body}
}

func Chance[I any](p float64, body Evalput[I]) Evalput[I] {
	return Evalput[I]{Kind: EvalChance, Prob: p, Body: &body}
}

func Xp[I any](reps Repeats) Evalput[I] {
	return Evalput[I]{Kind: EvalXp, Reps: reps}
}

func Item[I any](i I) Evalput[I] {
	return Evalput[I]{Kind: EvalItem, Leaf: i}
}

// Output accumulates the concrete result of one evaluation.
type Output[I any] struct {
	XP    int `json:"xp"`
	Items []I `json:"items"`
}

// Evaluate walks the tree once and returns everything it produced.
func (e Evalput[I]) Evaluate(rng RandomSource) Output[I] {
	var out Output[I]
	e.eval(&out, rng)
	return out
}

func (e *Evalput[I]) eval(out *Output[I], rng RandomSource) {
	switch e.Kind {
	case EvalNothing:
	case EvalAll:
		for i := range e.Children {
			e.Children[i].eval(out, rng)
		}
	case EvalOneOf:
		// Sequential weighted draw: branch order plus weights carve up
		// [0,1); the last branch absorbs any floating-point slack.
		r := rng.Float64()
		for i := range e.Branches {
			r -= e.Branches[i].Weight
			if r < 0 || i == len(e.Branches)-1 {
				e.Branches[i].Branch.eval(out, rng)
				break
			}
		}
	case EvalAmount:
		n := e.Reps.Eval(rng)
		for i := 0; i < n; i++ {
			e.Body.eval(out, rng)
		}
	case EvalChance:
		if rng.Float64() < e.Prob {
			e.Body.eval(out, rng)
		}
	case EvalXp:
		out.XP += e.Reps.Eval(rng)
	case EvalItem:
		out.Items = append(out.Items, e.Leaf)
	}
}

// MapItems rebuilds the tree with every Item leaf transformed,
// preserving structure exactly.
func MapItems[I, T any](e Evalput[I], f func(I) T) Evalput[T] {
	m := Evalput[T]{Kind: e.Kind, Reps: e.Reps, Prob: e.Prob}
	switch e.Kind {
	case EvalAll:
		m.Children = make([]Evalput[T], len(e.Children))
		for i, c := range e.Children {
			m.Children[i] = MapItems(c, f)
		}
	case EvalOneOf:
		m.Branches = make([]Weighted[T], len(e.Branches))
		for i, b := range e.Branches {
			m.Branches[i] = Weighted[T]{Weight: b.Weight, Branch: MapItems(b.Branch, f)}
		}
	case EvalAmount, EvalChance:
		body := MapItems(*e.Body, f)
		m.Body = &body
	case EvalItem:
		m.Leaf = f(e.Leaf)
	}
	return m
}

// ResolveItems is MapItems with a fallible transform. The first error
// anywhere in the tree aborts the whole resolution; no partial tree is
// ever produced.
func ResolveItems[I, T any](e Evalput[I], f func(I) (T, error)) (Evalput[T], error) {
	m := Evalput[T]{Kind: e.Kind, Reps: e.Reps, Prob: e.Prob}
	switch e.Kind {
	case EvalAll:
		m.Children = make([]Evalput[T], len(e.Children))
		for i, c := range e.Children {
			r, err := ResolveItems(c, f)
			if err != nil {
				return Evalput[T]{}, err
			}
			m.Children[i] = r
		}
	case EvalOneOf:
		m.Branches = make([]Weighted[T], len(e.Branches))
		for i, b := range e.Branches {
			r, err := ResolveItems(b.Branch, f)
			if err != nil {
				return Evalput[T]{}, err
			}
			m.Branches[i] = Weighted[T]{Weight: b.Weight, Branch: r}
		}
	case EvalAmount, EvalChance:
		body, err := ResolveItems(*e.Body, f)
		if err != nil {
			return Evalput[T]{}, err
		}
		m.Body = &body
	case EvalItem:
		leaf, err := f(e.Leaf)
		if err != nil {
			return Evalput[T]{}, err
		}
		m.Leaf = leaf
	}
	return m, nil
}
