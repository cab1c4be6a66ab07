package verify

import (
	"math"

	"github.com/steadling/farmcore/internal/content"
)

// weightTolerance is how far OneOf weights may stray from summing to
// one before we assume the author made a mistake rather than a
// rounding error.
const weightTolerance = 1e-6

// Verify checks every cross-reference and probability in the raw
// config and, if all hold, returns the handle-indexed immutable form.
// Fail fast: the first problem comes back with its full context trail.
func (raw *RawConfig) Verify() (*content.Config, error) {
	itemNames := make([]string, len(raw.Items))
	for i, it := range raw.Items {
		itemNames[i] = it.Inner.Name
	}
	plantNames := make([]string, len(raw.Plants))
	for i, p := range raw.Plants {
		plantNames[i] = p.Inner.Name
	}
	if err := rejectDuplicates("item", itemNames); err != nil {
		return nil, err
	}
	if err := rejectDuplicates("plant", plantNames); err != nil {
		return nil, err
	}

	itemCorpus := newCorpus(itemNames)
	plantCorpus := newCorpus(plantNames)

	itemConf := func(name string) (content.ItemHandle, error) {
		for i, n := range itemNames {
			if n == name {
				return content.ItemHandle(i), nil
			}
		}
		return 0, UnknownName("item", name, itemCorpus.suggest(name))
	}
	plantConf := func(name string) (content.PlantHandle, error) {
		for i, n := range plantNames {
			if n == name {
				return content.PlantHandle(i), nil
			}
		}
		return 0, UnknownName("plant", name, plantCorpus.suggest(name))
	}

	cfg := &content.Config{
		Items:  make([]content.Archetype, len(raw.Items)),
		Plants: make([]content.PlantArchetype, len(raw.Plants)),
	}

	for i, it := range raw.Items {
		arch, err := verifyItem(it.Inner, itemConf, plantConf)
		if err != nil {
			return nil, Note(Note(err, "in an item named %q", it.Inner.Name), "from a file %s", it.File)
		}
		cfg.Items[i] = arch
	}

	for i, p := range raw.Plants {
		arch, err := verifyPlant(p.Inner, itemConf)
		if err != nil {
			return nil, Note(Note(err, "in a plant named %q", p.Inner.Name), "from a file %s", p.File)
		}
		cfg.Plants[i] = arch
	}

	profile, special, err := verifyProfile(raw.Profile.Inner)
	if err != nil {
		return nil, Note(err, "from a file %s", raw.Profile.File)
	}
	cfg.Profile = profile
	cfg.SpecialUsers = special

	return cfg, nil
}

func rejectDuplicates(kind string, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return Errorf("two %ss are both named %q; names must be unique", kind, n)
		}
		seen[n] = true
	}
	return nil
}

func verifyItem(
	it RawItem,
	itemConf func(string) (content.ItemHandle, error),
	plantConf func(string) (content.PlantHandle, error),
) (content.Archetype, error) {
	var zero content.Archetype
	arch := content.Archetype{
		Name:        it.Name,
		Description: it.Description,
		WelcomeGift: it.WelcomeGift,
	}
	if it.Name == "" {
		return zero, Errorf("items need a name")
	}

	roles := 0
	if it.Gotchi != nil {
		roles++
		g := &content.GotchiArchetype{BaseHappiness: it.Gotchi.BaseHappiness}
		if it.Gotchi.Hatch != nil {
			hatch, err := verifyEvalput(it.Gotchi.Hatch.Node, itemConf)
			if err != nil {
				return zero, Note(err, "in what hatches out of it")
			}
			g.Hatch = &hatch
		}
		arch.Gotchi = g
	}
	if it.Seed != nil {
		roles++
		grows, err := plantConf(it.Seed.GrowsInto)
		if err != nil {
			return zero, Note(err, "in what it grows into")
		}
		arch.Seed = &content.SeedArchetype{GrowsInto: grows}
	}
	if it.Keepsake {
		roles++
		arch.Keepsake = &content.KeepsakeArchetype{}
	}
	if it.UnlocksLand != nil {
		roles++
		if it.UnlocksLand.Amount <= 0 {
			return zero, Errorf("land unlocks must grant at least one plot, not %d", it.UnlocksLand.Amount)
		}
		arch.UnlocksLand = &content.LandUnlock{
			RequiresXP: it.UnlocksLand.RequiresXP,
			Amount:     it.UnlocksLand.Amount,
		}
	}
	if roles > 1 {
		return zero, Errorf("items can play only one role; pick one of gotchi, seed, keepsake, or unlocks_land")
	}

	for i, re := range it.RubEffects {
		effect, err := verifyRubEffect(re, itemConf, plantConf)
		if err != nil {
			return zero, Note(err, "in rub effect %d", i)
		}
		arch.RubEffects = append(arch.RubEffects, effect)
	}

	return arch, nil
}

func verifyRubEffect(
	re RawRubEffect,
	itemConf func(string) (content.ItemHandle, error),
	plantConf func(string) (content.PlantHandle, error),
) (content.RubEffect, error) {
	var zero content.RubEffect

	if (re.Buff == nil) == (re.Transmogrify == nil) {
		return zero, Errorf("rub effects have exactly one of buff or transmogrify")
	}
	if re.Duration != nil && *re.Duration <= 0 {
		return zero, Errorf("a duration of %f ticks means the effect never applies", *re.Duration)
	}

	out := content.RubEffect{Description: re.Description, Duration: re.Duration}

	filter, err := resolveFilter(re.ForPlants.Filter, plantConf)
	if err != nil {
		return zero, Note(err, "in which plants it applies to")
	}
	out.ForPlants = filter

	if re.Buff != nil {
		kind, err := verifyPlantKind(re.Buff.Kind, itemConf)
		if err != nil {
			return zero, Note(err, "in its buff")
		}
		out.Buff = &kind
	}
	if re.Transmogrify != nil {
		h, err := plantConf(*re.Transmogrify)
		if err != nil {
			return zero, Note(err, "in what it transmogrifies plants into")
		}
		out.Transmogrify = &h
	}

	return out, nil
}

func resolveFilter(
	f content.Filter[string],
	plantConf func(string) (content.PlantHandle, error),
) (content.Filter[content.PlantHandle], error) {
	var out content.Filter[content.PlantHandle]
	for _, name := range f.Only {
		h, err := plantConf(name)
		if err != nil {
			return out, err
		}
		out.Only = append(out.Only, h)
	}
	for _, name := range f.Not {
		h, err := plantConf(name)
		if err != nil {
			return out, err
		}
		out.Not = append(out.Not, h)
	}
	return out, nil
}

func verifyPlant(
	p RawPlant,
	itemConf func(string) (content.ItemHandle, error),
) (content.PlantArchetype, error) {
	var zero content.PlantArchetype
	if p.Name == "" {
		return zero, Errorf("plants need a name")
	}
	if p.BaseYieldDuration != nil && *p.BaseYieldDuration <= 0 {
		return zero, Errorf("a base yield duration of %f ticks is instantaneous; omit it for plants that never yield", *p.BaseYieldDuration)
	}

	arch := content.PlantArchetype{Name: p.Name, BaseYieldDuration: p.BaseYieldDuration}

	base, err := verifyPlantRung(p.Advancements.Base, itemConf)
	if err != nil {
		return zero, err
	}
	arch.Advancements.Base = base
	for _, r := range p.Advancements.Rest {
		if r.XP <= 0 {
			return zero, Note(
				Errorf("rungs past the base cost xp; %d won't do", r.XP),
				"in an advancement titled %q", r.Title,
			)
		}
		rung, err := verifyPlantRung(r, itemConf)
		if err != nil {
			return zero, err
		}
		arch.Advancements.Rest = append(arch.Advancements.Rest, rung)
	}

	return arch, nil
}

func verifyPlantRung(
	r RawPlantAdvancement,
	itemConf func(string) (content.ItemHandle, error),
) (content.Advancement[content.PlantAdvancementKind[content.ItemHandle]], error) {
	var zero content.Advancement[content.PlantAdvancementKind[content.ItemHandle]]
	kind, err := verifyPlantKind(r.Kind.Kind, itemConf)
	if err != nil {
		return zero, Note(err, "in an advancement titled %q", r.Title)
	}
	return content.Advancement[content.PlantAdvancementKind[content.ItemHandle]]{
		Kind:          kind,
		XP:            r.XP,
		Title:         r.Title,
		Description:   r.Description,
		AchieverTitle: r.AchieverTitle,
	}, nil
}

func verifyPlantKind(
	k content.PlantAdvancementKind[string],
	itemConf func(string) (content.ItemHandle, error),
) (content.PlantAdvancementKind[content.ItemHandle], error) {
	var zero content.PlantAdvancementKind[content.ItemHandle]
	if err := checkPlantKind(k); err != nil {
		return zero, err
	}
	return content.ResolvePlantKind(k, itemConf)
}

func checkPlantKind(k content.PlantAdvancementKind[string]) error {
	switch k.Tag {
	case content.PKNeighbor:
		if k.Inner.Tag == content.PKNeighbor {
			return Errorf("Neighbor inside Neighbor doesn't reach any further; unwrap one")
		}
		return checkPlantKind(*k.Inner)
	case content.PKXpMultiplier, content.PKExtraTimeTicksMultiplier,
		content.PKYieldSpeedMultiplier, content.PKYieldSizeMultiplier,
		content.PKCraftSpeedMultiplier:
		if k.Factor <= 0 {
			return Errorf("a %s of %f isn't a multiplier", k.Tag, k.Factor)
		}
	case content.PKCraftInputReturnChance, content.PKCraftOutputDoubleChance:
		if k.Factor < 0 || k.Factor > 1 {
			return Errorf("a %s of %f isn't a probability", k.Tag, k.Factor)
		}
	case content.PKYield:
		for _, r := range k.Yield {
			if r.Chance <= 0 || r.Chance > 1 {
				return Errorf("a spawn chance of %f isn't a probability", r.Chance)
			}
			if r.Lo < 0 || r.Hi < r.Lo {
				return Errorf("spawn bounds [%f, %f] are inside out", r.Lo, r.Hi)
			}
		}
	case content.PKCraft:
		for _, r := range k.Craft {
			if err := checkRecipe(r); err != nil {
				return Note(err, "in a recipe named %q", r.Title)
			}
		}
	}
	return nil
}

func checkRecipe(r content.Recipe[string]) error {
	if r.Title == "" {
		return Errorf("recipes need a title")
	}
	if r.Time <= 0 {
		return Errorf("recipes take time; %f ticks won't do", r.Time)
	}
	if len(r.Needs) == 0 {
		return Errorf("recipes craft something out of something; needs is empty")
	}
	for _, n := range r.Needs {
		if n.Count <= 0 {
			return Errorf("needing %d of an item is needing nothing", n.Count)
		}
	}
	if err := checkMakes(r.Makes); err != nil {
		return Note(err, "in what the recipe makes")
	}
	return nil
}

func checkMakes(m content.RecipeMakes[string]) error {
	switch m.Kind {
	case content.MakesJust:
		if m.Count <= 0 {
			return Errorf("making %d of an item is making nothing", m.Count)
		}
	case content.MakesOneOf:
		if len(m.Branches) < 2 {
			return Errorf("OneOf with %d branch(es) isn't a choice; use Just", len(m.Branches))
		}
		total := 0.0
		for _, b := range m.Branches {
			if b.Weight <= 0 {
				return Errorf("a OneOf weight of %f can never be drawn", b.Weight)
			}
			total += b.Weight
			if err := checkMakes(b.Makes); err != nil {
				return err
			}
		}
		if math.Abs(total-1) > weightTolerance {
			return Errorf("OneOf weights sum to %f, not 1", total)
		}
	case content.MakesAllOf:
		if len(m.Fixed) == 0 {
			return Errorf("AllOf with no entries makes nothing; use Nothing")
		}
		for _, a := range m.Fixed {
			if a.Count <= 0 {
				return Errorf("making %d of an item is making nothing", a.Count)
			}
		}
	}
	return nil
}

func verifyEvalput(
	e content.Evalput[string],
	itemConf func(string) (content.ItemHandle, error),
) (content.Evalput[content.ItemHandle], error) {
	var zero content.Evalput[content.ItemHandle]
	if err := checkEvalput(e); err != nil {
		return zero, err
	}
	return content.ResolveItems(e, itemConf)
}

func checkEvalput(e content.Evalput[string]) error {
	note := func(err error) error {
		return Note(err, "in an evalput's %s node", e.Kind)
	}
	switch e.Kind {
	case content.EvalAll:
		for _, c := range e.Children {
			if err := checkEvalput(c); err != nil {
				return err
			}
		}
	case content.EvalOneOf:
		if len(e.Branches) < 2 {
			return note(Errorf("OneOf with %d branch(es) isn't a choice; inline the branch", len(e.Branches)))
		}
		total := 0.0
		for _, b := range e.Branches {
			if b.Weight <= 0 {
				return note(Errorf("a weight of %f can never be drawn", b.Weight))
			}
			total += b.Weight
			if err := checkEvalput(b.Branch); err != nil {
				return err
			}
		}
		if math.Abs(total-1) > weightTolerance {
			return note(Errorf("weights sum to %f, not 1", total))
		}
	case content.EvalAmount:
		if e.Reps.NoOp() {
			return note(Errorf("repeating once is not repeating; drop the Amount node"))
		}
		if err := checkRepeats(e.Reps); err != nil {
			return note(err)
		}
		return checkEvalput(*e.Body)
	case content.EvalChance:
		if e.Prob <= 0 {
			return note(Errorf("a chance of %f never fires", e.Prob))
		}
		if e.Prob >= 1 {
			return note(Errorf("a chance of %f always fires; drop the Chance node", e.Prob))
		}
		return checkEvalput(*e.Body)
	case content.EvalXp:
		return checkRepeats(e.Reps)
	}
	return nil
}

func checkRepeats(r content.Repeats) error {
	switch r.Kind {
	case content.RepeatsExactly:
		if r.N < 0 {
			return Errorf("can't repeat %d times", r.N)
		}
	case content.RepeatsJust:
		if r.X < 0 {
			return Errorf("can't repeat %f times", r.X)
		}
	case content.RepeatsBetween:
		if r.Lo < 0 || r.Hi < r.Lo {
			return Errorf("repeat bounds [%f, %f] are inside out", r.Lo, r.Hi)
		}
	}
	return nil
}

func verifyProfile(p RawProfile) (content.ProfileArchetype, []string, error) {
	var zero content.ProfileArchetype

	rung := func(r RawProfileAdvancement) content.Advancement[content.ProfileAdvancementKind] {
		return content.Advancement[content.ProfileAdvancementKind]{
			Kind:          r.Kind,
			XP:            r.XP,
			Title:         r.Title,
			Description:   r.Description,
			AchieverTitle: r.AchieverTitle,
		}
	}

	var arch content.ProfileArchetype
	if p.Advancements.Base.Kind.Land < 0 {
		return zero, nil, Errorf("can't grant %d land plots", p.Advancements.Base.Kind.Land)
	}
	arch.Advancements.Base = rung(p.Advancements.Base)
	for _, r := range p.Advancements.Rest {
		if r.XP <= 0 {
			return zero, nil, Note(
				Errorf("rungs past the base cost xp; %d won't do", r.XP),
				"in an advancement titled %q", r.Title,
			)
		}
		if r.Kind.Land < 0 {
			return zero, nil, Note(
				Errorf("can't grant %d land plots", r.Kind.Land),
				"in an advancement titled %q", r.Title,
			)
		}
		arch.Advancements.Rest = append(arch.Advancements.Rest, rung(r))
	}

	return arch, p.SpecialUsers, nil
}
