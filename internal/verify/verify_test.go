package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/steadling/farmcore/internal/content"
)

func verifyFiles(t *testing.T, files map[string]string) (*content.Config, error) {
	t.Helper()
	raw, err := Parse(writeConfig(t, files))
	require.NoError(t, err)
	return raw.Verify()
}

func TestVerifyValidConfig(t *testing.T) {
	cfg, err := verifyFiles(t, validFiles())
	require.NoError(t, err)

	require.Len(t, cfg.Items, 3)
	require.Len(t, cfg.Plants, 1)
	require.Equal(t, []string{"geno"}, cfg.SpecialUsers)

	// name references became handles
	seed, err := cfg.ItemNamed("Bractus Seed")
	require.NoError(t, err)
	s, ok := cfg.MustItem(seed).SeedDetails()
	require.True(t, ok)
	require.Equal(t, "Bractus", cfg.MustPlant(s.GrowsInto).Name)

	// the yield table points at Warp Powder's handle
	powder, err := cfg.ItemNamed("Warp Powder")
	require.NoError(t, err)
	base := cfg.Plants[0].Advancements.Base.Kind
	require.Equal(t, content.PKYield, base.Tag)
	require.Equal(t, powder, base.Yield[0].Item)

	// welcome gifts came through
	require.Equal(t, []content.ItemHandle{powder}, cfg.WelcomeGifts())
}

func TestVerifySuggestsOnTypo(t *testing.T) {
	files := validFiles()
	files["items/items.yml"] = `
- name: Warp Powder
  description: spooky dust
  keepsake: true
- name: Bractus Seed
  description: plant it
  seed:
    grows_into: Bractis
`
	_, err := verifyFiles(t, files)
	require.Error(t, err)
	require.Contains(t, err.Error(), `no plant named "Bractis"`)
	require.Contains(t, err.Error(), "perhaps you meant")
	require.Contains(t, err.Error(), `"Bractus"`)
	require.Contains(t, err.Error(), `> in an item named "Bractus Seed"`)
	require.Contains(t, err.Error(), "> from a file")
}

func TestVerifyRejectsDuplicateNames(t *testing.T) {
	files := validFiles()
	files["items/more.yml"] = `
- name: Warp Powder
  description: an impostor
  keepsake: true
`
	_, err := verifyFiles(t, files)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be unique")
}

func TestVerifyRejectsSingleBranchOneOf(t *testing.T) {
	files := validFiles()
	files["items/items.yml"] = itemsYML + `
- name: Lone Egg
  description: only one outcome
  gotchi:
    base_happiness: 1
    hatch:
      OneOf:
        - [1.0, Warp Powder]
`
	_, err := verifyFiles(t, files)
	require.Error(t, err)
	require.Contains(t, err.Error(), "isn't a choice")
	require.Contains(t, err.Error(), "> in an evalput's OneOf node")
}

func TestVerifyRejectsBadWeightSum(t *testing.T) {
	files := validFiles()
	files["items/items.yml"] = itemsYML + `
- name: Skewed Egg
  description: weights gone wrong
  gotchi:
    base_happiness: 1
    hatch:
      OneOf:
        - [0.5, Warp Powder]
        - [0.4, Bractus Seed]
`
	_, err := verifyFiles(t, files)
	require.Error(t, err)
	require.Contains(t, err.Error(), "sum to 0.9")
}

func TestVerifyAllowsWeightSumWithinTolerance(t *testing.T) {
	files := validFiles()
	files["items/items.yml"] = itemsYML + `
- name: Fair Egg
  description: close enough
  gotchi:
    base_happiness: 1
    hatch:
      OneOf:
        - [0.3333333, Warp Powder]
        - [0.6666667, Bractus Seed]
`
	_, err := verifyFiles(t, files)
	require.NoError(t, err)
}

func TestVerifyRejectsCertainChance(t *testing.T) {
	files := validFiles()
	files["items/items.yml"] = itemsYML + `
- name: Sure Egg
  description: no surprise inside
  gotchi:
    base_happiness: 1
    hatch:
      Chance: [1.0, Warp Powder]
`
	_, err := verifyFiles(t, files)
	require.Error(t, err)
	require.Contains(t, err.Error(), "always fires")
}

func TestVerifyRejectsNoOpRepeats(t *testing.T) {
	files := validFiles()
	files["items/items.yml"] = itemsYML + `
- name: Redundant Egg
  description: repeats once
  gotchi:
    base_happiness: 1
    hatch:
      Amount:
        - Exactly: 1
        - Warp Powder
`
	_, err := verifyFiles(t, files)
	require.Error(t, err)
	require.Contains(t, err.Error(), "repeating once is not repeating")
}

func TestVerifyRejectsRubEffectWithBuffAndTransmog(t *testing.T) {
	files := validFiles()
	files["items/items.yml"] = itemsYML + `
- name: Confused Crystal
  description: does two things
  rub_effects:
    - description: both at once
      for_plants: All
      buff:
        XpMultiplier: 2
      transmogrify: Bractus
`
	_, err := verifyFiles(t, files)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exactly one of buff or transmogrify")
}

func TestVerifyRubEffectResolves(t *testing.T) {
	files := validFiles()
	files["items/items.yml"] = itemsYML + `
- name: Warp Crystal
  description: warps plants
  rub_effects:
    - description: neighborly vibes
      duration: 100
      for_plants:
        Only: [Bractus]
      buff:
        Neighbor:
          XpMultiplier: 2
`
	cfg, err := verifyFiles(t, files)
	require.NoError(t, err)

	crystal, err := cfg.ItemNamed("Warp Crystal")
	require.NoError(t, err)
	effect, err := cfg.RubEffect(crystal, 0)
	require.NoError(t, err)
	require.NotNil(t, effect.Buff)
	require.Equal(t, content.PKNeighbor, effect.Buff.Tag)
	require.Equal(t, content.PKXpMultiplier, effect.Buff.Inner.Tag)

	bractus, err := cfg.PlantNamed("Bractus")
	require.NoError(t, err)
	require.True(t, effect.ForPlants.Allows(bractus))
}

func TestVerifyRecipeErrorsCarryContext(t *testing.T) {
	files := validFiles()
	files["plants/bractus_advancements.yml"] = `
base:
  kind:
    Craft:
      - title: Bad Craft
        time: 10
        needs:
          - [2, Warp Powder]
        makes:
          OneOf:
            - [0.5, {Just: [1, Warp Powder]}]
  xp: 0
  title: Sprout
rest: []
`
	_, err := verifyFiles(t, files)
	require.Error(t, err)
	require.Contains(t, err.Error(), `> in a plant named "Bractus"`)
	require.Contains(t, err.Error(), `> in a recipe named "Bad Craft"`)
	require.Contains(t, err.Error(), "> in what the recipe makes")
	require.Contains(t, err.Error(), "isn't a choice")
}

func TestVerifyRejectsLockedRungWithoutCost(t *testing.T) {
	files := validFiles()
	files["plants/bractus_advancements.yml"] = `
base:
  kind:
    XpMultiplier: 2
  xp: 0
  title: Sprout
rest:
  - kind:
      XpMultiplier: 2
    xp: 0
    title: Free Lunch
`
	_, err := verifyFiles(t, files)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cost xp")
	require.Contains(t, err.Error(), `in an advancement titled "Free Lunch"`)
}
