package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeConfig lays files out under a fresh content directory.
func writeConfig(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

const itemsYML = `
- name: Warp Powder
  description: spooky dust
  keepsake: true
  welcome_gift: true
- name: Bractus Seed
  description: plant it
  seed:
    grows_into: Bractus
- name: Adorpheus Egg
  description: warm to the touch
  gotchi:
    base_happiness: 10
    hatch:
      All:
        - Item: Warp Powder
        - Xp:
            Between: [50, 100]
`

const plantYML = `
name: Bractus
base_yield_duration: 100
`

const ladderYML = `
base:
  kind:
    Yield:
      - chance: 0.5
        lo: 1
        hi: 2
        item: Warp Powder
  xp: 0
  title: Sprout
rest:
  - kind:
      XpMultiplier: 2
    xp: 100
    title: Sapling
  - kind:
      Craft:
        - title: Compress Powder
          time: 10
          needs:
            - [2, Warp Powder]
          makes:
            Just: [1, Warp Powder]
    xp: 150
    title: Crafty
`

const profileYML = `
advancements:
  base:
    kind:
      land: 1
    xp: 0
    title: Newcomer
  rest:
    - kind:
        land: 1
      xp: 500
      title: Landowner
special_users:
  - geno
`

func validFiles() map[string]string {
	return map[string]string{
		"items/items.yml":                 itemsYML,
		"plants/bractus.yml":              plantYML,
		"plants/bractus_advancements.yml": ladderYML,
		"hackstead.yml":                   profileYML,
	}
}

func TestParseValidConfig(t *testing.T) {
	dir := writeConfig(t, validFiles())
	raw, err := Parse(dir)
	require.NoError(t, err)
	require.Len(t, raw.Items, 3)
	require.Len(t, raw.Plants, 1)
	require.Equal(t, "Bractus", raw.Plants[0].Inner.Name)
	require.Len(t, raw.Plants[0].Inner.Advancements.Rest, 2)
	require.Equal(t, []string{"geno"}, raw.Profile.Inner.SpecialUsers)
}

func TestParseRejectsInlineAdvancements(t *testing.T) {
	files := validFiles()
	files["plants/bractus.yml"] = plantYML + `
advancements:
  base:
    xp: 0
`
	_, err := Parse(writeConfig(t, files))
	require.Error(t, err)
	require.Contains(t, err.Error(), "sibling file")
	require.Contains(t, err.Error(), "plants/bractus.yml")
}

func TestParseRequiresLadderFile(t *testing.T) {
	files := validFiles()
	delete(files, "plants/bractus_advancements.yml")
	_, err := Parse(writeConfig(t, files))
	require.Error(t, err)
	require.Contains(t, err.Error(), "ladder file")
	require.Contains(t, err.Error(), `in a plant named "Bractus"`)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	files := validFiles()
	files["plants/bractus.yml"] = plantYML + "base_yeild_duration: 5\n"
	_, err := Parse(writeConfig(t, files))
	require.Error(t, err)
	require.Contains(t, err.Error(), "> from a file")
}

func TestParseResolvesAnchors(t *testing.T) {
	files := validFiles()
	files["items/items.yml"] = `
- &gift
  name: Warp Powder
  description: spooky dust
  keepsake: true
  welcome_gift: true
- <<: *gift
  name: Warp Crystal
- name: Bractus Seed
  description: plant it
  seed:
    grows_into: Bractus
- name: Adorpheus Egg
  description: warm to the touch
  gotchi:
    base_happiness: 10
`
	raw, err := Parse(writeConfig(t, files))
	require.NoError(t, err)
	require.Len(t, raw.Items, 4)
	require.Equal(t, "Warp Crystal", raw.Items[1].Inner.Name)
	require.Equal(t, "spooky dust", raw.Items[1].Inner.Description)
	require.True(t, raw.Items[1].Inner.WelcomeGift)
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := writeConfig(t, validFiles())
	raw, err := Parse(dir)
	require.NoError(t, err)
	cfg, err := raw.Verify()
	require.NoError(t, err)

	out := t.TempDir()
	require.NoError(t, WriteSnapshots(out, cfg))

	back, err := ReadBinaryFile(filepath.Join(out, "config.gob.gz"))
	require.NoError(t, err)
	require.Equal(t, len(cfg.Items), len(back.Items))
	require.Equal(t, len(cfg.Plants), len(back.Plants))
	require.Equal(t, cfg.Plants[0].Advancements.Len(), back.Plants[0].Advancements.Len())

	_, err = os.Stat(filepath.Join(out, "config.json"))
	require.NoError(t, err)
}
