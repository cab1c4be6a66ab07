package verify

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse reads a content directory into a RawConfig. Expected layout:
//
//	<dir>/hackstead.yml
//	<dir>/items/*.yml         each file a list of items
//	<dir>/plants/<name>.yml   one plant each
//	<dir>/plants/<name>_advancements.yml
//
// Unknown fields are fatal; yaml anchors and merge keys work as usual.
func Parse(dir string) (*RawConfig, error) {
	raw := &RawConfig{}

	itemPaths, err := ymlPaths(filepath.Join(dir, "items"))
	if err != nil {
		return nil, Note(err, "from a directory %s", filepath.Join(dir, "items"))
	}
	for _, path := range itemPaths {
		var items []RawItem
		if err := decodeFile(path, &items); err != nil {
			return nil, Note(err, "from a file %s", path)
		}
		for _, it := range items {
			raw.Items = append(raw.Items, FromFile[RawItem]{Inner: it, File: path})
		}
	}

	plantPaths, err := ymlPaths(filepath.Join(dir, "plants"))
	if err != nil {
		return nil, Note(err, "from a directory %s", filepath.Join(dir, "plants"))
	}
	for _, path := range plantPaths {
		if strings.HasSuffix(path, advancementsSuffix) {
			continue
		}
		plant, err := parsePlant(path)
		if err != nil {
			return nil, err
		}
		raw.Plants = append(raw.Plants, plant)
	}

	profilePath := filepath.Join(dir, "hackstead.yml")
	var profile RawProfile
	if err := decodeFile(profilePath, &profile); err != nil {
		return nil, Note(err, "from a file %s", profilePath)
	}
	raw.Profile = FromFile[RawProfile]{Inner: profile, File: profilePath}

	return raw, nil
}

const advancementsSuffix = "_advancements.yml"

func parsePlant(path string) (FromFile[RawPlant], error) {
	var zero FromFile[RawPlant]

	data, err := os.ReadFile(path)
	if err != nil {
		return zero, Note(err, "from a file %s", path)
	}

	// Ladders live in a sibling file. An inline one is almost always a
	// stale config from before the split, so call it out specifically.
	var probe struct {
		Advancements *yaml.Node `yaml:"advancements"`
	}
	if err := yaml.Unmarshal(data, &probe); err == nil && probe.Advancements != nil {
		return zero, Note(
			Errorf("advancements belong in a sibling file ending in %s, not inline", advancementsSuffix),
			"from a file %s", path,
		)
	}

	var plant RawPlant
	if err := decodeBytes(data, &plant); err != nil {
		return zero, Note(err, "from a file %s", path)
	}

	ladderPath := strings.TrimSuffix(path, ".yml") + advancementsSuffix
	if _, err := os.Stat(ladderPath); err != nil {
		return zero, Note(
			Errorf("every plant needs a ladder file; expected %s", ladderPath),
			"in a plant named %q", plant.Name,
		)
	}
	if err := decodeFile(ladderPath, &plant.Advancements); err != nil {
		return zero, Note(Note(err, "from a file %s", ladderPath), "in a plant named %q", plant.Name)
	}

	return FromFile[RawPlant]{Inner: plant, File: path}, nil
}

// ymlPaths lists *.yml under dir, sorted so handle assignment is
// stable across runs.
func ymlPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return decodeBytes(data, out)
}

func decodeBytes(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return nil
}
