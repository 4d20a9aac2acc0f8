// Package fixture loads blocksworld.WorldState snapshots from YAML files and
// can notify a callback when one changes on disk. It is demo/test tooling only — nothing
// under internal/blocksworld imports this package, and nothing here is on
// the path a real plan request takes.
package fixture

import (
	"fmt"
	"os"

	"blocksplanner/internal/blocksworld"

	"gopkg.in/yaml.v3"
)

// objectYAML is one entry of the fixture's objects map.
type objectYAML struct {
	Form  string `yaml:"form"`
	Size  string `yaml:"size"`
	Color string `yaml:"color"`
}

// fileYAML mirrors the on-disk fixture format:
//
//	objects:
//	  a: {form: box, size: large, color: red}
//	stacks:
//	  - [a]
//	  - []
//	arm: 0
//	holding: ""
//
// holding is optional — most fixtures start with an empty arm.
type fileYAML struct {
	Objects map[string]objectYAML `yaml:"objects"`
	Stacks  [][]string            `yaml:"stacks"`
	Arm     int                   `yaml:"arm"`
	Holding string                `yaml:"holding,omitempty"`
}

// Load reads a world fixture from path and builds a blocksworld.WorldState.
func Load(path string) (*blocksworld.WorldState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a WorldState from raw fixture YAML, so tests can construct
// fixtures inline without touching the filesystem.
func Parse(data []byte) (*blocksworld.WorldState, error) {
	var raw fileYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fixture: parsing: %w", err)
	}

	objects := make(blocksworld.Objects, len(raw.Objects))
	for label, def := range raw.Objects {
		objects[blocksworld.Label(label)] = blocksworld.ObjectDef{
			Form:  blocksworld.Form(def.Form),
			Size:  blocksworld.Size(defaultIfEmpty(def.Size, string(blocksworld.SizeUnspecified))),
			Color: blocksworld.Color(defaultIfEmpty(def.Color, string(blocksworld.ColorUnspecified))),
		}
	}

	stacks := make([]blocksworld.Stack, len(raw.Stacks))
	for i, column := range raw.Stacks {
		stack := make(blocksworld.Stack, len(column))
		for j, label := range column {
			stack[j] = blocksworld.Label(label)
		}
		stacks[i] = stack
	}

	return &blocksworld.WorldState{
		Stacks:  stacks,
		Arm:     raw.Arm,
		Holding: blocksworld.Label(raw.Holding),
		Objects: objects,
	}, nil
}

func defaultIfEmpty(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
