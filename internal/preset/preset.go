// Package preset holds named difficulty configurations for the
// minefield, with the three classic boards built in and room for more
// from a YAML file.
package preset

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"minegrid/internal/field"
)

// Preset describes one named board difficulty.
type Preset struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Mines  int    `yaml:"mines"`
}

// Config converts the preset into a field configuration with the given
// layout seed.
func (p Preset) Config(seed int64) field.Config {
	return field.Config{Width: p.Width, Height: p.Height, Mines: p.Mines, Seed: seed}
}

var presets = map[string]Preset{}

// Register adds a preset under its name. Invalid boards are ignored.
func Register(p Preset) {
	if p.Name == "" || p.Width <= 0 || p.Height <= 0 || p.Mines < 0 {
		return
	}
	presets[p.Name] = p
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Names lists the registered preset names in sorted order.
func Names() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// File is the on-disk preset list format.
type File struct {
	Presets []Preset `yaml:"presets"`
}

// LoadFile registers every preset from a YAML file.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("preset: read %s: %w", path, err)
	}
	return Load(data)
}

// Load registers every preset from YAML bytes.
func Load(data []byte) error {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("preset: parse: %w", err)
	}
	for _, p := range f.Presets {
		Register(p)
	}
	return nil
}

func init() {
	Register(Preset{Name: "beginner", Width: 9, Height: 9, Mines: 10})
	Register(Preset{Name: "intermediate", Width: 16, Height: 16, Mines: 40})
	Register(Preset{Name: "expert", Width: 30, Height: 16, Mines: 99})
}
