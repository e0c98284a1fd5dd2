package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named seeding profile loadable from YAML. Zero fields fall back
// to DefaultOptions and the default distribution.
type Preset struct {
	Name         string       `yaml:"name"`
	Users        int          `yaml:"users"`
	Posts        int          `yaml:"posts"`
	MaxDays      int          `yaml:"max_days"`
	Clean        bool         `yaml:"clean"`
	Distribution Distribution `yaml:"distribution"`
}

// LoadPreset reads a seeding preset from a YAML file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path) // #nosec G304: operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("read preset %s: %w", path, err)
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return &p, nil
}

// Options converts the preset into seeder options, filling gaps with defaults.
func (p *Preset) Options() Options {
	opts := DefaultOptions()
	if p.Users > 0 {
		opts.NumUsers = p.Users
	}
	if p.Posts > 0 {
		opts.NumPosts = p.Posts
	}
	if p.MaxDays > 0 {
		opts.MaxDays = p.MaxDays
	}
	opts.ShouldClean = p.Clean
	return opts
}

// EffectiveDistribution returns the preset's post mix, or the default when
// the preset leaves every weight at zero.
func (p *Preset) EffectiveDistribution() Distribution {
	d := p.Distribution
	if d.Text+d.Image+d.Video+d.Stream <= 0 {
		return defaultDistribution
	}
	return d
}
