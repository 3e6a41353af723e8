// Package seed loads the starter skills, achievements and loot a new character is
// created with.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Seed struct {
	Skills       []Skill       `yaml:"skills"`
	Achievements []Achievement `yaml:"achievements"`
	Loot         []LootItem    `yaml:"loot"`
}

type Skill struct {
	Name         string        `yaml:"name"`
	Unit         string        `yaml:"unit"`
	XPPerUnit    int           `yaml:"xp_per_unit"`
	Goals        []Goal        `yaml:"goals"`
	Achievements []Achievement `yaml:"achievements"`
}

type Goal struct {
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	XPReward    int    `yaml:"xp_reward"`
}

type Achievement struct {
	Level       int    `yaml:"level"`
	Description string `yaml:"description"`
}

// LootItem keeps its chance as text so that no float rounding happens before the
// decimal conversion.
type LootItem struct {
	Name   string `yaml:"name"`
	Rarity string `yaml:"rarity"`
	Chance string `yaml:"chance"`
}

func (l LootItem) ChanceDecimal() (decimal.Decimal, error) {
	if strings.TrimSpace(l.Chance) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(l.Chance))
	if err != nil {
		return decimal.Zero, fmt.Errorf("loot %q: chance %q: %w", l.Name, l.Chance, err)
	}
	return d, nil
}

// Default returns the embedded starter seed.
func Default() (Seed, error) {
	return Parse(defaultYAML)
}

// Load reads a seed file.
func Load(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(data []byte) (Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Seed{}, nil
		}
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

func (s Seed) Validate() error {
	for i, sk := range s.Skills {
		if strings.TrimSpace(sk.Name) == "" {
			return fmt.Errorf("seed skill %d: name is required", i)
		}
		if sk.XPPerUnit < 0 {
			return fmt.Errorf("seed skill %q: xp_per_unit must not be negative", sk.Name)
		}
		for _, g := range sk.Goals {
			if strings.TrimSpace(g.Description) == "" {
				return fmt.Errorf("seed skill %q: goal description is required", sk.Name)
			}
			if g.XPReward < 0 {
				return fmt.Errorf("seed goal %q: xp_reward must not be negative", g.Description)
			}
		}
		if err := validateAchievements(sk.Achievements); err != nil {
			return fmt.Errorf("seed skill %q: %w", sk.Name, err)
		}
	}
	if err := validateAchievements(s.Achievements); err != nil {
		return fmt.Errorf("seed character: %w", err)
	}
	for _, l := range s.Loot {
		if strings.TrimSpace(l.Name) == "" {
			return errors.New("seed loot: name is required")
		}
		d, err := l.ChanceDecimal()
		if err != nil {
			return err
		}
		if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("seed loot %q: chance must be between 0 and 100", l.Name)
		}
	}
	return nil
}

func validateAchievements(list []Achievement) error {
	for _, a := range list {
		if a.Level < 1 {
			return fmt.Errorf("achievement %q: level must be at least 1", a.Description)
		}
		if strings.TrimSpace(a.Description) == "" {
			return errors.New("achievement description is required")
		}
	}
	return nil
}
