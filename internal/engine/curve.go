package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// SkillBaseCap is the level-1 threshold of the skill curve.
	SkillBaseCap = 100

	// CharacterBaseCap is the level-1 threshold of the character curve.
	CharacterBaseCap = 100

	// characterEarlyStep applies to character levels 2 and 3.
	characterEarlyStep = 120
)

// Curve returns the XP required to advance past level. Implementations must be
// deterministic, non-decreasing and strictly positive for every level >= 1.
type Curve func(level int) int

// SkillCurve is the per-skill threshold: 100 XP per level.
func SkillCurve(level int) int {
	if level < 1 {
		level = 1
	}
	return SkillBaseCap * level
}

// CharacterCurve is the character threshold: 100 at level 1, 120 per level for
// levels 2-3 and round(100 * level^1.5) from level 4.
func CharacterCurve(level int) int {
	switch {
	case level <= 1:
		return CharacterBaseCap
	case level < 4:
		return level * characterEarlyStep
	default:
		return int(math.Round(100 * math.Pow(float64(level), 1.5)))
	}
}

// Linear returns a curve of base*level.
func Linear(base int) Curve {
	return func(level int) int {
		if level < 1 {
			level = 1
		}
		return base * level
	}
}

// Table returns a curve backed by explicit per-level thresholds. Levels past the
// end of the table keep the last step between entries.
func Table(values ...int) Curve {
	vals := append([]int(nil), values...)
	return func(level int) int {
		if len(vals) == 0 {
			return 0
		}
		if level < 1 {
			level = 1
		}
		if level <= len(vals) {
			return vals[level-1]
		}
		last := vals[len(vals)-1]
		step := last
		if len(vals) > 1 {
			step = last - vals[len(vals)-2]
		}
		return last + step*(level-len(vals))
	}
}

// Curves pairs the skill and character curves used by one engine instance.
type Curves struct {
	Skill     Curve
	Character Curve
}

// DefaultCurves returns the stock RPG-Life curves.
func DefaultCurves() Curves {
	return Curves{Skill: SkillCurve, Character: CharacterCurve}
}

// ParseCurve parses a curve description:
//
//	skill             100 * level
//	character         the stock character curve
//	linear:<base>     base * level
//	table:<a,b,...>   explicit thresholds for levels 1, 2, ...
func ParseCurve(input string) (Curve, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	name, arg, _ := strings.Cut(s, ":")
	switch name {
	case "skill":
		return SkillCurve, nil
	case "character", "":
		return CharacterCurve, nil
	case "linear":
		base, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("invalid linear curve %q: %w", input, err)
		}
		if base <= 0 {
			return nil, fmt.Errorf("invalid linear curve %q: base must be positive", input)
		}
		return Linear(base), nil
	case "table":
		parts := strings.Split(arg, ",")
		vals := make([]int, 0, len(parts))
		prev := 0
		for _, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("invalid table curve %q: %w", input, err)
			}
			if v <= 0 || v < prev {
				return nil, fmt.Errorf("invalid table curve %q: thresholds must be positive and non-decreasing", input)
			}
			vals = append(vals, v)
			prev = v
		}
		return Table(vals...), nil
	default:
		return nil, fmt.Errorf("unknown curve %q", input)
	}
}
