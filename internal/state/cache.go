// Package state keeps a client-side copy of the character that is updated
// optimistically and then overwritten by authoritative patches.
package state

import (
	"errors"
	"fmt"
	"sync"

	"rpglife/internal/engine"
)

// ErrNotLoaded is returned before the first FullSnapshot has been reconciled.
var ErrNotLoaded = errors.New("state: no snapshot loaded")

// Cache holds the latest authoritative snapshot and a predicted copy derived from
// it. Reconcile always replaces the predicted copy; predictions are never merged
// into authoritative data. Safe for concurrent use.
type Cache struct {
	mu            sync.Mutex
	curves        engine.Curves
	loaded        bool
	authoritative engine.CharacterSnapshot
	predicted     engine.CharacterSnapshot
	pending       int
}

func New(curves engine.Curves) *Cache {
	return &Cache{curves: curves}
}

// Snapshot returns a copy of the predicted view.
func (c *Cache) Snapshot() (engine.CharacterSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.predicted.Clone(), c.loaded
}

// Authoritative returns a copy of the last reconciled snapshot.
func (c *Cache) Authoritative() (engine.CharacterSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authoritative.Clone(), c.loaded
}

// Pending reports whether predictions are waiting for a patch.
func (c *Cache) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending > 0
}

// Predict applies ev to the predicted copy of the character and one skill.
func (c *Cache) Predict(skillID int64, ev engine.Event) (engine.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return engine.Outcome{}, ErrNotLoaded
	}
	sk := c.predicted.Skill(skillID)
	if sk == nil {
		return engine.Outcome{}, engine.NotFoundError{Kind: "skill", ID: skillID}
	}
	out, err := c.apply(sk, ev)
	if err != nil {
		return engine.Outcome{}, err
	}
	c.pending++
	return out, nil
}

// PredictToggle flips a goal in the predicted copy and applies its reward.
func (c *Cache) PredictToggle(goalID int64) (engine.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return engine.Outcome{}, ErrNotLoaded
	}
	for i := range c.predicted.Skills {
		sk := &c.predicted.Skills[i]
		g := sk.Goal(goalID)
		if g == nil {
			continue
		}
		ev := engine.GoalCompleted(g.XPReward)
		if g.IsCompleted {
			ev = engine.GoalReverted(g.XPReward)
		}
		out, err := c.apply(sk, ev)
		if err != nil {
			return engine.Outcome{}, err
		}
		g.IsCompleted = !g.IsCompleted
		c.pending++
		return out, nil
	}
	return engine.Outcome{}, engine.NotFoundError{Kind: "goal", ID: goalID}
}

func (c *Cache) apply(sk *engine.SkillSnapshot, ev engine.Event) (engine.Outcome, error) {
	out, err := engine.ApplyEvent(c.predicted.Ledger(), sk.Ledger(), ev, c.curves)
	if err != nil {
		return engine.Outcome{}, err
	}
	cv := engine.View(out.Character.After, c.curves.Character)
	c.predicted.Level, c.predicted.CurrentXP, c.predicted.XPToNextLevel = cv.Level, cv.CurrentXP, cv.XPToNextLevel
	sv := engine.View(out.Skill.After, c.curves.Skill)
	sk.Level, sk.CurrentXP, sk.XPToNextLevel = sv.Level, sv.CurrentXP, sv.XPToNextLevel
	return out, nil
}

// Reconcile applies an authoritative patch and drops every outstanding prediction.
func (c *Cache) Reconcile(p engine.Patch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch p := p.(type) {
	case engine.FullSnapshot:
		c.authoritative = p.Character.Clone()
		c.loaded = true
	case engine.SkillPatch:
		if !c.loaded {
			return ErrNotLoaded
		}
		c.authoritative.Level = p.Character.Level
		c.authoritative.CurrentXP = p.Character.CurrentXP
		c.authoritative.XPToNextLevel = p.Character.XPToNextLevel
		skill := p.Skill.Clone()
		if sk := c.authoritative.Skill(skill.ID); sk != nil {
			*sk = skill
		} else {
			c.authoritative.Skills = append(c.authoritative.Skills, skill)
		}
	case engine.GoalPatch:
		if !c.loaded {
			return ErrNotLoaded
		}
		sk := c.authoritative.Skill(p.SkillID)
		if sk == nil {
			return engine.NotFoundError{Kind: "skill", ID: p.SkillID}
		}
		if g := sk.Goal(p.Goal.ID); g != nil {
			*g = p.Goal
		} else {
			sk.Goals = append(sk.Goals, p.Goal)
		}
	default:
		return fmt.Errorf("state: unknown patch %T", p)
	}

	c.predicted = c.authoritative.Clone()
	c.pending = 0
	return nil
}

// Discard drops outstanding predictions, e.g. after a failed request.
func (c *Cache) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.predicted = c.authoritative.Clone()
	c.pending = 0
}
