package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"rpglife/internal/storage"
)

type ProgressResult struct {
	Patch   SkillPatch       `json:"patch"`
	Outcome Outcome          `json:"outcome"`
	Rewards []RewardSnapshot `json:"new_rewards"`
}

// AddProgress logs units of progress on a skill. The skill and the character both
// receive units * xp_per_unit XP.
func (s *Service) AddProgress(ctx context.Context, skillID int64, units int) (res ProgressResult, err error) {
	ctx, span := s.startSpan(ctx, "AddProgress",
		attribute.Int64("skill.id", skillID),
		attribute.Int("units", units),
	)
	defer func() { endSpan(span, err) }()

	if units < 1 {
		return ProgressResult{}, invalidf("units must be a positive number, got %d", units)
	}

	err = s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		sk, err := ownedSkill(ctx, r, c, skillID)
		if err != nil {
			return err
		}
		out, rewards, err := s.applyEvent(ctx, r, c, sk, ProgressEvent(units, sk.XPPerUnit))
		if err != nil {
			return err
		}
		skillRef := sk.ID
		if _, err := r.history.Insert(ctx, storage.HistoryEntry{
			EventID:         s.newEventID(),
			GoalDescription: fmt.Sprintf("%d %s", units, sk.UnitDescription),
			SkillName:       sk.Name,
			SkillID:         &skillRef,
			XPAmount:        out.Delta,
			Action:          string(ActionProgressAdded),
			Timestamp:       s.now().UTC(),
		}); err != nil {
			return err
		}
		patch, err := s.skillPatch(ctx, r, c, sk.ID)
		if err != nil {
			return err
		}
		res = ProgressResult{Patch: patch, Outcome: out, Rewards: rewards}
		return nil
	})
	if err != nil {
		return ProgressResult{}, err
	}
	return res, nil
}

// applyEvent resolves ev against the character and sk, persists both ledgers and
// claims any achievements the new levels unlock.
func (s *Service) applyEvent(ctx context.Context, r repos, c *storage.Character, sk *storage.Skill, ev Event) (Outcome, []RewardSnapshot, error) {
	out, err := ApplyEvent(
		Ledger{Level: c.Level, XP: c.CurrentXP},
		Ledger{Level: sk.Level, XP: sk.CurrentXP},
		ev, s.curves,
	)
	if err != nil {
		return Outcome{}, nil, err
	}

	c.Level, c.CurrentXP = out.Character.After.Level, out.Character.After.XP
	if err := r.characters.Update(ctx, c); err != nil {
		return Outcome{}, nil, err
	}
	sk.Level, sk.CurrentXP = out.Skill.After.Level, out.Skill.After.XP
	if err := r.skills.UpdateLedger(ctx, sk.ID, sk.Level, sk.CurrentXP); err != nil {
		return Outcome{}, nil, err
	}

	s.logOutcome(sk, ev, out)

	rewards, err := s.claimAchievements(ctx, r, c, sk, out.Skill.LeveledUp())
	if err != nil {
		return Outcome{}, nil, err
	}
	return out, rewards, nil
}

func (s *Service) logOutcome(sk *storage.Skill, ev Event, out Outcome) {
	s.log.Debug("xp applied",
		"kind", string(ev.Kind),
		"skill", sk.Name,
		"delta", out.Delta,
		"skill_level", out.Skill.After.Level,
		"character_level", out.Character.After.Level,
	)
	switch {
	case out.Skill.LeveledUp():
		s.log.Info("skill leveled up", "skill", sk.Name, "from", out.Skill.Before.Level, "to", out.Skill.After.Level)
	case out.Skill.LeveledDown():
		s.log.Info("skill leveled down", "skill", sk.Name, "from", out.Skill.Before.Level, "to", out.Skill.After.Level)
	}
	switch {
	case out.Character.LeveledUp():
		s.log.Info("character leveled up", "from", out.Character.Before.Level, "to", out.Character.After.Level)
	case out.Character.LeveledDown():
		s.log.Info("character leveled down", "from", out.Character.Before.Level, "to", out.Character.After.Level)
	}
}
