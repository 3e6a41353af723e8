package engine

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"rpglife/internal/storage"
)

type GoalInput struct {
	SkillID     int64
	Description string
	GoalType    GoalType
	// XPReward nil means DefaultGoalReward.
	XPReward *int
}

// GoalUpdate changes the non-nil fields of a goal.
type GoalUpdate struct {
	Description *string
	GoalType    *GoalType
	XPReward    *int
}

type ToggleResult struct {
	Patch     SkillPatch `json:"patch"`
	Completed bool       `json:"completed"`
	// Outcome is nil when the goal carries no reward.
	Outcome *Outcome         `json:"outcome,omitempty"`
	Rewards []RewardSnapshot `json:"new_rewards"`
}

func validateReward(reward int) error {
	if reward < 0 {
		return invalidf("xp reward must not be negative, got %d", reward)
	}
	return nil
}

func (s *Service) CreateGoal(ctx context.Context, in GoalInput) (FullSnapshot, error) {
	desc, err := normalizeText("description", in.Description)
	if err != nil {
		return FullSnapshot{}, err
	}
	gt := in.GoalType
	if gt == "" {
		gt = DefaultGoalType
	}
	if !gt.IsValid() {
		return FullSnapshot{}, invalidf("unknown goal type %q", gt)
	}
	reward := DefaultGoalReward
	if in.XPReward != nil {
		reward = *in.XPReward
	}
	if err := validateReward(reward); err != nil {
		return FullSnapshot{}, err
	}

	var out FullSnapshot
	err = s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		if _, err := ownedSkill(ctx, r, c, in.SkillID); err != nil {
			return err
		}
		if _, err := r.goals.Insert(ctx, storage.GoalInsert{
			SkillID:     in.SkillID,
			Description: desc,
			GoalType:    string(gt),
			XPReward:    reward,
		}); err != nil {
			return err
		}
		out, err = s.fullSnapshot(ctx, r, c)
		return err
	})
	return out, err
}

// UpdateGoal edits a goal. Changing the reward of a completed goal does not
// retroactively adjust XP; a later revert takes back the new reward.
func (s *Service) UpdateGoal(ctx context.Context, id int64, in GoalUpdate) (GoalPatch, error) {
	var out GoalPatch
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		g, _, err := ownedGoal(ctx, r, c, id)
		if err != nil {
			return err
		}
		if in.Description != nil {
			desc, err := normalizeText("description", *in.Description)
			if err != nil {
				return err
			}
			g.Description = desc
		}
		if in.GoalType != nil {
			if !in.GoalType.IsValid() {
				return invalidf("unknown goal type %q", *in.GoalType)
			}
			g.GoalType = string(*in.GoalType)
		}
		if in.XPReward != nil {
			if err := validateReward(*in.XPReward); err != nil {
				return err
			}
			g.XPReward = *in.XPReward
		}
		if err := r.goals.Update(ctx, g); err != nil {
			return err
		}
		gs, err := goalSnapshot(ctx, r, *g, s.today(c))
		if err != nil {
			return err
		}
		out = GoalPatch{SkillID: g.SkillID, Goal: gs}
		return nil
	})
	return out, err
}

// DeleteGoal removes a goal and its completion records. XP already awarded stays.
func (s *Service) DeleteGoal(ctx context.Context, id int64) (SkillPatch, error) {
	var out SkillPatch
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		g, sk, err := ownedGoal(ctx, r, c, id)
		if err != nil {
			return err
		}
		if err := r.goals.Delete(ctx, g.ID); err != nil {
			return err
		}
		out, err = s.skillPatch(ctx, r, c, sk.ID)
		return err
	})
	return out, err
}

// DuplicateGoal copies a goal into the same skill. The copy starts uncompleted.
func (s *Service) DuplicateGoal(ctx context.Context, id int64) (SkillPatch, error) {
	var out SkillPatch
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		g, sk, err := ownedGoal(ctx, r, c, id)
		if err != nil {
			return err
		}
		if _, err := r.goals.Insert(ctx, storage.GoalInsert{
			SkillID:     g.SkillID,
			Description: g.Description,
			GoalType:    g.GoalType,
			XPReward:    g.XPReward,
		}); err != nil {
			return err
		}
		out, err = s.skillPatch(ctx, r, c, sk.ID)
		return err
	})
	return out, err
}

// ToggleGoal flips a goal between completed and not completed. Daily goals are
// completed per user day; blue, yellow and red goals are completed once. Completing
// awards xp_reward to the skill and the character, reverting takes it back, and
// either may cascade levels in both directions.
func (s *Service) ToggleGoal(ctx context.Context, id int64) (res ToggleResult, err error) {
	ctx, span := s.startSpan(ctx, "ToggleGoal", attribute.Int64("goal.id", id))
	defer func() { endSpan(span, err) }()

	err = s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		g, sk, err := ownedGoal(ctx, r, c, id)
		if err != nil {
			return err
		}
		today := s.today(c)
		rec, err := completionFor(ctx, r, *g, today)
		if err != nil {
			return err
		}

		var (
			ev     Event
			action HistoryAction
		)
		if rec != nil {
			if err := r.completions.Delete(ctx, rec.ID); err != nil {
				return err
			}
			ev, action = GoalReverted(g.XPReward), ActionReverted
		} else {
			if _, err := r.completions.Insert(ctx, g.ID, today); err != nil {
				return err
			}
			ev, action = GoalCompleted(g.XPReward), ActionCompleted
			res.Completed = true
		}

		if g.XPReward != 0 {
			out, rewards, err := s.applyEvent(ctx, r, c, sk, ev)
			if err != nil {
				return err
			}
			res.Outcome = &out
			res.Rewards = rewards

			skillRef, goalType := sk.ID, g.GoalType
			if _, err := r.history.Insert(ctx, storage.HistoryEntry{
				EventID:         s.newEventID(),
				GoalDescription: g.Description,
				SkillName:       sk.Name,
				SkillID:         &skillRef,
				XPAmount:        g.XPReward,
				GoalType:        &goalType,
				Action:          string(action),
				Timestamp:       s.now().UTC(),
			}); err != nil {
				return err
			}
		}

		res.Patch, err = s.skillPatch(ctx, r, c, sk.ID)
		return err
	})
	if err != nil {
		return ToggleResult{}, err
	}
	s.log.Debug("goal toggled", "goal", id, "completed", res.Completed)
	return res, nil
}
