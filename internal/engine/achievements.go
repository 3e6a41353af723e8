package engine

import (
	"context"
	"fmt"

	"rpglife/internal/storage"
)

const characterRewardSource = "Character level"

// AchievementInput creates an achievement. A nil SkillID attaches it to the character.
type AchievementInput struct {
	SkillID       *int64
	RequiredLevel int
	Description   string
}

// claimAchievements claims every unclaimed achievement the current levels satisfy.
// Character achievements are checked after every event; skill achievements only
// when the skill gained a level. Each claim records a received reward.
func (s *Service) claimAchievements(ctx context.Context, r repos, c *storage.Character, sk *storage.Skill, skillLeveledUp bool) ([]RewardSnapshot, error) {
	now := s.now().UTC()
	var rewards []RewardSnapshot

	claim := func(a storage.Achievement, source string) error {
		if err := r.achievements.MarkClaimed(ctx, a.ID, now); err != nil {
			return err
		}
		rw := storage.Reward{
			Description: fmt.Sprintf("Lvl %d: %s", a.RequiredLevel, a.Description),
			SourceName:  source,
			ReceivedAt:  now,
		}
		id, err := r.rewards.Insert(ctx, rw)
		if err != nil {
			return err
		}
		rw.ID = id
		rewards = append(rewards, rewardSnapshot(rw))
		s.log.Info("achievement claimed", "description", a.Description, "level", a.RequiredLevel, "source", source)
		return nil
	}

	charAchs, err := r.achievements.UnclaimedForCharacter(ctx, c.ID, c.Level)
	if err != nil {
		return nil, err
	}
	for _, a := range charAchs {
		if err := claim(a, characterRewardSource); err != nil {
			return nil, err
		}
	}

	if sk != nil && skillLeveledUp {
		skillAchs, err := r.achievements.UnclaimedForSkill(ctx, sk.ID, sk.Level)
		if err != nil {
			return nil, err
		}
		for _, a := range skillAchs {
			if err := claim(a, "Skill: "+sk.Name); err != nil {
				return nil, err
			}
		}
	}
	return rewards, nil
}

// CreateAchievement adds an unclaimed achievement. It is claimed by the next event
// that finds its owner at or above RequiredLevel.
func (s *Service) CreateAchievement(ctx context.Context, in AchievementInput) (FullSnapshot, error) {
	desc, err := normalizeText("description", in.Description)
	if err != nil {
		return FullSnapshot{}, err
	}
	if in.RequiredLevel < 1 {
		return FullSnapshot{}, invalidf("required level must be at least 1, got %d", in.RequiredLevel)
	}
	var out FullSnapshot
	err = s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		a := storage.Achievement{RequiredLevel: in.RequiredLevel, Description: desc}
		if in.SkillID != nil {
			sk, err := ownedSkill(ctx, r, c, *in.SkillID)
			if err != nil {
				return err
			}
			id := sk.ID
			a.SkillID = &id
		} else {
			id := c.ID
			a.CharacterID = &id
		}
		if _, err := r.achievements.Insert(ctx, a); err != nil {
			return err
		}
		out, err = s.fullSnapshot(ctx, r, c)
		return err
	})
	return out, err
}

func (s *Service) DeleteAchievement(ctx context.Context, id int64) (FullSnapshot, error) {
	var out FullSnapshot
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		a, err := r.achievements.Get(ctx, id)
		if err != nil {
			return err
		}
		if a == nil || !ownsAchievement(ctx, r, c, a) {
			return NotFoundError{Kind: "achievement", ID: id}
		}
		if err := r.achievements.Delete(ctx, id); err != nil {
			return err
		}
		out, err = s.fullSnapshot(ctx, r, c)
		return err
	})
	return out, err
}

func ownsAchievement(ctx context.Context, r repos, c *storage.Character, a *storage.Achievement) bool {
	if a.CharacterID != nil {
		return *a.CharacterID == c.ID
	}
	if a.SkillID == nil {
		return false
	}
	_, err := ownedSkill(ctx, r, c, *a.SkillID)
	return err == nil
}

// ListAchievements lists the character's achievements followed by every skill's.
func (s *Service) ListAchievements(ctx context.Context) ([]AchievementSnapshot, error) {
	snap, err := s.Character(ctx)
	if err != nil {
		return nil, err
	}
	out := append([]AchievementSnapshot(nil), snap.Character.Achievements...)
	for _, sk := range snap.Character.Skills {
		out = append(out, sk.Achievements...)
	}
	return out, nil
}
