package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"rpglife/internal/seed"
	"rpglife/internal/storage"
)

// Character returns the full character aggregate, creating the character on first use.
func (s *Service) Character(ctx context.Context) (FullSnapshot, error) {
	var out FullSnapshot
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		out, err = s.fullSnapshot(ctx, r, c)
		return err
	})
	return out, err
}

// InitCharacter names the character and loads the starter seed. It refuses to run
// twice: a character that already has skills is left untouched.
func (s *Service) InitCharacter(ctx context.Context, name string, sd seed.Seed) (res FullSnapshot, err error) {
	ctx, span := s.startSpan(ctx, "InitCharacter", attribute.Int("seed.skills", len(sd.Skills)))
	defer func() { endSpan(span, err) }()

	name, err = normalizeText("name", name)
	if err != nil {
		return FullSnapshot{}, err
	}
	err = s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		existing, err := r.skills.ListByCharacter(ctx, c.ID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrAlreadyInitialized
		}
		c.Name = name
		if err := r.characters.Update(ctx, c); err != nil {
			return err
		}
		if err := s.applySeed(ctx, r, c, sd); err != nil {
			return err
		}
		res, err = s.fullSnapshot(ctx, r, c)
		return err
	})
	if err != nil {
		return FullSnapshot{}, err
	}
	s.log.Info("character initialized", "name", name, "skills", len(sd.Skills), "loot", len(sd.Loot))
	return res, nil
}

// applySeed inserts seed content. Zero values in the seed fall back to defaults.
func (s *Service) applySeed(ctx context.Context, r repos, c *storage.Character, sd seed.Seed) error {
	for _, sk := range sd.Skills {
		unit := sk.Unit
		if unit == "" {
			unit = DefaultUnitDescription
		}
		xp := sk.XPPerUnit
		if xp == 0 {
			xp = DefaultXPPerUnit
		}
		skillID, err := r.skills.Insert(ctx, storage.SkillInsert{
			CharacterID:     c.ID,
			Name:            sk.Name,
			UnitDescription: unit,
			XPPerUnit:       xp,
		})
		if err != nil {
			return err
		}
		for _, g := range sk.Goals {
			gt, err := ParseGoalType(g.Type)
			if err != nil {
				return err
			}
			reward := g.XPReward
			if reward == 0 {
				reward = DefaultGoalReward
			}
			if _, err := r.goals.Insert(ctx, storage.GoalInsert{
				SkillID:     skillID,
				Description: g.Description,
				GoalType:    string(gt),
				XPReward:    reward,
			}); err != nil {
				return err
			}
		}
		for _, a := range sk.Achievements {
			id := skillID
			if _, err := r.achievements.Insert(ctx, storage.Achievement{
				SkillID:       &id,
				RequiredLevel: a.Level,
				Description:   a.Description,
			}); err != nil {
				return err
			}
		}
	}
	for _, a := range sd.Achievements {
		id := c.ID
		if _, err := r.achievements.Insert(ctx, storage.Achievement{
			CharacterID:   &id,
			RequiredLevel: a.Level,
			Description:   a.Description,
		}); err != nil {
			return err
		}
	}
	if len(sd.Loot) == 0 {
		return nil
	}
	for _, l := range sd.Loot {
		rarity, err := ParseRarity(l.Rarity)
		if err != nil {
			return err
		}
		chance, err := l.ChanceDecimal()
		if err != nil {
			return invalidf("%v", err)
		}
		if _, err := r.loot.Insert(ctx, l.Name, string(rarity), chance); err != nil {
			return err
		}
	}
	return recalculateLoot(ctx, r, nil)
}

func (s *Service) RenameCharacter(ctx context.Context, name string) (FullSnapshot, error) {
	name, err := normalizeText("name", name)
	if err != nil {
		return FullSnapshot{}, err
	}
	var out FullSnapshot
	err = s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		c.Name = name
		if err := r.characters.Update(ctx, c); err != nil {
			return err
		}
		out, err = s.fullSnapshot(ctx, r, c)
		return err
	})
	return out, err
}

// SetDailyResetTime changes when the character's user day starts. Daily goal
// completion is re-evaluated against the new day in the returned snapshot.
func (s *Service) SetDailyResetTime(ctx context.Context, input string) (FullSnapshot, error) {
	rt, err := ParseResetTime(input)
	if err != nil {
		return FullSnapshot{}, err
	}
	var out FullSnapshot
	err = s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		c.DailyResetTime = rt.String()
		if err := r.characters.Update(ctx, c); err != nil {
			return err
		}
		out, err = s.fullSnapshot(ctx, r, c)
		return err
	})
	return out, err
}

// DayInfo describes the character's current user day.
type DayInfo struct {
	Day       string    `json:"day"`
	ResetTime string    `json:"daily_reset_time"`
	NextReset time.Time `json:"next_reset"`
}

func (s *Service) CurrentDay(ctx context.Context) (DayInfo, error) {
	var out DayInfo
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		rt := characterResetTime(c)
		now := s.now()
		out = DayInfo{
			Day:       CurrentDay(now, s.loc, rt),
			ResetTime: rt.String(),
			NextReset: NextReset(now, s.loc, rt),
		}
		return nil
	})
	return out, err
}

func (s *Service) fullSnapshot(ctx context.Context, r repos, c *storage.Character) (FullSnapshot, error) {
	snap, err := s.snapshot(ctx, r, c)
	if err != nil {
		return FullSnapshot{}, err
	}
	return FullSnapshot{Character: snap}, nil
}

func (s *Service) snapshot(ctx context.Context, r repos, c *storage.Character) (CharacterSnapshot, error) {
	today := s.today(c)
	ledger := Ledger{Level: c.Level, XP: c.CurrentXP}
	out := CharacterSnapshot{
		ID:              c.ID,
		Name:            c.Name,
		Level:           c.Level,
		CurrentXP:       c.CurrentXP,
		XPToNextLevel:   ledger.Required(s.curves.Character),
		PityCounter:     c.PityCounter,
		LastLootboxDate: c.LastLootboxDate,
		DailyResetTime:  c.DailyResetTime,
		Skills:          []SkillSnapshot{},
	}
	skills, err := r.skills.ListByCharacter(ctx, c.ID)
	if err != nil {
		return CharacterSnapshot{}, err
	}
	for i := range skills {
		ss, err := s.skillSnapshot(ctx, r, &skills[i], today)
		if err != nil {
			return CharacterSnapshot{}, err
		}
		out.Skills = append(out.Skills, ss)
	}
	achs, err := r.achievements.ListByCharacter(ctx, c.ID)
	if err != nil {
		return CharacterSnapshot{}, err
	}
	out.Achievements = achievementSnapshots(achs)
	return out, nil
}

func (s *Service) skillSnapshot(ctx context.Context, r repos, sk *storage.Skill, today string) (SkillSnapshot, error) {
	ledger := Ledger{Level: sk.Level, XP: sk.CurrentXP}
	out := SkillSnapshot{
		ID:              sk.ID,
		Name:            sk.Name,
		UnitDescription: sk.UnitDescription,
		XPPerUnit:       sk.XPPerUnit,
		Level:           sk.Level,
		CurrentXP:       sk.CurrentXP,
		XPToNextLevel:   ledger.Required(s.curves.Skill),
		Goals:           []GoalSnapshot{},
		Notes:           []NoteSnapshot{},
	}
	goals, err := r.goals.ListBySkill(ctx, sk.ID)
	if err != nil {
		return SkillSnapshot{}, err
	}
	for _, g := range goals {
		gs, err := goalSnapshot(ctx, r, g, today)
		if err != nil {
			return SkillSnapshot{}, err
		}
		out.Goals = append(out.Goals, gs)
	}
	notes, err := r.notes.ListBySkill(ctx, sk.ID)
	if err != nil {
		return SkillSnapshot{}, err
	}
	for _, n := range notes {
		out.Notes = append(out.Notes, NoteSnapshot{ID: n.ID, Text: n.Text, Date: n.CreatedAt})
	}
	achs, err := r.achievements.ListBySkill(ctx, sk.ID)
	if err != nil {
		return SkillSnapshot{}, err
	}
	out.Achievements = achievementSnapshots(achs)
	return out, nil
}

// completionFor finds the completion record that makes g count as done: today's
// record for a daily goal, any record for a one-time goal.
func completionFor(ctx context.Context, r repos, g storage.Goal, today string) (*storage.GoalCompletion, error) {
	if GoalType(g.GoalType).IsDaily() {
		return r.completions.OnDay(ctx, g.ID, today)
	}
	return r.completions.Any(ctx, g.ID)
}

func goalSnapshot(ctx context.Context, r repos, g storage.Goal, today string) (GoalSnapshot, error) {
	rec, err := completionFor(ctx, r, g, today)
	if err != nil {
		return GoalSnapshot{}, err
	}
	return GoalSnapshot{
		ID:          g.ID,
		SkillID:     g.SkillID,
		Description: g.Description,
		GoalType:    GoalType(g.GoalType),
		XPReward:    g.XPReward,
		IsCompleted: rec != nil,
	}, nil
}

// skillPatch reloads one skill and pairs it with the in-memory character ledger.
func (s *Service) skillPatch(ctx context.Context, r repos, c *storage.Character, skillID int64) (SkillPatch, error) {
	sk, err := ownedSkill(ctx, r, c, skillID)
	if err != nil {
		return SkillPatch{}, err
	}
	ss, err := s.skillSnapshot(ctx, r, sk, s.today(c))
	if err != nil {
		return SkillPatch{}, err
	}
	return SkillPatch{
		Character: View(Ledger{Level: c.Level, XP: c.CurrentXP}, s.curves.Character),
		Skill:     ss,
	}, nil
}

func achievementSnapshots(list []storage.Achievement) []AchievementSnapshot {
	out := make([]AchievementSnapshot, 0, len(list))
	for _, a := range list {
		out = append(out, achievementSnapshot(a))
	}
	return out
}

func achievementSnapshot(a storage.Achievement) AchievementSnapshot {
	return AchievementSnapshot{
		ID:             a.ID,
		RequiredLevel:  a.RequiredLevel,
		Description:    a.Description,
		ClaimedDate:    a.ClaimedAt,
		OwnerSkill:     a.SkillID,
		OwnerCharacter: a.CharacterID,
	}
}
