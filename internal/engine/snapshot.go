package engine

import "time"

// CharacterSnapshot is the full character aggregate handed to displays and clients.
type CharacterSnapshot struct {
	ID              int64                 `json:"id"`
	Name            string                `json:"name"`
	Level           int                   `json:"level"`
	CurrentXP       int                   `json:"current_xp"`
	XPToNextLevel   int                   `json:"xp_to_next_level"`
	PityCounter     int                   `json:"pity_counter"`
	LastLootboxDate *string               `json:"last_lootbox_date"`
	DailyResetTime  string                `json:"daily_reset_time"`
	Skills          []SkillSnapshot       `json:"skills"`
	Achievements    []AchievementSnapshot `json:"achievements"`
}

// Ledger returns the character's level/XP pair.
func (c CharacterSnapshot) Ledger() Ledger {
	return Ledger{Level: c.Level, XP: c.CurrentXP}
}

// Skill returns a pointer into c.Skills, or nil.
func (c *CharacterSnapshot) Skill(id int64) *SkillSnapshot {
	for i := range c.Skills {
		if c.Skills[i].ID == id {
			return &c.Skills[i]
		}
	}
	return nil
}

// Clone returns a deep copy, so that predictions never alias authoritative data.
func (c CharacterSnapshot) Clone() CharacterSnapshot {
	out := c
	if c.LastLootboxDate != nil {
		v := *c.LastLootboxDate
		out.LastLootboxDate = &v
	}
	out.Skills = make([]SkillSnapshot, len(c.Skills))
	for i, s := range c.Skills {
		out.Skills[i] = s.Clone()
	}
	out.Achievements = append([]AchievementSnapshot(nil), c.Achievements...)
	return out
}

type SkillSnapshot struct {
	ID              int64                 `json:"id"`
	Name            string                `json:"name"`
	UnitDescription string                `json:"unit_description"`
	XPPerUnit       int                   `json:"xp_per_unit"`
	Level           int                   `json:"level"`
	CurrentXP       int                   `json:"current_xp"`
	XPToNextLevel   int                   `json:"xp_to_next_level"`
	Goals           []GoalSnapshot        `json:"goals"`
	Notes           []NoteSnapshot        `json:"notes"`
	Achievements    []AchievementSnapshot `json:"achievements"`
}

func (s SkillSnapshot) Ledger() Ledger {
	return Ledger{Level: s.Level, XP: s.CurrentXP}
}

// Goal returns a pointer into s.Goals, or nil.
func (s *SkillSnapshot) Goal(id int64) *GoalSnapshot {
	for i := range s.Goals {
		if s.Goals[i].ID == id {
			return &s.Goals[i]
		}
	}
	return nil
}

func (s SkillSnapshot) Clone() SkillSnapshot {
	out := s
	out.Goals = append([]GoalSnapshot(nil), s.Goals...)
	out.Notes = append([]NoteSnapshot(nil), s.Notes...)
	out.Achievements = append([]AchievementSnapshot(nil), s.Achievements...)
	return out
}

type GoalSnapshot struct {
	ID          int64    `json:"id"`
	SkillID     int64    `json:"skill"`
	Description string   `json:"description"`
	GoalType    GoalType `json:"goal_type"`
	XPReward    int      `json:"xp_reward"`
	IsCompleted bool     `json:"is_completed"`
}

type NoteSnapshot struct {
	ID   int64     `json:"id"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

type AchievementSnapshot struct {
	ID             int64      `json:"id"`
	RequiredLevel  int        `json:"required_level"`
	Description    string     `json:"description"`
	ClaimedDate    *time.Time `json:"claimed_date"`
	OwnerSkill     *int64     `json:"owner_skill"`
	OwnerCharacter *int64     `json:"owner_character"`
}

// LedgerView is a ledger together with its current threshold.
type LedgerView struct {
	Level         int `json:"level"`
	CurrentXP     int `json:"current_xp"`
	XPToNextLevel int `json:"xp_to_next_level"`
}

// View renders l against curve.
func View(l Ledger, curve Curve) LedgerView {
	return LedgerView{Level: l.Level, CurrentXP: l.XP, XPToNextLevel: l.Required(curve)}
}

// Patch is an authoritative update produced by a service operation. The variant is
// chosen by the operation, never inferred from payload shape:
//
//	FullSnapshot  replaces the whole character aggregate
//	SkillPatch    replaces one skill and the character ledger
//	GoalPatch     replaces one goal
type Patch interface {
	patch()
}

type FullSnapshot struct {
	Character CharacterSnapshot `json:"character"`
}

type SkillPatch struct {
	Character LedgerView    `json:"character"`
	Skill     SkillSnapshot `json:"skill"`
}

type GoalPatch struct {
	SkillID int64        `json:"skill_id"`
	Goal    GoalSnapshot `json:"goal"`
}

func (FullSnapshot) patch() {}
func (SkillPatch) patch()   {}
func (GoalPatch) patch()    {}
