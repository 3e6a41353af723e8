package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

type Character struct {
	ID              int64
	Name            string
	Level           int
	CurrentXP       int
	PityCounter     int
	LastLootboxDate *string
	DailyResetTime  string
}

type Skill struct {
	ID              int64
	CharacterID     int64
	Name            string
	UnitDescription string
	XPPerUnit       int
	Level           int
	CurrentXP       int
}

type Goal struct {
	ID          int64
	SkillID     int64
	Description string
	GoalType    string
	XPReward    int
}

type GoalCompletion struct {
	ID             int64
	GoalID         int64
	CompletionDate string
}

type HistoryEntry struct {
	ID              int64
	EventID         string
	GoalDescription string
	SkillName       string
	SkillID         *int64
	XPAmount        int
	GoalType        *string
	Action          string
	Timestamp       time.Time
}

type Achievement struct {
	ID            int64
	SkillID       *int64
	CharacterID   *int64
	RequiredLevel int
	Description   string
	ClaimedAt     *time.Time
}

type Note struct {
	ID        int64
	SkillID   int64
	Text      string
	CreatedAt time.Time
}

type LootItem struct {
	ID         int64
	Name       string
	Rarity     string
	BaseChance decimal.Decimal
	ReceivedAt *time.Time
}

type Reward struct {
	ID          int64
	Description string
	SourceName  string
	ReceivedAt  time.Time
	Rarity      *string
}
