package engine

type GoalType string

const (
	GoalDaily  GoalType = "DAILY"
	GoalBlue   GoalType = "BLUE"
	GoalYellow GoalType = "YELLOW"
	GoalRed    GoalType = "RED"
)

func (g GoalType) IsValid() bool {
	switch g {
	case GoalDaily, GoalBlue, GoalYellow, GoalRed:
		return true
	default:
		return false
	}
}

// IsDaily reports whether completion resets every user day. Blue, yellow and red
// goals are one-time tiers (short, mid and long term).
func (g GoalType) IsDaily() bool { return g == GoalDaily }

// DefaultGoalType is used when user input is missing.
const DefaultGoalType GoalType = GoalDaily

// DefaultGoalReward is the XP reward of a goal created without one.
const DefaultGoalReward = 25

// DefaultXPPerUnit is the XP per progress unit of a skill created without one.
const DefaultXPPerUnit = 10

// DefaultUnitDescription labels a progress unit when none is given.
const DefaultUnitDescription = "unit of progress"

type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityUnique    Rarity = "UNIQUE"
	RarityLegendary Rarity = "LEGENDARY"
)

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityUnique, RarityLegendary:
		return true
	default:
		return false
	}
}

type HistoryAction string

const (
	ActionCompleted     HistoryAction = "COMPLETED"
	ActionReverted      HistoryAction = "REVERTED"
	ActionProgressAdded HistoryAction = "PROGRESS_ADDED"
)
