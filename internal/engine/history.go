package engine

import (
	"context"
	"time"

	"rpglife/internal/storage"
)

// DefaultHistoryLimit caps history listings when the caller gives no limit.
const DefaultHistoryLimit = 50

type HistoryEntry struct {
	ID              int64         `json:"id"`
	EventID         string        `json:"event_id"`
	GoalDescription string        `json:"goal_description"`
	SkillName       string        `json:"skill_name"`
	SkillID         *int64        `json:"skill_id"`
	XPAmount        int           `json:"xp_amount"`
	GoalType        *GoalType     `json:"goal_type"`
	Action          HistoryAction `json:"action"`
	Timestamp       time.Time     `json:"timestamp"`
}

type RewardSnapshot struct {
	ID           int64     `json:"id"`
	Description  string    `json:"description"`
	SourceName   string    `json:"source_name"`
	ReceivedDate time.Time `json:"received_date"`
	Rarity       *Rarity   `json:"rarity"`
}

// GoalHistory lists history entries newest first. A nil skillID lists all skills;
// entries keep their skill name after the skill is deleted.
func (s *Service) GoalHistory(ctx context.Context, skillID *int64, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := s.read().history.List(ctx, skillID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(rows))
	for _, h := range rows {
		e := HistoryEntry{
			ID:              h.ID,
			EventID:         h.EventID,
			GoalDescription: h.GoalDescription,
			SkillName:       h.SkillName,
			SkillID:         h.SkillID,
			XPAmount:        h.XPAmount,
			Action:          HistoryAction(h.Action),
			Timestamp:       h.Timestamp,
		}
		if h.GoalType != nil {
			gt := GoalType(*h.GoalType)
			e.GoalType = &gt
		}
		out = append(out, e)
	}
	return out, nil
}

// Rewards lists received rewards newest first.
func (s *Service) Rewards(ctx context.Context) ([]RewardSnapshot, error) {
	rows, err := s.read().rewards.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RewardSnapshot, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rewardSnapshot(rw))
	}
	return out, nil
}

func rewardSnapshot(rw storage.Reward) RewardSnapshot {
	out := RewardSnapshot{
		ID:           rw.ID,
		Description:  rw.Description,
		SourceName:   rw.SourceName,
		ReceivedDate: rw.ReceivedAt,
	}
	if rw.Rarity != nil {
		r := Rarity(*rw.Rarity)
		out.Rarity = &r
	}
	return out
}
