package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type HistoryRepo struct {
	db DBTX
}

func NewHistoryRepo(db DBTX) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Insert(ctx context.Context, e HistoryEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO goal_history (event_id, goal_description, skill_name, skill_id, xp_amount, goal_type, action, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.EventID, e.GoalDescription, e.SkillName, e.SkillID, e.XPAmount, e.GoalType, e.Action, toMillis(e.Timestamp))
	if err != nil {
		return 0, fmt.Errorf("history insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history last insert id: %w", err)
	}
	return id, nil
}

// List returns entries newest first, optionally filtered to one skill.
func (r *HistoryRepo) List(ctx context.Context, skillID *int64, limit int) ([]HistoryEntry, error) {
	query := `
		SELECT id, event_id, goal_description, skill_name, skill_id, xp_amount, goal_type, action, timestamp
		FROM goal_history`
	var args []any
	if skillID != nil {
		query += ` WHERE skill_id = ?`
		args = append(args, *skillID)
	}
	query += ` ORDER BY timestamp DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var (
			e        HistoryEntry
			skill    sql.NullInt64
			goalType sql.NullString
			ts       int64
		)
		if err := rows.Scan(&e.ID, &e.EventID, &e.GoalDescription, &e.SkillName, &skill, &e.XPAmount, &goalType, &e.Action, &ts); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		e.SkillID = int64Ptr(skill)
		e.GoalType = stringPtr(goalType)
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}
	return out, nil
}
