package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type CompletionRepo struct {
	db DBTX
}

func NewCompletionRepo(db DBTX) *CompletionRepo {
	return &CompletionRepo{db: db}
}

func (r *CompletionRepo) Insert(ctx context.Context, goalID int64, day string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO goal_completions (goal_id, completion_date) VALUES (?, ?)
	`, goalID, day)
	if err != nil {
		return 0, fmt.Errorf("completion insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("completion last insert id: %w", err)
	}
	return id, nil
}

// OnDay returns the goal's completion for day, or nil.
func (r *CompletionRepo) OnDay(ctx context.Context, goalID int64, day string) (*GoalCompletion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, goal_id, completion_date
		FROM goal_completions
		WHERE goal_id = ? AND completion_date = ?
	`, goalID, day)
	return scanCompletion(row)
}

// Any returns the goal's earliest completion on any day, or nil.
func (r *CompletionRepo) Any(ctx context.Context, goalID int64) (*GoalCompletion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, goal_id, completion_date
		FROM goal_completions
		WHERE goal_id = ?
		ORDER BY completion_date ASC
		LIMIT 1
	`, goalID)
	return scanCompletion(row)
}

func (r *CompletionRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM goal_completions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("completion delete: %w", err)
	}
	return nil
}

// CountDailyOnDay counts completions of DAILY goals recorded for day.
func (r *CompletionRepo) CountDailyOnDay(ctx context.Context, day string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM goal_completions c
		JOIN goals g ON g.id = c.goal_id
		WHERE c.completion_date = ? AND g.goal_type = 'DAILY'
	`, day)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("completion count: %w", err)
	}
	return n, nil
}

func scanCompletion(row scanner) (*GoalCompletion, error) {
	var gc GoalCompletion
	if err := row.Scan(&gc.ID, &gc.GoalID, &gc.CompletionDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("completion scan: %w", err)
	}
	return &gc, nil
}
