package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type GoalRepo struct {
	db DBTX
}

func NewGoalRepo(db DBTX) *GoalRepo {
	return &GoalRepo{db: db}
}

type GoalInsert struct {
	SkillID     int64
	Description string
	GoalType    string
	XPReward    int
}

const goalColumns = `id, skill_id, description, goal_type, xp_reward`

func (r *GoalRepo) Insert(ctx context.Context, in GoalInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (skill_id, description, goal_type, xp_reward)
		VALUES (?, ?, ?, ?)
	`, in.SkillID, in.Description, in.GoalType, in.XPReward)
	if err != nil {
		return 0, fmt.Errorf("goal insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("goal last insert id: %w", err)
	}
	return id, nil
}

func (r *GoalRepo) Get(ctx context.Context, id int64) (*Goal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	var g Goal
	if err := row.Scan(&g.ID, &g.SkillID, &g.Description, &g.GoalType, &g.XPReward); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("goal get: %w", err)
	}
	return &g, nil
}

func (r *GoalRepo) ListBySkill(ctx context.Context, skillID int64) ([]Goal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE skill_id = ? ORDER BY id ASC`, skillID)
	if err != nil {
		return nil, fmt.Errorf("goal list: %w", err)
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.SkillID, &g.Description, &g.GoalType, &g.XPReward); err != nil {
			return nil, fmt.Errorf("goal scan: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("goal rows: %w", err)
	}
	return out, nil
}

func (r *GoalRepo) Update(ctx context.Context, g *Goal) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE goals SET description = ?, goal_type = ?, xp_reward = ? WHERE id = ?
	`, g.Description, g.GoalType, g.XPReward, g.ID)
	if err != nil {
		return fmt.Errorf("goal update: %w", err)
	}
	return nil
}

func (r *GoalRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("goal delete: %w", err)
	}
	return nil
}
