package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type AchievementRepo struct {
	db DBTX
}

func NewAchievementRepo(db DBTX) *AchievementRepo {
	return &AchievementRepo{db: db}
}

const achievementColumns = `id, skill_id, character_id, required_level, description, claimed_at`

func (r *AchievementRepo) Insert(ctx context.Context, a Achievement) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO achievements (skill_id, character_id, required_level, description, claimed_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.SkillID, a.CharacterID, a.RequiredLevel, a.Description, nullMillis(a.ClaimedAt))
	if err != nil {
		return 0, fmt.Errorf("achievement insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("achievement last insert id: %w", err)
	}
	return id, nil
}

func (r *AchievementRepo) Get(ctx context.Context, id int64) (*Achievement, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+achievementColumns+` FROM achievements WHERE id = ?`, id)
	a, err := scanAchievement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (r *AchievementRepo) ListByCharacter(ctx context.Context, characterID int64) ([]Achievement, error) {
	return r.list(ctx, `WHERE character_id = ?`, characterID)
}

func (r *AchievementRepo) ListBySkill(ctx context.Context, skillID int64) ([]Achievement, error) {
	return r.list(ctx, `WHERE skill_id = ?`, skillID)
}

// UnclaimedForCharacter returns unclaimed character achievements at or below level.
func (r *AchievementRepo) UnclaimedForCharacter(ctx context.Context, characterID int64, level int) ([]Achievement, error) {
	return r.list(ctx, `WHERE character_id = ? AND claimed_at IS NULL AND required_level <= ?`, characterID, level)
}

// UnclaimedForSkill returns unclaimed skill achievements at or below level.
func (r *AchievementRepo) UnclaimedForSkill(ctx context.Context, skillID int64, level int) ([]Achievement, error) {
	return r.list(ctx, `WHERE skill_id = ? AND claimed_at IS NULL AND required_level <= ?`, skillID, level)
}

func (r *AchievementRepo) MarkClaimed(ctx context.Context, id int64, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE achievements SET claimed_at = ? WHERE id = ?`, toMillis(at), id); err != nil {
		return fmt.Errorf("achievement claim: %w", err)
	}
	return nil
}

func (r *AchievementRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM achievements WHERE id = ?`, id); err != nil {
		return fmt.Errorf("achievement delete: %w", err)
	}
	return nil
}

func (r *AchievementRepo) list(ctx context.Context, where string, args ...any) ([]Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+achievementColumns+` FROM achievements `+where+` ORDER BY required_level ASC, id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("achievement list: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement rows: %w", err)
	}
	return out, nil
}

func scanAchievement(row scanner) (*Achievement, error) {
	var (
		a         Achievement
		skill     sql.NullInt64
		character sql.NullInt64
		claimed   sql.NullInt64
	)
	if err := row.Scan(&a.ID, &skill, &character, &a.RequiredLevel, &a.Description, &claimed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("achievement scan: %w", err)
	}
	a.SkillID = int64Ptr(skill)
	a.CharacterID = int64Ptr(character)
	a.ClaimedAt = timePtr(claimed)
	return &a, nil
}
