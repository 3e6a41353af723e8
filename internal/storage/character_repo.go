package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type CharacterRepo struct {
	db DBTX
}

func NewCharacterRepo(db DBTX) *CharacterRepo {
	return &CharacterRepo{db: db}
}

const characterColumns = `id, name, level, current_xp, pity_counter, last_lootbox_date, daily_reset_time`

// Main returns the single local character, or nil when none exists yet.
func (r *CharacterRepo) Main(ctx context.Context) (*Character, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+characterColumns+` FROM characters ORDER BY id ASC LIMIT 1`)
	return scanCharacter(row)
}

func (r *CharacterRepo) Get(ctx context.Context, id int64) (*Character, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+characterColumns+` FROM characters WHERE id = ?`, id)
	return scanCharacter(row)
}

func (r *CharacterRepo) Insert(ctx context.Context, name string, resetTime string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO characters (name, daily_reset_time) VALUES (?, ?)`, name, resetTime)
	if err != nil {
		return 0, fmt.Errorf("character insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("character last insert id: %w", err)
	}
	return id, nil
}

func (r *CharacterRepo) Update(ctx context.Context, c *Character) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE characters
		SET name = ?, level = ?, current_xp = ?, pity_counter = ?, last_lootbox_date = ?, daily_reset_time = ?
		WHERE id = ?
	`, c.Name, c.Level, c.CurrentXP, c.PityCounter, c.LastLootboxDate, c.DailyResetTime, c.ID)
	if err != nil {
		return fmt.Errorf("character update: %w", err)
	}
	return nil
}

func scanCharacter(row scanner) (*Character, error) {
	var (
		c           Character
		lastLootbox sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Level, &c.CurrentXP, &c.PityCounter, &lastLootbox, &c.DailyResetTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("character scan: %w", err)
	}
	c.LastLootboxDate = stringPtr(lastLootbox)
	return &c, nil
}
