package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SkillRepo struct {
	db DBTX
}

func NewSkillRepo(db DBTX) *SkillRepo {
	return &SkillRepo{db: db}
}

type SkillInsert struct {
	CharacterID     int64
	Name            string
	UnitDescription string
	XPPerUnit       int
}

const skillColumns = `id, character_id, name, unit_description, xp_per_unit, level, current_xp`

func (r *SkillRepo) Insert(ctx context.Context, in SkillInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO skills (character_id, name, unit_description, xp_per_unit)
		VALUES (?, ?, ?, ?)
	`, in.CharacterID, in.Name, in.UnitDescription, in.XPPerUnit)
	if err != nil {
		return 0, fmt.Errorf("skill insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("skill last insert id: %w", err)
	}
	return id, nil
}

func (r *SkillRepo) Get(ctx context.Context, id int64) (*Skill, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = ?`, id)
	s, err := scanSkill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *SkillRepo) ListByCharacter(ctx context.Context, characterID int64) ([]Skill, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+skillColumns+` FROM skills WHERE character_id = ? ORDER BY id ASC`, characterID)
	if err != nil {
		return nil, fmt.Errorf("skill list: %w", err)
	}
	defer rows.Close()

	var out []Skill
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("skill rows: %w", err)
	}
	return out, nil
}

// UpdateDetails changes the user-editable fields; the ledger is left untouched.
func (r *SkillRepo) UpdateDetails(ctx context.Context, s *Skill) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE skills SET name = ?, unit_description = ?, xp_per_unit = ? WHERE id = ?
	`, s.Name, s.UnitDescription, s.XPPerUnit, s.ID)
	if err != nil {
		return fmt.Errorf("skill update: %w", err)
	}
	return nil
}

func (r *SkillRepo) UpdateLedger(ctx context.Context, id int64, level int, currentXP int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE skills SET level = ?, current_xp = ? WHERE id = ?`, level, currentXP, id)
	if err != nil {
		return fmt.Errorf("skill update ledger: %w", err)
	}
	return nil
}

func (r *SkillRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = ?`, id); err != nil {
		return fmt.Errorf("skill delete: %w", err)
	}
	return nil
}

func scanSkill(row scanner) (*Skill, error) {
	var s Skill
	if err := row.Scan(&s.ID, &s.CharacterID, &s.Name, &s.UnitDescription, &s.XPPerUnit, &s.Level, &s.CurrentXP); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("skill scan: %w", err)
	}
	return &s, nil
}
