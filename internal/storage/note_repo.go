package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type NoteRepo struct {
	db DBTX
}

func NewNoteRepo(db DBTX) *NoteRepo {
	return &NoteRepo{db: db}
}

func (r *NoteRepo) Insert(ctx context.Context, skillID int64, text string, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO notes (skill_id, text, created_at) VALUES (?, ?, ?)`, skillID, text, toMillis(at))
	if err != nil {
		return 0, fmt.Errorf("note insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("note last insert id: %w", err)
	}
	return id, nil
}

func (r *NoteRepo) Get(ctx context.Context, id int64) (*Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, skill_id, text, created_at FROM notes WHERE id = ?`, id)
	var (
		n  Note
		ts int64
	)
	if err := row.Scan(&n.ID, &n.SkillID, &n.Text, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("note get: %w", err)
	}
	n.CreatedAt = fromMillis(ts)
	return &n, nil
}

func (r *NoteRepo) ListBySkill(ctx context.Context, skillID int64) ([]Note, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, skill_id, text, created_at FROM notes WHERE skill_id = ? ORDER BY created_at DESC, id DESC`, skillID)
	if err != nil {
		return nil, fmt.Errorf("note list: %w", err)
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		var (
			n  Note
			ts int64
		)
		if err := rows.Scan(&n.ID, &n.SkillID, &n.Text, &ts); err != nil {
			return nil, fmt.Errorf("note scan: %w", err)
		}
		n.CreatedAt = fromMillis(ts)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("note rows: %w", err)
	}
	return out, nil
}

func (r *NoteRepo) UpdateText(ctx context.Context, id int64, text string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE notes SET text = ? WHERE id = ?`, text, id); err != nil {
		return fmt.Errorf("note update: %w", err)
	}
	return nil
}

func (r *NoteRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("note delete: %w", err)
	}
	return nil
}
