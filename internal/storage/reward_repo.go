package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type RewardRepo struct {
	db DBTX
}

func NewRewardRepo(db DBTX) *RewardRepo {
	return &RewardRepo{db: db}
}

func (r *RewardRepo) Insert(ctx context.Context, rw Reward) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO received_rewards (description, source_name, received_at, rarity)
		VALUES (?, ?, ?, ?)
	`, rw.Description, rw.SourceName, toMillis(rw.ReceivedAt), rw.Rarity)
	if err != nil {
		return 0, fmt.Errorf("reward insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reward last insert id: %w", err)
	}
	return id, nil
}

// List returns rewards newest first.
func (r *RewardRepo) List(ctx context.Context) ([]Reward, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, source_name, received_at, rarity
		FROM received_rewards
		ORDER BY received_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("reward list: %w", err)
	}
	defer rows.Close()

	var out []Reward
	for rows.Next() {
		var (
			rw     Reward
			ts     int64
			rarity sql.NullString
		)
		if err := rows.Scan(&rw.ID, &rw.Description, &rw.SourceName, &ts, &rarity); err != nil {
			return nil, fmt.Errorf("reward scan: %w", err)
		}
		rw.ReceivedAt = fromMillis(ts)
		rw.Rarity = stringPtr(rarity)
		out = append(out, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reward rows: %w", err)
	}
	return out, nil
}
