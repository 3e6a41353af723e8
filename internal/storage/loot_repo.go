package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type LootRepo struct {
	db DBTX
}

func NewLootRepo(db DBTX) *LootRepo {
	return &LootRepo{db: db}
}

const lootColumns = `id, name, rarity, base_chance, received_at`

func (r *LootRepo) Insert(ctx context.Context, name string, rarity string, chance decimal.Decimal) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO loot_items (name, rarity, base_chance) VALUES (?, ?, ?)
	`, name, rarity, chance.StringFixed(2))
	if err != nil {
		return 0, fmt.Errorf("loot insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("loot last insert id: %w", err)
	}
	return id, nil
}

func (r *LootRepo) Get(ctx context.Context, id int64) (*LootItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+lootColumns+` FROM loot_items WHERE id = ?`, id)
	item, err := scanLoot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

func (r *LootRepo) ListAll(ctx context.Context) ([]LootItem, error) {
	return r.list(ctx, ``)
}

// ListAvailable returns items that have not been received yet.
func (r *LootRepo) ListAvailable(ctx context.Context) ([]LootItem, error) {
	return r.list(ctx, `WHERE received_at IS NULL`)
}

func (r *LootRepo) Update(ctx context.Context, item *LootItem) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE loot_items SET name = ?, rarity = ?, base_chance = ?, received_at = ? WHERE id = ?
	`, item.Name, item.Rarity, item.BaseChance.StringFixed(2), nullMillis(item.ReceivedAt), item.ID)
	if err != nil {
		return fmt.Errorf("loot update: %w", err)
	}
	return nil
}

func (r *LootRepo) UpdateChance(ctx context.Context, id int64, chance decimal.Decimal) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE loot_items SET base_chance = ? WHERE id = ?`, chance.StringFixed(2), id); err != nil {
		return fmt.Errorf("loot update chance: %w", err)
	}
	return nil
}

func (r *LootRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM loot_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("loot delete: %w", err)
	}
	return nil
}

func (r *LootRepo) list(ctx context.Context, where string) ([]LootItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+lootColumns+` FROM loot_items `+where+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("loot list: %w", err)
	}
	defer rows.Close()

	var out []LootItem
	for rows.Next() {
		item, err := scanLoot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loot rows: %w", err)
	}
	return out, nil
}

func scanLoot(row scanner) (*LootItem, error) {
	var (
		item     LootItem
		chance   string
		received sql.NullInt64
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Rarity, &chance, &received); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("loot scan: %w", err)
	}
	d, err := decimal.NewFromString(chance)
	if err != nil {
		return nil, fmt.Errorf("loot chance %q: %w", chance, err)
	}
	item.BaseChance = d
	item.ReceivedAt = timePtr(received)
	return &item, nil
}
