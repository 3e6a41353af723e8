package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS characters (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			current_xp INTEGER NOT NULL DEFAULT 0,
			pity_counter INTEGER NOT NULL DEFAULT 0,
			last_lootbox_date TEXT,
			daily_reset_time TEXT NOT NULL DEFAULT '03:00'
		);`,
		`CREATE TABLE IF NOT EXISTS skills (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			character_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			unit_description TEXT NOT NULL DEFAULT 'unit of progress',
			xp_per_unit INTEGER NOT NULL DEFAULT 10,
			level INTEGER NOT NULL DEFAULT 1,
			current_xp INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY(character_id) REFERENCES characters(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS goals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			skill_id INTEGER NOT NULL,
			description TEXT NOT NULL,
			goal_type TEXT NOT NULL DEFAULT 'DAILY',
			xp_reward INTEGER NOT NULL DEFAULT 25 CHECK (xp_reward >= 0),
			FOREIGN KEY(skill_id) REFERENCES skills(id) ON DELETE CASCADE
		);`,
		// One row per goal per user day; one-time goals hold at most one row.
		`CREATE TABLE IF NOT EXISTS goal_completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			goal_id INTEGER NOT NULL,
			completion_date TEXT NOT NULL,
			UNIQUE(goal_id, completion_date),
			FOREIGN KEY(goal_id) REFERENCES goals(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS goal_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id TEXT NOT NULL,
			goal_description TEXT NOT NULL,
			skill_name TEXT NOT NULL,
			skill_id INTEGER,
			xp_amount INTEGER NOT NULL,
			goal_type TEXT,
			action TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			skill_id INTEGER,
			character_id INTEGER,
			required_level INTEGER NOT NULL,
			description TEXT NOT NULL,
			claimed_at INTEGER,
			FOREIGN KEY(skill_id) REFERENCES skills(id) ON DELETE CASCADE,
			FOREIGN KEY(character_id) REFERENCES characters(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			skill_id INTEGER NOT NULL,
			text TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			FOREIGN KEY(skill_id) REFERENCES skills(id) ON DELETE CASCADE
		);`,
		// base_chance is a decimal string with two places.
		`CREATE TABLE IF NOT EXISTS loot_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			rarity TEXT NOT NULL DEFAULT 'COMMON',
			base_chance TEXT NOT NULL DEFAULT '0',
			received_at INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS received_rewards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			description TEXT NOT NULL,
			source_name TEXT NOT NULL,
			received_at INTEGER NOT NULL,
			rarity TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_skills_character_id ON skills(character_id);`,
		`CREATE INDEX IF NOT EXISTS idx_goals_skill_id ON goals(skill_id);`,
		`CREATE INDEX IF NOT EXISTS idx_goal_history_skill_id ON goal_history(skill_id);`,
		`CREATE INDEX IF NOT EXISTS idx_goal_completions_date ON goal_completions(completion_date);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE characters ADD COLUMN pity_counter INTEGER NOT NULL DEFAULT 0;`,
		`ALTER TABLE characters ADD COLUMN last_lootbox_date TEXT;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
