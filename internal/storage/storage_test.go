package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "rpglife.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestLootChanceRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewLootRepo(openTestDB(t))

	id, err := repo.Insert(ctx, "Pizza", "COMMON", decimal.RequireFromString("69.45"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.UpdateChance(ctx, id, decimal.RequireFromString("33.333")); err != nil {
		t.Fatalf("update chance: %v", err)
	}
	item, err := repo.Get(ctx, id)
	if err != nil || item == nil {
		t.Fatalf("get: %v", err)
	}
	if !item.BaseChance.Equal(decimal.RequireFromString("33.33")) {
		t.Fatalf("expected 33.33, got %s", item.BaseChance)
	}

	missing, err := repo.Get(ctx, id+100)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing item, got %+v, %v", missing, err)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	boom := errors.New("boom")

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := NewCharacterRepo(tx).Insert(ctx, "Ghost", "03:00"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	c, err := NewCharacterRepo(db).Main(ctx)
	if err != nil {
		t.Fatalf("main: %v", err)
	}
	if c != nil {
		t.Fatalf("expected rollback, found %+v", c)
	}
}

func TestDeleteSkillCascadesButKeepsHistory(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	charID, err := NewCharacterRepo(db).Insert(ctx, "Hero", "03:00")
	if err != nil {
		t.Fatalf("character: %v", err)
	}
	skillID, err := NewSkillRepo(db).Insert(ctx, SkillInsert{CharacterID: charID, Name: "Reading", UnitDescription: "page", XPPerUnit: 10})
	if err != nil {
		t.Fatalf("skill: %v", err)
	}
	goalID, err := NewGoalRepo(db).Insert(ctx, GoalInsert{SkillID: skillID, Description: "Read", GoalType: "DAILY", XPReward: 25})
	if err != nil {
		t.Fatalf("goal: %v", err)
	}
	if _, err := NewHistoryRepo(db).Insert(ctx, HistoryEntry{
		EventID: "e1", GoalDescription: "Read", SkillName: "Reading", SkillID: &skillID,
		XPAmount: 25, Action: "COMPLETED", Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("history: %v", err)
	}

	if err := NewSkillRepo(db).Delete(ctx, skillID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	g, err := NewGoalRepo(db).Get(ctx, goalID)
	if err != nil {
		t.Fatalf("get goal: %v", err)
	}
	if g != nil {
		t.Fatalf("expected goal removed with its skill")
	}
	entries, err := NewHistoryRepo(db).List(ctx, nil, 10)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(entries) != 1 || entries[0].SkillName != "Reading" {
		t.Fatalf("expected history kept, got %+v", entries)
	}
	if !entries[0].Timestamp.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("timestamp round trip: %v", entries[0].Timestamp)
	}
}
