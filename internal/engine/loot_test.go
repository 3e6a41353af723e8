package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func chanceSum(items []LootChance) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Chance)
	}
	return sum
}

func TestRecalculateSingleItem(t *testing.T) {
	out := RecalculateChances([]LootChance{{ID: 1, Chance: dec("10")}}, nil)
	if !out[0].Chance.Equal(hundred) {
		t.Fatalf("chance=%s, want 100", out[0].Chance)
	}
}

func TestRecalculateAllZeroSplitsEqually(t *testing.T) {
	out := RecalculateChances([]LootChance{{ID: 1}, {ID: 2}}, nil)
	for _, it := range out {
		if !it.Chance.Equal(dec("50")) {
			t.Fatalf("item %d chance=%s, want 50", it.ID, it.Chance)
		}
	}
}

func TestRecalculateWithFixed(t *testing.T) {
	items := []LootChance{{ID: 1}, {ID: 2}, {ID: 3}}
	out := RecalculateChances(items, &Fixed{ID: 3, Chance: dec("40")})
	want := map[int64]string{1: "30", 2: "30", 3: "40"}
	for _, it := range out {
		if !it.Chance.Equal(dec(want[it.ID])) {
			t.Fatalf("item %d chance=%s, want %s", it.ID, it.Chance, want[it.ID])
		}
	}
	if items[0].Chance.Sign() != 0 {
		t.Fatalf("input slice was modified")
	}
}

func TestRecalculateProportional(t *testing.T) {
	out := RecalculateChances([]LootChance{{ID: 1, Chance: dec("30")}, {ID: 2, Chance: dec("10")}}, nil)
	if !out[0].Chance.Equal(dec("75")) || !out[1].Chance.Equal(dec("25")) {
		t.Fatalf("chances=%s,%s want 75,25", out[0].Chance, out[1].Chance)
	}
}

func TestRecalculateSumsToHundred(t *testing.T) {
	items := []LootChance{
		{ID: 1, Chance: dec("69.45")},
		{ID: 2, Chance: dec("19.65")},
		{ID: 3, Chance: dec("5.20")},
		{ID: 4, Chance: dec("4.05")},
		{ID: 5, Chance: dec("1.65")},
		{ID: 6, Chance: dec("10")},
	}
	out := RecalculateChances(items, &Fixed{ID: 6, Chance: dec("10")})
	if !chanceSum(out).Equal(hundred) {
		t.Fatalf("sum=%s, want 100", chanceSum(out))
	}
	for _, it := range out {
		if it.Chance.IsNegative() || !it.Chance.Equal(it.Chance.Round(2)) {
			t.Fatalf("item %d chance=%s not a 2dp non-negative value", it.ID, it.Chance)
		}
	}

	thirds := RecalculateChances([]LootChance{{ID: 1}, {ID: 2}, {ID: 3}}, nil)
	if !chanceSum(thirds).Equal(hundred) {
		t.Fatalf("thirds sum=%s, want 100", chanceSum(thirds))
	}
	if !thirds[2].Chance.Equal(dec("33.34")) {
		t.Fatalf("last third=%s, want 33.34", thirds[2].Chance)
	}
}

func TestRecalculateFixedOverHundredClamps(t *testing.T) {
	out := RecalculateChances([]LootChance{{ID: 1, Chance: dec("5")}, {ID: 2}}, &Fixed{ID: 2, Chance: dec("150")})
	if !out[0].Chance.IsZero() || !out[1].Chance.Equal(hundred) {
		t.Fatalf("chances=%s,%s want 0,100", out[0].Chance, out[1].Chance)
	}
}
