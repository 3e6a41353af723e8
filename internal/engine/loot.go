package engine

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rpglife/internal/storage"
)

var hundred = decimal.NewFromInt(100)

type LootItemSnapshot struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Rarity       Rarity          `json:"rarity"`
	BaseChance   decimal.Decimal `json:"base_chance"`
	ReceivedDate *time.Time      `json:"received_date"`
}

// LootUpdate changes the non-nil fields of a loot item. A new chance is pinned and
// the other available items are rescaled around it.
type LootUpdate struct {
	Name   *string
	Rarity *Rarity
	Chance *decimal.Decimal
}

// LootChance is one entry of a chance table.
type LootChance struct {
	ID     int64
	Chance decimal.Decimal
}

// Fixed pins one entry of a chance table to a value.
type Fixed struct {
	ID     int64
	Chance decimal.Decimal
}

// RecalculateChances rescales chances so that they sum to exactly 100 with two
// decimal places. A fixed entry keeps its (clamped) chance and the others share the
// remainder in proportion to their current chances, or equally when they are all
// zero. Rounding drift goes to the fixed entry, or to the last one when nothing is
// fixed.
func RecalculateChances(items []LootChance, fixed *Fixed) []LootChance {
	out := append([]LootChance(nil), items...)
	switch len(out) {
	case 0:
		return out
	case 1:
		out[0].Chance = hundred
		return out
	}

	fixedIdx := -1
	pinned := decimal.Zero
	if fixed != nil {
		pinned = clampChance(fixed.Chance.Round(2))
		for i := range out {
			if out[i].ID == fixed.ID {
				fixedIdx = i
				out[i].Chance = pinned
				break
			}
		}
		if fixedIdx < 0 {
			pinned = decimal.Zero
		}
	}

	others := make([]int, 0, len(out))
	total := decimal.Zero
	for i := range out {
		if i == fixedIdx {
			continue
		}
		others = append(others, i)
		total = total.Add(out[i].Chance)
	}
	if len(others) == 0 {
		out[fixedIdx].Chance = hundred
		return out
	}

	remaining := hundred.Sub(pinned)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	if total.GreaterThan(decimal.NewFromFloat(0.001)) {
		factor := remaining.Div(total)
		for _, i := range others {
			out[i].Chance = out[i].Chance.Mul(factor)
		}
	} else {
		equal := remaining.Div(decimal.NewFromInt(int64(len(others))))
		for _, i := range others {
			out[i].Chance = equal
		}
	}

	last := others[len(others)-1]
	if fixedIdx >= 0 {
		last = fixedIdx
	}
	sum := decimal.Zero
	for i := range out {
		if i == last {
			continue
		}
		out[i].Chance = clampChance(out[i].Chance.Round(2))
		sum = sum.Add(out[i].Chance)
	}
	out[last].Chance = clampChance(hundred.Sub(sum))
	return out
}

func clampChance(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}

func validateChance(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return invalidf("chance must be between 0 and 100, got %s", d.String())
	}
	return nil
}

// recalculateLoot rewrites the chances of every available loot item.
func recalculateLoot(ctx context.Context, r repos, fixed *Fixed) error {
	items, err := r.loot.ListAvailable(ctx)
	if err != nil {
		return err
	}
	table := make([]LootChance, 0, len(items))
	for _, it := range items {
		table = append(table, LootChance{ID: it.ID, Chance: it.BaseChance})
	}
	for _, lc := range RecalculateChances(table, fixed) {
		if err := r.loot.UpdateChance(ctx, lc.ID, lc.Chance); err != nil {
			return err
		}
	}
	return nil
}

// AddLootItem adds an item and pins its chance, rescaling the rest.
func (s *Service) AddLootItem(ctx context.Context, name string, rarity Rarity, chance decimal.Decimal) ([]LootItemSnapshot, error) {
	name, err := normalizeText("name", name)
	if err != nil {
		return nil, err
	}
	if rarity == "" {
		rarity = RarityCommon
	}
	if !rarity.IsValid() {
		return nil, invalidf("unknown rarity %q", rarity)
	}
	if err := validateChance(chance); err != nil {
		return nil, err
	}
	var out []LootItemSnapshot
	err = s.inTx(ctx, func(r repos) error {
		id, err := r.loot.Insert(ctx, name, string(rarity), chance)
		if err != nil {
			return err
		}
		if err := recalculateLoot(ctx, r, &Fixed{ID: id, Chance: chance}); err != nil {
			return err
		}
		out, err = listLoot(ctx, r)
		return err
	})
	return out, err
}

func (s *Service) UpdateLootItem(ctx context.Context, id int64, in LootUpdate) ([]LootItemSnapshot, error) {
	var out []LootItemSnapshot
	err := s.inTx(ctx, func(r repos) error {
		item, err := r.loot.Get(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return NotFoundError{Kind: "loot item", ID: id}
		}
		if in.Name != nil {
			name, err := normalizeText("name", *in.Name)
			if err != nil {
				return err
			}
			item.Name = name
		}
		if in.Rarity != nil {
			if !in.Rarity.IsValid() {
				return invalidf("unknown rarity %q", *in.Rarity)
			}
			item.Rarity = string(*in.Rarity)
		}
		if in.Chance != nil {
			if err := validateChance(*in.Chance); err != nil {
				return err
			}
			item.BaseChance = *in.Chance
		}
		if err := r.loot.Update(ctx, item); err != nil {
			return err
		}
		if in.Chance != nil && item.ReceivedAt == nil {
			if err := recalculateLoot(ctx, r, &Fixed{ID: item.ID, Chance: item.BaseChance}); err != nil {
				return err
			}
		}
		out, err = listLoot(ctx, r)
		return err
	})
	return out, err
}

// DeleteLootItem removes an item and spreads its chance over the remaining ones.
func (s *Service) DeleteLootItem(ctx context.Context, id int64) ([]LootItemSnapshot, error) {
	var out []LootItemSnapshot
	err := s.inTx(ctx, func(r repos) error {
		item, err := r.loot.Get(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return NotFoundError{Kind: "loot item", ID: id}
		}
		if err := r.loot.Delete(ctx, id); err != nil {
			return err
		}
		if err := recalculateLoot(ctx, r, nil); err != nil {
			return err
		}
		out, err = listLoot(ctx, r)
		return err
	})
	return out, err
}

func (s *Service) ListLootItems(ctx context.Context) ([]LootItemSnapshot, error) {
	return listLoot(ctx, s.read())
}

func listLoot(ctx context.Context, r repos) ([]LootItemSnapshot, error) {
	items, err := r.loot.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LootItemSnapshot, 0, len(items))
	for _, it := range items {
		out = append(out, lootSnapshot(it))
	}
	return out, nil
}

func lootSnapshot(it storage.LootItem) LootItemSnapshot {
	return LootItemSnapshot{
		ID:           it.ID,
		Name:         it.Name,
		Rarity:       Rarity(it.Rarity),
		BaseChance:   it.BaseChance,
		ReceivedDate: it.ReceivedAt,
	}
}

type LootboxStatus struct {
	Day              string `json:"day"`
	CompletedDailies int    `json:"completed_dailies"`
	RequiredDailies  int    `json:"required_dailies"`
	OpenedToday      bool   `json:"is_opened_today"`
	AvailableItems   int    `json:"available_items"`
	CanOpen          bool   `json:"can_open"`
}

// Err explains why the lootbox is locked, or returns nil when it can be opened.
func (st LootboxStatus) Err() error {
	if st.CanOpen {
		return nil
	}
	if st.AvailableItems == 0 && !st.OpenedToday && st.CompletedDailies >= st.RequiredDailies {
		return invalidf("no loot items left")
	}
	return LootboxLockedError{
		CompletedDailies: st.CompletedDailies,
		RequiredDailies:  st.RequiredDailies,
		OpenedToday:      st.OpenedToday,
	}
}

// LootboxStatus reports progress towards today's lootbox: it unlocks after the
// configured number of daily goal completions, once per user day.
func (s *Service) LootboxStatus(ctx context.Context) (LootboxStatus, error) {
	var out LootboxStatus
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		today := s.today(c)
		done, err := r.completions.CountDailyOnDay(ctx, today)
		if err != nil {
			return err
		}
		avail, err := r.loot.ListAvailable(ctx)
		if err != nil {
			return err
		}
		opened := c.LastLootboxDate != nil && *c.LastLootboxDate == today
		out = LootboxStatus{
			Day:              today,
			CompletedDailies: done,
			RequiredDailies:  s.requiredDailies,
			OpenedToday:      opened,
			AvailableItems:   len(avail),
			CanOpen:          done >= s.requiredDailies && !opened && len(avail) > 0,
		}
		return nil
	})
	return out, err
}
