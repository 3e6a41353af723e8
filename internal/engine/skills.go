package engine

import (
	"context"

	"rpglife/internal/storage"
)

type SkillInput struct {
	Name            string
	UnitDescription string
	// XPPerUnit nil means DefaultXPPerUnit.
	XPPerUnit *int
}

// SkillUpdate changes the non-nil fields of a skill. The ledger is never edited
// directly.
type SkillUpdate struct {
	Name            *string
	UnitDescription *string
	XPPerUnit       *int
}

func validateXPPerUnit(v int) error {
	if v < 0 {
		return invalidf("xp per unit must not be negative, got %d", v)
	}
	return nil
}

// CreateSkill adds a skill at level 1 with no XP.
func (s *Service) CreateSkill(ctx context.Context, in SkillInput) (FullSnapshot, error) {
	name, err := normalizeText("name", in.Name)
	if err != nil {
		return FullSnapshot{}, err
	}
	unit := in.UnitDescription
	if unit == "" {
		unit = DefaultUnitDescription
	}
	xp := DefaultXPPerUnit
	if in.XPPerUnit != nil {
		xp = *in.XPPerUnit
	}
	if err := validateXPPerUnit(xp); err != nil {
		return FullSnapshot{}, err
	}

	var out FullSnapshot
	err = s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		if _, err := r.skills.Insert(ctx, storage.SkillInsert{
			CharacterID:     c.ID,
			Name:            name,
			UnitDescription: unit,
			XPPerUnit:       xp,
		}); err != nil {
			return err
		}
		out, err = s.fullSnapshot(ctx, r, c)
		return err
	})
	return out, err
}

func (s *Service) UpdateSkill(ctx context.Context, id int64, in SkillUpdate) (FullSnapshot, error) {
	var out FullSnapshot
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		sk, err := ownedSkill(ctx, r, c, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			name, err := normalizeText("name", *in.Name)
			if err != nil {
				return err
			}
			sk.Name = name
		}
		if in.UnitDescription != nil {
			unit, err := normalizeText("unit description", *in.UnitDescription)
			if err != nil {
				return err
			}
			sk.UnitDescription = unit
		}
		if in.XPPerUnit != nil {
			if err := validateXPPerUnit(*in.XPPerUnit); err != nil {
				return err
			}
			sk.XPPerUnit = *in.XPPerUnit
		}
		if err := r.skills.UpdateDetails(ctx, sk); err != nil {
			return err
		}
		out, err = s.fullSnapshot(ctx, r, c)
		return err
	})
	return out, err
}

// DeleteSkill removes a skill with its goals, notes and achievements. Character XP
// earned through the skill is kept.
func (s *Service) DeleteSkill(ctx context.Context, id int64) (FullSnapshot, error) {
	var out FullSnapshot
	err := s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		if _, err := ownedSkill(ctx, r, c, id); err != nil {
			return err
		}
		if err := r.skills.Delete(ctx, id); err != nil {
			return err
		}
		out, err = s.fullSnapshot(ctx, r, c)
		return err
	})
	if err == nil {
		s.log.Info("skill deleted", "skill", id)
	}
	return out, err
}

func (s *Service) AddNote(ctx context.Context, skillID int64, text string) (SkillPatch, error) {
	text, err := normalizeText("note text", text)
	if err != nil {
		return SkillPatch{}, err
	}
	var out SkillPatch
	err = s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		if _, err := ownedSkill(ctx, r, c, skillID); err != nil {
			return err
		}
		if _, err := r.notes.Insert(ctx, skillID, text, s.now().UTC()); err != nil {
			return err
		}
		out, err = s.skillPatch(ctx, r, c, skillID)
		return err
	})
	return out, err
}

func (s *Service) UpdateNote(ctx context.Context, id int64, text string) (SkillPatch, error) {
	text, err := normalizeText("note text", text)
	if err != nil {
		return SkillPatch{}, err
	}
	var out SkillPatch
	err = s.withNote(ctx, id, func(r repos, c *storage.Character, n *storage.Note) error {
		if err := r.notes.UpdateText(ctx, n.ID, text); err != nil {
			return err
		}
		p, err := s.skillPatch(ctx, r, c, n.SkillID)
		out = p
		return err
	})
	return out, err
}

func (s *Service) DeleteNote(ctx context.Context, id int64) (SkillPatch, error) {
	var out SkillPatch
	err := s.withNote(ctx, id, func(r repos, c *storage.Character, n *storage.Note) error {
		if err := r.notes.Delete(ctx, n.ID); err != nil {
			return err
		}
		var err error
		out, err = s.skillPatch(ctx, r, c, n.SkillID)
		return err
	})
	return out, err
}

// withNote loads a note owned by the character and runs fn in the same transaction.
func (s *Service) withNote(ctx context.Context, id int64, fn func(r repos, c *storage.Character, n *storage.Note) error) error {
	return s.inTx(ctx, func(r repos) error {
		c, err := s.mainCharacter(ctx, r)
		if err != nil {
			return err
		}
		n, err := r.notes.Get(ctx, id)
		if err != nil {
			return err
		}
		if n == nil {
			return NotFoundError{Kind: "note", ID: id}
		}
		if _, err := ownedSkill(ctx, r, c, n.SkillID); err != nil {
			return NotFoundError{Kind: "note", ID: id}
		}
		return fn(r, c, n)
	})
}
