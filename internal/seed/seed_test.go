package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSeed(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(s.Skills) != 2 {
		t.Fatalf("skills=%d, want 2", len(s.Skills))
	}
	if s.Skills[0].Name != "Reading books" || s.Skills[0].XPPerUnit != 10 {
		t.Fatalf("first skill=%+v", s.Skills[0])
	}
	if len(s.Achievements) != 2 {
		t.Fatalf("character achievements=%d, want 2", len(s.Achievements))
	}
	if len(s.Loot) != 5 {
		t.Fatalf("loot=%d, want 5", len(s.Loot))
	}
	d, err := s.Loot[0].ChanceDecimal()
	if err != nil {
		t.Fatalf("ChanceDecimal: %v", err)
	}
	if d.StringFixed(2) != "69.45" {
		t.Fatalf("chance=%s, want 69.45", d.StringFixed(2))
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte("skills:\n  - name: Run\n    colour: red\n"))
	if err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestParseValidates(t *testing.T) {
	cases := map[string]string{
		"negative xp":    "skills:\n  - name: Run\n    xp_per_unit: -1\n",
		"empty name":     "skills:\n  - name: \"\"\n",
		"level zero":     "achievements:\n  - level: 0\n    description: x\n",
		"chance too big": "loot:\n  - name: Cake\n    chance: \"100.5\"\n",
		"bad chance":     "loot:\n  - name: Cake\n    chance: lots\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseEmptyDocument(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s.Skills) != 0 || len(s.Loot) != 0 {
		t.Fatalf("expected empty seed, got %+v", s)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	doc := "skills:\n  - name: Guitar\n    unit: minute\n    xp_per_unit: 2\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Skills) != 1 || s.Skills[0].Unit != "minute" {
		t.Fatalf("skills=%+v", s.Skills)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read seed") {
		t.Fatalf("err=%v, want read seed error", err)
	}
}
