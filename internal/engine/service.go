package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rpglife/internal/storage"
)

// DefaultRequiredDailies is how many daily goals unlock the lootbox.
const DefaultRequiredDailies = 3

const tracerName = "rpglife/internal/engine"

type Service struct {
	db              *sql.DB
	curves          Curves
	now             func() time.Time
	loc             *time.Location
	requiredDailies int
	log             *slog.Logger
	tracer          trace.Tracer
	newEventID      func() string
}

type Option func(*Service)

// WithCurves overrides the skill and character curves. Nil curves keep the default.
func WithCurves(c Curves) Option {
	return func(s *Service) {
		if c.Skill != nil {
			s.curves.Skill = c.Skill
		}
		if c.Character != nil {
			s.curves.Character = c.Character
		}
	}
}

// WithClock replaces time.Now; tests use it to cross day boundaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the time zone user days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithRequiredDailies(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.requiredDailies = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:              db,
		curves:          DefaultCurves(),
		now:             time.Now,
		loc:             time.UTC,
		requiredDailies: DefaultRequiredDailies,
		log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:          otel.Tracer(tracerName),
		newEventID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Curves() Curves { return s.curves }

// repos groups the storage repos bound to one connection or transaction.
type repos struct {
	characters   *storage.CharacterRepo
	skills       *storage.SkillRepo
	goals        *storage.GoalRepo
	completions  *storage.CompletionRepo
	history      *storage.HistoryRepo
	achievements *storage.AchievementRepo
	notes        *storage.NoteRepo
	loot         *storage.LootRepo
	rewards      *storage.RewardRepo
}

func newRepos(q storage.DBTX) repos {
	return repos{
		characters:   storage.NewCharacterRepo(q),
		skills:       storage.NewSkillRepo(q),
		goals:        storage.NewGoalRepo(q),
		completions:  storage.NewCompletionRepo(q),
		history:      storage.NewHistoryRepo(q),
		achievements: storage.NewAchievementRepo(q),
		notes:        storage.NewNoteRepo(q),
		loot:         storage.NewLootRepo(q),
		rewards:      storage.NewRewardRepo(q),
	}
}

// inTx runs fn with repos bound to one transaction. Nothing inside fn may touch
// s.db directly: the pool holds a single connection.
func (s *Service) inTx(ctx context.Context, fn func(r repos) error) error {
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(newRepos(tx))
	})
	if err != nil && !isDomainError(err) {
		s.log.Error("transaction failed", "error", err)
	}
	return err
}

// isDomainError reports errors caused by the caller's input rather than storage.
func isDomainError(err error) bool {
	var locked LootboxLockedError
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidEvent) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyInitialized) ||
		errors.As(err, &locked)
}

func (s *Service) read() repos { return newRepos(s.db) }

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "engine."+name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

const defaultCharacterName = "Adventurer"

// mainCharacter loads the local character, creating a bare one on first use. A
// stored ledger that is out of range for the configured curve is re-resolved.
func (s *Service) mainCharacter(ctx context.Context, r repos) (*storage.Character, error) {
	c, err := r.characters.Main(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		id, err := r.characters.Insert(ctx, defaultCharacterName, DefaultResetTime.String())
		if err != nil {
			return nil, err
		}
		if c, err = r.characters.Get(ctx, id); err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("character %d vanished after insert", id)
		}
	}
	stored := Ledger{Level: c.Level, XP: c.CurrentXP}
	if resolved := Resolve(stored, 0, s.curves.Character); resolved != stored {
		c.Level, c.CurrentXP = resolved.Level, resolved.XP
		if err := r.characters.Update(ctx, c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ownedSkill loads a skill and checks it belongs to the character.
func ownedSkill(ctx context.Context, r repos, c *storage.Character, id int64) (*storage.Skill, error) {
	sk, err := r.skills.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sk == nil || sk.CharacterID != c.ID {
		return nil, NotFoundError{Kind: "skill", ID: id}
	}
	return sk, nil
}

func ownedGoal(ctx context.Context, r repos, c *storage.Character, id int64) (*storage.Goal, *storage.Skill, error) {
	g, err := r.goals.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if g == nil {
		return nil, nil, NotFoundError{Kind: "goal", ID: id}
	}
	sk, err := r.skills.Get(ctx, g.SkillID)
	if err != nil {
		return nil, nil, err
	}
	if sk == nil || sk.CharacterID != c.ID {
		return nil, nil, NotFoundError{Kind: "goal", ID: id}
	}
	return g, sk, nil
}

func characterResetTime(c *storage.Character) ResetTime {
	rt, err := ParseResetTime(c.DailyResetTime)
	if err != nil {
		return DefaultResetTime
	}
	return rt
}

// today is the character's current user day.
func (s *Service) today(c *storage.Character) string {
	return CurrentDay(s.now(), s.loc, characterResetTime(c))
}

func normalizeText(field, v string) (string, error) {
	t := strings.TrimSpace(v)
	if t == "" {
		return "", invalidf("%s is required", field)
	}
	return t, nil
}
