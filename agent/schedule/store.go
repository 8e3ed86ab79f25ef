package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// BunStore persists slots in Postgres via bun.
type BunStore struct {
	db  *bun.DB
	now func() time.Time
}

// BunOption customizes BunStore.
type BunOption func(*BunStore)

// WithClock overrides the store's notion of "today" for the open-ended
// availability query.
func WithClock(now func() time.Time) BunOption {
	return func(s *BunStore) {
		if now != nil {
			s.now = now
		}
	}
}

// OpenDB opens a bun Postgres handle from a DSN.
func OpenDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

func NewBunStore(db *bun.DB, opts ...BunOption) (*BunStore, error) {
	if db == nil {
		return nil, errors.New("bun db is required")
	}
	store := &BunStore{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

// Init creates the slot table if it does not exist.
func (s *BunStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*Slot)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create slot table: %w", err)
	}
	return nil
}

func (s *BunStore) Available(ctx context.Context, date string, position Position, limit int) ([]Slot, error) {
	if limit <= 0 {
		limit = DefaultSlotLimit
	}

	var slots []Slot
	q := s.db.NewSelect().
		Model(&slots).
		Where("available = TRUE").
		Where("position = ?", position)
	if date != "" {
		q = q.Where("date = ?", date)
	} else {
		q = q.Where("date >= ?", s.now().Format(DateLayout))
	}

	if err := q.Order("date ASC").Order("time ASC").Limit(limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("query available slots: %w", err)
	}
	return slots, nil
}

func (s *BunStore) Check(ctx context.Context, date string, timeOfDay string, position Position) (bool, error) {
	var available bool
	err := s.db.NewSelect().
		Model((*Slot)(nil)).
		Column("available").
		Where("date = ?", date).
		Where("time = ?", timeOfDay).
		Where("position = ?", position).
		Limit(1).
		Scan(ctx, &available)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check slot availability: %w", err)
	}
	return available, nil
}

// Book is a single conditional UPDATE: it succeeds only when the row was
// still available, which makes the check and the flip one indivisible
// operation under concurrent bookings.
func (s *BunStore) Book(ctx context.Context, date string, timeOfDay string, position Position) error {
	res, err := s.db.NewUpdate().
		Model((*Slot)(nil)).
		Set("available = FALSE").
		Where("date = ?", date).
		Where("time = ?", timeOfDay).
		Where("position = ?", position).
		Where("available = TRUE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("book slot: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("book slot result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s at %s", ErrSlotUnavailable, date, timeOfDay)
	}
	return nil
}

func (s *BunStore) NearDate(ctx context.Context, targetDate string, position Position, limit int) ([]Slot, error) {
	var slots []Slot
	err := s.db.NewSelect().
		Model(&slots).
		Where("available = TRUE").
		Where("position = ?", position).
		Order("date ASC").
		Order("time ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("query slots near date: %w", err)
	}
	return rankNearDate(slots, targetDate, limit), nil
}

func (s *BunStore) Insert(ctx context.Context, slots []Slot) error {
	if len(slots) == 0 {
		return nil
	}
	if _, err := s.db.NewInsert().Model(&slots).Exec(ctx); err != nil {
		return fmt.Errorf("insert slots: %w", err)
	}
	return nil
}

// Count reports how many slots exist, used to decide whether seeding is
// needed at startup.
func (s *BunStore) Count(ctx context.Context) (int, error) {
	count, err := s.db.NewSelect().Model((*Slot)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count slots: %w", err)
	}
	return count, nil
}
