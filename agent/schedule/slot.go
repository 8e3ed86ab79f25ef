package schedule

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/uptrace/bun"
)

// Position is the role an interview slot is held for.
type Position string

const (
	PositionPythonDev Position = "Python Dev"
	PositionSQLDev    Position = "Sql Dev"
	PositionAnalyst   Position = "Analyst"
	PositionML        Position = "ML"

	DefaultPosition = PositionPythonDev
)

const (
	// DateLayout is the wire format for slot dates.
	DateLayout = "2006-01-02"

	// DefaultSlotLimit caps slot listings offered in one reply.
	DefaultSlotLimit = 3
)

// ErrSlotUnavailable is returned by Book when the slot is missing or taken.
var ErrSlotUnavailable = errors.New("slot is not available")

// Slot is a single bookable (date, time, position) unit. Slots are created in
// bulk at seeding time; booking flips Available from true to false and nothing
// in this system re-opens or deletes a slot.
type Slot struct {
	bun.BaseModel `bun:"table:schedule_slots,alias:s" json:"-"`

	ID        int64    `bun:"id,pk,autoincrement" json:"id"`
	Date      string   `bun:"date,notnull" json:"date"`
	Time      string   `bun:"time,notnull" json:"time"`
	Position  Position `bun:"position,notnull" json:"position"`
	Available bool     `bun:"available,notnull" json:"available"`
}

// SlotStore is the shared slot table. It is the one piece of state shared
// across concurrent conversations; Book must be an atomic conditional flip so
// two conversations can never both book the same slot.
type SlotStore interface {
	// Available lists up to limit open slots for the position, earliest
	// first. With date set it filters to that exact date, otherwise it
	// returns slots at or after today.
	Available(ctx context.Context, date string, position Position, limit int) ([]Slot, error)

	// Check reports whether the exact slot exists and is open.
	Check(ctx context.Context, date string, timeOfDay string, position Position) (bool, error)

	// Book flips the slot from available to booked as one indivisible
	// operation. It returns ErrSlotUnavailable when the slot is missing or
	// already taken.
	Book(ctx context.Context, date string, timeOfDay string, position Position) error

	// NearDate lists up to limit open slots ranked by absolute day distance
	// from the target date, ties broken by time of day.
	NearDate(ctx context.Context, targetDate string, position Position, limit int) ([]Slot, error)
}

// SlotWriter is the seeding half of a slot store.
type SlotWriter interface {
	Insert(ctx context.Context, slots []Slot) error
}

// rankNearDate orders open slots by |candidate date - target| in days
// ascending, then by time-of-day ascending, and truncates to limit. Slots
// whose date does not parse are dropped.
func rankNearDate(slots []Slot, targetDate string, limit int) []Slot {
	target, err := time.Parse(DateLayout, targetDate)
	if err != nil {
		return nil
	}

	type ranked struct {
		slot Slot
		dist int
	}
	candidates := make([]ranked, 0, len(slots))
	for _, s := range slots {
		d, err := time.Parse(DateLayout, s.Date)
		if err != nil {
			continue
		}
		dist := int(d.Sub(target).Hours() / 24)
		if dist < 0 {
			dist = -dist
		}
		candidates = append(candidates, ranked{slot: s, dist: dist})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].slot.Time < candidates[j].slot.Time
	})

	if limit <= 0 {
		limit = DefaultSlotLimit
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]Slot, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.slot)
	}
	return out
}
