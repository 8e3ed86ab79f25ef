package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemorySlotStore is a mutex-guarded in-process slot table. It backs the
// console runner when no database is configured, and tests.
type MemorySlotStore struct {
	mu    sync.Mutex
	slots []Slot
	next  int64
	now   func() time.Time
}

// MemoryOption customizes MemorySlotStore.
type MemoryOption func(*MemorySlotStore)

func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *MemorySlotStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewMemorySlotStore(opts ...MemoryOption) *MemorySlotStore {
	store := &MemorySlotStore{
		next: 1,
		now:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

func (m *MemorySlotStore) Insert(ctx context.Context, slots []Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range slots {
		s.ID = m.next
		m.next++
		m.slots = append(m.slots, s)
	}
	return nil
}

func (m *MemorySlotStore) Available(ctx context.Context, date string, position Position, limit int) ([]Slot, error) {
	if limit <= 0 {
		limit = DefaultSlotLimit
	}
	today := m.now().Format(DateLayout)

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Slot
	for _, s := range m.slots {
		if !s.Available || s.Position != position {
			continue
		}
		if date != "" {
			if s.Date != date {
				continue
			}
		} else if s.Date < today {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemorySlotStore) Check(ctx context.Context, date string, timeOfDay string, position Position) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.slots {
		if s.Date == date && s.Time == timeOfDay && s.Position == position {
			return s.Available, nil
		}
	}
	return false, nil
}

// Book performs the check and the flip under one lock hold, so concurrent
// bookings of the same slot yield exactly one success.
func (m *MemorySlotStore) Book(ctx context.Context, date string, timeOfDay string, position Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.slots {
		s := &m.slots[i]
		if s.Date != date || s.Time != timeOfDay || s.Position != position {
			continue
		}
		if !s.Available {
			return fmt.Errorf("%w: %s at %s", ErrSlotUnavailable, date, timeOfDay)
		}
		s.Available = false
		return nil
	}
	return fmt.Errorf("%w: %s at %s", ErrSlotUnavailable, date, timeOfDay)
}

func (m *MemorySlotStore) NearDate(ctx context.Context, targetDate string, position Position, limit int) ([]Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var open []Slot
	for _, s := range m.slots {
		if s.Available && s.Position == position {
			open = append(open, s)
		}
	}
	return rankNearDate(open, targetDate, limit), nil
}
