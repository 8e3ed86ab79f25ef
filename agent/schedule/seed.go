package schedule

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

var allPositions = []Position{PositionPythonDev, PositionSQLDev, PositionAnalyst, PositionML}

// GenerateSlots builds the seed slot set: weekday interview hours (09:00 to
// 16:00) for every position over the given window, skipping Mondays and
// Saturdays, with roughly half the slots already taken. A nil rng leaves
// every slot open, which keeps seeded tests deterministic.
func GenerateSlots(start time.Time, days int, rng *rand.Rand) []Slot {
	var slots []Slot
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		if day.Weekday() == time.Monday || day.Weekday() == time.Saturday {
			continue
		}
		date := day.Format(DateLayout)
		for hour := 9; hour < 17; hour++ {
			timeOfDay := fmt.Sprintf("%02d:00", hour)
			for _, pos := range allPositions {
				available := true
				if rng != nil {
					available = rng.Float64() > 0.5
				}
				slots = append(slots, Slot{
					Date:      date,
					Time:      timeOfDay,
					Position:  pos,
					Available: available,
				})
			}
		}
	}
	return slots
}

// Seed fills a slot store with the generated window.
func Seed(ctx context.Context, w SlotWriter, start time.Time, days int, rng *rand.Rand) error {
	return w.Insert(ctx, GenerateSlots(start, days, rng))
}
