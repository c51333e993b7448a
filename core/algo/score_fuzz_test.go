package algo

import (
	"testing"
	"time"

	"github.com/huangsam/athome/schema"
)

// FuzzComputeScore checks the range invariant and that scoring never panics.
func FuzzComputeScore(f *testing.F) {
	f.Add(480, 1200, uint8(0x7f), true, false, uint8(3), uint8(1))
	f.Add(1200, 480, uint8(0x01), false, true, uint8(0), uint8(0))
	f.Add(0, 1439, uint8(0xff), false, false, uint8(30), uint8(30))
	f.Add(-50, 5000, uint8(0x40), true, true, uint8(1), uint8(2))

	f.Fuzz(func(t *testing.T, from, to int, dayMask uint8, flexible, notice bool, homes, misses uint8) {
		var days []schema.Weekday
		for d := range 8 {
			if dayMask&(1<<d) != 0 {
				days = append(days, schema.Weekday(d%7))
			}
		}
		p := schema.AvailabilityProfile{
			TimeWindows: []schema.TimeWindow{{Days: days, From: schema.TimeOfDay(from), To: schema.TimeOfDay(to)}},
			Preferences: schema.Preferences{FlexibleSchedule: flexible, RequiresAdvanceNotice: notice},
		}
		for range homes {
			p.PresenceHistory = append(p.PresenceHistory, schema.PresenceRecord{WasHome: true})
		}
		for range misses {
			p.PresenceHistory = append(p.PresenceHistory, schema.PresenceRecord{})
		}

		score := ComputeScore(p)
		if score < 0 || score > schema.MaxScore {
			t.Fatalf("score %d out of range", score)
		}
		if c := Classify(score); c.Key == "" {
			t.Fatalf("no category for score %d", score)
		}

		v := IsAvailableAt(p, time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC))
		if v.Available == nil {
			t.Fatalf("profile with windows returned no verdict")
		}
		for _, s := range BestSlots(p, schema.NewDate(2024, time.May, 13), 7) {
			if s.Score < schema.SlotBase || s.Score > schema.MaxScore {
				t.Fatalf("slot score %d out of range", s.Score)
			}
		}
	})
}
