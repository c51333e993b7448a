package algo

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/huangsam/athome/schema"
)

// BestSlots lists up to five recommended visit slots over the next daysAhead days,
// starting with today. A non-positive daysAhead means the default week.
func BestSlots(p schema.AvailabilityProfile, today schema.Date, daysAhead int) []schema.Slot {
	if daysAhead <= 0 {
		daysAhead = schema.DefaultDaysAhead
	}

	var slots []schema.Slot
	for offset := range daysAhead {
		date := today.AddDays(offset)
		day := date.Weekday()
		for _, w := range p.TimeWindows {
			if !w.Covers(day) || w.Minutes() == 0 {
				continue
			}
			slots = append(slots, schema.Slot{
				Date:      date,
				DayName:   day.Label(),
				From:      w.From,
				To:        w.To,
				Score:     slotScore(w, day),
				Reason:    slotReason(w),
				IsWeekend: day.IsWeekend(),
			})
		}
	}

	// Stable keeps date order, then window order, among equal scores.
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Score > slots[j].Score
	})
	if len(slots) > schema.MaxSlots {
		return slots[:schema.MaxSlots]
	}
	return slots
}

// slotScore rates a single window occurrence; the length bonuses stack.
func slotScore(w schema.TimeWindow, day schema.Weekday) int {
	score := schema.SlotBase
	length := w.Minutes()
	if length >= schema.LongWindowMinutes {
		score += schema.SlotLongBonus
	}
	if length >= schema.MediumWindowMinutes {
		score += schema.SlotMediumBonus
	}
	if day.IsWeekend() {
		score += schema.SlotWeekendBonus
	}
	if w.From <= schema.SlotMorningCutoff {
		score += schema.SlotMorningBonus
	}
	return min(score, schema.MaxScore)
}

func slotReason(w schema.TimeWindow) string {
	label := w.Label
	if label == "" {
		label = "Available"
	}
	return fmt.Sprintf("%s (%sh window)", label, formatHours(w.Minutes()))
}

// formatHours renders minutes as hours with at most one decimal.
func formatHours(minutes int) string {
	return strconv.FormatFloat(math.Round(float64(minutes)/6)/10, 'f', -1, 64)
}
