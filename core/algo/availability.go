package algo

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/athome/schema"
)

// Reasons and suggestions returned by IsAvailableAt.
const (
	ReasonNoData      = "no data"
	SuggestionContact = "contact client"
)

// IsAvailableAt reports whether the client is expected home at the given instant.
// Weekday and clock time are read in the instant's own location.
func IsAvailableAt(p schema.AvailabilityProfile, instant time.Time) schema.Verdict {
	if len(p.TimeWindows) == 0 {
		return schema.Verdict{Reason: ReasonNoData, Suggestion: ptr(SuggestionContact)}
	}

	day := schema.WeekdayOf(instant)
	clock := schema.TimeOfDayOf(instant)

	var sameDay []string
	for _, w := range p.TimeWindows {
		if !w.Covers(day) {
			continue
		}
		if w.Contains(clock) {
			return schema.Verdict{
				Available: ptr(true),
				Reason:    fmt.Sprintf("within %s (%s)", windowName(w), w.Range()),
			}
		}
		if w.Minutes() > 0 {
			sameDay = append(sameDay, w.Range())
		}
	}

	if len(sameDay) > 0 {
		return schema.Verdict{
			Available:  ptr(false),
			Reason:     fmt.Sprintf("outside available hours on %s", day.Label()),
			Suggestion: ptr(strings.Join(sameDay, ", ")),
		}
	}

	suggestion := SuggestionContact
	if days := AvailableDays(p.TimeWindows); len(days) > 0 {
		suggestion = strings.Join(dayLabels(days), ", ")
	}
	return schema.Verdict{
		Available:  ptr(false),
		Reason:     fmt.Sprintf("not available on %s", day.Label()),
		Suggestion: ptr(suggestion),
	}
}

// AvailableDays returns every weekday that has at least one usable window,
// in first-seen order across the windows.
func AvailableDays(windows []schema.TimeWindow) []schema.Weekday {
	seen := make(map[schema.Weekday]struct{}, 7)
	var out []schema.Weekday
	for _, w := range windows {
		if w.Minutes() == 0 {
			continue
		}
		for _, d := range w.Days {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

func dayLabels(days []schema.Weekday) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Label()
	}
	return out
}

func windowName(w schema.TimeWindow) string {
	if w.Label == "" {
		return "available window"
	}
	return w.Label
}

func ptr[T any](v T) *T {
	return &v
}
