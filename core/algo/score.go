// Package algo is the availability engine: scoring, classification, point-in-time
// checks, slot recommendation and presence history. Every function is pure and
// returns new values instead of mutating its inputs.
package algo

import (
	"math"

	"github.com/huangsam/athome/schema"
)

// ComputeScore returns the reachability score of a profile in [0, 100].
// A profile without time windows scores 0.
func ComputeScore(p schema.AvailabilityProfile) int {
	return ExplainScore(p).Score
}

// ExplainScore computes the score together with the contribution of every term.
func ExplainScore(p schema.AvailabilityProfile) schema.ScoreBreakdown {
	b := schema.ScoreBreakdown{Terms: make(map[schema.BreakdownKey]float64, len(schema.AllBreakdownKeys))}
	for _, k := range schema.AllBreakdownKeys {
		b.Terms[k] = 0
	}
	if len(p.TimeWindows) == 0 {
		return b
	}

	weekly := WeeklyMinutes(p.TimeWindows)
	b.WeeklyMinutes = weekly
	b.Terms[schema.BreakdownWidth] = math.Min(schema.WidthMax, float64(weekly)/schema.FullWeekMinutes*schema.WidthMax)
	b.Terms[schema.BreakdownHistory] = historyTerm(p.PresenceHistory)
	b.Terms[schema.BreakdownFlexibility] = flexibilityTerm(p.Preferences)
	if coversWorkday(p.TimeWindows) {
		b.Terms[schema.BreakdownWeekday] = schema.WeekdayBonus
	}
	if hasLongWindow(p.TimeWindows) {
		b.Terms[schema.BreakdownLongWindow] = schema.LongWindowBonus
	}

	for _, k := range schema.AllBreakdownKeys {
		b.Raw += b.Terms[k]
	}
	b.Score = clampScore(b.Raw)
	return b
}

// Rescore returns a copy of p with Stats, Score and Category recomputed.
func Rescore(p schema.AvailabilityProfile) schema.AvailabilityProfile {
	out := p.Clone()
	out.Stats = ComputeStats(out.PresenceHistory)
	out.Score = ComputeScore(out)
	out.Category = Classify(out.Score).Key
	return out
}

// WeeklyMinutes sums window length times distinct day count over all windows.
// Overlapping windows are counted once per window, not merged.
func WeeklyMinutes(windows []schema.TimeWindow) int {
	total := 0
	for _, w := range windows {
		total += w.Minutes() * len(w.DistinctDays())
	}
	return total
}

func historyTerm(history []schema.PresenceRecord) float64 {
	if len(history) == 0 {
		return schema.HistoryNoData
	}
	home := 0
	for _, r := range history {
		if r.WasHome {
			home++
		}
	}
	rate := float64(home) / float64(len(history)) * 100
	return rate / 100 * schema.HistoryMax
}

func flexibilityTerm(pref schema.Preferences) float64 {
	switch {
	case pref.FlexibleSchedule:
		return schema.FlexibleBonus
	case !pref.RequiresAdvanceNotice:
		return schema.NoNoticeBonus
	default:
		return 0
	}
}

func coversWorkday(windows []schema.TimeWindow) bool {
	for _, w := range windows {
		for _, d := range w.Days {
			if d.IsWorkday() {
				return true
			}
		}
	}
	return false
}

func hasLongWindow(windows []schema.TimeWindow) bool {
	for _, w := range windows {
		if w.Minutes() >= schema.LongWindowMinutes {
			return true
		}
	}
	return false
}

// clampScore rounds and bounds a raw score to [0, 100].
func clampScore(raw float64) int {
	if math.IsNaN(raw) || raw <= 0 {
		return 0
	}
	return int(math.Round(math.Min(schema.MaxScore, raw)))
}
