package algo

import (
	"math"
	"time"

	"github.com/huangsam/athome/schema"
)

// RecordVisit returns a copy of p with the visit appended to its presence history.
// History keeps the newest MaxHistory records; stats, score and category are recomputed.
func RecordVisit(p schema.AvailabilityProfile, outcome schema.VisitOutcome, now time.Time) schema.AvailabilityProfile {
	out := p.Clone()

	history := append(out.PresenceHistory, schema.PresenceRecord{
		VisitDate:     outcome.VisitDate,
		ScheduledTime: outcome.ScheduledTime,
		WasHome:       outcome.WasHome,
		ArrivedOnTime: outcome.ArrivedOnTime,
		Notes:         outcome.Notes,
		RecordedAt:    now,
	})
	out.PresenceHistory = TrimHistory(history)

	out.Stats = ComputeStats(out.PresenceHistory)
	out.Score = ComputeScore(out)
	out.Category = Classify(out.Score).Key
	out.LastUpdated = now
	if outcome.RecordedBy != "" {
		out.UpdatedBy = outcome.RecordedBy
	}
	return out
}

// TrimHistory drops the oldest records so at most MaxHistory remain.
func TrimHistory(history []schema.PresenceRecord) []schema.PresenceRecord {
	if len(history) <= schema.MaxHistory {
		return history
	}
	trimmed := make([]schema.PresenceRecord, schema.MaxHistory)
	copy(trimmed, history[len(history)-schema.MaxHistory:])
	return trimmed
}

// ComputeStats derives the summary statistics from a presence history.
func ComputeStats(history []schema.PresenceRecord) schema.Stats {
	if len(history) == 0 {
		return schema.Stats{}
	}
	successful := 0
	for _, r := range history {
		if r.WasHome {
			successful++
		}
	}
	last := history[len(history)-1].VisitDate
	return schema.Stats{
		TotalVisits:      len(history),
		SuccessfulVisits: successful,
		SuccessRate:      int(math.Round(float64(successful) / float64(len(history)) * 100)),
		LastVisitDate:    &last,
	}
}
