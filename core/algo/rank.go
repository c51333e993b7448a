package algo

import (
	"sort"

	"github.com/huangsam/athome/schema"
)

// RankProfiles sorts clients by score in descending order, breaking ties by
// client ID, and returns the top 'limit' entries. A non-positive limit keeps all.
func RankProfiles(clients []schema.ClientProfile, limit int) []schema.RankedClient {
	sorted := make([]schema.ClientProfile, len(clients))
	copy(sorted, clients)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Profile.Score != sorted[j].Profile.Score {
			return sorted[i].Profile.Score > sorted[j].Profile.Score
		}
		return sorted[i].ClientID < sorted[j].ClientID
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	ranked := make([]schema.RankedClient, len(sorted))
	for i, c := range sorted {
		ranked[i] = schema.RankedClient{
			Rank:     i + 1,
			ClientID: c.ClientID,
			Score:    c.Profile.Score,
			Category: Classify(c.Profile.Score),
			Stats:    c.Profile.Stats,
			Windows:  len(c.Profile.TimeWindows),
		}
	}
	return ranked
}

// Report builds the presentation model for a scored profile.
func Report(clientID string, p schema.AvailabilityProfile, explain bool) schema.ScoreReport {
	breakdown := ExplainScore(p)
	report := schema.ScoreReport{
		ClientID: clientID,
		Score:    breakdown.Score,
		Category: Classify(breakdown.Score),
		Stats:    ComputeStats(p.PresenceHistory),
		Windows:  len(p.TimeWindows),
	}
	if explain {
		report.Breakdown = &breakdown
	}
	return report
}
