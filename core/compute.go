package core

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/athome/core/algo"
	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/internal/telemetry"
	"github.com/huangsam/athome/schema"
)

// ErrClientRequired is returned when an operation must address a stored client.
var ErrClientRequired = errors.New("core: a client ID is required (use --client)")

// ScoreProfile scores a profile and records the result.
func ScoreProfile(cp schema.ClientProfile, explain bool) schema.ScoreReport {
	report := algo.Report(cp.ClientID, cp.Profile, explain)
	telemetry.ObserveScore(report.Score, string(report.Category.Key))
	return report
}

// CheckProfile answers whether the client is home at the given instant.
func CheckProfile(cp schema.ClientProfile, at time.Time) schema.Verdict {
	verdict := algo.IsAvailableAt(cp.Profile, at)
	telemetry.ObserveCheck(verdict.Available)
	return verdict
}

// SlotsForProfile recommends up to limit visit slots starting today.
func SlotsForProfile(cp schema.ClientProfile, today schema.Date, daysAhead, limit int) []schema.Slot {
	slots := algo.BestSlots(cp.Profile, today, daysAhead)
	if limit > 0 && len(slots) > limit {
		slots = slots[:limit]
	}
	telemetry.ObserveSlots(len(slots))
	return slots
}

// RecordOutcome appends a visit to the profile. The result is saved when the
// profile belongs to a client and a store is configured.
func RecordOutcome(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, cp schema.ClientProfile, outcome schema.VisitOutcome) (schema.ClientProfile, bool, error) {
	updated := schema.ClientProfile{
		ClientID: cp.ClientID,
		Profile:  algo.RecordVisit(cp.Profile, outcome, cfg.Now),
	}
	telemetry.ObserveVisit(outcome.WasHome)
	contract.LogDebug("Recorded visit", "client", cp.ClientID, "home", outcome.WasHome, "score", updated.Profile.Score)

	if updated.ClientID == "" {
		return updated, false, nil
	}
	store, err := requireStore(cfg, mgr)
	if err != nil {
		return updated, false, nil
	}
	if err := putProfile(ctx, store, updated); err != nil {
		return updated, false, err
	}
	return updated, true, nil
}

// RankStored rescores every stored client and ranks those that pass the
// configured category and minimum score.
func RankStored(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.RankedClient, error) {
	store, err := requireStore(cfg, mgr)
	if err != nil {
		return nil, err
	}
	clients, err := listProfiles(ctx, store, schema.ProfileFilter{})
	if err != nil {
		return nil, err
	}

	kept := make([]schema.ClientProfile, 0, len(clients))
	for _, c := range clients {
		c.Profile = algo.Rescore(c.Profile)
		telemetry.ObserveScore(c.Profile.Score, string(c.Profile.Category))
		if cfg.Category != "" && c.Profile.Category != cfg.Category {
			continue
		}
		if c.Profile.Score < cfg.MinScore {
			continue
		}
		kept = append(kept, c)
	}
	return algo.RankProfiles(kept, cfg.ResultLimit), nil
}
