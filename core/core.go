// Package core has core logic for loading, scoring and persisting availability profiles.
package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/huangsam/athome/core/algo"
	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/internal/outwriter"
	"github.com/huangsam/athome/schema"
)

// ExecutorFunc defines the function signature for executing profile commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ExecuteScore scores the loaded profile and prints the report.
// With cfg.Save the rescored profile is written back to the store.
func ExecuteScore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	cp, err := LoadProfile(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	report := ScoreProfile(cp, cfg.Explain)

	if cfg.Save {
		if cp.ClientID == "" {
			return ErrClientRequired
		}
		store, err := requireStore(cfg, mgr)
		if err != nil {
			return err
		}
		cp.Profile = algo.Rescore(cp.Profile)
		cp.Profile.LastUpdated = cfg.Now
		if err := putProfile(ctx, store, cp); err != nil {
			return err
		}
	}
	return outwriter.NewOutWriter().WriteScore(report, cfg)
}

// ExecuteClassify prints the category of a raw score given as text.
func ExecuteClassify(_ context.Context, cfg *contract.Config, raw string) error {
	score, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid score %q: must be an integer", raw)
	}
	return outwriter.NewOutWriter().WriteCategory(score, algo.Classify(score), cfg)
}

// ExecuteCheck reports whether the client is home at cfg.At.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	cp, err := LoadProfile(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	out := cfg.Clone()
	out.ClientID = cp.ClientID
	return outwriter.NewOutWriter().WriteVerdict(CheckProfile(cp, cfg.At), out)
}

// ExecuteSlots prints the best visit slots over the configured horizon.
func ExecuteSlots(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	cp, err := LoadProfile(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	slots := SlotsForProfile(cp, cfg.Today, cfg.DaysAhead, cfg.ResultLimit)
	return outwriter.NewOutWriter().WriteSlots(slots, cfg)
}

// ExecuteRecord appends cfg.Visit to the loaded profile. Stored clients are
// updated in place; file profiles are printed back as JSON.
func ExecuteRecord(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	cp, err := LoadProfile(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	updated, saved, err := RecordOutcome(ctx, cfg, mgr, cp, cfg.Visit)
	if err != nil {
		return err
	}
	if saved {
		return outwriter.NewOutWriter().WriteScore(algo.Report(updated.ClientID, updated.Profile, false), cfg)
	}
	out := cfg.Clone()
	out.Output = schema.JSONOut
	return outwriter.NewOutWriter().WriteProfile(updated, out)
}

// ExecuteHistory prints the presence history of the loaded profile.
func ExecuteHistory(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	cp, err := LoadProfile(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteHistory(cp.ClientID, cp.Profile, cfg)
}

// ExecuteTemplate prints a starter profile as JSON. Unknown kinds yield the empty custom template.
func ExecuteTemplate(_ context.Context, cfg *contract.Config, kind string) error {
	parsed, ok := algo.ParseProfileKind(kind)
	if !ok {
		contract.LogWarn("Unknown profile kind, using custom", nil, "kind", kind)
	}
	p := algo.Rescore(algo.CreateDefault(parsed))
	p.LastUpdated = cfg.Now

	out := cfg.Clone()
	out.Output = schema.JSONOut
	return outwriter.NewOutWriter().WriteProfile(schema.ClientProfile{ClientID: cfg.ClientID, Profile: p}, out)
}

// ExecuteRank ranks the stored clients by their current score.
func ExecuteRank(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	ranked, err := RankStored(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRanked(ranked, cfg)
}

// ExecuteMetrics prints the scoring terms and category thresholds.
// No profile is loaded; this is purely informational.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.NewOutWriter().WriteMetrics(algo.Definitions(), cfg)
}

// ExecuteProfilesList lists stored clients as they were last saved.
func ExecuteProfilesList(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := requireStore(cfg, mgr)
	if err != nil {
		return err
	}
	clients, err := listProfiles(ctx, store, schema.ProfileFilter{
		Category: cfg.Category,
		MinScore: cfg.MinScore,
		Limit:    cfg.ResultLimit,
	})
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRanked(algo.RankProfiles(clients, cfg.ResultLimit), cfg)
}

// ExecuteProfilesShow prints one stored client.
func ExecuteProfilesShow(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.ClientID == "" {
		return ErrClientRequired
	}
	store, err := requireStore(cfg, mgr)
	if err != nil {
		return err
	}
	cp, err := getProfile(ctx, store, cfg.ClientID)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteProfile(cp, cfg)
}

// ExecuteProfilesSave stores the profile file under the client ID, rescored.
func ExecuteProfilesSave(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.ProfilePath == "" {
		return contract.ErrNoProfileSource
	}
	cp, err := LoadProfile(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if cp.ClientID == "" {
		return ErrClientRequired
	}
	store, err := requireStore(cfg, mgr)
	if err != nil {
		return err
	}

	cp.Profile = algo.Rescore(cp.Profile)
	cp.Profile.LastUpdated = cfg.Now
	if err := putProfile(ctx, store, cp); err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteScore(ScoreProfile(cp, false), cfg)
}

// ExecuteProfilesDelete removes a stored client.
func ExecuteProfilesDelete(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.ClientID == "" {
		return ErrClientRequired
	}
	store, err := requireStore(cfg, mgr)
	if err != nil {
		return err
	}
	if _, err := getProfile(ctx, store, cfg.ClientID); err != nil {
		return err
	}
	if err := deleteProfile(ctx, store, cfg.ClientID); err != nil {
		return err
	}
	contract.LogInfo("Deleted profile", "client", cfg.ClientID)
	return nil
}

// ExecuteStoreStatus prints statistics about the profile store.
func ExecuteStoreStatus(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	var store contract.ProfileStore
	if mgr != nil {
		store = mgr.GetProfileStore()
	}
	if store == nil {
		status := schema.StoreStatus{Backend: string(cfg.StoreBackend)}
		return outwriter.NewOutWriter().WriteStoreStatus(status, cfg)
	}

	status, err := store.GetStatus()
	if err != nil && !errors.Is(err, contract.ErrStoreUnavailable) {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	status.ConnectionSource = cfg.ConnectionSource
	return outwriter.NewOutWriter().WriteStoreStatus(status, cfg)
}
