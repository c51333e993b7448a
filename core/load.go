package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/athome/core/algo"
	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/internal/telemetry"
	"github.com/huangsam/athome/schema"
)

// stdinPath selects standard input as the profile source.
const stdinPath = "-"

// stdin is swapped in tests.
var stdin io.Reader = os.Stdin

// LoadProfile resolves the profile a command operates on.
// A path (or "-" for stdin) wins over --client; the client ID is kept either way.
func LoadProfile(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.ClientProfile, error) {
	var (
		cp  schema.ClientProfile
		err error
	)
	switch {
	case cfg.ProfilePath != "":
		cp, err = readProfileFile(cfg.ProfilePath)
		if err != nil {
			return schema.ClientProfile{}, err
		}
		if cp.ClientID == "" {
			cp.ClientID = cfg.ClientID
		}
	case cfg.ClientID != "":
		store, err := requireStore(cfg, mgr)
		if err != nil {
			return schema.ClientProfile{}, err
		}
		cp, err = getProfile(ctx, store, cfg.ClientID)
		if err != nil {
			return schema.ClientProfile{}, err
		}
	default:
		return schema.ClientProfile{}, contract.ErrNoProfileSource
	}

	return NormalizeProfile(cp), nil
}

// NormalizeProfile caps the presence history and recomputes stats. Windows that
// can never match are kept but logged.
func NormalizeProfile(cp schema.ClientProfile) schema.ClientProfile {
	for _, problem := range contract.ValidateWindows(cp.Profile.TimeWindows) {
		contract.LogWarn("Profile has an unusable time window", nil, "client", cp.ClientID, "problem", problem)
	}
	cp.Profile.PresenceHistory = algo.TrimHistory(cp.Profile.PresenceHistory)
	cp.Profile.Stats = algo.ComputeStats(cp.Profile.PresenceHistory)
	return cp
}

func readProfileFile(path string) (schema.ClientProfile, error) {
	if path == stdinPath {
		return ParseProfile(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return schema.ClientProfile{}, fmt.Errorf("failed to open profile: %w", err)
	}
	defer func() { _ = f.Close() }()
	cp, err := ParseProfile(f)
	if err != nil {
		return schema.ClientProfile{}, fmt.Errorf("%s: %w", path, err)
	}
	return cp, nil
}

// ParseProfile decodes a profile document. Both a bare availability profile and
// the {"client_id": ..., "profile": {...}} envelope are accepted.
func ParseProfile(r io.Reader) (schema.ClientProfile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return schema.ClientProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	var envelope struct {
		ClientID string          `json:"client_id"`
		Profile  json.RawMessage `json:"profile"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return schema.ClientProfile{}, fmt.Errorf("invalid profile JSON: %w", err)
	}
	body := data
	if len(envelope.Profile) > 0 {
		body = envelope.Profile
	}
	var p schema.AvailabilityProfile
	if err := json.Unmarshal(body, &p); err != nil {
		return schema.ClientProfile{}, fmt.Errorf("invalid profile JSON: %w", err)
	}
	return schema.ClientProfile{ClientID: envelope.ClientID, Profile: p}, nil
}

// requireStore returns the active store, or ErrStoreUnavailable when commands
// that need persistence run without one.
func requireStore(cfg *contract.Config, mgr contract.StoreManager) (contract.ProfileStore, error) {
	if cfg.StoreBackend == schema.NoneBackend || mgr == nil {
		return nil, contract.ErrStoreUnavailable
	}
	store := mgr.GetProfileStore()
	if store == nil {
		return nil, contract.ErrStoreUnavailable
	}
	return store, nil
}

func getProfile(ctx context.Context, store contract.ProfileStore, clientID string) (schema.ClientProfile, error) {
	start := time.Now()
	cp, err := store.Get(ctx, clientID)
	telemetry.ObserveStore("get", start, ignoreNotFound(err))
	if err != nil {
		return schema.ClientProfile{}, fmt.Errorf("client %q: %w", clientID, err)
	}
	return cp, nil
}

func putProfile(ctx context.Context, store contract.ProfileStore, cp schema.ClientProfile) error {
	start := time.Now()
	err := store.Put(ctx, cp)
	telemetry.ObserveStore("put", start, err)
	if err != nil {
		return fmt.Errorf("failed to save client %q: %w", cp.ClientID, err)
	}
	contract.LogInfo("Saved profile", "client", cp.ClientID, "score", cp.Profile.Score)
	return nil
}

func listProfiles(ctx context.Context, store contract.ProfileStore, filter schema.ProfileFilter) ([]schema.ClientProfile, error) {
	start := time.Now()
	clients, err := store.List(ctx, filter)
	telemetry.ObserveStore("list", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return clients, nil
}

// ignoreNotFound keeps a missing client from counting as a store failure.
func ignoreNotFound(err error) error {
	if errors.Is(err, contract.ErrProfileNotFound) {
		return nil
	}
	return err
}

func deleteProfile(ctx context.Context, store contract.ProfileStore, clientID string) error {
	start := time.Now()
	err := store.Delete(ctx, clientID)
	telemetry.ObserveStore("delete", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete client %q: %w", clientID, err)
	}
	return nil
}
