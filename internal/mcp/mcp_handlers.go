package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/athome/core"
	"github.com/huangsam/athome/core/algo"
	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
	now     func() time.Time
}

// recordResult is returned by record_visit.
type recordResult struct {
	ClientID string                     `json:"client_id,omitempty"`
	Saved    bool                       `json:"saved"`
	Profile  schema.AvailabilityProfile `json:"profile"`
}

// requestConfig clones the base config and anchors it at the current instant
// in the requested timezone.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	if tz := strings.TrimSpace(request.GetString("timezone", "")); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone '%s': %w", tz, err)
		}
		loc = parsed
	}
	cfg.Location = loc
	cfg.Now = h.now().In(loc)
	cfg.Today = schema.DateOf(cfg.Now)
	cfg.At = cfg.Now
	return cfg, nil
}

// resolveProfile reads the profile from the JSON argument or from the store.
func (h *toolHandler) resolveProfile(ctx context.Context, request mcp.CallToolRequest, cfg *contract.Config) (schema.ClientProfile, error) {
	clientID := strings.TrimSpace(request.GetString("client_id", ""))
	if text := request.GetString("profile", ""); text != "" {
		cp, err := core.ParseProfile(strings.NewReader(text))
		if err != nil {
			return schema.ClientProfile{}, err
		}
		if cp.ClientID == "" {
			cp.ClientID = clientID
		}
		return core.NormalizeProfile(cp), nil
	}
	if clientID == "" {
		return schema.ClientProfile{}, errors.New("either profile or client_id is required")
	}
	cfg.ProfilePath = ""
	cfg.ClientID = clientID
	return core.LoadProfile(ctx, cfg, h.mgr)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cp, err := h.resolveProfile(ctx, request, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot load profile: %v", err)), nil
	}
	return jsonResult(core.ScoreProfile(cp, request.GetBool("explain", false)))
}

func (h *toolHandler) handleClassifyScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	score, err := request.RequireFloat("score")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(struct {
		Score    int             `json:"score"`
		Category schema.Category `json:"category"`
	}{int(score), algo.Classify(int(score))})
}

func (h *toolHandler) handleCheckAvailability(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if at := request.GetString("at", ""); at != "" {
		parsed, err := contract.ParseInstant(at, cfg.Location)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.At = parsed
	}
	cp, err := h.resolveProfile(ctx, request, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot load profile: %v", err)), nil
	}
	return jsonResult(struct {
		ClientID string `json:"client_id,omitempty"`
		At       string `json:"at"`
		schema.Verdict
	}{cp.ClientID, cfg.At.Format(contract.DateTimeFormat), core.CheckProfile(cp, cfg.At)})
}

func (h *toolHandler) handleBestSlots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	days := request.GetInt("days_ahead", schema.DefaultDaysAhead)
	if days < 1 || days > contract.MaxDaysAhead {
		return mcp.NewToolResultError(fmt.Sprintf("days_ahead must be between 1 and %d", contract.MaxDaysAhead)), nil
	}
	cp, err := h.resolveProfile(ctx, request, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot load profile: %v", err)), nil
	}
	slots := core.SlotsForProfile(cp, cfg.Today, days, request.GetInt("limit", 0))
	if slots == nil {
		slots = []schema.Slot{}
	}
	return jsonResult(slots)
}

func (h *toolHandler) handleRecordVisit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	wasHome, err := request.RequireBool("was_home")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	outcome := schema.VisitOutcome{
		VisitDate:     cfg.Today,
		ScheduledTime: schema.TimeOfDayOf(cfg.Now),
		WasHome:       wasHome,
		ArrivedOnTime: request.GetBool("arrived_on_time", false),
		Notes:         strings.TrimSpace(request.GetString("notes", "")),
		RecordedBy:    strings.TrimSpace(request.GetString("recorded_by", "")),
	}
	if s := request.GetString("visit_date", ""); s != "" {
		if outcome.VisitDate, err = schema.ParseDate(s); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid visit_date: %v", err)), nil
		}
	}
	if s := request.GetString("scheduled", ""); s != "" {
		if outcome.ScheduledTime, err = schema.ParseTimeOfDay(s); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid scheduled: %v", err)), nil
		}
	}

	cp, err := h.resolveProfile(ctx, request, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot load profile: %v", err)), nil
	}
	updated, saved, err := core.RecordOutcome(ctx, cfg, h.mgr, cp, outcome)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record visit: %v", err)), nil
	}
	return jsonResult(recordResult{ClientID: updated.ClientID, Saved: saved, Profile: updated.Profile})
}

func (h *toolHandler) handleProfileTemplate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, _ := algo.ParseProfileKind(request.GetString("kind", string(schema.CustomKind)))
	p := algo.Rescore(algo.CreateDefault(kind))
	p.LastUpdated = h.now()
	return jsonResult(p)
}

func (h *toolHandler) handleRankClients(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Category = schema.CategoryKey(request.GetString("category", ""))
	if cfg.Category != "" {
		if _, ok := schema.ValidCategories[cfg.Category]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid category '%s'", cfg.Category)), nil
		}
	}
	cfg.MinScore = request.GetInt("min_score", 0)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	ranked, err := core.RankStored(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}
	if ranked == nil {
		ranked = []schema.RankedClient{}
	}
	return jsonResult(ranked)
}
