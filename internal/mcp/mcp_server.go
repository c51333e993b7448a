// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"time"

	"github.com/huangsam/athome/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the athome MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	return newServer(baseCfg, mgr, time.Now)
}

func newServer(baseCfg *contract.Config, mgr contract.StoreManager, now func() time.Time) *server.MCPServer {
	s := server.NewMCPServer(
		"athome Availability Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		now:     now,
	}

	profileArg := mcp.WithString("profile", mcp.Description("Availability profile as JSON text, either bare or wrapped as {\"client_id\", \"profile\"}."))
	clientArg := mcp.WithString("client_id", mcp.Description("ID of a stored client, used when no profile JSON is given."))
	timezoneArg := mcp.WithString("timezone", mcp.Description("IANA timezone used for times without an offset (defaults to the server's)."))

	// --- 1. Tool: score_profile ---
	s.AddTool(mcp.NewTool("score_profile",
		mcp.WithDescription("Compute the 0-100 reachability score and category of a client's availability profile."),
		profileArg,
		clientArg,
		mcp.WithBoolean("explain", mcp.Description("Include the contribution of every scoring term.")),
	), h.handleScoreProfile)

	// --- 2. Tool: classify_score ---
	s.AddTool(mcp.NewTool("classify_score",
		mcp.WithDescription("Map a reachability score to its category."),
		mcp.WithNumber("score", mcp.Description("Score between 0 and 100."), mcp.Required()),
	), h.handleClassifyScore)

	// --- 3. Tool: check_availability ---
	s.AddTool(mcp.NewTool("check_availability",
		mcp.WithDescription("Check whether a client is expected to be home at a given time."),
		profileArg,
		clientArg,
		mcp.WithString("at", mcp.Description("Instant to check, RFC3339 or 'YYYY-MM-DD HH:MM' (defaults to now).")),
		timezoneArg,
	), h.handleCheckAvailability)

	// --- 4. Tool: best_slots ---
	s.AddTool(mcp.NewTool("best_slots",
		mcp.WithDescription("Recommend up to five visit slots over the coming days, best first."),
		profileArg,
		clientArg,
		mcp.WithNumber("days_ahead", mcp.Description("Number of days to look ahead, starting today (default 7, max 60).")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of slots to return.")),
		timezoneArg,
	), h.handleBestSlots)

	// --- 5. Tool: record_visit ---
	s.AddTool(mcp.NewTool("record_visit",
		mcp.WithDescription("Record a visit outcome. Stored clients are updated; JSON profiles are returned updated."),
		profileArg,
		clientArg,
		mcp.WithBoolean("was_home", mcp.Description("Whether the client was home."), mcp.Required()),
		mcp.WithBoolean("arrived_on_time", mcp.Description("Whether the visitor arrived on time.")),
		mcp.WithString("visit_date", mcp.Description("Date of the visit as YYYY-MM-DD (defaults to today).")),
		mcp.WithString("scheduled", mcp.Description("Scheduled time as HH:MM (defaults to now).")),
		mcp.WithString("notes", mcp.Description("Free-form notes about the visit.")),
		mcp.WithString("recorded_by", mcp.Description("Who recorded the visit.")),
		timezoneArg,
	), h.handleRecordVisit)

	// --- 6. Tool: profile_template ---
	s.AddTool(mcp.NewTool("profile_template",
		mcp.WithDescription("Create a starter availability profile."),
		mcp.WithString("kind", mcp.Description("Template kind; unknown kinds yield an empty custom profile."),
			mcp.Enum("full-day", "after-work", "weekends", "custom")),
	), h.handleProfileTemplate)

	// --- 7. Tool: rank_clients ---
	s.AddTool(mcp.NewTool("rank_clients",
		mcp.WithDescription("Rank stored clients by their current reachability score."),
		mcp.WithString("category", mcp.Description("Only include clients in this category."),
			mcp.Enum("full-day", "after-work", "evening-only", "weekends-only", "very-limited")),
		mcp.WithNumber("min_score", mcp.Description("Only include clients scoring at least this much.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleRankClients)

	return s
}

// StartMCPServer starts the athome MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
