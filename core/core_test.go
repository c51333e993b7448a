package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/athome/core/algo"
	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/internal/iocache"
	"github.com/huangsam/athome/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow is a Wednesday afternoon.
var testNow = time.Date(2024, time.May, 15, 14, 30, 0, 0, time.UTC)

func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		Now:          testNow,
		Today:        schema.DateOf(testNow),
		At:           testNow,
		Location:     time.UTC,
		DaysAhead:    schema.DefaultDaysAhead,
		ResultLimit:  contract.DefaultResultLimit,
		Output:       schema.JSONOut,
		OutputFile:   filepath.Join(t.TempDir(), "out.json"),
		StoreBackend: schema.SQLiteBackend,
	}
}

func memoryManager(t *testing.T) (contract.ProfileStore, contract.StoreManager) {
	t.Helper()
	store, err := iocache.NewProfileStore(context.Background(), schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, iocache.NewProfileStoreManager(store)
}

func readOutput[T any](t *testing.T, cfg *contract.Config) T {
	t.Helper()
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// storedTemplate stores a template profile with a deliberately stale score.
func storedTemplate(t *testing.T, store contract.ProfileStore, id string, kind schema.ProfileKind) {
	t.Helper()
	p := algo.CreateDefault(kind)
	p.Score = 0
	p.Category = schema.VeryLimitedCategory
	p.LastUpdated = testNow.Add(-time.Hour)
	require.NoError(t, store.Put(context.Background(), schema.ClientProfile{ClientID: id, Profile: p}))
}

func TestExecuteScore_FullDayTemplate(t *testing.T) {
	cfg := testConfig(t)
	data, err := json.Marshal(algo.CreateDefault(schema.FullDayKind))
	require.NoError(t, err)
	cfg.ProfilePath = writeProfileFile(t, string(data))
	cfg.Explain = true

	require.NoError(t, ExecuteScore(context.Background(), cfg, nil))

	report := readOutput[schema.ScoreReport](t, cfg)
	assert.Equal(t, 100, report.Score)
	assert.Equal(t, schema.FullDayCategory, report.Category.Key)
	require.NotNil(t, report.Breakdown)
	assert.InDelta(t, schema.WidthMax, report.Breakdown.Terms[schema.BreakdownWidth], 0.001)
}

func TestExecuteScore_Save(t *testing.T) {
	ctx := context.Background()
	store, mgr := memoryManager(t)
	storedTemplate(t, store, "c-1", schema.FullDayKind)

	cfg := testConfig(t)
	cfg.ClientID = "c-1"
	cfg.Save = true
	require.NoError(t, ExecuteScore(ctx, cfg, mgr))

	got, err := store.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, 100, got.Profile.Score)
	assert.Equal(t, schema.FullDayCategory, got.Profile.Category)
	assert.True(t, got.Profile.LastUpdated.Equal(testNow))
}

func TestExecuteScore_SaveNeedsClient(t *testing.T) {
	cfg := testConfig(t)
	cfg.ProfilePath = writeProfileFile(t, bareProfileJSON)
	cfg.Save = true

	err := ExecuteScore(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, ErrClientRequired)
}

func TestExecuteClassify(t *testing.T) {
	tests := []struct {
		raw  string
		want schema.CategoryKey
	}{
		{"90", schema.FullDayCategory},
		{"89", schema.AfterWorkCategory},
		{"30", schema.WeekendsOnlyCategory},
		{"29", schema.VeryLimitedCategory},
		{"-4", schema.VeryLimitedCategory},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cfg := testConfig(t)
			require.NoError(t, ExecuteClassify(context.Background(), cfg, tt.raw))
			out := readOutput[struct {
				Category schema.Category `json:"category"`
			}](t, cfg)
			assert.Equal(t, tt.want, out.Category.Key)
		})
	}

	err := ExecuteClassify(context.Background(), testConfig(t), "seventy")
	assert.ErrorContains(t, err, "must be an integer")
}

func TestExecuteCheck(t *testing.T) {
	data, err := json.Marshal(schema.ClientProfile{ClientID: "c-9", Profile: algo.CreateDefault(schema.FullDayKind)})
	require.NoError(t, err)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"afternoon", testNow, true},
		{"late evening", time.Date(2024, time.May, 15, 21, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.ProfilePath = writeProfileFile(t, string(data))
			cfg.At = tt.at
			require.NoError(t, ExecuteCheck(context.Background(), cfg, nil))

			out := readOutput[struct {
				ClientID  string `json:"client_id"`
				Available *bool  `json:"available"`
				Reason    string `json:"reason"`
			}](t, cfg)
			assert.Equal(t, "c-9", out.ClientID)
			require.NotNil(t, out.Available)
			assert.Equal(t, tt.want, *out.Available)
		})
	}
}

func TestExecuteSlots_Limit(t *testing.T) {
	data, err := json.Marshal(algo.CreateDefault(schema.FullDayKind))
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.ProfilePath = writeProfileFile(t, string(data))
	cfg.ResultLimit = 3
	require.NoError(t, ExecuteSlots(context.Background(), cfg, nil))

	slots := readOutput[[]schema.Slot](t, cfg)
	assert.Len(t, slots, 3)
}

func TestSlotsForProfile_WeekendBeatsEvening(t *testing.T) {
	p := schema.AvailabilityProfile{TimeWindows: []schema.TimeWindow{
		{Days: []schema.Weekday{schema.Tuesday}, From: schema.Clock(17, 0), To: schema.Clock(19, 0)},
		{Days: []schema.Weekday{schema.Saturday}, From: schema.Clock(9, 0), To: schema.Clock(18, 0)},
	}}
	slots := SlotsForProfile(schema.ClientProfile{Profile: p}, schema.DateOf(testNow), 7, 0)
	require.Len(t, slots, 2)
	assert.Equal(t, "Saturday", slots[0].DayName)
	assert.Equal(t, "Tuesday", slots[1].DayName)
}

func TestExecuteRecord_Store(t *testing.T) {
	ctx := context.Background()
	store, mgr := memoryManager(t)
	storedTemplate(t, store, "c-1", schema.WeekendsKind)

	cfg := testConfig(t)
	cfg.ClientID = "c-1"
	cfg.Visit = schema.VisitOutcome{
		VisitDate:     schema.DateOf(testNow),
		ScheduledTime: schema.Clock(14, 0),
		WasHome:       true,
		ArrivedOnTime: true,
		RecordedBy:    "nurse-3",
	}
	require.NoError(t, ExecuteRecord(ctx, cfg, mgr))

	got, err := store.Get(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, got.Profile.PresenceHistory, 1)
	assert.Equal(t, 1, got.Profile.Stats.SuccessfulVisits)
	assert.Equal(t, "nurse-3", got.Profile.UpdatedBy)

	report := readOutput[schema.ScoreReport](t, cfg)
	assert.Equal(t, "c-1", report.ClientID)
	assert.Equal(t, got.Profile.Score, report.Score)
}

func TestExecuteRecord_FileProfile(t *testing.T) {
	cfg := testConfig(t)
	cfg.ProfilePath = writeProfileFile(t, bareProfileJSON)
	cfg.Output = schema.TextOut
	cfg.Visit = schema.VisitOutcome{VisitDate: schema.DateOf(testNow), ScheduledTime: schema.Clock(11, 0)}

	require.NoError(t, ExecuteRecord(context.Background(), cfg, nil))

	// File profiles come back as JSON regardless of --output.
	p := readOutput[schema.AvailabilityProfile](t, cfg)
	require.Len(t, p.PresenceHistory, 2)
	assert.False(t, p.PresenceHistory[1].WasHome)
	assert.Equal(t, 50, p.Stats.SuccessRate)
	assert.True(t, p.LastUpdated.Equal(testNow))
}

func TestRecordOutcome_HistoryCap(t *testing.T) {
	cfg := testConfig(t)
	cp := schema.ClientProfile{Profile: algo.CreateDefault(schema.AfterWorkKind)}
	for i := range 25 {
		var saved bool
		var err error
		cp, saved, err = RecordOutcome(context.Background(), cfg, nil, cp, schema.VisitOutcome{
			VisitDate: schema.NewDate(2024, time.January, 1).AddDays(i),
			WasHome:   true,
		})
		require.NoError(t, err)
		assert.False(t, saved)
	}
	assert.Len(t, cp.Profile.PresenceHistory, schema.MaxHistory)
	assert.Equal(t, schema.NewDate(2024, time.January, 6), cp.Profile.PresenceHistory[0].VisitDate)
}

func TestExecuteHistory(t *testing.T) {
	cfg := testConfig(t)
	cfg.ProfilePath = writeProfileFile(t, bareProfileJSON)
	require.NoError(t, ExecuteHistory(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-05-11")
}

func TestExecuteTemplate(t *testing.T) {
	tests := []struct {
		kind    string
		windows int
		score   int
	}{
		{"full-day", 1, 100},
		{"weekends", 1, 38},
		{"mystery", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Output = schema.TextOut
			require.NoError(t, ExecuteTemplate(context.Background(), cfg, tt.kind))

			p := readOutput[schema.AvailabilityProfile](t, cfg)
			assert.Len(t, p.TimeWindows, tt.windows)
			assert.Equal(t, tt.score, p.Score)
		})
	}
}

func TestExecuteRank(t *testing.T) {
	ctx := context.Background()
	store, mgr := memoryManager(t)
	storedTemplate(t, store, "c-a", schema.FullDayKind)
	storedTemplate(t, store, "c-b", schema.WeekendsKind)
	storedTemplate(t, store, "c-c", schema.FullDayKind)

	t.Run("all", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, ExecuteRank(ctx, cfg, mgr))
		ranked := readOutput[[]schema.RankedClient](t, cfg)
		require.Len(t, ranked, 3)
		assert.Equal(t, []string{"c-a", "c-c", "c-b"}, []string{ranked[0].ClientID, ranked[1].ClientID, ranked[2].ClientID})
		assert.Equal(t, 100, ranked[0].Score)
		assert.Equal(t, 3, ranked[2].Rank)
	})

	t.Run("category filter", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Category = schema.WeekendsOnlyCategory
		require.NoError(t, ExecuteRank(ctx, cfg, mgr))
		ranked := readOutput[[]schema.RankedClient](t, cfg)
		require.Len(t, ranked, 1)
		assert.Equal(t, "c-b", ranked[0].ClientID)
	})

	t.Run("min score and limit", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.MinScore = 50
		cfg.ResultLimit = 1
		require.NoError(t, ExecuteRank(ctx, cfg, mgr))
		ranked := readOutput[[]schema.RankedClient](t, cfg)
		require.Len(t, ranked, 1)
		assert.Equal(t, "c-a", ranked[0].ClientID)
	})

	t.Run("no store", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.StoreBackend = schema.NoneBackend
		assert.ErrorIs(t, ExecuteRank(ctx, cfg, mgr), contract.ErrStoreUnavailable)
	})
}

func TestExecuteProfilesList_UsesStoredScores(t *testing.T) {
	store, mgr := memoryManager(t)
	storedTemplate(t, store, "c-a", schema.FullDayKind)

	cfg := testConfig(t)
	require.NoError(t, ExecuteProfilesList(context.Background(), cfg, mgr))
	ranked := readOutput[[]schema.RankedClient](t, cfg)
	require.Len(t, ranked, 1)
	assert.Equal(t, 0, ranked[0].Score)
}

func TestExecuteProfilesSaveShowDelete(t *testing.T) {
	ctx := context.Background()
	store, mgr := memoryManager(t)

	cfg := testConfig(t)
	cfg.ProfilePath = writeProfileFile(t, bareProfileJSON)
	cfg.ClientID = "c-5"
	require.NoError(t, ExecuteProfilesSave(ctx, cfg, mgr))

	got, err := store.Get(ctx, "c-5")
	require.NoError(t, err)
	assert.Equal(t, schema.WeekendsOnlyCategory, got.Profile.Category)

	show := testConfig(t)
	show.ClientID = "c-5"
	require.NoError(t, ExecuteProfilesShow(ctx, show, mgr))
	p := readOutput[schema.AvailabilityProfile](t, show)
	assert.Len(t, p.TimeWindows, 1)

	del := testConfig(t)
	del.ClientID = "c-5"
	require.NoError(t, ExecuteProfilesDelete(ctx, del, mgr))
	_, err = store.Get(ctx, "c-5")
	assert.ErrorIs(t, err, contract.ErrProfileNotFound)

	assert.ErrorIs(t, ExecuteProfilesDelete(ctx, del, mgr), contract.ErrProfileNotFound)
}

func TestExecuteProfiles_RequireClient(t *testing.T) {
	_, mgr := memoryManager(t)
	cfg := testConfig(t)

	assert.ErrorIs(t, ExecuteProfilesShow(context.Background(), cfg, mgr), ErrClientRequired)
	assert.ErrorIs(t, ExecuteProfilesDelete(context.Background(), cfg, mgr), ErrClientRequired)
	assert.ErrorIs(t, ExecuteProfilesSave(context.Background(), cfg, mgr), contract.ErrNoProfileSource)
}

func TestExecuteMetrics(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, ExecuteMetrics(context.Background(), cfg, nil))
	model := readOutput[schema.MetricsRenderModel](t, cfg)
	assert.Len(t, model.Terms, len(schema.AllBreakdownKeys))
	assert.Len(t, model.Categories, 5)
}

func TestExecuteStoreStatus(t *testing.T) {
	store, mgr := memoryManager(t)
	storedTemplate(t, store, "c-a", schema.FullDayKind)

	cfg := testConfig(t)
	cfg.ConnectionSource = "flag"
	require.NoError(t, ExecuteStoreStatus(context.Background(), cfg, mgr))
	status := readOutput[schema.StoreStatus](t, cfg)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalProfiles)
	assert.Equal(t, "flag", status.ConnectionSource)

	none := testConfig(t)
	none.StoreBackend = schema.NoneBackend
	require.NoError(t, ExecuteStoreStatus(context.Background(), none, nil))
	assert.Equal(t, "none", readOutput[schema.StoreStatus](t, none).Backend)
}
