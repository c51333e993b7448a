package iocache

import (
	"context"
	"testing"
	"time"

	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) contract.ProfileStore {
	t.Helper()
	store, err := NewProfileStore(context.Background(), schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleClient(id string, score int, category schema.CategoryKey) schema.ClientProfile {
	return schema.ClientProfile{
		ClientID: id,
		Profile: schema.AvailabilityProfile{
			Score:    score,
			Category: category,
			TimeWindows: []schema.TimeWindow{
				{Days: []schema.Weekday{schema.Saturday, schema.Sunday}, From: schema.Clock(9, 0), To: schema.Clock(18, 0), Label: "Weekend"},
			},
			Preferences: schema.Preferences{RequiresAdvanceNotice: true, AdvanceNoticeHours: 48},
			Notes:       []string{"ring the bell twice"},
			PresenceHistory: []schema.PresenceRecord{
				{VisitDate: schema.NewDate(2024, time.May, 11), ScheduledTime: schema.Clock(10, 0), WasHome: true, ArrivedOnTime: true, RecordedAt: time.Date(2024, time.May, 11, 10, 5, 0, 0, time.UTC)},
				{VisitDate: schema.NewDate(2024, time.May, 12), ScheduledTime: schema.Clock(11, 0), Notes: "nobody answered", RecordedAt: time.Date(2024, time.May, 12, 11, 5, 0, 0, time.UTC)},
			},
			LastUpdated: time.Date(2024, time.May, 12, 11, 5, 0, 0, time.UTC),
			UpdatedBy:   "tester",
		},
	}
}

func TestProfileStore_NoneBackend(t *testing.T) {
	ctx := context.Background()
	store, err := NewProfileStore(ctx, schema.NoneBackend, "")
	require.NoError(t, err)

	_, err = store.Get(ctx, "anyone")
	assert.ErrorIs(t, err, contract.ErrProfileNotFound)
	assert.NoError(t, store.Put(ctx, sampleClient("c-1", 50, schema.EveningOnlyCategory)))
	assert.NoError(t, store.Delete(ctx, "c-1"))

	list, err := store.List(ctx, schema.ProfileFilter{})
	assert.NoError(t, err)
	assert.Empty(t, list)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestProfileStore_UnsupportedBackend(t *testing.T) {
	_, err := NewProfileStore(context.Background(), schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestProfileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)
	want := sampleClient("c-1", 38, schema.WeekendsOnlyCategory)

	require.NoError(t, store.Put(ctx, want))

	got, err := store.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, want.ClientID, got.ClientID)
	assert.Equal(t, want.Profile.Score, got.Profile.Score)
	assert.Equal(t, want.Profile.Category, got.Profile.Category)
	assert.Equal(t, want.Profile.TimeWindows, got.Profile.TimeWindows)
	assert.Equal(t, want.Profile.Preferences, got.Profile.Preferences)
	assert.Equal(t, want.Profile.Notes, got.Profile.Notes)
	assert.Equal(t, "tester", got.Profile.UpdatedBy)
	assert.True(t, want.Profile.LastUpdated.Equal(got.Profile.LastUpdated))

	require.Len(t, got.Profile.PresenceHistory, 2)
	first := got.Profile.PresenceHistory[0]
	assert.Equal(t, "2024-05-11", first.VisitDate.String())
	assert.Equal(t, schema.Clock(10, 0), first.ScheduledTime)
	assert.True(t, first.WasHome)
	assert.True(t, first.ArrivedOnTime)
	assert.Equal(t, "nobody answered", got.Profile.PresenceHistory[1].Notes)

	// Stats are derived from the stored history
	assert.Equal(t, 2, got.Profile.Stats.TotalVisits)
	assert.Equal(t, 1, got.Profile.Stats.SuccessfulVisits)
	assert.Equal(t, 50, got.Profile.Stats.SuccessRate)
	require.NotNil(t, got.Profile.Stats.LastVisitDate)
	assert.Equal(t, "2024-05-12", got.Profile.Stats.LastVisitDate.String())
}

func TestProfileStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	cp := sampleClient("c-1", 38, schema.WeekendsOnlyCategory)
	require.NoError(t, store.Put(ctx, cp))

	cp.Profile.Score = 72
	cp.Profile.Category = schema.AfterWorkCategory
	cp.Profile.PresenceHistory = cp.Profile.PresenceHistory[:1]
	require.NoError(t, store.Put(ctx, cp))

	got, err := store.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, 72, got.Profile.Score)
	assert.Len(t, got.Profile.PresenceHistory, 1)

	rows, err := store.History(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestProfileStore_PutTrimsHistory(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	cp := sampleClient("c-1", 38, schema.WeekendsOnlyCategory)
	cp.Profile.PresenceHistory = nil
	start := schema.NewDate(2024, time.January, 1)
	for i := range schema.MaxHistory + 5 {
		cp.Profile.PresenceHistory = append(cp.Profile.PresenceHistory, schema.PresenceRecord{
			VisitDate: start.AddDays(i), ScheduledTime: schema.Clock(9, 0), WasHome: i%2 == 0,
		})
	}
	require.NoError(t, store.Put(ctx, cp))

	got, err := store.Get(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, got.Profile.PresenceHistory, schema.MaxHistory)
	assert.Equal(t, start.AddDays(5).String(), got.Profile.PresenceHistory[0].VisitDate.String())
}

func TestProfileStore_PutRejectsEmptyID(t *testing.T) {
	store := newMemoryStore(t)
	err := store.Put(context.Background(), schema.ClientProfile{ClientID: "  "})
	require.Error(t, err)
}

func TestProfileStore_GetMissing(t *testing.T) {
	store := newMemoryStore(t)
	_, err := store.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, contract.ErrProfileNotFound)
}

func TestProfileStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)
	require.NoError(t, store.Put(ctx, sampleClient("c-1", 38, schema.WeekendsOnlyCategory)))

	require.NoError(t, store.Delete(ctx, "c-1"))

	_, err := store.Get(ctx, "c-1")
	assert.ErrorIs(t, err, contract.ErrProfileNotFound)
	rows, err := store.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Deleting again is not an error
	assert.NoError(t, store.Delete(ctx, "c-1"))
}

func TestProfileStore_List(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)
	require.NoError(t, store.Put(ctx, sampleClient("b", 72, schema.AfterWorkCategory)))
	require.NoError(t, store.Put(ctx, sampleClient("a", 72, schema.AfterWorkCategory)))
	require.NoError(t, store.Put(ctx, sampleClient("c", 95, schema.FullDayCategory)))
	require.NoError(t, store.Put(ctx, sampleClient("d", 10, schema.VeryLimitedCategory)))

	ids := func(list []schema.ClientProfile) []string {
		out := make([]string, len(list))
		for i, cp := range list {
			out[i] = cp.ClientID
		}
		return out
	}

	tests := []struct {
		name   string
		filter schema.ProfileFilter
		want   []string
	}{
		{"all ordered by score then id", schema.ProfileFilter{}, []string{"c", "a", "b", "d"}},
		{"min score", schema.ProfileFilter{MinScore: 70}, []string{"c", "a", "b"}},
		{"category", schema.ProfileFilter{Category: schema.AfterWorkCategory}, []string{"a", "b"}},
		{"limit", schema.ProfileFilter{Limit: 2}, []string{"c", "a"}},
		{"no match", schema.ProfileFilter{Category: schema.EveningOnlyCategory}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := store.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(list))
		})
	}

	list, err := store.List(ctx, schema.ProfileFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Profile.PresenceHistory, 2)
}

func TestProfileStore_History(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)
	require.NoError(t, store.Put(ctx, sampleClient("b", 72, schema.AfterWorkCategory)))
	require.NoError(t, store.Put(ctx, sampleClient("a", 72, schema.AfterWorkCategory)))

	rows, err := store.History(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "a", rows[0].ClientID)
	assert.Equal(t, 0, rows[0].Seq)
	assert.Equal(t, 1, rows[1].Seq)
	assert.Equal(t, "b", rows[2].ClientID)
	assert.Len(t, rows[0].RecordID, 36)
	assert.NotEqual(t, rows[0].RecordID, rows[1].RecordID)
}

func TestProfileStore_GetStatus(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Zero(t, status.TotalProfiles)
	assert.True(t, status.LastUpdated.IsZero())

	older := sampleClient("a", 72, schema.AfterWorkCategory)
	older.Profile.LastUpdated = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Put(ctx, older))
	require.NoError(t, store.Put(ctx, sampleClient("b", 95, schema.FullDayCategory)))
	require.NoError(t, store.Put(ctx, sampleClient("c", 75, schema.AfterWorkCategory)))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalProfiles)
	assert.Equal(t, 6, status.TotalRecords)
	assert.Equal(t, map[string]int{"after-work": 2, "full-day": 1}, status.CategoryCounts)
	assert.True(t, status.OldestUpdated.Equal(older.Profile.LastUpdated))
	assert.True(t, status.LastUpdated.Equal(time.Date(2024, time.May, 12, 11, 5, 0, 0, time.UTC)))
	assert.Zero(t, status.SchemaVersion)
}

func TestRebind(t *testing.T) {
	pg := &ProfileStoreImpl{backend: schema.PostgreSQLBackend}
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", pg.rebind("SELECT a FROM t WHERE x = ? AND y = ?"))

	my := &ProfileStoreImpl{backend: schema.MySQLBackend}
	assert.Equal(t, "WHERE x = ?", my.rebind("WHERE x = ?"))
}

func TestFormatParseTime(t *testing.T) {
	assert.Empty(t, formatTime(time.Time{}))
	assert.True(t, parseTime("").IsZero())
	assert.True(t, parseTime("garbage").IsZero())

	local := time.Date(2024, time.May, 15, 9, 30, 0, 5, time.FixedZone("X", 2*3600))
	text := formatTime(local)
	assert.Equal(t, "2024-05-15T07:30:00.000000005Z", text)
	assert.True(t, parseTime(text).Equal(local))

	// Fixed width keeps lexical and chronological order aligned
	assert.Less(t, formatTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), formatTime(time.Date(2024, 1, 1, 0, 0, 0, 1, time.UTC)))
}
