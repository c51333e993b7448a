package algo

import (
	"testing"
	"time"

	"github.com/huangsam/athome/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordVisit(t *testing.T) {
	now := time.Date(2024, time.June, 3, 18, 45, 0, 0, time.UTC)
	p := CreateDefault(schema.AfterWorkKind)

	out := RecordVisit(p, schema.VisitOutcome{
		VisitDate:     schema.NewDate(2024, time.June, 3),
		ScheduledTime: schema.Clock(18, 0),
		WasHome:       true,
		ArrivedOnTime: true,
		Notes:         "dishwasher fixed",
		RecordedBy:    "tech-7",
	}, now)

	assert.Empty(t, p.PresenceHistory)
	require.Len(t, out.PresenceHistory, 1)
	assert.Equal(t, now, out.PresenceHistory[0].RecordedAt)
	assert.Equal(t, 1, out.Stats.TotalVisits)
	assert.Equal(t, 100, out.Stats.SuccessRate)
	require.NotNil(t, out.Stats.LastVisitDate)
	assert.Equal(t, "2024-06-03", out.Stats.LastVisitDate.String())
	assert.Equal(t, now, out.LastUpdated)
	assert.Equal(t, "tech-7", out.UpdatedBy)
	assert.Equal(t, ComputeScore(out), out.Score)
	assert.Equal(t, Classify(out.Score).Key, out.Category)
}

func TestRecordVisitKeepsUpdatedByWhenAnonymous(t *testing.T) {
	p := CreateDefault(schema.WeekendsKind)
	p.UpdatedBy = "dispatcher"
	out := RecordVisit(p, schema.VisitOutcome{VisitDate: schema.NewDate(2024, 1, 6)}, time.Now())
	assert.Equal(t, "dispatcher", out.UpdatedBy)
}

func TestRecordVisitCapsHistory(t *testing.T) {
	p := CreateDefault(schema.FullDayKind)
	start := schema.NewDate(2024, time.January, 1)
	for i := range 25 {
		p = RecordVisit(p, schema.VisitOutcome{VisitDate: start.AddDays(i), WasHome: i%2 == 0}, time.Now())
	}

	require.Len(t, p.PresenceHistory, schema.MaxHistory)
	assert.Equal(t, "2024-01-06", p.PresenceHistory[0].VisitDate.String())
	assert.Equal(t, "2024-01-25", p.PresenceHistory[19].VisitDate.String())
	assert.Equal(t, schema.MaxHistory, p.Stats.TotalVisits)
	assert.Equal(t, 10, p.Stats.SuccessfulVisits)
	assert.Equal(t, 50, p.Stats.SuccessRate)
}

func TestRecordVisitDoesNotAlias(t *testing.T) {
	p := CreateDefault(schema.FullDayKind)
	p.PresenceHistory = make([]schema.PresenceRecord, 1, 10)
	a := RecordVisit(p, schema.VisitOutcome{Notes: "a"}, time.Now())
	b := RecordVisit(p, schema.VisitOutcome{Notes: "b"}, time.Now())
	assert.Equal(t, "a", a.PresenceHistory[1].Notes)
	assert.Equal(t, "b", b.PresenceHistory[1].Notes)
	assert.Len(t, p.PresenceHistory, 1)
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name     string
		history  []schema.PresenceRecord
		total    int
		success  int
		rate     int
		lastDate string
	}{
		{"empty", nil, 0, 0, 0, ""},
		{"all home", visits(true, true), 2, 2, 100, "2024-01-02"},
		{"one of three", visits(true, false, false), 3, 1, 33, "2024-01-03"},
		{"two of three", visits(true, true, false), 3, 2, 67, "2024-01-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeStats(tt.history)
			assert.Equal(t, tt.total, s.TotalVisits)
			assert.Equal(t, tt.success, s.SuccessfulVisits)
			assert.Equal(t, tt.rate, s.SuccessRate)
			if tt.lastDate == "" {
				assert.Nil(t, s.LastVisitDate)
				return
			}
			require.NotNil(t, s.LastVisitDate)
			assert.Equal(t, tt.lastDate, s.LastVisitDate.String())
		})
	}
}
