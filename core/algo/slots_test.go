package algo

import (
	"testing"
	"time"

	"github.com/huangsam/athome/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-05-13 is a Monday.
var monday = schema.NewDate(2024, time.May, 13)

func TestBestSlotsRanksWeekendFirst(t *testing.T) {
	p := schema.AvailabilityProfile{TimeWindows: []schema.TimeWindow{
		window(schema.Clock(17, 0), schema.Clock(19, 0), "", schema.Tuesday),
		window(schema.Clock(9, 0), schema.Clock(18, 0), "Weekend", schema.Saturday),
	}}

	slots := BestSlots(p, monday, 7)
	require.Len(t, slots, 2)
	assert.Equal(t, "Saturday", slots[0].DayName)
	assert.Equal(t, 100, slots[0].Score)
	assert.True(t, slots[0].IsWeekend)
	assert.Equal(t, "2024-05-18", slots[0].Date.String())
	assert.Equal(t, "Weekend (9h window)", slots[0].Reason)

	assert.Equal(t, "Tuesday", slots[1].DayName)
	assert.Equal(t, 50, slots[1].Score)
	assert.Equal(t, "Available (2h window)", slots[1].Reason)
}

func TestBestSlotsScoring(t *testing.T) {
	tests := []struct {
		name     string
		window   schema.TimeWindow
		expected int
	}{
		{"short evening", window(schema.Clock(18, 0), schema.Clock(19, 0), "", schema.Monday), 50},
		{"medium evening", window(schema.Clock(16, 0), schema.Clock(20, 0), "", schema.Monday), 60},
		{"long afternoon", window(schema.Clock(12, 0), schema.Clock(18, 0), "", schema.Monday), 80},
		{"early short", window(schema.Clock(10, 0), schema.Clock(11, 0), "", schema.Monday), 60},
		{"weekend short", window(schema.Clock(15, 0), schema.Clock(16, 0), "", schema.Sunday), 65},
		{"everything capped", window(schema.Clock(8, 0), schema.Clock(20, 0), "", schema.Sunday), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := BestSlots(schema.AvailabilityProfile{TimeWindows: []schema.TimeWindow{tt.window}}, monday, 7)
			require.Len(t, slots, 1)
			assert.Equal(t, tt.expected, slots[0].Score)
		})
	}
}

func TestBestSlotsCapsAtFive(t *testing.T) {
	slots := BestSlots(CreateDefault(schema.FullDayKind), monday, 14)
	require.Len(t, slots, schema.MaxSlots)
	for _, s := range slots {
		assert.LessOrEqual(t, s.Score, 100)
	}
	// Weekend slots win and equal scores keep date order.
	assert.Equal(t, "2024-05-18", slots[0].Date.String())
	assert.Equal(t, "2024-05-19", slots[1].Date.String())
	assert.Equal(t, "2024-05-25", slots[2].Date.String())
}

func TestBestSlotsDefaultHorizon(t *testing.T) {
	p := schema.AvailabilityProfile{TimeWindows: []schema.TimeWindow{
		window(schema.Clock(18, 0), schema.Clock(19, 0), "", schema.Monday),
	}}
	// Today counts, so a week starting Monday holds exactly one Monday.
	assert.Len(t, BestSlots(p, monday, 0), 1)
	assert.Len(t, BestSlots(p, monday, -3), 1)
	assert.Len(t, BestSlots(p, monday, 8), 2)
	assert.Len(t, BestSlots(p, monday.AddDays(1), 6), 0)
}

func TestBestSlotsSkipsEmptyWindows(t *testing.T) {
	p := schema.AvailabilityProfile{TimeWindows: []schema.TimeWindow{
		window(schema.Clock(19, 0), schema.Clock(18, 0), "", schema.Monday),
	}}
	assert.Empty(t, BestSlots(p, monday, 7))
	assert.Empty(t, BestSlots(schema.AvailabilityProfile{}, monday, 7))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2.5", formatHours(150))
	assert.Equal(t, "12", formatHours(720))
	assert.Equal(t, "0.3", formatHours(20))
}
