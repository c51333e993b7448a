package algo

import "github.com/huangsam/athome/schema"

// CreateDefault returns a fresh profile built from a template.
// Unknown kinds fall back to the empty custom template.
func CreateDefault(kind schema.ProfileKind) schema.AvailabilityProfile {
	switch kind {
	case schema.FullDayKind:
		return schema.AvailabilityProfile{
			TimeWindows: []schema.TimeWindow{
				{Days: allDays(), From: schema.Clock(8, 0), To: schema.Clock(20, 0), Label: "All day"},
			},
			Preferences: schema.Preferences{FlexibleSchedule: true},
		}
	case schema.AfterWorkKind:
		return schema.AvailabilityProfile{
			TimeWindows: []schema.TimeWindow{
				{
					Days:  []schema.Weekday{schema.Monday, schema.Tuesday, schema.Wednesday, schema.Thursday, schema.Friday},
					From:  schema.Clock(17, 30),
					To:    schema.Clock(20, 0),
					Label: "After work",
				},
				{Days: []schema.Weekday{schema.Saturday}, From: schema.Clock(9, 0), To: schema.Clock(13, 0), Label: "Saturday morning"},
			},
			Preferences: schema.Preferences{RequiresAdvanceNotice: true, AdvanceNoticeHours: 24},
		}
	case schema.WeekendsKind:
		return schema.AvailabilityProfile{
			TimeWindows: []schema.TimeWindow{
				{Days: []schema.Weekday{schema.Saturday, schema.Sunday}, From: schema.Clock(9, 0), To: schema.Clock(18, 0), Label: "Weekend"},
			},
			Preferences: schema.Preferences{RequiresAdvanceNotice: true, AdvanceNoticeHours: 48},
		}
	default:
		return schema.AvailabilityProfile{TimeWindows: []schema.TimeWindow{}}
	}
}

// ParseProfileKind resolves a template name, reporting whether it was known.
func ParseProfileKind(s string) (schema.ProfileKind, bool) {
	for _, k := range schema.AllProfileKinds {
		if string(k) == s {
			return k, true
		}
	}
	return schema.CustomKind, false
}

func allDays() []schema.Weekday {
	days := make([]schema.Weekday, len(schema.AllWeekdays))
	copy(days, schema.AllWeekdays)
	return days
}
