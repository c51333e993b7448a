package algo

import "github.com/huangsam/athome/schema"

func window(from, to schema.TimeOfDay, label string, days ...schema.Weekday) schema.TimeWindow {
	return schema.TimeWindow{Days: days, From: from, To: to, Label: label}
}

func visits(home ...bool) []schema.PresenceRecord {
	out := make([]schema.PresenceRecord, len(home))
	for i, h := range home {
		out[i] = schema.PresenceRecord{VisitDate: schema.NewDate(2024, 1, i+1), WasHome: h}
	}
	return out
}
