package algo

import (
	"testing"
	"time"

	"github.com/huangsam/athome/schema"
)

func benchProfile() schema.AvailabilityProfile {
	p := CreateDefault(schema.AfterWorkKind)
	for i := range schema.MaxHistory {
		p.PresenceHistory = append(p.PresenceHistory, schema.PresenceRecord{WasHome: i%3 != 0})
	}
	return p
}

func BenchmarkComputeScore(b *testing.B) {
	p := benchProfile()
	for b.Loop() {
		ComputeScore(p)
	}
}

func BenchmarkBestSlots(b *testing.B) {
	p := benchProfile()
	today := schema.NewDate(2024, time.May, 13)
	for b.Loop() {
		BestSlots(p, today, 30)
	}
}

func BenchmarkRecordVisit(b *testing.B) {
	p := benchProfile()
	now := time.Now()
	outcome := schema.VisitOutcome{VisitDate: schema.DateOf(now), WasHome: true}
	for b.Loop() {
		RecordVisit(p, outcome, now)
	}
}
