// Package parquet exports stored availability profiles and presence records
// to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/athome/core/algo"
	"github.com/huangsam/athome/schema"
	"github.com/parquet-go/parquet-go"
)

// ProfileSnapshot is one stored client profile flattened for analytics.
// This struct maps to the athome_profiles table plus derived columns.
type ProfileSnapshot struct {
	// ClientID identifies the client
	ClientID string `parquet:"client_id,snappy"`

	// Score is the availability score in [0, 100]
	Score int32 `parquet:"score,snappy"`

	// Category is the category key derived from the score
	Category string `parquet:"category,snappy"`

	// WindowCount is the number of declared time windows
	WindowCount int32 `parquet:"window_count,snappy"`

	// WeeklyMinutes is the summed weekly coverage of all windows
	WeeklyMinutes int32 `parquet:"weekly_minutes,snappy"`

	FlexibleSchedule   bool  `parquet:"flexible_schedule,snappy"`
	AdvanceNoticeHours int32 `parquet:"advance_notice_hours,snappy"`

	TotalVisits      int32 `parquet:"total_visits,snappy"`
	SuccessfulVisits int32 `parquet:"successful_visits,snappy"`
	SuccessRate      int32 `parquet:"success_rate,snappy"`

	// LastVisitDate is the most recent visit as YYYY-MM-DD (nullable)
	LastVisitDate *string `parquet:"last_visit_date,optional,snappy"`

	// LastUpdated is when the profile was last written (nullable)
	LastUpdated *time.Time `parquet:"last_updated,optional,snappy"`

	// UpdatedBy names who last changed the profile (nullable)
	UpdatedBy *string `parquet:"updated_by,optional,snappy"`
}

// PresenceRecord is one stored visit outcome.
// This struct maps to the athome_presence_records table.
type PresenceRecord struct {
	RecordID      string `parquet:"record_id,snappy"`
	ClientID      string `parquet:"client_id,snappy"`
	Seq           int32  `parquet:"seq,snappy"`
	VisitDate     string `parquet:"visit_date,snappy"`
	ScheduledTime string `parquet:"scheduled_time,snappy"`
	WasHome       bool   `parquet:"was_home,snappy"`
	ArrivedOnTime bool   `parquet:"arrived_on_time,snappy"`

	// Notes is free text from the visitor (nullable)
	Notes *string `parquet:"notes,optional,snappy"`

	// RecordedAt is when the outcome was recorded (nullable for imported rows)
	RecordedAt *time.Time `parquet:"recorded_at,optional,snappy"`
}

// WriteProfilesParquet writes profile snapshots to a Parquet file.
func WriteProfilesParquet(data []ProfileSnapshot, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WritePresenceParquet writes presence records to a Parquet file.
func WritePresenceParquet(data []PresenceRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet derives the schema from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertClientProfiles converts stored profiles to ProfileSnapshot rows.
func ConvertClientProfiles(clients []schema.ClientProfile) []ProfileSnapshot {
	result := make([]ProfileSnapshot, len(clients))
	for i, cp := range clients {
		p := cp.Profile
		snap := ProfileSnapshot{
			ClientID:           cp.ClientID,
			Score:              int32(p.Score),
			Category:           string(p.Category),
			WindowCount:        int32(len(p.TimeWindows)),
			WeeklyMinutes:      int32(algo.WeeklyMinutes(p.TimeWindows)),
			FlexibleSchedule:   p.Preferences.FlexibleSchedule,
			AdvanceNoticeHours: int32(p.Preferences.AdvanceNoticeHours),
			TotalVisits:        int32(p.Stats.TotalVisits),
			SuccessfulVisits:   int32(p.Stats.SuccessfulVisits),
			SuccessRate:        int32(p.Stats.SuccessRate),
			UpdatedBy:          optionalString(p.UpdatedBy),
		}
		if p.Stats.LastVisitDate != nil {
			snap.LastVisitDate = optionalString(p.Stats.LastVisitDate.String())
		}
		if !p.LastUpdated.IsZero() {
			t := p.LastUpdated.UTC()
			snap.LastUpdated = &t
		}
		result[i] = snap
	}
	return result
}

// ConvertPresenceRows converts stored presence rows to PresenceRecord rows.
func ConvertPresenceRows(rows []schema.PresenceRow) []PresenceRecord {
	result := make([]PresenceRecord, len(rows))
	for i, r := range rows {
		rec := PresenceRecord{
			RecordID:      r.RecordID,
			ClientID:      r.ClientID,
			Seq:           int32(r.Seq),
			VisitDate:     r.VisitDate.String(),
			ScheduledTime: r.ScheduledTime.String(),
			WasHome:       r.WasHome,
			ArrivedOnTime: r.ArrivedOnTime,
			Notes:         optionalString(r.Notes),
		}
		if !r.RecordedAt.IsZero() {
			t := r.RecordedAt.UTC()
			rec.RecordedAt = &t
		}
		result[i] = rec
	}
	return result
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
