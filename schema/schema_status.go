package schema

import "time"

// StoreStatus represents the status of the profile store.
type StoreStatus struct {
	Backend          string         `json:"backend"`
	Connected        bool           `json:"connected"`
	SchemaVersion    int            `json:"schema_version"`
	TotalProfiles    int            `json:"total_profiles"`
	TotalRecords     int            `json:"total_records"`
	LastUpdated      time.Time      `json:"last_updated"`
	OldestUpdated    time.Time      `json:"oldest_updated"`
	CategoryCounts   map[string]int `json:"category_counts"`
	CacheEntries     int            `json:"cache_entries"`
	CacheEnabled     bool           `json:"cache_enabled"`
	ConnectionSource string         `json:"connection_source,omitempty"`
}

// PresenceRow is a flattened presence record as kept in the store.
type PresenceRow struct {
	RecordID      string
	ClientID      string
	Seq           int
	VisitDate     Date
	ScheduledTime TimeOfDay
	WasHome       bool
	ArrivedOnTime bool
	Notes         string
	RecordedAt    time.Time
}
