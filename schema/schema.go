// Package schema has the models and constants shared by every part of athome.
package schema

import (
	"slices"
	"time"
)

// TimeWindow is a recurring weekly interval in which a client is usually at home.
// Days has set semantics; From and To are expected to satisfy From < To.
type TimeWindow struct {
	Days  []Weekday `json:"days"`
	From  TimeOfDay `json:"from"`
	To    TimeOfDay `json:"to"`
	Label string    `json:"label,omitempty"`
}

// Minutes returns the length of the window in minutes, or zero when From >= To.
func (w TimeWindow) Minutes() int {
	if w.To <= w.From {
		return 0
	}
	return int(w.To - w.From)
}

// DistinctDays returns the days of the window with duplicates removed, in first-seen order.
func (w TimeWindow) DistinctDays() []Weekday {
	seen := make(map[Weekday]struct{}, len(w.Days))
	out := make([]Weekday, 0, len(w.Days))
	for _, d := range w.Days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// Covers reports whether the window applies on the given day.
func (w TimeWindow) Covers(d Weekday) bool {
	return slices.Contains(w.Days, d)
}

// Contains reports whether t falls inside the window on a covered day. Both bounds are inclusive.
func (w TimeWindow) Contains(t TimeOfDay) bool {
	return w.From < w.To && w.From <= t && t <= w.To
}

// Range formats the window as "HH:MM-HH:MM".
func (w TimeWindow) Range() string {
	return w.From.String() + "-" + w.To.String()
}

// Preferences holds the scheduling flexibility of a client.
type Preferences struct {
	FlexibleSchedule      bool `json:"flexible_schedule"`
	RequiresAdvanceNotice bool `json:"requires_advance_notice"`
	AdvanceNoticeHours    int  `json:"advance_notice_hours,omitempty"`
}

// PresenceRecord is the outcome of one past visit. Records are immutable once created.
type PresenceRecord struct {
	VisitDate     Date      `json:"visit_date"`
	ScheduledTime TimeOfDay `json:"scheduled_time"`
	WasHome       bool      `json:"was_home"`
	ArrivedOnTime bool      `json:"arrived_on_time"`
	Notes         string    `json:"notes,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// Stats summarizes the presence history. It is always derived, never set by hand.
type Stats struct {
	TotalVisits      int   `json:"total_visits"`
	SuccessfulVisits int   `json:"successful_visits"`
	SuccessRate      int   `json:"success_rate"`
	LastVisitDate    *Date `json:"last_visit_date,omitempty"`
}

// AvailabilityProfile is the aggregate describing when a client can be reached at home.
type AvailabilityProfile struct {
	Score           int              `json:"score"`
	TimeWindows     []TimeWindow     `json:"time_windows"`
	Preferences     Preferences      `json:"preferences"`
	Notes           []string         `json:"notes,omitempty"`
	PresenceHistory []PresenceRecord `json:"presence_history,omitempty"`
	Stats           Stats            `json:"stats"`
	Category        CategoryKey      `json:"category,omitempty"`
	LastUpdated     time.Time        `json:"last_updated"`
	UpdatedBy       string           `json:"updated_by,omitempty"`
}

// Clone returns a deep copy of the profile so the result shares no slices with p.
func (p AvailabilityProfile) Clone() AvailabilityProfile {
	out := p
	if p.TimeWindows != nil {
		out.TimeWindows = make([]TimeWindow, len(p.TimeWindows))
		for i, w := range p.TimeWindows {
			w.Days = slices.Clone(w.Days)
			out.TimeWindows[i] = w
		}
	}
	out.Notes = slices.Clone(p.Notes)
	out.PresenceHistory = slices.Clone(p.PresenceHistory)
	if p.Stats.LastVisitDate != nil {
		d := *p.Stats.LastVisitDate
		out.Stats.LastVisitDate = &d
	}
	return out
}

// ClientProfile binds a profile to the client it belongs to.
type ClientProfile struct {
	ClientID string              `json:"client_id"`
	Profile  AvailabilityProfile `json:"profile"`
}

// Clone returns a deep copy of the client profile.
func (c ClientProfile) Clone() ClientProfile {
	return ClientProfile{ClientID: c.ClientID, Profile: c.Profile.Clone()}
}

// VisitOutcome is the input for recording a visit.
type VisitOutcome struct {
	VisitDate     Date      `json:"visit_date"`
	ScheduledTime TimeOfDay `json:"scheduled_time"`
	WasHome       bool      `json:"was_home"`
	ArrivedOnTime bool      `json:"arrived_on_time"`
	Notes         string    `json:"notes,omitempty"`
	RecordedBy    string    `json:"recorded_by,omitempty"`
}
