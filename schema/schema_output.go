package schema

// DisplayHint is opaque presentation metadata attached to a category.
type DisplayHint struct {
	Emoji string `json:"emoji"`
	Badge string `json:"badge"`
}

// Category is the classification of a score.
type Category struct {
	Key         CategoryKey `json:"key"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	MinScore    int         `json:"min_score"`
	Hint        DisplayHint `json:"display_hint"`
}

// Verdict answers whether a client is home at an instant.
// Available is nil when the profile has no data to decide on.
type Verdict struct {
	Available  *bool   `json:"available"`
	Reason     string  `json:"reason"`
	Suggestion *string `json:"suggestion,omitempty"`
}

// Slot is a recommended visit window on a concrete date.
type Slot struct {
	Date      Date      `json:"date"`
	DayName   string    `json:"day_name"`
	From      TimeOfDay `json:"time_from"`
	To        TimeOfDay `json:"time_to"`
	Score     int       `json:"score"`
	Reason    string    `json:"reason"`
	IsWeekend bool      `json:"is_weekend"`
}

// ScoreBreakdown is the per-term contribution to a score.
type ScoreBreakdown struct {
	Terms         map[BreakdownKey]float64 `json:"terms"`
	WeeklyMinutes int                      `json:"weekly_minutes"`
	Raw           float64                  `json:"raw"`
	Score         int                      `json:"score"`
}

// ScoreReport is the presentation model for a scored profile.
type ScoreReport struct {
	ClientID  string          `json:"client_id,omitempty"`
	Score     int             `json:"score"`
	Category  Category        `json:"category"`
	Stats     Stats           `json:"stats"`
	Windows   int             `json:"windows"`
	Breakdown *ScoreBreakdown `json:"breakdown,omitempty"`
}

// RankedClient adds rank and category to a stored client profile.
type RankedClient struct {
	Rank     int      `json:"rank"`
	ClientID string   `json:"client_id"`
	Score    int      `json:"score"`
	Category Category `json:"category"`
	Stats    Stats    `json:"stats"`
	Windows  int      `json:"windows"`
}

// ProfileFilter narrows a store listing.
type ProfileFilter struct {
	Category CategoryKey
	MinScore int
	Limit    int
}
