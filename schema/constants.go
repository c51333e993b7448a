package schema

// Custom string types for type safety.
type (
	// BreakdownKey represents keys used in scoring breakdowns.
	BreakdownKey string

	// CategoryKey represents a reachability category.
	CategoryKey string

	// ProfileKind represents a default profile template.
	ProfileKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the profile store.
	DatabaseBackend string
)

// Breakdown keys used in the scoring logic.
const (
	BreakdownWidth       BreakdownKey = "width"       // weekly coverage, 0-60
	BreakdownHistory     BreakdownKey = "history"     // presence success, 0-30
	BreakdownFlexibility BreakdownKey = "flexibility" // schedule flexibility, 0-10
	BreakdownWeekday     BreakdownKey = "weekday"     // any Mon-Fri coverage, 0 or 10
	BreakdownLongWindow  BreakdownKey = "long_window" // any window of 6h or more, 0 or 5
)

// AllBreakdownKeys lists the scoring terms in evaluation order.
var AllBreakdownKeys = []BreakdownKey{
	BreakdownWidth, BreakdownHistory, BreakdownFlexibility, BreakdownWeekday, BreakdownLongWindow,
}

// All categories, best first.
const (
	FullDayCategory      CategoryKey = "full-day"
	AfterWorkCategory    CategoryKey = "after-work"
	EveningOnlyCategory  CategoryKey = "evening-only"
	WeekendsOnlyCategory CategoryKey = "weekends-only"
	VeryLimitedCategory  CategoryKey = "very-limited"
)

// ValidCategories lists all valid category keys.
var ValidCategories = map[CategoryKey]struct{}{
	FullDayCategory:      {},
	AfterWorkCategory:    {},
	EveningOnlyCategory:  {},
	WeekendsOnlyCategory: {},
	VeryLimitedCategory:  {},
}

// All profile templates supported.
const (
	FullDayKind   ProfileKind = "full-day"
	AfterWorkKind ProfileKind = "after-work"
	WeekendsKind  ProfileKind = "weekends"
	CustomKind    ProfileKind = "custom" // fallback
)

// AllProfileKinds lists every template kind.
var AllProfileKinds = []ProfileKind{FullDayKind, AfterWorkKind, WeekendsKind, CustomKind}

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Scoring and history limits.
const (
	MaxScore            = 100
	MaxHistory          = 20
	MaxSlots            = 5
	DefaultDaysAhead    = 7
	FullWeekMinutes     = 7 * 12 * 60 // seven 12h days
	LongWindowMinutes   = 360
	MediumWindowMinutes = 240
)

// Term ceilings used by the scoring engine.
const (
	WidthMax          = 60.0
	HistoryMax        = 30.0
	HistoryNoData     = 20.0
	FlexibleBonus     = 10.0
	NoNoticeBonus     = 5.0
	WeekdayBonus      = 10.0
	LongWindowBonus   = 5.0
	SlotBase          = 50
	SlotLongBonus     = 20
	SlotMediumBonus   = 10
	SlotWeekendBonus  = 15
	SlotMorningBonus  = 10
	SlotMorningCutoff = TimeOfDay(10 * 60)
)
