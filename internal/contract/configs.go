package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/athome/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	MaxDaysAhead       = 60
	DefaultCacheSize   = 1024
	DefaultCacheTTL    = 10 * time.Minute
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// atLayouts are the accepted layouts for --at, tried in order.
var atLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	ProfilePath string
	ClientID    string

	Now       time.Time // reference instant, in Location
	Today     schema.Date
	At        time.Time // instant for availability checks, in Location
	Location  *time.Location
	DaysAhead int

	ResultLimit int
	Category    schema.CategoryKey
	MinScore    int

	Output     schema.OutputMode
	OutputFile string
	Explain    bool
	Save       bool
	Width      int // Terminal width override (0 = auto-detect)

	Visit schema.VisitOutcome

	StoreBackend     schema.DatabaseBackend
	StoreDBConnect   string // Please use env var or keyring as this is plaintext
	ConnectionSource string
	CacheSize        int
	CacheTTL         time.Duration

	LogLevel    string
	LogFile     string
	PushGateway string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ProfilePathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Client         string `mapstructure:"client"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Limit          int    `mapstructure:"limit"`
	Timezone       string `mapstructure:"timezone"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	CacheSize      int    `mapstructure:"cache-size"`
	CacheTTL       string `mapstructure:"cache-ttl"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`
	LogLevel       string `mapstructure:"log-level"`
	LogFile        string `mapstructure:"log-file"`
	PushGateway    string `mapstructure:"push-gateway"`

	// --- Fields from scoreCmd.Flags() ---
	Explain bool `mapstructure:"explain"`
	Save    bool `mapstructure:"save"`

	// --- Fields from checkCmd.Flags() ---
	At string `mapstructure:"at"`

	// --- Fields from slotsCmd.Flags() ---
	DaysAhead int `mapstructure:"days-ahead"`

	// --- Fields from rankCmd.Flags() ---
	Category string `mapstructure:"category"`
	MinScore int    `mapstructure:"min-score"`

	// --- Fields from recordCmd.Flags() ---
	VisitDate string `mapstructure:"visit-date"`
	Scheduled string `mapstructure:"scheduled"`
	Home      bool   `mapstructure:"home"`
	OnTime    bool   `mapstructure:"on-time"`
	Notes     string `mapstructure:"notes"`
	By        string `mapstructure:"by"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. now is the reference instant.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeInputs(cfg, input, now); err != nil {
		return err
	}
	if err := processVisitInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateStoreConfig validates the store backend and resolves its connection string.
func validateStoreConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}

	connStr, source, err := ResolveConnection(input.StoreDBConnect)
	if err != nil {
		return fmt.Errorf("failed to resolve store-db-connect: %w", err)
	}
	cfg.StoreDBConnect = connStr
	cfg.ConnectionSource = source
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	cfg.CacheSize = input.CacheSize
	if cfg.CacheSize < 0 {
		return fmt.Errorf("cache-size cannot be negative (received %d)", input.CacheSize)
	}
	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := time.ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl %q: %w", input.CacheTTL, err)
		}
		if ttl <= 0 {
			return fmt.Errorf("cache-ttl must be positive (received %s)", input.CacheTTL)
		}
		cfg.CacheTTL = ttl
	}
	return nil
}

// validateSimpleInputs processes and validates all non-time related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.ProfilePath = strings.TrimSpace(input.ProfilePathStr)
	cfg.ClientID = strings.TrimSpace(input.Client)
	cfg.OutputFile = input.OutputFile
	cfg.Explain = input.Explain
	cfg.Save = input.Save
	cfg.Width = input.Width
	cfg.LogLevel = strings.ToLower(input.LogLevel)
	cfg.LogFile = input.LogFile
	cfg.PushGateway = strings.TrimSpace(input.PushGateway)

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- 3. Rank filters ---
	cfg.Category = schema.CategoryKey(strings.ToLower(strings.TrimSpace(input.Category)))
	if cfg.Category != "" {
		if _, ok := schema.ValidCategories[cfg.Category]; !ok {
			return fmt.Errorf("invalid category '%s'. must be full-day, after-work, evening-only, weekends-only, very-limited", input.Category)
		}
	}
	if input.MinScore < 0 || input.MinScore > schema.MaxScore {
		return fmt.Errorf("min-score must be between 0 and %d (received %d)", schema.MaxScore, input.MinScore)
	}
	cfg.MinScore = input.MinScore

	// --- 4. Slots horizon ---
	if input.DaysAhead < 0 || input.DaysAhead > MaxDaysAhead {
		return fmt.Errorf("days-ahead must be between 1 and %d (received %d)", MaxDaysAhead, input.DaysAhead)
	}
	cfg.DaysAhead = input.DaysAhead
	if cfg.DaysAhead == 0 {
		cfg.DaysAhead = schema.DefaultDaysAhead
	}

	return nil
}

// processTimeInputs resolves the timezone, the reference day and the --at instant.
func processTimeInputs(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.Location = time.Local
	if tz := strings.TrimSpace(input.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w", input.Timezone, err)
		}
		cfg.Location = loc
	}

	cfg.Now = now.In(cfg.Location)
	cfg.Today = schema.DateOf(cfg.Now)
	cfg.At = cfg.Now

	if input.At == "" {
		return nil
	}
	at, err := ParseInstant(input.At, cfg.Location)
	if err != nil {
		return err
	}
	cfg.At = at
	return nil
}

// ParseInstant parses an absolute instant. Values without an offset are read in loc.
// Offsets in the value are kept, so the weekday is evaluated where the instant was written.
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range atLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time '%s'. Expected RFC3339 or 'YYYY-MM-DD HH:MM'", s)
}

// processVisitInputs parses the fields used when recording a visit.
func processVisitInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Visit = schema.VisitOutcome{
		VisitDate:     cfg.Today,
		ScheduledTime: schema.TimeOfDayOf(cfg.Now),
		WasHome:       input.Home,
		ArrivedOnTime: input.OnTime,
		Notes:         strings.TrimSpace(input.Notes),
		RecordedBy:    strings.TrimSpace(input.By),
	}
	if input.VisitDate != "" {
		d, err := schema.ParseDate(input.VisitDate)
		if err != nil {
			return fmt.Errorf("invalid --visit-date: %w", err)
		}
		cfg.Visit.VisitDate = d
	}
	if input.Scheduled != "" {
		t, err := schema.ParseTimeOfDay(input.Scheduled)
		if err != nil {
			return fmt.Errorf("invalid --scheduled: %w", err)
		}
		cfg.Visit.ScheduledTime = t
	}
	return nil
}
