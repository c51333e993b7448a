package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/google/uuid"
	"github.com/huangsam/athome/core/algo"
	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver
)

// Table names for profile storage.
const (
	profilesTable = "athome_profiles"
	presenceTable = "athome_presence_records"
)

// pingAttempts bounds how often a fresh connection is retried before giving up.
const pingAttempts = 4

// ProfileStoreImpl implements the ProfileStore interface on database/sql.
type ProfileStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.ProfileStore = &ProfileStoreImpl{} // Compile-time check

// driverFor maps a backend to its database/sql driver name.
func driverFor(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// openDB opens and pings a database for the backend, retrying transient failures.
func openDB(ctx context.Context, backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	driverName, err := driverFor(backend)
	if err != nil {
		return nil, "", err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	err = retry.Do(
		func() error { return db.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(pingAttempts),
		retry.Delay(250*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			contract.LogWarn("store ping failed, retrying", err, "backend", backend, "attempt", n+1)
		}),
	)
	if err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Check that the directory is writable."
		}
		return nil, "", fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}
	return db, driverName, nil
}

// NewProfileStore creates a new ProfileStore with the specified backend.
func NewProfileStore(ctx context.Context, backend schema.DatabaseBackend, connStr string) (contract.ProfileStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store when persistence is disabled
		return &ProfileStoreImpl{backend: backend}, nil
	}

	db, driverName, err := openDB(ctx, backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := createProfileTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create profile tables: %w", err)
	}

	contract.LogDebug("profile store ready", "backend", backend)
	return &ProfileStoreImpl{db: db, backend: backend, driverName: driverName}, nil
}

// createProfileTables creates the tables with the same DDL the migrations use.
func createProfileTables(ctx context.Context, db *sql.DB) error {
	for _, name := range []string{
		"000001_create_profiles.up.sql",
		"000002_create_presence_records.up.sql",
	} {
		ddl, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	return nil
}

func (ps *ProfileStoreImpl) disabled() bool {
	return ps.backend == schema.NoneBackend || ps.db == nil
}

// rebind rewrites '?' placeholders for drivers that need positional ones.
func (ps *ProfileStoreImpl) rebind(query string) string {
	if ps.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// profileRow is the serialized shape of a profile; history and stats live elsewhere.
type profileRow struct {
	TimeWindows []schema.TimeWindow `json:"time_windows"`
	Preferences schema.Preferences  `json:"preferences"`
	Notes       []string            `json:"notes,omitempty"`
}

// Get returns the profile of a client with its presence history.
func (ps *ProfileStoreImpl) Get(ctx context.Context, clientID string) (schema.ClientProfile, error) {
	if ps.disabled() {
		return schema.ClientProfile{}, contract.ErrProfileNotFound
	}

	query := ps.rebind(fmt.Sprintf(`SELECT client_id, score, category, profile_json, last_updated, updated_by FROM %s WHERE client_id = ?`, profilesTable))
	cp, err := scanProfile(ps.db.QueryRowContext(ctx, query, clientID))
	if errors.Is(err, sql.ErrNoRows) {
		return schema.ClientProfile{}, contract.ErrProfileNotFound
	}
	if err != nil {
		return schema.ClientProfile{}, fmt.Errorf("failed to load profile %s: %w", clientID, err)
	}

	history, err := ps.loadHistory(ctx, clientID)
	if err != nil {
		return schema.ClientProfile{}, err
	}
	cp.Profile.PresenceHistory = history
	cp.Profile.Stats = algo.ComputeStats(history)
	return cp, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (schema.ClientProfile, error) {
	var (
		cp          schema.ClientProfile
		category    string
		payload     string
		lastUpdated string
	)
	if err := row.Scan(&cp.ClientID, &cp.Profile.Score, &category, &payload, &lastUpdated, &cp.Profile.UpdatedBy); err != nil {
		return cp, err
	}
	var pr profileRow
	if err := json.Unmarshal([]byte(payload), &pr); err != nil {
		return cp, fmt.Errorf("corrupt profile payload: %w", err)
	}
	cp.Profile.TimeWindows = pr.TimeWindows
	cp.Profile.Preferences = pr.Preferences
	cp.Profile.Notes = pr.Notes
	cp.Profile.Category = schema.CategoryKey(category)
	cp.Profile.LastUpdated = parseTime(lastUpdated)
	return cp, nil
}

func (ps *ProfileStoreImpl) loadHistory(ctx context.Context, clientID string) ([]schema.PresenceRecord, error) {
	query := ps.rebind(fmt.Sprintf(`SELECT visit_date, scheduled_time, was_home, arrived_on_time, notes, recorded_at FROM %s WHERE client_id = ? ORDER BY seq`, presenceTable))
	rows, err := ps.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load presence history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var history []schema.PresenceRecord
	for rows.Next() {
		var (
			rec                    schema.PresenceRecord
			visitDate, recAt       string
			notes                  sql.NullString
			wasHome, arrivedOnTime int
		)
		if err := rows.Scan(&visitDate, &rec.ScheduledTime, &wasHome, &arrivedOnTime, &notes, &recAt); err != nil {
			return nil, fmt.Errorf("failed to scan presence record: %w", err)
		}
		if rec.VisitDate, err = schema.ParseDate(visitDate); err != nil {
			return nil, err
		}
		rec.WasHome = wasHome != 0
		rec.ArrivedOnTime = arrivedOnTime != 0
		rec.Notes = notes.String
		rec.RecordedAt = parseTime(recAt)
		history = append(history, rec)
	}
	return history, rows.Err()
}

// Put replaces a client's profile and presence history in one transaction.
func (ps *ProfileStoreImpl) Put(ctx context.Context, cp schema.ClientProfile) error {
	if ps.disabled() {
		return nil
	}
	if strings.TrimSpace(cp.ClientID) == "" {
		return errors.New("client id cannot be empty")
	}

	payload, err := json.Marshal(profileRow{
		TimeWindows: cp.Profile.TimeWindows,
		Preferences: cp.Profile.Preferences,
		Notes:       cp.Profile.Notes,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := ps.deleteRows(ctx, tx, cp.ClientID); err != nil {
		return err
	}

	insertProfile := ps.rebind(fmt.Sprintf(`INSERT INTO %s (client_id, score, category, profile_json, last_updated, updated_by) VALUES (?, ?, ?, ?, ?, ?)`, profilesTable))
	if _, err := tx.ExecContext(ctx, insertProfile,
		cp.ClientID, cp.Profile.Score, string(cp.Profile.Category), string(payload),
		formatTime(cp.Profile.LastUpdated), cp.Profile.UpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	insertRecord := ps.rebind(fmt.Sprintf(`INSERT INTO %s (record_id, client_id, seq, visit_date, scheduled_time, was_home, arrived_on_time, notes, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, presenceTable))
	for i, rec := range algo.TrimHistory(cp.Profile.PresenceHistory) {
		if _, err := tx.ExecContext(ctx, insertRecord,
			uuid.NewString(), cp.ClientID, i, rec.VisitDate.String(), int(rec.ScheduledTime),
			boolInt(rec.WasHome), boolInt(rec.ArrivedOnTime), rec.Notes, formatTime(rec.RecordedAt),
		); err != nil {
			return fmt.Errorf("failed to insert presence record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}

// Delete removes a client and its presence history.
func (ps *ProfileStoreImpl) Delete(ctx context.Context, clientID string) error {
	if ps.disabled() {
		return nil
	}
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := ps.deleteRows(ctx, tx, clientID); err != nil {
		return err
	}
	return tx.Commit()
}

func (ps *ProfileStoreImpl) deleteRows(ctx context.Context, tx *sql.Tx, clientID string) error {
	for _, table := range []string{presenceTable, profilesTable} {
		query := ps.rebind(fmt.Sprintf(`DELETE FROM %s WHERE client_id = ?`, table))
		if _, err := tx.ExecContext(ctx, query, clientID); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}
	return nil
}

// List returns the stored profiles matching the filter, best score first.
func (ps *ProfileStoreImpl) List(ctx context.Context, filter schema.ProfileFilter) ([]schema.ClientProfile, error) {
	if ps.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT client_id, score, category, profile_json, last_updated, updated_by FROM %s WHERE score >= ?`, profilesTable)
	args := []any{filter.MinScore}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	query += ` ORDER BY score DESC, client_id`
	if filter.Limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(filter.Limit)
	}

	rows, err := ps.db.QueryContext(ctx, ps.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	var out []schema.ClientProfile
	for rows.Next() {
		cp, err := scanProfile(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, cp)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	// Histories are loaded after the cursor closes; SQLite allows one connection.
	for i := range out {
		history, err := ps.loadHistory(ctx, out[i].ClientID)
		if err != nil {
			return nil, err
		}
		out[i].Profile.PresenceHistory = history
		out[i].Profile.Stats = algo.ComputeStats(history)
	}
	return out, nil
}

// History returns every stored presence record ordered by client and sequence.
func (ps *ProfileStoreImpl) History(ctx context.Context) ([]schema.PresenceRow, error) {
	if ps.disabled() {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT record_id, client_id, seq, visit_date, scheduled_time, was_home, arrived_on_time, notes, recorded_at FROM %s ORDER BY client_id, seq`, presenceTable)
	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read presence records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.PresenceRow
	for rows.Next() {
		var (
			r                      schema.PresenceRow
			visitDate, recAt       string
			notes                  sql.NullString
			wasHome, arrivedOnTime int
		)
		if err := rows.Scan(&r.RecordID, &r.ClientID, &r.Seq, &visitDate, &r.ScheduledTime, &wasHome, &arrivedOnTime, &notes, &recAt); err != nil {
			return nil, fmt.Errorf("failed to scan presence record: %w", err)
		}
		if r.VisitDate, err = schema.ParseDate(visitDate); err != nil {
			return nil, err
		}
		r.WasHome = wasHome != 0
		r.ArrivedOnTime = arrivedOnTime != 0
		r.Notes = notes.String
		r.RecordedAt = parseTime(recAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetStatus returns status information about the profile store.
func (ps *ProfileStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{Backend: string(ps.backend), CategoryCounts: map[string]int{}}
	if ps.disabled() {
		return status, nil
	}
	ctx := context.Background()
	if err := ps.db.PingContext(ctx); err != nil {
		return status, nil
	}
	status.Connected = true

	var oldest, latest sql.NullString
	query := fmt.Sprintf(`SELECT COUNT(*), MIN(last_updated), MAX(last_updated) FROM %s`, profilesTable)
	if err := ps.db.QueryRowContext(ctx, query).Scan(&status.TotalProfiles, &oldest, &latest); err != nil {
		return status, fmt.Errorf("failed to query profile counts: %w", err)
	}
	status.OldestUpdated = parseTime(oldest.String)
	status.LastUpdated = parseTime(latest.String)
	status.SchemaVersion = ps.schemaVersion(ctx)

	query = fmt.Sprintf(`SELECT COUNT(*) FROM %s`, presenceTable)
	if err := ps.db.QueryRowContext(ctx, query).Scan(&status.TotalRecords); err != nil {
		return status, fmt.Errorf("failed to query presence counts: %w", err)
	}

	query = fmt.Sprintf(`SELECT category, COUNT(*) FROM %s GROUP BY category`, profilesTable)
	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return status, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return status, err
		}
		status.CategoryCounts[category] = count
	}
	return status, rows.Err()
}

// schemaVersion reads the version recorded by MigrateStore, or 0 when migrations were never run.
func (ps *ProfileStoreImpl) schemaVersion(ctx context.Context) int {
	var version int
	query := fmt.Sprintf(`SELECT version FROM %s LIMIT 1`, migrationsTable)
	if err := ps.db.QueryRowContext(ctx, query).Scan(&version); err != nil {
		return 0
	}
	return version
}

// Close closes the underlying connection.
func (ps *ProfileStoreImpl) Close() error {
	if ps.db == nil {
		return nil
	}
	return ps.db.Close()
}

// storeTimeLayout is fixed-width so stored timestamps sort as text.
const storeTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime stores every timestamp as UTC text on all backends.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(storeTimeLayout)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
