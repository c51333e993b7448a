package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintStoreStatus outputs the status of the profile store.
func PrintStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return writeStatusText(w, status, cfg) },
		func(w io.Writer) error { return writeStatusCSV(w, status) },
		func(w io.Writer) error { return writeJSON(w, status) },
	)
}

func fmtStatusTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(contract.DateTimeFormat)
}

// statusRows flattens a status into ordered key/value pairs.
func statusRows(s schema.StoreStatus) [][]string {
	rows := [][]string{
		{"backend", s.Backend},
		{"connected", strconv.FormatBool(s.Connected)},
		{"schema_version", strconv.Itoa(s.SchemaVersion)},
		{"total_profiles", strconv.Itoa(s.TotalProfiles)},
		{"total_records", strconv.Itoa(s.TotalRecords)},
		{"oldest_updated", fmtStatusTime(s.OldestUpdated)},
		{"last_updated", fmtStatusTime(s.LastUpdated)},
		{"cache_enabled", strconv.FormatBool(s.CacheEnabled)},
		{"cache_entries", strconv.Itoa(s.CacheEntries)},
	}
	if s.ConnectionSource != "" {
		rows = append(rows, []string{"connection_source", s.ConnectionSource})
	}
	keys := make([]string, 0, len(s.CategoryCounts))
	for k := range s.CategoryCounts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		rows = append(rows, []string{"category:" + k, strconv.Itoa(s.CategoryCounts[k])})
	}
	return rows
}

func writeStatusText(w io.Writer, s schema.StoreStatus, cfg *contract.Config) error {
	if err := heading(w, cfg, "🗄️", "Profile store status"); err != nil {
		return err
	}
	if !s.Connected && s.Backend != string(schema.NoneBackend) {
		if _, err := fmt.Fprintln(w, "Store is not reachable."); err != nil {
			return err
		}
	}
	return renderTable(w, []string{"Field", "Value"}, statusRows(s), tw.AlignLeft)
}

func writeStatusCSV(w io.Writer, s schema.StoreStatus) error {
	return writeCSVWithHeader(w, []string{"field", "value"}, func(cw *csv.Writer) error {
		for _, row := range statusRows(s) {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
