package iocache

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/internal/parquet"
	"github.com/huangsam/athome/schema"
)

// ExecuteStoreExport writes every stored profile and presence record to Parquet files
// named outputFile + ".profiles.parquet" and outputFile + ".presence.parquet".
func ExecuteStoreExport(ctx context.Context, w io.Writer, store contract.ProfileStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return contract.ErrStoreUnavailable
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalProfiles == 0 {
		return errors.New("no profiles found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total profiles: %d\n", status.TotalProfiles)
	_, _ = fmt.Fprintf(w, "Total presence records: %d\n", status.TotalRecords)

	clients, err := store.List(ctx, schema.ProfileFilter{})
	if err != nil {
		return fmt.Errorf("failed to retrieve profiles: %w", err)
	}
	records, err := store.History(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve presence records: %w", err)
	}

	profileRows := parquet.ConvertClientProfiles(clients)
	profilesFile := outputFile + ".profiles.parquet"
	if err := parquet.WriteProfilesParquet(profileRows, profilesFile); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d profiles to: %s\n", len(profileRows), profilesFile)

	presenceRows := parquet.ConvertPresenceRows(records)
	presenceFile := outputFile + ".presence.parquet"
	if err := parquet.WritePresenceParquet(presenceRows, presenceFile); err != nil {
		return fmt.Errorf("failed to write presence records: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d presence records to: %s\n", len(presenceRows), presenceFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be used with:")
	_, _ = fmt.Fprintln(w, "  - DuckDB")
	_, _ = fmt.Fprintln(w, "  - Pandas (via pyarrow)")
	_, _ = fmt.Fprintln(w, "  - Apache Spark")
	return nil
}
