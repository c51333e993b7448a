package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/athome/core"
	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/internal/iocache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// storeCmd focused on profile store management.
//
// Note: clear and migrate validate configuration but do not open the store, so they
// work on a database that is locked, missing or at an older schema version.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the profile store",
	Long: `Manage the database that keeps client profiles and their presence history.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (nothing is persisted)

Subcommands:
  status          - Show store statistics and connection info
  clear           - Remove all stored profiles
  migrate         - Run database schema migrations
  export          - Export profiles and visits to Parquet
  set-credentials - Save the connection string in the OS keyring

Examples:
  # Check store status
  athome store status

  # Keep the MySQL password out of config files
  athome store set-credentials "athome:secret@tcp(db:3306)/athome?parseTime=true"
  ATHOME_STORE_BACKEND=mysql ATHOME_STORE_DB_CONNECT=keyring athome store status`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the profile store.

Displays:
- Backend type, connection status and schema version
- Number of stored profiles and presence records
- Oldest and latest profile update
- Profiles per category and cache usage

Examples:
  athome store status --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteStoreStatus(rootCtx, cfg, storeManager)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored profiles and presence history",
	Long: `Delete all stored data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the profile, presence and migration tables

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  athome store export --output-file backup
  athome store clear`,
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := iocache.ClearStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}
		fmt.Println("Store cleared successfully.")
		return nil
	},
}

// storeMigrateCmd runs database migrations for the profile store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the profile store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  athome store migrate

  # Rollback everything
  athome store migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		targetVersion := viper.GetInt("target-version")
		return iocache.MigrateStore(rootCtx, os.Stdout, cfg.StoreBackend, cfg.StoreDBConnect, targetVersion)
	},
}

// storeExportCmd exports the store to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export profiles and visits to Parquet for analytics",
	Long: `Export all stored data to Parquet.

Writes two files next to --output-file:
- <output-file>.profiles.parquet - one row per client with score and stats
- <output-file>.presence.parquet - one row per recorded visit

Examples:
  athome store export --output-file athome
  duckdb -c "SELECT category, COUNT(*) FROM 'athome.profiles.parquet' GROUP BY 1"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return iocache.ExecuteStoreExport(rootCtx, os.Stdout, storeManager.GetProfileStore(), cfg.OutputFile)
	},
}

// storeSetCredentialsCmd saves the connection string in the OS keyring.
var storeSetCredentialsCmd = &cobra.Command{
	Use:   "set-credentials [connection-string]",
	Short: "Save the store connection string in the OS keyring",
	Long: `Save the connection string in the OS keyring so it never sits in a config file.

Afterwards use --store-db-connect keyring (or ATHOME_STORE_DB_CONNECT=keyring).
Without an argument the connection string is read from stdin.

Examples:
  athome store set-credentials "host=db user=athome password=secret dbname=athome"
  athome store set-credentials --delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if remove, _ := cmd.Flags().GetBool("delete"); remove {
			if err := contract.DeleteStoredConnection(); err != nil {
				return err
			}
			fmt.Println("Credentials removed from keyring.")
			return nil
		}

		var connStr string
		if len(args) == 1 {
			connStr = args[0]
		} else {
			read, err := readConnectionString()
			if err != nil {
				return err
			}
			connStr = read
		}
		if err := contract.SetStoredConnection(connStr); err != nil {
			return err
		}
		fmt.Println("Credentials saved to keyring.")
		return nil
	},
}

// readConnectionString reads a secret from stdin, without echo on a terminal.
func readConnectionString() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		_, _ = fmt.Fprint(os.Stderr, "Connection string: ")
		secret, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read connection string: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read connection string: %w", err)
	}
	return strings.TrimSpace(line), nil
}
