// Package cmd defines the command-line interface for athome.
package cmd

import (
	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the profiles subcommands to the parent profiles command
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesSaveCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeSetCredentialsCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("client", "c", "", "Client ID of a stored profile")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("timezone", "", "IANA timezone for times without an offset (default: local)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Profile store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Store connection string, or 'keyring' to use the saved credentials")
	rootCmd.PersistentFlags().Int("cache-size", contract.DefaultCacheSize, "Maximum cached profiles (0 disables the cache)")
	rootCmd.PersistentFlags().String("cache-ttl", contract.DefaultCacheTTL.String(), "How long cached profiles stay fresh")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this rotating file")
	rootCmd.PersistentFlags().String("push-gateway", "", "Prometheus Pushgateway URL to push run metrics to")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().Bool("explain", false, "Print the contribution of every scoring term")
	scoreCmd.Flags().Bool("save", false, "Write the rescored profile back to the store")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().String("at", "", "Instant to check, RFC3339 or 'YYYY-MM-DD HH:MM' (default: now)")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of slotsCmd to Viper
	slotsCmd.Flags().Int("days-ahead", schema.DefaultDaysAhead, "Number of days to consider, starting today")
	if err := viper.BindPFlags(slotsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding slots flags", err)
	}

	// Bind all flags of recordCmd to Viper
	recordCmd.Flags().String("visit-date", "", "Date of the visit as YYYY-MM-DD (default: today)")
	recordCmd.Flags().String("scheduled", "", "Scheduled time of the visit as HH:MM (default: now)")
	recordCmd.Flags().Bool("home", false, "The client was home")
	recordCmd.Flags().Bool("on-time", false, "The visitor arrived on time")
	recordCmd.Flags().String("notes", "", "Notes about the visit")
	recordCmd.Flags().String("by", "", "Who recorded the visit")
	if err := viper.BindPFlags(recordCmd.Flags()); err != nil {
		contract.LogFatal("Error binding record flags", err)
	}

	// rank and profiles list share filter flags; loadConfig rebinds the running one.
	for _, c := range []*cobra.Command{rankCmd, profilesListCmd} {
		c.Flags().String("category", "", "Only include clients in this category")
		c.Flags().Int("min-score", 0, "Only include clients scoring at least this much")
	}
	if err := viper.BindPFlags(rankCmd.Flags()); err != nil {
		contract.LogFatal("Error binding rank flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}

	storeSetCredentialsCmd.Flags().Bool("delete", false, "Remove the saved connection string instead")
}
