package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/internal/iocache"
	"github.com/huangsam/athome/internal/telemetry"
	"github.com/huangsam/athome/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// storeManager is the global persistence manager instance.
var storeManager contract.StoreManager = iocache.Manager

// Positional argument kinds, declared per command through annotations.
const (
	argAnnotation = "athome/arg"
	argProfile    = "profile"
	argClient     = "client"
)

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "athome",
	Short:              "Score how reachable home-visit clients are.",
	Long:               `athome scores client availability profiles, checks whether a client is home and recommends visit slots.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return telemetry.Push(cfg.PushGateway)
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".athome") // Name of config file (without extension)
		viper.SetConfigType("yaml")    // We'll use YAML format
		viper.AddConfigPath(".")       // Look in the current directory
		viper.AddConfigPath("$HOME")   // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("ATHOME")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("days-ahead", schema.DefaultDaysAhead)
	viper.SetDefault("store-backend", schema.SQLiteBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("cache-size", contract.DefaultCacheSize)
	viper.SetDefault("cache-ttl", contract.DefaultCacheTTL.String())
	viper.SetDefault("color", "yes")
	viper.SetDefault("emoji", "yes")
	viper.SetDefault("log-level", "warn")
	viper.SetDefault("target-version", -1)
}

// loadConfig merges defaults, file, env and flags, then validates them into cfg.
func loadConfig(cmd *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// Rebind the running command's own flags so names shared across commands resolve here.
	if err := viper.BindPFlags(cmd.LocalNonPersistentFlags()); err != nil {
		return fmt.Errorf("unable to bind flags: %w", err)
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		switch cmd.Annotations[argAnnotation] {
		case argProfile:
			input.ProfilePathStr = args[0]
		case argClient:
			input.Client = args[0]
		}
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input, time.Now()); err != nil {
		return err
	}

	return contract.InitLogger(contract.LogConfig{Level: cfg.LogLevel, File: cfg.LogFile})
}

// sharedSetup unmarshals config, runs validation and opens the profile store.
func sharedSetup(ctx context.Context, cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd, args); err != nil {
		return err
	}

	// 5. Initialize persistence layer with validated config
	if err := iocache.InitStores(ctx, cfg.StoreBackend, cfg.StoreDBConnect, cfg.CacheSize, cfg.CacheTTL); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	contract.LogDebug("Configuration loaded", "backend", cfg.StoreBackend, "source", cfg.ConnectionSource, "output", cfg.Output)
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// configSetupWrapper validates configuration without opening the store.
// Migrations and credential management must work against a store that is not ready yet.
func configSetupWrapper(cmd *cobra.Command, args []string) error {
	return loadConfig(cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetStoreManager sets the global store manager.
func SetStoreManager(mgr contract.StoreManager) {
	storeManager = mgr
}
