package cmd

import (
	"fmt"

	"github.com/huangsam/athome/core"
	"github.com/spf13/cobra"
)

// clientArg marks commands whose optional positional argument is a client ID.
var clientArg = map[string]string{argAnnotation: argClient}

// rankCmd ranks stored clients by their current score.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank stored clients from easiest to hardest to reach",
	Long: `Rescore every stored client and rank them by score, ties broken by client ID.

Scores are recomputed from the stored windows and history, so the ranking is
current even when profiles were saved long ago.

Examples:
  # Top 10 clients
  athome rank --limit 10

  # Only clients who are home after work, scoring 75 or more
  athome rank --category after-work --min-score 75`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteRank(rootCtx, cfg, storeManager)
	},
}

// profilesCmd groups stored profile management.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage client profiles in the store",
	Long: `List, show, save and delete the availability profiles kept in the profile store.

Subcommands:
  list   - List stored clients with their saved scores
  show   - Print one stored profile
  save   - Store a profile file under a client ID
  delete - Remove a client and its history

Examples:
  athome template weekends --output-file c-42.json
  athome profiles save c-42.json --client c-42
  athome profiles show c-42`,
}

// profilesListCmd lists stored clients as saved.
var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored clients with their saved scores",
	Long: `List stored clients using the score and category they were saved with.

Use 'athome rank' for a freshly computed ranking.

Examples:
  athome profiles list --category weekends-only`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteProfilesList(rootCtx, cfg, storeManager)
	},
}

// profilesShowCmd prints one stored profile.
var profilesShowCmd = &cobra.Command{
	Use:   "show [client-id]",
	Short: "Print a stored profile",
	Long: `Print the windows, preferences and notes of a stored client.

With --output json the profile can be edited and saved back.

Examples:
  athome profiles show c-42
  athome profiles show c-42 --output json --output-file c-42.json`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: clientArg,
	PreRunE:     sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteProfilesShow(rootCtx, cfg, storeManager)
	},
}

// profilesSaveCmd stores a profile file.
var profilesSaveCmd = &cobra.Command{
	Use:   "save profile.json",
	Short: "Store a profile file under a client ID",
	Long: `Read a profile file, recompute its stats and score, and store it.

The client ID comes from the file's "client_id" field or from --client.

Examples:
  athome profiles save c-42.json --client c-42`,
	Args:        cobra.ExactArgs(1),
	Annotations: profileArg,
	PreRunE:     sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteProfilesSave(rootCtx, cfg, storeManager)
	},
}

// profilesDeleteCmd removes a stored client.
var profilesDeleteCmd = &cobra.Command{
	Use:   "delete [client-id]",
	Short: "Remove a client and its presence history",
	Long: `Delete a stored client. This action cannot be undone.

Examples:
  athome profiles delete c-42`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: clientArg,
	PreRunE:     sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := core.ExecuteProfilesDelete(rootCtx, cfg, storeManager); err != nil {
			return err
		}
		fmt.Printf("Client %s deleted.\n", cfg.ClientID)
		return nil
	},
}
