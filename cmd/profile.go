package cmd

import (
	"github.com/huangsam/athome/core"
	"github.com/spf13/cobra"
)

// profileArg marks commands whose optional positional argument is a profile file.
var profileArg = map[string]string{argAnnotation: argProfile}

// scoreCmd computes the reachability score of a profile.
var scoreCmd = &cobra.Command{
	Use:   "score [profile.json]",
	Short: "Compute the 0-100 reachability score and category of a profile",
	Long: `Score an availability profile read from a JSON file, from stdin ("-"), or from the store (--client).

The score sums five terms:
- Weekly coverage of the declared time windows (up to 60)
- Presence history success rate (up to 30, or 20 without history)
- Schedule flexibility (up to 10)
- Any weekday coverage (10)
- Any window of six hours or more (5)

Examples:
  # Score a profile file
  athome score client.json

  # Explain every term for a stored client and save the fresh score
  athome score --client c-42 --explain --save

  # Pipe a profile in
  cat client.json | athome score - --output json`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: profileArg,
	PreRunE:     sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteScore(rootCtx, cfg, storeManager)
	},
}

// classifyCmd maps a bare score to its category.
var classifyCmd = &cobra.Command{
	Use:   "classify SCORE",
	Short: "Show the category a score falls into",
	Long: `Map a numeric score to its reachability category.

Lower bounds are inclusive: 90 full-day, 70 after-work, 50 evening-only, 30 weekends-only.

Examples:
  athome classify 72`,
	Args:    cobra.ExactArgs(1),
	PreRunE: configSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		return core.ExecuteClassify(rootCtx, cfg, args[0])
	},
}

// checkCmd answers whether the client is home at a given instant.
var checkCmd = &cobra.Command{
	Use:   "check [profile.json]",
	Short: "Check whether a client is expected to be home",
	Long: `Check a profile against an instant. The weekday and clock time are read where the
instant was written: an explicit offset wins, otherwise --timezone, otherwise local time.

The answer is yes, no, or unknown when the profile declares no windows.

Examples:
  # Is the client home right now?
  athome check --client c-42

  # At a specific time in Berlin
  athome check client.json --at "2024-05-15 14:30" --timezone Europe/Berlin`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: profileArg,
	PreRunE:     sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteCheck(rootCtx, cfg, storeManager)
	},
}

// slotsCmd recommends visit slots.
var slotsCmd = &cobra.Command{
	Use:   "slots [profile.json]",
	Short: "Recommend the best visit slots over the coming days",
	Long: `List up to five visit slots starting today, best first.

Longer windows, weekend days and windows that start before 10:00 score higher.

Examples:
  athome slots --client c-42 --days-ahead 14
  athome slots client.json --limit 3 --output csv`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: profileArg,
	PreRunE:     sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteSlots(rootCtx, cfg, storeManager)
	},
}

// recordCmd appends a visit outcome to a profile.
var recordCmd = &cobra.Command{
	Use:   "record [profile.json]",
	Short: "Record the outcome of a visit",
	Long: `Append a visit to the presence history. The newest 20 visits are kept and the
stats, score and category are recomputed.

Stored clients (--client) are updated in place. Profile files are printed back
as JSON, to stdout or --output-file.

Examples:
  # The client was home and the nurse was on time
  athome record --client c-42 --home --on-time --by nurse-3

  # Nobody answered yesterday at 10:00
  athome record client.json --visit-date 2024-05-14 --scheduled 10:00 --output-file client.json`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: profileArg,
	PreRunE:     sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteRecord(rootCtx, cfg, storeManager)
	},
}

// historyCmd shows the presence history.
var historyCmd = &cobra.Command{
	Use:   "history [profile.json]",
	Short: "Show the presence history of a profile",
	Long: `List recorded visits with their outcomes and the summary stats.

Examples:
  athome history --client c-42`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: profileArg,
	PreRunE:     sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteHistory(rootCtx, cfg, storeManager)
	},
}

// templateCmd prints a starter profile.
var templateCmd = &cobra.Command{
	Use:   "template [full-day|after-work|weekends|custom]",
	Short: "Print a starter availability profile as JSON",
	Long: `Print a profile template to edit and save. Unknown kinds give the empty custom template.

Examples:
  athome template after-work --output-file client.json
  athome profiles save client.json --client c-42`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: configSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		kind := "custom"
		if len(args) == 1 {
			kind = args[0]
		}
		return core.ExecuteTemplate(rootCtx, cfg, kind)
	},
}
