package cmd

import (
	"github.com/huangsam/athome/core"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of the scoring terms and categories.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the scoring terms, their maximums and the category thresholds",
	Long: `Show how the reachability score is built and how it maps to categories.

Provides complete transparency into how clients are scored, including:
- Every scoring term and its maximum contribution
- The formula for the total score
- Category thresholds and labels
- Slot scoring bonuses

No profile is read - this is purely informational.

Examples:
  athome metrics
  athome metrics --output json`,
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteMetrics(rootCtx, cfg, storeManager)
	},
}
