package cmd

import (
	"github.com/huangsam/athome/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the athome MCP server",
	Long: `Launch an MCP server over stdio so AI agents can score profiles, check
availability, recommend slots and record visits through standard tools.

Logs go to stderr (and --log-file) so stdout stays reserved for the protocol.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
