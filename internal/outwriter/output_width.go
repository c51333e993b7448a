package outwriter

import (
	"os"

	"github.com/huangsam/athome/internal/contract"
	"golang.org/x/term"
)

// getMaxTableTextWidth calculates the width left for a free-text column (reason, notes)
// after reserving room for the fixed columns of a table.
func getMaxTableTextWidth(cfg *contract.Config, reserved int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Borders, separators and padding
	available := termWidth - reserved - 10
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
