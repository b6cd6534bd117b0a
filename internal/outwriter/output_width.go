package outwriter

import (
	"os"

	"github.com/arcadecab/cabcheck/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableTitleWidth calculates the maximum width for game titles in table output
// based on terminal width and table configuration.
func GetMaxTableTitleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Game + Emulation + Video + Controls + Overall + Known with borders/padding
	baseWidth := 85

	// Per-monitor and per-panel columns
	if cfg.Detail {
		baseWidth += 12 * (len(cfg.Monitors) + len(cfg.Panels))
	}

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
