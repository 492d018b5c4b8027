package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/linkledger/lenderctl/internal/client/risk"
)

// Fixed display tones. The mapping from tier/status to color is part of the
// operator contract and never derived from data.
var (
	styleGreen  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleYellow = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleRed    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleDim    = lipgloss.NewStyle().Faint(true)
)

func tierStyle(t risk.Tier) lipgloss.Style {
	switch t {
	case risk.TierRed:
		return styleRed
	case risk.TierYellow:
		return styleYellow
	default:
		return styleGreen
	}
}

func statusBadge(status string) string {
	switch strings.ToLower(status) {
	case "paid":
		return styleGreen.Render(status)
	case "owing":
		return styleYellow.Render(status)
	case "overdue":
		return styleRed.Render(status)
	default:
		return styleDim.Render(status)
	}
}
