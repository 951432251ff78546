package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 2)
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("236")).Padding(0, 2)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Padding(0, 2)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	iconStyle      = lipgloss.NewStyle().Padding(0, 1)
	iconActive     = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
	iconPinned     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
	baseGridStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	layerDotStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("176")),
	}
)
