// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines colors, borders, and text styles used across components

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light

	// Colors - Extended palette
	Accent = lipgloss.Color("#8B5CF6") // Lighter purple for highlights
	Link   = lipgloss.Color("#06B6D4") // Cyan - article links

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	// Status indicator
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// List rows
	Selected = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Normal = lipgloss.NewStyle().
		Foreground(Text)

	Dim = lipgloss.NewStyle().
		Foreground(Muted)

	LinkStyle = lipgloss.NewStyle().
			Foreground(Link).
			Underline(true)

	// Placeholder replaces an empty or failed list
	Placeholder = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			Padding(1, 0)

	// Tabs for section navigation
	ActiveTab = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	InactiveTab = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 2)

	// TimerDisplay is the large study timer readout
	TimerDisplay = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(1, 4)
)

// Tab renders a tab label in its active or inactive style
func Tab(label string, active bool) string {
	if active {
		return ActiveTab.Render(label)
	}
	return InactiveTab.Render(label)
}
