package chat

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorUser   = lipgloss.Color("12")  // bright blue
	colorCoach  = lipgloss.Color("10")  // bright green
	colorDim    = lipgloss.Color("240") // gray
	colorBorder = lipgloss.Color("238") // dark gray
	colorError  = lipgloss.Color("9")   // bright red

	// Input area
	styleInput = lipgloss.NewStyle().
			Foreground(colorUser).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorUser).
				Bold(true)

	// Transcript labels
	styleUserLabel = lipgloss.NewStyle().
			Foreground(colorUser).
			Bold(true)

	styleCoachLabel = lipgloss.NewStyle().
			Foreground(colorCoach).
			Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	styleInfo = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // bright yellow
)
