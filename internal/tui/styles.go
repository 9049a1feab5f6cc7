// Package tui provides the terminal chat panel for victorychat.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("130")
	colorText    = lipgloss.Color("252")
	colorTextDim = lipgloss.Color("243")
	colorUser    = lipgloss.Color("39")
	colorError   = lipgloss.Color("196")

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorUser).
			Bold(true)

	botLabelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	userBubbleStyle = lipgloss.NewStyle().
			Foreground(colorText).
			PaddingLeft(2)

	botBubbleStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(colorError)

	loadingStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	inputPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)
)
