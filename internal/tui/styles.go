package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the deck uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorSapphire lipgloss.Color = "#74c7ec"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorCrust    lipgloss.Color = "#11111b"
)

const (
	colorAccent = colorMauve
	colorFocus  = colorLavender
	colorError  = colorRed
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorOverlay0)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1).
			Align(lipgloss.Center)
	cardSelectedStyle = cardStyle.BorderForeground(colorFocus)
	badgeStyle        = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBase).
				Background(colorSapphire).
				Padding(0, 1)
	nameStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	urlStyle        = lipgloss.NewStyle().Foreground(colorOverlay0)
	editButtonStyle = lipgloss.NewStyle().
			Foreground(colorCrust).
			Background(colorAccent).
			Padding(0, 2)
	editButtonIdleStyle = editButtonStyle.Background(colorSurface1).Foreground(colorText)

	fabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCrust).
			Background(colorGreen).
			Padding(0, 2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPink).
			Padding(1, 2)
	modalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).MarginBottom(1)
	labelStyle      = lipgloss.NewStyle().Foreground(colorSubtext0)
	labelFocusStyle = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	inputBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)
	inputBoxFocusStyle = inputBoxStyle.BorderForeground(colorBlue)
	submitStyle        = lipgloss.NewStyle().
				Foreground(colorCrust).
				Background(colorBlue).
				Padding(0, 2)
)
