package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	backend     lipgloss.Style
	detail      lipgloss.Style
	available   lipgloss.Style
	busy        lipgloss.Style
	unavailable lipgloss.Style
	section     lipgloss.Style
	empty       lipgloss.Style
	group       lipgloss.Style
	deviceMeta  lipgloss.Style
	current     lipgloss.Style
	upcoming    lipgloss.Style
	barBracket  lipgloss.Style
	barFill     lipgloss.Style
	barEmpty    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		backend:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		available:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		busy:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("221")),
		unavailable: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		section:     lipgloss.NewStyle().MarginTop(1),
		empty:       lipgloss.NewStyle().Faint(true),
		group:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		deviceMeta:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		current:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		upcoming:    lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		barBracket:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
