package attribution

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	source    lipgloss.Style
	first     lipgloss.Style
	returning lipgloss.Style
	key       lipgloss.Style
	value     lipgloss.Style
	meta      lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		source:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		first:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		returning: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		key:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
	}
}
