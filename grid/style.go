package grid

import "github.com/charmbracelet/lipgloss"

// Style controls the reference renderer.
type Style struct {
	Header       lipgloss.Style
	HeaderSorted lipgloss.Style
	Filter       lipgloss.Style
	FilterActive lipgloss.Style
	RowNumber    lipgloss.Style
	Separator    lipgloss.Style

	Cell      lipgloss.Style
	Readonly  lipgloss.Style
	Selection lipgloss.Style
	Focus     lipgloss.Style
	Editing   lipgloss.Style

	EditPopup lipgloss.Style

	ScrollTrack  lipgloss.Style
	ScrollHandle lipgloss.Style
}

func DefaultStyle() Style {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Header:       lipgloss.NewStyle().Bold(true),
		HeaderSorted: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Filter:       dim.Italic(true),
		FilterActive: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		RowNumber:    dim,
		Separator:    dim,
		Cell:         lipgloss.NewStyle(),
		Readonly:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Selection:    lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Focus:        lipgloss.NewStyle().Reverse(true),
		Editing:      lipgloss.NewStyle().Underline(true),
		EditPopup:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("39")),
		ScrollTrack:  dim,
		ScrollHandle: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
}
