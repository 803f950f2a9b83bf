package tui

import (
	"github.com/charmbracelet/lipgloss"

	"tudo/internal/timestamp"
)

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	Subtle    = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
	Highlight = lipgloss.AdaptiveColor{Light: "#1F5FBF", Dark: "#5F9FFF"}

	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}
)

// Styles groups the Lip Gloss styles of the task view.
type Styles struct {
	App         lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	TabBar      lipgloss.Style
	Header      lipgloss.Style
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	Empty       lipgloss.Style
	NoLists     lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App:       lipgloss.NewStyle().Margin(1),
		Tab:       lipgloss.NewStyle().Padding(0, 1),
		TabActive: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(Highlight),
		TabBar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Subtle),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(Subtle),
		Row:         lipgloss.NewStyle(),
		RowSelected: lipgloss.NewStyle().Bold(true).Background(lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A2A"}),
		Empty:       lipgloss.NewStyle().Foreground(SuccessColor),
		NoLists:     lipgloss.NewStyle().Foreground(WarningColor),
		Status:      lipgloss.NewStyle().Foreground(Subtle),
		Error:       lipgloss.NewStyle().Foreground(ErrorColor),
	}
}

// dueStyle colours a due cell by urgency.
func dueStyle(u timestamp.Urgency) lipgloss.Style {
	switch u {
	case timestamp.UrgencyOverdue:
		return lipgloss.NewStyle().Foreground(ErrorColor)
	case timestamp.UrgencyDueNow:
		return lipgloss.NewStyle().Foreground(WarningColor)
	case timestamp.UrgencyUpcoming:
		return lipgloss.NewStyle().Foreground(SuccessColor)
	default:
		return lipgloss.NewStyle()
	}
}
