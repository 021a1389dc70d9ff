package kanban

import (
	"taskboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	columnWidth             = 34
	columnPaddingHorizontal = 1
	cardPaddingHorizontal   = 1
	// rendered width of a column plus the gap lipgloss leaves between them
	columnSlotCells = columnWidth + 2*columnPaddingHorizontal + 2 + 1
)

var (
	titleStyle = theme.Title.Padding(0, 1)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, columnPaddingHorizontal).
			Width(columnWidth)

	selectedColumnStyle = columnStyle.
				BorderForeground(theme.BorderFocused)

	draggedColumnStyle = columnStyle.
				BorderForeground(theme.Warning).
				BorderStyle(lipgloss.DoubleBorder())

	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.Primary)

	selectedColumnTitleStyle = lipgloss.NewStyle().
					Bold(true).
					Foreground(theme.Warning).
					Underline(true)

	columnCountStyle = theme.Muted

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(theme.Border).
			Padding(0, cardPaddingHorizontal).
			MarginBottom(1)

	selectedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), false, false, false, true).
				BorderForeground(theme.BorderFocused).
				Background(theme.Surface).
				Padding(0, cardPaddingHorizontal).
				MarginBottom(1).
				Bold(true)

	moveSelectedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), false, false, false, true).
				BorderForeground(theme.Warning).
				Background(lipgloss.Color("54")).
				Padding(0, cardPaddingHorizontal).
				MarginBottom(1).
				Bold(true)

	cardTextStyle  = lipgloss.NewStyle().Foreground(theme.Text)
	cardDoneStyle  = theme.Done
	cardMatchStyle = theme.Match
	cardMarkStyle  = theme.Selected

	emptyColumnStyle = theme.Muted.Italic(true)

	helpStyle = theme.Muted.Padding(0, 1)

	errorStyle   = theme.Error
	warningStyle = theme.Warn
	successStyle = theme.Ok

	inputBoxStyle   = theme.ModalBox.Width(50)
	inputTitleStyle = theme.ModalTitle

	scrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(theme.Primary).
				Italic(true).
				Align(lipgloss.Center)

	filterIndicatorStyle = lipgloss.NewStyle().
				Foreground(theme.Warning).
				Bold(true)
)

// modeIndicatorStyle returns a bold style with the given foreground color for mode badges.
func modeIndicatorStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
