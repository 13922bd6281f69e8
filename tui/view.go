package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fboard/internal/application/dto"
	"fboard/internal/infrastructure/storage"
	"fboard/tui/style"
)

// minColumnWidth keeps stages readable on narrow terminals; stages that do
// not fit are scrolled horizontally
const minColumnWidth = 28

const permissionHint = "No write access to the board folder. Quit and start again with --root to pick another one."

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	numColumns := len(m.board.Stages)
	if numColumns == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			style.StatusStyle.Render(fmt.Sprintf("No stages in %s. Create a folder to get started.", m.board.Root)),
			m.renderFooter())
	}

	visible := min(m.visibleColumns(), numColumns)
	start := min(m.horizontalScrollOffset, numColumns-visible)
	end := start + visible

	// Each column has 2 border chars + 2*padding, plus a little margin
	columnWidth := max(m.width/visible-6, minColumnWidth-6)

	var columns []string
	for i := start; i < end; i++ {
		columns = append(columns, m.renderColumn(m.board.Stages[i], i, columnWidth))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	if start > 0 || end < numColumns {
		board = lipgloss.JoinVertical(lipgloss.Left, board,
			style.ScrollIndicatorStyle.Width(m.width).Render(
				fmt.Sprintf("◀ stages %d-%d of %d ▶", start+1, end, numColumns)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, board, m.renderFooter())
}

// renderColumn renders a single stage with scrolling support
func (m Model) renderColumn(stage dto.StageDTO, colIndex int, width int) string {
	isFocused := colIndex == m.focusedColumn

	title := style.ColumnTitleStyle.Width(width).Render(fmt.Sprintf("%s (%d)", stage.Label, len(stage.Cards)))

	scrollOffset := 0
	if colIndex < len(m.scrollOffsets) {
		scrollOffset = m.scrollOffsets[colIndex]
	}

	totalCards := len(stage.Cards)
	startIdx := min(scrollOffset, totalCards)
	endIdx := min(scrollOffset+m.visibleCards(), totalCards)

	var cards []string
	if startIdx > 0 {
		cards = append(cards, style.ScrollIndicatorStyle.Width(width).Render("▲ more above ▲"))
	}

	for i := startIdx; i < endIdx; i++ {
		isSelected := isFocused && i == m.focusedCard
		cards = append(cards, renderCard(stage.Cards[i], width, isSelected))
	}

	if endIdx < totalCards {
		cards = append(cards, style.ScrollIndicatorStyle.Width(width).Render("▼ more below ▼"))
	}

	if totalCards == 0 {
		cards = append(cards, style.CardStyle.Width(width).Foreground(lipgloss.Color("240")).Render("(empty)"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", strings.Join(cards, "\n"))

	height := max(m.height-6, 0)
	if isFocused {
		return style.FocusedColumnStyle.Height(height).Render(content)
	}
	return style.ColumnStyle.Height(height).Render(content)
}

// renderFooter renders the status line and the key help
func (m Model) renderFooter() string {
	var status string
	switch {
	case m.err != nil:
		status = style.ErrorStyle.Render("✗ " + m.err.Error())
		if storage.IsPermissionDenied(m.err) {
			status = lipgloss.JoinVertical(lipgloss.Left, status,
				style.StatusStyle.Render(permissionHint))
		}
	case m.status != "":
		status = style.StatusStyle.Render(m.status)
	default:
		status = style.StatusStyle.Render(m.statusMessage())
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, style.HelpStyle.Render(m.help.View(keys)))
}

// statusMessage summarizes the focus position
func (m Model) statusMessage() string {
	archived := ""
	if m.board.ArchivedCount > 0 {
		archived = fmt.Sprintf(" | %d archived", m.board.ArchivedCount)
	}
	return fmt.Sprintf("Stage %d/%d | Card %d/%d%s",
		min(m.focusedColumn+1, len(m.board.Stages)), len(m.board.Stages),
		min(m.focusedCard+1, m.currentStageCardCount()), m.currentStageCardCount(),
		archived)
}
