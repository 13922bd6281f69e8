package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fboard/internal/application/dto"
	"fboard/tui/style"
)

// renderCard renders a card box: title, description preview, then legends
// and counters
func renderCard(card dto.CardSummaryDTO, width int, selected bool) string {
	inner := max(width-2, 1)

	titleStyle := style.CardStyle
	border := style.CardBorderStyle
	if selected {
		titleStyle = style.SelectedCardStyle
		border = style.SelectedBorderStyle
	}

	lines := []string{
		titleStyle.Width(inner).MaxWidth(inner).Render(truncate(card.Title, inner-2)),
	}

	preview := card.Preview
	if preview == "" {
		preview = " "
	}
	lines = append(lines, style.PreviewStyle.MaxWidth(inner).Render(truncate(preview, inner-4)))
	lines = append(lines, lipgloss.NewStyle().MaxWidth(inner).Render(cardBadges(card)))

	return border.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// cardBadges renders legend tags followed by checklist, comment and
// attachment counters
func cardBadges(card dto.CardSummaryDTO) string {
	var parts []string
	for _, legend := range card.Legends {
		parts = append(parts, style.LegendTag(legend.Name, legend.Color))
	}
	if card.Tasks.Total > 0 {
		parts = append(parts, style.UrgencyStyle(card.Tasks.WorstStatus).
			Render(fmt.Sprintf("☑ %d/%d", card.Tasks.Completed, card.Tasks.Total)))
	}
	if card.CommentCount > 0 {
		parts = append(parts, fmt.Sprintf("💬 %d", card.CommentCount))
	}
	if card.AttachmentCount > 0 {
		parts = append(parts, fmt.Sprintf("📎 %d", card.AttachmentCount))
	}
	if len(parts) == 0 {
		return " "
	}
	return strings.Join(parts, " ")
}

// truncate shortens s to width terminal cells, adding an ellipsis
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
