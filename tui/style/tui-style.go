package style

import (
	"github.com/charmbracelet/lipgloss"

	"fboard/internal/infrastructure/config"
)

var (
	ColumnStyle          lipgloss.Style
	FocusedColumnStyle   lipgloss.Style
	ColumnTitleStyle     lipgloss.Style
	CardStyle            lipgloss.Style
	SelectedCardStyle    lipgloss.Style
	CardBorderStyle      lipgloss.Style
	SelectedBorderStyle  lipgloss.Style
	PreviewStyle         lipgloss.Style
	HelpStyle            lipgloss.Style
	StatusStyle          lipgloss.Style
	ErrorStyle           lipgloss.Style
	ScrollIndicatorStyle lipgloss.Style
	LegendTagStyle       lipgloss.Style

	urgency config.DueDateColors
)

// InitStyles initializes the styles from config
func InitStyles(cfg *config.Config) {
	styles := cfg.TUI.Styles

	ColumnStyle = columnStyle(styles.Column)
	FocusedColumnStyle = columnStyle(styles.FocusedColumn)

	ColumnTitleStyle = textStyle(styles.ColumnTitle)
	if styles.ColumnTitle.Align != "" {
		ColumnTitleStyle = ColumnTitleStyle.Align(getAlign(styles.ColumnTitle.Align))
	}

	CardStyle = textStyle(styles.Card)
	SelectedCardStyle = textStyle(styles.SelectedCard)

	CardBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.CardBorder.BorderColor))
	SelectedBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(styles.SelectedBorder.BorderColor))

	PreviewStyle = textStyle(styles.Preview)
	StatusStyle = textStyle(styles.Status)
	ErrorStyle = textStyle(styles.Error)
	ScrollIndicatorStyle = textStyle(styles.ScrollIndicator).Align(lipgloss.Center)

	// Help style
	HelpStyle = lipgloss.NewStyle().
		Padding(styles.Help.PaddingVertical, 0, 0, styles.Help.PaddingHorizontal)
	if styles.Help.Foreground != "" {
		HelpStyle = HelpStyle.Foreground(lipgloss.Color(styles.Help.Foreground))
	}

	LegendTagStyle = lipgloss.NewStyle().Padding(0, 1)
	if styles.Legend.Foreground != "" {
		LegendTagStyle = LegendTagStyle.Foreground(lipgloss.Color(styles.Legend.Foreground))
	}

	urgency = styles.TaskUrgency
}

// LegendTag renders a legend name on its own color
func LegendTag(name, color string) string {
	return LegendTagStyle.Background(lipgloss.Color(color)).Render(name)
}

// UrgencyStyle colors checklist progress by the most urgent task status
func UrgencyStyle(status string) lipgloss.Style {
	color := urgency.OK
	switch status {
	case "overdue":
		color = urgency.Overdue
	case "very_near":
		color = urgency.VeryNear
	case "near":
		color = urgency.Near
	case "completed":
		color = urgency.Done
	}
	if color == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func columnStyle(cfg config.ColumnStyle) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(cfg.PaddingVertical, cfg.PaddingHorizontal).
		Border(getBorder(cfg.BorderStyle)).
		BorderForeground(lipgloss.Color(cfg.BorderColor))
}

func textStyle(cfg config.TextStyle) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(cfg.PaddingVertical, cfg.PaddingHorizontal)
	if cfg.Foreground != "" {
		s = s.Foreground(lipgloss.Color(cfg.Foreground))
	}
	if cfg.Background != "" {
		s = s.Background(lipgloss.Color(cfg.Background))
	}
	if cfg.Bold {
		s = s.Bold(true)
	}
	if cfg.Italic {
		s = s.Italic(true)
	}
	return s
}

// getBorder returns the border style based on the name
func getBorder(name string) lipgloss.Border {
	switch name {
	case "rounded":
		return lipgloss.RoundedBorder()
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// getAlign returns the alignment based on the name
func getAlign(name string) lipgloss.Position {
	switch name {
	case "left":
		return lipgloss.Left
	case "center":
		return lipgloss.Center
	case "right":
		return lipgloss.Right
	default:
		return lipgloss.Center
	}
}
