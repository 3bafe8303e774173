package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Section    lipgloss.Style
	Header     lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style

	ChangeUp   lipgloss.Style
	ChangeDown lipgloss.Style
	ChangeFlat lipgloss.Style

	PagerPage    lipgloss.Style
	PagerCurrent lipgloss.Style
	PagerHover   lipgloss.Style
	Preview      lipgloss.Style
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")
	cpSurface1 := lipgloss.Color("#45475a")

	return Theme{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:     lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:      lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		Header:       lipgloss.NewStyle().Bold(true).Foreground(cpSubtext1),
		ActiveLine:   lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:    lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:    lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:    lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:    lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:    lipgloss.NewStyle().Foreground(cpPeach),
		ChangeUp:     lipgloss.NewStyle().Foreground(cpGreen),
		ChangeDown:   lipgloss.NewStyle().Foreground(cpRed),
		ChangeFlat:   lipgloss.NewStyle().Foreground(cpSubtext0),
		PagerPage:    lipgloss.NewStyle().Foreground(cpSubtext0),
		PagerCurrent: lipgloss.NewStyle().Bold(true).Foreground(cpText).Background(cpSurface1),
		PagerHover:   lipgloss.NewStyle().Bold(true).Foreground(cpYellow).Underline(true),
		Preview:      lipgloss.NewStyle().Italic(true).Foreground(cpLavender),
	}
}

// StyleChange colours a formatted percentage by the sign of pct. A nil pct
// means the endpoint had no value.
func (t Theme) StyleChange(pct *float64, text string) string {
	if text == "" {
		return text
	}
	switch {
	case pct == nil || *pct == 0:
		return t.ChangeFlat.Render(text)
	case *pct > 0:
		return t.ChangeUp.Render(text)
	default:
		return t.ChangeDown.Render(text)
	}
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
