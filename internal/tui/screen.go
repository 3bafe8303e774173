package tui

import (
	"fmt"
	"strings"

	"github.com/glabrego/coinboard/internal/market"
	"github.com/glabrego/coinboard/internal/tui/paging"
	"github.com/glabrego/coinboard/internal/tui/preview"
	"github.com/glabrego/coinboard/internal/tui/state"
	"github.com/glabrego/coinboard/internal/tui/view"
)

const defaultWidth = 100

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.titleLine())
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString("Help (? to close)\n\n")
		b.WriteString(view.Help())
		b.WriteString("\n\n")
		b.WriteString(m.messagePanel())
		b.WriteString("\n")
		b.WriteString(m.footer())
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(view.Toolbar(m.inDetail, m.pagerFocused))
	b.WriteString("\n")
	b.WriteString(m.pagerLine())
	b.WriteString("\n\n")
	if m.inDetail {
		b.WriteString(m.detailView())
	} else {
		b.WriteString(m.listView())
	}
	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) titleLine() string {
	mode := "markets"
	switch {
	case m.showHelp:
		mode = "help"
	case m.inDetail:
		mode = "detail"
	case m.pagerFocused:
		mode = "pager"
	}
	return m.theme.Title.Render("coinboard") + " " + m.theme.ModePill.Render(mode)
}

func (m Model) pagerLine() string {
	label := view.PreviewLabel(view.PreviewInfo{
		Target:  m.preview.Target(),
		Value:   m.preview.Value(),
		Waiting: m.preview.Status() == preview.Waiting,
		Loading: m.preview.Loading(),
	})
	return view.RenderPager(view.PagerParams{
		Pages:   m.pagerPages(),
		Current: m.paging.Page(),
		Hover:   m.hoverPage,
		Focused: m.pagerFocused,
		Preview: label,
	}, m.theme)
}

func (m Model) listView() string {
	width := m.contentWidth()
	var b strings.Builder
	b.WriteString(view.RenderMarketHeader(width, m.compact, m.theme))
	b.WriteString("\n")

	switch {
	case len(m.items) > 0:
		start, end := state.CenteredWindow(len(m.items), m.cursor, m.listBodyHeight())
		for i := start; i < end; i++ {
			b.WriteString(view.RenderMarketLine(view.MarketLineParams{
				Item:    m.items[i],
				Active:  i == m.cursor,
				Compact: m.compact,
				Width:   width,
			}, m.theme))
			b.WriteString("\n")
		}
	case m.paging.Loading():
		b.WriteString(fmt.Sprintf("Loading page %d...\n", m.paging.Page()))
	case m.paging.Status() == paging.Failed:
		b.WriteString("No coins to show.\n")
	case len(m.paging.Buffer()) > 0:
		b.WriteString("All coins on this page are hidden. Press R twice to show them again.\n")
	default:
		b.WriteString("No coins available.\n")
	}
	return b.String()
}

func (m Model) detailView() string {
	item, ok := m.currentItem()
	if !ok {
		return "No coin selected.\n"
	}
	chart := market.NewChartConfig(item, m.quoteAsset, m.interval, m.logScale)
	lines := view.DetailLines(item, chart, m.contentWidth())
	return view.RenderDetailLines(lines, m.detailTop, m.detailBodyHeight())
}

func (m Model) maxDetailTop() int {
	item, ok := m.currentItem()
	if !ok {
		return 0
	}
	chart := market.NewChartConfig(item, m.quoteAsset, m.interval, m.logScale)
	lines := view.DetailLines(item, chart, m.contentWidth())
	if max := len(lines) - m.detailBodyHeight(); max > 0 && m.detailBodyHeight() > 0 {
		return max
	}
	return 0
}

func (m Model) messagePanel() string {
	if m.importing {
		return m.input.View()
	}
	loading := m.paging.Loading()
	status := m.status
	if loading && status == "" {
		status = fmt.Sprintf("%s Loading page %d...", m.spinner.View(), m.paging.Page())
	}
	warning := m.warningText()
	return view.Message(loading, warning != "", status, warning, m.theme)
}

func (m Model) warningText() string {
	if m.err != nil {
		return m.err.Error()
	}
	if m.paging.Status() == paging.Failed {
		return paging.UserMessage(m.paging.Err())
	}
	return ""
}

func (m Model) footer() string {
	return view.Footer(view.FooterParams{
		Page:     m.paging.Page(),
		Shown:    len(m.items),
		Hidden:   m.store.Len(),
		Interval: market.IntervalLabel(m.interval),
		LogScale: m.logScale,
		Remote:   m.remoteState,
	}, m.theme)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

// listBodyHeight is the number of market rows that fit; 0 means unbounded.
func (m Model) listBodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	return state.PageStep(m.height, false)
}

// detailBodyHeight leaves room for the title, toolbar, pager, message and
// footer rows.
func (m Model) detailBodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	if h := m.height - 7; h > 3 {
		return h
	}
	return 3
}
