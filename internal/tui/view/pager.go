package view

import (
	"fmt"
	"strconv"
	"strings"

	tuitheme "github.com/glabrego/coinboard/internal/tui/theme"
)

const pagerPrefix = "Pages "

type PagerParams struct {
	Pages   []int
	Current int
	Hover   int
	Focused bool
	Preview string
}

// PreviewInfo is what the pager shows about the hovered page.
type PreviewInfo struct {
	Target  int
	Value   *float64
	Waiting bool
	Loading bool
}

func pageLabel(page, current, hover int) string {
	n := strconv.Itoa(page)
	switch {
	case page == current:
		return "[" + n + "]"
	case page == hover:
		return "<" + n + ">"
	default:
		return " " + n + " "
	}
}

func RenderPager(p PagerParams, th tuitheme.Theme) string {
	prefix := pagerPrefix
	if p.Focused {
		prefix = "Pages>"
	}
	var b strings.Builder
	b.WriteString(th.Section.Render(prefix))
	for _, page := range p.Pages {
		label := pageLabel(page, p.Current, p.Hover)
		switch {
		case page == p.Current:
			b.WriteString(th.PagerCurrent.Render(label))
		case page == p.Hover:
			b.WriteString(th.PagerHover.Render(label))
		default:
			b.WriteString(th.PagerPage.Render(label))
		}
	}
	if p.Preview != "" {
		b.WriteString("  ")
		b.WriteString(th.Preview.Render(p.Preview))
	}
	return b.String()
}

// PagerHit maps a column on the pager row to the page drawn there, or 0.
func PagerHit(pages []int, x int) int {
	start := len(pagerPrefix)
	for _, page := range pages {
		w := len(strconv.Itoa(page)) + 2
		if x >= start && x < start+w {
			return page
		}
		start += w
	}
	return 0
}

func PreviewLabel(p PreviewInfo) string {
	if p.Target <= 0 {
		return ""
	}
	prefix := fmt.Sprintf("page %d avg mkt cap: ", p.Target)
	switch {
	case p.Waiting:
		return prefix + "waiting for current page"
	case p.Loading:
		return prefix + "loading..."
	case p.Value == nil:
		return prefix + "unknown"
	default:
		return prefix + FormatCompactUSD(*p.Value)
	}
}
