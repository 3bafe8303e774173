package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/coinboard/internal/tui/theme"
)

func Toolbar(inDetail, pagerFocused bool) string {
	if inDetail {
		return "j/k scroll | [ ] prev/next | o open chart | y copy URL | d hide | esc back | ? help"
	}
	if pagerFocused {
		return "[ ]/arrows choose page | enter go | esc leave pager | ? help"
	}
	return "j/k move | n/p page | tab pager | enter details | d hide | o chart | x export | I import | r reload | ? help"
}

type FooterParams struct {
	Page     int
	Shown    int
	Hidden   int
	Interval string
	LogScale bool
	Remote   string
}

func Footer(p FooterParams, th tuitheme.Theme) string {
	scale := "linear"
	if p.LogScale {
		scale = "log"
	}
	parts := []string{
		th.MetaLabel.Render("page") + " " + th.MetaValue.Render(fmt.Sprintf("%d", p.Page)),
		th.MetaValue.Render(fmt.Sprintf("%d shown", p.Shown)),
		th.MetaValue.Render(fmt.Sprintf("%d hidden", p.Hidden)),
		th.MetaLabel.Render("chart") + " " + th.MetaValue.Render(p.Interval+" "+scale),
	}
	if p.Remote != "" {
		parts = append(parts, th.MetaLabel.Render("sync")+" "+th.MetaValue.Render(p.Remote))
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}

func Help() string {
	lines := []string{
		"Navigation:",
		"  j/k or arrows move, g/G jump top/bottom, pgup/pgdown jump",
		"  n/p next/previous page, r reload the current page",
		"Pager:",
		"  tab or [ ] focuses the pager and previews the average market cap of a page",
		"  enter jumps to the focused page, esc leaves the pager; mouse hover works too",
		"Coins:",
		"  enter opens details, d hides the coin, R twice resets hidden coins",
		"Chart:",
		"  o opens the chart, y copies its URL, i cycles interval, L toggles log scale",
		"Preferences:",
		"  x exports hidden coins to a file, I imports a file, c compact table",
	}
	return strings.Join(lines, "\n")
}
