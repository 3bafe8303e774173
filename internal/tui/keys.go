package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Reload     key.Binding
	Pager      key.Binding
	PagerLeft  key.Binding
	PagerRight key.Binding
	Select     key.Binding
	Back       key.Binding
	Hide       key.Binding
	Reset      key.Binding
	Open       key.Binding
	Copy       key.Binding
	Interval   key.Binding
	LogScale   key.Binding
	Compact    key.Binding
	Export     key.Binding
	Import     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "jump up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdown", "jump down")),
		NextPage:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next page")),
		PrevPage:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous page")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Pager:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pager")),
		PagerLeft:  key.NewBinding(key.WithKeys("[", "left", "h"), key.WithHelp("[", "previous")),
		PagerRight: key.NewBinding(key.WithKeys("]", "right", "l"), key.WithHelp("]", "next")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:       key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Hide:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "hide coin")),
		Reset:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset hidden")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open chart")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy chart URL")),
		Interval:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "chart interval")),
		LogScale:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log scale")),
		Compact:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compact")),
		Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Import:     key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "import")),
	}
}
