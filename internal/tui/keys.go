package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	prevDay  key.Binding
	nextDay  key.Binding
	today    key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	quit     key.Binding
	addQuick key.Binding
	addFood  key.Binding
	weight   key.Binding
	sync     key.Binding
	delete   key.Binding
	copy     key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	prevDay:  key.NewBinding(key.WithKeys("left", "h")),
	nextDay:  key.NewBinding(key.WithKeys("right", "l")),
	today:    key.NewBinding(key.WithKeys("t")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab")),
	quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
	addQuick: key.NewBinding(key.WithKeys("a")),
	addFood:  key.NewBinding(key.WithKeys("f")),
	weight:   key.NewBinding(key.WithKeys("w")),
	sync:     key.NewBinding(key.WithKeys("s")),
	delete:   key.NewBinding(key.WithKeys("ctrl+d")),
	copy:     key.NewBinding(key.WithKeys("c")),
}
