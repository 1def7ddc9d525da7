package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	back      key.Binding
	tutor     key.Binding
	quiz      key.Binding
	openVideo key.Binding
	closePane key.Binding
	restart   key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tutor:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tutor")),
		quiz:      key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "quiz")),
		openVideo: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "video")),
		closePane: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close")),
		restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.tutor, k.quiz},
		{k.openVideo, k.closePane, k.restart, k.quit},
	}
}
