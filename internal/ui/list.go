package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/windlearn/kazegaku/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title + " " + i.song.RomajiTitle }
func (i songItem) Title() string {
	return fmt.Sprintf("%s (%s)", i.song.Title, i.song.RomajiTitle)
}
func (i songItem) Description() string {
	desc := string(i.song.Difficulty)
	if i.song.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Description)
	}
	return desc
}
