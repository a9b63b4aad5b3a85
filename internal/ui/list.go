package ui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/songpick/internal/songlist"
)

var _ list.Item = unfoundItem{}

// unfoundItem wraps an unfound song list line to implement [list.Item].
type unfoundItem struct {
	line string
}

func (i unfoundItem) FilterValue() string { return i.line }

func (i unfoundItem) Title() string {
	if title, _, ok := songlist.SplitEntry(i.line); ok {
		return title
	}
	return i.line
}

func (i unfoundItem) Description() string {
	if _, artist, ok := songlist.SplitEntry(i.line); ok {
		return artist
	}
	return ""
}

func unfoundItems(lines []string) []list.Item {
	items := make([]list.Item, len(lines))
	for i, line := range lines {
		items[i] = unfoundItem{line: line}
	}
	return items
}
