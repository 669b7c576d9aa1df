// ABOUTME: Bookmarks section of the TUI listing the user's saved articles
// ABOUTME: Each entry carries a delete action keyed by its bookmark id

package bookmarks

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/newsxstudy/newsxstudy/cli/internal/client"
	"github.com/newsxstudy/newsxstudy/cli/internal/output"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/icons"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/styles"
)

// Placeholder texts for the list area
const (
	LoadFailed = "Failed to load bookmarks"
	Empty      = "No bookmarks yet"
)

// DeleteMsg asks the root model to delete the bookmark with ID
type DeleteMsg struct {
	ID string
}

// RefreshMsg asks the root model to refetch the list
type RefreshMsg struct{}

// CopiedMsg reports the result of copying a bookmark link
type CopiedMsg struct {
	URL string
	Err error
}

// linesPerEntry is the rendered height of one bookmark
const linesPerEntry = 3

// writeClipboard is swapped in tests
var writeClipboard = clipboard.WriteAll

// List is the bookmarks section model
type List struct {
	items  []client.Bookmark
	loaded bool
	failed bool
	cursor int
	offset int
	width  int
	height int
}

// New creates an empty bookmark list
func New() *List {
	return &List{}
}

// SetSize updates the available area
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetItems replaces the whole list with a fresh fetch
func (l *List) SetItems(items []client.Bookmark) {
	l.items = items
	l.loaded = true
	l.failed = false
	if l.cursor >= len(items) {
		l.cursor = max(0, len(items)-1)
	}
	l.clampOffset()
}

// SetFailed shows the load failure placeholder
func (l *List) SetFailed() {
	l.items = nil
	l.loaded = true
	l.failed = true
	l.ResetScroll()
}

// Clear empties the list, e.g. on logout
func (l *List) Clear() {
	l.items = nil
	l.loaded = false
	l.failed = false
	l.ResetScroll()
}

// ResetScroll moves the selection to the first entry
func (l *List) ResetScroll() {
	l.cursor = 0
	l.offset = 0
}

// Items returns the current bookmarks
func (l *List) Items() []client.Bookmark {
	return l.items
}

// Selected returns the bookmark under the cursor
func (l *List) Selected() (client.Bookmark, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return client.Bookmark{}, false
	}
	return l.items[l.cursor], true
}

// Init implements tea.Model
func (l *List) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (l *List) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	switch key.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
		l.clampOffset()
	case "down", "j":
		if l.cursor < len(l.items)-1 {
			l.cursor++
		}
		l.clampOffset()
	case "d", "x", "delete":
		if b, ok := l.Selected(); ok {
			id := b.ID
			return l, func() tea.Msg { return DeleteMsg{ID: id} }
		}
	case "r":
		return l, func() tea.Msg { return RefreshMsg{} }
	case "y":
		if b, ok := l.Selected(); ok && strings.TrimSpace(b.URL) != "" {
			link := b.URL
			return l, func() tea.Msg { return CopiedMsg{URL: link, Err: writeClipboard(link)} }
		}
	}
	return l, nil
}

func (l *List) visibleEntries() int {
	n := (l.height - 3) / linesPerEntry
	if n < 1 {
		return 1
	}
	return n
}

func (l *List) clampOffset() {
	visible := l.visibleEntries()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
}

// View implements tea.Model
func (l *List) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Bookmark.String() + " Bookmarks"))
	sb.WriteString("\n")

	switch {
	case l.failed:
		sb.WriteString(styles.Placeholder.Render(LoadFailed))
		return sb.String()
	case !l.loaded:
		sb.WriteString(styles.Placeholder.Render("Loading bookmarks..."))
		return sb.String()
	case len(l.items) == 0:
		sb.WriteString(styles.Placeholder.Render(Empty))
		return sb.String()
	}

	textWidth := l.width - 6
	if textWidth < 20 {
		textWidth = 74
	}

	end := min(l.offset+l.visibleEntries(), len(l.items))
	for i := l.offset; i < end; i++ {
		b := l.items[i]
		cursor := "  "
		titleStyle := styles.Normal
		if i == l.cursor {
			cursor = "> "
			titleStyle = styles.Selected
		}
		title := output.Clean(b.Title)
		if title == "" {
			title = "Untitled"
		}
		sb.WriteString(cursor + titleStyle.Render(output.Truncate(title, textWidth)) + "\n")
		sb.WriteString("  " + styles.LinkStyle.Render(output.Truncate(output.Clean(b.URL), textWidth)) + "\n")
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Dim.Render(fmt.Sprintf("%d/%d", l.cursor+1, len(l.items))))
	return sb.String()
}
