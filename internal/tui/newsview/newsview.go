// ABOUTME: News section of the TUI: article cards, search input, and category picker
// ABOUTME: Emits bookmark, search, category, and reload messages for the root model

package newsview

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/newsxstudy/newsxstudy/cli/internal/client"
	"github.com/newsxstudy/newsxstudy/cli/internal/news"
	"github.com/newsxstudy/newsxstudy/cli/internal/output"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/icons"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/styles"
)

// Categories offered by the picker; the empty string means all news
var Categories = []string{
	"",
	"business",
	"entertainment",
	"general",
	"health",
	"science",
	"sports",
	"technology",
}

// BookmarkMsg asks the root model to save the article
type BookmarkMsg struct {
	Article client.Article
}

// SearchMsg asks the root model to search with the raw query
type SearchMsg struct {
	Query string
}

// CategoryMsg asks the root model to filter by category ("" = all)
type CategoryMsg struct {
	Category string
}

// ReloadMsg asks the root model to reload the default feed
type ReloadMsg struct{}

// CopiedMsg reports the result of copying a link
type CopiedMsg struct {
	URL string
	Err error
}

type mode int

const (
	modeList mode = iota
	modeSearch
	modeCategory
	modePreview
)

// linesPerCard is the rendered height of one card including spacing
const linesPerCard = 4

// writeClipboard is swapped in tests
var writeClipboard = clipboard.WriteAll

// View is the news section model
type View struct {
	cards   []news.Card
	label   string
	loaded  bool
	failed  bool
	loading bool

	cursor int
	offset int
	mode   mode

	search    textinput.Model
	catCursor int
	preview   string

	spinner spinner.Model
	width   int
	height  int
}

// New creates an empty news view
func New() *View {
	ti := textinput.New()
	ti.Placeholder = "Search news..."
	ti.CharLimit = 200
	ti.Width = 50
	ti.Prompt = icons.Search.String() + " "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusOK

	return &View{
		label:   "Top headlines",
		search:  ti,
		spinner: sp,
	}
}

// SetSize updates the available area
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	if width > 10 {
		v.search.Width = min(width-10, 60)
	}
}

// SetLoading marks a request in flight and starts the spinner
func (v *View) SetLoading() tea.Cmd {
	v.loading = true
	return v.spinner.Tick
}

// SetArticles replaces the cards with a fresh result set
func (v *View) SetArticles(articles []client.Article, label string) {
	v.cards = news.Render(articles)
	v.label = label
	v.loaded = true
	v.failed = false
	v.loading = false
	v.ResetScroll()
}

// SetFailed shows the load failure placeholder in place of the cards
func (v *View) SetFailed() {
	v.cards = nil
	v.loaded = true
	v.failed = true
	v.loading = false
	v.ResetScroll()
}

// StopLoading clears the in-flight marker without touching the cards
func (v *View) StopLoading() {
	v.loading = false
}

// Clear drops all results, e.g. on logout
func (v *View) Clear() {
	v.cards = nil
	v.loaded = false
	v.failed = false
	v.loading = false
	v.label = "Top headlines"
	v.mode = modeList
	v.search.SetValue("")
	v.search.Blur()
	v.ResetScroll()
}

// ResetScroll moves the selection back to the first card
func (v *View) ResetScroll() {
	v.cursor = 0
	v.offset = 0
}

// Cards returns the rendered cards
func (v *View) Cards() []news.Card {
	return v.cards
}

// Selected returns the card under the cursor
func (v *View) Selected() (news.Card, bool) {
	if v.cursor < 0 || v.cursor >= len(v.cards) {
		return news.Card{}, false
	}
	return v.cards[v.cursor], true
}

// Capturing reports whether the view consumes all keys (text entry or picker)
func (v *View) Capturing() bool {
	return v.mode == modeSearch || v.mode == modeCategory
}

// Init implements tea.Model
func (v *View) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		switch v.mode {
		case modeSearch:
			return v.updateSearch(msg)
		case modeCategory:
			return v.updateCategory(msg)
		case modePreview:
			return v.updatePreview(msg)
		default:
			return v.updateList(msg)
		}
	}

	if v.mode == modeSearch {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
		v.clampOffset()
	case "down", "j":
		if v.cursor < len(v.cards)-1 {
			v.cursor++
		}
		v.clampOffset()
	case "/":
		v.mode = modeSearch
		v.search.Focus()
		return v, textinput.Blink
	case "c":
		v.mode = modeCategory
		return v, nil
	case "r":
		return v, func() tea.Msg { return ReloadMsg{} }
	case "b":
		if card, ok := v.Selected(); ok {
			article := card.Article
			return v, func() tea.Msg { return BookmarkMsg{Article: article} }
		}
	case "y":
		if card, ok := v.Selected(); ok && card.HasLink() {
			return v, copyLink(card.URL)
		}
	case "enter":
		if card, ok := v.Selected(); ok {
			v.preview = v.renderPreview(card)
			v.mode = modePreview
		}
	}
	return v, nil
}

func (v *View) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = modeList
		v.search.Blur()
		return v, nil
	case "enter":
		query := v.search.Value()
		v.mode = modeList
		v.search.Blur()
		return v, func() tea.Msg { return SearchMsg{Query: query} }
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return v, cmd
}

func (v *View) updateCategory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.catCursor > 0 {
			v.catCursor--
		}
	case "down", "j":
		if v.catCursor < len(Categories)-1 {
			v.catCursor++
		}
	case "esc":
		v.mode = modeList
	case "enter":
		category := Categories[v.catCursor]
		v.mode = modeList
		return v, func() tea.Msg { return CategoryMsg{Category: category} }
	}
	return v, nil
}

func (v *View) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "backspace":
		v.mode = modeList
		v.preview = ""
	case "b":
		if card, ok := v.Selected(); ok {
			article := card.Article
			return v, func() tea.Msg { return BookmarkMsg{Article: article} }
		}
	case "y":
		if card, ok := v.Selected(); ok && card.HasLink() {
			return v, copyLink(card.URL)
		}
	}
	return v, nil
}

// copyLink writes url to the system clipboard
func copyLink(url string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{URL: url, Err: writeClipboard(url)}
	}
}

// visibleCards returns how many cards fit in the current height
func (v *View) visibleCards() int {
	// Title, filter line, and hint line
	n := (v.height - 4) / linesPerCard
	if n < 1 {
		return 1
	}
	return n
}

// clampOffset keeps the cursor inside the visible window
func (v *View) clampOffset() {
	visible := v.visibleCards()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
}

func (v *View) renderPreview(card news.Card) string {
	width := v.width - 4
	if width <= 0 {
		width = 76
	}
	rendered, err := news.Preview(card, width)
	if err != nil {
		return news.Markdown(card)
	}
	return rendered
}

// View implements tea.Model
func (v *View) View() string {
	switch v.mode {
	case modePreview:
		return v.preview + "\n" + styles.Help.Render("esc back · b bookmark · y copy link")
	case modeCategory:
		return v.viewCategories()
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.News.String() + " " + v.label))
	sb.WriteString("\n")

	if v.mode == modeSearch {
		sb.WriteString(v.search.View())
		sb.WriteString("\n")
	}

	switch {
	case v.loading && !v.loaded:
		sb.WriteString(v.spinner.View() + " Loading news...")
	case v.failed:
		sb.WriteString(styles.Placeholder.Render(news.LoadFailed))
	case v.loaded && len(v.cards) == 0:
		sb.WriteString(styles.Placeholder.Render(news.NoResults))
	default:
		sb.WriteString(v.viewCards())
	}

	if v.loading && v.loaded {
		sb.WriteString("\n" + v.spinner.View() + " Updating...")
	}
	return sb.String()
}

func (v *View) viewCards() string {
	var sb strings.Builder
	textWidth := v.width - 6
	if textWidth < 20 {
		textWidth = 74
	}

	end := min(v.offset+v.visibleCards(), len(v.cards))
	for i := v.offset; i < end; i++ {
		c := v.cards[i]
		cursor := "  "
		titleStyle := styles.Normal
		if i == v.cursor {
			cursor = "> "
			titleStyle = styles.Selected
		}

		sb.WriteString(cursor + titleStyle.Render(output.Truncate(c.Title, textWidth)) + "\n")
		desc := c.Description
		if desc == "" {
			desc = " "
		}
		sb.WriteString("  " + styles.Dim.Render(output.Truncate(desc, textWidth)) + "\n")
		if c.HasLink() {
			sb.WriteString("  " + styles.LinkStyle.Render(output.Truncate(c.URL, textWidth)) + "\n")
		} else {
			sb.WriteString("  " + styles.Dim.Render(c.URL) + "\n")
		}
		sb.WriteString("\n")
	}

	if len(v.cards) > 0 {
		sb.WriteString(styles.Dim.Render(fmt.Sprintf("%d/%d", v.cursor+1, len(v.cards))))
	}
	return sb.String()
}

func (v *View) viewCategories() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Category.String() + " Choose a category"))
	sb.WriteString("\n")
	for i, c := range Categories {
		label := c
		if label == "" {
			label = "All news"
		}
		cursor := "  "
		style := styles.Normal
		if i == v.catCursor {
			cursor = "> "
			style = styles.Selected
		}
		sb.WriteString(cursor + style.Render(label) + "\n")
	}
	return sb.String()
}
