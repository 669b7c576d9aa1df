// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Owns session/view state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/newsxstudy/newsxstudy/cli/internal/client"
	"github.com/newsxstudy/newsxstudy/cli/internal/session"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/auth"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/bookmarks"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/icons"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/nav"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/newsview"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/studyview"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/styles"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/widgets"
)

// View selects between the auth screen and the main app screen
type View int

const (
	ViewAuth View = iota
	ViewApp
)

// Layout constants
const (
	minTerminalWidth = 80 // Frame never renders narrower than this
	frameOverhead    = 6  // Header, tab bar, notice line, footer and spacing
)

// Per-section key hints
const (
	newsHint      = "↑↓ select · enter preview · / search · c category · b bookmark · y copy · r reload"
	bookmarksHint = "↑↓ select · d delete · y copy · r refresh"
)

// noticeDuration is how long a notice stays in the status line
const noticeDuration = 4 * time.Second

// Notice texts
const (
	noticeSignupOK      = "Signup successful"
	noticeSignupFailed  = "Signup failed"
	noticeLoginOK       = "Login successful"
	noticeLoginFailed   = "Login failed"
	noticeLoggedOut     = "Logged out"
	noticeLoginToSave   = "Please login to save bookmarks"
	noticeBookmarkSaved = "Bookmark saved"
	noticeSaveFailed    = "Failed to save bookmark"
	noticeDeleteFailed  = "Failed to delete"
	noticeEmptySearch   = "Enter something to search"
	noticeSearchFailed  = "Search failed"
	noticeFilterFailed  = "Failed to filter news"
	noticeLinkCopied    = "Link copied"
	noticeCopyFailed    = "Failed to copy link"
)

// newsKind tells which news request a response belongs to
type newsKind int

const (
	newsDefault newsKind = iota
	newsSearch
	newsCategory
)

// signupDoneMsg is sent when registration completes
type signupDoneMsg struct {
	message string
	err     error
}

// loginDoneMsg is sent when login completes
type loginDoneMsg struct {
	token string
	err   error
}

// bookmarksLoadedMsg is sent when the bookmark list fetch completes
type bookmarksLoadedMsg struct {
	seq   int
	items []client.Bookmark
	err   error
}

// bookmarkSavedMsg is sent when a bookmark add completes
type bookmarkSavedMsg struct {
	message string
	err     error
}

// bookmarkDeletedMsg is sent when a bookmark delete completes
type bookmarkDeletedMsg struct {
	id  string
	err error
}

// newsLoadedMsg is sent when any news request completes
type newsLoadedMsg struct {
	seq      int
	kind     newsKind
	label    string
	articles []client.Article
	err      error
}

// clearNoticeMsg clears the notice if it is still the one with seq
type clearNoticeMsg struct {
	seq int
}

// App is the root model for the TUI
type App struct {
	client  *client.Client
	session *session.Store
	logger  *slog.Logger

	view    View
	section nav.Section
	width   int
	height  int

	notice      string
	noticeIsErr bool
	noticeSeq   int

	// newsSeq identifies the latest news request; older responses are dropped
	newsSeq    int
	lastUpdate time.Time

	// bookmarksSeq identifies the latest list request, so a list fetched for
	// a previous session is never shown in the next one
	bookmarksSeq int

	// Child models
	auth      *auth.Auth
	news      *newsview.View
	bookmarks *bookmarks.List
	study     *studyview.View
}

// New creates a new TUI application
func New(apiClient *client.Client, store *session.Store) *App {
	return &App{
		client:    apiClient,
		session:   store,
		logger:    slog.Default(),
		view:      ViewAuth,
		section:   nav.SectionNews,
		auth:      auth.New(),
		news:      newsview.New(),
		bookmarks: bookmarks.New(),
		study:     studyview.New(false),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.session.Authenticated() {
		return a.showAppView()
	}
	return a.showAuthView()
}

// showAuthView switches to the auth screen
func (a *App) showAuthView() tea.Cmd {
	a.view = ViewAuth
	return a.auth.Init()
}

// showAppView switches to the app screen and loads bookmarks and the default feed
func (a *App) showAppView() tea.Cmd {
	a.view = ViewApp
	a.section = nav.SectionNews
	a.news.ResetScroll()
	return tea.Batch(a.loadBookmarks(), a.loadDefaultNews())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeChildren()
		form, cmd := a.auth.Update(msg)
		a.auth = form.(*auth.Auth)
		return a, cmd

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.view == ViewAuth {
			return a.updateAuth(msg)
		}
		return a.updateApp(msg)

	// Auth flow
	case auth.SignupSubmittedMsg:
		return a, a.signup(msg.Name, msg.Email, msg.Password)
	case auth.LoginSubmittedMsg:
		return a, a.login(msg.Email, msg.Password)
	case signupDoneMsg:
		return a.handleSignupDone(msg)
	case loginDoneMsg:
		return a.handleLoginDone(msg)

	// News actions
	case newsview.BookmarkMsg:
		return a, a.addBookmark(msg.Article.Title, msg.Article.URL)
	case newsview.SearchMsg:
		return a, a.search(msg.Query)
	case newsview.CategoryMsg:
		return a, a.filterByCategory(msg.Category)
	case newsview.ReloadMsg:
		return a, a.loadDefaultNews()
	case newsview.CopiedMsg:
		return a, a.copied(msg.Err)
	case newsLoadedMsg:
		return a.handleNewsLoaded(msg)
	case spinner.TickMsg:
		model, cmd := a.news.Update(msg)
		a.news = model.(*newsview.View)
		return a, cmd

	// Bookmark actions
	case bookmarks.DeleteMsg:
		return a, a.deleteBookmark(msg.ID)
	case bookmarks.RefreshMsg:
		return a, a.loadBookmarks()
	case bookmarks.CopiedMsg:
		return a, a.copied(msg.Err)
	case bookmarksLoadedMsg:
		return a.handleBookmarksLoaded(msg)
	case bookmarkSavedMsg:
		return a.handleBookmarkSaved(msg)
	case bookmarkDeletedMsg:
		return a.handleBookmarkDeleted(msg)

	// Study timer ticks arrive regardless of the visible section
	case studyview.TickMsg:
		model, cmd := a.study.Update(msg)
		a.study = model.(*studyview.View)
		return a, cmd

	case clearNoticeMsg:
		if msg.seq == a.noticeSeq {
			a.notice = ""
			a.noticeIsErr = false
		}
		return a, nil

	default:
		// Forward unknown messages to the active input (needed for huh and textinput internals)
		if a.view == ViewAuth {
			form, cmd := a.auth.Update(msg)
			a.auth = form.(*auth.Auth)
			return a, cmd
		}
		if a.section == nav.SectionNews {
			model, cmd := a.news.Update(msg)
			a.news = model.(*newsview.View)
			return a, cmd
		}
	}

	return a, nil
}

func (a *App) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, cmd := a.auth.Update(msg)
	a.auth = form.(*auth.Auth)
	return a, cmd
}

func (a *App) updateApp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry owns every key until it closes
	if a.section == nav.SectionNews && a.news.Capturing() {
		return a.updateSection(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "L":
		return a, a.logout()
	case "right", "tab":
		a.setSection(a.section.Next())
		return a, nil
	case "left", "shift+tab":
		a.setSection(a.section.Prev())
		return a, nil
	}

	if s, ok := nav.FromKey(msg.String()); ok {
		a.setSection(s)
		return a, nil
	}

	return a.updateSection(msg)
}

// updateSection forwards a key to the visible section
func (a *App) updateSection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.section {
	case nav.SectionNews:
		model, cmd := a.news.Update(msg)
		a.news = model.(*newsview.View)
		return a, cmd
	case nav.SectionBookmarks:
		model, cmd := a.bookmarks.Update(msg)
		a.bookmarks = model.(*bookmarks.List)
		return a, cmd
	case nav.SectionStudy:
		model, cmd := a.study.Update(msg)
		a.study = model.(*studyview.View)
		return a, cmd
	}
	return a, nil
}

// setSection shows s without refetching and scrolls it to the top
func (a *App) setSection(s nav.Section) {
	a.section = s
	switch s {
	case nav.SectionNews:
		a.news.ResetScroll()
	case nav.SectionBookmarks:
		a.bookmarks.ResetScroll()
	}
}

func (a *App) resizeChildren() {
	w := a.frameWidth() - 2
	h := a.contentHeight()
	a.auth.SetWidth(w)
	a.news.SetSize(w, h)
	a.bookmarks.SetSize(w, h)
	a.study.SetWidth(w)
}

// notify shows text in the status line and schedules its removal
func (a *App) notify(text string, isErr bool) tea.Cmd {
	a.noticeSeq++
	a.notice = text
	a.noticeIsErr = isErr
	seq := a.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

func (a *App) copied(err error) tea.Cmd {
	if err != nil {
		a.logger.Warn("clipboard write failed", "error", err)
		return a.notify(noticeCopyFailed, true)
	}
	return a.notify(noticeLinkCopied, false)
}

// signup registers a new account with trimmed inputs
func (a *App) signup(name, email, password string) tea.Cmd {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	return func() tea.Msg {
		resp, err := a.client.Register(context.Background(), name, email, password)
		if err != nil {
			return signupDoneMsg{err: err}
		}
		return signupDoneMsg{message: resp.Message}
	}
}

func (a *App) handleSignupDone(msg signupDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Debug("signup failed", "error", msg.err)
		return a, a.notify(client.ServerMessage(msg.err, noticeSignupFailed), true)
	}
	text := msg.message
	if text == "" {
		text = noticeSignupOK
	}
	return a, tea.Batch(a.notify(text, false), a.auth.Reset(auth.TabLogin))
}

// login authenticates with trimmed inputs
func (a *App) login(email, password string) tea.Cmd {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	return func() tea.Msg {
		resp, err := a.client.Login(context.Background(), email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{token: resp.Token}
	}
}

func (a *App) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Debug("login failed", "error", msg.err)
		return a, a.notify(client.ServerMessage(msg.err, noticeLoginFailed), true)
	}
	if err := a.session.Save(msg.token); err != nil {
		// The token is still held in memory for this run
		a.logger.Warn("could not persist session", "error", err)
	}
	resetCmd := a.auth.Reset(auth.TabLogin)
	return a, tea.Batch(a.notify(noticeLoginOK, false), resetCmd, a.showAppView())
}

// logout forgets the session locally; no server call is made
func (a *App) logout() tea.Cmd {
	if err := a.session.Clear(); err != nil {
		a.logger.Warn("could not remove session file", "error", err)
	}
	a.bookmarks.Clear()
	a.news.Clear()
	a.newsSeq++
	a.bookmarksSeq++
	return tea.Batch(a.notify(noticeLoggedOut, false), a.showAuthView())
}

// loadBookmarks fetches the list; without a session it does nothing
func (a *App) loadBookmarks() tea.Cmd {
	token := a.session.Token()
	if token == "" {
		return nil
	}
	a.bookmarksSeq++
	seq := a.bookmarksSeq
	return func() tea.Msg {
		items, err := a.client.ListBookmarks(context.Background(), token)
		return bookmarksLoadedMsg{seq: seq, items: items, err: err}
	}
}

func (a *App) handleBookmarksLoaded(msg bookmarksLoadedMsg) (tea.Model, tea.Cmd) {
	if a.view != ViewApp {
		return a, nil
	}
	if msg.seq != a.bookmarksSeq {
		a.logger.Debug("dropping stale bookmark list", "seq", msg.seq, "latest", a.bookmarksSeq)
		return a, nil
	}
	if msg.err != nil {
		a.logger.Debug("bookmark list failed", "error", msg.err)
		a.bookmarks.SetFailed()
		return a, nil
	}
	a.bookmarks.SetItems(msg.items)
	a.lastUpdate = time.Now()
	return a, nil
}

// addBookmark saves title/link for the current user
func (a *App) addBookmark(title, link string) tea.Cmd {
	token := a.session.Token()
	if token == "" {
		return a.notify(noticeLoginToSave, true)
	}
	return func() tea.Msg {
		resp, err := a.client.AddBookmark(context.Background(), token, title, link)
		if err != nil {
			return bookmarkSavedMsg{err: err}
		}
		return bookmarkSavedMsg{message: resp.Message}
	}
}

func (a *App) handleBookmarkSaved(msg bookmarkSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Debug("bookmark add failed", "error", msg.err)
		return a, a.notify(client.ServerMessage(msg.err, noticeSaveFailed), true)
	}
	text := msg.message
	if text == "" {
		text = noticeBookmarkSaved
	}
	return a, tea.Batch(a.notify(text, false), a.loadBookmarks())
}

// deleteBookmark removes the bookmark with id
func (a *App) deleteBookmark(id string) tea.Cmd {
	token := a.session.Token()
	if token == "" {
		return nil
	}
	return func() tea.Msg {
		err := a.client.DeleteBookmark(context.Background(), token, id)
		return bookmarkDeletedMsg{id: id, err: err}
	}
}

func (a *App) handleBookmarkDeleted(msg bookmarkDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Debug("bookmark delete failed", "id", msg.id, "error", msg.err)
		return a, a.notify(noticeDeleteFailed, true)
	}
	return a, a.loadBookmarks()
}

// fetchNews issues a news request stamped with a fresh sequence number
func (a *App) fetchNews(kind newsKind, label string, fetch func(ctx context.Context) ([]client.Article, error)) tea.Cmd {
	a.newsSeq++
	seq := a.newsSeq
	spin := a.news.SetLoading()
	return tea.Batch(spin, func() tea.Msg {
		articles, err := fetch(context.Background())
		return newsLoadedMsg{seq: seq, kind: kind, label: label, articles: articles, err: err}
	})
}

// loadDefaultNews fetches the default feed
func (a *App) loadDefaultNews() tea.Cmd {
	return a.fetchNews(newsDefault, "Top headlines", a.client.News)
}

// search fetches results for query; blank queries only notify
func (a *App) search(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" {
		return a.notify(noticeEmptySearch, true)
	}
	return a.fetchNews(newsSearch, "Search: "+query, func(ctx context.Context) ([]client.Article, error) {
		return a.client.SearchNews(ctx, query)
	})
}

// filterByCategory fetches one category; empty means the default feed
func (a *App) filterByCategory(category string) tea.Cmd {
	if strings.TrimSpace(category) == "" {
		return a.loadDefaultNews()
	}
	return a.fetchNews(newsCategory, "Category: "+category, func(ctx context.Context) ([]client.Article, error) {
		return a.client.NewsByCategory(ctx, category)
	})
}

func (a *App) handleNewsLoaded(msg newsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.newsSeq {
		a.logger.Debug("dropping stale news response", "seq", msg.seq, "latest", a.newsSeq)
		return a, nil
	}

	if msg.err != nil {
		a.logger.Debug("news request failed", "kind", msg.kind, "error", msg.err)
		switch msg.kind {
		case newsSearch:
			a.news.StopLoading()
			return a, a.notify(noticeSearchFailed, true)
		case newsCategory:
			a.news.StopLoading()
			return a, a.notify(noticeFilterFailed, true)
		default:
			a.news.SetFailed()
			return a, nil
		}
	}

	a.news.SetArticles(msg.articles, msg.label)
	a.lastUpdate = time.Now()
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.view {
	case ViewApp:
		content = a.viewApp()
	default:
		content = a.auth.View()
	}

	return a.wrapWithFrame(content)
}

// viewApp renders the tab bar and the visible section
func (a *App) viewApp() string {
	var body string
	switch a.section {
	case nav.SectionBookmarks:
		body = a.bookmarks.View() + "\n" + styles.Help.Render(bookmarksHint)
	case nav.SectionStudy:
		body = a.study.View()
	default:
		body = a.news.View() + "\n" + styles.Help.Render(newsHint)
	}

	return nav.Bar(a.section) + "\n\n" + body
}

// frameWidth is the rendered width of header and footer
func (a *App) frameWidth() int {
	// Stay one column short of the terminal to avoid wrapping
	width := a.width - 1
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	return width
}

// contentHeight calculates the height available for section content
func (a *App) contentHeight() int {
	h := a.height - frameOverhead
	if h < 8 {
		return 8
	}
	return h
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftRendered := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("newsxstudy"))

	rightRendered := ""
	if a.view == ViewApp {
		rightRendered = " " + contextStyle.Render(a.section.Label()) + " "
	} else {
		rightRendered = " " + contextStyle.Render(a.auth.Tab().String()) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered) // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftRendered + strings.Repeat("─", fillWidth) + rightRendered + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	// The logout shortcut only exists in the app view
	var shortcuts []string
	switch a.view {
	case ViewApp:
		shortcuts = []string{"1-3 Section", "←→ Switch", "L Logout", "q Quit"}
	default:
		shortcuts = []string{"Enter Submit", auth.SwitchKey + " Tab", "ctrl+c Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}

	leftText := " " + strings.Join(styledShortcuts, "  ") + " "
	leftPlainText := " " + strings.Join(shortcuts, "  ") + " "

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.view == ViewApp {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = " " + statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = " Updated " + elapsed + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlainText) - lipgloss.Width(rightPlainText) // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}

	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header, notice line and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	if a.notice != "" {
		sb.WriteString(widgets.Notice(a.notice, a.noticeIsErr))
	}
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, store *session.Store) error {
	app := New(apiClient, store)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// RunStudy starts the standalone study timer and returns the seconds counted
func RunStudy() (int, error) {
	p := tea.NewProgram(studyview.New(true))
	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	if v, ok := final.(*studyview.View); ok {
		return v.Timer().Elapsed(), nil
	}
	return 0, nil
}
