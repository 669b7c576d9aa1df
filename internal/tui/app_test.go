// ABOUTME: Integration tests for TUI app
// ABOUTME: Tests component wiring, session transitions, and request counts against a fake backend

package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/newsxstudy/newsxstudy/cli/internal/client"
	"github.com/newsxstudy/newsxstudy/cli/internal/session"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/auth"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/bookmarks"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/nav"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/newsview"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/studyview"
)

// backend is a fake of every endpoint the TUI calls
type backend struct {
	total       atomic.Int32
	lists       atomic.Int32
	news        atomic.Int32
	deletes     atomic.Int32
	adds        atomic.Int32
	loginFails  bool
	deleteFails bool

	mu        sync.Mutex
	lastLogin map[string]string
}

func (b *backend) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.total.Add(1)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			b.mu.Lock()
			b.lastLogin = body
			b.mu.Unlock()
			if b.loginFails {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"Invalid credentials"}`))
				return
			}
			w.Write([]byte(`{"token":"tok-123"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/auth/register":
			w.Write([]byte(`{"message":"Account created"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/bookmarks/list":
			b.lists.Add(1)
			w.Write([]byte(`[{"_id":"b1","title":"Quantum leap","url":"https://q"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/bookmarks/add":
			b.adds.Add(1)
			w.Write([]byte(`{"message":"Bookmark added"}`))
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/bookmarks/delete/"):
			b.deletes.Add(1)
			if b.deleteFails {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"message":"deleted"}`))
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/news"):
			b.news.Add(1)
			w.Write([]byte(`{"articles":[{"title":"Go 2","url":"https://go.dev"},{"title":"Rust","url":"https://rust"}]}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newTestApp(t *testing.T, b *backend, token string) (*App, *session.Store) {
	t.Helper()
	server := httptest.NewServer(b.handler(t))
	t.Cleanup(server.Close)

	store := session.New(t.TempDir())
	if token != "" {
		if err := store.Save(token); err != nil {
			t.Fatalf("save session: %v", err)
		}
	}
	app := New(client.New(server.URL), store)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return app, store
}

// runCmd executes cmd, giving up on timers that would block the test
func runCmd(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(150 * time.Millisecond):
		return nil
	}
}

// drain runs cmd and feeds every resulting message back into the app.
// Timer-driven messages are dropped so the loop terminates.
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < 64; steps++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := runCmd(next)
		switch msg := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case spinner.TickMsg, clearNoticeMsg, studyview.TickMsg, tea.QuitMsg:
			continue
		}
		_, follow := a.Update(msg)
		queue = append(queue, follow)
	}
}

func press(a *App, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := a.Update(msg)
	return cmd
}

func TestInitWithoutSessionShowsAuth(t *testing.T) {
	b := &backend{}
	app, _ := newTestApp(t, b, "")

	drain(t, app, app.Init())

	if app.view != ViewAuth {
		t.Errorf("expected auth view, got %d", app.view)
	}
	if n := b.total.Load(); n != 0 {
		t.Errorf("expected no requests without a session, got %d", n)
	}
}

func TestInitWithSessionLoadsOnce(t *testing.T) {
	b := &backend{}
	app, _ := newTestApp(t, b, "tok-123")

	drain(t, app, app.Init())

	if app.view != ViewApp {
		t.Fatalf("expected app view, got %d", app.view)
	}
	if n := b.lists.Load(); n != 1 {
		t.Errorf("expected 1 bookmark fetch, got %d", n)
	}
	if n := b.news.Load(); n != 1 {
		t.Errorf("expected 1 news fetch, got %d", n)
	}
	if len(app.bookmarks.Items()) != 1 {
		t.Errorf("expected 1 bookmark, got %d", len(app.bookmarks.Items()))
	}
	if len(app.news.Cards()) != 2 {
		t.Errorf("expected 2 cards, got %d", len(app.news.Cards()))
	}
}

func TestLoginFlow(t *testing.T) {
	b := &backend{}
	app, store := newTestApp(t, b, "")
	app.Init()

	_, cmd := app.Update(auth.LoginSubmittedMsg{Email: "  ada@example.com ", Password: " secret "})
	drain(t, app, cmd)

	b.mu.Lock()
	login := b.lastLogin
	b.mu.Unlock()
	if login["email"] != "ada@example.com" || login["password"] != "secret" {
		t.Errorf("expected trimmed credentials, got %v", login)
	}
	if store.Token() != "tok-123" {
		t.Errorf("expected token persisted, got %q", store.Token())
	}
	if app.view != ViewApp {
		t.Errorf("expected app view after login, got %d", app.view)
	}
	if app.notice != noticeLoginOK {
		t.Errorf("expected %q, got %q", noticeLoginOK, app.notice)
	}
	if b.lists.Load() != 1 || b.news.Load() != 1 {
		t.Errorf("expected one list and one news fetch, got %d and %d", b.lists.Load(), b.news.Load())
	}
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	b := &backend{loginFails: true}
	app, store := newTestApp(t, b, "")
	app.Init()

	_, cmd := app.Update(auth.LoginSubmittedMsg{Email: "a@b.c", Password: "nope"})
	drain(t, app, cmd)

	if app.notice != "Invalid credentials" {
		t.Errorf("expected server message, got %q", app.notice)
	}
	if !app.noticeIsErr {
		t.Error("expected error notice")
	}
	if app.view != ViewAuth {
		t.Error("expected to stay on auth view")
	}
	if store.Authenticated() {
		t.Error("expected no session after failed login")
	}
}

func TestLoginFailureFallback(t *testing.T) {
	app, _ := newTestApp(t, &backend{}, "")
	app.Update(loginDoneMsg{err: errors.New("connection refused")})
	if app.notice != noticeLoginFailed {
		t.Errorf("expected %q, got %q", noticeLoginFailed, app.notice)
	}
}

func TestSignupReturnsToLogin(t *testing.T) {
	b := &backend{}
	app, _ := newTestApp(t, b, "")
	app.Init()
	app.auth.SwitchTab(auth.TabSignup)

	_, cmd := app.Update(auth.SignupSubmittedMsg{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	drain(t, app, cmd)

	if app.auth.Tab() != auth.TabLogin {
		t.Errorf("expected login tab after signup, got %s", app.auth.Tab())
	}
	if app.notice != "Account created" {
		t.Errorf("expected server message, got %q", app.notice)
	}
	if app.view != ViewAuth {
		t.Error("expected signup not to log in")
	}
}

func TestStaleNewsDropped(t *testing.T) {
	app, _ := newTestApp(t, &backend{}, "tok")
	app.view = ViewApp
	app.newsSeq = 2

	app.Update(newsLoadedMsg{seq: 1, articles: []client.Article{{Title: "old"}}})
	if len(app.news.Cards()) != 0 {
		t.Fatal("expected stale response to be ignored")
	}

	app.Update(newsLoadedMsg{seq: 2, articles: []client.Article{{Title: "new"}}})
	cards := app.news.Cards()
	if len(cards) != 1 || cards[0].Title != "new" {
		t.Errorf("expected latest response applied, got %+v", cards)
	}
}

func TestSearchFailureKeepsResults(t *testing.T) {
	app, _ := newTestApp(t, &backend{}, "tok")
	app.view = ViewApp
	app.newsSeq = 1
	app.Update(newsLoadedMsg{seq: 1, articles: []client.Article{{Title: "kept"}}})

	app.newsSeq = 2
	app.Update(newsLoadedMsg{seq: 2, kind: newsSearch, err: errors.New("boom")})

	if app.notice != noticeSearchFailed {
		t.Errorf("expected %q, got %q", noticeSearchFailed, app.notice)
	}
	if len(app.news.Cards()) != 1 {
		t.Error("expected previous results kept")
	}

	app.newsSeq = 3
	app.Update(newsLoadedMsg{seq: 3, kind: newsCategory, err: errors.New("boom")})
	if app.notice != noticeFilterFailed {
		t.Errorf("expected %q, got %q", noticeFilterFailed, app.notice)
	}
}

func TestDefaultNewsFailureShowsPlaceholder(t *testing.T) {
	app, _ := newTestApp(t, &backend{}, "tok")
	app.view = ViewApp
	app.newsSeq = 1

	app.Update(newsLoadedMsg{seq: 1, kind: newsDefault, err: errors.New("boom")})
	if !strings.Contains(app.news.View(), "Failed to load news") {
		t.Errorf("expected failure placeholder, got %q", app.news.View())
	}
}

func TestBlankSearchSendsNothing(t *testing.T) {
	b := &backend{}
	app, _ := newTestApp(t, b, "tok")
	app.view = ViewApp

	_, cmd := app.Update(newsview.SearchMsg{Query: "   "})
	drain(t, app, cmd)

	if app.notice != noticeEmptySearch {
		t.Errorf("expected %q, got %q", noticeEmptySearch, app.notice)
	}
	if b.total.Load() != 0 {
		t.Errorf("expected no request, got %d", b.total.Load())
	}
}

func TestEmptyCategoryLoadsDefaultFeed(t *testing.T) {
	b := &backend{}
	app, _ := newTestApp(t, b, "tok")
	app.view = ViewApp

	_, cmd := app.Update(newsview.CategoryMsg{Category: ""})
	drain(t, app, cmd)

	if b.news.Load() != 1 {
		t.Errorf("expected one news fetch, got %d", b.news.Load())
	}
	if len(app.news.Cards()) != 2 {
		t.Errorf("expected default feed cards, got %d", len(app.news.Cards()))
	}
}

func TestDeleteRefetchesOnce(t *testing.T) {
	b := &backend{}
	app, _ := newTestApp(t, b, "tok")
	app.view = ViewApp

	_, cmd := app.Update(bookmarks.DeleteMsg{ID: "b1"})
	drain(t, app, cmd)

	if b.deletes.Load() != 1 {
		t.Errorf("expected 1 delete, got %d", b.deletes.Load())
	}
	if b.lists.Load() != 1 {
		t.Errorf("expected exactly 1 re-fetch, got %d", b.lists.Load())
	}
}

func TestDeleteFailureNotifies(t *testing.T) {
	b := &backend{deleteFails: true}
	app, _ := newTestApp(t, b, "tok")
	app.view = ViewApp

	_, cmd := app.Update(bookmarks.DeleteMsg{ID: "b1"})
	drain(t, app, cmd)

	if app.notice != noticeDeleteFailed {
		t.Errorf("expected %q, got %q", noticeDeleteFailed, app.notice)
	}
	if b.lists.Load() != 0 {
		t.Errorf("expected no re-fetch after failed delete, got %d", b.lists.Load())
	}
}

func TestBookmarkAddRefreshesList(t *testing.T) {
	b := &backend{}
	app, _ := newTestApp(t, b, "tok")
	app.view = ViewApp

	_, cmd := app.Update(newsview.BookmarkMsg{Article: client.Article{Title: "Go 2", URL: "https://go.dev"}})
	drain(t, app, cmd)

	if b.adds.Load() != 1 {
		t.Errorf("expected 1 add, got %d", b.adds.Load())
	}
	if b.lists.Load() != 1 {
		t.Errorf("expected list refreshed once, got %d", b.lists.Load())
	}
	if app.notice != "Bookmark added" {
		t.Errorf("expected server message, got %q", app.notice)
	}
}

func TestBookmarkWithoutSession(t *testing.T) {
	b := &backend{}
	app, _ := newTestApp(t, b, "")
	app.view = ViewApp

	_, cmd := app.Update(newsview.BookmarkMsg{Article: client.Article{Title: "x", URL: "https://x"}})
	drain(t, app, cmd)

	if app.notice != noticeLoginToSave {
		t.Errorf("expected %q, got %q", noticeLoginToSave, app.notice)
	}
	if b.total.Load() != 0 {
		t.Errorf("expected no request, got %d", b.total.Load())
	}
}

func TestLogout(t *testing.T) {
	b := &backend{}
	app, store := newTestApp(t, b, "tok")
	drain(t, app, app.Init())

	press(app, "L")

	if app.view != ViewAuth {
		t.Errorf("expected auth view after logout, got %d", app.view)
	}
	if store.Authenticated() {
		t.Error("expected session cleared")
	}
	if len(app.bookmarks.Items()) != 0 || len(app.news.Cards()) != 0 {
		t.Error("expected lists cleared on logout")
	}
	if app.notice != noticeLoggedOut {
		t.Errorf("expected %q, got %q", noticeLoggedOut, app.notice)
	}
}

func TestLogoutDropsInFlightNews(t *testing.T) {
	app, _ := newTestApp(t, &backend{}, "tok")
	app.view = ViewApp
	app.newsSeq = 1
	seq := app.newsSeq

	press(app, "L")
	app.Update(newsLoadedMsg{seq: seq, articles: []client.Article{{Title: "late"}}})

	if len(app.news.Cards()) != 0 {
		t.Error("expected late response after logout to be ignored")
	}
}

func TestBookmarksFromPreviousSessionDropped(t *testing.T) {
	app, _ := newTestApp(t, &backend{}, "tok-a")
	app.view = ViewApp

	// Request issued for the first user, still in flight
	if app.loadBookmarks() == nil {
		t.Fatal("expected a list request")
	}
	stale := bookmarksLoadedMsg{seq: app.bookmarksSeq, items: []client.Bookmark{{ID: "a1", Title: "A private", URL: "https://a"}}}

	press(app, "L")
	app.Update(loginDoneMsg{token: "tok-b"})
	app.Update(stale)

	for _, b := range app.bookmarks.Items() {
		if b.ID == "a1" {
			t.Fatalf("expected previous user's list to be dropped, got %+v", app.bookmarks.Items())
		}
	}

	app.Update(bookmarksLoadedMsg{seq: app.bookmarksSeq, items: []client.Bookmark{{ID: "b1", Title: "B", URL: "https://b"}}})
	if items := app.bookmarks.Items(); len(items) != 1 || items[0].ID != "b1" {
		t.Errorf("expected current list applied, got %+v", items)
	}
}

func TestSectionSwitchingMakesNoRequests(t *testing.T) {
	b := &backend{}
	app, _ := newTestApp(t, b, "tok")
	app.view = ViewApp

	press(app, "2")
	if app.section != nav.SectionBookmarks {
		t.Errorf("expected bookmarks, got %s", app.section)
	}
	press(app, "3")
	if app.section != nav.SectionStudy {
		t.Errorf("expected study, got %s", app.section)
	}
	press(app, "right")
	if app.section != nav.SectionNews {
		t.Errorf("expected wrap to news, got %s", app.section)
	}
	press(app, "left")
	if app.section != nav.SectionStudy {
		t.Errorf("expected wrap back to study, got %s", app.section)
	}
	if b.total.Load() != 0 {
		t.Errorf("expected no requests when switching, got %d", b.total.Load())
	}
}

func TestStudyTicksReachTimerFromAnySection(t *testing.T) {
	app, _ := newTestApp(t, &backend{}, "tok")
	app.view = ViewApp
	app.section = nav.SectionStudy
	press(app, "s")

	press(app, "1")
	app.Update(studyview.TickMsg{Gen: 1})

	if app.study.Timer().Elapsed() != 1 {
		t.Errorf("expected tick delivered while on news, got %d", app.study.Timer().Elapsed())
	}
}

func TestQuitKeys(t *testing.T) {
	app, _ := newTestApp(t, &backend{}, "tok")
	app.view = ViewApp

	cmd := press(app, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected q to quit in app view")
	}

	app.view = ViewAuth
	cmd = press(app, "ctrl+c")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected ctrl+c to quit in auth view")
	}
}

func TestNoticeClearedOnlyBySameSeq(t *testing.T) {
	app, _ := newTestApp(t, &backend{}, "")
	app.notify("first", false)
	old := app.noticeSeq
	app.notify("second", false)

	app.Update(clearNoticeMsg{seq: old})
	if app.notice != "second" {
		t.Errorf("expected newer notice kept, got %q", app.notice)
	}
	app.Update(clearNoticeMsg{seq: app.noticeSeq})
	if app.notice != "" {
		t.Errorf("expected notice cleared, got %q", app.notice)
	}
}

func TestFormatTimeSince(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{time.Second, "just now"},
		{30 * time.Second, "30s ago"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatTimeSince(time.Now().Add(-tt.ago)); got != tt.want {
				t.Errorf("formatTimeSince(-%s) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}
}
