// ABOUTME: Tests for the bookmarks section model
// ABOUTME: Covers placeholders, delete binding, and full-replace semantics

package bookmarks

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/newsxstudy/newsxstudy/cli/internal/client"
)

func press(t *testing.T, l *List, k string) tea.Msg {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := l.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func sample() []client.Bookmark {
	return []client.Bookmark{
		{ID: "b1", Title: "Quantum leap", URL: "https://q"},
		{ID: "b2", Title: "It's fine", URL: "https://f"},
	}
}

func TestView_Placeholders(t *testing.T) {
	l := New()
	if !strings.Contains(l.View(), "Loading") {
		t.Errorf("expected loading placeholder, got %q", l.View())
	}

	l.SetItems(nil)
	if !strings.Contains(l.View(), Empty) {
		t.Errorf("expected %q, got %q", Empty, l.View())
	}

	l.SetFailed()
	if !strings.Contains(l.View(), LoadFailed) {
		t.Errorf("expected %q, got %q", LoadFailed, l.View())
	}
}

func TestDeleteUsesSelectedID(t *testing.T) {
	l := New()
	l.SetSize(100, 30)
	l.SetItems(sample())

	press(t, l, "down")
	msg := press(t, l, "d")

	del, ok := msg.(DeleteMsg)
	if !ok {
		t.Fatalf("expected DeleteMsg, got %T", msg)
	}
	if del.ID != "b2" {
		t.Errorf("expected id b2, got %q", del.ID)
	}
}

func TestDeleteWithEmptyList(t *testing.T) {
	l := New()
	l.SetItems(nil)
	if msg := press(t, l, "d"); msg != nil {
		t.Errorf("expected no message, got %T", msg)
	}
}

func TestSetItemsReplacesAndClampsCursor(t *testing.T) {
	l := New()
	l.SetSize(100, 30)
	l.SetItems(sample())
	press(t, l, "down")

	l.SetItems(sample()[:1])
	if len(l.Items()) != 1 {
		t.Fatalf("expected 1 item after replace, got %d", len(l.Items()))
	}
	if b, _ := l.Selected(); b.ID != "b1" {
		t.Errorf("expected cursor clamped to b1, got %q", b.ID)
	}
}

func TestRefresh(t *testing.T) {
	l := New()
	if _, ok := press(t, l, "r").(RefreshMsg); !ok {
		t.Error("expected RefreshMsg")
	}
}

func TestCopyLink(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	defer func() { writeClipboard = orig }()

	l := New()
	l.SetItems(sample())
	if _, ok := press(t, l, "y").(CopiedMsg); !ok {
		t.Fatal("expected CopiedMsg")
	}
	if copied != "https://q" {
		t.Errorf("expected https://q copied, got %q", copied)
	}
}

func TestClear(t *testing.T) {
	l := New()
	l.SetItems(sample())
	l.Clear()
	if len(l.Items()) != 0 {
		t.Error("expected list cleared")
	}
	if strings.Contains(l.View(), "Quantum") {
		t.Error("expected cleared list not to render old entries")
	}
}

func TestView_RendersTitlesVerbatim(t *testing.T) {
	l := New()
	l.SetSize(100, 30)
	l.SetItems(sample())

	out := l.View()
	for _, want := range []string{"Quantum leap", "It's fine", "https://f"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view:\n%s", want, out)
		}
	}
}

func TestView_ControlCharactersInEntries(t *testing.T) {
	render := func(title, link string) string {
		l := New()
		l.SetSize(100, 30)
		l.SetItems([]client.Bookmark{{ID: "b1", Title: title, URL: link}})
		return l.View()
	}

	plain := render("Line1 FAKE", "https://q")
	crafted := render("Line1\nFAKE\x1b[2J", "https://q\x1b]0;pwned\x07")

	if strings.Contains(crafted, "\x1b[2J") || strings.Contains(crafted, "pwned") {
		t.Errorf("expected escape sequences removed, got %q", crafted)
	}
	if got, want := strings.Count(crafted, "\n"), strings.Count(plain, "\n"); got != want {
		t.Errorf("expected entry to keep its height: %d lines, want %d", got, want)
	}
}
