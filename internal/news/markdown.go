// ABOUTME: Markdown preview of article cards rendered with Glamour
// ABOUTME: Provides terminal-aware wrapping for the CLI and the TUI preview pane

package news

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const (
	defaultMarkdownWidth = 80
	minMarkdownWidth     = 20
)

// TerminalWidth returns the current terminal width or a fallback when unavailable.
func TerminalWidth(fallback int) int {
	if fallback <= 0 {
		fallback = defaultMarkdownWidth
	}

	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}

	if cols := os.Getenv("COLUMNS"); cols != "" {
		if parsed, err := strconv.Atoi(cols); err == nil && parsed > 0 {
			return parsed
		}
	}

	return fallback
}

// Markdown formats a single card as markdown
func Markdown(c Card) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", c.Title)
	if c.Description != "" {
		sb.WriteString(c.Description)
		sb.WriteString("\n\n")
	}
	if c.HasLink() {
		fmt.Fprintf(&sb, "Read more: <%s>\n\n", c.URL)
	}
	fmt.Fprintf(&sb, "Image: %s\n", c.ImageURL)
	return sb.String()
}

// MarkdownList formats cards as one markdown document, or NoResults when empty
func MarkdownList(cards []Card) string {
	if len(cards) == 0 {
		return NoResults + "\n"
	}
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, Markdown(c))
	}
	return strings.Join(parts, "\n---\n\n")
}

// RenderMarkdown renders markdown using Glamour with explicit wrapping.
func RenderMarkdown(text string, width int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if width < minMarkdownWidth {
		width = minMarkdownWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(rendered, "\n"), nil
}

// Preview renders a single card for the detail pane
func Preview(c Card, width int) (string, error) {
	return RenderMarkdown(Markdown(c), width)
}
