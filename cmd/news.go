// ABOUTME: News commands for the newsxstudy CLI
// ABOUTME: Prints the default feed, search results, or a category as markdown or JSON

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/newsxstudy/newsxstudy/cli/internal/client"
	"github.com/newsxstudy/newsxstudy/cli/internal/news"
	"github.com/spf13/cobra"
)

// Notice texts shared with the TUI
const (
	noticeEmptySearch  = "Enter something to search"
	noticeSearchFailed = "Search failed"
	noticeFilterFailed = "Failed to filter news"
)

// newsQuery selects which news endpoint a command reads
type newsQuery struct {
	kind  string // "", "search" or "category"
	value string
}

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show the latest news",
	Long:  `Show the default news feed. Use the search and category subcommands to narrow it.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		exitWith(runNews(ctx, os.Stdout, newsQuery{}))
	},
}

var newsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search news",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		exitWith(runNews(ctx, os.Stdout, newsQuery{kind: "search", value: strings.Join(args, " ")}))
	},
}

var newsCategoryCmd = &cobra.Command{
	Use:   "category <category>",
	Short: "Show news for a category",
	Long:  `Show news for a category such as business, technology or sports. An empty category shows the default feed.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		exitWith(runNews(ctx, os.Stdout, newsQuery{kind: "category", value: args[0]}))
	},
}

func init() {
	newsCmd.AddCommand(newsSearchCmd)
	newsCmd.AddCommand(newsCategoryCmd)
	rootCmd.AddCommand(newsCmd)
}

// fetchNews calls the endpoint selected by q
func fetchNews(ctx context.Context, c *client.Client, q newsQuery) ([]client.Article, error) {
	switch q.kind {
	case "search":
		return c.SearchNews(ctx, q.value)
	case "category":
		if strings.TrimSpace(q.value) == "" {
			return c.News(ctx)
		}
		return c.NewsByCategory(ctx, q.value)
	default:
		return c.News(ctx)
	}
}

// failureNotice returns the notice shown when q fails
func (q newsQuery) failureNotice() string {
	switch q.kind {
	case "search":
		return noticeSearchFailed
	case "category":
		if strings.TrimSpace(q.value) != "" {
			return noticeFilterFailed
		}
	}
	return news.LoadFailed
}

// runNews fetches articles and returns exit code
func runNews(ctx context.Context, w io.Writer, q newsQuery) int {
	if q.kind == "search" && strings.TrimSpace(q.value) == "" {
		printNotice(w, noticeEmptySearch)
		return 1
	}

	c := newClient(slog.Default())
	articles, err := fetchNews(ctx, c, q)
	if err != nil {
		if errors.Is(err, client.ErrEmptyQuery) {
			printNotice(w, noticeEmptySearch)
			return 1
		}
		// News failures always use the fixed notice; the cause goes to the log
		printNotice(w, q.failureNotice())
		slog.Debug("news request failed", "kind", q.kind, "error", err)
		return 2
	}

	cards := news.Render(articles)
	if IsJSONOutput() {
		fmt.Fprintln(w, formatNewsJSON(cards))
	} else {
		fmt.Fprintln(w, formatNewsHuman(cards, news.TerminalWidth(80)))
	}
	return 0
}

// formatNewsHuman renders cards as terminal markdown, falling back to plain markdown
func formatNewsHuman(cards []news.Card, width int) string {
	md := news.MarkdownList(cards)
	if len(cards) == 0 {
		return strings.TrimRight(md, "\n")
	}
	rendered, err := news.RenderMarkdown(md, width)
	if err != nil {
		return strings.TrimRight(md, "\n")
	}
	return rendered
}

// formatNewsJSON formats cards as JSON; an empty result is an empty array
func formatNewsJSON(cards []news.Card) string {
	if cards == nil {
		cards = []news.Card{}
	}
	output := map[string]interface{}{
		"count":    len(cards),
		"articles": cards,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
