// ABOUTME: Bookmark commands for the newsxstudy CLI
// ABOUTME: Lists, adds, and removes bookmarks for the logged-in user

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
	"github.com/newsxstudy/newsxstudy/cli/internal/output"
	"github.com/newsxstudy/newsxstudy/cli/internal/session"
	"github.com/spf13/cobra"
)

// Notice texts shared with the TUI
const (
	noticeLoginToSave   = "Please login to save bookmarks"
	noticeBookmarkSaved = "Bookmark saved"
	noticeSaveFailed    = "Failed to save bookmark"
	noticeListFailed    = "Failed to load bookmarks"
	noticeDeleteFailed  = "Failed to delete"
	noticeNoBookmarks   = "No bookmarks yet"
	noticeDeleted       = "Bookmark deleted"
)

// hintLogin follows errors caused by a missing or rejected session
const hintLogin = "Run 'newsxstudy login' first."

// maxTitleWidth bounds the title column of the bookmark table
const maxTitleWidth = 60

var bookmarksCmd = &cobra.Command{
	Use:     "bookmarks",
	Aliases: []string{"bm"},
	Short:   "Manage bookmarks",
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved bookmarks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		exitWith(runBookmarksList(ctx, os.Stdout))
	},
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <title> <url>",
	Short: "Save a bookmark",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		exitWith(runBookmarksAdd(ctx, os.Stdout, args[0], args[1]))
	},
}

var bookmarksRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a bookmark and show the remaining list",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		exitWith(runBookmarksRemove(ctx, os.Stdout, args[0]))
	},
}

func init() {
	bookmarksCmd.AddCommand(bookmarksListCmd)
	bookmarksCmd.AddCommand(bookmarksAddCmd)
	bookmarksCmd.AddCommand(bookmarksRmCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

// requireToken returns the stored token or ErrNoSession
func requireToken(store *session.Store) (string, error) {
	token := store.Token()
	if token == "" {
		return "", session.ErrNoSession
	}
	return token, nil
}

// runBookmarksList prints the bookmark list and returns exit code
func runBookmarksList(ctx context.Context, w io.Writer) int {
	token, err := requireToken(newSessionStore())
	if err != nil {
		printError(w, err)
		fmt.Fprintln(w, hintLogin)
		return 1
	}
	return listBookmarks(ctx, w, newClient(slog.Default()), token)
}

// listBookmarks performs one list fetch and prints it
func listBookmarks(ctx context.Context, w io.Writer, c *client.Client, token string) int {
	bookmarks, err := c.ListBookmarks(ctx, token)
	if err != nil {
		printNotice(w, noticeListFailed)
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(w, hintLogin)
		}
		slog.Debug("bookmark list failed", "error", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatBookmarksJSON(bookmarks))
		return 0
	}
	if err := writeBookmarksTable(w, bookmarks); err != nil {
		printError(w, err)
		return 1
	}
	return 0
}

// runBookmarksAdd saves a bookmark, then re-lists once on success
func runBookmarksAdd(ctx context.Context, w io.Writer, title, link string) int {
	token, err := requireToken(newSessionStore())
	if err != nil {
		printNotice(w, noticeLoginToSave)
		return 1
	}

	c := newClient(slog.Default())
	resp, err := c.AddBookmark(ctx, token, title, link)
	if err != nil {
		printNotice(w, client.ServerMessage(err, noticeSaveFailed))
		slog.Debug("bookmark add failed", "error", err)
		return 2
	}

	msg := noticeBookmarkSaved
	if resp.Message != "" {
		msg = resp.Message
	}
	if !IsJSONOutput() {
		printNotice(w, msg)
	}
	return listBookmarks(ctx, w, c, token)
}

// runBookmarksRemove deletes a bookmark, then re-lists once on success
func runBookmarksRemove(ctx context.Context, w io.Writer, id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		printError(w, errors.New("bookmark id is required"))
		return 1
	}

	token, err := requireToken(newSessionStore())
	if err != nil {
		printError(w, err)
		fmt.Fprintln(w, hintLogin)
		return 1
	}

	c := newClient(slog.Default())
	if err := c.DeleteBookmark(ctx, token, id); err != nil {
		printNotice(w, noticeDeleteFailed)
		slog.Debug("bookmark delete failed", "id", id, "error", err)
		return 2
	}

	if !IsJSONOutput() {
		printNotice(w, noticeDeleted)
	}
	return listBookmarks(ctx, w, c, token)
}

// writeBookmarksTable renders bookmarks as a table
func writeBookmarksTable(w io.Writer, bookmarks []client.Bookmark) error {
	if len(bookmarks) == 0 {
		printNotice(w, noticeNoBookmarks)
		return nil
	}

	tbl := output.NewTable(w, []string{"ID", "Title", "URL"})
	for _, b := range bookmarks {
		title := output.Clean(b.Title)
		if title == "" {
			title = "Untitled"
		}
		tbl.AddRow(output.Clean(b.ID), output.Truncate(title, maxTitleWidth), output.Clean(b.URL))
	}
	return tbl.Render()
}

// formatBookmarksJSON formats bookmarks as JSON; an empty list is an empty array
func formatBookmarksJSON(bookmarks []client.Bookmark) string {
	if bookmarks == nil {
		bookmarks = []client.Bookmark{}
	}
	data, _ := json.MarshalIndent(bookmarks, "", "  ")
	return string(data)
}
