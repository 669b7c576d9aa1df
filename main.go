// ABOUTME: Entry point for the newsxstudy CLI
// ABOUTME: News reader, bookmarks, and study timer for the terminal

package main

import (
	"fmt"
	"os"

	"github.com/newsxstudy/newsxstudy/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
