// ABOUTME: Top-level section navigation for the app view
// ABOUTME: Maps keys to News, Bookmarks, and Study sections and renders the tab bar

package nav

import (
	"strings"

	"github.com/newsxstudy/newsxstudy/cli/internal/tui/icons"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui/styles"
)

// Section represents a top-level area of the app view
type Section int

const (
	SectionNews Section = iota
	SectionBookmarks
	SectionStudy
)

// sections lists every section in tab order
var sections = []Section{SectionNews, SectionBookmarks, SectionStudy}

// All returns the sections in tab order
func All() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// String returns the string representation of a Section
func (s Section) String() string {
	switch s {
	case SectionNews:
		return "news"
	case SectionBookmarks:
		return "bookmarks"
	case SectionStudy:
		return "study"
	default:
		return "unknown"
	}
}

// Label returns the tab label including its icon
func (s Section) Label() string {
	switch s {
	case SectionNews:
		return icons.News.String() + " News"
	case SectionBookmarks:
		return icons.Bookmark.String() + " Bookmarks"
	case SectionStudy:
		return icons.Timer.String() + " Study"
	default:
		return "?"
	}
}

// Next returns the following section, wrapping around
func (s Section) Next() Section {
	return sections[(int(s)+1)%len(sections)]
}

// Prev returns the preceding section, wrapping around
func (s Section) Prev() Section {
	return sections[(int(s)+len(sections)-1)%len(sections)]
}

// FromKey maps a navigation key to a section
func FromKey(key string) (Section, bool) {
	switch key {
	case "1":
		return SectionNews, true
	case "2":
		return SectionBookmarks, true
	case "3":
		return SectionStudy, true
	}
	return 0, false
}

// Bar renders the tab bar with active highlighted
func Bar(active Section) string {
	tabs := make([]string, 0, len(sections))
	for i, s := range sections {
		label := string(rune('1'+i)) + " " + s.Label()
		tabs = append(tabs, styles.Tab(label, s == active))
	}
	return strings.Join(tabs, " ")
}
