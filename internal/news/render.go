// ABOUTME: Display rules for news articles shared by the TUI and CLI
// ABOUTME: Applies image/title/link fallbacks and strips markup from descriptions

package news

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/newsxstudy/newsxstudy/cli/internal/client"
	"github.com/newsxstudy/newsxstudy/cli/internal/output"
)

// Fallback values used when an article field is missing
const (
	PlaceholderImage = "https://via.placeholder.com/800x450?text=No+Image"
	Untitled         = "Untitled"
	NoLink           = "#"

	// NoResults replaces the card list when there is nothing to show
	NoResults = "No news found"
	// LoadFailed replaces the card list when the default feed cannot be fetched
	LoadFailed = "Failed to load news"
)

var stripPolicy = bluemonday.StrictPolicy()

// Card is an article prepared for display
type Card struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`

	// Article is the untouched source, handed to actions such as bookmarking
	Article client.Article `json:"-"`
}

// ImageURL picks the first available image field, then the placeholder
func ImageURL(a client.Article) string {
	for _, candidate := range []string{a.URLToImage, a.Image} {
		if clean := output.Clean(candidate); clean != "" {
			return clean
		}
	}
	return PlaceholderImage
}

// NewCard derives the display card for an article. Displayed text is
// reduced to one terminal line; Article keeps the original values.
func NewCard(a client.Article) Card {
	c := Card{
		Title:       output.Clean(a.Title),
		Description: Sanitize(a.Description),
		URL:         output.Clean(a.URL),
		ImageURL:    ImageURL(a),
		Article:     a,
	}
	if c.Title == "" {
		c.Title = Untitled
	}
	if c.URL == "" {
		c.URL = NoLink
	}
	return c
}

// Render converts articles to cards. A nil or empty input yields no cards,
// and callers show NoResults instead of an empty list.
func Render(articles []client.Article) []Card {
	if len(articles) == 0 {
		return nil
	}
	cards := make([]Card, 0, len(articles))
	for _, a := range articles {
		cards = append(cards, NewCard(a))
	}
	return cards
}

// Sanitize strips HTML from s, decodes entities, removes terminal escapes
// and collapses whitespace
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return output.Clean(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// HasLink reports whether the card points somewhere real
func (c Card) HasLink() bool {
	return c.URL != NoLink
}
