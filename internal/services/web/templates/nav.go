package templates

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/louisbranch/royal.studio/internal/services/web/routepath"
)

// NavItem is one rendered menu entry.
type NavItem struct {
	Label string
	Href  string
}

// Slug lowercases a label and joins its words with dashes.
func Slug(label string) string {
	return strings.Join(strings.Fields(cases.Lower(language.English).String(label)), "-")
}

// NavItems maps menu labels to links. The projects entry opens the project
// index; every other entry points at its anchor on the home page.
func NavItems(menu []string) []NavItem {
	// Casers carry state and are not shared across requests.
	upper := cases.Upper(language.English)
	items := make([]NavItem, 0, len(menu))
	for _, label := range menu {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		slug := Slug(label)
		href := routepath.Root + "#" + slug
		if routepath.Root+slug == routepath.Projects {
			href = routepath.Projects
		}
		items = append(items, NavItem{Label: upper.String(label), Href: href})
	}
	return items
}
