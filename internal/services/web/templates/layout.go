package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/royal.studio/internal/platform/branding"
	"github.com/louisbranch/royal.studio/internal/services/web/routepath"
	"github.com/louisbranch/royal.studio/internal/showcase/catalog"
	"github.com/louisbranch/royal.studio/internal/showcase/viewstate"
)

// Live points a page at its live view session endpoint.
type Live struct {
	URL     string
	Variant string
}

// Page provides shared layout context for pages.
type Page struct {
	Title       string
	Description string
	Lang        string
	Brand       catalog.Brand
	Menu        []NavItem
	Footer      catalog.Footer
	// Live is nil for pages without timed choreography.
	Live    *Live
	View    viewstate.View
	Palette viewstate.Palette
}

// DocumentTitle joins the page title with the product name.
func (p Page) DocumentTitle() string {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return branding.AppName
	}
	return title + " · " + branding.AppName
}

func paletteStyle(p viewstate.Palette) string {
	vars := []struct{ name, value string }{
		{"--bg", p.Background},
		{"--heading", p.Heading},
		{"--body", p.Body},
		{"--muted", p.Muted},
		{"--accent", p.Accent},
		{"--glow-top", p.GlowTop},
		{"--glow-bottom", p.GlowBottom},
	}
	var b strings.Builder
	for _, v := range vars {
		if v.value == "" {
			continue
		}
		b.WriteString(v.name)
		b.WriteString(":")
		b.WriteString(v.value)
		b.WriteString(";")
	}
	return b.String()
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// Layout renders the document shell around the children in ctx.
func Layout(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)
		lang := strings.TrimSpace(page.Lang)
		if lang == "" {
			lang = "en"
		}

		s := newSink(ctx, w)
		s.raw("<!doctype html><html")
		s.attr("lang", lang)
		s.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		s.text(page.DocumentTitle())
		s.raw("</title>")
		if page.Description != "" {
			s.raw(`<meta name="description"`)
			s.attr("content", page.Description)
			s.raw(">")
		}
		s.raw(`<link rel="stylesheet"`)
		s.href("href", routepath.Static("app.css"))
		s.raw("></head><body")
		s.attr("data-mode", string(page.View.Mode))
		s.attr("data-loader", boolString(page.View.ShowLoader))
		s.attr("data-heading", boolString(page.View.ShowHeading))
		if page.Live != nil {
			s.attr("data-live-url", page.Live.URL)
			s.attr("data-variant", page.Live.Variant)
		}
		s.attr("style", paletteStyle(page.Palette))
		s.raw(">")
		s.component(Nav(page.Brand, page.Menu))
		s.component(MobileMenu(page.Menu))
		s.raw("<main>")
		s.component(children)
		s.raw("</main>")
		s.component(Footer(page.Brand, page.Footer, page.Menu))
		s.raw(`<script defer`)
		s.href("src", routepath.Static("app.js"))
		s.raw("></script></body></html>")
		return s.err
	})
}

// Nav renders the top bar with the logo and desktop menu.
func Nav(brand catalog.Brand, menu []NavItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := newSink(ctx, w)
		s.raw(`<nav class="topbar"><a class="logo"`)
		s.href("href", routepath.Root)
		s.raw(">")
		s.text(brand.Logo)
		s.raw(`</a><ul class="menu">`)
		for _, item := range menu {
			s.raw("<li><a")
			s.href("href", item.Href)
			s.raw(">")
			s.text(item.Label)
			s.raw("</a></li>")
		}
		s.raw(`</ul><button class="menu-toggle" type="button" aria-label="Open menu" data-menu-open><span></span><span></span></button></nav>`)
		return s.err
	})
}

// MobileMenu renders the slide-in panel toggled by the menu button.
func MobileMenu(menu []NavItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := newSink(ctx, w)
		s.raw(`<aside class="mobile-menu" aria-hidden="true" data-menu><button type="button" class="menu-close" aria-label="Close menu" data-menu-close>&times;</button><ul>`)
		for _, item := range menu {
			s.raw("<li><a")
			s.href("href", item.Href)
			s.raw(">")
			s.text(item.Label)
			s.raw("</a></li>")
		}
		s.raw("</ul></aside>")
		return s.err
	})
}

// Footer renders the closing brand, navigation and contact block.
func Footer(brand catalog.Brand, footer catalog.Footer, menu []NavItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := newSink(ctx, w)
		s.raw(`<footer class="footer"`)
		s.attr("id", strings.TrimPrefix(routepath.AnchorContact, "#"))
		s.raw(`><div class="footer-grid"><div><h2 class="footer-brand">`)
		s.text(brand.Studio)
		s.raw("</h2><p>")
		s.text(footer.Blurb)
		s.raw(`</p></div><div><h3>Navigation</h3><ul>`)
		for _, item := range menu {
			s.raw("<li><a")
			s.href("href", item.Href)
			s.raw(">")
			s.text(item.Label)
			s.raw("</a></li>")
		}
		s.raw("</ul></div><div><h3>Contact</h3><p>")
		s.text(footer.Location)
		s.raw("</p>")
		if footer.Email != "" {
			s.raw("<a")
			s.href("href", "mailto:"+footer.Email)
			s.raw(">")
			s.text(footer.Email)
			s.raw("</a>")
		}
		s.raw(`</div></div><div class="footer-legal"><p>`)
		s.text(footer.Copyright)
		s.raw("</p><ul>")
		for _, item := range footer.Legal {
			s.raw("<li>")
			s.text(item)
			s.raw("</li>")
		}
		s.raw("</ul></div></footer>")
		return s.err
	})
}
