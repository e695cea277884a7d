// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/royal.studio/internal/services/web/platform/httpx"
	webtemplates "github.com/louisbranch/royal.studio/internal/services/web/templates"
	"github.com/louisbranch/royal.studio/internal/showcase/catalog"
	"github.com/louisbranch/royal.studio/internal/showcase/viewstate"
)

// ModulePage describes a full page response.
type ModulePage struct {
	Page       webtemplates.Page
	StatusCode int
	Fragment   templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage renders the layout around the page fragment. The body is
// buffered so a render failure still produces a clean 500.
func WriteModulePage(w http.ResponseWriter, r *http.Request, page ModulePage) {
	if w == nil {
		return
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)
	var rendered bytes.Buffer
	if err := webtemplates.Layout(page.Page).Render(ctx, &rendered); err != nil {
		log.Printf("render page failed title=%q request_id=%s err=%v", page.Page.Title, httpx.RequestIDFrom(r), err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if r != nil && r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(rendered.Bytes())
}

// SitePage fills the shared chrome for a page without live choreography.
func SitePage(site *catalog.Site, title, description string) webtemplates.Page {
	view := viewstate.View{Mode: viewstate.ModeRevealedDark}
	page := webtemplates.Page{
		Title:       title,
		Description: description,
		View:        view,
		Palette:     viewstate.PaletteFor(view.Mode),
	}
	if site != nil {
		page.Brand = site.Brand
		page.Menu = webtemplates.NavItems(site.Menu)
		page.Footer = site.Footer
	}
	return page
}
