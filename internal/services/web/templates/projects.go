package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/louisbranch/royal.studio/internal/services/web/routepath"
	"github.com/louisbranch/royal.studio/internal/showcase/catalog"
)

func backgroundStyle(url string) string {
	return "background-image:url('" + string(templ.URL(url)) + "')"
}

// ProjectsIndex renders every project as a full-height panel.
func ProjectsIndex(projects []catalog.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := newSink(ctx, w)
		s.raw(`<div class="projects">`)
		for _, p := range projects {
			s.raw(`<section class="project-panel"`)
			s.attr("id", "project-"+strconv.Itoa(p.ID))
			s.attr("style", backgroundStyle(p.Background))
			s.raw(`><div class="project-title"><h1>`)
			s.text(p.Title)
			s.raw("</h1><p>")
			s.text(p.Description)
			s.raw(`</p><a class="project-link"`)
			s.href("href", routepath.Project(p.ID))
			s.raw(">View project</a></div>")
			s.component(overlayCarousel(p))
			s.raw("</section>")
		}
		s.raw("</div>")
		return s.err
	})
}

// ProjectDetail renders one project with its overlay carousel.
func ProjectDetail(p catalog.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := newSink(ctx, w)
		s.raw(`<article class="project-detail"`)
		s.attr("data-project-id", strconv.Itoa(p.ID))
		s.attr("style", backgroundStyle(p.Background))
		s.raw(`><div class="project-title"><h1>`)
		s.text(p.Title)
		s.raw("</h1><p>")
		s.text(p.Description)
		s.raw("</p></div>")
		s.component(overlayCarousel(p))
		s.raw(`<a class="back-link"`)
		s.href("href", routepath.Projects)
		s.raw(">All projects</a></article>")
		return s.err
	})
}

func overlayCarousel(p catalog.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := newSink(ctx, w)
		s.raw(`<div class="carousel" data-carousel><button type="button" class="carousel-prev" aria-label="Previous" data-carousel-prev>&lsaquo;</button><ul class="carousel-track">`)
		for idx, img := range p.Overlays {
			s.raw(`<li class="slide"><img`)
			s.href("src", img)
			s.attr("alt", p.Title+" "+strconv.Itoa(idx+1))
			s.raw(` loading="lazy"></li>`)
		}
		s.raw(`</ul><button type="button" class="carousel-next" aria-label="Next" data-carousel-next>&rsaquo;</button></div>`)
		return s.err
	})
}

// NotFound renders the missing project page.
func NotFound(segment string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := newSink(ctx, w)
		s.raw(`<section class="not-found"><h1>Project Not Found</h1><p>`)
		if segment != "" {
			s.text("Nothing is published under “" + segment + "”.")
		} else {
			s.text("The page you are looking for does not exist.")
		}
		s.raw(`</p><a class="back-link"`)
		s.href("href", routepath.Projects)
		s.raw(">All projects</a></section>")
		return s.err
	})
}
