package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/royal.studio/internal/services/web/routepath"
	"github.com/louisbranch/royal.studio/internal/showcase/catalog"
	"github.com/louisbranch/royal.studio/internal/showcase/choreography"
)

// Regions names the page elements a variant watches.
const (
	RegionFeatured = "featured"
	RegionGallery  = "gallery"
)

// regionAttrs marks an element as watched when the variant declares it.
func regionAttrs(s *sink, variant choreography.Variant, name string) {
	spec, ok := variant.Region(name)
	if !ok {
		return
	}
	s.attr("data-region", spec.Name)
	s.attr("data-thresholds", formatThresholds(spec.Thresholds))
	s.boolAttr("data-once", spec.Once)
}

// Loader renders the full-screen overlay shown until the loading timer fires.
func Loader(label string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := newSink(ctx, w)
		s.raw(`<div class="loader" data-loader-overlay><div class="loader-bar"></div><p class="loader-label">`)
		s.text(label)
		s.raw("</p></div>")
		return s.err
	})
}

// Hero renders the video background and the timed heading.
func Hero(brand catalog.Brand) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := newSink(ctx, w)
		s.raw(`<section class="hero"><video class="hero-video" autoplay loop muted playsinline preload="none"><source`)
		s.href("src", brand.HeroVideo)
		s.raw(` type="video/mp4"></video><div class="hero-overlay"></div><div class="hero-text"><h1 class="hero-heading" data-hero-heading>`)
		s.text(brand.Tagline)
		s.raw("</h1></div></section>")
		return s.err
	})
}

// Showcase renders the narrative sections and the featured gallery.
func Showcase(site *catalog.Site, variant choreography.Variant) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := newSink(ctx, w)
		s.raw(`<section class="showcase"`)
		s.attr("id", strings.TrimPrefix(routepath.AnchorAbout, "#"))
		s.raw(`><div class="glow glow-top"></div><div class="glow glow-bottom"></div><div class="sections">`)
		for _, sec := range site.Sections {
			class := "story"
			if sec.Reverse {
				class += " story-reverse"
			}
			s.raw("<article")
			s.attr("class", class)
			s.raw(`><figure class="story-image"><img`)
			s.href("src", sec.Image)
			s.attr("alt", sec.Title)
			s.raw(` loading="lazy"></figure><div class="story-text"><h2>`)
			s.text(sec.Title)
			s.raw("</h2><p>")
			s.text(sec.Text)
			s.raw("</p></div></article>")
		}
		s.raw("</div>")
		s.component(FeaturedGallery(site.Featured, variant))
		s.raw("</section>")
		return s.err
	})
}

// FeaturedGallery renders the featured spaces carousel. The outer element is
// the theme region and the slide track is the entrance region.
func FeaturedGallery(featured catalog.Featured, variant choreography.Variant) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := newSink(ctx, w)
		s.raw(`<section class="featured"`)
		s.attr("id", strings.TrimPrefix(routepath.AnchorFeatured, "#"))
		regionAttrs(s, variant, RegionFeatured)
		s.raw(`><header class="featured-header">`)
		if featured.Eyebrow != "" {
			s.raw(`<p class="eyebrow">`)
			s.text(featured.Eyebrow)
			s.raw("</p>")
		}
		s.raw("<h2>")
		s.text(featured.Heading)
		s.raw(`</h2></header><div class="carousel" data-carousel><button type="button" class="carousel-prev" aria-label="Previous" data-carousel-prev>&lsaquo;</button><ul class="carousel-track"`)
		regionAttrs(s, variant, RegionGallery)
		s.raw(">")
		for _, item := range featured.Items {
			s.raw(`<li class="slide"><img`)
			s.href("src", item.Image)
			s.attr("alt", item.Title)
			s.raw(` loading="lazy"><div class="slide-caption"><h3>`)
			s.text(item.Title)
			s.raw("</h3><p>")
			s.text(item.Description)
			s.raw("</p></div></li>")
		}
		s.raw(`</ul><button type="button" class="carousel-next" aria-label="Next" data-carousel-next>&rsaquo;</button></div></section>`)
		return s.err
	})
}

// Home composes the landing page body.
func Home(site *catalog.Site, variant choreography.Variant) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := newSink(ctx, w)
		s.component(Loader(site.Brand.Loader))
		s.component(Hero(site.Brand))
		s.component(Showcase(site, variant))
		return s.err
	})
}
