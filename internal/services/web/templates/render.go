package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// sink accumulates the first write error so components read top to bottom.
type sink struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newSink(ctx context.Context, w io.Writer) *sink {
	return &sink{ctx: ctx, w: w}
}

func (s *sink) raw(parts ...string) {
	for _, part := range parts {
		if s.err != nil {
			return
		}
		_, s.err = io.WriteString(s.w, part)
	}
}

func (s *sink) text(value string) {
	s.raw(templ.EscapeString(value))
}

// attr writes ` name="value"` with value escaped.
func (s *sink) attr(name, value string) {
	s.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// href writes a sanitized URL attribute.
func (s *sink) href(name, url string) {
	s.attr(name, string(templ.URL(url)))
}

func (s *sink) boolAttr(name string, on bool) {
	if on {
		s.raw(" ", name)
	}
}

func (s *sink) component(c templ.Component) {
	if s.err != nil || c == nil {
		return
	}
	s.err = c.Render(s.ctx, s.w)
}

func formatThresholds(values []float64) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return strings.Join(parts, " ")
}
