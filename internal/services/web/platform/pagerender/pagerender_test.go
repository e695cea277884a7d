package pagerender

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"

	webtemplates "github.com/louisbranch/royal.studio/internal/services/web/templates"
)

func TestWriteModulePageRendersLayoutAndStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects/9", nil)
	WriteModulePage(rr, req, ModulePage{
		Page:       webtemplates.Page{Title: "Missing"},
		StatusCode: http.StatusNotFound,
		Fragment:   webtemplates.NotFound("9"),
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q", got)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<title>Missing · Royal Studio</title>") || !strings.Contains(body, "Project Not Found") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestWriteModulePageHeadOmitsBody(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteModulePage(rr, httptest.NewRequest(http.MethodHead, "/", nil), ModulePage{})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("HEAD body length = %d, want 0", rr.Body.Len())
	}
}

func TestWriteModulePageRenderFailureReturnsInternalError(t *testing.T) {
	t.Parallel()

	failing := templ.ComponentFunc(func(context.Context, io.Writer) error {
		return errors.New("boom")
	})
	rr := httptest.NewRecorder()
	WriteModulePage(rr, httptest.NewRequest(http.MethodGet, "/", nil), ModulePage{Fragment: failing})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}
