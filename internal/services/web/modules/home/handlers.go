package home

import (
	"log"
	"net/http"

	"github.com/louisbranch/royal.studio/internal/services/web/platform/httpx"
	"github.com/louisbranch/royal.studio/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/royal.studio/internal/services/web/templates"
)

type handlers struct {
	service service
}

func newHandlers(s service) handlers {
	return handlers{service: s}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	page, variant, err := h.service.homePage(r.URL.Query().Get("variant"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	pagerender.WriteModulePage(w, r, pagerender.ModulePage{
		Page:     page,
		Fragment: webtemplates.Home(h.service.site, variant),
	})
}

func (h handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := httpx.WriteJSON(w, http.StatusOK, h.service.health()); err != nil {
		log.Printf("write health failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteModulePage(w, r, pagerender.ModulePage{
		Page:       pagerender.SitePage(h.service.site, "Not Found", ""),
		StatusCode: http.StatusNotFound,
		Fragment:   webtemplates.NotFound(""),
	})
}
