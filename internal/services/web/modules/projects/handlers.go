package projects

import (
	"net/http"

	apperrors "github.com/louisbranch/royal.studio/internal/services/web/platform/errors"
	"github.com/louisbranch/royal.studio/internal/services/web/platform/httpx"
	"github.com/louisbranch/royal.studio/internal/services/web/platform/pagerender"
	"github.com/louisbranch/royal.studio/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/royal.studio/internal/services/web/templates"
)

type handlers struct {
	service service
}

func newHandlers(s service) handlers {
	return handlers{service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.all()
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	pagerender.WriteModulePage(w, r, pagerender.ModulePage{
		Page:     pagerender.SitePage(h.service.site, "Projects", ""),
		Fragment: webtemplates.ProjectsIndex(records),
	})
}

func (h handlers) handleIndexRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routepath.Projects, http.StatusMovedPermanently)
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	segment := r.PathValue("id")
	record, err := h.service.project(segment)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindNotFound {
			httpx.WriteError(w, err)
			return
		}
		pagerender.WriteModulePage(w, r, pagerender.ModulePage{
			Page:       pagerender.SitePage(h.service.site, "Project Not Found", ""),
			StatusCode: http.StatusNotFound,
			Fragment:   webtemplates.NotFound(segment),
		})
		return
	}
	pagerender.WriteModulePage(w, r, pagerender.ModulePage{
		Page:     pagerender.SitePage(h.service.site, record.Title, record.Description),
		Fragment: webtemplates.ProjectDetail(record),
	})
}
