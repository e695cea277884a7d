package projects

import (
	"net/http"

	"github.com/louisbranch/royal.studio/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Projects, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProjectPrefix+"{$}", h.handleIndexRedirect)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProjectPrefix+"{id}", h.handleDetail)
}
