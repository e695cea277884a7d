package live

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/louisbranch/royal.studio/internal/services/web/platform/httpx"
)

const (
	readLimit       = 4 << 10
	readBufferSize  = 1 << 10
	writeBufferSize = 4 << 10
)

type handlers struct {
	service  service
	upgrader websocket.Upgrader
}

func newHandlers(s service) handlers {
	return handlers{
		service: s,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
		},
	}
}

// handleLive resolves the variant before upgrading so a bad request still
// gets an HTTP status and a JSON error body.
func (h handlers) handleLive(w http.ResponseWriter, r *http.Request) {
	variant, err := h.service.variant(r.URL.Query().Get("variant"))
	if err != nil {
		_ = httpx.WriteJSONError(w, err)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		log.Printf("live upgrade failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		return
	}
	c, err := newConnection(conn, h.service, variant)
	if err != nil {
		log.Printf("live session failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session unavailable"))
		_ = conn.Close()
		return
	}
	c.serve(httpx.RequestContext(r))
}
