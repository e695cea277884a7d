package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	dto "github.com/prometheus/client_model/go"

	module "github.com/louisbranch/royal.studio/internal/services/web/module"
	"github.com/louisbranch/royal.studio/internal/services/web/platform/observability"
	"github.com/louisbranch/royal.studio/internal/services/web/routepath"
	"github.com/louisbranch/royal.studio/internal/showcase/choreography"
	"github.com/louisbranch/royal.studio/internal/showcase/clock"
	"github.com/louisbranch/royal.studio/internal/showcase/viewstate"
)

type harness struct {
	t       *testing.T
	clock   *clock.Manual
	metrics *observability.Metrics
	server  *httptest.Server
}

func newHarness(t *testing.T, live module.LiveOptions) *harness {
	t.Helper()
	set, err := choreography.Default()
	if err != nil {
		t.Fatalf("choreography.Default() error = %v", err)
	}
	h := &harness{
		t:       t,
		clock:   clock.NewManual(time.Unix(0, 0)),
		metrics: observability.NewMetrics(),
	}
	mnt, err := New(module.Dependencies{
		Choreography: set,
		Variant:      "hero",
		Scheduler:    h.clock,
		Metrics:      h.metrics,
		Live:         live,
	}).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mnt.Prefix != routepath.Live {
		t.Fatalf("Prefix = %q, want %q", mnt.Prefix, routepath.Live)
	}
	h.server = httptest.NewServer(mnt.Handler)
	t.Cleanup(h.server.Close)
	return h
}

func (h *harness) url(query string) string {
	return "ws" + strings.TrimPrefix(h.server.URL, "http") + routepath.Live + query
}

func (h *harness) dial(query string) *websocket.Conn {
	h.t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(h.url(query), nil)
	if err != nil {
		h.t.Fatalf("Dial() error = %v", err)
	}
	_ = resp.Body.Close()
	h.t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func (h *harness) read(conn *websocket.Conn) Outbound {
	h.t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame Outbound
	if err := conn.ReadJSON(&frame); err != nil {
		h.t.Fatalf("ReadJSON() error = %v", err)
	}
	return frame
}

func (h *harness) readSnapshot(conn *websocket.Conn) Outbound {
	h.t.Helper()
	frame := h.read(conn)
	if frame.Type != FrameSnapshot || frame.Snapshot == nil {
		h.t.Fatalf("frame = %+v, want snapshot", frame)
	}
	return frame
}

func (h *harness) send(conn *websocket.Conn, payload string) {
	h.t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		h.t.Fatalf("WriteMessage() error = %v", err)
	}
}

func (h *harness) waitFor(what string, cond func() bool) {
	h.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			h.t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func gaugeValue(t *testing.T, m *observability.Metrics) float64 {
	t.Helper()
	var out dto.Metric
	if err := m.ActiveSessions.Write(&out); err != nil {
		t.Fatalf("write gauge: %v", err)
	}
	return out.GetGauge().GetValue()
}

func TestModuleIDReturnsLive(t *testing.T) {
	t.Parallel()

	if got := New(module.Dependencies{}).ID(); got != "live" {
		t.Fatalf("ID() = %q, want %q", got, "live")
	}
}

func TestLiveSessionRunsChoreography(t *testing.T) {
	t.Parallel()

	h := newHarness(t, module.LiveOptions{})
	conn := h.dial("?variant=hero")

	hello := h.read(conn)
	if hello.Type != FrameSession || hello.Variant != "hero" {
		t.Fatalf("first frame = %+v, want session for hero", hello)
	}
	if _, err := uuid.Parse(hello.SessionID); err != nil {
		t.Fatalf("session id %q is not a uuid: %v", hello.SessionID, err)
	}

	initial := h.readSnapshot(conn).Snapshot
	if initial.View.Mode != viewstate.ModeLoading || !initial.View.ShowLoader || initial.View.ShowHeading {
		t.Fatalf("initial view = %+v, want loading with loader and no heading", initial.View)
	}
	if initial.SessionID != hello.SessionID {
		t.Fatalf("snapshot session = %q, want %q", initial.SessionID, hello.SessionID)
	}

	h.clock.Advance(1000 * time.Millisecond)
	revealed := h.readSnapshot(conn).Snapshot
	if revealed.View.Mode != viewstate.ModeRevealedDark || revealed.View.ShowLoader || !revealed.View.ShowHeading {
		t.Fatalf("revealed view = %+v, want dark with heading", revealed.View)
	}
	if revealed.Seq <= initial.Seq {
		t.Fatalf("seq = %d, want > %d", revealed.Seq, initial.Seq)
	}

	h.send(conn, `{"type":"ratio","region":"featured","ratio":0.3}`)
	light := h.readSnapshot(conn).Snapshot
	if light.View.Mode != viewstate.ModeRevealedLight {
		t.Fatalf("mode = %q, want %q", light.View.Mode, viewstate.ModeRevealedLight)
	}
	if light.Palette.Background != "#f8f5f0" {
		t.Fatalf("background = %q, want light palette", light.Palette.Background)
	}

	h.clock.Advance(4000 * time.Millisecond)
	hidden := h.readSnapshot(conn).Snapshot
	if hidden.View.ShowHeading {
		t.Fatalf("heading still visible after hide delay: %+v", hidden.View)
	}
	if hidden.View.Mode != viewstate.ModeRevealedLight {
		t.Fatalf("mode = %q, want theme to survive heading hide", hidden.View.Mode)
	}
}

func TestLiveRejectsBadFramesAndStaysOpen(t *testing.T) {
	t.Parallel()

	h := newHarness(t, module.LiveOptions{})
	conn := h.dial("")
	if frame := h.read(conn); frame.Variant != "hero" {
		t.Fatalf("default variant = %q, want hero", frame.Variant)
	}
	h.readSnapshot(conn)

	cases := []struct {
		payload string
		want    string
		key     string
	}{
		{payload: `{"type":"ratio","region":"lobby","ratio":0.5}`, want: "unknown region", key: "live.unknown_region"},
		{payload: `{"type":"ratio","region":"featured","ratio":1.5}`, want: "ratio must be within", key: "live.invalid_ratio"},
		{payload: `{"type":"ratio","region":"featured"}`, want: "ratio is required", key: "live.missing_ratio"},
		{payload: `{"type":"scroll"}`, want: "unsupported frame type", key: "live.unsupported_frame"},
		{payload: `not json`, want: "malformed frame", key: "live.malformed_frame"},
	}
	for _, tc := range cases {
		h.send(conn, tc.payload)
		frame := h.read(conn)
		if frame.Type != FrameError || !strings.Contains(frame.Error, tc.want) {
			t.Fatalf("payload %s: frame = %+v, want error containing %q", tc.payload, frame, tc.want)
		}
		if frame.Key != tc.key {
			t.Fatalf("payload %s: key = %q, want %q", tc.payload, frame.Key, tc.key)
		}
	}

	h.send(conn, `{"type":"ratio","region":"featured","ratio":0.5}`)
	if snap := h.readSnapshot(conn).Snapshot; !snap.Regions[0].Intersecting && !snap.Regions[1].Intersecting {
		t.Fatalf("expected a region to intersect after a valid frame: %+v", snap.Regions)
	}
}

func TestLiveRateLimitsFrames(t *testing.T) {
	t.Parallel()

	h := newHarness(t, module.LiveOptions{FramesPerSecond: 0.001, Burst: 1})
	conn := h.dial("?variant=hero")
	h.read(conn)
	h.readSnapshot(conn)

	// Below every threshold: accepted without a visible change.
	h.send(conn, `{"type":"ratio","region":"featured","ratio":0}`)
	h.send(conn, `{"type":"ratio","region":"featured","ratio":0.5}`)
	frame := h.read(conn)
	if frame.Type != FrameError || frame.Error != "rate limited" || frame.Key != "live.rate_limited" {
		t.Fatalf("frame = %+v, want rate limited error", frame)
	}
}

func TestLiveDisconnectCancelsTimers(t *testing.T) {
	t.Parallel()

	h := newHarness(t, module.LiveOptions{})
	conn := h.dial("?variant=hero")
	h.read(conn)
	h.readSnapshot(conn)
	if got := h.clock.Pending(); got != 1 {
		t.Fatalf("pending timers = %d, want 1", got)
	}
	h.waitFor("active session gauge", func() bool { return gaugeValue(t, h.metrics) == 1 })

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()

	h.waitFor("timers to be cancelled", func() bool { return h.clock.Pending() == 0 })
	h.waitFor("session gauge to drop", func() bool { return gaugeValue(t, h.metrics) == 0 })

	// Advancing past both deadlines must not resurrect anything.
	h.clock.Advance(10 * time.Second)
	if got := h.clock.Pending(); got != 0 {
		t.Fatalf("pending timers after advance = %d, want 0", got)
	}
}

func TestLiveUnknownVariantFailsHandshake(t *testing.T) {
	t.Parallel()

	h := newHarness(t, module.LiveOptions{})
	_, resp, err := websocket.DefaultDialer.Dial(h.url("?variant=nope"), nil)
	if err == nil {
		t.Fatal("expected handshake error")
	}
	if resp == nil {
		t.Fatalf("expected HTTP response, got err %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	var body struct {
		Error string `json:"error"`
		Key   string `json:"key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Key != "live.unknown_variant" || !strings.Contains(body.Error, "nope") {
		t.Fatalf("body = %+v, want unknown variant error", body)
	}
}

func TestLivePlainGetIsBadRequest(t *testing.T) {
	t.Parallel()

	h := newHarness(t, module.LiveOptions{})
	resp, err := http.Get(h.server.URL + routepath.Live)
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}
