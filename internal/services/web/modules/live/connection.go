package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/louisbranch/royal.studio/internal/platform/timeouts"
	apperrors "github.com/louisbranch/royal.studio/internal/services/web/platform/errors"
	"github.com/louisbranch/royal.studio/internal/services/web/platform/observability"
	"github.com/louisbranch/royal.studio/internal/showcase/choreography"
	"github.com/louisbranch/royal.studio/internal/showcase/intersect"
	"github.com/louisbranch/royal.studio/internal/showcase/session"
	"github.com/louisbranch/royal.studio/internal/showcase/viewstate"
)

const controlQueueSize = 16

// connection pairs one websocket with one view session.
//
// Snapshots are latest-wins: the session's update callback replaces the
// pending snapshot and nudges the writer, so a slow client only ever receives
// the newest state. Control frames queue in order ahead of snapshots.
type connection struct {
	ws      *websocket.Conn
	session *session.Session
	variant string
	limiter *rate.Limiter
	metrics *observability.Metrics

	control chan Outbound
	notify  chan struct{}

	mu       sync.Mutex
	pending  *session.Snapshot
	lastMode viewstate.Mode
}

func newConnection(ws *websocket.Conn, svc service, variant choreography.Variant) (*connection, error) {
	c := &connection{
		ws:      ws,
		variant: variant.Name,
		limiter: svc.limiter(),
		metrics: svc.metrics,
		control: make(chan Outbound, controlQueueSize),
		notify:  make(chan struct{}, 1),
	}
	sess, err := session.New(svc.newID(), variant, svc.scheduler, c.onUpdate)
	if err != nil {
		return nil, err
	}
	c.session = sess
	return c, nil
}

// onUpdate runs under the session lock and must not block.
func (c *connection) onUpdate(snap session.Snapshot) {
	c.mu.Lock()
	if snap.View.Mode != c.lastMode {
		c.lastMode = snap.View.Mode
		c.metrics.Transition(snap.View.Mode)
	}
	c.pending = &snap
	c.mu.Unlock()
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

func (c *connection) takePending() *session.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.pending
	c.pending = nil
	return snap
}

// enqueue drops the frame when the control queue is full.
func (c *connection) enqueue(frame Outbound) {
	select {
	case c.control <- frame:
	default:
	}
}

func (c *connection) serve(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	id := c.session.ID()
	opened := time.Now()
	c.metrics.SessionOpened()
	log.Printf("live session opened session_id=%s variant=%s", id, c.variant)

	c.enqueue(Outbound{Type: FrameSession, SessionID: id, Variant: c.variant})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		c.writeLoop(ctx)
	}()

	if err := c.session.Mount(); err != nil {
		log.Printf("live session mount failed session_id=%s err=%v", id, err)
	} else {
		c.readLoop(ctx)
	}

	c.session.Close()
	cancel()
	wg.Wait()
	_ = c.ws.Close()
	c.metrics.SessionClosed(time.Since(opened).Seconds())
	log.Printf("live session closed session_id=%s duration=%s", id, time.Since(opened).Round(time.Millisecond))
}

func (c *connection) readLoop(ctx context.Context) {
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(timeouts.LivePong))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(timeouts.LivePong))
	})
	for {
		if ctx.Err() != nil {
			return
		}
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				log.Printf("live read failed session_id=%s err=%v", c.session.ID(), err)
			}
			return
		}
		if err := c.handleFrame(data); err != nil {
			c.enqueue(Outbound{Type: FrameError, Error: err.Error(), Key: apperrors.Key(err)})
		}
	}
}

func (c *connection) handleFrame(data []byte) error {
	if !c.limiter.Allow() {
		c.metrics.Frame(observability.FrameRateLimited)
		return apperrors.EK(apperrors.KindRateLimited, keyRateLimited, "rate limited")
	}
	var frame Inbound
	if err := json.Unmarshal(data, &frame); err != nil {
		c.metrics.Frame(observability.FrameMalformed)
		return apperrors.EK(apperrors.KindInvalidInput, keyMalformedFrame, "malformed frame")
	}
	if frame.Type != FrameRatio {
		c.metrics.Frame(observability.FrameMalformed)
		return apperrors.EK(apperrors.KindInvalidInput, keyUnsupportedFrame, fmt.Sprintf("unsupported frame type %q", frame.Type))
	}
	if frame.Ratio == nil {
		c.metrics.Frame(observability.FrameMalformed)
		return apperrors.EK(apperrors.KindInvalidInput, keyMissingRatio, "ratio is required")
	}
	if err := c.session.Observe(frame.Region, *frame.Ratio); err != nil {
		c.metrics.Frame(observability.FrameRejected)
		switch {
		case errors.Is(err, session.ErrUnknownRegion):
			return apperrors.EK(apperrors.KindInvalidInput, keyUnknownRegion, fmt.Sprintf("unknown region %q", frame.Region))
		case errors.Is(err, intersect.ErrInvalidRatio):
			return apperrors.EK(apperrors.KindInvalidInput, keyInvalidRatio, "ratio must be within [0,1]")
		default:
			return err
		}
	}
	c.metrics.Frame(observability.FrameAccepted)
	return nil
}

func (c *connection) writeLoop(ctx context.Context) {
	ping := time.NewTicker(timeouts.LivePing)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			// Unblock the reader if the peer never answers the close.
			_ = c.ws.SetReadDeadline(time.Now().Add(timeouts.LiveWrite))
			return
		case frame := <-c.control:
			if err := c.writeJSON(frame); err != nil {
				c.abortRead()
				return
			}
		case <-c.notify:
			if err := c.flush(); err != nil {
				c.abortRead()
				return
			}
		case <-ping.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.abortRead()
				return
			}
		}
	}
}

// flush writes queued control frames, then the newest snapshot.
func (c *connection) flush() error {
	if err := c.drainControl(); err != nil {
		return err
	}
	snap := c.takePending()
	if snap == nil {
		return nil
	}
	return c.writeJSON(Outbound{Type: FrameSnapshot, Snapshot: snap})
}

// abortRead ends a blocked ReadMessage once the write side has failed.
func (c *connection) abortRead() {
	_ = c.ws.SetReadDeadline(time.Now())
}

func (c *connection) drainControl() error {
	for {
		select {
		case frame := <-c.control:
			if err := c.writeJSON(frame); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (c *connection) writeJSON(frame Outbound) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(timeouts.LiveWrite))
	if err := c.ws.WriteJSON(frame); err != nil {
		log.Printf("live write failed session_id=%s type=%s err=%v", c.session.ID(), frame.Type, err)
		return err
	}
	return nil
}

func (c *connection) write(messageType int, data []byte) error {
	return c.ws.WriteControl(messageType, data, time.Now().Add(timeouts.LiveWrite))
}
