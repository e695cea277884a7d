package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/royal.studio/internal/platform/timeouts"
	module "github.com/louisbranch/royal.studio/internal/services/web/module"
	"github.com/louisbranch/royal.studio/internal/services/web/modules"
	"github.com/louisbranch/royal.studio/internal/services/web/platform/httpx"
	"github.com/louisbranch/royal.studio/internal/services/web/platform/observability"
	"github.com/louisbranch/royal.studio/internal/services/web/routepath"
	webstatic "github.com/louisbranch/royal.studio/internal/services/web/static"
	"github.com/louisbranch/royal.studio/internal/showcase/catalog"
	"github.com/louisbranch/royal.studio/internal/showcase/choreography"
	"github.com/louisbranch/royal.studio/internal/showcase/clock"
	"golang.org/x/net/netutil"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr     string
	Site         *catalog.Site
	Choreography *choreography.Set
	Variant      string
	// Scheduler drives live session timers; nil means wall-clock time.
	Scheduler clock.Scheduler
	Metrics   *observability.Metrics
	Live      module.LiveOptions
	// MaxConnections caps concurrently accepted connections; zero is unlimited.
	MaxConnections int
	// Logger receives access lines; nil means the standard logger.
	Logger *log.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	maxConns   int
	httpServer *http.Server
	stopLive   context.CancelFunc
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Site == nil {
		return nil, errors.New("site content is required")
	}
	if cfg.Choreography == nil {
		return nil, errors.New("choreography is required")
	}
	if _, err := cfg.Choreography.Get(cfg.Variant); err != nil {
		return nil, fmt.Errorf("default variant: %w", err)
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched = clock.NewReal()
	}
	deps := module.Dependencies{
		Site:         cfg.Site,
		Choreography: cfg.Choreography,
		Variant:      cfg.Variant,
		Scheduler:    sched,
		Metrics:      metrics,
		Live:         cfg.Live,
	}

	rootMux := http.NewServeMux()
	for _, m := range modules.Default(deps) {
		mount, err := m.Mount()
		if err != nil {
			return nil, fmt.Errorf("mount module %s: %w", m.ID(), err)
		}
		prefix := strings.TrimSpace(mount.Prefix)
		if prefix == "" || mount.Handler == nil {
			return nil, fmt.Errorf("mount module %s: prefix and handler are required", m.ID())
		}
		rootMux.Handle(prefix, mount.Handler)
		// Serve the bare path too so "/projects" is not redirected to "/projects/".
		if trimmed := strings.TrimSuffix(prefix, "/"); trimmed != "" && trimmed != prefix {
			rootMux.Handle(trimmed, mount.Handler)
		}
	}
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle(http.MethodGet+" "+routepath.Metrics, metrics.Handler())

	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.Trace(),
		observability.RequestLogger(cfg.Logger),
	), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if cfg.MaxConnections < 0 {
		return nil, errors.New("max connections must not be negative")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	// Live connections are hijacked, so Shutdown does not wait for them.
	// Their request contexts derive from liveCtx and end when it is cancelled.
	liveCtx, stopLive := context.WithCancel(context.Background())
	return &Server{
		httpAddr: httpAddr,
		maxConns: cfg.MaxConnections,
		stopLive: stopLive,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			BaseContext:       func(net.Listener) context.Context { return liveCtx },
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	defer s.stopLive()

	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen web http: %w", err)
	}
	if s.maxConns > 0 {
		listener = netutil.LimitListener(listener, s.maxConns)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("web listening addr=%s max_conns=%d", listener.Addr(), s.maxConns)
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.stopLive != nil {
		s.stopLive()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
}
