package sapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ArcherBullseye/Core-Smart/errors"
	"github.com/ArcherBullseye/Core-Smart/settings"
	"github.com/ArcherBullseye/Core-Smart/ulogger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ordishs/gocore"
	"golang.org/x/sync/errgroup"
)

const (
	SAPIVersionMajor = 1
	SAPIVersionMinor = 0

	// stopJoinTimeout bounds the graceful engine shutdown before the accept
	// loop is forcibly closed.
	stopJoinTimeout = 2 * time.Second
)

var SapiStat = gocore.NewStat("sapi")

// WarmupFunc reports whether the node is still warming up, with a status
// message for the client.
type WarmupFunc func() (bool, string)

// AllowFunc decides whether a peer network address may use the API.
type AllowFunc func(addr string) bool

// Server owns the endpoint registry, the work queue and the HTTP engine
// lifecycle: New -> Init (bind) -> Start (serve) -> Interrupt -> Stop.
type Server struct {
	logger        ulogger.Logger
	settings      *settings.Settings
	groups        []*EndpointGroup
	warmup        WarmupFunc
	clientAllowed AllowFunc

	versionSubPath string
	meta           responseMeta

	e          *echo.Echo
	queue      *WorkQueue
	listeners  []net.Listener
	serveGroup *errgroup.Group
	rejecting  atomic.Bool
}

type Option func(*Server)

// WithWarmupCheck installs the readiness probe consulted before dispatch.
func WithWarmupCheck(fn WarmupFunc) Option {
	return func(s *Server) {
		s.warmup = fn
	}
}

// WithAllowPolicy replaces the default peer address allow-policy.
func WithAllowPolicy(fn AllowFunc) Option {
	return func(s *Server) {
		s.clientAllowed = fn
	}
}

func NewServer(logger ulogger.Logger, tSettings *settings.Settings, groups []*EndpointGroup, options ...Option) *Server {
	initPrometheusMetrics()

	s := &Server{
		logger:         logger,
		settings:       tSettings,
		groups:         groups,
		warmup:         func() (bool, string) { return false, "" },
		clientAllowed:  defaultClientAllowed,
		versionSubPath: fmt.Sprintf("/v%d", SAPIVersionMajor),
		meta: responseMeta{
			clientName:    tSettings.ClientName,
			clientVersion: tSettings.ClientVersion,
			sapiVersion:   fmt.Sprintf("%d.%d", SAPIVersionMajor, SAPIVersionMinor),
			jsonIndent:    tSettings.SAPI.JSONIndent,
		},
	}

	for _, o := range options {
		o(s)
	}

	return s
}

// defaultClientAllowed accepts any syntactically valid peer address.
func defaultClientAllowed(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	return net.ParseIP(host) != nil
}

// Init configures the HTTP engine and binds the configured listen
// addresses. It fails if no address could be bound.
func (s *Server) Init(_ context.Context) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if s.settings.SAPI.EchoDebug {
		e.Debug = true
	}

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(s.settings.SAPI.MaxBodySize))

	if e.Debug {
		e.Use(customLoggerMiddleware(s.logger))
	}

	// The engine only accepts the methods the dispatcher understands.
	e.Pre(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodPost, http.MethodOptions:
				return next(c)
			default:
				return c.NoContent(http.StatusMethodNotAllowed)
			}
		}
	})

	// All routing happens in the dispatcher, not in the engine's router.
	e.Any("/", s.dispatch)
	e.Any("/*", s.dispatch)

	e.Server.ReadTimeout = s.settings.SAPI.ServerTimeout
	e.Server.WriteTimeout = s.settings.SAPI.ServerTimeout
	e.Server.MaxHeaderBytes = s.settings.SAPI.MaxHeaderBytes

	s.e = e

	for _, addr := range s.settings.SAPI.ListenAddresses {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			s.logger.Errorf("Binding SAPI on address %s failed: %v", addr, err)
			continue
		}

		s.logger.Debugf("Binding SAPI on address %s", ln.Addr())
		s.listeners = append(s.listeners, ln)
	}

	if len(s.listeners) == 0 {
		return errors.NewServiceError("unable to bind any listen address for the SAPI server")
	}

	depth := s.settings.SAPI.WorkQueueDepth
	if depth < 1 {
		depth = 1
	}

	s.logger.Infof("SAPI: creating work queue of depth %d", depth)
	s.queue = NewWorkQueue(depth)

	return nil
}

// Start spawns one accept loop per bound listener and the worker pool.
func (s *Server) Start(_ context.Context) error {
	if s.queue == nil || len(s.listeners) == 0 {
		return errors.NewServiceNotStartedError("SAPI server has not been initialized")
	}

	workers := s.settings.SAPI.WorkerThreads
	if workers < 1 {
		workers = 1
	}

	s.logger.Infof("SAPI: starting %d worker threads", workers)

	for i := 0; i < workers; i++ {
		s.queue.StartWorker(s.executeEndpoint)
	}

	s.serveGroup = &errgroup.Group{}

	for _, ln := range s.listeners {
		ln := ln

		s.serveGroup.Go(func() error {
			s.logger.Infof("SAPI listening on %s", ln.Addr())

			if err := s.e.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Debugf("SAPI accept loop on %s exited: %v", ln.Addr(), err)
			}

			return nil
		})
	}

	return nil
}

// Addresses returns the bound listen addresses. Only valid after Init.
func (s *Server) Addresses() []string {
	addrs := make([]string, 0, len(s.listeners))
	for _, ln := range s.listeners {
		addrs = append(addrs, ln.Addr().String())
	}

	return addrs
}

// Interrupt stops accepting new connections, answers any further request on
// existing connections with 503 and disables work queue admission. Queued
// items are still drained. Safe to call more than once.
func (s *Server) Interrupt() {
	s.logger.Infof("Interrupting SAPI server")

	s.rejecting.Store(true)

	for _, ln := range s.listeners {
		_ = ln.Close()
	}

	if s.queue != nil {
		s.queue.Interrupt()
	}
}

// Stop drains the work queue, then shuts the engine down with a bounded
// grace period, forcing the accept loop closed if it overruns. Idempotent
// and safe to call even if Start never completed.
func (s *Server) Stop(_ context.Context) error {
	// Interrupt is a no-op when it already happened; it guarantees the
	// worker pool can exit below.
	s.Interrupt()

	if s.queue != nil {
		s.logger.Debugf("Waiting for SAPI worker threads to exit")
		s.queue.WaitExit()
	}

	if s.e != nil {
		s.logger.Debugf("Waiting for SAPI accept loops to exit")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), stopJoinTimeout)
		defer cancel()

		if err := s.e.Shutdown(shutdownCtx); err != nil {
			s.logger.Warnf("SAPI accept loop did not exit within allotted time, forcing close: %v", err)
			_ = s.e.Close()
		}
	}

	if s.serveGroup != nil {
		_ = s.serveGroup.Wait()
	}

	s.logger.Infof("Stopped SAPI server")

	return nil
}

// Middleware to log HTTP requests using the custom logger
func customLoggerMiddleware(logger ulogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			duration := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			logger.Infof("http request: Method=%s, URI=%s, RemoteAddr=%s Status=%d, Duration=%v, err=%v", c.Request().Method, c.Request().RequestURI, c.Request().RemoteAddr, status, duration, err)

			return err
		}
	}
}
