package agent

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/logger"
)

// Routes served by the agent.
const (
	RouteRoot    = "/"
	RouteAnalyze = "/analyze"
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 5 * time.Second
)

// Server answers snapshot requests from a Sampler.
type Server struct {
	sampler Sampler
	log     logger.Logger
	metrics *metrics
	engine  *gin.Engine
}

// NewServer builds the HTTP routes. A nil logger discards output.
func NewServer(s Sampler, log logger.Logger) *Server {
	if log == nil {
		log = logger.Noop()
	}
	gin.SetMode(gin.ReleaseMode)

	srv := &Server{
		sampler: s,
		log:     log,
		metrics: newMetrics(),
		engine:  gin.New(),
	}

	srv.engine.Use(gin.Recovery(), srv.observe())
	srv.engine.GET(RouteRoot, srv.handleRoot)
	srv.engine.GET(RouteAnalyze, srv.handleAnalyze)
	srv.engine.GET(RouteHealth, srv.handleHealth)
	srv.engine.GET(RouteMetrics, gin.WrapH(promhttp.HandlerFor(srv.metrics.registry, promhttp.HandlerOpts{})))

	return srv
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- hs.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return errors.WrapWithCode(err, errors.ErrAgent,
			"Agent stopped unexpectedly", "")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return errors.WrapWithCode(err, errors.ErrAgent,
			"Agent did not shut down cleanly", "")
	}
	return nil
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrAgent,
			"Cannot listen on "+addr,
			"Pick a free address with --addr or agent.addr")
	}
	s.log.Info("agent listening on %s", ln.Addr())
	return s.Serve(ctx, ln)
}

// observe counts and logs every request and echoes the caller's request id.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id != "" {
			c.Header(requestIDHeader, id)
		}

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := c.Writer.Status()
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
		s.log.Debug("%s %s -> %d in %s (request %s)", c.Request.Method, c.Request.URL.Path,
			code, time.Since(start).Round(time.Millisecond), id)
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, "pulse agent: system check complete. Snapshots at %s\n", RouteAnalyze)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	start := time.Now()
	reading, err := s.sampler.Sample(c.Request.Context())
	s.metrics.sampleSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.sampleFailures.Inc()
		s.log.Warn("sampling failed: %s", errors.Summary(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errors.Summary(err)})
		return
	}

	snap := Build(reading)
	s.metrics.healthScore.Set(snap.Score())
	c.JSON(http.StatusOK, snap)
}
