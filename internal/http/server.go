package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"bikeshare/internal/dataset"
	"bikeshare/internal/log"
	"bikeshare/internal/metrics"
	"bikeshare/internal/middleware/ratelimit"
	"bikeshare/internal/middleware/security"
	"bikeshare/internal/middleware/trace"
	"bikeshare/internal/report"
	appweb "bikeshare/web"
)

// Output labels for logs and metrics.
const (
	OutputHTML = "html"
	OutputXLSX = "xlsx"
)

// Options configure a Server. Zero values fall back to defaults.
type Options struct {
	Logger        *log.Logger
	Metrics       *metrics.Metrics
	Backend       string
	HeadRows      int
	RenderTimeout time.Duration
	RateLimit     ratelimit.Config
}

type Server struct {
	http.Server
	templates *template.Template
	source    dataset.Source

	logger   *log.Logger
	metrics  *metrics.Metrics
	detector *security.Detector
	limiter  *ratelimit.Limiter

	backend       string
	headRows      int
	renderTimeout time.Duration
	started       time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
// Every report request loads src again.
func NewServer(addr string, src dataset.Source, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.HeadRows <= 0 {
		opts.HeadRows = report.DefaultHeadRows
	}
	if opts.RenderTimeout <= 0 {
		opts.RenderTimeout = 15 * time.Second
	}

	logger := opts.Logger.WithComponent(log.ComponentHTTP)
	s := &Server{
		source:        src,
		logger:        logger,
		metrics:       opts.Metrics,
		detector:      security.NewDetector(),
		limiter:       ratelimit.NewLimiter(opts.RateLimit),
		backend:       opts.Backend,
		headRows:      opts.HeadRows,
		renderTimeout: opts.RenderTimeout,
		started:       time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	mux := http.NewServeMux()

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	limited := s.limiter.Middleware(s.detector.ExtractClientIP)
	mux.Handle("GET /{$}", limited(http.HandlerFunc(s.handleReport)))
	mux.Handle("GET /export.xlsx", limited(http.HandlerFunc(s.handleExport)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", s.metrics.Handler())

	s.Addr = addr
	s.Handler = s.chain(mux)
	return s
}

// chain wraps h with the middleware stack, outermost first.
func (s *Server) chain(h http.Handler) http.Handler {
	h = log.RequestIDMiddleware(trace.RequestID)(h)
	h = trace.NewMiddleware(s.detector.ExtractClientIP).Middleware(h)
	h = log.Middleware(s.logger)(h)
	h = s.detector.Middleware(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	return h
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// Detector exposes the request detector, mainly for its counters.
func (s *Server) Detector() *security.Detector {
	return s.detector
}
