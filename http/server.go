// Package http serves the search engine over a JSON HTTP API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout is the time given for outstanding requests to finish.
const ShutdownTimeout = 5 * time.Second

// Server serves search requests.
//
// Routes:
//
//	GET  /search?q=&kind=&offset=&limit=   ranked results as a SearchResponse
//	GET  /stats                            IndexStats of the active index
//	POST /reload                           rebuild the index from its source
//	GET  /healthz                          liveness
//	GET  /metrics                          Prometheus metrics, when Gatherer is set
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	mu    sync.Mutex
	stats *docsearch.IndexStats

	// reloadMu orders rebuilds with their SetStats.
	reloadMu sync.Mutex

	// Addr is the bind address, e.g. ":8080". Set before Open().
	Addr string

	Searcher docsearch.Searcher
	Logger   *slog.Logger

	// Reload rebuilds the index. Callers go through Rebuild.
	// POST /reload is disabled when nil.
	Reload func(ctx context.Context) (*docsearch.IndexStats, error)

	// Gatherer exposes metrics on /metrics when set.
	Gatherer prometheus.Gatherer
}

// NewServer returns a new Server. Routes are registered on first use of
// Handler so that fields may be set after construction.
func NewServer(searcher docsearch.Searcher, logger *slog.Logger) *Server {
	return &Server{
		server:   &http.Server{ReadHeaderTimeout: 10 * time.Second},
		Searcher: searcher,
		Logger:   logger,
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.router != nil {
		return s.router
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/search", s.handleSearch)
	r.Get("/stats", s.handleStats)
	r.Post("/reload", s.handleReload)
	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	s.router = r
	return r
}

// Open begins listening on Addr and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	s.server.Handler = s.Handler()

	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// SetStats records the stats of the active index for GET /stats.
func (s *Server) SetStats(stats *docsearch.IndexStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	kind, err := docsearch.ParseKind(params.Get("kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := s.Searcher.Search(docsearch.Query{
		Text:   params.Get("q"),
		Kind:   kind,
		Offset: intParam(params.Get("offset")),
		Limit:  intParam(params.Get("limit")),
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	stats := s.stats
	s.mu.Unlock()

	if stats == nil {
		writeError(w, docsearch.Errorf(docsearch.ENOTFOUND, "index has not been built"))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Rebuild calls Reload and records the resulting stats. Concurrent rebuilds
// run one at a time, so /stats always reports the index being served.
func (s *Server) Rebuild(ctx context.Context) (*docsearch.IndexStats, error) {
	if s.Reload == nil {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "reload is not enabled")
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	stats, err := s.Reload(ctx)
	if err != nil {
		return nil, err
	}
	s.SetStats(stats)
	return stats, nil
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Rebuild(r.Context())
	if err != nil {
		s.Logger.Error("reload failed", "err", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// logRequests emits one log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.Logger.Debug("http request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// intParam parses a paging parameter. Missing or malformed values yield 0,
// which Query.Page replaces with the default.
func intParam(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

// errorStatus maps error codes to HTTP status codes.
var errorStatus = map[string]int{
	docsearch.EINVALID:  http.StatusBadRequest,
	docsearch.ENOTFOUND: http.StatusNotFound,
	docsearch.ECONFLICT: http.StatusConflict,
	docsearch.EINTERNAL: http.StatusInternalServerError,
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := docsearch.ErrorCode(err)
	status, ok := errorStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: docsearch.ErrorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
