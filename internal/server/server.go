// Package server exposes the knot pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                       liveness and version
//	GET  /v1/turkshead?leads=3&bights=4 analyze TH(leads, bights)
//	POST /v1/knots                      analyze a JSON point list
//	POST /v1/definitions                analyze a TOML or JSON knot definition
//	POST /v1/synthesize                 run a layer search
//	GET  /metrics                       Prometheus metrics, when a gatherer is set
//
// Every knot route answers with a JSON envelope of analyses. With
// ?format=dot|svg|png|txt and a single resulting knot the rendered artifact
// is returned instead.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/turkshead/pkg/buildinfo"
	errs "github.com/matzehuels/turkshead/pkg/errors"
	knotio "github.com/matzehuels/turkshead/pkg/io"
	"github.com/matzehuels/turkshead/pkg/knot/factory"
	"github.com/matzehuels/turkshead/pkg/observability"
	"github.com/matzehuels/turkshead/pkg/pipeline"
)

// Defaults applied by New.
const (
	DefaultAddr         = "127.0.0.1:8080"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = 1 << 20
	DefaultLimit        = 64
)

// Config configures a Server.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Logger *log.Logger

	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer

	// Timeout bounds each request, layer searches included.
	Timeout time.Duration
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64
	// MaxCandidates caps layer searches. Requests cannot raise it.
	MaxCandidates int
	// Limit caps the knots returned by one layer search.
	Limit int
	// Workers sets the search worker count. Zero uses GOMAXPROCS.
	Workers int
}

// Server serves the knot API.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New creates a server and builds its routes.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = pipeline.DefaultMaxCandidates
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}

	s := &Server{cfg: cfg, logger: cfg.Logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, errs.New(errs.ErrCodeNotFound, "route not found"))
	})

	r.Get("/healthz", s.handleHealth)
	if s.cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.Timeout))
		r.Get("/turkshead", s.handleTurksHead)
		r.Post("/knots", s.handleKnots)
		r.Post("/definitions", s.handleDefinition)
		r.Post("/synthesize", s.handleSynthesize)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.Timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// instrument reports every request to the HTTP hooks and the debug log.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleTurksHead(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	leads, err := intParam(q.Get("leads"), "leads")
	if err != nil {
		writeError(w, err)
		return
	}
	bights, err := intParam(q.Get("bights"), "bights")
	if err != nil {
		writeError(w, err)
		return
	}
	s.execute(w, r, pipeline.Options{Name: q.Get("name"), Leads: leads, Bights: bights})
}

func (s *Server) handleKnots(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	points, err := knotio.ParsePoints(data)
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "points"))
		return
	}
	s.execute(w, r, pipeline.Options{Name: r.URL.Query().Get("name"), Points: points})
}

func (s *Server) handleDefinition(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	format := "json"
	if ct := r.Header.Get("Content-Type"); strings.Contains(ct, "toml") {
		format = "toml"
	}
	def, err := knotio.ParseDefinition(data, format)
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "definition"))
		return
	}
	opts, err := pipeline.FromDefinition(def)
	if err != nil {
		writeError(w, err)
		return
	}
	s.execute(w, r, opts)
}

// synthesizeRequest is the body of POST /v1/synthesize. Layers is either a
// "3@1,3@2" string or a list of {"count", "height"} objects.
type synthesizeRequest struct {
	Name         string          `json:"name"`
	Layers       json.RawMessage `json:"layers"`
	SingleStrand bool            `json:"single_strand"`
	Limit        int             `json:"limit"`
}

func (req synthesizeRequest) layers() (factory.Layers, error) {
	raw := strings.TrimSpace(string(req.Layers))
	if raw == "" || raw == "null" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "layers are required")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(req.Layers, &s); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "layers")
		}
		return factory.ParseLayers(s)
	}
	var ls factory.Layers
	if err := json.Unmarshal(req.Layers, &ls); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "layers")
	}
	return ls, nil
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req synthesizeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "synthesize request"))
		return
	}
	layers, err := req.layers()
	if err != nil {
		writeError(w, errs.FromKnot(err, "layers"))
		return
	}
	opts := pipeline.Options{
		Name:         req.Name,
		Layers:       layers,
		SingleStrand: req.SingleStrand,
		Limit:        req.Limit,
	}
	s.execute(w, r, opts)
}

// =============================================================================
// Pipeline
// =============================================================================

// knotsResponse is the JSON envelope of every knot route.
type knotsResponse struct {
	RunID     string             `json:"run_id"`
	Source    string             `json:"source"`
	Synthesis *synthesisSummary  `json:"synthesis,omitempty"`
	Knots     []*knotio.Analysis `json:"knots"`
	Cached    bool               `json:"cached"`
	Stats     statsSummary       `json:"stats"`
}

type statsSummary struct {
	Knots     int   `json:"knots"`
	Strands   int   `json:"strands"`
	Crossings int   `json:"crossings"`
	ElapsedMS int64 `json:"elapsed_ms"`
}

type synthesisSummary struct {
	Layers     factory.Layers `json:"layers"`
	Candidates int            `json:"candidates"`
	Tyable     int            `json:"tyable"`
	Found      int            `json:"found"`
}

// execute applies the server limits to opts, runs the pipeline and writes
// the response in the requested format.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	q := r.URL.Query()
	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := errs.ValidateFormat(format, pipeline.ValidFormats...); err != nil {
		writeError(w, err)
		return
	}

	opts.Formats = []string{format}
	opts.Crossings = q.Get("crossings") != "false"
	opts.Grid = q.Get("grid") == "true"
	opts.Refresh = q.Get("refresh") == "true"
	opts.Workers = s.cfg.Workers
	opts.Logger = s.logger
	if len(opts.Layers) > 0 {
		opts.MaxCandidates = s.cfg.MaxCandidates
		if opts.Limit <= 0 || opts.Limit > s.cfg.Limit {
			opts.Limit = s.cfg.Limit
		}
	}

	res, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	if format != pipeline.FormatJSON {
		if len(res.Knots) != 1 {
			writeError(w, errs.New(errs.ErrCodeInvalidInput,
				"format %s needs exactly one knot, have %d; use limit=1", format, len(res.Knots)))
			return
		}
		w.Header().Set("Content-Type", contentType(format))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Knots[0].Artifacts[format])
		return
	}

	resp := knotsResponse{
		RunID:  res.RunID,
		Source: string(res.Source),
		Knots:  make([]*knotio.Analysis, len(res.Knots)),
		Cached: res.CacheInfo.BuildHit || res.CacheInfo.RenderHits > 0,
		Stats: statsSummary{
			Knots:     res.Stats.KnotCount,
			Strands:   res.Stats.Strands,
			Crossings: res.Stats.Crossings,
			ElapsedMS: (res.Stats.BuildTime + res.Stats.AnalyzeTime + res.Stats.RenderTime).Milliseconds(),
		},
	}
	for i, kr := range res.Knots {
		resp.Knots[i] = kr.Analysis.Doc()
	}
	if syn := res.Synthesis; syn != nil {
		resp.Synthesis = &synthesisSummary{
			Layers:     syn.Layers,
			Candidates: syn.Candidates,
			Tyable:     syn.Tyable,
			Found:      len(syn.Knots),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errs.New(errs.ErrCodeTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read body")
	}
	return data, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error struct {
		Code    errs.Code `json:"code"`
		Message string    `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to its status code and writes it as JSON.
func writeError(w http.ResponseWriter, err error) {
	code := errs.Classify(err)
	var body errorBody
	body.Error.Code = code
	body.Error.Message = errs.UserMessage(err)
	writeJSON(w, errs.HTTPStatus(code), body)
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, errs.New(errs.ErrCodeInvalidInput, "%s is required", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "%s", name)
	}
	return n, nil
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatTXT:
		return "text/plain; charset=utf-8"
	default:
		return fmt.Sprintf("application/%s", format)
	}
}
