package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	m "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agusespa/chateval/internal/evaluation"
	"github.com/agusespa/chateval/internal/store"
	"github.com/agusespa/chateval/internal/types"
	"github.com/agusespa/chateval/pkg/config"
	"github.com/agusespa/chateval/pkg/logger"
)

const maxBodyBytes = 10 << 20

// Deps are the collaborators the HTTP layer needs. Store and Gatherer may be nil.
type Deps struct {
	Runner           *evaluation.Runner
	Store            *store.Store
	Thresholds       map[types.CriterionID]float64
	OverallThreshold *float64
	Gatherer         prometheus.Gatherer
	Logger           logger.Logger
}

type Server struct {
	runner     *evaluation.Runner
	store      *store.Store
	thresholds map[types.CriterionID]float64
	overall    *float64
	gatherer   prometheus.Gatherer
	logger     logger.Logger
}

func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	return &Server{
		runner:     d.Runner,
		store:      d.Store,
		thresholds: d.Thresholds,
		overall:    d.OverallThreshold,
		gatherer:   d.Gatherer,
		logger:     d.Logger,
	}
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(m.RequestID, m.RealIP, s.requestLogger, m.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/criteria", s.listCriteria)
		r.Get("/models", s.listModels)
		r.Post("/evaluate", s.evaluate)
		r.Post("/batch", s.batch)
		r.Post("/export/csv", s.exportCSV)

		r.Route("/collections/{name}", func(r chi.Router) {
			r.Use(s.requireStore)
			r.Get("/", s.listRecords)
			r.Post("/", s.putRecord)
			r.Get("/{id}", s.getRecord)
			r.Delete("/{id}", s.deleteRecord)
		})
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// HTTPServer wraps Handler with the configured address and timeouts
func (s *Server) HTTPServer(cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := m.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", m.GetReqID(r.Context()),
		)
	})
}

type errResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{"invalid request body: " + err.Error()})
		return false
	}
	return true
}
