// Package server is the thin HTTP surface over the analysis engine and the
// store. It implements the collaborator contracts only: accept a document,
// run the engine, hand back the full result with its degraded flag and
// warnings, never auto-approve anything.
package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	gocache "github.com/patrickmn/go-cache"

	"github.com/credlens/credlens/internal/engine"
	"github.com/credlens/credlens/internal/logging"
	"github.com/credlens/credlens/internal/model"
	"github.com/credlens/credlens/internal/pdftext"
	"github.com/credlens/credlens/internal/store"
)

// Server is the HTTP API surface.
type Server struct {
	cfg    Config
	eng    *engine.Engine
	store  *store.Store
	memo   *gocache.Cache
	router chi.Router
	logger logging.Logger
}

// New creates a Server with its own engine and, when cfg.DBPath is set, an
// analysis store.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}
	if cfg.MemoTTL <= 0 {
		cfg.MemoTTL = DefaultConfig().MemoTTL
	}

	s := &Server{
		cfg:    cfg,
		eng:    engine.New(nil),
		memo:   gocache.New(cfg.MemoTTL, 2*cfg.MemoTTL),
		logger: logger,
	}

	if cfg.DBPath != "" {
		st, err := store.Open(&store.Config{Path: cfg.DBPath}, logger)
		if err != nil {
			return nil, fmt.Errorf("server: opening store: %w", err)
		}
		s.store = st
	}

	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Get("/healthz", s.handleHealth)
	r.Post("/clients/{client}/rounds/{round}/analyses", s.handleAnalyze)
	r.Get("/clients/{client}/analyses", s.handleListRuns)
	r.Get("/analyses/{id}", s.handleGetAnalysis)
	s.router = r

	return s, nil
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks serving HTTP on the configured address.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", logging.Field{Key: "addr", Value: s.cfg.Addr})
	return http.ListenAndServe(s.cfg.Addr, s.router)
}

// Close releases the store.
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			logging.Field{Key: "method", Value: r.Method},
			logging.Field{Key: "path", Value: r.URL.Path},
			logging.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "client")
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || round < 1 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "round must be a positive integer"})
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	body, err := base64.StdEncoding.DecodeString(req.DocumentB64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "document_b64 is not valid base64"})
		return
	}

	contentType := model.ContentType(req.ContentType)
	if req.ContentType == "pdf" {
		// Raw PDF: extract text at the front door; the engine only accepts
		// html and pdf-text.
		text, pages, err := pdftext.ExtractText(body)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Debug("pdf converted", logging.Field{Key: "pages", Value: pages})
		body = []byte(text)
		contentType = model.ContentTypePDFText
	}

	input := engine.Input{
		Document: model.RawDocument{
			Body:        body,
			ContentType: contentType,
			SourceHint:  req.SourceHint,
			ReceivedAt:  req.ReceivedAt,
		},
		Standing: req.Standing,
		Prior:    req.Prior,
	}

	result, cached, err := s.analyzeMemoized(input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrUnsupportedContentType) || errors.Is(err, model.ErrEmptyDocument) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	resp := AnalyzeResponse{Cached: cached, Result: result}
	if req.Save {
		if s.store == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "persistence disabled (no database configured)"})
			return
		}
		id, err := s.store.SaveResult(r.Context(), clientID, round, result)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		resp.ID = id
	}

	writeJSON(w, http.StatusOK, resp)
}

// analyzeMemoized deduplicates repeated submissions of the same document via
// the engine fingerprint. Prior context and standing are part of the key:
// they change the output.
func (s *Server) analyzeMemoized(input engine.Input) (*model.AnalysisResult, bool, error) {
	key := memoKey(input)
	if v, ok := s.memo.Get(key); ok {
		return v.(*model.AnalysisResult), true, nil
	}
	result, err := s.eng.Analyze(input)
	if err != nil {
		return nil, false, err
	}
	s.memo.SetDefault(key, result)
	return result, false, nil
}

func memoKey(input engine.Input) string {
	extra, _ := json.Marshal(struct {
		Standing engine.StandingEvidence  `json:"standing"`
		Prior    *model.PriorRoundContext `json:"prior"`
		AsOf     time.Time                `json:"as_of"`
	}{input.Standing, input.Prior, input.Document.ReceivedAt})
	return engine.Fingerprint(input.Document) + "|" + string(extra)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "persistence disabled (no database configured)"})
		return
	}
	runs, err := s.store.ListRuns(r.Context(), chi.URLParam(r, "client"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "persistence disabled (no database configured)"})
		return
	}
	sa, err := s.store.GetResult(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "analysis not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sa)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
