// Package server exposes the analysis core over HTTP: a health probe, the
// template catalog, and the profile analyze endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"draw-pipe/internal/config"
	"draw-pipe/internal/pipe"
	"draw-pipe/internal/process"
	"draw-pipe/internal/profile"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	shutdownTimeout = 5 * time.Second

	maxBodyBytes = 1 << 20
)

// Server serves the draw-pipe HTTP API.
type Server struct {
	cfg     config.Config
	catalog *profile.Catalog
	httpSrv *http.Server
}

// New builds a server around the template catalog.
func New(cfg config.Config, catalog *profile.Catalog) *Server {
	s := &Server{
		cfg:     cfg,
		catalog: catalog,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/templates", s.handleTemplates)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)

	s.httpSrv = &http.Server{
		Addr:         cfg.Listen,
		Handler:      s.corsMiddleware(logMiddleware(mux)),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", s.cfg.Listen)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	templates, err := s.catalog.Templates()
	if err != nil {
		log.Printf("template catalog: %v", err)
		writeError(w, http.StatusInternalServerError, "template catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, profile.TemplatesResponse{Templates: templates})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var payload profile.ProfilePayload
	if err := dec.Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("malformed profile: %v", err))
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid profile: %v", err))
		return
	}

	pipes, err := payload.ToPipes()
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid profile: %v", err))
		return
	}

	resp, err := Analyze(pipes)
	if err != nil {
		// Geometrically undefined metrics are a semantic rejection of
		// an otherwise well-formed payload.
		if errors.Is(err, process.ErrDegenerateMetric) || errors.Is(err, pipe.ErrUnsupportedPairing) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Printf("analyze: %v", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Analyze runs the full metric analysis over an ordered stage sequence and
// packages the series for the wire.
func Analyze(pipes []pipe.Pipe) (profile.AnalyzeResponse, error) {
	analysis := process.NewAnalysis(pipes)

	areas, err := analysis.AreaReductions()
	if err != nil {
		return profile.AnalyzeResponse{}, err
	}
	thickness, err := analysis.ThicknessReductions()
	if err != nil {
		return profile.AnalyzeResponse{}, err
	}

	return profile.AnalyzeResponse{
		AreaReductions:      areas,
		EccentricityDiffs:   analysis.EccentricityDiffs(),
		ThicknessReductions: thickness,
	}, nil
}

// corsMiddleware applies the configured origin allowlist and answers
// preflight requests.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(s.cfg.AllowedOrigins))
	for _, origin := range s.cfg.AllowedOrigins {
		allowed[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && allowed[origin] {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
