// Package web exposes the search service over a JSON HTTP API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"hackernews-report/internal/model"
	"hackernews-report/internal/report"
	"hackernews-report/internal/search"
	"hackernews-report/internal/storage"
)

// Server wires the HTTP routes to the search and report services.
type Server struct {
	search  *search.Service
	store   storage.Store
	reports *report.Service
	addr    string
	router  chi.Router
}

func NewServer(addr string, searchSvc *search.Service, store storage.Store, reports *report.Service) *Server {
	s := &Server{
		search:  searchSvc,
		store:   store,
		reports: reports,
		addr:    addr,
	}
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/tags", s.handleTags)
		r.Get("/tags/suggest", s.handleSuggestTags)
		r.Get("/posts", s.handlePosts)
		r.Get("/stats", s.handleStats)
		r.Get("/report", s.handleReport)
	})
	s.router = r
	return s
}

// Handler returns the root HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("web: listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("web: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch maps query parameters onto a search query. Invalid input
// returns 400 with the full list of validation errors.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []string{err.Error()}})
		return
	}
	result, err := s.search.SearchPosts(r.Context(), q)
	if err != nil {
		var invalid *search.InvalidQueryError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": invalid.Errors})
			return
		}
		slog.Error("web: search failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "search failed"})
		return
	}
	if parseBool(r.URL.Query().Get("highlight")) && q.HasText() {
		terms := strings.Fields(q.Text)
		for i := range result.Posts {
			result.Posts[i].Title = s.search.HighlightTerms(result.Posts[i].Title, terms)
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTags(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tags": s.search.AvailableTags()})
}

func (s *Server) handleSuggestTags(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []string{"query parameter q is required"}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": q, "suggestions": s.search.SuggestTags(q)})
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	category := model.Category(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category"))))
	posts, err := s.store.PostsByCategory(r.Context(), category, model.OrderDateDesc)
	if err != nil {
		slog.Error("web: list posts failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list posts failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts, "count": len(posts)})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.CategoryCounts(r.Context())
	if err != nil {
		slog.Error("web: stats failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stats failed"})
		return
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": total, "categories": counts})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []string{err.Error()}})
		return
	}
	posts, err := s.store.PostsByCategory(r.Context(), "", model.OrderScoreDesc)
	if err != nil {
		slog.Error("web: report posts failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "report failed"})
		return
	}
	out, err := s.reports.Generate(r.Context(), posts, format)
	if err != nil {
		slog.Error("web: report render failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "report failed"})
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

func contentType(f report.Format) string {
	switch f {
	case report.FormatHTML:
		return "text/html; charset=utf-8"
	case report.FormatJSON:
		return "application/json; charset=utf-8"
	case report.FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// queryFromRequest builds a SearchQuery from URL parameters. Parse failures
// on numbers and dates are reported here; semantic validation happens in the
// search service.
func queryFromRequest(r *http.Request) (model.SearchQuery, error) {
	q := model.NewSearchQuery()
	params := r.URL.Query()
	q.Text = strings.TrimSpace(params.Get("q"))
	q.Author = strings.TrimSpace(params.Get("author"))
	if raw := params.Get("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				q.Tags = append(q.Tags, t)
			}
		}
	}
	var err error
	if q.MinScore, err = intParam(params.Get("min_score"), "min_score"); err != nil {
		return q, err
	}
	if q.MaxScore, err = intParam(params.Get("max_score"), "max_score"); err != nil {
		return q, err
	}
	if q.StartDate, err = dateParam(params.Get("start_date"), "start_date"); err != nil {
		return q, err
	}
	if q.EndDate, err = dateParam(params.Get("end_date"), "end_date"); err != nil {
		return q, err
	}
	if raw := params.Get("order_by"); raw != "" {
		q.OrderBy = model.OrderBy(strings.ToLower(strings.TrimSpace(raw)))
	}
	if raw := params.Get("page"); raw != "" {
		if q.Page, err = strconv.Atoi(raw); err != nil {
			return q, errors.New("page must be an integer")
		}
	}
	if raw := params.Get("page_size"); raw != "" {
		if q.PageSize, err = strconv.Atoi(raw); err != nil {
			return q, errors.New("page_size must be an integer")
		}
	}
	return q, nil
}

func intParam(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(name + " must be an integer")
	}
	return &n, nil
}

func dateParam(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errors.New(name + " must be a date in YYYY-MM-DD form")
	}
	return &t, nil
}

func parseBool(raw string) bool {
	b, _ := strconv.ParseBool(raw)
	return b
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("web: encode response failed", "error", err)
	}
}
