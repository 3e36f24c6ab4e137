// Package server exposes the card layout engine over HTTP.
//
// Routes:
//
//	GET  /api/health
//	POST /api/cards/svg       card JSON in, image/svg+xml out
//	POST /api/cards/layout    card JSON in, region listing out
//	POST /api/sheets/layout   sheet parameters and a card count in, grid out
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with the error code and message.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/pipeline"
	"github.com/matzehuels/cardpress/pkg/render/card/art"
)

// RequestIDHeader carries the per-request id.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes limits request bodies. Cards are small; art is referenced,
// not uploaded.
const maxBodyBytes = 1 << 20

// Server routes HTTP requests to a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server around runner. The runner's art resolver is used as
// is; see ConfinedArt for serving art from a directory.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/cards/svg", s.handleCardSVG)
		r.Post("/cards/layout", s.handleCardLayout)
		r.Post("/sheets/layout", s.handleSheetLayout)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// artCacheSize bounds the data URIs the service keeps in memory.
const artCacheSize = 256

// ConfinedArt resolves art references as paths inside root. Absolute paths
// and references that leave root, directly or through a symlink, are
// rejected. An empty root rejects every reference, so cards render with the
// art placeholder. Resolved art is cached until the file changes.
func ConfinedArt(root string) art.Resolver {
	files := art.NewCached(art.Files{}, artCacheSize)
	return art.ResolverFunc(func(ref string) (string, error) {
		if root == "" {
			return "", errors.New(errors.ErrCodeArtNotFound, "art %q: no art directory configured", ref)
		}
		clean := filepath.Clean(filepath.FromSlash(ref))
		if filepath.IsAbs(clean) || escapes(clean) {
			return "", errors.New(errors.ErrCodeArtNotFound, "art %q is outside the art directory", ref)
		}
		base, err := filepath.EvalSymlinks(root)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeArtNotFound, err, "art directory %s", root)
		}
		real, err := filepath.EvalSymlinks(filepath.Join(base, clean))
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeArtNotFound, err, "art %q", ref)
		}
		rel, err := filepath.Rel(base, real)
		if err != nil || escapes(rel) {
			return "", errors.New(errors.ErrCodeArtNotFound, "art %q is outside the art directory", ref)
		}
		return files.Resolve(real)
	})
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const requestIDKey ctxKey = 0

// requestID assigns every request a fresh uuid.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", RequestID(r.Context()))
	})
}
