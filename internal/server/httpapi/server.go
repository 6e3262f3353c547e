// Package httpapi maps HTTP routes onto the application services and
// gates every mutating route behind token verification plus an admin
// role check. Read routes are public.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dsemenov/pressroom/internal/logging"
	"github.com/dsemenov/pressroom/internal/server/metrics"
	"github.com/dsemenov/pressroom/internal/server/services"
)

const requestBodyLimit = 1 << 20 // 1 MiB

type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	content   *services.ContentService
	media     *services.MediaService
	uploads   *services.UploadService
	metrics   *metrics.ServerMetrics
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, us *services.UserService, cs *services.ContentService,
	ms *services.MediaService, ups *services.UploadService, m *metrics.ServerMetrics, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		content:   cs,
		media:     ms,
		uploads:   ups,
		metrics:   m,
		jwtSecret: []byte(secretKey),
	}
}

// Router assembles the route table. Split out from Run so tests can mount
// it on httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(s.metrics.Middleware)
	r.Use(s.accessLog)
	r.Use(maxBody(requestBodyLimit))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.login)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/auth/me", s.me)
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/", s.listContent)
			r.Get("/{id}", s.getContent)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth, s.requireAdmin)
				r.Post("/", s.createContent)
				r.Put("/{id}", s.updateContent)
				r.Delete("/{id}", s.deleteContent)
			})
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/", s.listMedia)
			r.Get("/{id}", s.getMedia)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth, s.requireAdmin)
				r.Post("/", s.createMedia)
				r.Post("/upload-url", s.mediaUploadURL)
				r.Delete("/{id}", s.deleteMedia)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", s.metrics.Handler())

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
