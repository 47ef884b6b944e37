// Package httpapi exposes the pattern authentication collaborator API over
// JSON/HTTP.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address   string
	users     UserService
	scores    ScoreService
	logger    logging.Logger
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us UserService, ss ScoreService, secretKey string) *HTTPServer {
	if l == nil {
		l = logging.NopLogger{}
	}
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		scores:    ss,
		jwtSecret: []byte(secretKey),
	}
}

// Routes builds the router. All endpoints live under common.APIBasePath.
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route(common.APIBasePath, func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login-challenge", s.loginChallenge)
		r.Post("/verify", s.verify)
		r.Post("/forgot-pattern", s.forgotPattern)
		r.Post("/reset-pattern", s.resetPattern)

		r.Group(func(r chi.Router) {
			r.Use(s.bearerAuth)
			r.Post("/scores", s.submitScore)
			r.Get("/scores", s.listScores)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
