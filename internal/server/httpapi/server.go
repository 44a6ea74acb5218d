// Package httpapi exposes the diary service over HTTP/JSON. It owns the
// router, the token middleware, and the translation of service errors into
// the fixed response texts of the public API.
package httpapi

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/swivl/traveldiary/internal/logging"
	"github.com/swivl/traveldiary/internal/server/services"
)

type Server struct {
	address   string
	users     *services.UserService
	entries   *services.EntryService
	logger    logging.Logger
	jwtSecret []byte

	httpServer *http.Server
}

func NewServer(a string, l logging.Logger, us *services.UserService, es *services.EntryService, secretKey string) (*Server, error) {
	return &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		entries:   es,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Handler builds the full route table. Register and login are public; every
// other route sits behind the token middleware. The whole mux is wrapped in
// request-ID and request-logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users/register", s.registerUser)
	mux.HandleFunc("POST /users/login", s.loginUser)
	mux.Handle("PUT /users/{userId}", s.requireToken(http.HandlerFunc(s.updateUser)))
	mux.Handle("DELETE /users/{userId}", s.requireToken(http.HandlerFunc(s.deleteUser)))

	mux.Handle("POST /diary-entries", s.requireToken(http.HandlerFunc(s.createEntry)))
	mux.Handle("POST /diary-entries/{$}", s.requireToken(http.HandlerFunc(s.createEntry)))
	mux.Handle("GET /diary-entries/{entryId}", s.requireToken(http.HandlerFunc(s.getEntry)))
	mux.Handle("PUT /diary-entries/{entryId}", s.requireToken(http.HandlerFunc(s.updateEntry)))
	mux.Handle("DELETE /diary-entries/{entryId}", s.requireToken(http.HandlerFunc(s.deleteEntry)))

	var handler http.Handler = mux
	handler = s.loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.httpServer.Serve(listen); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
