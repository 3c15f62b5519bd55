package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":8080"

// Server serves the heroes API over HTTP.
type Server struct {
	server *http.Server
	logger *zap.Logger
	addr   string
}

// NewServer creates a server for handler on addr.
func NewServer(addr string, handler http.Handler, logger *zap.Logger) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
		addr:   addr,
	}
}

// Start begins listening (non-blocking). Errors binding the address are returned;
// the server then runs in a background goroutine.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.server.Addr, err)
	}
	s.addr = ln.Addr().String()
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("hero api server error", zap.Error(err))
		}
	}()
	s.logger.Info("hero api listening", zap.String("addr", s.addr))
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the bound address (resolved after Start).
func (s *Server) Addr() string {
	return s.addr
}
