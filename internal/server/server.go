// Package server exposes the equity simulator over WebSocket: one
// JSON request per message, one result (or error) message back.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Server is the WebSocket equity service.
type Server struct {
	config   *Config
	upgrader websocket.Upgrader
	logger   *log.Logger
	httpSrv  *http.Server
}

// New creates a server from a validated config.
func New(config *Config, logger *log.Logger) *Server {
	s := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The service carries no credentials or state; any origin may query it.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	s.httpSrv = &http.Server{Addr: config.Addr(), Handler: mux}

	return s
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting equity service", "addr", s.config.Addr())
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("client connected", "remote", conn.RemoteAddr())
	NewConnection(conn, s.config, s.logger).Run()
	s.logger.Info("client disconnected", "remote", conn.RemoteAddr())
}

// seedFor picks the RNG seed for one request: the client's seed when
// provided (reproducible runs), otherwise the wall clock.
func seedFor(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}
