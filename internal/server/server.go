// Package server streams wire sweeps to browser clients over websockets.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/piwi3910/WireCut/internal/model"
)

// SweepPath is the websocket endpoint.
const SweepPath = "/ws/sweep"

// Server streams the sweep of each job a websocket client sends. Jobs
// outside its limits are rejected before any work is done.
type Server struct {
	addr       string
	upgrader   websocket.Upgrader
	frameDelay time.Duration
	limits     model.Limits
}

// NewServer returns a server listening on addr. frameDelay paces the
// frames of each sweep; zero sends them as fast as the socket allows.
func NewServer(addr string, upgrader websocket.Upgrader, frameDelay time.Duration) *Server {
	return &Server{
		addr:       addr,
		upgrader:   upgrader,
		frameDelay: frameDelay,
		limits:     model.DefaultLimits(),
	}
}

// DefaultUpgrader accepts any origin, matching a local cutting-station
// deployment.
func DefaultUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
}

// Handler routes the sweep endpoint and a health check.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(SweepPath, s.serveSweep)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// serveSweep handles websocket requests from the peer.
func (s *Server) serveSweep(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	sess := newSession(conn, s.frameDelay, s.limits, log.WithField("remote", r.RemoteAddr))
	sess.log.Info("sweep client connected")
	defer func() {
		sess.stop()
		conn.Close()
		sess.log.Info("sweep client disconnected")
	}()

	sess.readLoop(r.Context())
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.addr).Info("sweep server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
