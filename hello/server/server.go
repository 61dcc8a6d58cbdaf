// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultShutdownTimeout bounds how long Serve waits for in-flight requests.
const DefaultShutdownTimeout = 10 * time.Second

// Server is the HTTP server of the application
type Server struct {
	host            string
	port            int
	server          *http.Server
	listener        net.Listener
	shutdownTimeout time.Duration
}

// NewServer creates a new Server
//
// Unlike net/http server's ListenAndServe, we separate Listen()
// and Serve(), so that a caller knows the bound port before
// requests are served.
//
// When port is 0, OS will dynamically allocate the listening port.
func NewServer(host string, port int, handler http.Handler) *Server {
	return &Server{
		host:            host,
		port:            port,
		server:          &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second},
		shutdownTimeout: DefaultShutdownTimeout,
	}
}

// Listen on port
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.host, fmt.Sprint(s.port))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.listener = ln
	if s.port == 0 {
		s.port = ln.Addr().(*net.TCPAddr).Port
		log.WithField("port", s.port).Info("Listening port was dynamically allocated")
	}

	log.Debugf("Server listening on %s", addr)

	return nil
}

// IsListening reports whether Listen succeeded.
func (s *Server) IsListening() bool {
	return s.listener != nil
}

// Serve requests until the listener fails, Close is called or ctx is done.
// On cancelation the server is shut down gracefully and Serve returns nil.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// the shutdown goroutine must also return when the server stops on its own
		defer cancel()
		if err := s.server.Serve(s.listener); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("Graceful shutdown failed, closing connections")
			return s.server.Close()
		}
		log.Info("Server stopped")
		return nil
	})

	return g.Wait()
}

// Host is server's host
func (s *Server) Host() string {
	return s.host
}

// Port is server's port
func (s *Server) Port() int {
	return s.port
}

// URL is full server url for the given path
func (s *Server) URL(path string) string {
	return fmt.Sprintf("http://%s%s", net.JoinHostPort(s.Host(), fmt.Sprint(s.Port())), path)
}

// Close forcefully closes listeners & connections
func (s *Server) Close() error {
	err := s.server.Close()
	if err == nil {
		log.Info("Server closed")
	}
	return err
}
