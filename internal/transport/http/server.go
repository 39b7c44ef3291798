package http

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-dapp-connector/internal/config"
	"github.com/fleshka4/amm-dapp-connector/internal/service"
)

// Server represents the HTTP transport layer.
type Server struct {
	svc    service.Service
	mux    *http.ServeMux
	logger *zap.Logger

	graceTimeout      time.Duration
	readHeaderTimeout time.Duration
	requestTimeout    time.Duration
}

// NewServer creates a new HTTP server with registered routes.
func NewServer(svc service.Service, cfg config.Config, logger *zap.Logger) *Server {
	s := &Server{
		svc:    svc,
		mux:    http.NewServeMux(),
		logger: logger,

		graceTimeout:      cfg.GraceTimeout,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
		requestTimeout:    cfg.RequestTimeout,
	}

	s.mux.HandleFunc("/estimate", s.handleEstimate)
	s.mux.HandleFunc("/state", s.handleState)
	s.mux.HandleFunc("/connect", s.handleConnect)
	s.mux.HandleFunc("/balance", s.handleBalance)
	s.mux.HandleFunc("/position", s.handlePosition)
	s.mux.HandleFunc("/tx", s.handleTx)
	s.mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("pong")); err != nil {
			s.logger.Warn("ping write error", zap.Error(err))
		}
	})

	return s
}

// ListenAndServe starts the HTTP server and enables graceful shutdown.
// It returns when SIGINT or SIGTERM is received, or when the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.logMiddleware(s.mux),
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Block until a signal is received.
	select {
	case <-stop:
	case err := <-errCh:
		return errors.Wrap(err, "srv.ListenAndServe")
	}
	s.logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.graceTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "srv.Shutdown")
	}
	s.logger.Info("server stopped gracefully")
	return nil
}

// logMiddleware logs each HTTP request and the time taken to process it.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.requestTimeout)
}
