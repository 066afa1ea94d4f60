package agentflowmedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BaSui01/agentflow-media/config"
	"github.com/BaSui01/agentflow-media/host"
)

const statusShutdownTimeout = 10 * time.Second

// StatusReport is the payload of the status route.
type StatusReport struct {
	Service              string    `json:"service"`
	Version              string    `json:"version"`
	CredentialConfigured bool      `json:"credential_configured"`
	Timestamp            time.Time `json:"timestamp"`
}

// StatusService serves the plugin's status and metrics routes on its own
// listener. It implements host.Service with a non-blocking Start and a
// graceful Stop.
type StatusService struct {
	cfg      config.Config
	registry *prometheus.Registry
	server   *http.Server
	listener net.Listener
	logger   *zap.Logger
	mu       sync.Mutex
	closed   bool
}

var _ host.Service = (*StatusService)(nil)

// NewStatusService creates the status service.
func NewStatusService(cfg config.Config, registry *prometheus.Registry, logger *zap.Logger) *StatusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &StatusService{
		cfg:      cfg,
		registry: registry,
		logger:   logger.With(zap.String("component", "status_service")),
	}

	mux := http.NewServeMux()
	for _, r := range s.Routes() {
		mux.HandleFunc(r.Path, r.Handler)
	}
	s.server = &http.Server{
		Addr:         cfg.StatusAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Name returns the service name.
func (s *StatusService) Name() string { return "media-status" }

// Routes returns the HTTP routes the service exposes. The host may also
// mount them on its own router.
func (s *StatusService) Routes() []host.Route {
	return []host.Route{
		{Method: http.MethodGet, Path: "/status", Handler: s.handleStatus},
		{Method: http.MethodGet, Path: "/metrics", Handler: s.handleMetrics},
	}
}

// Start begins serving. Non-blocking; serve errors are logged.
func (s *StatusService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("status service is closed")
	}
	if s.listener != nil {
		return fmt.Errorf("status service already started")
	}

	listener, err := net.Listen("tcp", s.cfg.StatusAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.StatusAddr, err)
	}
	s.listener = listener
	s.logger.Info("status service listening", zap.String("addr", listener.Addr().String()))

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("status service failed", zap.Error(err))
		}
	}()
	return nil
}

// Stop gracefully shuts the service down.
func (s *StatusService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	shutdownCtx, cancel := context.WithTimeout(ctx, statusShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("status service shutdown failed", zap.Error(err))
		return err
	}
	s.listener = nil
	s.logger.Info("status service stopped")
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *StatusService) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.StatusAddr
}

func (s *StatusService) handleStatus(w http.ResponseWriter, r *http.Request) {
	report := StatusReport{
		Service:              PluginName,
		Version:              Version,
		CredentialConfigured: s.cfg.HasCredential(),
		Timestamp:            time.Now(),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.logger.Warn("failed to write status response", zap.Error(err))
	}
}

func (s *StatusService) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
