package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/Divis007/data-mapping/internal/config"
	ws "github.com/Divis007/data-mapping/internal/websocket"
)

// HealthService provides health check functionality
type HealthService struct {
	version      string
	paths        config.PathsConfig
	webSocketHub *ws.Hub
	startTime    time.Time
	logger       *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version string, paths config.PathsConfig, webSocketHub *ws.Hub, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:      version,
		paths:        paths,
		webSocketHub: webSocketHub,
		startTime:    time.Now(),
		logger:       logger.With(slog.String("service", "health")),
	}
}

// Check returns the current health status
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"uptime_seconds": time.Since(s.startTime).Seconds(),
		},
		Services: map[string]interface{}{},
	}

	status.Services["directories"] = s.checkDirectories()
	if s.webSocketHub != nil {
		status.Services["websocket"] = map[string]interface{}{
			"status":  "up",
			"clients": s.webSocketHub.ClientCount(),
		}
	}

	for _, svc := range status.Services {
		if m, ok := svc.(map[string]interface{}); ok && m["status"] == "degraded" {
			status.Status = "degraded"
		}
	}
	return status
}

func (s *HealthService) checkDirectories() map[string]interface{} {
	result := map[string]interface{}{"status": "up"}
	for name, dir := range map[string]string{
		"input":    s.paths.InputDir,
		"output":   s.paths.OutputDir,
		"mappings": s.paths.MappingsDir,
		"reports":  s.paths.ReportsDir,
	} {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			result["status"] = "degraded"
			result[name] = err.Error()
		}
	}
	return result
}
