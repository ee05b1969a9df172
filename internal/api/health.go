// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

// Health check handlers for the composite report and orchestration probes.
package api

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/nexushost/api/internal/platform/constants"
	"github.com/nexushost/api/internal/platform/respond"
)

// # Dependency Probes

// HealthDependencies holds the injectable dependency checkers for the health endpoints.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func() error

	// CheckSessionStore pings the Redis client.
	CheckSessionStore func() error
}

type healthHandler struct {
	dependencies HealthDependencies
	environment  string
	startedAt    time.Time
	logger       *slog.Logger
}

// NewHealthHandler creates the handler backing /health, /health/live, and /health/ready.
func NewHealthHandler(deps HealthDependencies, environment string, logger *slog.Logger) *healthHandler {
	return &healthHandler{
		dependencies: deps,
		environment:  environment,
		startedAt:    time.Now(),
		logger:       logger,
	}
}

// # Report Shapes

type serviceHealth struct {
	Status       string `json:"status"`
	ResponseTime string `json:"responseTime,omitempty"`
	Error        string `json:"error,omitempty"`
}

type memoryStats struct {
	ProcessRSSMB  uint64  `json:"processRssMb"`
	SystemUsedMB  uint64  `json:"systemUsedMb"`
	SystemTotalMB uint64  `json:"systemTotalMb"`
	SystemPercent float64 `json:"systemPercent"`
}

type healthReport struct {
	Status      string                   `json:"status"`
	Timestamp   time.Time                `json:"timestamp"`
	Uptime      string                   `json:"uptime"`
	Environment string                   `json:"environment"`
	Version     string                   `json:"version"`
	Services    map[string]serviceHealth `json:"services"`
	System      struct {
		Memory memoryStats `json:"memory"`
	} `json:"system"`
}

/*
Report handles GET /health (composite health report).

Description: Probes every dependency, times the database round-trip, and
samples process and system memory. The report degrades (but stays 200) when
the database answers slowly; it turns unhealthy (503) when any probe fails.

Response:
  - 200: healthReport: status "healthy" or "degraded"
  - 503: healthReport: status "unhealthy"
*/
func (handler *healthHandler) Report(writer http.ResponseWriter, request *http.Request) {
	report := healthReport{
		Status:      "healthy",
		Timestamp:   time.Now(),
		Uptime:      time.Since(handler.startedAt).Round(time.Second).String(),
		Environment: handler.environment,
		Version:     constants.AppVersion,
		Services:    map[string]serviceHealth{},
	}

	// 1. Database probe with round-trip timing
	databaseHealth := serviceHealth{Status: "up"}
	started := time.Now()
	if err := handler.dependencies.CheckDatabase(); err != nil {
		databaseHealth.Status = "down"
		databaseHealth.Error = err.Error()
		report.Status = "unhealthy"
		handler.logger.Error("health_check_failed", slog.String("dependency", "postgres"), slog.Any("error", err))
	} else {
		elapsed := time.Since(started)
		databaseHealth.ResponseTime = elapsed.Round(time.Millisecond).String()
		if elapsed > constants.HealthDegradedThreshold {
			databaseHealth.Status = "degraded"
			if report.Status == "healthy" {
				report.Status = "degraded"
			}
		}
	}
	report.Services["database"] = databaseHealth

	// 2. Session store probe
	sessionHealth := serviceHealth{Status: "up"}
	if err := handler.dependencies.CheckSessionStore(); err != nil {
		sessionHealth.Status = "down"
		sessionHealth.Error = err.Error()
		report.Status = "unhealthy"
		handler.logger.Error("health_check_failed", slog.String("dependency", "redis"), slog.Any("error", err))
	}
	report.Services["session"] = sessionHealth

	// 3. Memory snapshot. Sampling failures leave zeroes rather than
	// failing the health check itself.
	report.System.Memory = sampleMemory()

	httpStatus := http.StatusOK
	if report.Status == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, respond.Envelope{
		Success: report.Status != "unhealthy",
		Message: "Health report",
		Data:    report,
	})
}

/*
Live handles GET /health/live (liveness probe).

Description: Answers 200 whenever the process can serve HTTP at all. No
dependencies are consulted, so a broken database never triggers a restart loop.
*/
func (handler *healthHandler) Live(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, "Alive", map[string]string{"status": "ok"})
}

/*
Ready handles GET /health/ready (readiness probe).

Description: Answers 200 only when the database accepts connections, so load
balancers stop routing traffic to an instance that cannot serve it.

Response:
  - 200: status ready
  - 503: status not ready
*/
func (handler *healthHandler) Ready(writer http.ResponseWriter, request *http.Request) {
	if err := handler.dependencies.CheckDatabase(); err != nil {
		handler.logger.Error("readiness_check_failed", slog.String("dependency", "postgres"), slog.Any("error", err))
		respond.JSON(writer, http.StatusServiceUnavailable, respond.Envelope{
			Success: false,
			Message: "Not ready",
		})
		return
	}

	respond.OK(writer, "Ready", map[string]string{"status": "ready"})
}

// sampleMemory collects process RSS and system memory via gopsutil.
func sampleMemory() memoryStats {
	const megabyte = 1024 * 1024
	stats := memoryStats{}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfo(); err == nil && info != nil {
			stats.ProcessRSSMB = info.RSS / megabyte
		}
	}

	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		stats.SystemUsedMB = vm.Used / megabyte
		stats.SystemTotalMB = vm.Total / megabyte
		stats.SystemPercent = vm.UsedPercent
	}

	return stats
}
