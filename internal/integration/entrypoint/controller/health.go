// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	statusConnected    = "connected"
	statusDisconnected = "disconnected"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	redisHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil checker reports its dependency as disconnected.
func NewHealthController(dbHealthChecker, redisHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		redisHealthChecker: redisHealthChecker,
	}
}

// Check handles GET /health requests.
// The API stays usable without Redis, so only a database outage makes it unhealthy.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := probe(h.dbHealthChecker)
	cacheStatus := probe(h.redisHealthChecker)

	status, code := "ok", http.StatusOK
	switch {
	case dbStatus == statusDisconnected:
		status, code = "unavailable", http.StatusServiceUnavailable
	case cacheStatus == statusDisconnected:
		status = "degraded"
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Cache:     cacheStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func probe(checker func() bool) string {
	if checker != nil && checker() {
		return statusConnected
	}
	return statusDisconnected
}
