package api

import (
	"context"  // Probe deadlines
	"net/http" // HTTP status codes
	"time"     // Probe timeout

	"github.com/gin-gonic/gin" // Gin web framework
)

// Pinger reports whether a backing service is reachable
type Pinger func(ctx context.Context) error

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// LivenessHandler handles GET /health and confirms the process is up
func LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadinessHandler handles GET /health/ready by pinging every dependency
func ReadinessHandler(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		statuses := make(map[string]dependencyStatus, len(deps))
		healthy := true
		for name, ping := range deps {
			if err := ping(ctx); err != nil {
				statuses[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
				healthy = false
				continue
			}
			statuses[name] = dependencyStatus{Status: "ok"}
		}

		status, code := "ok", http.StatusOK
		if !healthy {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, readinessResponse{Status: status, Dependencies: statuses})
	}
}
