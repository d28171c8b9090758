package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type healthCheckBlock struct {
	Status         string `json:"status"`
	ResponseTimeMS int64  `json:"responseTime"`
	Error          string `json:"error,omitempty"`
}

type healthReport struct {
	Status    string                      `json:"status"`
	Timestamp string                      `json:"timestamp"`
	Checks    map[string]healthCheckBlock `json:"checks"`
}

func (r *Router) healthCheck(c *gin.Context) {
	started := time.Now()
	report := healthReport{
		Status:    "healthy",
		Timestamp: started.UTC().Format(time.RFC3339),
		Checks:    make(map[string]healthCheckBlock),
	}

	dbStart := time.Now()
	dbCheck := healthCheckBlock{Status: "up"}
	if err := r.database.Health(c.Request.Context()); err != nil {
		dbCheck.Status = "down"
		dbCheck.Error = "database unreachable"
		report.Status = "unhealthy"
	}
	dbCheck.ResponseTimeMS = time.Since(dbStart).Milliseconds()
	report.Checks["database"] = dbCheck

	report.Checks["api"] = healthCheckBlock{
		Status:         "up",
		ResponseTimeMS: time.Since(started).Milliseconds(),
	}

	if report.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, report)
		return
	}
	c.JSON(http.StatusOK, report)
}
