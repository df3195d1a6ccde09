// File: handlers/health.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus whether the calendar link is up.
func (hb *HandlerBundle) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":             "healthy",
		"timestamp":          time.Now(),
		"calendar_connected": hb.Calendar.IsAuthenticated(c.Request.Context()),
	})
}

// RootHandler is a plain service banner with the endpoint map.
func (hb *HandlerBundle) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Scheduling assistant API is running",
		"endpoints": gin.H{
			"websocket":   "/ws/{clientID}",
			"auth_login":  "/auth/login",
			"auth_status": "/auth/status",
			"health":      "/health",
		},
	})
}
