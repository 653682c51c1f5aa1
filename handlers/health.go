package handlers

import (
	"net/http"
	"time"

	"bookingagent/utils"

	"github.com/gin-gonic/gin"
)

// RootHandler answers the liveness probe.
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Booking Agent API",
		"health":  utils.GetHealthStatus(),
	})
}

// ServerTimeHandler returns the server's current UTC time.
func ServerTimeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
