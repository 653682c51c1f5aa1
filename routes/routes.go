package routes

import (
	"time"

	"bookingagent/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the thin HTTP boundary: liveness, server time and the
// conversation entry point.
func RegisterRoutes(r *gin.Engine, agentHandler *handlers.AgentHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", handlers.RootHandler)

	api := r.Group("/api")
	{
		api.GET("/now", handlers.ServerTimeHandler)
		api.POST("/agent/chat", agentHandler.HandleChat)
	}
}
