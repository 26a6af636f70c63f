package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health.
func (s *Server) Health(c *gin.Context) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Env: env})
}
