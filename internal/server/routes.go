package server

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/auth"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/config"
)

// RegisterRoutes builds the gin engine with all endpoints mounted.
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.GetEnvOrDefault("CORS_ORIGINS", "http://localhost:19006"), ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", s.healthHandler)

	r.POST("/api/auth/login", s.authHandler.Login)
	r.POST("/api/auth/logout", s.authHandler.Logout)

	s.feedHandler.RegisterRoutes(r, auth.Required(s.sessions))
	if s.uploadsHandler != nil {
		s.uploadsHandler.RegisterRoutes(r, auth.Required(s.sessions))
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	response := gin.H{
		"database": s.db.Health(),
	}

	if s.media != nil {
		mediaHealth := gin.H{"status": "up"}
		if err := s.media.Health(c.Request.Context()); err != nil {
			mediaHealth["status"] = "down"
			mediaHealth["error"] = err.Error()
		}
		response["media"] = mediaHealth
	}

	c.JSON(http.StatusOK, response)
}
