package handler

import (
	"net/http"

	"go-gin-rsvp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter 組裝所有路由；/api/v1 底下都需要 Bearer token
func NewRouter(rsvps service.RsvpService, checkIns service.CheckInService, jwtSecret []byte) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Metrics())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1", Auth(jwtSecret))
	NewRsvpHandler(rsvps).RegisterRoutes(api)
	NewEventHandler(rsvps).RegisterRoutes(api)
	NewCheckInHandler(checkIns).RegisterRoutes(api)

	return router
}
