package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRootRoute serves a minimal liveness endpoint at the root path.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ClinicFlow API")
	})
}
