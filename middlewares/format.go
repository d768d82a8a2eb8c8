package middlewares

import (
	"log"

	"github.com/gin-gonic/gin"
)

// HttpError logs the underlying error and writes a JSON error body. The
// logged detail never reaches the client.
func HttpError(c *gin.Context, message string, status int, err error) {
	log.Printf("http %d %s %s: %v", status, c.Request.Method, c.Request.URL.Path, err)
	c.JSON(status, gin.H{"error": message})
}
