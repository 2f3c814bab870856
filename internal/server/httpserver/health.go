package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) root(c *gin.Context) {
	c.String(http.StatusOK, "Hello from acquisitions")
}

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Seconds(),
	})
}

func (s *HTTPServer) apiStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Acquisitions API is Running"})
}

func (s *HTTPServer) routeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not Found", "message": "Route not found"})
}
