package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/acquisitions/internal/common"
	"github.com/dmitrijs2005/acquisitions/internal/server/validation"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	status int
	body   gin.H
}

// kindResponses maps classified errors to their fixed responses. KindUnknown
// goes to the catch-all error handler.
var kindResponses = map[common.Kind]errorResponse{
	common.KindConflict:           {http.StatusConflict, gin.H{"error": "User with this email already exists"}},
	common.KindNotFound:           {http.StatusNotFound, gin.H{"error": "Not Found", "message": "User not found"}},
	common.KindInvalidCredentials: {http.StatusUnauthorized, gin.H{"error": "Invalid credentials"}},
	common.KindInvalidToken:       {http.StatusForbidden, gin.H{"error": "Forbidden", "message": "Invalid or expired token"}},
}

var internalErrorBody = gin.H{"error": "Internal Server Error", "message": "Something went wrong"}

// fail writes the response for a classified err, or hands err to the
// catch-all handler.
func (s *HTTPServer) fail(c *gin.Context, err error) {
	if resp, ok := kindResponses[common.KindOf(err)]; ok {
		s.logger.Warn(c.Request.Context(), "request failed",
			"error", err, "status", resp.status, requestIDKey, c.GetString(requestIDKey))
		c.AbortWithStatusJSON(resp.status, resp.body)
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func validationFailed(c *gin.Context, details []validation.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "Validation failed",
		"details": details,
	})
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": message})
}

func forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden", "message": message})
}

// bindJSON decodes the request body into dst. An empty body decodes as {} so
// that missing fields are reported field by field.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		validationFailed(c, validation.BodyErrors())
		return false
	}
	return true
}
