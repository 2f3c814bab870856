package httpserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/acquisitions/internal/common"
	"github.com/dmitrijs2005/acquisitions/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

func (s *HTTPServer) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			requestIDKey, c.GetString(requestIDKey),
		)
	}
}

func (s *HTTPServer) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.Error(c.Request.Context(), "panic recovered",
			"panic", recovered, requestIDKey, c.GetString(requestIDKey))
		c.AbortWithStatusJSON(http.StatusInternalServerError, internalErrorBody)
	})
}

// errorHandler answers requests whose handlers recorded an error without
// writing a response. The error is logged and never shown to the client.
func (s *HTTPServer) errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		s.logger.Error(c.Request.Context(), "unhandled error",
			"error", c.Errors.Last().Err,
			"path", c.Request.URL.Path,
			requestIDKey, c.GetString(requestIDKey),
		)
		c.JSON(http.StatusInternalServerError, internalErrorBody)
	}
}

// tokenFrom returns the session token, preferring the cookie over the
// Authorization header.
func (s *HTTPServer) tokenFrom(c *gin.Context) string {
	if token, ok := s.cookies.Get(c.Request, common.TokenCookieName); ok {
		return token
	}
	header := c.GetHeader(common.AuthorizationHeaderName)
	if strings.HasPrefix(header, common.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
	}
	return ""
}

func (s *HTTPServer) authenticateToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := s.tokenFrom(c)
		if token == "" {
			unauthorized(c, "Access token is required")
			return
		}

		id, err := s.tokens.Verify(token)
		if err != nil {
			s.fail(c, err)
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func (s *HTTPServer) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFromContext(c.Request.Context())
		if !ok {
			unauthorized(c, "Authentication required")
			return
		}
		if !id.IsAdmin() {
			forbidden(c, "Admin access required")
			return
		}
		c.Next()
	}
}

// requireOwnershipOrAdmin lets through admins and the account named by the
// :id path parameter. An unparsable id never matches an owner.
func (s *HTTPServer) requireOwnershipOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFromContext(c.Request.Context())
		if !ok {
			unauthorized(c, "Authentication required")
			return
		}
		if id.IsAdmin() {
			c.Next()
			return
		}
		target, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || !id.Owns(target) {
			forbidden(c, "You can only access your own resources")
			return
		}
		c.Next()
	}
}
