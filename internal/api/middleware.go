package api

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/finpulse/internal/identity"
)

const (
	identityKey     = "identity"
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// requestID tags every request with an ID, reusing the caller's when given.
func requestID() gin.HandlerFunc {
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

func accessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("request", fields...)
			return
		}
		log.Debug("request", fields...)
	}
}

// cors allows browser clients from the given origins. An empty list allows
// any origin.
func cors(origins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case len(origins) == 0:
			c.Header("Access-Control-Allow-Origin", "*")
		case slices.Contains(origins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// authenticate resolves the bearer token to an identity or rejects the
// request with 401.
func authenticate(v identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := identity.BearerToken(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
			return
		}

		id, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			if errors.Is(err, identity.ErrInvalidToken) || errors.Is(err, identity.ErrMissingToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Identity provider unavailable"})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

func subjectOf(c *gin.Context) string {
	id, _ := c.MustGet(identityKey).(identity.Identity)
	return id.Subject
}
