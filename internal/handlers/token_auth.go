package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	actorHeader  = "X-Teacher-Username"
	actorKey     = "actor"
	defaultActor = "api"
)

// TokenAuth guards teacher operations with the shared API secret. An empty
// secret rejects every request.
type TokenAuth struct {
	token    string
	security *services.ServiceLogger
}

func NewTokenAuth(token string, security *services.ServiceLogger) *TokenAuth {
	return &TokenAuth{token: token, security: security}
}

// Check compares presented against the secret and records a security event
// on mismatch.
func (a *TokenAuth) Check(ctx context.Context, presented, ip string) bool {
	if a.token != "" && subtle.ConstantTimeCompare([]byte(presented), []byte(a.token)) == 1 {
		return true
	}
	a.security.LogSecurityEvent(ctx, services.SecurityEvent{
		Type:        services.SecurityEventInvalidToken,
		Description: "request with invalid API token",
		IPAddress:   ip,
	})
	return false
}

// Require rejects requests without a valid bearer token and records the
// acting teacher for the handlers.
func (a *TokenAuth) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Check(requestContext(c), bearerToken(c), c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized: Invalid Token",
				Code:    "INVALID_TOKEN",
			})
			return
		}
		c.Set(actorKey, actorFrom(c.GetHeader(actorHeader)))
		c.Next()
	}
}

// Authorized reports whether the request carries the secret. A request
// without any token is not a security event.
func (a *TokenAuth) Authorized(c *gin.Context) bool {
	token := bearerToken(c)
	if token == "" {
		return false
	}
	return a.Check(requestContext(c), token, c.ClientIP())
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func actorFrom(username string) string {
	if username = strings.TrimSpace(username); username != "" {
		return username
	}
	return defaultActor
}

func currentActor(c *gin.Context) string {
	if actor := c.GetString(actorKey); actor != "" {
		return actor
	}
	return defaultActor
}
