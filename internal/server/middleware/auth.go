package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/service/auth"
)

// Context keys set for downstream handlers.
const (
	FarmIDKey = "farm_id"
	EmailKey  = "email"
)

// PasskeyHeader carries the 4-digit confirmation secret on destructive
// requests.
const PasskeyHeader = "X-Confirm-Passkey"

// RequireAuth validates the bearer token and scopes the request to its farm.
func RequireAuth(svc *auth.Service, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be 'Bearer <token>'"})
			return
		}

		claims, err := svc.ParseToken(parts[1])
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(FarmIDKey, claims.FarmID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// RequirePasskey gates destructive routes behind the farm's confirmation
// passkey. It runs after RequireAuth and verifies the header secret against
// the stored hash; business logic below never sees the secret.
func RequirePasskey(svc *auth.Service, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		passkey := c.GetHeader(PasskeyHeader)
		if passkey == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "confirmation passkey required"})
			return
		}

		ok, err := svc.ConfirmPasskey(c.Request.Context(), FarmID(c), passkey)
		if err != nil {
			logger.Error("passkey check failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unable to verify passkey"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "wrong passkey"})
			return
		}

		c.Next()
	}
}

// FarmID returns the authenticated farm id for the request.
func FarmID(c *gin.Context) string {
	return c.GetString(FarmIDKey)
}
