package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"puente-core/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	GatewaySecretHeader = "X-Gateway-Secret"
	ctxServiceKey       = "calling_service"
	// gatewayService names callers that authenticated with the raw shared secret.
	gatewayService = "api-gateway"
)

// ServiceAuthMiddleware admits only requests forwarded by the API gateway.
type ServiceAuthMiddleware struct {
	sharedSecret string
	tokens       *jwt.Service
}

func NewServiceAuthMiddleware(sharedSecret string, tokens *jwt.Service) *ServiceAuthMiddleware {
	return &ServiceAuthMiddleware{
		sharedSecret: sharedSecret,
		tokens:       tokens,
	}
}

func (m *ServiceAuthMiddleware) RequireGateway() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.sharedSecret == "" {
			slog.Error("gateway secret not configured, rejecting request", "path", c.Request.URL.Path)
			abortUnauthorized(c, "Service authentication not configured")
			return
		}

		if secret := c.GetHeader(GatewaySecretHeader); secret != "" {
			if subtle.ConstantTimeCompare([]byte(secret), []byte(m.sharedSecret)) != 1 {
				abortUnauthorized(c, "Invalid gateway secret")
				return
			}
			c.Set(ctxServiceKey, gatewayService)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "Gateway credentials required")
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			slog.Warn("service token validation failed", "error", err.Error())
			abortUnauthorized(c, "Invalid or expired service token")
			return
		}

		c.Set(ctxServiceKey, claims.Service)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": msg}})
}

func GetCallingService(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxServiceKey)
	if !exists {
		return "", false
	}
	svc, ok := v.(string)
	return svc, ok
}
