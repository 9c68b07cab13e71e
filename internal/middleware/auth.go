package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"deipna/internal/pkg/response"
	"deipna/internal/pkg/token"
)

// ContextUserID is the gin context key carrying the authenticated account id.
const ContextUserID = "user_id"

// RevokedLookup answers whether a jti is on the denylist.
type RevokedLookup interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTAuth verifies the bearer access token and checks its jti against the
// denylist. The signature check alone is not enough: logout revokes live
// access tokens before their natural expiry.
func JWTAuth(tokens *token.Service, revoked RevokedLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, "Missing or invalid authorization header")
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccessToken(raw)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.JTI)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Internal server error")
			c.Abort()
			return
		}
		if isRevoked {
			response.Error(c, http.StatusUnauthorized, "Token has been revoked")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Next()
	}
}

// OptionalJWTAuth resolves the caller when a valid, non-revoked access
// token is presented and stays silent otherwise. Guest checkout relies on
// this: an absent or broken token means "guest", never a 401.
func OptionalJWTAuth(tokens *token.Service, revoked RevokedLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Next()
			return
		}

		claims, err := tokens.VerifyAccessToken(raw)
		if err != nil {
			c.Next()
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.JTI)
		if err != nil || isRevoked {
			c.Next()
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
