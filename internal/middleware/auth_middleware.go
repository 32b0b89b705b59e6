package middleware

import (
	"errors"
	"slices"
	"strings"

	autherrors "hris-dashboard/internal/auth/errors"
	"hris-dashboard/internal/auth/token"
	"hris-dashboard/internal/shared/contextutil"
	"hris-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"

	AccessTokenCookie = "access_token"
)

// AuthMiddleware accepts a bearer token or the access_token cookie.
func AuthMiddleware(tokens token.Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			raw = ""
		}
		if raw == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				raw = cookie
			}
		}
		if raw == "" {
			response.FromError(c, autherrors.ErrTokenMissing)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, token.ErrExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			response.FromError(c, errObj)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)

		ctx := contextutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = contextutil.WithRole(ctx, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RoleMiddleware allows only the listed roles through.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(allowedRoles, c.GetString(ContextRole)) {
			response.FromError(c, autherrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
