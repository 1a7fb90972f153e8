package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"centrex/internal/infrastructure/auth"
	"centrex/internal/shared/authorization"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/utils"
)

// Context keys set by the auth middleware.
const (
	ContextUserID         = "user_id"
	ContextRole           = "role"
	ContextMerchantNumber = "merchant_number"
)

// JWTAuth verifies the bearer token and exposes the operator identity
// (user id, role, merchant number) to downstream handlers.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("missing bearer token"))
			c.Abort()
			return
		}

		claims, err := jwtService.VerifyAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextMerchantNumber, claims.MerchantNumber)
		c.Next()
	}
}

// AdminOnly rejects requests from non-admin operators.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ContextRole)
		role, _ := v.(authorization.UserRole)
		if !ok || !role.IsAdmin() {
			utils.ErrorResponseWithError(c, apperrors.NewForbiddenError("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated operator's id from the gin context.
func UserID(c *gin.Context) uint {
	v, _ := c.Get(ContextUserID)
	userID, _ := v.(uint)
	return userID
}

// MerchantNumber returns the authenticated operator's tenant identifier.
func MerchantNumber(c *gin.Context) string {
	v, _ := c.Get(ContextMerchantNumber)
	merchantNumber, _ := v.(string)
	return merchantNumber
}
