package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creatorloop/creatorloop-api/internal/domain/user"
	"github.com/creatorloop/creatorloop-api/pkg/apperror"
	"github.com/creatorloop/creatorloop-api/pkg/auth"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

const (
	GinContextKeyOwnerID  = "ownerID"
	GinContextKeyUsername = "username"
	GinContextKeyRole     = "role"
	GinContextKeyTier     = "tier"
)

func AuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(GinContextKeyOwnerID, claims.OwnerID)
		c.Set(GinContextKeyUsername, claims.Username)
		c.Set(GinContextKeyRole, user.Role(claims.Role))
		c.Set(GinContextKeyTier, user.Tier(claims.Tier))

		c.Next()
	}
}

// ErrorMiddleware turns errors attached via c.Error into JSON responses.
// *apperror.AppError maps to its HTTP status; anything else is a 500 with a
// generic body.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(apperror.ToHTTPStatus(appErr), appErr.ToJSON())
			return
		}

		log.Error("Unhandled error in request", err, zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}

func GetOwnerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	ownerID, ok := ctx.Value(GinContextKeyOwnerID).(uuid.UUID)
	return ownerID, ok
}

func GetOwnerIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	ownerID, ok := c.Get(GinContextKeyOwnerID)
	if !ok {
		return uuid.Nil, false
	}
	ownerIDUUID, ok := ownerID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return ownerIDUUID, true
}

func GetUsernameFromGinContext(c *gin.Context) string {
	username, _ := c.Get(GinContextKeyUsername)
	s, _ := username.(string)
	return s
}

func GetRoleFromGinContext(c *gin.Context) user.Role {
	role, ok := c.Get(GinContextKeyRole)
	if !ok {
		return user.RoleMember
	}
	r, ok := role.(user.Role)
	if !ok {
		return user.RoleMember
	}
	return r
}

func GetTierFromGinContext(c *gin.Context) user.Tier {
	tier, ok := c.Get(GinContextKeyTier)
	if !ok {
		return user.TierFree
	}
	t, ok := tier.(user.Tier)
	if !ok {
		return user.TierFree
	}
	return t
}
