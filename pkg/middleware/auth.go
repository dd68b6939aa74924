package middleware

import (
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/internal/service"
	"avtopark/vehicle-api/pkg/security"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// resolveUser pulls the token from the access_token cookie or, failing
// that, the Authorization header, validates it against the secret and
// the blacklist, and loads the user. Every failure is reported as a
// plain error so callers decide how loudly to fail.
func resolveUser(c *gin.Context, db *gorm.DB, auth *service.Auth) (*model.User, error) {
	tokenStr, err := c.Cookie("access_token")
	if err != nil || tokenStr == "" {
		header := c.GetHeader("Authorization")
		if after, ok := strings.CutPrefix(header, "Bearer "); ok {
			tokenStr = after
		}
	}

	if tokenStr == "" {
		return nil, errors.New("no token presented")
	}

	claims, err := security.ParseToken(viper.GetString("jwt.secret"), tokenStr)
	if err != nil {
		return nil, err
	}

	revoked, err := auth.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, errors.New("token revoked")
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, err
	}

	var user model.User
	err = db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// NewAuthMiddleware gates endpoints behind a valid, unrevoked token and
// an active account. The resolved user is stored in the context.
func NewAuthMiddleware(db *gorm.DB, auth *service.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		user, err := resolveUser(c, db, auth)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Could not validate credentials",
				"requestID": requestID,
			})

			zap.L().Debug("Rejected token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Inactive user",
				"requestID": requestID,
			})
			return
		}

		c.Set("user", user)
		c.Set("userID", user.UserID)
		c.Next()
	}
}

// NewOptionalAuthMiddleware resolves a user when a valid token is
// presented but lets anonymous requests through. Inactive accounts are
// treated as anonymous.
func NewOptionalAuthMiddleware(db *gorm.DB, auth *service.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, db, auth)
		if err == nil && user.IsActive {
			c.Set("user", user)
			c.Set("userID", user.UserID)
		}

		c.Next()
	}
}

// NewAdminMiddleware rejects authenticated non-admin users. It must run
// after NewAuthMiddleware.
func NewAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		user := c.MustGet("user").(*model.User)
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Not enough permissions",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}
