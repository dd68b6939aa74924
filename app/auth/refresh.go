package auth

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/pkg/security"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Refresh rotates the token pair. The presented refresh token's jti is
// blacklisted for its remaining lifetime, so it can't be replayed.
func Refresh(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	tokenStr, err := c.Cookie("refresh_token")
	if err != nil || tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Refresh token missing",
			"requestID": requestID,
		})
		return
	}

	claims, err := security.ParseToken(viper.GetString("jwt.secret"), tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Could not validate refresh token",
			"requestID": requestID,
		})
		return
	}

	revoked, err := d.Auth.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check token revocation", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if revoked {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Refresh token revoked",
			"requestID": requestID,
		})
		return
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Could not validate refresh token",
			"requestID": requestID,
		})
		return
	}

	pair, err := d.Auth.IssuePair(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue tokens", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.Auth.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to revoke old refresh token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setTokenCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"access_token": pair.Access.Signed,
		"token_type":   "bearer",
	})
}
