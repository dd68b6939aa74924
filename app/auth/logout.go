package auth

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/pkg/security"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Logout revokes whichever tokens the request presented and clears both
// cookies. Tokens that no longer parse are simply skipped: an expired
// token needs no blacklist entry.
func Logout(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	secret := viper.GetString("jwt.secret")

	for _, name := range []string{"access_token", "refresh_token"} {
		tokenStr, err := c.Cookie(name)
		if err != nil || tokenStr == "" {
			continue
		}

		claims, err := security.ParseToken(secret, tokenStr)
		if err != nil {
			continue
		}

		if err := d.Auth.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to revoke token", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{"detail": "Successfully logged out"})
}
