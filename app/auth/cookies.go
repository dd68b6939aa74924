// Package auth serves login, token refresh and session endpoints
package auth

import (
	"avtopark/vehicle-api/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// setTokenCookies stores both tokens as httponly, same-site-lax cookies
// scoped to the token lifetimes.
func setTokenCookies(c *gin.Context, pair *service.TokenPair) {
	secure := viper.GetBool("host.ssl.enabled")

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", pair.Access.Signed, int(time.Until(pair.Access.ExpiresAt).Seconds()), "/", "", secure, true)
	c.SetCookie("refresh_token", pair.Refresh.Signed, int(time.Until(pair.Refresh.ExpiresAt).Seconds()), "/", "", secure, true)
}

func clearTokenCookies(c *gin.Context) {
	secure := viper.GetBool("host.ssl.enabled")

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}
