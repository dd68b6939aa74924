package auth

import (
	"avtopark/vehicle-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// The login form accepts both the OAuth2-style form field names and a
// plain JSON body.
type loginBody struct {
	Email    string `form:"username" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Login verifies credentials and hands out an access/refresh token pair.
// Unknown email and wrong password are indistinguishable on purpose.
func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	user, err := d.Auth.Authenticate(c.Request.Context(), data.Email, data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to authenticate user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Incorrect email or password",
			"requestID": requestID,
		})
		return
	}

	pair, err := d.Auth.IssuePair(user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue tokens", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setTokenCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"access_token": pair.Access.Signed,
		"token_type":   "bearer",
	})
}
