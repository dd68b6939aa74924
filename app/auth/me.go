package auth

import (
	"avtopark/vehicle-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me returns the account behind the presented token.
func Me(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	c.JSON(http.StatusOK, gin.H{
		"user_id":   user.UserID,
		"email":     user.Email,
		"name":      user.Name,
		"is_active": user.IsActive,
		"is_admin":  user.IsAdmin,
	})
}
