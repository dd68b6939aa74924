package vehicle

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FetchByUser returns every vehicle listed by one user.
func FetchByUser(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	userID, ok := util.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid ID",
			"requestID": requestID,
		})
		return
	}

	listByUser(c, d, requestID, userID)
}

// FetchMine returns the current user's vehicles.
func FetchMine(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(int)

	listByUser(c, d, requestID, userID)
}

func listByUser(c *gin.Context, d *internal.Deps, requestID string, userID int) {
	var vehicles []model.Vehicle

	err := d.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("vehicle_id").
		Find(&vehicles).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list user vehicles", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, vehicles)
}
