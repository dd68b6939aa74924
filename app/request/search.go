package request

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FetchByUser returns every request linked to one user.
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

// FetchMine returns the current user's requests.
func FetchMine(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(int)

	listByUser(c, d, requestID, userID)
}

func listByUser(c *gin.Context, d *internal.Deps, requestID string, userID int) {
	var requests []model.Request

	err := d.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("request_id").
		Find(&requests).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list user requests", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, requests)
}

// FetchByStatus returns every request currently carrying the given status.
func FetchByStatus(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var requests []model.Request

	err := d.DB.WithContext(c.Request.Context()).
		Where("status = ?", c.Param("status")).
		Order("request_id").
		Find(&requests).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list requests by status", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, requests)
}
