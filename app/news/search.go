package news

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FetchByUser returns every article authored by one user.
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

	var articles []model.News

	err := d.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("news_id").
		Find(&articles).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list user news", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, articles)
}
