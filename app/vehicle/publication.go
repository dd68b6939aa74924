package vehicle

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/internal/repository"
	"avtopark/vehicle-api/pkg/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RefreshPublicationDate bumps a vehicle's publication date to now,
// moving it back to the top of date-sorted listings.
func RefreshPublicationDate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, ok := util.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid ID",
			"requestID": requestID,
		})
		return
	}

	vehicle, err := repository.New[model.Vehicle](d.DB).Update(c.Request.Context(), id, map[string]any{
		"publication_date": time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to refresh publication date", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if vehicle == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Vehicle not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}
