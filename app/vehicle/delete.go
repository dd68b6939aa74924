package vehicle

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/internal/repository"
	"avtopark/vehicle-api/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Delete removes a vehicle owned by the current user. Admins may remove
// any vehicle.
func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	id, ok := util.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid ID",
			"requestID": requestID,
		})
		return
	}

	repo := repository.New[model.Vehicle](d.DB)

	vehicle, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch vehicle", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if vehicle == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Vehicle not found",
			"requestID": requestID,
		})
		return
	}

	if vehicle.UserID != user.UserID && !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "You don't have permission to delete this vehicle",
			"requestID": requestID,
		})
		return
	}

	if _, err := repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete vehicle", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusNoContent)
}
