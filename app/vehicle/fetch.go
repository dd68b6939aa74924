// Package vehicle serves the vehicle listings
package vehicle

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/internal/repository"
	"avtopark/vehicle-api/pkg/util"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// List returns one page of vehicles, optionally narrowed to a category.
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	skip, limit := util.PageParams(c)

	q := d.DB.WithContext(c.Request.Context()).
		Order("vehicle_id").
		Offset(skip).
		Limit(limit)

	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid category_id",
				"requestID": requestID,
			})
			return
		}

		q = q.Where("category_id = ?", categoryID)
	}

	var vehicles []model.Vehicle
	if err := q.Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list vehicles", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func Fetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, ok := util.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid ID",
			"requestID": requestID,
		})
		return
	}

	vehicle, err := repository.New[model.Vehicle](d.DB).GetByID(c.Request.Context(), id)
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

	c.JSON(http.StatusOK, vehicle)
}
