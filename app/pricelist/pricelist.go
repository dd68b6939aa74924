// Package pricelist serves the per-vehicle price history
package pricelist

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

type createBody struct {
	Price        int       `json:"price" binding:"min=0"`
	DeliveryTime time.Time `json:"delivery_time" binding:"required"`
	VehicleID    int       `json:"vehicle_id" binding:"required"`
	UserID       int       `json:"user_id" binding:"required"`
}

type editBody struct {
	Price        *int       `json:"price" binding:"omitempty,min=0"`
	DeliveryTime *time.Time `json:"delivery_time"`
}

func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	skip, limit := util.PageParams(c)

	prices, err := repository.New[model.PriceList](d.DB).GetAll(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list prices", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, prices)
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

	price, err := repository.New[model.PriceList](d.DB).GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch price", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if price == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Price not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, price)
}

func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	entry := model.PriceList{
		Price:        data.Price,
		DeliveryTime: data.DeliveryTime,
		VehicleID:    data.VehicleID,
		UserID:       data.UserID,
	}

	if err := repository.New[model.PriceList](d.DB).Create(c.Request.Context(), &entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create price", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func Edit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, ok := util.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid ID",
			"requestID": requestID,
		})
		return
	}

	var data editBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	fields := map[string]any{}
	if data.Price != nil {
		fields["price"] = *data.Price
	}
	if data.DeliveryTime != nil {
		fields["delivery_time"] = *data.DeliveryTime
	}

	price, err := repository.New[model.PriceList](d.DB).Update(c.Request.Context(), id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update price", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if price == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Price not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, price)
}

func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, ok := util.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid ID",
			"requestID": requestID,
		})
		return
	}

	deleted, err := repository.New[model.PriceList](d.DB).Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete price", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Price not found",
			"requestID": requestID,
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// FetchByVehicle returns the full price history of one vehicle.
func FetchByVehicle(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	vehicleID, ok := util.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid ID",
			"requestID": requestID,
		})
		return
	}

	var prices []model.PriceList

	err := d.DB.WithContext(c.Request.Context()).
		Where("vehicle_id = ?", vehicleID).
		Order("price_id").
		Find(&prices).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list vehicle prices", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, prices)
}

// FetchByUser returns every price entry created by one user.
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

	var prices []model.PriceList

	err := d.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("price_id").
		Find(&prices).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list user prices", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, prices)
}
