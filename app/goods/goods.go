// Package goods serves the request line items, the one entity addressed
// by a composite (request id, vehicle id) key.
package goods

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/internal/repository"
	"avtopark/vehicle-api/pkg/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createBody struct {
	RequestID int `json:"request_id" binding:"required"`
	VehicleID int `json:"vehicle_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

type editBody struct {
	Quantity *int `json:"quantity" binding:"omitempty,min=1"`
}

func compositeKey(c *gin.Context, requestID string) (int, int, bool) {
	reqID, ok := util.IDParam(c, "requestID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request ID",
			"requestID": requestID,
		})
		return 0, 0, false
	}

	vehID, ok := util.IDParam(c, "vehicleID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid vehicle ID",
			"requestID": requestID,
		})
		return 0, 0, false
	}

	return reqID, vehID, true
}

func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	skip, limit := util.PageParams(c)

	items, err := repository.NewOrderItems(d.DB).GetAll(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list line items", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, items)
}

// FetchByRequest returns every line item of one request.
func FetchByRequest(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	reqID, ok := util.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid ID",
			"requestID": requestID,
		})
		return
	}

	items, err := repository.NewOrderItems(d.DB).GetByRequest(c.Request.Context(), reqID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list request line items", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, items)
}

func Fetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	reqID, vehID, ok := compositeKey(c, requestID)
	if !ok {
		return
	}

	item, err := repository.NewOrderItems(d.DB).Get(c.Request.Context(), reqID, vehID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch line item", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Line item not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, item)
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

	item := model.OrderItem{
		RequestID: data.RequestID,
		VehicleID: data.VehicleID,
		Quantity:  data.Quantity,
	}

	err := repository.NewOrderItems(d.DB).Create(c.Request.Context(), &item)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "This vehicle is already part of the request",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create line item", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, item)
}

func Edit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	reqID, vehID, ok := compositeKey(c, requestID)
	if !ok {
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
	if data.Quantity != nil {
		fields["quantity"] = *data.Quantity
	}

	item, err := repository.NewOrderItems(d.DB).Update(c.Request.Context(), reqID, vehID, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update line item", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Line item not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	reqID, vehID, ok := compositeKey(c, requestID)
	if !ok {
		return
	}

	deleted, err := repository.NewOrderItems(d.DB).Delete(c.Request.Context(), reqID, vehID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete line item", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Line item not found",
			"requestID": requestID,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
