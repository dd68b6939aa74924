package request

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/internal/repository"
	"avtopark/vehicle-api/pkg/util"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderItemBody struct {
	VehicleID int `json:"vehicle_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`

	// The storefront cart sends its display name and price snapshot
	// along. Both are accepted but the stored values come from the
	// vehicle and price-list tables, never from the client.
	Name  string `json:"name"`
	Price int    `json:"price"`
}

type orderBody struct {
	createBody
	Items []orderItemBody `json:"items" binding:"required,min=1,dive"`
}

var errUnknownVehicle = errors.New("order references an unknown vehicle")

// CreateOrder persists a request together with its line items in one
// transaction. A line item pointing at a missing vehicle, or the same
// vehicle listed twice, rolls the whole order back.
func CreateOrder(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data orderBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	req := data.model()
	if userID, ok := c.Get("userID"); ok {
		id := userID.(int)
		req.UserID = &id
	}

	err := d.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}

		for _, item := range data.Items {
			var count int64

			err := tx.Model(&model.Vehicle{}).
				Where("vehicle_id = ?", item.VehicleID).
				Count(&count).
				Error
			if err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: %d", errUnknownVehicle, item.VehicleID)
			}

			err = tx.Create(&model.OrderItem{
				RequestID: req.RequestID,
				VehicleID: item.VehicleID,
				Quantity:  item.Quantity,
			}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errUnknownVehicle) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Order lists the same vehicle twice",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create order", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, req)
}

type orderItemDetail struct {
	model.OrderItem
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       int     `json:"price"`
}

type orderDetail struct {
	model.Request
	Items []orderItemDetail `json:"items"`
}

// Details joins a request with its line items, each carrying the
// vehicle's title/description and its latest price.
func Details(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, ok := util.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid ID",
			"requestID": requestID,
		})
		return
	}

	req, err := repository.New[model.Request](d.DB).GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch order", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Order not found",
			"requestID": requestID,
		})
		return
	}

	if u, ok := c.Get("user"); ok {
		user := u.(*model.User)
		owner := req.UserID != nil && *req.UserID == user.UserID

		if !owner && !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error":     "You don't have permission to view this order",
				"requestID": requestID,
			})
			return
		}
	}

	items, err := repository.NewOrderItems(d.DB).GetByRequest(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch order items", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	detail := orderDetail{Request: *req, Items: make([]orderItemDetail, 0, len(items))}

	for _, item := range items {
		entry := orderItemDetail{OrderItem: item}

		vehicle, err := repository.New[model.Vehicle](d.DB).GetByID(c.Request.Context(), item.VehicleID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to fetch order vehicle", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if vehicle != nil {
			entry.Title = &vehicle.Title
			entry.Description = vehicle.Description
		}

		var latest model.PriceList

		err = d.DB.WithContext(c.Request.Context()).
			Where("vehicle_id = ?", item.VehicleID).
			Order("price_id DESC").
			First(&latest).
			Error
		if err == nil {
			entry.Price = latest.Price
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to fetch latest price", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		detail.Items = append(detail.Items, entry)
	}

	c.JSON(http.StatusOK, detail)
}
