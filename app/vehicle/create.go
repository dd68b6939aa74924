package vehicle

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/internal/repository"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createBody struct {
	Title          string  `json:"title" binding:"required,max=100"`
	Description    *string `json:"description"`
	Year           int     `json:"year" binding:"required"`
	Color          string  `json:"color" binding:"required,max=50"`
	ImagePath      *string `json:"image_path"`
	CategoryID     *int    `json:"category_id"`
	FactoryID      *int    `json:"factory_id"`
	ChassisID      *int    `json:"chassis_id"`
	WheelFormulaID *int    `json:"wheel_formula_id"`
	EngineID       *int    `json:"engine_id"`
}

// priceParams parses the optional price and delivery_time query
// parameters. A price entry is made only when both are present, and a
// malformed value rejects the request before anything is written.
func priceParams(c *gin.Context, requestID string) (price int, deliveryTime time.Time, both, ok bool) {
	priceRaw := c.Query("price")
	timeRaw := c.Query("delivery_time")

	if priceRaw != "" {
		parsed, err := strconv.Atoi(priceRaw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid price",
				"requestID": requestID,
			})
			return 0, time.Time{}, false, false
		}
		price = parsed
	}

	if timeRaw != "" {
		parsed, err := time.Parse(time.RFC3339, timeRaw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid delivery_time",
				"requestID": requestID,
			})
			return 0, time.Time{}, false, false
		}
		deliveryTime = parsed
	}

	return price, deliveryTime, priceRaw != "" && timeRaw != "", true
}

// Create inserts a vehicle owned by the current user. When both the
// price and delivery_time query parameters are given, the first
// price-list entry is seeded in the same go.
func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(int)

	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	price, deliveryTime, both, ok := priceParams(c, requestID)
	if !ok {
		return
	}

	vehicle := model.Vehicle{
		Title:           data.Title,
		Description:     data.Description,
		Year:            data.Year,
		Color:           data.Color,
		ImagePath:       data.ImagePath,
		PublicationDate: time.Now(),
		CategoryID:      data.CategoryID,
		FactoryID:       data.FactoryID,
		ChassisID:       data.ChassisID,
		WheelFormulaID:  data.WheelFormulaID,
		EngineID:        data.EngineID,
		UserID:          userID,
	}

	if err := repository.New[model.Vehicle](d.DB).Create(c.Request.Context(), &vehicle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create vehicle", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if both {
		entry := model.PriceList{
			Price:        price,
			DeliveryTime: deliveryTime,
			VehicleID:    vehicle.VehicleID,
			UserID:       userID,
		}

		if err := repository.New[model.PriceList](d.DB).Create(c.Request.Context(), &entry); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to create initial price entry", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	c.JSON(http.StatusCreated, vehicle)
}
