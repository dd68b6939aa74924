package vehicle

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/internal/repository"
	"avtopark/vehicle-api/pkg/util"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type editBody struct {
	Title           *string    `json:"title" binding:"omitempty,max=100"`
	Description     *string    `json:"description"`
	Year            *int       `json:"year"`
	Color           *string    `json:"color" binding:"omitempty,max=50"`
	ImagePath       *string    `json:"image_path"`
	CategoryID      *int       `json:"category_id"`
	FactoryID       *int       `json:"factory_id"`
	ChassisID       *int       `json:"chassis_id"`
	WheelFormulaID  *int       `json:"wheel_formula_id"`
	EngineID        *int       `json:"engine_id"`
	PublicationDate *time.Time `json:"publication_date"`
}

func (b *editBody) fields() map[string]any {
	m := map[string]any{}

	if b.Title != nil {
		m["title"] = *b.Title
	}
	if b.Description != nil {
		m["description"] = *b.Description
	}
	if b.Year != nil {
		m["year"] = *b.Year
	}
	if b.Color != nil {
		m["color"] = *b.Color
	}
	if b.ImagePath != nil {
		m["image_path"] = *b.ImagePath
	}
	if b.CategoryID != nil {
		m["category_id"] = *b.CategoryID
	}
	if b.FactoryID != nil {
		m["factory_id"] = *b.FactoryID
	}
	if b.ChassisID != nil {
		m["chassis_id"] = *b.ChassisID
	}
	if b.WheelFormulaID != nil {
		m["wheel_formula_id"] = *b.WheelFormulaID
	}
	if b.EngineID != nil {
		m["engine_id"] = *b.EngineID
	}
	if b.PublicationDate != nil {
		m["publication_date"] = *b.PublicationDate
	}

	return m
}

// Edit updates a vehicle owned by the current user. Admins may edit any
// vehicle. Omitted fields are left unchanged.
func Edit(c *gin.Context, d *internal.Deps) {
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

	var data editBody
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
			"error":     "You don't have permission to edit this vehicle",
			"requestID": requestID,
		})
		return
	}

	updated, err := repo.Update(c.Request.Context(), id, data.fields())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update vehicle", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if both {
		if err := upsertPrice(c, d, id, user.UserID, price, deliveryTime); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to upsert price entry", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	c.JSON(http.StatusOK, updated)
}

// upsertPrice rewrites the vehicle's existing price entry, or creates
// the first one when the vehicle has no price history yet.
func upsertPrice(c *gin.Context, d *internal.Deps, vehicleID, userID, price int, deliveryTime time.Time) error {
	var existing model.PriceList

	err := d.DB.WithContext(c.Request.Context()).
		Where("vehicle_id = ?", vehicleID).
		Order("price_id").
		First(&existing).
		Error
	if err == nil {
		_, err = repository.New[model.PriceList](d.DB).Update(c.Request.Context(), existing.PriceID, map[string]any{
			"price":         price,
			"delivery_time": deliveryTime,
		})
		return err
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	entry := model.PriceList{
		Price:        price,
		DeliveryTime: deliveryTime,
		VehicleID:    vehicleID,
		UserID:       userID,
	}

	return repository.New[model.PriceList](d.DB).Create(c.Request.Context(), &entry)
}
