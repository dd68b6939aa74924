// Package request serves customer inquiries and the composite order
// endpoints built on top of them.
package request

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
	SessionID     int64   `json:"session_id"`
	CompanyName   *string `json:"company_name" binding:"omitempty,max=100"`
	FullName      string  `json:"full_name" binding:"required,max=100"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         string  `json:"phone" binding:"required,max=100"`
	City          string  `json:"city" binding:"required,max=100"`
	Message       *string `json:"message"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=bank_card sbp cash"`
	DeliveryType  string  `json:"delivery_type" binding:"required,oneof=pickup delivery"`
	Status        string  `json:"status" binding:"omitempty,oneof=created processing received completed"`
	UserID        *int    `json:"user_id"`
}

func (b *createBody) model() *model.Request {
	status := b.Status
	if status == "" {
		status = model.StatusCreated
	}

	return &model.Request{
		SessionID:     b.SessionID,
		CompanyName:   b.CompanyName,
		FullName:      b.FullName,
		Email:         b.Email,
		Phone:         b.Phone,
		City:          b.City,
		RequestDate:   time.Now(),
		Message:       b.Message,
		PaymentMethod: b.PaymentMethod,
		DeliveryType:  b.DeliveryType,
		Status:        status,
		UserID:        b.UserID,
	}
}

type editBody struct {
	CompanyName   *string `json:"company_name" binding:"omitempty,max=100"`
	FullName      *string `json:"full_name" binding:"omitempty,max=100"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,max=100"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	Message       *string `json:"message"`
	PaymentMethod *string `json:"payment_method" binding:"omitempty,oneof=bank_card sbp cash"`
	DeliveryType  *string `json:"delivery_type" binding:"omitempty,oneof=pickup delivery"`
	// Any status may overwrite any other. There is no transition table.
	Status *string `json:"status" binding:"omitempty,oneof=created processing received completed"`
}

func (b *editBody) fields() map[string]any {
	m := map[string]any{}

	if b.CompanyName != nil {
		m["company_name"] = *b.CompanyName
	}
	if b.FullName != nil {
		m["full_name"] = *b.FullName
	}
	if b.Email != nil {
		m["email"] = *b.Email
	}
	if b.Phone != nil {
		m["phone"] = *b.Phone
	}
	if b.City != nil {
		m["city"] = *b.City
	}
	if b.Message != nil {
		m["message"] = *b.Message
	}
	if b.PaymentMethod != nil {
		m["payment_method"] = *b.PaymentMethod
	}
	if b.DeliveryType != nil {
		m["delivery_type"] = *b.DeliveryType
	}
	if b.Status != nil {
		m["status"] = *b.Status
	}

	return m
}

func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	skip, limit := util.PageParams(c)

	requests, err := repository.New[model.Request](d.DB).GetAll(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list requests", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, requests)
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

	req, err := repository.New[model.Request](d.DB).GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch request", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Request not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, req)
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

	req := data.model()
	if err := repository.New[model.Request](d.DB).Create(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create request", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, req)
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

	req, err := repository.New[model.Request](d.DB).Update(c.Request.Context(), id, data.fields())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update request", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Request not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, req)
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

	deleted, err := repository.New[model.Request](d.DB).Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete request", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Request not found",
			"requestID": requestID,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
