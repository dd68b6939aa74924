// Package news serves the news articles
package news

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
	Title    string  `json:"title" binding:"required,max=100"`
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url" binding:"omitempty,max=255"`
}

type editBody struct {
	Title    *string `json:"title" binding:"omitempty,max=100"`
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url" binding:"omitempty,max=255"`
}

func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	skip, limit := util.PageParams(c)

	articles, err := repository.New[model.News](d.DB).GetAll(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list news", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, articles)
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

	article, err := repository.New[model.News](d.DB).GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch news", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "News not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, article)
}

// Create publishes an article authored by the current user.
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

	article := model.News{
		Title:           data.Title,
		PublicationDate: time.Now(),
		Content:         data.Content,
		ImageURL:        data.ImageURL,
		UserID:          userID,
	}

	if err := repository.New[model.News](d.DB).Create(c.Request.Context(), &article); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create news", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, article)
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
	if data.Title != nil {
		fields["title"] = *data.Title
	}
	if data.Content != nil {
		fields["content"] = *data.Content
	}
	if data.ImageURL != nil {
		fields["image_url"] = *data.ImageURL
	}

	article, err := repository.New[model.News](d.DB).Update(c.Request.Context(), id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update news", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "News not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, article)
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

	deleted, err := repository.New[model.News](d.DB).Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete news", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "News not found",
			"requestID": requestID,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
