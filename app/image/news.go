package image

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/internal/repository"
	"avtopark/vehicle-api/pkg/util"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadNews stores a news article image as news_<id><ext> and drops
// any external image URL the article carried.
func UploadNews(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, ok := util.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid ID",
			"requestID": requestID,
		})
		return
	}

	repo := repository.New[model.News](d.DB)

	article, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch news article", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "News article not found",
			"requestID": requestID,
		})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	ext, ok := extension(file.Filename)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Unsupported file format. Only .jpg, .jpeg, .png and .svg are allowed",
			"requestID": requestID,
		})
		return
	}

	filename := fmt.Sprintf("news_%d%s", id, ext)
	if err := c.SaveUploadedFile(file, filepath.Join(newsDir(), filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save image", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	imagePath := "/static/images/news/" + filename

	err = d.DB.WithContext(c.Request.Context()).
		Model(&model.News{}).
		Where("news_id = ?", id).
		Updates(map[string]any{"image_path": imagePath, "image_url": nil}).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store image path", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename":   filename,
		"image_path": imagePath,
	})
}

// FetchNews serves the article image, falling back to an external URL
// redirect or the placeholder.
func FetchNews(c *gin.Context, d *internal.Deps) {
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

		zap.L().Error("Failed to fetch news article", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if article == nil {
		c.File(placeholder("news"))
		return
	}

	if article.ImagePath != nil {
		path := filepath.Join(newsDir(), filepath.Base(*article.ImagePath))
		if _, err := os.Stat(path); err == nil {
			c.File(path)
			return
		}
	}

	if article.ImageURL != nil && *article.ImageURL != "" {
		c.Redirect(http.StatusTemporaryRedirect, *article.ImageURL)
		return
	}

	c.File(placeholder("news"))
}

// DeleteNews removes the stored image and clears the article's image
// path.
func DeleteNews(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, ok := util.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid ID",
			"requestID": requestID,
		})
		return
	}

	repo := repository.New[model.News](d.DB)

	article, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch news article", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "News article not found",
			"requestID": requestID,
		})
		return
	}

	if article.ImagePath == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Image not found",
			"requestID": requestID,
		})
		return
	}

	path := filepath.Join(newsDir(), filepath.Base(*article.ImagePath))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to remove image", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.WithContext(c.Request.Context()).
		Model(&model.News{}).
		Where("news_id = ?", id).
		Update("image_path", nil).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to clear image path", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Image deleted successfully"})
}
