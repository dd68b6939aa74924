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

// UploadVehicle stores a vehicle image as vehicle_<id><ext>. Only the
// vehicle's owner or an admin may upload.
func UploadVehicle(c *gin.Context, d *internal.Deps) {
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
			"error":     "You don't have permission to upload this image",
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

	filename := fmt.Sprintf("vehicle_%d%s", id, ext)
	if err := c.SaveUploadedFile(file, filepath.Join(vehicleDir(), filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save image", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	imagePath := "/static/images/products/" + filename

	if _, err := repo.Update(c.Request.Context(), id, map[string]any{"image_path": imagePath}); err != nil {
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

// FetchVehicle serves the stored image, or the placeholder when the
// vehicle has none.
func FetchVehicle(c *gin.Context, d *internal.Deps) {
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

	if vehicle == nil || vehicle.ImagePath == nil {
		c.File(placeholder("vehicle"))
		return
	}

	path := filepath.Join(vehicleDir(), filepath.Base(*vehicle.ImagePath))
	if _, err := os.Stat(path); err != nil {
		c.File(placeholder("vehicle"))
		return
	}

	c.File(path)
}

// DeleteVehicle removes the stored image and clears the vehicle's
// image path. Only the owner or an admin may delete.
func DeleteVehicle(c *gin.Context, d *internal.Deps) {
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
			"error":     "You don't have permission to delete this image",
			"requestID": requestID,
		})
		return
	}

	if vehicle.ImagePath == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Image not found",
			"requestID": requestID,
		})
		return
	}

	path := filepath.Join(vehicleDir(), filepath.Base(*vehicle.ImagePath))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to remove image", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.WithContext(c.Request.Context()).
		Model(&model.Vehicle{}).
		Where("vehicle_id = ?", id).
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
