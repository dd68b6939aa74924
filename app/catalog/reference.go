// Package catalog serves the fixed-vocabulary reference entities. All
// five share the id + name shape, so one handler set covers them.
package catalog

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/internal/repository"
	"avtopark/vehicle-api/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type referenceCreate struct {
	Name string `json:"name" binding:"required,max=50"`
}

type referenceUpdate struct {
	Name *string `json:"name" binding:"omitempty,max=50"`
}

// Register mounts the CRUD quintet for one reference entity on g. The
// label names the entity in error messages, build turns a name into the
// concrete model, and listMW optionally caches the list endpoint.
func Register[T model.Keyed](g *gin.RouterGroup, d *internal.Deps, label string, build func(name string) *T, listMW ...gin.HandlerFunc) {
	repo := repository.New[T](d.DB)

	list := func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)
		skip, limit := util.PageParams(c)

		items, err := repo.GetAll(c.Request.Context(), skip, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to list "+label, zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusOK, items)
	}

	get := func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		id, ok := util.IDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid ID",
				"requestID": requestID,
			})
			return
		}

		item, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to fetch "+label, zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if item == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     label + " not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusOK, item)
	}

	create := func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		var data referenceCreate
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid request body",
				"requestID": requestID,
			})
			return
		}

		item := build(data.Name)
		if err := repo.Create(c.Request.Context(), item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to create "+label, zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusCreated, item)
	}

	update := func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		id, ok := util.IDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid ID",
				"requestID": requestID,
			})
			return
		}

		var data referenceUpdate
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid request body",
				"requestID": requestID,
			})
			return
		}

		fields := map[string]any{}
		if data.Name != nil {
			fields["name"] = *data.Name
		}

		item, err := repo.Update(c.Request.Context(), id, fields)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to update "+label, zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if item == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     label + " not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusOK, item)
	}

	del := func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		id, ok := util.IDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid ID",
				"requestID": requestID,
			})
			return
		}

		deleted, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to delete "+label, zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     label + " not found",
				"requestID": requestID,
			})
			return
		}

		c.Status(http.StatusNoContent)
	}

	g.GET("", append(append([]gin.HandlerFunc{}, listMW...), list)...)
	g.GET("/:id", get)
	g.POST("", create)
	g.PUT("/:id", update)
	g.DELETE("/:id", del)
}
