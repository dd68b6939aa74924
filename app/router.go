// Package app contains all endpoints available
package app

import (
	"avtopark/vehicle-api/app/auth"
	"avtopark/vehicle-api/app/catalog"
	"avtopark/vehicle-api/app/goods"
	"avtopark/vehicle-api/app/image"
	"avtopark/vehicle-api/app/news"
	"avtopark/vehicle-api/app/pricelist"
	"avtopark/vehicle-api/app/request"
	"avtopark/vehicle-api/app/root"
	"avtopark/vehicle-api/app/user"
	"avtopark/vehicle-api/app/vehicle"
	"avtopark/vehicle-api/db"
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/internal/service"
	"avtopark/vehicle-api/pkg/middleware"
	"avtopark/vehicle-api/pkg/security"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = database
	d.Argon = security.NewHasher()
	d.Auth = service.NewAuth(database, d.Argon)

	makeLogger()

	imagesDir := viper.GetString("storage.images_dir")
	for _, sub := range []string{"products", "news", "placeholders"} {
		if err := os.MkdirAll(filepath.Join(imagesDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create image directory, %w", err)
		}
	}

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v, ok := c.Get("userID"); ok {
					fields = append(fields, zap.Int("userID", v.(int)))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	authed := middleware.NewAuthMiddleware(database, d.Auth)
	optional := middleware.NewOptionalAuthMiddleware(database, d.Auth)
	admin := middleware.NewAdminMiddleware()

	// HEAD /heartbeat		-> Used to check if the server is alive
	router.HEAD("/heartbeat", root.Heartbeat)

	a := router.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /auth/login		-> Issues a token pair as cookies + bearer
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// POST /auth/refresh		-> Rotates the token pair
		a.POST("/refresh", func(c *gin.Context) { auth.Refresh(c, d) })

		// POST /auth/logout		-> Revokes presented tokens, clears cookies
		a.POST("/logout", func(c *gin.Context) { auth.Logout(c, d) })

		// POST /auth/change-password	-> Changes the caller's password
		a.POST("/change-password", authed, func(c *gin.Context) { auth.ChangePassword(c, d) })

		// GET /auth/me			-> Returns the caller's profile
		a.GET("/me", authed, auth.Me)
	}

	// Reference vocabularies share one CRUD handler set.
	catalog.Register(router.Group("/categories"), d, "Category",
		func(name string) *model.Category { return &model.Category{Name: name} }, cacheFor(30))
	catalog.Register(router.Group("/chassis"), d, "Chassis",
		func(name string) *model.Chassis { return &model.Chassis{Name: name} }, cacheFor(30))
	catalog.Register(router.Group("/engines"), d, "Engine",
		func(name string) *model.Engine { return &model.Engine{Name: name} }, cacheFor(30))
	catalog.Register(router.Group("/factories"), d, "Factory",
		func(name string) *model.Factory { return &model.Factory{Name: name} }, cacheFor(30))
	catalog.Register(router.Group("/wheel-formulas"), d, "Wheel formula",
		func(name string) *model.WheelFormula { return &model.WheelFormula{Name: name} }, cacheFor(30))

	u := router.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// GET /users			-> Lists users
		u.GET("", func(c *gin.Context) { user.List(c, d) })

		// GET /users/:id		-> Returns one user
		u.GET("/:id", func(c *gin.Context) { user.Fetch(c, d) })

		// POST /users			-> Registers a new user
		u.POST("", func(c *gin.Context) { user.Create(c, d) })

		// PUT /users/:id		-> Updates a user
		u.PUT("/:id", func(c *gin.Context) { user.Edit(c, d) })

		// DELETE /users/:id		-> Deletes a user
		u.DELETE("/:id", func(c *gin.Context) { user.Delete(c, d) })
	}

	v := router.Group("/vehicles")
	{
		// GET /vehicles		-> Lists vehicles, optionally by category
		v.GET("", func(c *gin.Context) { vehicle.List(c, d) })

		// GET /vehicles/:id		-> Returns one vehicle
		v.GET("/:id", func(c *gin.Context) { vehicle.Fetch(c, d) })

		// GET /vehicles/user/:id	-> Vehicles listed by a user
		v.GET("/user/:id", func(c *gin.Context) { vehicle.FetchByUser(c, d) })

		// GET /vehicles/my		-> The caller's own vehicles
		v.GET("/my", authed, func(c *gin.Context) { vehicle.FetchMine(c, d) })

		// POST /vehicles		-> Creates a vehicle, optionally with a first price
		v.POST("", authed, func(c *gin.Context) { vehicle.Create(c, d) })

		// PUT /vehicles/:id		-> Updates a vehicle (owner or admin)
		v.PUT("/:id", authed, func(c *gin.Context) { vehicle.Edit(c, d) })

		// PUT /vehicles/:id/update-publication-date	-> Bumps the publication date
		v.PUT("/:id/update-publication-date", authed, admin, func(c *gin.Context) { vehicle.RefreshPublicationDate(c, d) })

		// DELETE /vehicles/:id		-> Deletes a vehicle (owner or admin)
		v.DELETE("/:id", authed, func(c *gin.Context) { vehicle.Delete(c, d) })
	}

	p := router.Group("/price-list")
	{
		// GET /price-list		-> Lists price entries
		p.GET("", func(c *gin.Context) { pricelist.List(c, d) })

		// GET /price-list/:id		-> Returns one price entry
		p.GET("/:id", func(c *gin.Context) { pricelist.Fetch(c, d) })

		// GET /price-list/vehicle/:id	-> All prices for a vehicle
		p.GET("/vehicle/:id", func(c *gin.Context) { pricelist.FetchByVehicle(c, d) })

		// GET /price-list/user/:id	-> All prices created by a user
		p.GET("/user/:id", func(c *gin.Context) { pricelist.FetchByUser(c, d) })

		// POST /price-list		-> Creates a price entry
		p.POST("", authed, func(c *gin.Context) { pricelist.Create(c, d) })

		// PUT /price-list/:id		-> Updates a price entry
		p.PUT("/:id", authed, func(c *gin.Context) { pricelist.Edit(c, d) })

		// DELETE /price-list/:id	-> Deletes a price entry
		p.DELETE("/:id", authed, func(c *gin.Context) { pricelist.Delete(c, d) })
	}

	r := router.Group("/requests")
	{
		// GET /requests		-> Lists requests
		r.GET("", func(c *gin.Context) { request.List(c, d) })

		// GET /requests/:id		-> Returns one request
		r.GET("/:id", func(c *gin.Context) { request.Fetch(c, d) })

		// GET /requests/user/:id	-> Requests placed by a user
		r.GET("/user/:id", func(c *gin.Context) { request.FetchByUser(c, d) })

		// GET /requests/status/:status	-> Requests in a given status
		r.GET("/status/:status", func(c *gin.Context) { request.FetchByStatus(c, d) })

		// GET /requests/my		-> The caller's own requests
		r.GET("/my", authed, func(c *gin.Context) { request.FetchMine(c, d) })

		// POST /requests		-> Creates a bare request
		r.POST("", func(c *gin.Context) { request.Create(c, d) })

		// POST /requests/create-order	-> Request + line items in one transaction
		r.POST("/create-order", optional, func(c *gin.Context) { request.CreateOrder(c, d) })

		// GET /requests/details/:id	-> Request joined with its items and prices
		r.GET("/details/:id", optional, func(c *gin.Context) { request.Details(c, d) })

		// PUT /requests/:id		-> Updates a request
		r.PUT("/:id", func(c *gin.Context) { request.Edit(c, d) })

		// DELETE /requests/:id		-> Deletes a request
		r.DELETE("/:id", func(c *gin.Context) { request.Delete(c, d) })
	}

	g := router.Group("/requisitioned-goods")
	{
		// GET /requisitioned-goods				-> Lists line items
		g.GET("", func(c *gin.Context) { goods.List(c, d) })

		// GET /requisitioned-goods/request/:id			-> Line items of one request
		g.GET("/request/:id", func(c *gin.Context) { goods.FetchByRequest(c, d) })

		// GET /requisitioned-goods/:requestID/:vehicleID	-> One line item
		g.GET("/:requestID/:vehicleID", func(c *gin.Context) { goods.Fetch(c, d) })

		// POST /requisitioned-goods				-> Adds a line item
		g.POST("", func(c *gin.Context) { goods.Create(c, d) })

		// PUT /requisitioned-goods/:requestID/:vehicleID	-> Updates a line item
		g.PUT("/:requestID/:vehicleID", func(c *gin.Context) { goods.Edit(c, d) })

		// DELETE /requisitioned-goods/:requestID/:vehicleID	-> Removes a line item
		g.DELETE("/:requestID/:vehicleID", func(c *gin.Context) { goods.Delete(c, d) })
	}

	n := router.Group("/news")
	{
		// GET /news			-> Lists articles
		n.GET("", cacheFor(30), func(c *gin.Context) { news.List(c, d) })

		// GET /news/:id		-> Returns one article
		n.GET("/:id", func(c *gin.Context) { news.Fetch(c, d) })

		// GET /news/user/:id		-> Articles authored by a user
		n.GET("/user/:id", func(c *gin.Context) { news.FetchByUser(c, d) })

		// POST /news			-> Publishes an article
		n.POST("", authed, admin, func(c *gin.Context) { news.Create(c, d) })

		// PUT /news/:id		-> Updates an article
		n.PUT("/:id", authed, admin, func(c *gin.Context) { news.Edit(c, d) })

		// DELETE /news/:id		-> Deletes an article
		n.DELETE("/:id", authed, admin, func(c *gin.Context) { news.Delete(c, d) })
	}

	i := router.Group("/images")
	{
		// GET /images/vehicles/:id	-> Serves a vehicle image or placeholder
		i.GET("/vehicles/:id", func(c *gin.Context) { image.FetchVehicle(c, d) })

		// POST /images/vehicles/:id	-> Uploads a vehicle image (owner or admin)
		i.POST("/vehicles/:id", authed, func(c *gin.Context) { image.UploadVehicle(c, d) })

		// DELETE /images/vehicles/:id	-> Deletes a vehicle image (owner or admin)
		i.DELETE("/vehicles/:id", authed, func(c *gin.Context) { image.DeleteVehicle(c, d) })

		// GET /images/news/:id		-> Serves an article image, URL or placeholder
		i.GET("/news/:id", func(c *gin.Context) { image.FetchNews(c, d) })

		// POST /images/news/:id	-> Uploads an article image
		i.POST("/news/:id", authed, admin, func(c *gin.Context) { image.UploadNews(c, d) })

		// DELETE /images/news/:id	-> Deletes an article image
		i.DELETE("/news/:id", authed, admin, func(c *gin.Context) { image.DeleteNews(c, d) })
	}

	// Expired blacklist rows pile up slowly, so an hourly sweep is plenty
	d.Auth.StartSweeper(time.Duration(viper.GetInt("auth.blacklist_sweep_hours")) * time.Hour)

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
