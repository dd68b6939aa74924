package pricelist

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRouter(t *testing.T) (*gin.Engine, *internal.Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Factory{},
		&model.Chassis{},
		&model.WheelFormula{},
		&model.Engine{},
		&model.Vehicle{},
		&model.PriceList{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	d := &internal.Deps{DB: db}

	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("requestID", "test") })
	router.GET("/price-list/vehicle/:id", func(c *gin.Context) { FetchByVehicle(c, d) })
	router.GET("/price-list/user/:id", func(c *gin.Context) { FetchByUser(c, d) })

	return router, d
}

func seedPrices(t *testing.T, db *gorm.DB) (*model.User, *model.Vehicle) {
	t.Helper()

	user := model.User{Email: "seller@example.com", PasswordHash: "x", IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	vehicle := model.Vehicle{Title: "KamAZ 54901", Year: 2024, Color: "red", UserID: user.UserID}
	if err := db.Create(&vehicle).Error; err != nil {
		t.Fatalf("Failed to create vehicle: %v", err)
	}

	for _, price := range []int{5_000_000, 5_200_000} {
		entry := model.PriceList{Price: price, VehicleID: vehicle.VehicleID, UserID: user.UserID}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("Failed to create price: %v", err)
		}
	}

	return &user, &vehicle
}

func fetch(t *testing.T, router *gin.Engine, path string) []model.PriceList {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d; want 200, body %s", path, w.Code, w.Body.String())
	}

	var listed []model.PriceList
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return listed
}

func TestFetchByVehicle(t *testing.T) {
	router, d := testRouter(t)
	_, vehicle := seedPrices(t, d.DB)

	listed := fetch(t, router, fmt.Sprintf("/price-list/vehicle/%d", vehicle.VehicleID))
	if len(listed) != 2 {
		t.Fatalf("prices = %d; want 2", len(listed))
	}

	listed = fetch(t, router, "/price-list/vehicle/9999")
	if len(listed) != 0 {
		t.Errorf("prices for unknown vehicle = %d; want 0", len(listed))
	}
}

func TestFetchByUser(t *testing.T) {
	router, d := testRouter(t)
	user, _ := seedPrices(t, d.DB)

	listed := fetch(t, router, fmt.Sprintf("/price-list/user/%d", user.UserID))
	if len(listed) != 2 {
		t.Fatalf("prices = %d; want 2", len(listed))
	}
	for _, entry := range listed {
		if entry.UserID != user.UserID {
			t.Errorf("price %d belongs to user %d; want %d", entry.PriceID, entry.UserID, user.UserID)
		}
	}
}
