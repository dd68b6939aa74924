package image

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg"></svg>`

func testRouter(t *testing.T, asUser *model.User) (*gin.Engine, *internal.Deps) {
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
		&model.News{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	dir := t.TempDir()
	viper.Set("storage.images_dir", dir)

	for _, sub := range []string{"products", "news", "placeholders"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatalf("Failed to create image dir: %v", err)
		}
	}
	for _, name := range []string{"vehicle.svg", "news.svg"} {
		if err := os.WriteFile(filepath.Join(dir, "placeholders", name), []byte(placeholderSVG), 0o644); err != nil {
			t.Fatalf("Failed to write placeholder: %v", err)
		}
	}

	d := &internal.Deps{DB: db}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("requestID", "test")
		if asUser != nil {
			c.Set("user", asUser)
			c.Set("userID", asUser.UserID)
		}
	})

	router.GET("/images/vehicles/:id", func(c *gin.Context) { FetchVehicle(c, d) })
	router.POST("/images/vehicles/:id", func(c *gin.Context) { UploadVehicle(c, d) })
	router.DELETE("/images/vehicles/:id", func(c *gin.Context) { DeleteVehicle(c, d) })
	router.GET("/images/news/:id", func(c *gin.Context) { FetchNews(c, d) })

	return router, d
}

func multipartFile(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to build multipart body: %v", err)
	}
	fw.Write([]byte("fake image bytes"))
	mw.Close()

	return body, mw.FormDataContentType()
}

func TestFetchVehicleFallsBackToPlaceholder(t *testing.T) {
	router, d := testRouter(t, nil)

	user := model.User{Email: "seller@example.com", PasswordHash: "x"}
	if err := d.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	vehicle := model.Vehicle{Title: "KamAZ 65115", Year: 2022, Color: "orange", UserID: user.UserID}
	if err := d.DB.Create(&vehicle).Error; err != nil {
		t.Fatalf("Failed to create vehicle: %v", err)
	}

	req := httptest.NewRequest("GET", fmt.Sprintf("/images/vehicles/%d", vehicle.VehicleID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("fetch status = %d; want 200", w.Code)
	}
	if w.Body.String() != placeholderSVG {
		t.Errorf("fetch body = %q; want the placeholder", w.Body.String())
	}
}

func TestFetchNewsFallsBackToPlaceholder(t *testing.T) {
	router, _ := testRouter(t, nil)

	req := httptest.NewRequest("GET", "/images/news/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("fetch status = %d; want 200", w.Code)
	}
	if w.Body.String() != placeholderSVG {
		t.Errorf("fetch body = %q; want the placeholder", w.Body.String())
	}
}

func TestUploadVehicleImage(t *testing.T) {
	owner := &model.User{UserID: 1, Email: "seller@example.com", IsActive: true}
	router, d := testRouter(t, owner)

	if err := d.DB.Create(&model.User{UserID: 1, Email: "seller@example.com", PasswordHash: "x"}).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	vehicle := model.Vehicle{Title: "GAZon Next", Year: 2023, Color: "white", UserID: 1}
	if err := d.DB.Create(&vehicle).Error; err != nil {
		t.Fatalf("Failed to create vehicle: %v", err)
	}

	body, contentType := multipartFile(t, "photo.jpg")
	req := httptest.NewRequest("POST", fmt.Sprintf("/images/vehicles/%d", vehicle.VehicleID), body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d; want 200, body %s", w.Code, w.Body.String())
	}

	var stored model.Vehicle
	if err := d.DB.First(&stored, vehicle.VehicleID).Error; err != nil {
		t.Fatalf("Failed to reload vehicle: %v", err)
	}
	want := fmt.Sprintf("/static/images/products/vehicle_%d.jpg", vehicle.VehicleID)
	if stored.ImagePath == nil || *stored.ImagePath != want {
		t.Fatalf("image_path = %v; want %q", stored.ImagePath, want)
	}

	onDisk := filepath.Join(viper.GetString("storage.images_dir"), "products", fmt.Sprintf("vehicle_%d.jpg", vehicle.VehicleID))
	if _, err := os.Stat(onDisk); err != nil {
		t.Errorf("uploaded file missing on disk: %v", err)
	}

	// The stored file is now served instead of the placeholder
	get := httptest.NewRequest("GET", fmt.Sprintf("/images/vehicles/%d", vehicle.VehicleID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, get)
	if rec.Body.String() != "fake image bytes" {
		t.Errorf("fetch body = %q; want the uploaded bytes", rec.Body.String())
	}
}

func TestUploadVehicleImageBadExtension(t *testing.T) {
	owner := &model.User{UserID: 1, Email: "seller@example.com", IsActive: true}
	router, d := testRouter(t, owner)

	if err := d.DB.Create(&model.User{UserID: 1, Email: "seller@example.com", PasswordHash: "x"}).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	vehicle := model.Vehicle{Title: "MAZ 5440", Year: 2021, Color: "blue", UserID: 1}
	if err := d.DB.Create(&vehicle).Error; err != nil {
		t.Fatalf("Failed to create vehicle: %v", err)
	}

	body, contentType := multipartFile(t, "malware.exe")
	req := httptest.NewRequest("POST", fmt.Sprintf("/images/vehicles/%d", vehicle.VehicleID), body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("upload status = %d; want 400 for a disallowed extension", w.Code)
	}
}

func TestUploadVehicleImageWrongOwner(t *testing.T) {
	stranger := &model.User{UserID: 2, Email: "other@example.com", IsActive: true}
	router, d := testRouter(t, stranger)

	if err := d.DB.Create(&model.User{UserID: 1, Email: "seller@example.com", PasswordHash: "x"}).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	vehicle := model.Vehicle{Title: "Ural Next", Year: 2020, Color: "green", UserID: 1}
	if err := d.DB.Create(&vehicle).Error; err != nil {
		t.Fatalf("Failed to create vehicle: %v", err)
	}

	body, contentType := multipartFile(t, "photo.png")
	req := httptest.NewRequest("POST", fmt.Sprintf("/images/vehicles/%d", vehicle.VehicleID), body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("upload status = %d; want 403 for a non-owner", w.Code)
	}
}

func TestDeleteVehicleImageMissing(t *testing.T) {
	owner := &model.User{UserID: 1, Email: "seller@example.com", IsActive: true}
	router, d := testRouter(t, owner)

	if err := d.DB.Create(&model.User{UserID: 1, Email: "seller@example.com", PasswordHash: "x"}).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	vehicle := model.Vehicle{Title: "GAZelle", Year: 2024, Color: "gray", UserID: 1}
	if err := d.DB.Create(&vehicle).Error; err != nil {
		t.Fatalf("Failed to create vehicle: %v", err)
	}

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/images/vehicles/%d", vehicle.VehicleID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete status = %d; want 404 when no image is stored", w.Code)
	}
}
