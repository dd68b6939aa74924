package news

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

	if err := db.AutoMigrate(&model.User{}, &model.News{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	d := &internal.Deps{DB: db}

	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("requestID", "test") })
	router.GET("/news/user/:id", func(c *gin.Context) { FetchByUser(c, d) })

	return router, d
}

func TestFetchByUser(t *testing.T) {
	router, d := testRouter(t)

	author := model.User{Email: "editor@example.com", PasswordHash: "x", IsActive: true}
	if err := d.DB.Create(&author).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	other := model.User{Email: "other@example.com", PasswordHash: "x", IsActive: true}
	if err := d.DB.Create(&other).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	for i, userID := range []int{author.UserID, author.UserID, other.UserID} {
		article := model.News{Title: fmt.Sprintf("Article %d", i), UserID: userID}
		if err := d.DB.Create(&article).Error; err != nil {
			t.Fatalf("Failed to create article: %v", err)
		}
	}

	req := httptest.NewRequest("GET", fmt.Sprintf("/news/user/%d", author.UserID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("fetch by user status = %d; want 200, body %s", w.Code, w.Body.String())
	}

	var listed []model.News
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("articles = %d; want 2", len(listed))
	}
	for _, article := range listed {
		if article.UserID != author.UserID {
			t.Errorf("article %d belongs to user %d; want %d", article.NewsID, article.UserID, author.UserID)
		}
	}
}

func TestFetchByUserBadID(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest("GET", "/news/user/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("fetch by user status = %d; want 400", w.Code)
	}
}
