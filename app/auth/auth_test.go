package auth

import (
	"avtopark/vehicle-api/internal"
	"avtopark/vehicle-api/internal/model"
	"avtopark/vehicle-api/internal/service"
	"avtopark/vehicle-api/pkg/middleware"
	"avtopark/vehicle-api/pkg/security"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
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

	if err := db.AutoMigrate(&model.User{}, &model.BlacklistedToken{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	viper.Set("jwt.secret", "test-secret")
	viper.Set("jwt.access_ttl_min", 30)
	viper.Set("jwt.refresh_ttl_days", 7)
	viper.Set("host.ssl.enabled", false)

	d := &internal.Deps{
		DB:    db,
		Argon: security.NewHasher(),
	}
	d.Auth = service.NewAuth(db, d.Argon)

	hash, err := d.Argon.GenerateFromPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &model.User{Email: "user@example.com", PasswordHash: hash, IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	router := gin.New()
	router.Use(middleware.NewRequestIDMiddleware())

	authed := middleware.NewAuthMiddleware(db, d.Auth)

	router.POST("/auth/login", func(c *gin.Context) { Login(c, d) })
	router.POST("/auth/logout", func(c *gin.Context) { Logout(c, d) })
	router.GET("/auth/me", authed, Me)

	return router, d
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(t, router, "POST", "/auth/login",
		`{"email":"user@example.com","password":"wrong"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("login status = %d; want 401", w.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(t, router, "POST", "/auth/login",
		`{"email":"ghost@example.com","password":"hunter2hunter2"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("login status = %d; want 401", w.Code)
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	router, _ := testRouter(t)

	// Login sets both cookies and returns a bearer token
	w := doJSON(t, router, "POST", "/auth/login",
		`{"email":"user@example.com","password":"hunter2hunter2"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d; want 200, body %s", w.Code, w.Body.String())
	}

	var loginResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}
	if loginResp.TokenType != "bearer" {
		t.Errorf("token_type = %q; want %q", loginResp.TokenType, "bearer")
	}
	if loginResp.AccessToken == "" {
		t.Fatal("login returned no access token")
	}

	cookies := w.Result().Cookies()
	var haveAccess, haveRefresh bool
	for _, ck := range cookies {
		switch ck.Name {
		case "access_token":
			haveAccess = true
		case "refresh_token":
			haveRefresh = true
		}
	}
	if !haveAccess || !haveRefresh {
		t.Fatalf("login cookies = %v; want access_token and refresh_token", cookies)
	}

	// The cookie authenticates /auth/me
	w = doJSON(t, router, "GET", "/auth/me", "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d; want 200, body %s", w.Code, w.Body.String())
	}

	var me struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("Failed to decode me response: %v", err)
	}
	if me.Email != "user@example.com" {
		t.Errorf("me email = %q; want %q", me.Email, "user@example.com")
	}

	// Logout revokes the presented tokens
	w = doJSON(t, router, "POST", "/auth/logout", "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d; want 200, body %s", w.Code, w.Body.String())
	}

	// The revoked cookie no longer authenticates
	w = doJSON(t, router, "GET", "/auth/me", "", cookies)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout status = %d; want 401", w.Code)
	}
}

func TestBearerHeaderAuth(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(t, router, "POST", "/auth/login",
		`{"email":"user@example.com","password":"hunter2hunter2"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d; want 200", w.Code)
	}

	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.AccessToken)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("me via bearer header status = %d; want 200, body %s", rec.Code, rec.Body.String())
	}
}

func TestMeWithoutToken(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(t, router, "GET", "/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("me status = %d; want 401", w.Code)
	}
}

func TestInactiveUser(t *testing.T) {
	router, d := testRouter(t)

	if err := d.DB.Model(&model.User{}).Where("email = ?", "user@example.com").Update("is_active", false).Error; err != nil {
		t.Fatalf("Failed to deactivate user: %v", err)
	}

	w := doJSON(t, router, "POST", "/auth/login",
		`{"email":"user@example.com","password":"hunter2hunter2"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d; want 200", w.Code)
	}

	w = doJSON(t, router, "GET", "/auth/me", "", w.Result().Cookies())
	if w.Code != http.StatusForbidden {
		t.Errorf("me status = %d; want 403 for an inactive user", w.Code)
	}
}
