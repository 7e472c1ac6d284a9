package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jmcallo24/eventms/internal/middleware"
	"github.com/jmcallo24/eventms/internal/models"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	err = db.AutoMigrate(&models.Role{}, &models.User{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	for _, name := range []string{"admin", "organizer", "participant"} {
		if err := db.Create(&models.Role{Name: name}).Error; err != nil {
			t.Fatalf("Failed to seed role %s: %v", name, err)
		}
	}

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	r.POST("/v1/register", Register)
	r.POST("/v1/login", Login)
	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := setupTestRouter(t)

	register := map[string]string{
		"name":      "Ana Santos",
		"email":     "ana@example.edu",
		"password":  "secret123",
		"role_name": "participant",
	}

	t.Run("register", func(t *testing.T) {
		w := postJSON(t, r, "/v1/register", register)
		if w.Code != http.StatusCreated {
			t.Fatalf("Register status = %d, want 201: %s", w.Code, w.Body.String())
		}
	})

	t.Run("duplicate register conflicts", func(t *testing.T) {
		w := postJSON(t, r, "/v1/register", register)
		if w.Code != http.StatusConflict {
			t.Fatalf("Duplicate register status = %d, want 409", w.Code)
		}
	})

	t.Run("admin self-registration is rejected", func(t *testing.T) {
		w := postJSON(t, r, "/v1/register", map[string]string{
			"name":      "Eve",
			"email":     "eve@example.edu",
			"password":  "secret123",
			"role_name": "admin",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Admin register status = %d, want 400", w.Code)
		}
	})

	t.Run("login", func(t *testing.T) {
		w := postJSON(t, r, "/v1/login", map[string]string{
			"email":    "ana@example.edu",
			"password": "secret123",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Login status = %d, want 200: %s", w.Code, w.Body.String())
		}
		var response struct {
			Token string `json:"token"`
			User  struct {
				Role string `json:"role"`
			} `json:"user"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to parse login response: %v", err)
		}
		if response.Token == "" {
			t.Error("Login response has empty token")
		}
		if response.User.Role != "participant" {
			t.Errorf("Role = %q, want participant", response.User.Role)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(t, r, "/v1/login", map[string]string{
			"email":    "ana@example.edu",
			"password": "wrong-password",
		})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Login status = %d, want 401", w.Code)
		}
	})
}
