package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jmcallo24/eventms/internal/middleware"
	"github.com/jmcallo24/eventms/internal/models"
)

func setupCheckInRouter(t *testing.T, viewerID uuid.UUID, role string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	err = db.AutoMigrate(&models.Role{}, &models.User{}, &models.Event{}, &models.Registration{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(func(c *gin.Context) {
		c.Set("user_id", viewerID)
		c.Set("role", role)
		c.Next()
	})
	r.GET("/v1/events/:id/registration/qr", GetRegistrationQR)
	r.POST("/v1/registrations/check-in", CheckInParticipant)
	return r, db
}

func createCheckInFixture(t *testing.T, db *gorm.DB, participantID uuid.UUID) models.Registration {
	t.Helper()

	organizer := models.User{ID: uuid.New(), Name: "Ms. Reyes", Email: "reyes@example.edu", Password: "hashed"}
	if err := db.Create(&organizer).Error; err != nil {
		t.Fatalf("Failed to create organizer: %v", err)
	}
	participant := models.User{ID: participantID, Name: "Dana Cruz", Email: "dana@example.edu", Password: "hashed"}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("Failed to create participant: %v", err)
	}
	event := models.Event{
		ID:              uuid.New(),
		Title:           "Science Fair",
		Date:            time.Now().Add(48 * time.Hour),
		Time:            "09:00",
		Venue:           "Auditorium",
		MaxParticipants: 100,
		Status:          models.StatusApproved,
		UserID:          organizer.ID,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	registration := models.Registration{ID: uuid.New(), EventID: event.ID, UserID: participant.ID}
	if err := db.Create(&registration).Error; err != nil {
		t.Fatalf("Failed to create registration: %v", err)
	}
	return registration
}

func postCheckIn(t *testing.T, r *gin.Engine, qrData string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(gin.H{"qr_data": qrData})
	if err != nil {
		t.Fatalf("Failed to marshal check-in body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/registrations/check-in", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegistrationQRRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	participantID := uuid.New()
	r, db := setupCheckInRouter(t, participantID, "organizer")
	registration := createCheckInFixture(t, db, participantID)

	qrData := generateRegistrationQRData(&registration)

	extractedID, signature, err := extractRegistrationIDFromQRData(qrData)
	if err != nil {
		t.Fatalf("Failed to extract registration ID: %v", err)
	}
	if extractedID != registration.ID {
		t.Errorf("Extracted ID = %s, want %s", extractedID, registration.ID)
	}
	expected := generateRegistrationSignature(registration.ID, registration.EventID, registration.UserID, "test-secret")
	if signature != expected {
		t.Errorf("Signature = %s, want %s", signature, expected)
	}

	w := postCheckIn(t, r, qrData)
	if w.Code != http.StatusOK {
		t.Fatalf("Check-in status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var reloaded models.Registration
	if err := db.Where("id = ?", registration.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("Failed to reload registration: %v", err)
	}
	if reloaded.AttendanceStatus != "attended" {
		t.Errorf("AttendanceStatus = %q, want %q", reloaded.AttendanceStatus, "attended")
	}
}

func TestCheckInRejectsTamperedSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	participantID := uuid.New()
	r, db := setupCheckInRouter(t, participantID, "organizer")
	registration := createCheckInFixture(t, db, participantID)

	forged := fmt.Sprintf("registration:%s;event:%s;signature:%s",
		registration.ID, registration.EventID, strings.Repeat("ab", 32))
	w := postCheckIn(t, r, forged)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Tampered check-in status = %d, want 401: %s", w.Code, w.Body.String())
	}

	var reloaded models.Registration
	if err := db.Where("id = ?", registration.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("Failed to reload registration: %v", err)
	}
	if reloaded.AttendanceStatus == "attended" {
		t.Error("Tampered QR must not mark the registration attended")
	}
}

func TestCheckInRejectsReusedCode(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	participantID := uuid.New()
	r, db := setupCheckInRouter(t, participantID, "organizer")
	registration := createCheckInFixture(t, db, participantID)
	qrData := generateRegistrationQRData(&registration)

	if w := postCheckIn(t, r, qrData); w.Code != http.StatusOK {
		t.Fatalf("First check-in status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if w := postCheckIn(t, r, qrData); w.Code != http.StatusConflict {
		t.Fatalf("Second check-in status = %d, want 409: %s", w.Code, w.Body.String())
	}
}

func TestGetRegistrationQRServesImage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	participantID := uuid.New()
	r, db := setupCheckInRouter(t, participantID, "participant")
	registration := createCheckInFixture(t, db, participantID)

	req := httptest.NewRequest(http.MethodGet, "/v1/events/"+registration.EventID.String()+"/registration/qr", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("QR status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("QR response body is empty")
	}

	t.Run("unregistered event returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/events/"+uuid.NewString()+"/registration/qr", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("QR status = %d, want 404: %s", w.Code, w.Body.String())
		}
	})
}
