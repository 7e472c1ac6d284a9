package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/internal/helpers"
	"github.com/jmcallo24/eventms/internal/models"
)

func generateRegistrationQRData(registration *models.Registration) string {
	secretKey := os.Getenv("JWT_SECRET")
	signature := generateRegistrationSignature(registration.ID, registration.EventID, registration.UserID, secretKey)
	return fmt.Sprintf("registration:%s;event:%s;signature:%s",
		registration.ID.String(),
		registration.EventID.String(),
		signature,
	)
}

func generateRegistrationSignature(registrationID, eventID, userID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", registrationID.String(), eventID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func extractRegistrationIDFromQRData(qrData string) (uuid.UUID, string, error) {
	parts := strings.Split(qrData, ";")
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "registration:") || !strings.HasPrefix(parts[2], "signature:") {
		return uuid.Nil, "", fmt.Errorf("invalid QR data format")
	}

	registrationID, err := uuid.Parse(strings.TrimPrefix(parts[0], "registration:"))
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid registration ID in QR data")
	}
	return registrationID, strings.TrimPrefix(parts[2], "signature:"), nil
}

// GetRegistrationQR serves the viewer's check-in QR code for one event as a
// PNG. The payload is HMAC-signed so the check-in desk can trust it.
func GetRegistrationQR(c *gin.Context) {
	eventID, err := helpers.ParseUUIDParam(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var registration models.Registration
	err = gormDB.Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&registration).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "You are not registered for this event.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving registration.")
		return
	}

	qrData := generateRegistrationQRData(&registration)

	qrImage, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// CheckInParticipant validates a scanned registration QR and marks the
// registration as attended. Reusing an already scanned code is rejected.
func CheckInParticipant(c *gin.Context) {
	var validationRequest struct {
		QRData string `json:"qr_data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&validationRequest); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	registrationID, signature, err := extractRegistrationIDFromQRData(validationRequest.QRData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR code.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var registration models.Registration
	if err := gormDB.Where("id = ?", registrationID).First(&registration).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Registration not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving registration.")
		return
	}

	expected := generateRegistrationSignature(registration.ID, registration.EventID, registration.UserID, os.Getenv("JWT_SECRET"))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		helpers.RespondWithError(c, http.StatusUnauthorized, "QR code signature is invalid.")
		return
	}

	if registration.AttendanceStatus == "attended" {
		helpers.RespondWithError(c, http.StatusConflict, "This registration has already been checked in.")
		return
	}

	err = gormDB.Model(&registration).
		Update("attendance_status", "attended").Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to check in participant.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Participant checked in.",
		"registration_id": registration.ID,
		"event_id":        registration.EventID,
	})
}
