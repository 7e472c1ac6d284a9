package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/internal/helpers"
	"github.com/jmcallo24/eventms/internal/models"
)

func CreateEvent(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	eventType := c.PostForm("event_type")
	venue := c.PostForm("venue")

	if title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	date, err := helpers.ParseDate(c.PostForm("date"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
		return
	}
	clock, err := helpers.ParseClock(c.PostForm("time"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid time format. Use HH:MM.")
		return
	}

	maxParticipants := 100
	if raw := c.PostForm("max_participants"); raw != "" {
		maxParticipants, err = helpers.StringToInt(raw)
		if err != nil || maxParticipants <= 0 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid max participants.")
			return
		}
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

	event := models.Event{
		Title:           title,
		Description:     description,
		EventType:       eventType,
		Date:            date,
		Time:            clock,
		Venue:           venue,
		MaxParticipants: maxParticipants,
		Status:          models.StatusApproved,
		UserID:          userID.(uuid.UUID),
	}
	if event.Venue == "" {
		event.Venue = "TBA"
	}

	bannerFile, err := c.FormFile("banner")
	if err == nil {
		bannerPath, err := helpers.UploadFile(c, bannerFile, "event_banners")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		event.BannerPath = bannerPath
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func UpdateEvent(c *gin.Context) {
	eventID := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	title := c.PostForm("title")
	if title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	date, err := helpers.ParseDate(c.PostForm("date"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to update.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	event.Title = title
	event.Description = c.PostForm("description")
	event.EventType = c.PostForm("event_type")
	event.Date = date
	if raw := c.PostForm("time"); raw != "" {
		clock, err := helpers.ParseClock(raw)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid time format. Use HH:MM.")
			return
		}
		event.Time = clock
	}
	if venue := c.PostForm("venue"); venue != "" {
		event.Venue = venue
	}
	if raw := c.PostForm("max_participants"); raw != "" {
		maxParticipants, err := helpers.StringToInt(raw)
		if err != nil || maxParticipants <= 0 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid max participants.")
			return
		}
		event.MaxParticipants = maxParticipants
	}

	bannerFile, err := c.FormFile("banner")
	if err == nil {
		bannerPath, err := helpers.UploadFile(c, bannerFile, "event_banners")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if event.BannerPath != "" {
			if err := helpers.DeleteFile(event.BannerPath); err != nil {
				fmt.Printf("Error deleting old banner: %v\n", err)
			}
		}
		event.BannerPath = bannerPath
	}

	if err := gormDB.Save(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func DeleteEvent(c *gin.Context) {
	eventID := c.Param("id")
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

	result := gormDB.Where("id = ? AND user_id = ?", eventID, userID).Delete(&models.Event{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to delete.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully.",
	})
}
