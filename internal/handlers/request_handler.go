package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/internal/helpers"
	"github.com/jmcallo24/eventms/internal/models"
	"github.com/jmcallo24/eventms/internal/notify"
)

type EventRequestInput struct {
	Title                string `json:"title" binding:"required"`
	Description          string `json:"description"`
	EventType            string `json:"event_type" binding:"required"`
	EventTypeOther       string `json:"event_type_other"`
	Date                 string `json:"date" binding:"required"`
	Time                 string `json:"time"`
	Venue                string `json:"venue"`
	ExpectedParticipants int    `json:"expected_participants"`
	OrganizerName        string `json:"organizer_name"`
}

type ReviewInput struct {
	Status   string `json:"status" binding:"required,oneof=approved rejected"`
	Comments string `json:"comments"`
}

// CreateEventRequest files a new event request and notifies every admin so
// it shows up on their review dashboard.
func CreateEventRequest(c *gin.Context) {
	var req EventRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	eventType := req.EventType
	if eventType == "Others" {
		if req.EventTypeOther == "" {
			helpers.RespondWithError(c, http.StatusBadRequest, "Please specify the event type when choosing Others.")
			return
		}
		eventType = req.EventTypeOther
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
		return
	}
	clock, err := helpers.ParseClock(req.Time)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid time format. Use HH:MM.")
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

	request := models.EventRequest{
		Title:         req.Title,
		Description:   req.Description,
		EventType:     eventType,
		Date:          date,
		Time:          clock,
		Venue:         req.Venue,
		OrganizerName: req.OrganizerName,
		RequesterID:   userID.(uuid.UUID),
		Status:        models.StatusPending,
	}
	if request.Venue == "" {
		request.Venue = "TBA"
	}
	if req.ExpectedParticipants > 0 {
		request.ExpectedParticipants = req.ExpectedParticipants
	} else {
		request.ExpectedParticipants = 50
	}

	if err := gormDB.Create(&request).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to submit event request.")
		return
	}

	if err := notify.Admins(gormDB, "New event request",
		request.Title+" is waiting for review.",
		models.NotificationTypeRequest, &request.ID); err != nil {
		log.Printf("request: admin notification failed for %s: %v", request.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Event request submitted successfully.",
		"request_id": request.ID,
	})
}

// ListMyEventRequests returns the viewer's own requests in every status.
// Non-approved requests are visible only here, never in the catalog.
func ListMyEventRequests(c *gin.Context) {
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

	var requests []models.EventRequest
	err := gormDB.Where("requester_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event requests.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

// ReviewEventRequest lets an admin approve or reject a pending request.
// Approval promotes the request into the unified catalog on the next
// reconciliation pass; rejection requires a comment for the requester.
func ReviewEventRequest(c *gin.Context) {
	requestID := c.Param("id")

	var req ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.Status == models.StatusRejected && req.Comments == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "A comment is required when rejecting a request.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var request models.EventRequest
	if err := gormDB.Where("id = ?", requestID).First(&request).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event request not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event request.")
		return
	}

	if request.Status != models.StatusPending {
		helpers.RespondWithError(c, http.StatusConflict, "This request has already been reviewed.")
		return
	}

	updates := map[string]interface{}{
		"status":         req.Status,
		"admin_comments": req.Comments,
	}
	if err := gormDB.Model(&request).Updates(updates).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event request.")
		return
	}

	title := "Event request approved"
	message := request.Title + " has been approved and is now in the catalog."
	if req.Status == models.StatusRejected {
		title = "Event request rejected"
		message = request.Title + " was rejected: " + req.Comments
	}
	if err := notify.Send(gormDB, request.RequesterID, title, message,
		models.NotificationTypeApproval, &request.ID); err != nil {
		log.Printf("review: requester notification failed for %s: %v", request.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event request " + req.Status + ".",
	})
}
