package handlers

import (
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/internal/helpers"
	"github.com/jmcallo24/eventms/internal/models"
)

type CalendarEntryInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Venue       string `json:"venue"`
}

// ListCalendar returns the curated campus calendar entries in
// chronological order.
func ListCalendar(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var entries []models.CalendarEvent
	err := gormDB.Order("date ASC, start_time ASC").Find(&entries).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving calendar.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

func CreateCalendarEntry(c *gin.Context) {
	var req CalendarEntryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
		return
	}
	startTime, err := helpers.ParseClock(req.StartTime)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start time format. Use HH:MM.")
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

	entry := models.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		StartTime:   startTime,
		EndTime:     req.EndTime,
		Venue:       req.Venue,
		CreatedBy:   userID.(uuid.UUID),
	}
	if entry.Venue == "" {
		entry.Venue = "TBA"
	}

	if err := gormDB.Create(&entry).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create calendar entry.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Calendar entry created.",
		"entry_id": entry.ID,
	})
}

// CalendarFeed serves the public catalog as an ICS feed: organizer events,
// approved requests, and curated calendar entries. Viewer-specific flags
// don't apply here, so the sources are read directly.
func CalendarFeed(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//eventms//campus calendar//EN")

	var events []models.Event
	if err := gormDB.Where("status = ?", models.StatusApproved).Find(&events).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error building calendar feed.")
		return
	}
	for _, event := range events {
		addFeedEvent(cal, event.ID.String(), event.Title, event.Description,
			event.Venue, event.Date, event.Time)
	}

	var requests []models.EventRequest
	if err := gormDB.Where("status = ?", models.StatusApproved).Find(&requests).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error building calendar feed.")
		return
	}
	for _, request := range requests {
		addFeedEvent(cal, request.ID.String(), request.Title, request.Description,
			request.Venue, request.Date, request.Time)
	}

	var entries []models.CalendarEvent
	if err := gormDB.Find(&entries).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error building calendar feed.")
		return
	}
	for _, entry := range entries {
		addFeedEvent(cal, entry.ID.String(), entry.Title, entry.Description,
			entry.Venue, entry.Date, entry.StartTime)
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.String(http.StatusOK, cal.Serialize())
}

func addFeedEvent(cal *ics.Calendar, uid, title, description, venue string, date time.Time, clock string) {
	start := date
	if parsed, err := time.Parse("15:04", clock); err == nil {
		start = time.Date(date.Year(), date.Month(), date.Day(),
			parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	}

	event := cal.AddEvent(uid)
	event.SetSummary(title)
	event.SetStartAt(start)
	event.SetEndAt(start.Add(time.Hour))
	event.SetDtStampTime(time.Now().UTC())
	if description != "" {
		event.SetDescription(description)
	}
	if venue != "" {
		event.SetLocation(venue)
	}
}
