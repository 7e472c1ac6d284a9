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

type ReportInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type"`
}

type ReportMessageInput struct {
	Body string `json:"body" binding:"required"`
}

type ReportStatusInput struct {
	Status string `json:"status" binding:"required,oneof=open in_progress resolved"`
}

func CreateReport(c *gin.Context) {
	var req ReportInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
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

	report := models.Report{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		ReporterID:  userID.(uuid.UUID),
	}
	if err := gormDB.Create(&report).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create report.")
		return
	}

	if err := notify.Admins(gormDB, "New report filed",
		report.Title, models.NotificationTypeInfo, nil); err != nil {
		log.Printf("report: admin notification failed for %s: %v", report.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Report submitted successfully.",
		"report_id": report.ID,
	})
}

// ListReports shows every report to admins and only the viewer's own
// reports to everyone else.
func ListReports(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	role, _ := c.Get("role")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Preload("Messages").Preload("Reporter")
	if role != "admin" {
		query = query.Where("reporter_id = ?", userID)
	}

	var reports []models.Report
	if err := query.Order("created_at DESC").Find(&reports).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reports.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   len(reports),
	})
}

func AddReportMessage(c *gin.Context) {
	reportID, err := helpers.ParseUUIDParam(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid report ID.")
		return
	}

	var req ReportMessageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	senderID := userID.(uuid.UUID)
	role, _ := c.Get("role")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var report models.Report
	if err := gormDB.Where("id = ?", reportID).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Report not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding report.")
		return
	}

	if role != "admin" && report.ReporterID != senderID {
		helpers.RespondWithError(c, http.StatusForbidden, "You can't reply to this report.")
		return
	}

	message := models.ReportMessage{
		ReportID: reportID,
		SenderID: senderID,
		Body:     req.Body,
	}
	if err := gormDB.Create(&message).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to add message.")
		return
	}

	// Tell the other side of the conversation.
	if senderID == report.ReporterID {
		if err := notify.Admins(gormDB, "New reply on report",
			report.Title, models.NotificationTypeInfo, nil); err != nil {
			log.Printf("report: admin reply notification failed for %s: %v", report.ID, err)
		}
	} else {
		if err := notify.Send(gormDB, report.ReporterID, "New reply on your report",
			report.Title, models.NotificationTypeInfo, nil); err != nil {
			log.Printf("report: reporter reply notification failed for %s: %v", report.ID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Message added.",
		"message_id": message.ID,
	})
}

func UpdateReportStatus(c *gin.Context) {
	reportID := c.Param("id")

	var req ReportStatusInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var report models.Report
	if err := gormDB.Where("id = ?", reportID).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Report not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding report.")
		return
	}

	if err := gormDB.Model(&report).Update("status", req.Status).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update report status.")
		return
	}

	if err := notify.Send(gormDB, report.ReporterID, "Report status updated",
		report.Title+" is now "+req.Status+".", models.NotificationTypeInfo, nil); err != nil {
		log.Printf("report: status notification failed for %s: %v", report.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report status updated."})
}
