package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/internal/flows"
	"github.com/jmcallo24/eventms/internal/helpers"
	"github.com/jmcallo24/eventms/internal/models"
	"github.com/jmcallo24/eventms/internal/notify"
)

type ActivityInput struct {
	Time            string `json:"time"`
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	DurationMinutes int    `json:"duration_minutes"`
	ActivityType    string `json:"activity_type"`
}

type ProgramFlowInput struct {
	EventID    uuid.UUID       `json:"event_id" binding:"required"`
	Title      string          `json:"title" binding:"required"`
	Activities []ActivityInput `json:"activities"`
}

type FlowReviewInput struct {
	Comments string `json:"comments"`
}

// CreateProgramFlow stores a new draft schedule for an event. Activities
// keep their submitted order via order_index.
func CreateProgramFlow(c *gin.Context) {
	var req ProgramFlowInput
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

	flow := models.ProgramFlow{
		EventID: req.EventID,
		Title:   req.Title,
		Status:  models.FlowStatusDraft,
		OwnerID: userID.(uuid.UUID),
	}
	for i, activity := range req.Activities {
		clock, err := helpers.ParseClock(activity.Time)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid activity time format. Use HH:MM.")
			return
		}
		flow.Activities = append(flow.Activities, models.ProgramFlowActivity{
			Time:            clock,
			Title:           activity.Title,
			Description:     activity.Description,
			Location:        activity.Location,
			DurationMinutes: activity.DurationMinutes,
			ActivityType:    activity.ActivityType,
			OrderIndex:      i,
		})
	}

	if err := gormDB.Create(&flow).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create program flow.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Program flow created as draft.",
		"flow_id": flow.ID,
	})
}

func ListProgramFlows(c *gin.Context) {
	eventID, err := helpers.ParseUUIDParam(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var flowList []models.ProgramFlow
	err = gormDB.Preload("Activities", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).Where("event_id = ?", eventID).Order("created_at DESC").Find(&flowList).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving program flows.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"flows": flowList,
		"total": len(flowList),
	})
}

func SubmitProgramFlow(c *gin.Context) {
	flowID, err := helpers.ParseUUIDParam(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid flow ID.")
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

	if err := flows.Submit(gormDB, flowID, userID.(uuid.UUID)); err != nil {
		respondFlowError(c, err)
		return
	}

	if err := notify.Admins(gormDB, "Program flow submitted",
		"A program flow is waiting for review.",
		models.NotificationTypeRequest, nil); err != nil {
		log.Printf("flow: admin notification failed for %s: %v", flowID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Program flow submitted for review."})
}

func ApproveProgramFlow(c *gin.Context) {
	reviewProgramFlow(c, models.FlowStatusApproved)
}

func RejectProgramFlow(c *gin.Context) {
	reviewProgramFlow(c, models.FlowStatusRejected)
}

func reviewProgramFlow(c *gin.Context, target string) {
	flowID, err := helpers.ParseUUIDParam(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid flow ID.")
		return
	}

	var req FlowReviewInput
	if err := c.ShouldBindJSON(&req); err != nil && target == models.FlowStatusRejected {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	if target == models.FlowStatusApproved {
		err = flows.Approve(gormDB, flowID, req.Comments)
	} else {
		err = flows.Reject(gormDB, flowID, req.Comments)
	}
	if err != nil {
		respondFlowError(c, err)
		return
	}

	var flow models.ProgramFlow
	if lookupErr := gormDB.Where("id = ?", flowID).First(&flow).Error; lookupErr == nil {
		title := "Program flow approved"
		message := flow.Title + " has been approved."
		if target == models.FlowStatusRejected {
			title = "Program flow rejected"
			message = flow.Title + " was rejected: " + req.Comments
		}
		if err := notify.Send(gormDB, flow.OwnerID, title, message,
			models.NotificationTypeApproval, nil); err != nil {
			log.Printf("flow: owner notification failed for %s: %v", flowID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Program flow " + target + "."})
}

func respondFlowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, "Program flow not found.")
	case errors.Is(err, flows.ErrNotOwner):
		helpers.RespondWithError(c, http.StatusForbidden, "This program flow belongs to another user.")
	case errors.Is(err, flows.ErrIncomplete):
		helpers.RespondWithError(c, http.StatusBadRequest, "Add a title and at least one activity before submitting.")
	case errors.Is(err, flows.ErrCommentRequired):
		helpers.RespondWithError(c, http.StatusBadRequest, "A comment is required when rejecting a program flow.")
	case errors.Is(err, flows.ErrInvalidTransition):
		helpers.RespondWithError(c, http.StatusConflict, "The program flow is not in a state that allows this action.")
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update program flow.")
	}
}
