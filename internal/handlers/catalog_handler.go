package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/internal/catalog"
	"github.com/jmcallo24/eventms/internal/helpers"
)

// GetCatalog runs a full reconciliation pass for the viewer and returns the
// unified event list. Dashboards poll this endpoint on their refresh timer.
func GetCatalog(c *gin.Context) {
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

	unified, err := catalog.Reconcile(gormDB, userID.(uuid.UUID))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error loading the event catalog.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": unified,
		"total":  len(unified),
	})
}

// ToggleRegistration registers or unregisters the viewer for an event. The
// response carries a freshly reconciled catalog so the client never has to
// patch counts locally.
func ToggleRegistration(c *gin.Context) {
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
	viewerID := userID.(uuid.UUID)

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	current, err := catalog.Reconcile(gormDB, viewerID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error loading the event catalog.")
		return
	}

	if err := catalog.ToggleRegistration(gormDB, eventID, viewerID, current); err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		case errors.Is(err, catalog.ErrForbidden):
			helpers.RespondWithError(c, http.StatusForbidden, "You can't register for your own event.")
		case errors.Is(err, catalog.ErrCapacity):
			helpers.RespondWithError(c, http.StatusConflict, "This event is already full.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update registration.")
		}
		return
	}

	refreshed, err := catalog.Reconcile(gormDB, viewerID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Registration saved but catalog refresh failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Registration updated.",
		"events":  refreshed,
	})
}

func ToggleFavorite(c *gin.Context) {
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
	viewerID := userID.(uuid.UUID)

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	current, err := catalog.Reconcile(gormDB, viewerID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error loading the event catalog.")
		return
	}

	if err := catalog.ToggleFavorite(gormDB, eventID, viewerID, current); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update favorite.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite updated."})
}

// ListParticipants returns the registrant roster for an event.
func ListParticipants(c *gin.Context) {
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

	roster, err := catalog.Participants(gormDB, eventID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving participants.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"participants": roster,
		"total":        len(roster),
	})
}
