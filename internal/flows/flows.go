package flows

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/internal/models"
)

var (
	ErrInvalidTransition = errors.New("program flow is not in a state that allows this transition")
	ErrCommentRequired   = errors.New("rejection requires a comment")
	ErrIncomplete        = errors.New("program flow needs a title and at least one activity before submission")
	ErrNotOwner          = errors.New("program flow belongs to another user")
)

// Submit moves a draft flow to submitted. Only the owner may submit, and the
// flow must have a title and at least one activity.
func Submit(db *gorm.DB, flowID, ownerID uuid.UUID) error {
	var flow models.ProgramFlow
	if err := db.Preload("Activities").Where("id = ?", flowID).First(&flow).Error; err != nil {
		return err
	}
	if flow.OwnerID != ownerID {
		return ErrNotOwner
	}
	if flow.Status != models.FlowStatusDraft {
		return ErrInvalidTransition
	}
	if flow.Title == "" || len(flow.Activities) == 0 {
		return ErrIncomplete
	}
	return db.Model(&flow).Update("status", models.FlowStatusSubmitted).Error
}

// Approve moves a submitted flow to approved, with optional admin comments.
// Approved is terminal; resubmission starts a fresh draft.
func Approve(db *gorm.DB, flowID uuid.UUID, comments string) error {
	return transition(db, flowID, models.FlowStatusApproved, comments)
}

// Reject moves a submitted flow to rejected. A non-empty comment is
// mandatory so the owner knows what to fix.
func Reject(db *gorm.DB, flowID uuid.UUID, comments string) error {
	if comments == "" {
		return ErrCommentRequired
	}
	return transition(db, flowID, models.FlowStatusRejected, comments)
}

func transition(db *gorm.DB, flowID uuid.UUID, target, comments string) error {
	var flow models.ProgramFlow
	if err := db.Where("id = ?", flowID).First(&flow).Error; err != nil {
		return err
	}
	if flow.Status != models.FlowStatusSubmitted {
		return ErrInvalidTransition
	}
	return db.Model(&flow).Updates(map[string]interface{}{
		"status":         target,
		"admin_comments": comments,
	}).Error
}
