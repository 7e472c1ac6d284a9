package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jmcallo24/eventms/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Event{}, &models.EventRequest{}, &models.Registration{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestRunPassRecountsParticipants(t *testing.T) {
	db := setupTestDB(t)
	sched, err := New(db, time.Minute)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	event := models.Event{
		Title:               "Sports Fest",
		Date:                time.Now().Add(48 * time.Hour),
		MaxParticipants:     100,
		CurrentParticipants: 42, // stale cache
		Status:              models.StatusApproved,
		UserID:              uuid.New(),
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}

	for i := 0; i < 3; i++ {
		registration := models.Registration{EventID: event.ID, UserID: uuid.New()}
		if err := db.Create(&registration).Error; err != nil {
			t.Fatalf("Failed to create registration: %v", err)
		}
	}

	empty := models.Event{
		Title:               "Science Fair",
		Date:                time.Now().Add(48 * time.Hour),
		MaxParticipants:     50,
		CurrentParticipants: 7, // stale, no registrations at all
		Status:              models.StatusApproved,
		UserID:              uuid.New(),
	}
	if err := db.Create(&empty).Error; err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}

	if err := sched.RunPass(); err != nil {
		t.Fatalf("RunPass() error = %v", err)
	}

	var refreshed models.Event
	if err := db.Where("id = ?", event.ID).First(&refreshed).Error; err != nil {
		t.Fatalf("Failed to reload event: %v", err)
	}
	if refreshed.CurrentParticipants != 3 {
		t.Errorf("CurrentParticipants = %d, want 3", refreshed.CurrentParticipants)
	}

	refreshed = models.Event{}
	if err := db.Where("id = ?", empty.ID).First(&refreshed).Error; err != nil {
		t.Fatalf("Failed to reload event: %v", err)
	}
	if refreshed.CurrentParticipants != 0 {
		t.Errorf("CurrentParticipants = %d for event with no registrations, want 0", refreshed.CurrentParticipants)
	}
}

func TestRunPassCompletesPastEvents(t *testing.T) {
	db := setupTestDB(t)
	sched, err := New(db, time.Minute)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	past := models.Event{
		Title:  "Last Month's Fair",
		Date:   time.Now().Add(-30 * 24 * time.Hour),
		Status: models.StatusApproved,
		UserID: uuid.New(),
	}
	upcoming := models.Event{
		Title:  "Next Week's Fair",
		Date:   time.Now().Add(7 * 24 * time.Hour),
		Status: models.StatusApproved,
		UserID: uuid.New(),
	}
	pastRequest := models.EventRequest{
		Title:       "Old Meetup",
		Date:        time.Now().Add(-48 * time.Hour),
		Status:      models.StatusApproved,
		RequesterID: uuid.New(),
	}
	for _, record := range []interface{}{&past, &upcoming, &pastRequest} {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("Failed to seed: %v", err)
		}
	}

	if err := sched.RunPass(); err != nil {
		t.Fatalf("RunPass() error = %v", err)
	}

	var event models.Event
	if err := db.Where("id = ?", past.ID).First(&event).Error; err != nil {
		t.Fatalf("Failed to reload event: %v", err)
	}
	if event.Status != models.StatusCompleted {
		t.Errorf("Past event status = %q, want completed", event.Status)
	}

	event = models.Event{}
	if err := db.Where("id = ?", upcoming.ID).First(&event).Error; err != nil {
		t.Fatalf("Failed to reload event: %v", err)
	}
	if event.Status != models.StatusApproved {
		t.Errorf("Upcoming event status = %q, want approved", event.Status)
	}

	var request models.EventRequest
	if err := db.Where("id = ?", pastRequest.ID).First(&request).Error; err != nil {
		t.Fatalf("Failed to reload request: %v", err)
	}
	if request.Status != models.StatusCompleted {
		t.Errorf("Past request status = %q, want completed", request.Status)
	}
}

func TestStartStop(t *testing.T) {
	db := setupTestDB(t)
	sched, err := New(db, time.Hour)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sched.Start()
	sched.Stop()
}
