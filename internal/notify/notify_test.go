package notify

import (
	"fmt"
	"testing"

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
	if err := db.AutoMigrate(&models.Role{}, &models.User{}, &models.Notification{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, roleName string) *models.User {
	t.Helper()
	var role models.Role
	if err := db.Where("name = ?", roleName).FirstOrCreate(&role, models.Role{Name: roleName}).Error; err != nil {
		t.Fatalf("Failed to create role %s: %v", roleName, err)
	}
	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%s@example.edu", name, uuid.New().String()[:8]),
		Password: "hashed",
		RoleID:   role.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return &user
}

func TestSendSingleNotification(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Ana", "participant")
	eventID := uuid.New()

	if err := Send(db, user.ID, "Registration confirmed", "See you there.", models.NotificationTypeInfo, &eventID); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	var notifications []models.Notification
	if err := db.Where("user_id = ?", user.ID).Find(&notifications).Error; err != nil {
		t.Fatalf("Failed to load notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("Notification count = %d, want 1", len(notifications))
	}
	notification := notifications[0]
	if notification.IsRead {
		t.Error("New notification is marked read")
	}
	if notification.RelatedEventID == nil || *notification.RelatedEventID != eventID {
		t.Errorf("RelatedEventID = %v, want %s", notification.RelatedEventID, eventID)
	}
}

func TestAdminBroadcast(t *testing.T) {
	db := setupTestDB(t)
	admin1 := createTestUser(t, db, "Admin One", "admin")
	admin2 := createTestUser(t, db, "Admin Two", "admin")
	createTestUser(t, db, "Ana", "participant")
	createTestUser(t, db, "Ms. Reyes", "organizer")

	requestID := uuid.New()
	if err := Admins(db, "New event request", "Sports Fest is waiting for review.", models.NotificationTypeRequest, &requestID); err != nil {
		t.Fatalf("Admins() error = %v", err)
	}

	var notifications []models.Notification
	if err := db.Find(&notifications).Error; err != nil {
		t.Fatalf("Failed to load notifications: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("Notification count = %d, want one per admin (2)", len(notifications))
	}

	recipients := make(map[uuid.UUID]bool)
	for _, notification := range notifications {
		recipients[notification.UserID] = true
		if notification.RelatedEventID == nil || *notification.RelatedEventID != requestID {
			t.Errorf("RelatedEventID = %v, want %s", notification.RelatedEventID, requestID)
		}
	}
	if !recipients[admin1.ID] || !recipients[admin2.ID] {
		t.Errorf("Broadcast recipients = %v, want both admins", recipients)
	}
}
