package config

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/internal/helpers"
	"github.com/jmcallo24/eventms/internal/models"
)

type Config struct {
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	RefreshInterval time.Duration
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          os.Getenv("DB_PORT"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		RefreshInterval: 30 * time.Second,
	}

	if raw := os.Getenv("REFRESH_INTERVAL_SECONDS"); raw != "" {
		seconds, err := helpers.StringToInt(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid REFRESH_INTERVAL_SECONDS: %q", raw)
		}
		cfg.RefreshInterval = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Role{}, &models.User{},
		&models.Event{}, &models.EventRequest{},
		&models.Registration{}, &models.Favorite{},
		&models.Notification{},
		&models.Report{}, &models.ReportMessage{},
		&models.ProgramFlow{}, &models.ProgramFlowActivity{},
		&models.CalendarEvent{},
	)
	if err != nil {
		return nil, err
	}

	seedRoles(db)

	return db, nil
}

func seedRoles(db *gorm.DB) {
	roles := []models.Role{
		{Name: "admin"},
		{Name: "organizer"},
		{Name: "participant"},
	}

	for _, role := range roles {
		var existingRole models.Role
		result := db.Where("name = ?", role.Name).First(&existingRole)
		if result.Error != nil {
			db.Create(&role)
		}
	}
}
