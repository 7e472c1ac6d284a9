package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/internal/models"
)

// Scheduler runs the fixed-interval catalog maintenance pass. It exists so
// the refresh cadence lives behind a start/stop boundary and could later be
// swapped for an event-driven trigger without touching the pass itself.
type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
}

func New(db *gorm.DB, interval time.Duration) (*Scheduler, error) {
	s := &Scheduler{cron: cron.New(), db: db}
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if err := s.RunPass(); err != nil {
			log.Printf("scheduler: maintenance pass failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunPass reconciles the advisory participant counters with the
// registration join table and completes past-dated events. It is exported
// so a manual refresh can trigger the same work as the timer.
func (s *Scheduler) RunPass() error {
	if err := s.recountParticipants(); err != nil {
		return err
	}
	return s.completePastEvents()
}

type countRow struct {
	EventID uuid.UUID
	Total   int
}

func (s *Scheduler) recountParticipants() error {
	var rows []countRow
	err := s.db.Model(&models.Registration{}).
		Select("event_id, COUNT(*) AS total").
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counted := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		counted = append(counted, row.EventID)
		for _, model := range []interface{}{&models.Event{}, &models.EventRequest{}} {
			if err := s.db.Model(model).
				Where("id = ?", row.EventID).
				UpdateColumn("current_participants", row.Total).Error; err != nil {
				return err
			}
		}
	}

	// Events with no registrations at all never show up in the grouped
	// query, so their stale counters are zeroed separately.
	for _, model := range []interface{}{&models.Event{}, &models.EventRequest{}} {
		query := s.db.Model(model).Where("current_participants <> 0")
		if len(counted) > 0 {
			query = query.Where("id NOT IN ?", counted)
		}
		if err := query.UpdateColumn("current_participants", 0).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) completePastEvents() error {
	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	for _, model := range []interface{}{&models.Event{}, &models.EventRequest{}} {
		err := s.db.Model(model).
			Where("status = ? AND date < ?", models.StatusApproved, midnight).
			UpdateColumn("status", models.StatusCompleted).Error
		if err != nil {
			return err
		}
	}
	return nil
}
