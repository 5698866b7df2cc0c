package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	defaultEventLimit = 20
	maxEventLimit     = 100
)

// EventPublisher pushes recorded events to live subscribers.
type EventPublisher interface {
	Publish(username string, event models.Event)
}

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	Record(ctx context.Context, username, eventType, message string)
	Recent(ctx context.Context, username string, limit int) ([]models.Event, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventService keeps the per-user activity log.
type EventService struct {
	db        *gorm.DB
	publisher EventPublisher
}

// NewEventService creates a new EventService. publisher may be nil.
func NewEventService(db *gorm.DB, publisher EventPublisher) *EventService {
	return &EventService{db: db, publisher: publisher}
}

// Record stores an event and publishes it. Failures are logged and never
// returned; the activity log must not fail the operation it describes.
func (s *EventService) Record(ctx context.Context, username, eventType, message string) {
	event := models.Event{
		ID:       uuid.NewString(),
		Username: username,
		Type:     eventType,
		Message:  message,
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		log.Warn().Err(err).Str("username", username).Str("type", eventType).Msg("Failed to record event")
		return
	}
	if s.publisher != nil {
		s.publisher.Publish(username, event)
	}
}

// Recent retrieves the user's most recent events, newest first.
func (s *EventService) Recent(ctx context.Context, username string, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if limit > maxEventLimit {
		limit = maxEventLimit
	}

	events := []models.Event{}
	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// PruneBefore deletes events created before cutoff and returns how many were removed.
func (s *EventService) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("created_at < ?", cutoff.UTC()).Delete(&models.Event{})
	return res.RowsAffected, res.Error
}
