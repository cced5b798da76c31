package service

import (
	"context"

	"go.uber.org/zap"

	"ticket-server/internal/models"
	"ticket-server/internal/repository"
)

// EventService manages event listings.
type EventService interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetAll(ctx context.Context) ([]models.Event, error)
}

var _ EventService = (*eventServiceImpl)(nil)

type eventServiceImpl struct {
	eventRepo repository.EventRepository
	logger    *zap.Logger
}

// NewEventService creates a new instance of eventServiceImpl.
func NewEventService(eventRepo repository.EventRepository, logger *zap.Logger) EventService {
	return &eventServiceImpl{
		eventRepo: eventRepo,
		logger:    logger.Named("EventService"),
	}
}

// Create stores a new event. The caller sets OrganizerID from the
// authenticated identity; new events always start as not_started.
func (s *eventServiceImpl) Create(ctx context.Context, event *models.Event) error {
	if event.Status == "" {
		event.Status = models.EventNotStarted
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return err
	}
	s.logger.Info("Event created", zap.Int64("eventID", event.ID), zap.Int64("organizerID", event.OrganizerID))
	return nil
}

func (s *eventServiceImpl) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventServiceImpl) GetAll(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.GetAll(ctx)
}
