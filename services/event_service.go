package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hackvent/hackvent-backend/models"
	"github.com/hackvent/hackvent-backend/repositories"
)

// EventService interface defines event business logic
type EventService interface {
	GetAllEvents(ctx context.Context) ([]models.Event, error)
	GetEventByID(ctx context.Context, id int) (*models.Event, error)
	GetActiveEvent(ctx context.Context) (*models.Event, error)
	CreateEvent(ctx context.Context, form *models.EventForm) (*models.Event, error)
	UpdateEvent(ctx context.Context, id int, form *models.EventForm) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int) error
	GetParticipants(ctx context.Context, eventID int) ([]models.EventParticipant, error)
}

// eventService implements EventService interface
type eventService struct {
	eventRepo       repositories.EventRepository
	participantRepo repositories.ParticipantRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo repositories.EventRepository, participantRepo repositories.ParticipantRepository) EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
	}
}

// GetAllEvents retrieves all events
func (s *eventService) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.GetAll(ctx)
}

// GetEventByID retrieves an event by ID
func (s *eventService) GetEventByID(ctx context.Context, id int) (*models.Event, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid event ID: %d", id)
	}
	return s.eventRepo.GetByID(ctx, id)
}

// GetActiveEvent retrieves the currently active event
func (s *eventService) GetActiveEvent(ctx context.Context) (*models.Event, error) {
	return s.eventRepo.GetActive(ctx)
}

// CreateEvent creates a new event with validation
func (s *eventService) CreateEvent(ctx context.Context, form *models.EventForm) (*models.Event, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	startDate, _ := models.ParseDate(form.StartDate)
	endDate, _ := models.ParseDate(form.EndDate)

	event := &models.Event{
		Name:      strings.TrimSpace(form.Name),
		StartDate: startDate,
		EndDate:   endDate,
		CanChange: form.CanChange,
		IsActive:  form.IsActive,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// UpdateEvent updates an existing event
func (s *eventService) UpdateEvent(ctx context.Context, id int, form *models.EventForm) (*models.Event, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid event ID: %d", id)
	}
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}
	if !event.CanChange {
		return nil, fmt.Errorf("event %q is locked and cannot be changed", event.Name)
	}

	startDate, _ := models.ParseDate(form.StartDate)
	endDate, _ := models.ParseDate(form.EndDate)

	event.Name = strings.TrimSpace(form.Name)
	event.StartDate = startDate
	event.EndDate = endDate
	event.CanChange = form.CanChange
	event.IsActive = form.IsActive

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// DeleteEvent deletes an event
func (s *eventService) DeleteEvent(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid event ID: %d", id)
	}
	return s.eventRepo.Delete(ctx, id)
}

// GetParticipants retrieves all participants registered to an event
func (s *eventService) GetParticipants(ctx context.Context, eventID int) ([]models.EventParticipant, error) {
	if eventID <= 0 {
		return nil, fmt.Errorf("invalid event ID: %d", eventID)
	}
	return s.participantRepo.GetByEvent(ctx, eventID)
}
