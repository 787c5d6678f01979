package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventenrollment/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	categoryRepo   domain.CategoryRepository
	organizers     *organizerNames
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates an EventService. users may be nil, in which case every
// view carries the "unavailable" organizer placeholder.
func NewEventService(
	eventRepo domain.EventRepository,
	categoryRepo domain.CategoryRepository,
	users domain.UserDirectory,
	metrics domain.EnrollmentMetrics,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	logger = loggerOrDefault(logger)
	return &eventService{
		eventRepo:    eventRepo,
		categoryRepo: categoryRepo,
		organizers: &organizerNames{
			users:   users,
			metrics: metricsOrNoop(metrics),
			logger:  logger,
		},
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, organizerID string, in domain.EventInput) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if organizerID == "" {
		return nil, domain.InvalidInputError("organizer id is required")
	}
	now := time.Now()
	if errs := in.Validate(now); len(errs) > 0 {
		return nil, domain.InvalidInputError(strings.Join(errs, "; "))
	}

	category, err := s.getCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	event := domain.NewEvent(organizerID, in, category, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "organizer_id", organizerID)
	return s.organizers.view(ctx, event), nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID int64, organizerID string, in domain.EventInput) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := time.Now()
	if errs := in.Validate(now); len(errs) > 0 {
		return nil, domain.InvalidInputError(strings.Join(errs, "; "))
	}

	event, err := s.getOwnedEvent(ctx, eventID, organizerID)
	if err != nil {
		return nil, err
	}

	category, err := s.getCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if in.Capacity < event.EnrolledCount() {
		return nil, domain.ErrCapacityBelowEnrollment
	}

	event.Apply(in, category, now)
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return s.organizers.view(ctx, event), nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID int64, organizerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getOwnedEvent(ctx, eventID, organizerID)
	if err != nil {
		return err
	}
	if event.EnrolledCount() > 0 {
		return domain.ErrEventHasParticipants
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.logger.InfoContext(ctx, "event deleted", "event_id", eventID, "organizer_id", organizerID)
	return nil
}

func (s *eventService) CancelEvent(ctx context.Context, eventID int64, organizerID string) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getOwnedEvent(ctx, eventID, organizerID)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.EventStatusActive {
		return nil, domain.ErrEventNotActive
	}
	if err := s.eventRepo.UpdateStatus(ctx, eventID, domain.EventStatusActive, domain.EventStatusCancelled); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("cancel event: %w", err)
	}
	event.Status = domain.EventStatusCancelled
	return s.organizers.view(ctx, event), nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID int64) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.organizers.view(ctx, event), nil
}

func (s *eventService) ListAvailableEvents(ctx context.Context, page domain.PaginationParams) ([]*domain.EventView, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.ListByStatus(ctx, domain.EventStatusActive, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list events by status: %w", err)
	}
	return s.organizers.views(ctx, events), total, nil
}

func (s *eventService) ListOrganizerEvents(ctx context.Context, organizerID string, page domain.PaginationParams) ([]*domain.EventView, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.ListByOrganizerID(ctx, organizerID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list events by organizer: %w", err)
	}
	return s.organizers.views(ctx, events), total, nil
}

func (s *eventService) getEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("event %d: %w", eventID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) getOwnedEvent(ctx context.Context, eventID int64, organizerID string) (*domain.Event, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !domain.IsOwner(organizerID, event) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) getCategory(ctx context.Context, categoryID int64) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("category %d: %w", categoryID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}
