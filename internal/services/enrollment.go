package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventenrollment/internal/domain"
)

const collaboratorTicketing = "ticketing"

type enrollmentService struct {
	eventRepo      domain.EventRepository
	tickets        domain.TicketReserver
	organizers     *organizerNames
	metrics        domain.EnrollmentMetrics
	logger         *slog.Logger
	paymentMethod  domain.PaymentMethod
	contextTimeout time.Duration
}

// NewEnrollmentService creates an EnrollmentService. paymentMethod is sent with
// every ticket reservation; an invalid value falls back to PIX.
func NewEnrollmentService(
	eventRepo domain.EventRepository,
	users domain.UserDirectory,
	tickets domain.TicketReserver,
	metrics domain.EnrollmentMetrics,
	logger *slog.Logger,
	paymentMethod domain.PaymentMethod,
	timeout time.Duration,
) domain.EnrollmentService {
	logger = loggerOrDefault(logger)
	metrics = metricsOrNoop(metrics)
	if !paymentMethod.Valid() {
		paymentMethod = domain.PaymentMethodPix
	}
	return &enrollmentService{
		eventRepo: eventRepo,
		tickets:   tickets,
		organizers: &organizerNames{
			users:   users,
			metrics: metrics,
			logger:  logger,
		},
		metrics:        metrics,
		logger:         logger,
		paymentMethod:  paymentMethod,
		contextTimeout: timeout,
	}
}

// Enroll adds participantID to the event and then reserves a ticket.
// The membership is committed first and is not rolled back when the
// reservation fails; the result is then flagged TicketPending.
func (s *enrollmentService) Enroll(ctx context.Context, eventID int64, participantID string) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if participantID == "" {
		return nil, domain.InvalidInputError("participant id is required")
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.IncEnrollment(domain.EnrollmentOutcomeRejected)
			return nil, fmt.Errorf("event %d: %w", eventID, domain.ErrNotFound)
		}
		s.metrics.IncEnrollment(domain.EnrollmentOutcomeError)
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := event.CheckEnrollment(participantID); err != nil {
		s.metrics.IncEnrollment(domain.EnrollmentOutcomeRejected)
		return nil, err
	}

	// The store re-checks the same preconditions under a lock; a concurrent
	// enrollment that took the last seat surfaces here as ErrEventFull.
	if err := s.eventRepo.AddParticipant(ctx, eventID, participantID); err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			s.metrics.IncEnrollment(domain.EnrollmentOutcomeRejected)
			return nil, err
		}
		s.metrics.IncEnrollment(domain.EnrollmentOutcomeError)
		return nil, fmt.Errorf("add participant: %w", err)
	}

	enrollment := &domain.Enrollment{EventID: eventID, ParticipantID: participantID}
	ticket, err := s.reserveTicket(ctx, eventID, participantID)
	if err != nil {
		s.metrics.IncCollaboratorFailure(collaboratorTicketing, "reserve")
		s.metrics.IncEnrollment(domain.EnrollmentOutcomeTicketPending)
		s.logger.WarnContext(ctx, "ticket reservation failed, enrollment kept",
			"event_id", eventID, "participant_id", participantID, "err", err)
		enrollment.TicketPending = true
		return enrollment, nil
	}

	enrollment.Ticket = ticket
	s.metrics.IncEnrollment(domain.EnrollmentOutcomeEnrolled)
	s.logger.InfoContext(ctx, "participant enrolled", "event_id", eventID, "participant_id", participantID)
	return enrollment, nil
}

func (s *enrollmentService) reserveTicket(ctx context.Context, eventID int64, participantID string) (*domain.TicketReservation, error) {
	if s.tickets == nil {
		return nil, fmt.Errorf("no ticket reserver configured: %w", domain.ErrCollaboratorUnavailable)
	}
	ticket, err := s.tickets.Reserve(ctx, eventID, participantID, s.paymentMethod)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("empty reservation: %w", domain.ErrCollaboratorUnavailable)
	}
	return ticket, nil
}

func (s *enrollmentService) CancelEnrollment(ctx context.Context, eventID int64, participantID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("event %d: %w", eventID, domain.ErrNotFound)
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !event.HasParticipant(participantID) {
		return fmt.Errorf("enrollment: %w", domain.ErrNotFound)
	}
	// Membership of a cancelled or completed event is history; it stays.
	if event.Status != domain.EventStatusActive {
		return fmt.Errorf("event %d: %w", eventID, domain.ErrEventNotOpen)
	}
	if err := s.eventRepo.RemoveParticipant(ctx, eventID, participantID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("enrollment: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("remove participant: %w", err)
	}
	s.logger.InfoContext(ctx, "enrollment cancelled", "event_id", eventID, "participant_id", participantID)
	return nil
}

func (s *enrollmentService) ListParticipantEnrollments(ctx context.Context, participantID string, page domain.PaginationParams) ([]*domain.EventView, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.ListByParticipantID(ctx, participantID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list events by participant: %w", err)
	}
	return s.organizers.views(ctx, events), total, nil
}
