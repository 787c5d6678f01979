package domain

import (
	"context"
	"time"
)

// PaymentMethod is passed to the ticketing service when a seat is reserved.
type PaymentMethod string

const (
	PaymentMethodPix  PaymentMethod = "PIX"
	PaymentMethodCard PaymentMethod = "CARTAO"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodPix || m == PaymentMethodCard
}

// TicketReservation is the ticketing service's answer to a reservation.
// swagger:model TicketReservation
type TicketReservation struct {
	TicketID  int64      `json:"ticket_id"`
	Code      string     `json:"code"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// TicketReserver reserves one ticket for a participant of an event.
// Transport failures are reported as ErrCollaboratorUnavailable.
type TicketReserver interface {
	Reserve(ctx context.Context, eventID int64, participantID string, method PaymentMethod) (*TicketReservation, error)
}

// Enrollment is the outcome of a successful enrollment. Membership is committed
// before the ticket is reserved; TicketPending is true when the reservation
// failed and must be reconciled out of band.
// swagger:model Enrollment
type Enrollment struct {
	EventID       int64              `json:"event_id"`
	ParticipantID string             `json:"participant_id"`
	Ticket        *TicketReservation `json:"ticket,omitempty"`
	TicketPending bool               `json:"ticket_pending"`
}

// EnrollmentService defines participant-facing operations.
type EnrollmentService interface {
	Enroll(ctx context.Context, eventID int64, participantID string) (*Enrollment, error)
	CancelEnrollment(ctx context.Context, eventID int64, participantID string) error
	ListParticipantEnrollments(ctx context.Context, participantID string, page PaginationParams) ([]*EventView, int, error)
}

// Enrollment outcomes reported to EnrollmentMetrics.
const (
	EnrollmentOutcomeEnrolled      = "enrolled"
	EnrollmentOutcomeTicketPending = "ticket_pending"
	EnrollmentOutcomeRejected      = "rejected"
	EnrollmentOutcomeError         = "error"
)

// EnrollmentMetrics records enrollment and collaborator outcomes.
type EnrollmentMetrics interface {
	IncEnrollment(outcome string)
	IncCollaboratorFailure(collaborator, operation string)
}
