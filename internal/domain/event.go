package domain

import (
	"context"
	"slices"
	"strings"
	"time"
)

// EventStatus is the lifecycle state of an event. Only ACTIVE events accept enrollments.
type EventStatus string

const (
	EventStatusActive    EventStatus = "ACTIVE"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

// Valid reports whether s is a known status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusActive, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// Event is a capacity-bounded activity owned by an organizer.
// ParticipantIDs has set semantics; the store enforces uniqueness.
type Event struct {
	ID             int64
	Name           string
	Description    string
	Location       string
	ScheduledAt    time.Time
	Capacity       int
	Status         EventStatus
	OrganizerID    string
	Category       *Category
	ParticipantIDs []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewEvent returns an ACTIVE event with no participants. ID is set by the repository on create.
func NewEvent(organizerID string, in EventInput, category *Category, now time.Time) *Event {
	return &Event{
		Name:           in.Name,
		Description:    in.Description,
		Location:       in.Location,
		ScheduledAt:    in.ScheduledAt,
		Capacity:       in.Capacity,
		Status:         EventStatusActive,
		OrganizerID:    organizerID,
		Category:       category,
		ParticipantIDs: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// EnrolledCount returns the number of enrolled participants.
func (e *Event) EnrolledCount() int {
	return len(e.ParticipantIDs)
}

// AvailableSeats returns capacity minus enrolled participants, never negative.
func (e *Event) AvailableSeats() int {
	return max(0, e.Capacity-e.EnrolledCount())
}

// HasParticipant reports whether participantID is enrolled.
func (e *Event) HasParticipant(participantID string) bool {
	return slices.Contains(e.ParticipantIDs, participantID)
}

// CheckEnrollment evaluates the enrollment preconditions in a fixed order:
// duplicate membership, capacity, then status.
func (e *Event) CheckEnrollment(participantID string) error {
	if e.HasParticipant(participantID) {
		return ErrAlreadyEnrolled
	}
	if e.EnrolledCount() >= e.Capacity {
		return ErrEventFull
	}
	if e.Status != EventStatusActive {
		return ErrEventNotOpen
	}
	return nil
}

// Apply overwrites the mutable fields. Status, organizer and participants are left untouched.
func (e *Event) Apply(in EventInput, category *Category, now time.Time) {
	e.Name = in.Name
	e.Description = in.Description
	e.Location = in.Location
	e.ScheduledAt = in.ScheduledAt
	e.Capacity = in.Capacity
	e.Category = category
	e.UpdatedAt = now
}

// IsOwner is the single authorization predicate for organizer-only operations.
func IsOwner(principalID string, e *Event) bool {
	return e != nil && principalID != "" && e.OrganizerID == principalID
}

// EventInput carries the fields an organizer supplies on create and update.
type EventInput struct {
	Name        string
	Description string
	Location    string
	ScheduledAt time.Time
	Capacity    int
	CategoryID  int64
}

// Validate returns error messages for the domain rules; nil means valid.
func (in EventInput) Validate(now time.Time) []string {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, "description is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		errs = append(errs, "location is required")
	}
	if in.ScheduledAt.IsZero() {
		errs = append(errs, "scheduled_at is required")
	} else if !in.ScheduledAt.After(now) {
		errs = append(errs, "scheduled_at must be in the future")
	}
	if in.Capacity < 1 {
		errs = append(errs, "capacity must be at least 1")
	}
	if in.CategoryID < 1 {
		errs = append(errs, "category_id is required")
	}
	return errs
}

// EventView is the read model returned to callers: the event plus remaining seats
// and the organizer's display name.
// swagger:model EventView
type EventView struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Location       string      `json:"location"`
	ScheduledAt    time.Time   `json:"scheduled_at"`
	Capacity       int         `json:"capacity"`
	AvailableSeats int         `json:"available_seats"`
	Status         EventStatus `json:"status"`
	OrganizerID    string      `json:"organizer_id"`
	OrganizerName  string      `json:"organizer_name"`
	Category       *Category   `json:"category"`
}

// NewEventView builds the read model for e with the given organizer name.
func NewEventView(e *Event, organizerName string) *EventView {
	return &EventView{
		ID:             e.ID,
		Name:           e.Name,
		Description:    e.Description,
		Location:       e.Location,
		ScheduledAt:    e.ScheduledAt,
		Capacity:       e.Capacity,
		AvailableSeats: e.AvailableSeats(),
		Status:         e.Status,
		OrganizerID:    e.OrganizerID,
		OrganizerName:  organizerName,
		Category:       e.Category,
	}
}

// EventRepository defines the interface for event storage.
//
// Update, Delete, UpdateStatus and AddParticipant are conditional writes: the
// precondition is re-checked by the store at write time, so concurrent callers
// cannot push an event past its capacity or orphan an enrollment.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	// Update persists the mutable fields. Returns ErrCapacityBelowEnrollment when
	// the new capacity is lower than the current enrollment count.
	Update(ctx context.Context, event *Event) error
	// UpdateStatus moves the event from one status to another. Returns
	// ErrEventNotActive when the stored status is not from.
	UpdateStatus(ctx context.Context, id int64, from, to EventStatus) error
	// Delete removes the event. Returns ErrEventHasParticipants when anyone is enrolled.
	Delete(ctx context.Context, id int64) error
	// AddParticipant atomically re-evaluates Event.CheckEnrollment and inserts the membership.
	AddParticipant(ctx context.Context, eventID int64, participantID string) error
	RemoveParticipant(ctx context.Context, eventID int64, participantID string) error
	ListByStatus(ctx context.Context, status EventStatus, page PaginationParams) ([]*Event, int, error)
	ListByOrganizerID(ctx context.Context, organizerID string, page PaginationParams) ([]*Event, int, error)
	ListByParticipantID(ctx context.Context, participantID string, page PaginationParams) ([]*Event, int, error)
}

// EventService defines organizer and public event operations.
type EventService interface {
	CreateEvent(ctx context.Context, organizerID string, in EventInput) (*EventView, error)
	UpdateEvent(ctx context.Context, eventID int64, organizerID string, in EventInput) (*EventView, error)
	DeleteEvent(ctx context.Context, eventID int64, organizerID string) error
	CancelEvent(ctx context.Context, eventID int64, organizerID string) (*EventView, error)
	GetEvent(ctx context.Context, eventID int64) (*EventView, error)
	ListAvailableEvents(ctx context.Context, page PaginationParams) ([]*EventView, int, error)
	ListOrganizerEvents(ctx context.Context, organizerID string, page PaginationParams) ([]*EventView, int, error)
}
