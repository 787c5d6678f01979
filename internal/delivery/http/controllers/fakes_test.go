package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"eventenrollment/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err        error
	view       *domain.EventView
	list       []*domain.EventView
	total      int
	lastOp     string
	lastID     int64
	lastUserID string
	lastInput  domain.EventInput
	lastPage   domain.PaginationParams
}

func (f *fakeEventService) record(op string, id int64, userID string) {
	f.lastOp, f.lastID, f.lastUserID = op, id, userID
}

func (f *fakeEventService) CreateEvent(_ context.Context, organizerID string, in domain.EventInput) (*domain.EventView, error) {
	f.record("create", 0, organizerID)
	f.lastInput = in
	return f.view, f.err
}

func (f *fakeEventService) UpdateEvent(_ context.Context, eventID int64, organizerID string, in domain.EventInput) (*domain.EventView, error) {
	f.record("update", eventID, organizerID)
	f.lastInput = in
	return f.view, f.err
}

func (f *fakeEventService) DeleteEvent(_ context.Context, eventID int64, organizerID string) error {
	f.record("delete", eventID, organizerID)
	return f.err
}

func (f *fakeEventService) CancelEvent(_ context.Context, eventID int64, organizerID string) (*domain.EventView, error) {
	f.record("cancel", eventID, organizerID)
	return f.view, f.err
}

func (f *fakeEventService) GetEvent(_ context.Context, eventID int64) (*domain.EventView, error) {
	f.record("get", eventID, "")
	return f.view, f.err
}

func (f *fakeEventService) ListAvailableEvents(_ context.Context, page domain.PaginationParams) ([]*domain.EventView, int, error) {
	f.record("list", 0, "")
	f.lastPage = page
	return f.list, f.total, f.err
}

func (f *fakeEventService) ListOrganizerEvents(_ context.Context, organizerID string, page domain.PaginationParams) ([]*domain.EventView, int, error) {
	f.record("list_organizer", 0, organizerID)
	f.lastPage = page
	return f.list, f.total, f.err
}

// fakeEnrollmentService implements domain.EnrollmentService for handler tests.
type fakeEnrollmentService struct {
	err             error
	enrollment      *domain.Enrollment
	list            []*domain.EventView
	total           int
	lastEventID     int64
	lastParticipant string
	lastPage        domain.PaginationParams
}

func (f *fakeEnrollmentService) Enroll(_ context.Context, eventID int64, participantID string) (*domain.Enrollment, error) {
	f.lastEventID, f.lastParticipant = eventID, participantID
	if f.err != nil {
		return nil, f.err
	}
	return f.enrollment, nil
}

func (f *fakeEnrollmentService) CancelEnrollment(_ context.Context, eventID int64, participantID string) error {
	f.lastEventID, f.lastParticipant = eventID, participantID
	return f.err
}

func (f *fakeEnrollmentService) ListParticipantEnrollments(_ context.Context, participantID string, page domain.PaginationParams) ([]*domain.EventView, int, error) {
	f.lastParticipant, f.lastPage = participantID, page
	return f.list, f.total, f.err
}

// fakeCategoryService implements domain.CategoryService for handler tests.
type fakeCategoryService struct {
	err      error
	list     []*domain.Category
	lastName string
}

func (f *fakeCategoryService) CreateCategory(_ context.Context, name string) (*domain.Category, error) {
	f.lastName = name
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Category{ID: 1, Name: name}, nil
}

func (f *fakeCategoryService) ListCategories(context.Context) ([]*domain.Category, error) {
	return f.list, f.err
}

func sampleView(id int64) *domain.EventView {
	return &domain.EventView{
		ID:             id,
		Name:           "GopherCon",
		Description:    "Talks and workshops",
		Location:       "Berlin",
		ScheduledAt:    time.Date(2030, 6, 1, 18, 0, 0, 0, time.UTC),
		Capacity:       10,
		AvailableSeats: 4,
		Status:         domain.EventStatusActive,
		OrganizerID:    "user-123",
		OrganizerName:  "Ada Lovelace",
		Category:       &domain.Category{ID: 1, Name: "Conferences"},
	}
}
