package services

import (
	"context"
	"slices"
	"sort"
	"sync"

	"eventenrollment/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository. It hands out copies so callers
// cannot mutate stored state without going through the repository, and it
// serialises writes the way a row lock would.
type fakeEventRepo struct {
	mu     sync.Mutex
	byID   map[int64]*domain.Event
	nextID int64
	err    error // if set, every call returns it
	addErr error // if set, AddParticipant returns it
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[int64]*domain.Event),
		nextID: 1,
	}
}

func cloneEvent(e *domain.Event) *domain.Event {
	c := *e
	c.ParticipantIDs = slices.Clone(e.ParticipantIDs)
	if c.ParticipantIDs == nil {
		c.ParticipantIDs = []string{}
	}
	if e.Category != nil {
		cat := *e.Category
		c.Category = &cat
	}
	return &c
}

// seed stores e as-is (assigning an ID when unset) and returns its ID.
func (f *fakeEventRepo) seed(e *domain.Event) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == 0 {
		e.ID = f.nextID
		f.nextID++
	}
	f.byID[e.ID] = cloneEvent(e)
	return e.ID
}

func (f *fakeEventRepo) stored(id int64) *domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil
	}
	return cloneEvent(e)
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = cloneEvent(e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if e.Capacity < cur.EnrolledCount() {
		return domain.ErrCapacityBelowEnrollment
	}
	cur.Name = e.Name
	cur.Description = e.Description
	cur.Location = e.Location
	cur.ScheduledAt = e.ScheduledAt
	cur.Capacity = e.Capacity
	cur.Category = e.Category
	cur.UpdatedAt = e.UpdatedAt
	return nil
}

func (f *fakeEventRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.EventStatus) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Status != from {
		return domain.ErrEventNotActive
	}
	cur.Status = to
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.EnrolledCount() > 0 {
		return domain.ErrEventHasParticipants
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) AddParticipant(ctx context.Context, eventID int64, participantID string) error {
	if f.err != nil {
		return f.err
	}
	if f.addErr != nil {
		return f.addErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := cur.CheckEnrollment(participantID); err != nil {
		return err
	}
	cur.ParticipantIDs = append(cur.ParticipantIDs, participantID)
	return nil
}

func (f *fakeEventRepo) RemoveParticipant(ctx context.Context, eventID int64, participantID string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	i := slices.Index(cur.ParticipantIDs, participantID)
	if i < 0 {
		return domain.ErrNotFound
	}
	cur.ParticipantIDs = slices.Delete(cur.ParticipantIDs, i, i+1)
	return nil
}

func (f *fakeEventRepo) list(page domain.PaginationParams, keep func(*domain.Event) bool) ([]*domain.Event, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*domain.Event
	for _, e := range f.byID {
		if keep(e) {
			all = append(all, cloneEvent(e))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	start := min(page.Offset(), total)
	end := min(start+page.Limit(), total)
	return all[start:end], total, nil
}

func (f *fakeEventRepo) ListByStatus(ctx context.Context, status domain.EventStatus, page domain.PaginationParams) ([]*domain.Event, int, error) {
	return f.list(page, func(e *domain.Event) bool { return e.Status == status })
}

func (f *fakeEventRepo) ListByOrganizerID(ctx context.Context, organizerID string, page domain.PaginationParams) ([]*domain.Event, int, error) {
	return f.list(page, func(e *domain.Event) bool { return e.OrganizerID == organizerID })
}

func (f *fakeEventRepo) ListByParticipantID(ctx context.Context, participantID string, page domain.PaginationParams) ([]*domain.Event, int, error) {
	return f.list(page, func(e *domain.Event) bool { return e.HasParticipant(participantID) })
}

type fakeCategoryRepo struct {
	byID   map[int64]*domain.Category
	nextID int64
	err    error
}

func newFakeCategoryRepo(categories ...*domain.Category) *fakeCategoryRepo {
	f := &fakeCategoryRepo{byID: make(map[int64]*domain.Category), nextID: 1}
	for _, c := range categories {
		f.byID[c.ID] = c
		if c.ID >= f.nextID {
			f.nextID = c.ID + 1
		}
	}
	return f
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if f.err != nil {
		return f.err
	}
	c.ID = f.nextID
	f.nextID++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Category
	for _, c := range f.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeUserDirectory struct {
	mu    sync.Mutex
	users map[string]*domain.UserProfile
	err   error
	calls int
}

func (f *fakeUserDirectory) GetUser(ctx context.Context, userID string) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

type fakeTicketReserver struct {
	mu      sync.Mutex
	err     error
	calls   int
	methods []domain.PaymentMethod
}

func (f *fakeTicketReserver) Reserve(ctx context.Context, eventID int64, participantID string, method domain.PaymentMethod) (*domain.TicketReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.methods = append(f.methods, method)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TicketReservation{TicketID: int64(f.calls), Code: "TCK-" + participantID, Status: "RESERVED"}, nil
}

type fakeMetrics struct {
	mu           sync.Mutex
	enrollments  map[string]int
	collabErrors map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{enrollments: map[string]int{}, collabErrors: map[string]int{}}
}

func (m *fakeMetrics) IncEnrollment(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enrollments[outcome]++
}

func (m *fakeMetrics) IncCollaboratorFailure(collaborator, operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collabErrors[collaborator+"/"+operation]++
}
