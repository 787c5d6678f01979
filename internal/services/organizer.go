package services

import (
	"context"
	"errors"
	"log/slog"

	"eventenrollment/internal/domain"
)

// Placeholders used when the organizer's name cannot be resolved.
const (
	OrganizerNameNotFound    = "organizer not found"
	OrganizerNameUnavailable = "name unavailable (user service offline)"
)

const collaboratorIdentity = "identity"

// organizerNames enriches events with the organizer's display name. A lookup
// failure never fails the read; it yields one of the placeholders instead.
type organizerNames struct {
	users   domain.UserDirectory
	metrics domain.EnrollmentMetrics
	logger  *slog.Logger
}

func (o *organizerNames) lookup(ctx context.Context, organizerID string) string {
	if o.users == nil {
		return OrganizerNameUnavailable
	}
	user, err := o.users.GetUser(ctx, organizerID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return OrganizerNameNotFound
	case err != nil:
		o.metrics.IncCollaboratorFailure(collaboratorIdentity, "get_user")
		o.logger.WarnContext(ctx, "organizer lookup failed", "organizer_id", organizerID, "err", err)
		return OrganizerNameUnavailable
	case user == nil || user.Name == "":
		return OrganizerNameNotFound
	}
	return user.Name
}

func (o *organizerNames) view(ctx context.Context, event *domain.Event) *domain.EventView {
	return domain.NewEventView(event, o.lookup(ctx, event.OrganizerID))
}

// views enriches a page of events, looking each distinct organizer up once.
func (o *organizerNames) views(ctx context.Context, events []*domain.Event) []*domain.EventView {
	names := make(map[string]string)
	out := make([]*domain.EventView, 0, len(events))
	for _, ev := range events {
		name, ok := names[ev.OrganizerID]
		if !ok {
			name = o.lookup(ctx, ev.OrganizerID)
			names[ev.OrganizerID] = name
		}
		out = append(out, domain.NewEventView(ev, name))
	}
	return out
}

type noopMetrics struct{}

func (noopMetrics) IncEnrollment(string)                  {}
func (noopMetrics) IncCollaboratorFailure(string, string) {}

func metricsOrNoop(m domain.EnrollmentMetrics) domain.EnrollmentMetrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
