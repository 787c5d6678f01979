package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventenrollment/internal/domain"

	"github.com/lib/pq"
)

// Postgres error codes the repositories translate into domain errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

const eventColumns = `
		e.id, e.name, e.description, e.location, e.scheduled_at, e.capacity, e.status,
		e.organizer_id, e.created_at, e.updated_at, c.id, c.name,
		ARRAY(SELECT p.participant_id FROM event_participants p WHERE p.event_id = e.id ORDER BY p.enrolled_at, p.participant_id)
	`

const eventFrom = `
		FROM events e
		JOIN categories c ON c.id = e.category_id
	`

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*domain.Event, error) {
	e := &domain.Event{Category: &domain.Category{}}
	var status string
	var participants pq.StringArray
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Location, &e.ScheduledAt, &e.Capacity, &status,
		&e.OrganizerID, &e.CreatedAt, &e.UpdatedAt, &e.Category.ID, &e.Category.Name,
		&participants,
	)
	if err != nil {
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	e.ParticipantIDs = []string(participants)
	if e.ParticipantIDs == nil {
		e.ParticipantIDs = []string{}
	}
	return e, nil
}

func pqCode(err error) string {
	var perr *pq.Error
	if errors.As(err, &perr) {
		return string(perr.Code)
	}
	return ""
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, location, scheduled_at, capacity, status, organizer_id, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	if e.Category == nil {
		return fmt.Errorf("category: %w", domain.ErrNotFound)
	}
	err := r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.Location, e.ScheduledAt, e.Capacity, string(e.Status),
		e.OrganizerID, e.Category.ID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("category %d: %w", e.Category.ID, domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT` + eventColumns + eventFrom + `WHERE e.id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// lockEvent loads, under FOR UPDATE, the fields needed to evaluate write preconditions.
func lockEvent(ctx context.Context, tx *sql.Tx, id int64) (*domain.Event, error) {
	query := `
		SELECT e.id, e.capacity, e.status, e.organizer_id,
			ARRAY(SELECT p.participant_id FROM event_participants p WHERE p.event_id = e.id)
		FROM events e
		WHERE e.id = $1
		FOR UPDATE
	`
	e := &domain.Event{}
	var status string
	var participants pq.StringArray
	err := tx.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Capacity, &status, &e.OrganizerID, &participants)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	e.ParticipantIDs = []string(participants)
	return e, nil
}

// withLockedEvent runs fn in a transaction holding a row lock on the event.
// Every conditional write takes this lock, so they serialise per event.
func (r *eventRepository) withLockedEvent(ctx context.Context, id int64, fn func(tx *sql.Tx, locked *domain.Event) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	locked, err := lockEvent(ctx, tx, id)
	if err == nil {
		err = fn(tx, locked)
	}
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	if e.Category == nil {
		return fmt.Errorf("category: %w", domain.ErrNotFound)
	}
	return r.withLockedEvent(ctx, e.ID, func(tx *sql.Tx, locked *domain.Event) error {
		if e.Capacity < locked.EnrolledCount() {
			return domain.ErrCapacityBelowEnrollment
		}
		query := `
			UPDATE events
			SET name = $1, description = $2, location = $3, scheduled_at = $4, capacity = $5, category_id = $6, updated_at = $7
			WHERE id = $8
		`
		_, err := tx.ExecContext(ctx, query,
			e.Name, e.Description, e.Location, e.ScheduledAt, e.Capacity, e.Category.ID, e.UpdatedAt, e.ID,
		)
		if err != nil && pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("category %d: %w", e.Category.ID, domain.ErrNotFound)
		}
		return err
	})
}

func (r *eventRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.EventStatus) error {
	query := `UPDATE events SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`
	result, err := r.DB.ExecContext(ctx, query, string(to), id, string(from))
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrEventNotActive
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	return r.withLockedEvent(ctx, id, func(tx *sql.Tx, locked *domain.Event) error {
		if locked.EnrolledCount() > 0 {
			return domain.ErrEventHasParticipants
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
			if pqCode(err) == pqForeignKeyViolation {
				return domain.ErrEventHasParticipants
			}
			return err
		}
		return nil
	})
}

func (r *eventRepository) list(ctx context.Context, where string, arg any, page domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM events e WHERE ` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, arg).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + eventColumns + eventFrom + `WHERE ` + where + `
		ORDER BY e.scheduled_at, e.id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, arg, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) ListByStatus(ctx context.Context, status domain.EventStatus, page domain.PaginationParams) ([]*domain.Event, int, error) {
	return r.list(ctx, `e.status = $1`, string(status), page)
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string, page domain.PaginationParams) ([]*domain.Event, int, error) {
	return r.list(ctx, `e.organizer_id = $1`, organizerID, page)
}
