package postgres

import (
	"context"
	"database/sql"

	"eventenrollment/internal/domain"
)

// AddParticipant re-evaluates the enrollment preconditions while holding the
// event's row lock, then inserts the membership in the same transaction.
func (r *eventRepository) AddParticipant(ctx context.Context, eventID int64, participantID string) error {
	return r.withLockedEvent(ctx, eventID, func(tx *sql.Tx, locked *domain.Event) error {
		if err := locked.CheckEnrollment(participantID); err != nil {
			return err
		}
		query := `
			INSERT INTO event_participants (event_id, participant_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, eventID, participantID); err != nil {
			if pqCode(err) == pqUniqueViolation {
				return domain.ErrAlreadyEnrolled
			}
			return err
		}
		return nil
	})
}

func (r *eventRepository) RemoveParticipant(ctx context.Context, eventID int64, participantID string) error {
	query := `DELETE FROM event_participants WHERE event_id = $1 AND participant_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, participantID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ListByParticipantID(ctx context.Context, participantID string, page domain.PaginationParams) ([]*domain.Event, int, error) {
	where := `EXISTS (SELECT 1 FROM event_participants ep WHERE ep.event_id = e.id AND ep.participant_id = $1)`
	return r.list(ctx, where, participantID, page)
}
