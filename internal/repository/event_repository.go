package repository

import (
	"context"

	"github.com/ignitefit/class-booking/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository handles booking audit event storage.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// Insert stores an event. Re-delivered events with a known id are ignored.
func (r *EventRepository) Insert(ctx context.Context, e *model.BookingEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO booking_events (id, type, class_id, user_name, event_date, count, occurred_at)
		 VALUES ($1, $2, $3, $4, $5::date, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		e.ID, string(e.Type), e.ClassID, e.UserName, e.Date, e.Count, e.OccurredAt,
	)
	return err
}

// Recent retrieves the newest events first.
func (r *EventRepository) Recent(ctx context.Context, limit int) ([]model.BookingEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, type, class_id, user_name, to_char(event_date, 'YYYY-MM-DD'), count, occurred_at
		 FROM booking_events ORDER BY occurred_at DESC, recorded_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evts []model.BookingEvent
	for rows.Next() {
		var e model.BookingEvent
		var typ string
		if err := rows.Scan(&e.ID, &typ, &e.ClassID, &e.UserName, &e.Date, &e.Count, &e.OccurredAt); err != nil {
			return nil, err
		}
		e.Type = model.EventType(typ)
		evts = append(evts, e)
	}
	return evts, rows.Err()
}
