package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"eventcalendar/internal/datetime"
	"eventcalendar/internal/domain"
)

const eventColumns = `id, title, date, start_time, end_time, description, location, category,
		notification_time, repeat_type, repeat_interval, repeat_end_date, series_id`

const insertEventQuery = `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

const updateEventQuery = `
		UPDATE events
		SET title = $2, date = $3, start_time = $4, end_time = $5, description = $6, location = $7,
			category = $8, notification_time = $9, repeat_type = $10, repeat_interval = $11,
			repeat_end_date = $12, series_id = $13, updated_at = NOW()
		WHERE id = $1
	`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func endDateArg(e *domain.Event) any {
	if e.Repeat.EndDate == nil {
		return nil
	}
	return *e.Repeat.EndDate
}

func repeatType(e *domain.Event) domain.RepeatType {
	if e.Repeat.Type == "" {
		return domain.RepeatNone
	}
	return e.Repeat.Type
}

func eventArgs(e *domain.Event) []any {
	return []any{
		e.ID, e.Title, e.Date, e.StartTime, e.EndTime, e.Description, e.Location, e.Category,
		e.NotificationTime, string(repeatType(e)), e.Repeat.Interval, endDateArg(e), nullString(e.Repeat.ID),
	}
}

func scanEvent(rows *sql.Rows) (*domain.Event, error) {
	e := &domain.Event{}
	var repeatType string
	var endDate datetime.Date
	var seriesID sql.NullString
	if err := rows.Scan(
		&e.ID, &e.Title, &e.Date, &e.StartTime, &e.EndTime, &e.Description, &e.Location, &e.Category,
		&e.NotificationTime, &repeatType, &e.Repeat.Interval, &endDate, &seriesID,
	); err != nil {
		return nil, err
	}
	e.Repeat.Type = domain.RepeatType(repeatType)
	if !endDate.IsZero() {
		e.Repeat.EndDate = &endDate
	}
	e.Repeat.ID = seriesID.String
	return e, nil
}

func (r *eventRepository) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date, start_time, id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) CreateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	created := e.Clone()
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if _, err := r.DB.ExecContext(ctx, insertEventQuery, eventArgs(created)...); err != nil {
		return nil, mapWriteError(err)
	}
	return created, nil
}

func (r *eventRepository) UpdateEvent(ctx context.Context, id string, e *domain.Event) error {
	updated := e.Clone()
	updated.ID = id
	res, err := r.DB.ExecContext(ctx, updateEventQuery, eventArgs(updated)...)
	if err != nil {
		return mapLookupError(err)
	}
	return requireRows(res)
}

func (r *eventRepository) DeleteEvent(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return mapLookupError(err)
	}
	return requireRows(res)
}

// CreateEventsBatch inserts events in one transaction, assigning IDs to
// events that have none.
func (r *eventRepository) CreateEventsBatch(ctx context.Context, events []*domain.Event) error {
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
	}
	return r.inTx(ctx, insertEventQuery, events, mapWriteError, nil)
}

// UpdateEventsBatch rewrites events in one transaction. A missing event
// rolls back the whole batch.
func (r *eventRepository) UpdateEventsBatch(ctx context.Context, events []*domain.Event) error {
	return r.inTx(ctx, updateEventQuery, events, mapLookupError, func(e *domain.Event, res sql.Result) error {
		if err := requireRows(res); err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
		return nil
	})
}

func (r *eventRepository) inTx(ctx context.Context, query string, events []*domain.Event, mapErr func(error) error, check func(*domain.Event, sql.Result) error) (err error) {
	if len(events) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		res, err := stmt.ExecContext(ctx, eventArgs(e)...)
		if err != nil {
			return mapErr(err)
		}
		if check == nil {
			continue
		}
		if err := check(e, res); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *eventRepository) UpdateSeriesBySeriesID(ctx context.Context, seriesID string, fields domain.SeriesUpdate) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, location = $4, category = $5, notification_time = $6, updated_at = NOW()
		WHERE series_id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, seriesID, fields.Title, fields.Description, fields.Location, fields.Category, fields.NotificationTime)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *eventRepository) DeleteSeriesBySeriesID(ctx context.Context, seriesID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE series_id = $1`, seriesID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// mapWriteError turns rejected rows into domain.ErrInvalidEvent.
func mapWriteError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code.Name() {
	case "check_violation", "not_null_violation", "invalid_datetime_format", "datetime_field_overflow",
		"invalid_text_representation":
		return fmt.Errorf("%w: %s", domain.ErrInvalidEvent, pqErr.Message)
	}
	return err
}

// mapLookupError is mapWriteError for statements keyed by event id. An id
// that is not a valid UUID cannot name a stored event.
func mapLookupError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "invalid_text_representation" {
		return domain.ErrNotFound
	}
	return mapWriteError(err)
}
