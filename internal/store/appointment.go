package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"appointment-scheduler/internal/model"
	"appointment-scheduler/internal/repository"
)

const appointmentColumns = `id, owner_id, title, description, start_time, end_time, created_at, updated_at`

// appointments runs the appointment queries against either the pool or an
// open transaction.
type appointments struct {
	q queryer
}

var _ repository.AppointmentTx = appointments{}

func (s appointments) InsertAppointment(ctx context.Context, a *model.Appointment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	err := s.q.QueryRow(ctx,
		`INSERT INTO appointments (id, owner_id, title, description, start_time, end_time)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at, updated_at`,
		a.ID, a.OwnerID, a.Title, a.Description, a.StartTime, a.EndTime,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	return translate(err)
}

func (s appointments) HasOverlap(ctx context.Context, ownerID string, start, end time.Time, excludeID string) (bool, error) {
	q := `SELECT EXISTS(
		SELECT 1 FROM appointments
		WHERE owner_id = $1
		  AND start_time < $3
		  AND end_time > $2`

	args := []any{ownerID, start, end}

	// an id that is not a uuid matches no row, so there is nothing to exclude
	if _, err := uuid.Parse(excludeID); err == nil {
		q += ` AND id != $4`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	err := s.q.QueryRow(ctx, q, args...).Scan(&exists)
	return exists, translate(err)
}

func (s appointments) ListAppointments(ctx context.Context, ownerID string) ([]model.Appointment, error) {
	return s.list(ctx,
		`SELECT `+appointmentColumns+`
		 FROM appointments
		 WHERE owner_id = $1
		 ORDER BY start_time`, ownerID)
}

func (s appointments) ListAppointmentsBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Appointment, error) {
	return s.list(ctx,
		`SELECT `+appointmentColumns+`
		 FROM appointments
		 WHERE owner_id = $1
		   AND start_time >= $2 AND start_time < $3
		 ORDER BY start_time`, ownerID, from, to)
}

func (s appointments) list(ctx context.Context, sql string, args ...any) ([]model.Appointment, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := []model.Appointment{}
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.OwnerID, &a.Title, &a.Description, &a.StartTime, &a.EndTime,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s appointments) GetAppointment(ctx context.Context, id string) (model.Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		// not a uuid, so it cannot name a row
		return model.Appointment{}, repository.ErrNotFound
	}
	var a model.Appointment
	err := s.q.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.OwnerID, &a.Title, &a.Description, &a.StartTime, &a.EndTime,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return model.Appointment{}, translate(err)
	}
	return a, nil
}

func (s appointments) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	err := s.q.QueryRow(ctx,
		`UPDATE appointments
		 SET title=$1, description=$2, start_time=$3, end_time=$4, updated_at=NOW()
		 WHERE id=$5
		 RETURNING updated_at`,
		a.Title, a.Description, a.StartTime, a.EndTime, a.ID,
	).Scan(&a.UpdatedAt)
	return translate(err)
}

func (s appointments) DeleteAppointment(ctx context.Context, id string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM appointments WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
