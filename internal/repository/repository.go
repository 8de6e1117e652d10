// Package repository declares the persistence contracts shared by the
// postgres and in-memory stores.
package repository

import (
	"context"
	"errors"
	"time"

	"appointment-scheduler/internal/model"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when the store itself rejects a write because
	// it would break the non-overlap invariant or lost a serialization race.
	ErrConflict  = errors.New("write conflicts with concurrent or existing data")
	ErrDuplicate = errors.New("duplicate record")
)

// OverlapFinder answers the conflict query.
type OverlapFinder interface {
	// HasOverlap reports whether any appointment of ownerID other than
	// excludeID intersects [start, end). An empty excludeID excludes nothing.
	HasOverlap(ctx context.Context, ownerID string, start, end time.Time, excludeID string) (bool, error)
}

// AppointmentReader holds the read-only queries.
type AppointmentReader interface {
	OverlapFinder
	GetAppointment(ctx context.Context, id string) (model.Appointment, error)
	ListAppointments(ctx context.Context, ownerID string) ([]model.Appointment, error)
	// ListAppointmentsBetween returns appointments starting in [from, to).
	ListAppointmentsBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Appointment, error)
}

// AppointmentTx is the view of the store inside one transaction.
type AppointmentTx interface {
	AppointmentReader
	// InsertAppointment assigns ID, CreatedAt and UpdatedAt.
	InsertAppointment(ctx context.Context, a *model.Appointment) error
	// UpdateAppointment rewrites title, description and times, and refreshes UpdatedAt.
	UpdateAppointment(ctx context.Context, a *model.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
}

// AppointmentRepository runs fn in an isolated transaction. If fn returns an
// error nothing it wrote is kept.
type AppointmentRepository interface {
	AppointmentReader
	InTx(ctx context.Context, fn func(tx AppointmentTx) error) error
}

type UserRepository interface {
	// CreateUser returns ErrDuplicate when the email is taken.
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (model.User, error)
	UserByID(ctx context.Context, id string) (model.User, error)
}

type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (model.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
	// PurgeRefreshTokens deletes tokens that expired before cutoff and revoked
	// tokens issued before cutoff.
	PurgeRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error)
}
