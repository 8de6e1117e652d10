// Package schedule holds the appointment business rules: field validation,
// the per-owner non-overlap invariant, and the create/update/delete
// orchestration around them.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"appointment-scheduler/internal/model"
	"appointment-scheduler/internal/repository"
)

// Input is the caller-supplied part of an appointment.
type Input struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

// Observer is told the outcome of every mutating operation.
type Observer interface {
	Observe(op string, err error)
}

type nopObserver struct{}

func (nopObserver) Observe(string, error) {}

type Option func(*Service)

func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithClock replaces time.Now, which anchors Upcoming.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

type Service struct {
	repo      repository.AppointmentRepository
	validator *Validator
	log       *zap.Logger
	observer  Observer
	now       func() time.Time
}

func NewService(repo repository.AppointmentRepository, v *Validator, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		validator: v,
		log:       log,
		observer:  nopObserver{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) validate(ownerID string, in Input) error {
	violations := s.validator.Validate(in.Title, in.Description, in.StartTime, in.EndTime)
	if strings.TrimSpace(ownerID) == "" {
		violations = append([]FieldViolation{{Field: "owner_id", Message: "owner required"}}, violations...)
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// Create validates in, checks it against the owner's schedule and stores it.
func (s *Service) Create(ctx context.Context, ownerID string, in Input) (apt model.Appointment, err error) {
	defer func() { s.done("create", err) }()

	if err := s.validate(ownerID, in); err != nil {
		return model.Appointment{}, err
	}

	apt = model.Appointment{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
	}
	err = s.repo.InTx(ctx, func(tx repository.AppointmentTx) error {
		dup, err := HasConflict(ctx, tx, ownerID, in.StartTime, in.EndTime, "")
		if err != nil {
			return err
		}
		if dup {
			return ErrConflict
		}
		return tx.InsertAppointment(ctx, &apt)
	})
	if err != nil {
		return model.Appointment{}, translate(err)
	}

	s.log.Info("appointment created",
		zap.String("id", apt.ID),
		zap.String("owner", ownerID),
		zap.Time("start", apt.StartTime),
		zap.Time("end", apt.EndTime),
	)
	return apt, nil
}

// Update replaces the fields of appointment id. The stored record is left
// untouched when any step fails.
func (s *Service) Update(ctx context.Context, id, ownerID string, in Input) (apt model.Appointment, err error) {
	defer func() { s.done("update", err) }()

	err = s.repo.InTx(ctx, func(tx repository.AppointmentTx) error {
		cur, err := owned(ctx, tx, id, ownerID)
		if err != nil {
			return err
		}
		if err := s.validate(ownerID, in); err != nil {
			return err
		}

		// exclude self so an unchanged range does not collide with itself
		dup, err := HasConflict(ctx, tx, ownerID, in.StartTime, in.EndTime, id)
		if err != nil {
			return err
		}
		if dup {
			return ErrConflict
		}

		cur.Title = in.Title
		cur.Description = in.Description
		cur.StartTime = in.StartTime
		cur.EndTime = in.EndTime
		if err := tx.UpdateAppointment(ctx, &cur); err != nil {
			return err
		}
		apt = cur
		return nil
	})
	if err != nil {
		return model.Appointment{}, translate(err)
	}

	s.log.Info("appointment updated", zap.String("id", id), zap.String("owner", ownerID))
	return apt, nil
}

// Delete removes appointment id. Deleting twice yields ErrNotFound.
func (s *Service) Delete(ctx context.Context, id, ownerID string) (err error) {
	defer func() { s.done("delete", err) }()

	err = s.repo.InTx(ctx, func(tx repository.AppointmentTx) error {
		if _, err := owned(ctx, tx, id, ownerID); err != nil {
			return err
		}
		return tx.DeleteAppointment(ctx, id)
	})
	if err != nil {
		return translate(err)
	}

	s.log.Info("appointment deleted", zap.String("id", id), zap.String("owner", ownerID))
	return nil
}

// Get returns appointment id if ownerID owns it.
func (s *Service) Get(ctx context.Context, id, ownerID string) (model.Appointment, error) {
	apt, err := owned(ctx, s.repo, id, ownerID)
	return apt, translate(err)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]model.Appointment, error) {
	apts, err := s.repo.ListAppointments(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return apts, nil
}

// ListByDateRange returns the owner's appointments starting in [from, to).
func (s *Service) ListByDateRange(ctx context.Context, ownerID string, from, to time.Time) ([]model.Appointment, error) {
	if !to.After(from) {
		return []model.Appointment{}, nil
	}
	apts, err := s.repo.ListAppointmentsBetween(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list appointments between: %w", err)
	}
	return apts, nil
}

// Upcoming returns the owner's appointments starting within the next days days.
func (s *Service) Upcoming(ctx context.Context, ownerID string, days int) ([]model.Appointment, error) {
	from := s.now()
	return s.ListByDateRange(ctx, ownerID, from, from.AddDate(0, 0, days))
}

// HasConflict checks a candidate range without writing anything.
func (s *Service) HasConflict(ctx context.Context, ownerID string, start, end time.Time, excludeID string) (bool, error) {
	return HasConflict(ctx, s.repo, ownerID, start, end, excludeID)
}

func owned(ctx context.Context, r repository.AppointmentReader, id, ownerID string) (model.Appointment, error) {
	if id == "" {
		return model.Appointment{}, ErrNotFound
	}
	apt, err := r.GetAppointment(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}
	if apt.OwnerID != ownerID {
		return model.Appointment{}, ErrNotFound
	}
	return apt, nil
}

func (s *Service) done(op string, err error) {
	s.observer.Observe(op, err)
	switch {
	case err == nil, IsValidation(err), errors.Is(err, ErrConflict), errors.Is(err, ErrNotFound):
	default:
		s.log.Error("appointment "+op+" failed", zap.Error(err))
	}
}
