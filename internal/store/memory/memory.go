// Package memory is a map-backed implementation of the repository contracts.
// A transaction holds the store lock for its whole duration and works on a
// copy of the appointment table that replaces the original on success.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"appointment-scheduler/internal/model"
	"appointment-scheduler/internal/repository"
)

var (
	_ repository.AppointmentRepository  = (*Store)(nil)
	_ repository.UserRepository         = (*Store)(nil)
	_ repository.RefreshTokenRepository = (*Store)(nil)
)

type Store struct {
	mu           sync.RWMutex
	appointments table
	users        map[string]model.User
	emails       map[string]string
	tokens       map[string]model.RefreshToken
	now          func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		appointments: table{},
		users:        make(map[string]model.User),
		emails:       make(map[string]string),
		tokens:       make(map[string]model.RefreshToken),
		now:          time.Now,
	}
}

func (s *Store) InTx(ctx context.Context, fn func(tx repository.AppointmentTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	staged := &txView{rows: maps.Clone(s.appointments), now: s.now}
	if err := fn(staged); err != nil {
		return err
	}
	s.appointments = staged.rows
	return nil
}

func (s *Store) HasOverlap(ctx context.Context, ownerID string, start, end time.Time, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointments.hasOverlap(ownerID, start, end, excludeID), nil
}

func (s *Store) GetAppointment(ctx context.Context, id string) (model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointments.get(id)
}

func (s *Store) ListAppointments(ctx context.Context, ownerID string) ([]model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointments.filter(func(a model.Appointment) bool {
		return a.OwnerID == ownerID
	}), nil
}

func (s *Store) ListAppointmentsBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointments.between(ownerID, from, to), nil
}

// table maps appointment id to record.
type table map[string]model.Appointment

func (t table) get(id string) (model.Appointment, error) {
	a, ok := t[id]
	if !ok {
		return model.Appointment{}, repository.ErrNotFound
	}
	return a, nil
}

func (t table) hasOverlap(ownerID string, start, end time.Time, excludeID string) bool {
	for id, a := range t {
		if a.OwnerID != ownerID || (excludeID != "" && id == excludeID) {
			continue
		}
		if a.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func (t table) between(ownerID string, from, to time.Time) []model.Appointment {
	return t.filter(func(a model.Appointment) bool {
		return a.OwnerID == ownerID && !a.StartTime.Before(from) && a.StartTime.Before(to)
	})
}

// filter returns the matching rows ordered by start time.
func (t table) filter(keep func(model.Appointment) bool) []model.Appointment {
	out := []model.Appointment{}
	for _, a := range t {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// txView is handed to InTx callbacks. The store lock is already held.
type txView struct {
	rows table
	now  func() time.Time
}

func (v *txView) HasOverlap(ctx context.Context, ownerID string, start, end time.Time, excludeID string) (bool, error) {
	return v.rows.hasOverlap(ownerID, start, end, excludeID), nil
}

func (v *txView) GetAppointment(ctx context.Context, id string) (model.Appointment, error) {
	return v.rows.get(id)
}

func (v *txView) ListAppointments(ctx context.Context, ownerID string) ([]model.Appointment, error) {
	return v.rows.filter(func(a model.Appointment) bool { return a.OwnerID == ownerID }), nil
}

func (v *txView) ListAppointmentsBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Appointment, error) {
	return v.rows.between(ownerID, from, to), nil
}

func (v *txView) InsertAppointment(ctx context.Context, a *model.Appointment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if _, exists := v.rows[a.ID]; exists {
		return repository.ErrDuplicate
	}
	if v.rows.hasOverlap(a.OwnerID, a.StartTime, a.EndTime, "") {
		return repository.ErrConflict
	}
	now := v.now()
	a.CreatedAt = now
	a.UpdatedAt = now
	v.rows[a.ID] = *a
	return nil
}

func (v *txView) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	cur, ok := v.rows[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if v.rows.hasOverlap(cur.OwnerID, a.StartTime, a.EndTime, a.ID) {
		return repository.ErrConflict
	}
	cur.Title = a.Title
	cur.Description = a.Description
	cur.StartTime = a.StartTime
	cur.EndTime = a.EndTime
	cur.UpdatedAt = v.now()
	v.rows[a.ID] = cur
	*a = cur
	return nil
}

func (v *txView) DeleteAppointment(ctx context.Context, id string) error {
	if _, ok := v.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(v.rows, id)
	return nil
}
