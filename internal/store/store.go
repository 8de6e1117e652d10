// Package store is the PostgreSQL implementation of the repository contracts.
package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"appointment-scheduler/internal/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	codeUniqueViolation      = "23505"
	codeExclusionViolation   = "23P01"
	codeSerializationFailure = "40001"
)

// queryer is satisfied by both *pgxpool.Pool and pgx.Tx.
type queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
	appointments
}

var (
	_ repository.AppointmentRepository  = (*Store)(nil)
	_ repository.UserRepository         = (*Store)(nil)
	_ repository.RefreshTokenRepository = (*Store)(nil)
)

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, appointments: appointments{q: pool}}
}

// Migrate applies the embedded schema files in name order. The files are
// idempotent so this runs on every start.
func (s *Store) Migrate(ctx context.Context) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		sql, err := migrations.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := s.pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("migrate %s: %w", name, err)
		}
	}
	return nil
}

// InTx runs fn in a SERIALIZABLE transaction so the overlap check and the
// write it guards see a consistent snapshot.
func (s *Store) InTx(ctx context.Context, fn func(tx repository.AppointmentTx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(appointments{q: tx}); err != nil {
		return translate(err)
	}
	return translate(tx.Commit(ctx))
}

// translate maps postgres error codes onto repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeExclusionViolation, codeSerializationFailure:
			return fmt.Errorf("%w: %s", repository.ErrConflict, pgErr.Message)
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
		}
	}
	return err
}
