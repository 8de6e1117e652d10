package schedule

import (
	"errors"
	"strings"

	"appointment-scheduler/internal/repository"
)

var (
	// ErrNotFound covers both missing appointments and appointments owned by
	// someone else, so callers cannot fish for other users' data.
	ErrNotFound = errors.New("appointment not found")
	ErrConflict = errors.New("time conflicts with existing appointment")
)

// FieldViolation is one failed field rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every rule an input broke.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.Message
	}
	return out
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	}
	return err
}
