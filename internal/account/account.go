// Package account registers users and issues their access and refresh
// tokens. The user id it hands out is the owner id every appointment
// operation is scoped by.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"appointment-scheduler/internal/auth"
	"appointment-scheduler/internal/model"
	"appointment-scheduler/internal/repository"
	"appointment-scheduler/internal/schedule"
)

var (
	ErrEmailTaken         = errors.New("registration failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBadRefreshToken    = errors.New("invalid refresh token")
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is what a successful register, login or refresh hands back.
type Session struct {
	UserID           string
	Name             string
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Service struct {
	users    repository.UserRepository
	tokens   repository.RefreshTokenRepository
	cfg      Config
	validate *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

func NewService(users repository.UserRepository, tokens repository.RefreshTokenRepository, cfg Config, log *zap.Logger) *Service {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:    users,
		tokens:   tokens,
		cfg:      cfg,
		validate: validator.New(),
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if err := s.check(in); err != nil {
		return Session{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return Session{}, &schedule.ValidationError{Violations: []schedule.FieldViolation{
			{Field: "password", Message: "password must be at most 72 bytes"},
		}}
	}
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{Email: in.Email, PasswordHash: hash, Name: in.Name}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// don't reveal which emails exist
			return Session{}, ErrEmailTaken
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.String("user_id", u.ID))
	return s.issue(ctx, *u)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.check(in); err != nil {
		return Session{}, err
	}

	u, err := s.users.UserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("load user: %w", err)
	}
	if !auth.PasswordMatches(u.PasswordHash, in.Password) {
		return Session{}, ErrInvalidCredentials
	}
	return s.issue(ctx, u)
}

// Refresh trades a live refresh token for a new pair. Presenting a token
// that was already rotated revokes every token of its user.
func (s *Service) Refresh(ctx context.Context, raw string) (Session, error) {
	if raw == "" {
		return Session{}, ErrBadRefreshToken
	}
	rt, err := s.tokens.GetRefreshTokenByHash(ctx, auth.RefreshDigest(raw))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Session{}, ErrBadRefreshToken
		}
		return Session{}, fmt.Errorf("load refresh token: %w", err)
	}
	if rt.Revoked {
		return Session{}, s.reused(ctx, rt.UserID)
	}
	if !s.now().Before(rt.ExpiresAt) {
		return Session{}, ErrBadRefreshToken
	}

	u, err := s.users.UserByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Session{}, ErrBadRefreshToken
		}
		return Session{}, fmt.Errorf("load user: %w", err)
	}

	access, err := auth.NewAccessToken(u.ID, s.cfg.Secret, s.cfg.AccessTTL)
	if err != nil {
		return Session{}, fmt.Errorf("sign access token: %w", err)
	}
	next, hash, err := auth.NewRefreshToken()
	if err != nil {
		return Session{}, fmt.Errorf("generate refresh token: %w", err)
	}
	exp := s.now().Add(s.cfg.RefreshTTL)
	if err := s.tokens.RotateRefreshToken(ctx, rt.ID, uuid.New().String(), u.ID, hash, exp); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// someone else rotated it between our read and write
			return Session{}, s.reused(ctx, rt.UserID)
		}
		return Session{}, fmt.Errorf("rotate refresh token: %w", err)
	}

	return Session{UserID: u.ID, Name: u.Name, AccessToken: access, RefreshToken: next, RefreshExpiresAt: exp}, nil
}

// Logout revokes every refresh token of userID. Access tokens stay valid
// until they expire.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.tokens.RevokeAllRefreshTokens(ctx, userID); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	s.log.Info("user logged out", zap.String("user_id", userID))
	return nil
}

// reused revokes every token of userID after a rotated token came back.
func (s *Service) reused(ctx context.Context, userID string) error {
	s.log.Warn("refresh token reuse", zap.String("user_id", userID))
	if err := s.tokens.RevokeAllRefreshTokens(ctx, userID); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return ErrBadRefreshToken
}

func (s *Service) issue(ctx context.Context, u model.User) (Session, error) {
	access, err := auth.NewAccessToken(u.ID, s.cfg.Secret, s.cfg.AccessTTL)
	if err != nil {
		return Session{}, fmt.Errorf("sign access token: %w", err)
	}
	raw, hash, err := auth.NewRefreshToken()
	if err != nil {
		return Session{}, fmt.Errorf("generate refresh token: %w", err)
	}
	exp := s.now().Add(s.cfg.RefreshTTL)
	if _, err := s.tokens.CreateRefreshToken(ctx, u.ID, hash, exp); err != nil {
		return Session{}, fmt.Errorf("store refresh token: %w", err)
	}
	return Session{UserID: u.ID, Name: u.Name, AccessToken: access, RefreshToken: raw, RefreshExpiresAt: exp}, nil
}

// check runs the struct tags and reports failures the same way appointment
// validation does.
func (s *Service) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &schedule.ValidationError{}
	for _, fe := range fieldErrs {
		out.Violations = append(out.Violations, schedule.FieldViolation{
			Field:   strings.ToLower(fe.Field()),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	default:
		return field + " is invalid"
	}
}
