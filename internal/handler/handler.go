// Package handler implements the appointment.v1.ScheduleService gRPC
// server on top of the account and schedule services.
package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	schedulev1 "appointment-scheduler/internal/api/schedulev1"
	"appointment-scheduler/internal/account"
	"appointment-scheduler/internal/middleware"
	"appointment-scheduler/internal/schedule"
)

type Handler struct {
	schedulev1.UnimplementedScheduleServiceServer
	appointments *schedule.Service
	accounts     *account.Service
	log          *zap.Logger
}

func New(appointments *schedule.Service, accounts *account.Service, log *zap.Logger) *Handler {
	return &Handler{appointments: appointments, accounts: accounts, log: log}
}

// uid is the caller set by the auth interceptor.
func uid(ctx context.Context) (string, error) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "no token")
	}
	return id, nil
}

// toStatus maps service errors onto gRPC codes. Anything unexpected is
// logged and reported as Internal.
func (h *Handler) toStatus(err error) error {
	var ve *schedule.ValidationError
	switch {
	case errors.As(err, &ve):
		return validationStatus(ve)
	case errors.Is(err, schedule.ErrConflict):
		return status.Error(codes.AlreadyExists, schedule.ErrConflict.Error())
	case errors.Is(err, schedule.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, account.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, "registration failed")
	case errors.Is(err, account.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	h.log.Error("request failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

func validationStatus(ve *schedule.ValidationError) error {
	st := status.New(codes.InvalidArgument, ve.Error())
	br := &errdetails.BadRequest{}
	for _, v := range ve.Violations {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       v.Field,
			Description: v.Message,
		})
	}
	if detailed, err := st.WithDetails(br); err == nil {
		return detailed.Err()
	}
	return st.Err()
}
