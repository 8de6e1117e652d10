package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	schedulev1 "appointment-scheduler/internal/api/schedulev1"
	"appointment-scheduler/internal/model"
	"appointment-scheduler/internal/schedule"
)

func (h *Handler) CreateAppointment(ctx context.Context, req *schedulev1.CreateAppointmentRequest) (*schedulev1.CreateAppointmentResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}

	apt, err := h.appointments.Create(ctx, userID, schedule.Input{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   schedulev1.Time(req.StartTime),
		EndTime:     schedulev1.Time(req.EndTime),
	})
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &schedulev1.CreateAppointmentResponse{Appointment: schedulev1.FromModel(apt)}, nil
}

func (h *Handler) GetAppointment(ctx context.Context, req *schedulev1.GetAppointmentRequest) (*schedulev1.GetAppointmentResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}

	// someone else's appointment reads as not found
	apt, err := h.appointments.Get(ctx, req.ID, userID)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &schedulev1.GetAppointmentResponse{Appointment: schedulev1.FromModel(apt)}, nil
}

func (h *Handler) ListAppointments(ctx context.Context, req *schedulev1.ListAppointmentsRequest) (*schedulev1.ListAppointmentsResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}

	var apts []model.Appointment
	switch {
	case req.RangeStart == nil && req.RangeEnd == nil:
		apts, err = h.appointments.ListByOwner(ctx, userID)
	case req.RangeStart != nil && req.RangeEnd != nil:
		apts, err = h.appointments.ListByDateRange(ctx, userID, req.RangeStart.AsTime(), req.RangeEnd.AsTime())
	default:
		return nil, status.Error(codes.InvalidArgument, "rangeStart and rangeEnd must be set together")
	}
	if err != nil {
		return nil, h.toStatus(err)
	}

	return &schedulev1.ListAppointmentsResponse{Appointments: schedulev1.FromModels(apts)}, nil
}

func (h *Handler) UpdateAppointment(ctx context.Context, req *schedulev1.UpdateAppointmentRequest) (*schedulev1.UpdateAppointmentResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}

	apt, err := h.appointments.Update(ctx, req.ID, userID, schedule.Input{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   schedulev1.Time(req.StartTime),
		EndTime:     schedulev1.Time(req.EndTime),
	})
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &schedulev1.UpdateAppointmentResponse{Appointment: schedulev1.FromModel(apt)}, nil
}

func (h *Handler) DeleteAppointment(ctx context.Context, req *schedulev1.DeleteAppointmentRequest) (*schedulev1.DeleteAppointmentResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}

	if err := h.appointments.Delete(ctx, req.ID, userID); err != nil {
		return nil, h.toStatus(err)
	}
	return &schedulev1.DeleteAppointmentResponse{}, nil
}

func (h *Handler) CheckConflict(ctx context.Context, req *schedulev1.CheckConflictRequest) (*schedulev1.CheckConflictResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}

	dup, err := h.appointments.HasConflict(ctx, userID, schedulev1.Time(req.StartTime), schedulev1.Time(req.EndTime), req.ExcludeID)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &schedulev1.CheckConflictResponse{Conflict: dup}, nil
}
