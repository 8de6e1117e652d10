package handler

import (
	"context"

	schedulev1 "appointment-scheduler/internal/api/schedulev1"
	"appointment-scheduler/internal/account"
)

func (h *Handler) Register(ctx context.Context, req *schedulev1.RegisterRequest) (*schedulev1.RegisterResponse, error) {
	sess, err := h.accounts.Register(ctx, account.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &schedulev1.RegisterResponse{UserID: sess.UserID, Token: sess.AccessToken}, nil
}

func (h *Handler) Login(ctx context.Context, req *schedulev1.LoginRequest) (*schedulev1.LoginResponse, error) {
	sess, err := h.accounts.Login(ctx, account.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &schedulev1.LoginResponse{Token: sess.AccessToken, UserID: sess.UserID, Name: sess.Name}, nil
}
