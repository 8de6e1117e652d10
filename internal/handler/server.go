package handler

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"

	schedulev1 "appointment-scheduler/internal/api/schedulev1"
	"appointment-scheduler/internal/middleware"
)

// NewServer returns a grpc server that decodes schedulev1 messages, runs the logging,
// rate limit and auth interceptors in that order, and serves h.
func NewServer(h *Handler, secret string, rl *middleware.RateLimiter, log *zap.Logger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ForceServerCodec(schedulev1.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.UnaryLogger(log),
			middleware.RateLimit(rl),
			middleware.Auth(secret),
		),
	}, opts...)
	srv := grpc.NewServer(opts...)
	schedulev1.RegisterScheduleServiceServer(srv, h)
	return srv
}
