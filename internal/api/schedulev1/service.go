// Package schedulev1 is the appointment.v1.ScheduleService wire contract:
// message types, the server and client interfaces, and the service
// descriptor that registers a server with grpc.
package schedulev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "appointment.v1.ScheduleService"

const (
	ScheduleService_Register_FullMethodName          = "/appointment.v1.ScheduleService/Register"
	ScheduleService_Login_FullMethodName             = "/appointment.v1.ScheduleService/Login"
	ScheduleService_CreateAppointment_FullMethodName = "/appointment.v1.ScheduleService/CreateAppointment"
	ScheduleService_GetAppointment_FullMethodName    = "/appointment.v1.ScheduleService/GetAppointment"
	ScheduleService_ListAppointments_FullMethodName  = "/appointment.v1.ScheduleService/ListAppointments"
	ScheduleService_UpdateAppointment_FullMethodName = "/appointment.v1.ScheduleService/UpdateAppointment"
	ScheduleService_DeleteAppointment_FullMethodName = "/appointment.v1.ScheduleService/DeleteAppointment"
	ScheduleService_CheckConflict_FullMethodName     = "/appointment.v1.ScheduleService/CheckConflict"
)

type ScheduleServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	CreateAppointment(context.Context, *CreateAppointmentRequest) (*CreateAppointmentResponse, error)
	GetAppointment(context.Context, *GetAppointmentRequest) (*GetAppointmentResponse, error)
	ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error)
	UpdateAppointment(context.Context, *UpdateAppointmentRequest) (*UpdateAppointmentResponse, error)
	DeleteAppointment(context.Context, *DeleteAppointmentRequest) (*DeleteAppointmentResponse, error)
	CheckConflict(context.Context, *CheckConflictRequest) (*CheckConflictResponse, error)
}

// UnimplementedScheduleServiceServer can be embedded to satisfy
// ScheduleServiceServer for methods a server does not provide.
type UnimplementedScheduleServiceServer struct{}

func (UnimplementedScheduleServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedScheduleServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedScheduleServiceServer) CreateAppointment(context.Context, *CreateAppointmentRequest) (*CreateAppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAppointment not implemented")
}
func (UnimplementedScheduleServiceServer) GetAppointment(context.Context, *GetAppointmentRequest) (*GetAppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAppointment not implemented")
}
func (UnimplementedScheduleServiceServer) ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAppointments not implemented")
}
func (UnimplementedScheduleServiceServer) UpdateAppointment(context.Context, *UpdateAppointmentRequest) (*UpdateAppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateAppointment not implemented")
}
func (UnimplementedScheduleServiceServer) DeleteAppointment(context.Context, *DeleteAppointmentRequest) (*DeleteAppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteAppointment not implemented")
}
func (UnimplementedScheduleServiceServer) CheckConflict(context.Context, *CheckConflictRequest) (*CheckConflictResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckConflict not implemented")
}

func RegisterScheduleServiceServer(s grpc.ServiceRegistrar, srv ScheduleServiceServer) {
	s.RegisterService(&ScheduleService_ServiceDesc, srv)
}

// unary adapts one typed server method to a grpc.MethodDesc.
func unary[Req, Resp any](name, fullMethod string, call func(ScheduleServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ScheduleServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ScheduleServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ScheduleService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScheduleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", ScheduleService_Register_FullMethodName, ScheduleServiceServer.Register),
		unary("Login", ScheduleService_Login_FullMethodName, ScheduleServiceServer.Login),
		unary("CreateAppointment", ScheduleService_CreateAppointment_FullMethodName, ScheduleServiceServer.CreateAppointment),
		unary("GetAppointment", ScheduleService_GetAppointment_FullMethodName, ScheduleServiceServer.GetAppointment),
		unary("ListAppointments", ScheduleService_ListAppointments_FullMethodName, ScheduleServiceServer.ListAppointments),
		unary("UpdateAppointment", ScheduleService_UpdateAppointment_FullMethodName, ScheduleServiceServer.UpdateAppointment),
		unary("DeleteAppointment", ScheduleService_DeleteAppointment_FullMethodName, ScheduleServiceServer.DeleteAppointment),
		unary("CheckConflict", ScheduleService_CheckConflict_FullMethodName, ScheduleServiceServer.CheckConflict),
	},
	Streams: []grpc.StreamDesc{},
}

type ScheduleServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	CreateAppointment(ctx context.Context, in *CreateAppointmentRequest, opts ...grpc.CallOption) (*CreateAppointmentResponse, error)
	GetAppointment(ctx context.Context, in *GetAppointmentRequest, opts ...grpc.CallOption) (*GetAppointmentResponse, error)
	ListAppointments(ctx context.Context, in *ListAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error)
	UpdateAppointment(ctx context.Context, in *UpdateAppointmentRequest, opts ...grpc.CallOption) (*UpdateAppointmentResponse, error)
	DeleteAppointment(ctx context.Context, in *DeleteAppointmentRequest, opts ...grpc.CallOption) (*DeleteAppointmentResponse, error)
	CheckConflict(ctx context.Context, in *CheckConflictRequest, opts ...grpc.CallOption) (*CheckConflictResponse, error)
}

type scheduleServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewScheduleServiceClient returns a client that sends protobuf-encoded
// messages over cc.
func NewScheduleServiceClient(cc grpc.ClientConnInterface) ScheduleServiceClient {
	return &scheduleServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *scheduleServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, ScheduleService_Register_FullMethodName, in, opts)
}

func (c *scheduleServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, ScheduleService_Login_FullMethodName, in, opts)
}

func (c *scheduleServiceClient) CreateAppointment(ctx context.Context, in *CreateAppointmentRequest, opts ...grpc.CallOption) (*CreateAppointmentResponse, error) {
	return invoke[CreateAppointmentResponse](ctx, c.cc, ScheduleService_CreateAppointment_FullMethodName, in, opts)
}

func (c *scheduleServiceClient) GetAppointment(ctx context.Context, in *GetAppointmentRequest, opts ...grpc.CallOption) (*GetAppointmentResponse, error) {
	return invoke[GetAppointmentResponse](ctx, c.cc, ScheduleService_GetAppointment_FullMethodName, in, opts)
}

func (c *scheduleServiceClient) ListAppointments(ctx context.Context, in *ListAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	return invoke[ListAppointmentsResponse](ctx, c.cc, ScheduleService_ListAppointments_FullMethodName, in, opts)
}

func (c *scheduleServiceClient) UpdateAppointment(ctx context.Context, in *UpdateAppointmentRequest, opts ...grpc.CallOption) (*UpdateAppointmentResponse, error) {
	return invoke[UpdateAppointmentResponse](ctx, c.cc, ScheduleService_UpdateAppointment_FullMethodName, in, opts)
}

func (c *scheduleServiceClient) DeleteAppointment(ctx context.Context, in *DeleteAppointmentRequest, opts ...grpc.CallOption) (*DeleteAppointmentResponse, error) {
	return invoke[DeleteAppointmentResponse](ctx, c.cc, ScheduleService_DeleteAppointment_FullMethodName, in, opts)
}

func (c *scheduleServiceClient) CheckConflict(ctx context.Context, in *CheckConflictRequest, opts ...grpc.CallOption) (*CheckConflictResponse, error) {
	return invoke[CheckConflictResponse](ctx, c.cc, ScheduleService_CheckConflict_FullMethodName, in, opts)
}
