package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"venuebook/internal/domain"
	"venuebook/internal/service/bookings"
)

const (
	availabilityServiceName = "venue.v1.AvailabilityService"
	checkAvailabilityMethod = "/" + availabilityServiceName + "/CheckAvailability"
	listBookedDatesMethod   = "/" + availabilityServiceName + "/ListBookedDates"
)

// AvailabilityServiceServer carries its payloads as well-known Struct
// messages: {"dates": ["YYYY-MM-DD", ...]} in, report fields out.
type AvailabilityServiceServer interface {
	CheckAvailability(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListBookedDates(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

var AvailabilityServiceDesc = grpc.ServiceDesc{
	ServiceName: availabilityServiceName,
	HandlerType: (*AvailabilityServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CheckAvailability", Handler: checkAvailabilityHandler},
		{MethodName: "ListBookedDates", Handler: listBookedDatesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "venue/v1/availability.proto",
}

func RegisterAvailabilityServiceServer(s grpc.ServiceRegistrar, srv AvailabilityServiceServer) {
	s.RegisterService(&AvailabilityServiceDesc, srv)
}

func checkAvailabilityHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AvailabilityServiceServer).CheckAvailability(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: checkAvailabilityMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AvailabilityServiceServer).CheckAvailability(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listBookedDatesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AvailabilityServiceServer).ListBookedDates(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listBookedDatesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AvailabilityServiceServer).ListBookedDates(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

type AvailabilityClient struct {
	cc grpc.ClientConnInterface
}

func NewAvailabilityClient(cc grpc.ClientConnInterface) *AvailabilityClient {
	return &AvailabilityClient{cc: cc}
}

func (c *AvailabilityClient) CheckAvailability(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, checkAvailabilityMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AvailabilityClient) ListBookedDates(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, listBookedDatesMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type availabilityService interface {
	CheckAvailability(ctx context.Context, dates []string) (domain.ConflictReport, error)
	BookedDates(ctx context.Context) ([]domain.BookedDate, error)
}

type AvailabilityServer struct {
	svc availabilityService
	log *slog.Logger
}

func NewAvailabilityServer(svc availabilityService, log *slog.Logger) *AvailabilityServer {
	if log == nil {
		log = slog.Default()
	}
	return &AvailabilityServer{
		svc: svc,
		log: log.With(slog.String("component", "grpc.availability")),
	}
}

func (s *AvailabilityServer) CheckAvailability(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	log := s.log.With(slog.String("rpc", "CheckAvailability"))

	if req == nil {
		log.Warn("invalid request", slog.String("reason", "nil_request"))
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	dates, err := datesField(req)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_dates"), slog.Any("err", err))
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	report, err := s.svc.CheckAvailability(ctx, dates)
	if err != nil {
		var vErr *bookings.ValidationError
		if errors.As(err, &vErr) {
			log.Warn("invalid request", slog.Any("err", err))
			return nil, status.Error(codes.InvalidArgument, vErr.Error())
		}
		log.Error("availability check failed", slog.Any("err", err))
		return nil, status.Error(codes.Internal, "internal error")
	}

	out, err := structpb.NewStruct(map[string]any{
		"available":    report.Available,
		"conflicts":    dateList(report.Conflicts),
		"alternatives": dateList(report.Alternatives),
		"exhausted":    report.Exhausted,
	})
	if err != nil {
		log.Error("encode report failed", slog.Any("err", err))
		return nil, status.Error(codes.Internal, "internal error")
	}

	log.Debug(
		"availability checked",
		slog.Int("dates", len(dates)),
		slog.Bool("available", report.Available),
		slog.Int("alternatives", len(report.Alternatives)),
	)
	return out, nil
}

func (s *AvailabilityServer) ListBookedDates(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	log := s.log.With(slog.String("rpc", "ListBookedDates"))

	rows, err := s.svc.BookedDates(ctx)
	if err != nil {
		log.Error("booked dates list failed", slog.Any("err", err))
		return nil, status.Error(codes.Internal, "internal error")
	}
	out, err := structpb.NewStruct(map[string]any{
		"dates": dateList(domain.BookedDateSetOf(rows).Dates()),
	})
	if err != nil {
		log.Error("encode booked dates failed", slog.Any("err", err))
		return nil, status.Error(codes.Internal, "internal error")
	}

	log.Debug("booked dates listed", slog.Int("count", len(rows)))
	return out, nil
}

func datesField(req *structpb.Struct) ([]string, error) {
	v, ok := req.GetFields()["dates"]
	if !ok {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, errors.New("dates must be a list of strings")
	}
	out := make([]string, 0, len(list.GetValues()))
	for _, item := range list.GetValues() {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, errors.New("dates must be a list of strings")
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}

func dateList(dates []domain.CalendarDate) []any {
	out := make([]any, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}
