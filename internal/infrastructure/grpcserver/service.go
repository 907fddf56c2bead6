package grpcserver

import (
	"context"

	"fx-rate-service/internal/application/dto"

	"google.golang.org/grpc"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "fx.FxService"

// HealthCheckRequest no lleva campos
type HealthCheckRequest struct{}

// FxServiceServer is the server API for the fx.FxService service
type FxServiceServer interface {
	GetExchangeRate(context.Context, *dto.GetExchangeRateRequest) (*dto.RateResponse, error)
	Convert(context.Context, *dto.ConvertRequest) (*dto.ConvertResponse, error)
	GetRates(context.Context, *dto.GetRatesRequest) (*dto.RatesResponse, error)
	HealthCheck(context.Context, *HealthCheckRequest) (*dto.HealthResponse, error)
}

// ServiceDesc describes fx.FxService without generated protobuf code; messages travel through the JSON codec
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FxServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetExchangeRate",
			Handler:    unaryHandler("GetExchangeRate", FxServiceServer.GetExchangeRate),
		},
		{
			MethodName: "Convert",
			Handler:    unaryHandler("Convert", FxServiceServer.Convert),
		},
		{
			MethodName: "GetRates",
			Handler:    unaryHandler("GetRates", FxServiceServer.GetRates),
		},
		{
			MethodName: "HealthCheck",
			Handler:    unaryHandler("HealthCheck", FxServiceServer.HealthCheck),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fx.proto",
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unaryHandler adapta un método tipado a grpc.MethodHandler
func unaryHandler[Req, Resp any](method string, call func(FxServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FxServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FxServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
