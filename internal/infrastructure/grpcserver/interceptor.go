package grpcserver

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"fx-rate-service/internal/infrastructure/logging"
	"fx-rate-service/internal/infrastructure/metrics"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// CorrelationIDKey es la clave de metadata para el request ID
const CorrelationIDKey = "x-correlation-id"

// UnaryServerInterceptor propaga el correlation ID, registra cada RPC y alimenta fx_grpc_requests_total
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		var candidate string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(CorrelationIDKey); len(values) > 0 {
				candidate = values[0]
			}
		}
		ctx, requestID := logging.EnsureRequestID(ctx, candidate)
		_ = grpc.SetHeader(ctx, metadata.Pairs(CorrelationIDKey, requestID))

		resp, err := handler(ctx, req)

		code := status.Code(err)
		duration := time.Since(start)
		metrics.RecordGRPCRequest(info.FullMethod, code.String(), duration.Seconds())

		fields := logging.Fields{
			logging.FieldGRPCMethod: info.FullMethod,
			logging.FieldGRPCCode:   code.String(),
			logging.FieldDuration:   float64(duration.Nanoseconds()) / 1e6,
		}
		switch code {
		case codes.OK:
			logging.Info(ctx, "gRPC request completed", fields)
		case codes.InvalidArgument:
			logging.Warn(ctx, "gRPC request rejected", fields)
		default:
			logging.ErrorWithError(ctx, "gRPC request failed", err, fields)
		}

		return resp, err
	}
}

// RecoveryUnaryInterceptor convierte un panic del handler en codes.Internal
func RecoveryUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logging.Error(ctx, "Recovered panic in gRPC handler", logging.Fields{
					logging.FieldGRPCMethod: info.FullMethod,
					logging.FieldError:      fmt.Sprint(r),
					"stack":                 string(debug.Stack()),
				})
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
