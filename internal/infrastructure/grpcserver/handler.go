package grpcserver

import (
	"context"
	"errors"
	"time"

	"fx-rate-service/internal/application/dto"
	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/internal/domain/interfaces"
	"fx-rate-service/internal/infrastructure/logging"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Handler implementa FxServiceServer sobre el orquestador
type Handler struct {
	fxService interfaces.FxService
	mapper    *dto.FxMapper
}

var _ FxServiceServer = (*Handler)(nil)

func NewHandler(fxService interfaces.FxService) *Handler {
	return &Handler{
		fxService: fxService,
		mapper:    dto.NewFxMapper(),
	}
}

func (h *Handler) GetExchangeRate(ctx context.Context, req *dto.GetExchangeRateRequest) (*dto.RateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := h.fxService.GetExchangeRate(ctx, req.FromCurrency, req.ToCurrency)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return h.mapper.ToRateResponse(result), nil
}

func (h *Handler) Convert(ctx context.Context, req *dto.ConvertRequest) (*dto.ConvertResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := h.fxService.Convert(ctx, req.FromCurrency, req.ToCurrency, *req.Amount)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return h.mapper.ToConvertResponse(result), nil
}

func (h *Handler) GetRates(ctx context.Context, req *dto.GetRatesRequest) (*dto.RatesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := h.fxService.GetRates(ctx, req.BaseCurrency, req.TargetCurrencies)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return h.mapper.ToRatesResponse(result), nil
}

// HealthCheck siempre responde OK; el estado va en el mensaje
func (h *Handler) HealthCheck(ctx context.Context, _ *HealthCheckRequest) (*dto.HealthResponse, error) {
	return h.mapper.ToHealthResponse(h.fxService.HealthCheck(ctx), time.Now()), nil
}

// toStatus mapea errores del dominio a códigos gRPC
func toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, entities.ErrInvalidCurrency), errors.Is(err, entities.ErrInvalidAmount):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, entities.ErrNoRateAvailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		logging.ErrorWithError(ctx, "Unexpected error serving FX RPC", err, nil)
		return status.Error(codes.Internal, "internal error")
	}
}
