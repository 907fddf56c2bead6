package grpcserver

import (
	"context"

	"fx-rate-service/internal/application/dto"

	"google.golang.org/grpc"
)

// Client is the client API for fx.FxService; every call uses the JSON content-subtype
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) GetExchangeRate(ctx context.Context, in *dto.GetExchangeRateRequest, opts ...grpc.CallOption) (*dto.RateResponse, error) {
	out := new(dto.RateResponse)
	if err := c.invoke(ctx, "GetExchangeRate", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Convert(ctx context.Context, in *dto.ConvertRequest, opts ...grpc.CallOption) (*dto.ConvertResponse, error) {
	out := new(dto.ConvertResponse)
	if err := c.invoke(ctx, "Convert", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRates(ctx context.Context, in *dto.GetRatesRequest, opts ...grpc.CallOption) (*dto.RatesResponse, error) {
	out := new(dto.RatesResponse)
	if err := c.invoke(ctx, "GetRates", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) HealthCheck(ctx context.Context, opts ...grpc.CallOption) (*dto.HealthResponse, error) {
	out := new(dto.HealthResponse)
	if err := c.invoke(ctx, "HealthCheck", &HealthCheckRequest{}, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.conn.Invoke(ctx, fullMethod(method), in, out, callOpts...)
}
