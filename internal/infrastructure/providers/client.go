package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/internal/infrastructure/logging"
	"fx-rate-service/internal/infrastructure/metrics"
)

const (
	DefaultTimeout = 5 * time.Second
	errorBodyLimit = 512
)

// Client es la base HTTP compartida por los proveedores de tipos de cambio.
// Mantiene el flag de salud y convierte cada fallo en entities.ProviderError.
type Client struct {
	name       string
	timeout    time.Duration
	httpClient *http.Client
	healthy    atomic.Bool
}

// NewClient crea la base HTTP; timeout bounds each call
func NewClient(name string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		name:    name,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	c.healthy.Store(true)
	metrics.UpdateProviderHealth(name, true)

	return c
}

// Name returns the provider identifier used in results, logs and metrics
func (c *Client) Name() string {
	return c.name
}

// HealthStatus returns healthy or unhealthy based on the last call
func (c *Client) HealthStatus() string {
	if c.healthy.Load() {
		return entities.ProviderStatusHealthy
	}
	return entities.ProviderStatusUnhealthy
}

// Timeout returns the per-call timeout
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// FetchJSON performs a GET against endpoint, decodes the body into dest and runs validate.
// Any failure marks the provider unhealthy and is returned as *entities.ProviderError.
func (c *Client) FetchJSON(ctx context.Context, operation, endpoint string, dest any, validate func() error) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return c.fail(ctx, operation, 0, 0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.fail(ctx, operation, 0, duration, fmt.Errorf("%w: timeout after %v", ErrTransport, c.timeout))
		}
		return c.fail(ctx, operation, 0, duration, fmt.Errorf("%w: %v", ErrTransport, redact(err)))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return c.fail(ctx, operation, resp.StatusCode, duration,
			fmt.Errorf("%w: %s", ErrUnexpectedStatus, strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return c.fail(ctx, operation, resp.StatusCode, duration, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}

	if validate != nil {
		if err := validate(); err != nil {
			return c.fail(ctx, operation, resp.StatusCode, duration, err)
		}
	}

	c.setHealthy(true)
	metrics.RecordProviderCall(c.name, operation, resp.StatusCode, duration.Seconds())
	logging.ExternalAPI().RequestCompleted(ctx, c.name, operation, resp.StatusCode, durationMs(duration))

	return nil
}

func (c *Client) fail(ctx context.Context, operation string, statusCode int, duration time.Duration, err error) error {
	c.setHealthy(false)
	metrics.RecordProviderCall(c.name, operation, statusCode, duration.Seconds())
	logging.ExternalAPI().RequestFailed(ctx, c.name, operation, statusCode, err, durationMs(duration))

	return entities.NewProviderError(c.name, operation, statusCode, err)
}

func (c *Client) setHealthy(healthy bool) {
	if c.healthy.Swap(healthy) != healthy {
		metrics.UpdateProviderHealth(c.name, healthy)
	}
}

// redact quita la URL de los errores de transporte; lleva la API key
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func durationMs(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
