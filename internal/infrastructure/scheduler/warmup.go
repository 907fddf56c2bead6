package scheduler

import (
	"context"
	"fmt"
	"sync"

	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/internal/infrastructure/config"
	"fx-rate-service/internal/infrastructure/logging"
	"fx-rate-service/internal/infrastructure/metrics"

	"github.com/robfig/cron/v3"
)

// RatesFetcher es la parte del orquestador que usa el warmup
type RatesFetcher interface {
	GetRates(ctx context.Context, base string, targets []string) (*entities.RatesResult, error)
}

// Warmup mantiene calientes las claves fx:rates:{BASE} pidiendo GetRates en cada tick del cron
type Warmup struct {
	cron     *cron.Cron
	fetcher  RatesFetcher
	schedule string
	bases    []string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWarmup crea el scheduler; bases se normalizan y las inválidas se descartan
func NewWarmup(fetcher RatesFetcher, cfg config.WarmupConfig) *Warmup {
	bases := make([]string, 0, len(cfg.Bases))
	for _, b := range cfg.Bases {
		code, err := entities.NormalizeCurrency(b)
		if err != nil {
			logging.Warn(context.Background(), "Skipping invalid warmup base", logging.Fields{
				"base":             b,
				logging.FieldError: err.Error(),
			})
			continue
		}
		bases = append(bases, code)
	}

	logger := cronLogger{}
	ctx, cancel := context.WithCancel(context.Background())

	return &Warmup{
		cron:     cron.New(cron.WithLogger(logger), cron.WithChain(cron.SkipIfStillRunning(logger))),
		fetcher:  fetcher,
		schedule: cfg.Schedule,
		bases:    bases,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start registra el job, arranca el cron y lanza una primera pasada en segundo plano
func (w *Warmup) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, func() { w.RunOnce(w.ctx) }); err != nil {
		return fmt.Errorf("invalid warmup schedule %q: %w", w.schedule, err)
	}

	w.cron.Start()
	logging.Info(w.ctx, "Cache warmup scheduler started", logging.Fields{
		"schedule": w.schedule,
		"bases":    w.bases,
	})

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.RunOnce(w.ctx)
	}()

	return nil
}

// RunOnce pide las tasas de cada base y devuelve cuántas se sirvieron desde un proveedor o el cache.
// Las respuestas degradadas cuentan como fallo.
func (w *Warmup) RunOnce(ctx context.Context) int {
	warmed := 0
	for _, base := range w.bases {
		if ctx.Err() != nil {
			break
		}

		result, err := w.fetcher.GetRates(ctx, base, nil)
		if err != nil {
			metrics.RecordWarmupRun(base, false)
			logging.WarnWithError(ctx, "Cache warmup failed", err, logging.Fields{"base": base})
			continue
		}

		if result.Provider == entities.DegradedProvider {
			metrics.RecordWarmupRun(base, false)
			logging.Warn(ctx, "Cache warmup served by default table", logging.Fields{"base": base})
			continue
		}

		warmed++
		metrics.RecordWarmupRun(base, true)
		logging.Debug(ctx, "Cache warmup completed", logging.Fields{
			"base":                base,
			logging.FieldProvider: result.Provider,
			"rates":               len(result.Rates),
		})
	}
	return warmed
}

// Stop detiene el cron y espera a los jobs en curso
func (w *Warmup) Stop() {
	w.cancel()
	<-w.cron.Stop().Done()
	w.wg.Wait()
	logging.Info(context.Background(), "Cache warmup scheduler stopped", nil)
}

// cronLogger adapta robfig/cron al logging estructurado
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logging.Debug(context.Background(), "cron: "+msg, kvFields(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logging.ErrorWithError(context.Background(), "cron: "+msg, err, kvFields(keysAndValues))
}

func kvFields(keysAndValues []any) logging.Fields {
	fields := logging.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
