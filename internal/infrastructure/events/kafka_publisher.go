package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/internal/domain/interfaces"
	"fx-rate-service/internal/infrastructure/config"
	"fx-rate-service/internal/infrastructure/logging"
	"fx-rate-service/internal/infrastructure/metrics"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultBufferSize   = 256
	DefaultWriteTimeout = 5 * time.Second
)

// MessageWriter es el subconjunto de *kafka.Writer que usa el publisher
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica las transiciones de estado de los breakers con el nombre del breaker como key.
// OnBreakerEvent only enqueues: when the buffer is full the event is dropped and counted.
type KafkaPublisher struct {
	writer       MessageWriter
	queue        chan entities.BreakerEvent
	writeTimeout time.Duration
	dropped      atomic.Int64

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ interfaces.BreakerListener = (*KafkaPublisher)(nil)

// NewKafkaPublisher crea el writer de kafka-go para cfg.Brokers/cfg.Topic
func NewKafkaPublisher(cfg config.EventsConfig) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           DefaultWriteTimeout,
	}
	return NewKafkaPublisherWithWriter(writer, DefaultBufferSize)
}

// NewKafkaPublisherWithWriter arranca el worker de publicación sobre writer
func NewKafkaPublisherWithWriter(writer MessageWriter, bufferSize int) *KafkaPublisher {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	p := &KafkaPublisher{
		writer:       writer,
		queue:        make(chan entities.BreakerEvent, bufferSize),
		writeTimeout: DefaultWriteTimeout,
	}

	p.wg.Add(1)
	go p.run()
	return p
}

// OnBreakerEvent encola transiciones; call outcomes (success, failure, timeout, rejected) are ignored
func (p *KafkaPublisher) OnBreakerEvent(_ context.Context, event entities.BreakerEvent) {
	if !event.Type.IsTransition() {
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.drop()
		return
	}

	select {
	case p.queue <- event:
	default:
		p.drop()
	}
}

// Dropped returns how many events were discarded because the buffer was full or the publisher closed
func (p *KafkaPublisher) Dropped() int64 {
	return p.dropped.Load()
}

// Close drena la cola pendiente y cierra el writer
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	return p.writer.Close()
}

func (p *KafkaPublisher) drop() {
	p.dropped.Add(1)
	metrics.RecordBreakerEventPublished("dropped")
}

func (p *KafkaPublisher) run() {
	defer p.wg.Done()

	for event := range p.queue {
		p.publish(event)
	}
}

func (p *KafkaPublisher) publish(event entities.BreakerEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	payload, err := json.Marshal(event)
	if err != nil {
		metrics.RecordBreakerEventPublished("error")
		logging.ErrorWithError(ctx, "Failed to encode breaker event", err, logging.Fields{
			logging.FieldBreaker: event.Breaker,
		})
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Breaker),
		Value: payload,
		Time:  event.Timestamp,
	})
	if err != nil {
		metrics.RecordBreakerEventPublished("error")
		logging.WarnWithError(ctx, "Failed to publish breaker event", fmt.Errorf("kafka write: %w", err), logging.Fields{
			logging.FieldBreaker: event.Breaker,
			"event":              string(event.Type),
		})
		return
	}

	metrics.RecordBreakerEventPublished("success")
	logging.Debug(ctx, "Breaker event published", logging.Fields{
		logging.FieldBreaker: event.Breaker,
		"event":              string(event.Type),
	})
}
