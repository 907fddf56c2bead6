package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/internal/infrastructure/config"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWriter registra los mensajes escritos; block retiene cada escritura hasta cerrarse
type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	block    chan struct{}
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.block != nil {
		select {
		case <-w.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWriter) written() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.messages...)
}

func transition(breaker string, from, to string, eventType entities.BreakerEventType) entities.BreakerEvent {
	return entities.BreakerEvent{
		Breaker:   breaker,
		Type:      eventType,
		From:      from,
		To:        to,
		Timestamp: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_PublishesTransitions(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewKafkaPublisherWithWriter(writer, 8)

	publisher.OnBreakerEvent(context.Background(), transition("primary-fx-api", "closed", "open", entities.BreakerEventOpen))
	publisher.OnBreakerEvent(context.Background(), entities.BreakerEvent{Breaker: "primary-fx-api", Type: entities.BreakerEventFailure})
	publisher.OnBreakerEvent(context.Background(), entities.BreakerEvent{Breaker: "primary-fx-api", Type: entities.BreakerEventRejected})
	publisher.OnBreakerEvent(context.Background(), transition("primary-fx-api", "open", "half-open", entities.BreakerEventHalfOpen))

	require.NoError(t, publisher.Close())

	messages := writer.written()
	require.Len(t, messages, 2)
	assert.Equal(t, "primary-fx-api", string(messages[0].Key))
	assert.JSONEq(t, `{
		"breaker": "primary-fx-api",
		"event": "open",
		"from": "closed",
		"to": "open",
		"timestamp": "2025-01-15T10:30:00Z"
	}`, string(messages[0].Value))

	var second entities.BreakerEvent
	require.NoError(t, json.Unmarshal(messages[1].Value, &second))
	assert.Equal(t, entities.BreakerEventHalfOpen, second.Type)

	assert.True(t, writer.closed)
	assert.Zero(t, publisher.Dropped())
}

func TestKafkaPublisher_DropsWhenBufferFull(t *testing.T) {
	writer := &fakeWriter{block: make(chan struct{})}
	publisher := NewKafkaPublisherWithWriter(writer, 1)

	// the worker takes the first event and blocks on it, the second fills the buffer
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			publisher.OnBreakerEvent(context.Background(), transition("fallback-fx-api", "closed", "open", entities.BreakerEventOpen))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("OnBreakerEvent blocked the caller")
	}

	assert.GreaterOrEqual(t, publisher.Dropped(), int64(8))

	close(writer.block)
	require.NoError(t, publisher.Close())
	assert.Equal(t, int64(10), publisher.Dropped()+int64(len(writer.written())))
}

func TestKafkaPublisher_WriteErrorsDoNotStopWorker(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	publisher := NewKafkaPublisherWithWriter(writer, 4)

	publisher.OnBreakerEvent(context.Background(), transition("primary-fx-api", "closed", "open", entities.BreakerEventOpen))
	publisher.OnBreakerEvent(context.Background(), transition("primary-fx-api", "open", "half-open", entities.BreakerEventHalfOpen))

	require.NoError(t, publisher.Close())
	assert.Empty(t, writer.written())
}

func TestKafkaPublisher_AfterClose(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewKafkaPublisherWithWriter(writer, 4)
	require.NoError(t, publisher.Close())
	require.NoError(t, publisher.Close())

	publisher.OnBreakerEvent(context.Background(), transition("primary-fx-api", "closed", "open", entities.BreakerEventOpen))

	assert.Equal(t, int64(1), publisher.Dropped())
	assert.Empty(t, writer.written())
}

func TestNewKafkaPublisher_ConfiguresWriter(t *testing.T) {
	publisher := NewKafkaPublisher(config.EventsConfig{
		Enabled: true,
		Brokers: []string{"localhost:9092"},
		Topic:   "fx.breaker.events",
	})
	defer publisher.Close()

	writer, ok := publisher.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "fx.breaker.events", writer.Topic)
	assert.Equal(t, "localhost:9092", writer.Addr.String())
	assert.IsType(t, &kafka.LeastBytes{}, writer.Balancer)
}
