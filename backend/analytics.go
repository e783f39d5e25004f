package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// EventSink receives game lifecycle events.
type EventSink interface {
	Emit(ctx context.Context, event string, fields map[string]any)
	Close() error
}

type Analytics struct {
	writer *kafka.Writer
}

// NewAnalytics returns a sink that drops every event when no brokers are set.
func NewAnalytics(brokers []string, topic string) *Analytics {
	if len(brokers) == 0 || topic == "" {
		return &Analytics{}
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warn().Err(err).Int("messages", len(messages)).Msg("kafka-emit-failed")
			}
		},
	}
	log.Info().Strs("brokers", brokers).Str("topic", topic).Msg("analytics-enabled")
	return &Analytics{writer: w}
}

func (a *Analytics) Emit(ctx context.Context, event string, fields map[string]any) {
	if a == nil || a.writer == nil {
		return
	}
	payload := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		payload[k] = v
	}
	payload["event"] = event
	payload["ts"] = time.Now().UTC()
	b, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Err(err).Str("event", event).Msg("analytics-marshal-failed")
		return
	}
	var key []byte
	if id, ok := fields["gameId"].(string); ok {
		key = []byte(id)
	}
	if err := a.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: b}); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("kafka-emit-failed")
	}
}

func (a *Analytics) Close() error {
	if a == nil || a.writer == nil {
		return nil
	}
	return a.writer.Close()
}
