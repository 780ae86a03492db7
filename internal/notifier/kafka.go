package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const kafkaWriteTimeout = 10 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes deliveries to a kafka topic consumed by the chat bot.
type KafkaNotifier struct {
	writer messageWriter
	logger zerolog.Logger
}

// NewKafkaNotifier returns KafkaNotifier writing to topic on brokers.
func NewKafkaNotifier(brokers []string, topic string, logger zerolog.Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: kafkaWriteTimeout,
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		Logger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Debug().Msgf(msg, args...)
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error().Msgf(msg, args...)
		}),
	}

	return &KafkaNotifier{writer: writer, logger: logger}
}

// Notify writes the message keyed by destination so deliveries to one
// destination stay ordered.
func (n *KafkaNotifier) Notify(ctx context.Context, msg Message) error {
	value, err := msg.Marshal()
	if err != nil {
		return err
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Destination),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("message_id", msg.ID).Msg("security code published")

	return nil
}

// Close flushes pending writes and closes the writer.
func (n *KafkaNotifier) Close() error {
	if err := n.writer.Close(); err != nil {
		return fmt.Errorf("kafka close: %w", err)
	}

	return nil
}
