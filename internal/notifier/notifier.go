// Package notifier delivers security codes to account holders out of band.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/pkg/configpkg"
)

// Notifier kinds selectable with NOTIFIER_KIND.
const (
	KindLog   = "log"
	KindKafka = "kafka"
	KindRedis = "redis"
)

// Message is a single security code delivery.
type Message struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	Code        string    `json:"code"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewMessage builds the delivery of code to destination.
func NewMessage(destination, code string) Message {
	return Message{
		ID:          uuid.NewString(),
		Destination: destination,
		Code:        code,
		Text:        fmt.Sprintf("Your security code is: %s", code),
		CreatedAt:   time.Now().UTC(),
	}
}

// Marshal encodes the message as JSON.
func (m Message) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Notifier sends a message to its destination.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
	Close() error
}

// FromConfig returns the notifier selected by config.NotifierKind.
func FromConfig(config configpkg.Config, logger zerolog.Logger) (Notifier, error) {
	switch config.NotifierKind {
	case "":
		return nil, errors.New("NOTIFIER_KIND is not set")
	case KindLog:
		logger.Warn().Msg("log notifier delivers security codes to the debug log, use it for development only")
		return NewLogNotifier(logger), nil
	case KindKafka:
		brokers := config.KafkaBrokerList()
		if len(brokers) == 0 {
			return nil, errors.New("kafka notifier needs KAFKA_BROKERS")
		}

		return NewKafkaNotifier(brokers, config.KafkaTopic, logger), nil
	case KindRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddress,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})

		return NewRedisNotifier(client, config.RedisQueue), nil
	}

	return nil, fmt.Errorf("unsupported notifier kind %q", config.NotifierKind)
}
