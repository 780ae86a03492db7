package notifier

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes deliveries to the log. Meant for local development: the
// code itself is only written at debug level, which production loggers drop.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier returns LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the message.
func (n *LogNotifier) Notify(_ context.Context, msg Message) error {
	n.logger.Debug().
		Str("message_id", msg.ID).
		Str("destination", msg.Destination).
		Str("code", msg.Code).
		Msg("security code delivered")

	return nil
}

// Close is a no-op.
func (n *LogNotifier) Close() error { return nil }
