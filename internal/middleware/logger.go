// Package middleware holds gin middlewares shared by every route.
package middleware

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/go-petr/card-ledger/pkg/configpkg"
)

// RequestIDHeader carries the correlation id of a request.
const RequestIDHeader = "X-Request-ID"

// CreateLogger builds the application logger. Development environment gets
// human readable console output with caller info.
func CreateLogger(config configpkg.Config) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var output io.Writer = os.Stderr

	log := zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Str("service", "card-ledger").
		Logger()

	if config.Environment == "development" {
		log = log.
			Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(zerolog.TraceLevel).
			With().
			Caller().
			Logger()
	}

	return log
}

// RequestLogger puts a request scoped logger into the request context and
// logs every request once it is served.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.Request.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(RequestIDHeader, requestID)
		}

		c.Writer.Header().Set(RequestIDHeader, requestID)

		l := logger.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		defer func() {
			if panicVal := recover(); panicVal != nil {
				l.Error().Msgf("panic message: %v", panicVal)
				c.AbortWithStatus(http.StatusInternalServerError)
			}

			status := c.Writer.Status()

			var event *zerolog.Event
			if status >= http.StatusInternalServerError {
				event = l.Error()
			} else {
				event = l.Info()
			}

			event.
				Str("client_ip", c.ClientIP()).
				Str("method", c.Request.Method).
				Int("status_code", status).
				Str("path", c.Request.URL.Path).
				Dur("latency", time.Since(start)).
				Msg(c.Errors.ByType(gin.ErrorTypePrivate).String())
		}()

		c.Next()
	}
}
