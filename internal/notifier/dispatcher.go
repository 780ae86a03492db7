package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config sizes the dispatcher.
type Config struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = 1
	}

	if c.QueueSize < 0 {
		c.QueueSize = 0
	}

	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}

	return c
}

// Dispatcher hands messages to a Notifier from a fixed pool of workers.
//
// Deliveries run detached from the request that issued them, each bounded by
// its own timeout. Failures are logged and never reported back.
type Dispatcher struct {
	notifier Notifier
	logger   zerolog.Logger
	timeout  time.Duration
	jobs     chan Message
	wg       sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts config.Workers workers delivering through n.
func NewDispatcher(n Notifier, logger zerolog.Logger, config Config) *Dispatcher {
	config = config.withDefaults()

	d := &Dispatcher{
		notifier: n,
		logger:   logger,
		timeout:  config.Timeout,
		jobs:     make(chan Message, config.QueueSize),
	}

	d.wg.Add(config.Workers)

	for i := 0; i < config.Workers; i++ {
		go d.work()
	}

	return d
}

func (d *Dispatcher) work() {
	defer d.wg.Done()

	for msg := range d.jobs {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	l := d.logger.With().Str("message_id", msg.ID).Logger()

	ctx, cancel := context.WithTimeout(l.WithContext(context.Background()), d.timeout)
	defer cancel()

	if err := d.notifier.Notify(ctx, msg); err != nil {
		l.Error().Err(err).Str("destination", msg.Destination).Msg("security code delivery failed")
	}
}

// Dispatch queues the delivery of code to destination without blocking. It
// returns false when the queue is full or the dispatcher is closed.
func (d *Dispatcher) Dispatch(destination, code string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return false
	}

	select {
	case d.jobs <- NewMessage(destination, code):
		return true
	default:
		d.logger.Error().Str("destination", destination).Msg("delivery queue is full")
		return false
	}
}

// Close stops accepting messages, waits for queued ones to be delivered and
// closes the notifier.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}

	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()

	return d.notifier.Close()
}
