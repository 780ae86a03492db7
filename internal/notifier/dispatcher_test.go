package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []Message
	block    chan struct{}
	err      error
	closed   bool
}

func (n *recordingNotifier) Notify(ctx context.Context, msg Message) error {
	if n.block != nil {
		select {
		case <-n.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.messages = append(n.messages, msg)

	return n.err
}

func (n *recordingNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true

	return nil
}

func (n *recordingNotifier) delivered() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]Message(nil), n.messages...)
}

func TestDispatcherDelivers(t *testing.T) {
	n := &recordingNotifier{}
	d := NewDispatcher(n, zerolog.Nop(), Config{Workers: 2, QueueSize: 8, Timeout: time.Second})

	require.True(t, d.Dispatch("alice#0001", "123456"))
	require.True(t, d.Dispatch("bob#0002", "654321"))

	require.NoError(t, d.Close())

	got := n.delivered()
	require.Len(t, got, 2)
	require.True(t, n.closed)

	codes := map[string]string{}
	for _, m := range got {
		codes[m.Destination] = m.Code
		require.NotEmpty(t, m.ID)
		require.Contains(t, m.Text, m.Code)
	}

	require.Equal(t, map[string]string{"alice#0001": "123456", "bob#0002": "654321"}, codes)
}

func TestDispatcherDropsWhenQueueIsFull(t *testing.T) {
	n := &recordingNotifier{block: make(chan struct{})}
	d := NewDispatcher(n, zerolog.Nop(), Config{Workers: 1, QueueSize: 1, Timeout: time.Minute})

	// The worker takes the first message and blocks, the second fills the queue.
	require.True(t, d.Dispatch("a", "000001"))
	require.Eventually(t, func() bool { return len(d.jobs) == 0 }, time.Second, time.Millisecond)
	require.True(t, d.Dispatch("a", "000002"))
	require.False(t, d.Dispatch("a", "000003"))

	close(n.block)
	require.NoError(t, d.Close())
	require.Len(t, n.delivered(), 2)
}

func TestDispatcherRejectsAfterClose(t *testing.T) {
	n := &recordingNotifier{}
	d := NewDispatcher(n, zerolog.Nop(), Config{})

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	require.False(t, d.Dispatch("a", "123456"))
}

func TestDispatcherSurvivesNotifierErrors(t *testing.T) {
	n := &recordingNotifier{err: errors.New("discord is down")}
	d := NewDispatcher(n, zerolog.Nop(), Config{Workers: 1, QueueSize: 4, Timeout: time.Second})

	for i := 0; i < 3; i++ {
		require.True(t, d.Dispatch("a", "123456"))
	}

	require.NoError(t, d.Close())
	require.Len(t, n.delivered(), 3)
}
