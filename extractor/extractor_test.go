package extractor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peer-observer/peer-observer/events"
	"github.com/peer-observer/peer-observer/extractor/watch"
	"github.com/peer-observer/peer-observer/metric"
)

type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakePublisher) published() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.subjects...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func uptimeQuery(name string) Query {
	return Query{
		Name: name,
		Fetch: func(context.Context) (events.Payload, error) {
			return &events.Rpc{Uptime: &events.Uptime{Seconds: 1}}, nil
		},
	}
}

// runLoop starts the loop in the background and returns a channel carrying
// its result.
func runLoop(t *testing.T, l *Loop, rx *watch.Receiver) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() {
		done <- l.Run(context.Background(), rx)
	}()
	return done
}

func waitLoop(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not terminate")
	}
}

func TestNewLoopValidation(t *testing.T) {
	pub := &fakePublisher{}

	_, err := NewLoop("rpc", 0, nil, pub, testLogger(), metric.NewMetrics())
	assert.Error(t, err)

	_, err = NewLoop("rpc", time.Second, nil, nil, testLogger(), metric.NewMetrics())
	assert.Error(t, err)
}

func TestLoopFirstPassIsImmediate(t *testing.T) {
	pub := &fakePublisher{}
	l, err := NewLoop("rpc", time.Hour, []Query{uptimeQuery("uptime")}, pub, testLogger(), metric.NewMetrics())
	require.NoError(t, err)

	tx, rx := watch.NewPair()
	done := runLoop(t, l, rx)

	// The first pass runs before the loop ever waits on the ticker.
	assert.Eventually(t, func() bool {
		return len(pub.published()) == 1
	}, time.Second, time.Millisecond)

	tx.Stop()
	waitLoop(t, done)
	assert.Equal(t, []string{"peerobserver.rpc"}, pub.published())
}

func TestLoopFailingQueryDoesNotStopSiblings(t *testing.T) {
	pub := &fakePublisher{}
	queries := []Query{
		uptimeQuery("first"),
		{
			Name: "second",
			Fetch: func(context.Context) (events.Payload, error) {
				return nil, fmt.Errorf("connection refused")
			},
		},
		uptimeQuery("third"),
	}
	l, err := NewLoop("rpc", time.Hour, queries, pub, testLogger(), metric.NewMetrics())
	require.NoError(t, err)

	tx, rx := watch.NewPair()
	done := runLoop(t, l, rx)

	assert.Eventually(t, func() bool {
		return len(pub.published()) == 2
	}, time.Second, time.Millisecond)

	tx.Stop()
	waitLoop(t, done)
}

func TestLoopSkipsDisabledQueries(t *testing.T) {
	pub := &fakePublisher{}
	enabled := uptimeQuery("enabled")
	disabled := uptimeQuery("disabled")
	disabled.Disabled = true

	l, err := NewLoop("rpc", time.Hour, []Query{disabled, enabled}, pub, testLogger(), metric.NewMetrics())
	require.NoError(t, err)

	tx, rx := watch.NewPair()
	done := runLoop(t, l, rx)

	assert.Eventually(t, func() bool {
		return len(pub.published()) == 1
	}, time.Second, time.Millisecond)

	tx.Stop()
	waitLoop(t, done)
}

func TestLoopAllDisabledKeepsRunning(t *testing.T) {
	pub := &fakePublisher{}
	q := uptimeQuery("uptime")
	q.Disabled = true

	l, err := NewLoop("rpc", 5*time.Millisecond, []Query{q}, pub, testLogger(), metric.NewMetrics())
	require.NoError(t, err)

	tx, rx := watch.NewPair()
	done := runLoop(t, l, rx)

	// Loop keeps ticking with nothing to do until told to stop.
	time.Sleep(25 * time.Millisecond)
	tx.Stop()
	waitLoop(t, done)
	assert.Empty(t, pub.published())
}

func TestLoopStopsOnShutdownSignal(t *testing.T) {
	pub := &fakePublisher{}
	l, err := NewLoop("rpc", 5*time.Millisecond, []Query{uptimeQuery("uptime")}, pub, testLogger(), metric.NewMetrics())
	require.NoError(t, err)

	tx, rx := watch.NewPair()
	done := runLoop(t, l, rx)

	tx.Stop()
	waitLoop(t, done)
}

func TestLoopStopsOnDroppedSender(t *testing.T) {
	pub := &fakePublisher{}
	l, err := NewLoop("rpc", 5*time.Millisecond, []Query{uptimeQuery("uptime")}, pub, testLogger(), metric.NewMetrics())
	require.NoError(t, err)

	tx, rx := watch.NewPair()
	done := runLoop(t, l, rx)

	tx.Drop()
	waitLoop(t, done)
}

func TestPublishEncodesEnvelope(t *testing.T) {
	pub := &fakePublisher{}
	payload := &events.Log{
		Category: events.CategoryNet,
		Unknown:  &events.UnknownLogMessage{RawMessage: "hello"},
	}

	require.NoError(t, Publish(pub, payload))
	assert.Equal(t, []string{"peerobserver.log"}, pub.published())
}

func TestPublishPropagatesTransportError(t *testing.T) {
	pub := &fakePublisher{err: fmt.Errorf("no connection")}
	payload := &events.Rpc{Uptime: &events.Uptime{Seconds: 1}}

	err := Publish(pub, payload)
	assert.Error(t, err)
}
