package extractor

import (
	"context"
	"log/slog"
	"time"

	"github.com/peer-observer/peer-observer/errors"
	"github.com/peer-observer/peer-observer/events"
	"github.com/peer-observer/peer-observer/extractor/watch"
	"github.com/peer-observer/peer-observer/metric"
)

// Publisher publishes encoded envelopes to the bus. Publishing is
// fire-and-forget: a returned error means the publish was not handed to the
// transport, not that no consumer saw it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Query is one named extraction source. Fetch produces the event payload for
// a single pass; a disabled query stays in the set but is skipped every
// pass.
type Query struct {
	Name     string
	Disabled bool
	Fetch    func(ctx context.Context) (events.Payload, error)
}

// Loop runs a set of queries on a fixed interval and publishes the results.
type Loop struct {
	name     string
	interval time.Duration
	queries  []Query
	pub      Publisher
	logger   *slog.Logger
	metrics  *metric.Metrics
}

// NewLoop creates an extraction loop. The extractor name labels logs and
// metrics; queries run in the given order on every pass.
func NewLoop(
	name string,
	interval time.Duration,
	queries []Query,
	pub Publisher,
	logger *slog.Logger,
	metrics *metric.Metrics,
) (*Loop, error) {
	if interval <= 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig,
			"Loop", "NewLoop", "query interval must be positive")
	}
	if pub == nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig,
			"Loop", "NewLoop", "publisher is required")
	}
	return &Loop{
		name:     name,
		interval: interval,
		queries:  queries,
		pub:      pub,
		logger:   logger.With("extractor", name),
		metrics:  metrics,
	}, nil
}

// Run executes extraction passes until the shutdown receiver fires. The
// first pass runs immediately, later passes once per interval. Shutdown is
// observed between passes only; a pass in flight always completes. Run
// returns nil on both shutdown paths.
func (l *Loop) Run(ctx context.Context, shutdown *watch.Receiver) error {
	enabled := 0
	for _, q := range l.queries {
		if !q.Disabled {
			enabled++
		}
	}
	if enabled == 0 {
		l.logger.Warn("no queries enabled, nothing to extract")
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		l.runPass(ctx)

		select {
		case <-ticker.C:
		case <-shutdown.Done():
			if shutdown.Stopped() {
				l.logger.Info("received shutdown signal")
			} else {
				l.logger.Warn("shutdown sender dropped, shutting down")
			}
			return nil
		}
	}
}

func (l *Loop) runPass(ctx context.Context) {
	l.metrics.RecordTick(l.name)

	for _, q := range l.queries {
		if q.Disabled {
			continue
		}
		if err := l.runQuery(ctx, q); err != nil {
			l.logger.Error("could not fetch and publish query result",
				"query", q.Name, "error", err)
			l.metrics.RecordQueryFailure(l.name, q.Name)
		}
	}
}

func (l *Loop) runQuery(ctx context.Context, q Query) error {
	start := time.Now()
	payload, err := q.Fetch(ctx)
	l.metrics.RecordQueryDuration(l.name, q.Name, time.Since(start))
	if err != nil {
		return errors.Wrap(err, "Loop", "runQuery", "fetch "+q.Name)
	}

	if err := Publish(l.pub, payload); err != nil {
		return err
	}
	l.metrics.RecordEventPublished(l.name, payload.Subject().String())
	return nil
}

// Publish wraps a payload in a freshly stamped envelope, encodes it, and
// hands it to the publisher.
func Publish(pub Publisher, payload events.Payload) error {
	env, err := events.New(payload)
	if err != nil {
		return errors.WrapFatal(err, "Loop", "Publish", "create envelope")
	}
	data, err := events.Encode(env)
	if err != nil {
		return errors.Wrap(err, "Loop", "Publish", "encode envelope")
	}
	if err := pub.Publish(payload.Subject().String(), data); err != nil {
		return errors.WrapTransient(err, "Loop", "Publish", "publish to bus")
	}
	return nil
}
