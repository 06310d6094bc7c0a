// Package logtail is the log extractor pipeline: it follows a debug-log
// source line by line, classifies each line, and publishes the result to the
// bus. An optional rate limiter drops excess lines instead of back-pressuring
// the node.
package logtail

import (
	"bufio"
	"context"
	"io"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/peer-observer/peer-observer/errors"
	"github.com/peer-observer/peer-observer/extractor"
	"github.com/peer-observer/peer-observer/extractor/watch"
	"github.com/peer-observer/peer-observer/logparse"
	"github.com/peer-observer/peer-observer/metric"
)

// Name labels the log extractor in logs and metrics.
const Name = "log"

// maxLineSize bounds a single debug-log line. Lines beyond this abort the
// tailer rather than silently splitting.
const maxLineSize = 1024 * 1024

// Tailer reads log lines from one source and publishes classified events.
type Tailer struct {
	source  string
	reader  io.Reader
	pub     extractor.Publisher
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics *metric.Metrics
}

// New creates a tailer over reader. The source name labels logs and metrics.
// A nil limiter publishes every line.
func New(
	source string,
	reader io.Reader,
	pub extractor.Publisher,
	limiter *rate.Limiter,
	logger *slog.Logger,
	metrics *metric.Metrics,
) (*Tailer, error) {
	if reader == nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig,
			"Tailer", "New", "log source reader is required")
	}
	if pub == nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig,
			"Tailer", "New", "publisher is required")
	}
	return &Tailer{
		source:  source,
		reader:  reader,
		pub:     pub,
		limiter: limiter,
		logger:  logger.With("extractor", Name, "source", source),
		metrics: metrics,
	}, nil
}

// Run consumes the source until it ends or the shutdown receiver fires. A
// line that fails to publish is logged and skipped; the tailer never stops
// over a single line.
func (t *Tailer) Run(ctx context.Context, shutdown *watch.Receiver) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(t.reader)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return errors.WrapTransient(err, "Tailer", "Run", "read log source")
				}
				t.logger.Info("log source ended")
				return nil
			}
			t.handleLine(line)
		case <-shutdown.Done():
			if shutdown.Stopped() {
				t.logger.Info("received shutdown signal")
			} else {
				t.logger.Warn("shutdown sender dropped, shutting down")
			}
			return nil
		}
	}
}

func (t *Tailer) handleLine(line string) {
	t.metrics.RecordLogLineRead(t.source)

	if t.limiter != nil && !t.limiter.Allow() {
		t.metrics.RecordLogLineDropped(t.source)
		return
	}

	log := logparse.Classify(line)
	if err := extractor.Publish(t.pub, log); err != nil {
		t.logger.Error("could not publish log event", "error", err)
		t.metrics.RecordQueryFailure(Name, t.source)
		return
	}
	t.metrics.RecordEventPublished(Name, log.Subject().String())
}
