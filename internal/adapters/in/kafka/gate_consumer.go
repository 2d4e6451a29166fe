// Package kafka consumes gate movements that partner depots publish to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"depot/internal/core/application/requests"
	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"

	"github.com/juju/clock"
	"github.com/juju/retry"
	kafkago "github.com/segmentio/kafka-go"
)

// HeaderSource names the partner system that produced a gate message.
const HeaderSource = "source"

const (
	defaultSource = "gate-feed"
	maxBackoff    = 5 * time.Second
	fetchPause    = 300 * time.Millisecond
)

type Config struct {
	Brokers     []string
	GroupID     string
	Topic       string
	MaxRetries  int
	BaseBackoff time.Duration
	Clock       clock.Clock
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type gateRecorder interface {
	Handle(ctx context.Context, cmd commands.CreateGateCommand) error
}

// GateConsumer records every gate message as a create request of an external
// caller, so a known gate key updates the stored record instead of failing.
// Messages that can never succeed (bad JSON, validation, conflicts) are logged
// and committed; storage failures are retried with exponential backoff.
type GateConsumer struct {
	reader      messageReader
	recorder    gateRecorder
	logger      *slog.Logger
	clock       clock.Clock
	maxRetries  int
	baseBackoff time.Duration
}

func NewGateConsumer(cfg Config, recorder gateRecorder, logger *slog.Logger) *GateConsumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        100 * time.Millisecond,
		CommitInterval: 0,
	})
	return newGateConsumer(r, recorder, logger, cfg.Clock, cfg.MaxRetries, cfg.BaseBackoff)
}

func newGateConsumer(
	reader messageReader,
	recorder gateRecorder,
	logger *slog.Logger,
	clk clock.Clock,
	maxRetries int,
	baseBackoff time.Duration,
) *GateConsumer {
	if clk == nil {
		clk = clock.WallClock
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseBackoff <= 0 {
		baseBackoff = 200 * time.Millisecond
	}
	return &GateConsumer{
		reader:      reader,
		recorder:    recorder,
		logger:      logger.With("component", "gate_consumer"),
		clock:       clk,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

// Run consumes until ctx is cancelled.
func (c *GateConsumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "Gate consumer started")
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.InfoContext(ctx, "Gate consumer stopped")
				return nil
			}
			c.logger.ErrorContext(ctx, "Kafka fetch failed", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-c.clock.After(fetchPause):
			}
			continue
		}

		if err := c.process(ctx, m); err != nil {
			c.logger.ErrorContext(ctx, "Gate message dropped",
				"partition", m.Partition, "offset", m.Offset, "error", err)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.ErrorContext(ctx, "Kafka commit failed",
				"partition", m.Partition, "offset", m.Offset, "error", err)
		}
	}
}

func (c *GateConsumer) Close() error {
	return c.reader.Close()
}

func (c *GateConsumer) process(ctx context.Context, m kafkago.Message) error {
	var payload requests.Gate
	if err := json.Unmarshal(m.Value, &payload); err != nil {
		return fmt.Errorf("decode gate message: %w", err)
	}

	cmd, err := commands.NewCreateGateCommand(kernel.ExternalCaller(source(m)), payload)
	if err != nil {
		return err
	}

	var lastErr error
	err = retry.Call(retry.CallArgs{
		Func: func() error {
			lastErr = c.recorder.Handle(ctx, cmd)
			return lastErr
		},
		IsFatalError: func(err error) bool {
			return !retryable(err)
		},
		NotifyFunc: func(err error, attempt int) {
			c.logger.WarnContext(ctx, "Gate message failed, retrying", "attempt", attempt, "error", err)
		},
		Attempts:    c.maxRetries + 1,
		Delay:       c.baseBackoff,
		MaxDelay:    maxBackoff,
		BackoffFunc: retry.DoubleDelay,
		Clock:       c.clock,
		Stop:        ctx.Done(),
	})
	if err != nil && lastErr != nil {
		return lastErr
	}
	return err
}

func source(m kafkago.Message) string {
	for _, h := range m.Headers {
		if h.Key == HeaderSource && len(h.Value) > 0 {
			return string(h.Value)
		}
	}
	return defaultSource
}

// retryable reports failures that are not the fault of the message.
func retryable(err error) bool {
	return errs.CodeOf(err) == errs.CodeInternal && !errors.Is(err, context.Canceled)
}
