package jobs

import (
	"context"
	"errors"
	"log/slog"

	"depot/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxRelayJob publishes pending domain events every second.
type OutboxRelayJob struct {
	handler   outboxRelayer
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

type outboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) error
}

// NewOutboxRelayJob creates the relay job. Each run publishes at most batchSize events.
func NewOutboxRelayJob(handler outboxRelayer, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start validates the batch size and schedules the job to run every second.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	_, err = j.cron.AddFunc("* * * * * *", func() {
		j.run(context.Background(), cmd)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)",
		"batch_size", j.batchSize)
	return nil
}

func (j *OutboxRelayJob) run(ctx context.Context, cmd commands.RelayOutboxCommand) {
	if err := j.handler.Handle(ctx, cmd); err != nil {
		// An empty outbox is the idle state
		if !errors.Is(err, commands.ErrNoPendingEvents) {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		}
	}
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
