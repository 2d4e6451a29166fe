package commands

import (
	"context"
	"errors"
	"fmt"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/ports"

	"github.com/juju/clock"
)

// ErrNoPendingEvents is returned when the outbox holds nothing to relay.
var ErrNoPendingEvents = errors.New("no pending outbox events")

// RelayOutboxCommandHandler moves events from the outbox to the event
// publisher. Rows are marked in the same transaction that read them and the
// transaction commits only after the publisher accepted the batch, so an
// event may be delivered more than once but never lost.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clk}
}

func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	events, err := outbox.ListPending(ctx, cmd.BatchSize())
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return ErrNoPendingEvents
	}

	if err := h.publisher.Publish(ctx, events); err != nil {
		return fmt.Errorf("publish %d events: %w", len(events), err)
	}

	ids := make([]kernel.UUID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID())
	}
	if err := outbox.MarkPublished(ctx, ids, h.clock.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
