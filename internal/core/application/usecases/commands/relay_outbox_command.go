package commands

import (
	"errors"

	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

// MaxOutboxBatchSize caps the events relayed by one run.
const MaxOutboxBatchSize = 1000

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand publishes the oldest pending outbox events.
//
// Example:
//
//	cmd, err := NewRelayOutboxCommand(100)
//	handler := NewRelayOutboxCommandHandler(uowFactory, publisher, clock)
//
//	// Run periodically from the outbox relay job
//	if err := handler.Handle(ctx, cmd); err != nil && !errors.Is(err, ErrNoPendingEvents) {
//	    log.Printf("Outbox relay failed: %v", err)
//	}
type RelayOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	if batchSize < 1 || batchSize > MaxOutboxBatchSize {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, MaxOutboxBatchSize)
	}
	return RelayOutboxCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) BatchSize() int { return c.batchSize }
