package kernel_test

import (
	"testing"
	"time"

	"depot/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRecorder(t *testing.T) {
	var r kernel.EventRecorder
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	attrs := map[string]string{"depot": "DEPOT0001"}

	r.RecordEvent(kernel.NewDomainEvent("RedeliveryCreated", "AHAMG33141", at, attrs))
	attrs["depot"] = "changed"

	events := r.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "RedeliveryCreated", events[0].Name())
	assert.Equal(t, "AHAMG33141", events[0].AggregateKey())
	assert.Equal(t, time.UTC, events[0].OccurredAt().Location())
	assert.Equal(t, "DEPOT0001", events[0].Attributes()["depot"])
	require.NoError(t, events[0].ID().Validate())

	r.ClearDomainEvents()
	assert.Empty(t, r.DomainEvents())
}

func TestRestoreDomainEvent(t *testing.T) {
	id := kernel.NewUUID()
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	e := kernel.RestoreDomainEvent(id, "GateRecorded", "TRLU1234567", at, map[string]string{"type": "IN"})

	assert.True(t, id.IsEqual(e.ID()))
	assert.Equal(t, "GateRecorded", e.Name())
	assert.Equal(t, at, e.OccurredAt())
	assert.Equal(t, "IN", e.Attributes()["type"])
}
