package event

import (
	"context"
	"testing"

	"parametric-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_LogPreservesEmissionOrder(t *testing.T) {
	log := NewLog()
	emitter := NewEmitter(log)
	ctx := context.Background()

	emitter.Emit(ctx, models.EventPoolFunded, func(e *Event) {
		amount := int64(100)
		e.Amount = &amount
	})
	emitter.Emit(ctx, models.EventPolicyCreated, nil)
	emitter.Emit(ctx, models.EventSettlement, nil)

	events := log.Events()
	require.Len(t, events, 3)
	assert.Equal(t, models.EventPoolFunded, events[0].Type)
	assert.Equal(t, models.EventPolicyCreated, events[1].Type)
	assert.Equal(t, models.EventSettlement, events[2].Type)

	for _, e := range events {
		assert.NotEqual(t, "", e.ID.String())
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestLog_EventsReturnsCopy(t *testing.T) {
	log := NewLog()
	require.NoError(t, log.Publish(context.Background(), Event{Type: models.EventPoolFunded}))

	events := log.Events()
	events[0].Type = models.EventSettlement

	assert.Equal(t, models.EventPoolFunded, log.Events()[0].Type)
}
