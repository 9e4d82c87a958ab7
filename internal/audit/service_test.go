package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kafkax "github.com/vdraganov/go-shop-api/internal/kafka"
	"github.com/vdraganov/go-shop-api/internal/shop"
)

func eventMessage(t *testing.T, eventType string, payload any) kafkago.Message {
	t.Helper()
	env := shop.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      "shop-test",
		CorrelationID: "o-1",
		Payload:       kafkax.MustMarshal(payload),
	}
	return kafkago.Message{Value: kafkax.MustMarshal(env)}
}

func TestHandleOrderEvent(t *testing.T) {
	svc := &Service{ServiceName: "auditor-test"} // tanpa Redis: dedup di-skip
	ctx := context.Background()

	m := eventMessage(t, shop.EventOrderCreated, shop.OrderCreatedPayload{
		OrderID: "o-1", Status: shop.StatusInProcess,
		Items: []shop.EventItem{{ProductID: "p-1", Quantity: 2}},
	})
	require.NoError(t, svc.HandleOrderEvent(ctx, m))

	m = eventMessage(t, shop.EventOrderDeleted, shop.OrderDeletedPayload{
		OrderID: "o-1",
		Items:   []shop.EventItem{{ProductID: "p-1", Quantity: 2}},
	})
	require.NoError(t, svc.HandleOrderEvent(ctx, m))

	// event type asing: di-log, bukan error (jangan block offset commit)
	m = eventMessage(t, "SomethingElse", map[string]string{})
	assert.NoError(t, svc.HandleOrderEvent(ctx, m))
}

func TestHandleOrderEventBadEnvelope(t *testing.T) {
	svc := &Service{ServiceName: "auditor-test"}
	err := svc.HandleOrderEvent(context.Background(), kafkago.Message{Value: []byte(`{broken`)})
	assert.Error(t, err)
}
