package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	kafkax "github.com/vdraganov/go-shop-api/internal/kafka"
	"github.com/vdraganov/go-shop-api/internal/redisx"
	"github.com/vdraganov/go-shop-api/internal/shop"
)

// Service tail event lifecycle order dan tulis audit log terstruktur.
// Consumer group bisa redeliver, jadi event di-dedup via Redis by event_id.
type Service struct {
	Redis       *redis.Client // optional; tanpa Redis dedup di-skip
	ServiceName string
}

func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env shop.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
		exists, _ := redisx.Exists(ctx, s.Redis, dkey)
		if exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	entry := log.WithFields(log.Fields{
		"event_id": env.EventID,
		"order_id": env.CorrelationID,
		"producer": env.Producer,
		"trace_id": env.TraceID,
	})

	switch env.EventType {
	case shop.EventOrderCreated:
		p, err := kafkax.UnwrapPayload[shop.OrderCreatedPayload](env.Payload)
		if err != nil {
			return err
		}
		entry.WithFields(log.Fields{"status": p.Status, "items": len(p.Items)}).Info("order created")
	case shop.EventOrderUpdated:
		p, err := kafkax.UnwrapPayload[shop.OrderUpdatedPayload](env.Payload)
		if err != nil {
			return err
		}
		entry.WithFields(log.Fields{"status": p.Status, "items": len(p.Items)}).Info("order updated")
	case shop.EventOrderDeleted:
		p, err := kafkax.UnwrapPayload[shop.OrderDeletedPayload](env.Payload)
		if err != nil {
			return err
		}
		restored := 0
		for _, it := range p.Items {
			restored += it.Quantity
		}
		entry.WithField("restored_qty", restored).Info("order deleted")
	default:
		entry.WithField("event_type", env.EventType).Warn("unknown event type")
	}
	return nil
}
