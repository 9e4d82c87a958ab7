package shop

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated = "OrderCreated"
	EventOrderUpdated = "OrderUpdated"
	EventOrderDeleted = "OrderDeleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "shop-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type EventItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type OrderCreatedPayload struct {
	OrderID string      `json:"order_id"`
	Status  Status      `json:"status"`
	Items   []EventItem `json:"items"`
}

type OrderUpdatedPayload struct {
	OrderID string      `json:"order_id"`
	Status  Status      `json:"status,omitempty"`
	Items   []EventItem `json:"items,omitempty"`
}

type OrderDeletedPayload struct {
	OrderID string      `json:"order_id"`
	Items   []EventItem `json:"items"` // qty yang dibalikin ke stok
}
