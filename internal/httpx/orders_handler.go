package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/vdraganov/go-shop-api/internal/kafka"
	"github.com/vdraganov/go-shop-api/internal/redisx"
	"github.com/vdraganov/go-shop-api/internal/shop"
)

// EventPublisher dipenuhi oleh kafkax.Producer; test pakai fake.
type EventPublisher interface {
	Publish(topic string, key, value []byte, headers ...kafkago.Header)
}

var _ EventPublisher = (*kafkax.Producer)(nil)

type OrdersHandler struct {
	Store    OrderStore
	Producer EventPublisher // optional
	Redis    *redis.Client  // optional, cache GET order saja
	Service  string
}

type OrderItemReq struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"` // default 1
}

type CreateOrderReq struct {
	Status     *shop.Status    `json:"status"`
	OrderItems *[]OrderItemReq `json:"order_items"`
}

type UpdateOrderReq struct {
	Status     *shop.Status    `json:"status"`
	OrderItems *[]OrderItemReq `json:"order_items"`
}

type OrderListResp struct {
	Orders []shop.Order `json:"orders"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.create)
	r.Get("/orders", h.list)
	r.Get("/orders/{id}", h.get)
	r.Put("/orders/{id}", h.update)
	r.Delete("/orders/{id}", h.delete)
}

func itemInputs(reqs []OrderItemReq) ([]shop.ItemInput, string) {
	items := make([]shop.ItemInput, 0, len(reqs))
	for _, it := range reqs {
		if it.ProductID == "" {
			return nil, "order_items[].product_id is required"
		}
		qty := 1
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		if qty < 1 {
			return nil, "order_items[].quantity must be >= 1"
		}
		items = append(items, shop.ItemInput{ProductID: it.ProductID, Quantity: qty})
	}
	return items, ""
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.OrderItems == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "order_items is required")
		return
	}
	status := shop.StatusInProcess
	if req.Status != nil {
		status = *req.Status
	}
	if !status.Valid() {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid status %q", status))
		return
	}
	items, msg := itemInputs(*req.OrderItems)
	if msg != "" {
		writeDetail(w, http.StatusUnprocessableEntity, msg)
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	order, err := h.Store.Create(ctx, status, items)
	if err != nil {
		writeDomainErr(w, err, "create order")
		return
	}

	h.publish(r, shop.EventOrderCreated, shop.TopicOrderCreated, order.ID, shop.OrderCreatedPayload{
		OrderID: order.ID,
		Status:  order.Status,
		Items:   eventItems(order.Items),
	})
	writeJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()

	os, err := h.Store.List(ctx)
	if err != nil {
		writeDomainErr(w, err, "list orders")
		return
	}
	writeJSON(w, http.StatusOK, OrderListResp{Orders: os})
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	ctx, cancel := reqCtx(r)
	defer cancel()

	// 1) coba cache
	key := fmt.Sprintf(redisx.KeyOrderCache, orderID)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	// 2) fallback DB
	order, err := h.Store.Get(ctx, orderID)
	if err != nil {
		writeDomainErr(w, err, "get order")
		return
	}
	if h.Redis != nil {
		if b, err := json.Marshal(order); err == nil {
			_ = h.Redis.Set(ctx, key, b, redisx.TTLOrderCache).Err()
		}
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid status %q", *req.Status))
		return
	}
	patch := shop.OrderPatch{Status: req.Status}
	if req.OrderItems != nil {
		items, msg := itemInputs(*req.OrderItems)
		if msg != "" {
			writeDetail(w, http.StatusUnprocessableEntity, msg)
			return
		}
		patch.Items = items
	}

	orderID := chi.URLParam(r, "id")
	ctx, cancel := reqCtx(r)
	defer cancel()

	if err := h.Store.Update(ctx, orderID, patch); err != nil {
		writeDomainErr(w, err, "update order")
		return
	}
	h.invalidate(r, orderID)

	payload := shop.OrderUpdatedPayload{OrderID: orderID}
	if patch.Status != nil {
		payload.Status = *patch.Status
	}
	for _, it := range patch.Items {
		payload.Items = append(payload.Items, shop.EventItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	h.publish(r, shop.EventOrderUpdated, shop.TopicOrderUpdated, orderID, payload)

	writeDetail(w, http.StatusOK, "Order updated")
}

func (h *OrdersHandler) delete(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	ctx, cancel := reqCtx(r)
	defer cancel()

	order, err := h.Store.Delete(ctx, orderID)
	if err != nil {
		writeDomainErr(w, err, "delete order")
		return
	}
	h.invalidate(r, orderID)

	h.publish(r, shop.EventOrderDeleted, shop.TopicOrderDeleted, orderID, shop.OrderDeletedPayload{
		OrderID: orderID,
		Items:   eventItems(order.Items),
	})
	writeDetail(w, http.StatusOK, "Order deleted")
}

func (h *OrdersHandler) invalidate(r *http.Request, orderID string) {
	if h.Redis == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderCache, orderID)
	_ = h.Redis.Del(r.Context(), key).Err()
}

func (h *OrdersHandler) publish(r *http.Request, eventType, topic, orderID string, payload any) {
	if h.Producer == nil {
		return
	}
	ev := shop.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	h.Producer.Publish(topic, shop.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func eventItems(items []shop.OrderItem) []shop.EventItem {
	out := make([]shop.EventItem, 0, len(items))
	for _, item := range items {
		out = append(out, shop.EventItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return out
}
