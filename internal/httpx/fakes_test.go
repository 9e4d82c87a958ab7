package httpx

import (
	"context"
	"sync"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/vdraganov/go-shop-api/internal/shop"
)

type fakeProductStore struct {
	createFn func(ctx context.Context, in shop.ProductInput) (shop.Product, error)
	listFn   func(ctx context.Context) ([]shop.Product, error)
	getFn    func(ctx context.Context, id string) (shop.Product, error)
	updateFn func(ctx context.Context, id string, patch shop.ProductPatch) (shop.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeProductStore) Create(ctx context.Context, in shop.ProductInput) (shop.Product, error) {
	return f.createFn(ctx, in)
}
func (f *fakeProductStore) List(ctx context.Context) ([]shop.Product, error) {
	return f.listFn(ctx)
}
func (f *fakeProductStore) Get(ctx context.Context, id string) (shop.Product, error) {
	return f.getFn(ctx, id)
}
func (f *fakeProductStore) Update(ctx context.Context, id string, patch shop.ProductPatch) (shop.Product, error) {
	return f.updateFn(ctx, id, patch)
}
func (f *fakeProductStore) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeOrderStore struct {
	createFn func(ctx context.Context, status shop.Status, items []shop.ItemInput) (shop.Order, error)
	listFn   func(ctx context.Context) ([]shop.Order, error)
	getFn    func(ctx context.Context, id string) (shop.Order, error)
	updateFn func(ctx context.Context, id string, patch shop.OrderPatch) error
	deleteFn func(ctx context.Context, id string) (shop.Order, error)
}

func (f *fakeOrderStore) Create(ctx context.Context, status shop.Status, items []shop.ItemInput) (shop.Order, error) {
	return f.createFn(ctx, status, items)
}
func (f *fakeOrderStore) List(ctx context.Context) ([]shop.Order, error) {
	return f.listFn(ctx)
}
func (f *fakeOrderStore) Get(ctx context.Context, id string) (shop.Order, error) {
	return f.getFn(ctx, id)
}
func (f *fakeOrderStore) Update(ctx context.Context, id string, patch shop.OrderPatch) error {
	return f.updateFn(ctx, id, patch)
}
func (f *fakeOrderStore) Delete(ctx context.Context, id string) (shop.Order, error) {
	return f.deleteFn(ctx, id)
}

type publishedMsg struct {
	topic string
	key   []byte
	value []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []publishedMsg
}

func (f *fakePublisher) Publish(topic string, key, value []byte, _ ...kafkago.Header) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, publishedMsg{topic: topic, key: key, value: value})
}

func (f *fakePublisher) published() []publishedMsg {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]publishedMsg(nil), f.msgs...)
}
