package shop

const (
	TopicOrderCreated = "shop.order.created"
	TopicOrderUpdated = "shop.order.updated"
	TopicOrderDeleted = "shop.order.deleted"
)

// Partition key = order_id, supaya semua event 1 order maintain urutan.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
