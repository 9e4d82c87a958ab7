package redisx

import "time"

const (
	// Cache body GET /orders/{id}: order:{order_id} -> JSON order lengkap.
	// DB tetap source of truth; semua mutasi order DEL key ini.
	KeyOrderCache = "order:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLOrderCache = 5 * time.Minute
	TTLDedup      = 48 * time.Hour
)
