package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapPayload(t *testing.T) {
	type payload struct {
		OrderID string `json:"order_id"`
		Qty     int    `json:"qty"`
	}

	raw := json.RawMessage(`{"order_id":"o-1","qty":3}`)
	p, err := UnwrapPayload[payload](raw)
	require.NoError(t, err)
	assert.Equal(t, "o-1", p.OrderID)
	assert.Equal(t, 3, p.Qty)

	_, err = UnwrapPayload[payload](json.RawMessage(`{broken`))
	assert.Error(t, err)
}
