package rabbitmq_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teslo/pkg/rabbitmq"
)

func TestDecodeOrderEvent(t *testing.T) {
	event, err := rabbitmq.DecodeOrderEvent([]byte(`{"id":"e1","type":"order.paid","orderId":"o1","userId":"u1","total":"30.25","transactionId":"TX"}`))
	require.NoError(t, err)
	assert.Equal(t, rabbitmq.EventOrderPaid, event.Type)
	assert.Equal(t, "o1", event.OrderID)
	assert.Equal(t, "30.25", event.Total)
	assert.Equal(t, "TX", event.TransactionID)

	_, err = rabbitmq.DecodeOrderEvent([]byte(`not json`))
	assert.Error(t, err)

	_, err = rabbitmq.DecodeOrderEvent([]byte(`{"type":"order.paid"}`))
	assert.Error(t, err)
}

func TestClient_PublishAndConsume(t *testing.T) {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		t.Skip("RABBITMQ_URL not set")
	}

	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: url})
	require.NoError(t, err)
	defer client.Close()

	received := make(chan rabbitmq.OrderEvent, 8)
	require.NoError(t, client.ConsumeOrderEvents(func(e rabbitmq.OrderEvent) error {
		received <- e
		return nil
	}))

	require.NoError(t, client.PublishOrderEvent(rabbitmq.OrderEvent{
		Type:    rabbitmq.EventOrderCreated,
		OrderID: "order-under-test",
		UserID:  "u1",
		Total:   "30.25",
	}))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case e := <-received:
			if e.OrderID != "order-under-test" {
				continue
			}
			assert.Equal(t, rabbitmq.EventOrderCreated, e.Type)
			assert.NotEmpty(t, e.ID)
			assert.False(t, e.Timestamp.IsZero())
			return
		case <-timeout:
			t.Fatal("order event was not consumed")
		}
	}
}
