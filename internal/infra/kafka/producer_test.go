package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSyncProducer struct {
	sarama.SyncProducer
	sent []*sarama.ProducerMessage
	err  error
}

func (f *fakeSyncProducer) SendMessage(msg *sarama.ProducerMessage) (int32, int64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	f.sent = append(f.sent, msg)
	return 0, int64(len(f.sent)), nil
}

func (f *fakeSyncProducer) Close() error { return nil }

func TestProducer_Publish(t *testing.T) {
	fake := &fakeSyncProducer{}
	p := NewProducerFromSarama(fake)

	err := p.Publish(context.Background(), "order.paid", map[string]any{"orderId": "abc"})
	require.NoError(t, err)
	require.Len(t, fake.sent, 1)
	assert.Equal(t, "order.paid", fake.sent[0].Topic)

	raw, err := fake.sent[0].Value.Encode()
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "abc", body["orderId"])
}

func TestProducer_PublishError(t *testing.T) {
	p := NewProducerFromSarama(&fakeSyncProducer{err: errors.New("broker down")})

	err := p.Publish(context.Background(), "order.created", map[string]any{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}
