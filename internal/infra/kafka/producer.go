package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"storefront/internal/infra"

	"github.com/IBM/sarama"
)

var _ infra.PublisherInterface = (*Producer)(nil)

// Producer publishes each event to the topic named by its routing key.
type Producer struct {
	producer sarama.SyncProducer
}

func NewProducer(broker string, attempts int) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	var (
		producer sarama.SyncProducer
		err      error
	)
	for i := 1; i <= attempts; i++ {
		producer, err = sarama.NewSyncProducer([]string{broker}, config)
		if err == nil {
			log.Printf("kafka producer connected to %s", broker)
			return &Producer{producer: producer}, nil
		}
		log.Printf("waiting for kafka (%d/%d): %v", i, attempts, err)
		if i < attempts {
			time.Sleep(2 * time.Second)
		}
	}
	return nil, fmt.Errorf("connect to kafka %s: %w", broker, err)
}

func NewProducerFromSarama(p sarama.SyncProducer) *Producer {
	return &Producer{producer: p}
}

func (p *Producer) Publish(ctx context.Context, topic string, data any) error {
	value, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", topic, err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("send %s: %w", topic, err)
	}

	log.Printf("published %s", topic)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
