package kafka

import (
	"context"
	"encoding/json"

	"voting-service/internal/domain"

	"github.com/IBM/sarama"
)

// Producer publishes event envelopes to the shared events topic.
type Producer struct {
	producer     sarama.SyncProducer
	topic        string
	producerName string
}

// NewProducer creates a synchronous Kafka producer. Acks from all replicas
// are required so a returned success means the event is durable.
func NewProducer(brokers []string, topic, producerName string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Version = sarama.V2_0_0_0
	config.ClientID = producerName

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &Producer{producer: producer, topic: topic, producerName: producerName}, nil
}

// Publish wraps data in a versioned envelope and sends it. The event type
// doubles as the message key so events of one type stay ordered.
func (p *Producer) Publish(ctx context.Context, eventType string, data any) error {
	env, err := domain.NewEnvelope(eventType, p.producerName, data)
	if err != nil {
		return err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(eventType),
		Value: sarama.ByteEncoder(body),
	})
	return err
}

// Close shuts the underlying producer down.
func (p *Producer) Close() error {
	return p.producer.Close()
}
