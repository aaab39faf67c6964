package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// messageWriter часть *kafka.Writer, нужная издателю
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события в топик Kafka
// Ключ сообщения - ID бронирования, чтобы события одной брони шли в одну партицию
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher создает издателя для топика
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish пишет событие в топик
func (p *KafkaPublisher) Publish(ctx context.Context, event BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}

	msg := kafka.Message{
		Key:     []byte(event.BookingID),
		Value:   body,
		Time:    event.OccurredAt,
		Headers: []kafka.Header{{Key: "type", Value: []byte(event.Type)}},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: kafka %s: %v", ErrPublish, event.Type, err)
	}
	return nil
}

// Close сбрасывает буфер и закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
