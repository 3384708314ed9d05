package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// StartKafkaConsumer runs ConsumeMessages in the background until ctx is done.
func StartKafkaConsumer(ctx context.Context, svc Service, reader MessageReader) {
	go func() {
		if err := ConsumeMessages(ctx, svc, reader); err != nil {
			log.Printf("❌ Notification consumer stopped: %v", err)
		}
	}()
	log.Println("📨 Notification consumer started")
}

// ConsumeMessages delivers jobs one by one and commits each offset after the
// attempt, successful or not. Failed deliveries are already in the
// notification log and are not retried. It returns nil when ctx is cancelled.
func ConsumeMessages(ctx context.Context, svc Service, reader MessageReader) error {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("⚠️ Kafka reader close: %v", err)
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var job Job
		if err := json.Unmarshal(msg.Value, &job); err != nil {
			log.Printf("⚠️ Dropping malformed notification job at offset %d: %v", msg.Offset, err)
		} else {
			_ = svc.Deliver(ctx, job)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("⚠️ Kafka commit failed at offset %d: %v", msg.Offset, err)
		}
	}
}
