package utils

import (
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sharath018/secret-santa-backend/config"
)

var KafkaWriter *kafka.Writer

// InitializeKafka builds the shared async producer. It stays nil when no
// brokers are configured and notifications use the in-process queue instead.
func InitializeKafka(cfg *config.Config) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("ℹ️ KAFKA_BROKERS not set, notifications will use the in-process queue")
		return
	}

	KafkaWriter = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaNotificationTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Printf("❌ Kafka publish failed for %d message(s): %v", len(messages), err)
			}
		},
	}
	log.Printf("✅ Kafka producer ready: brokers=%v topic=%s", cfg.KafkaBrokers, cfg.KafkaNotificationTopic)
}

// NewKafkaReader returns a consumer-group reader on the notification topic.
func NewKafkaReader(cfg *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		GroupID:        cfg.KafkaGroupID,
		Topic:          cfg.KafkaNotificationTopic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
}

func CloseKafka() {
	if KafkaWriter == nil {
		return
	}
	if err := KafkaWriter.Close(); err != nil {
		log.Printf("⚠️ Kafka writer close: %v", err)
	}
}
