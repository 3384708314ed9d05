package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/segmentio/kafka-go"
)

// Scheduler hands a job off for delivery. Implementations never wait for the
// email to go out.
type Scheduler interface {
	Schedule(ctx context.Context, job Job) error
}

var (
	ErrQueueFull   = errors.New("notification queue is full")
	ErrQueueClosed = errors.New("notification queue is closed")
)

// ===========================
// 📨 In-process queue

// Queue is a buffered channel drained by a fixed pool of workers.
type Queue struct {
	svc  Service
	jobs chan Job
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewQueue(svc Service, workers, size int) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if size < 0 {
		size = 0
	}
	q := &Queue{svc: svc, jobs: make(chan Job, size)}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	log.Printf("✅ Notification queue started: workers=%d size=%d", workers, size)
	return q
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for job := range q.jobs {
		// Deliver already logged the failure and recorded it.
		_ = q.svc.Deliver(context.Background(), job)
	}
}

func (q *Queue) Schedule(_ context.Context, job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting jobs and waits for queued ones to be delivered.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	q.wg.Wait()
}

// ===========================
// 📨 Kafka producer

// MessageWriter is the part of *kafka.Writer the scheduler uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaScheduler struct {
	writer MessageWriter
}

// NewKafkaScheduler expects an async writer so Schedule returns once the
// message is buffered.
func NewKafkaScheduler(w MessageWriter) *KafkaScheduler {
	return &KafkaScheduler{writer: w}
}

func (k *KafkaScheduler) Schedule(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode notification job: %w", err)
	}
	// Keyed by event so one event's jobs stay on one partition.
	msg := kafka.Message{
		Key:   []byte(job.EventID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(job.Kind)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish notification job: %w", err)
	}
	return nil
}
