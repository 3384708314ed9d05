package notification

import (
	"context"
	"log"
	"time"

	"github.com/sharath018/secret-santa-backend/config"
)

type Service interface {
	// Deliver renders and sends one job, recording the outcome in the log.
	Deliver(ctx context.Context, job Job) error
	ListByEvent(ctx context.Context, eventID string) ([]NotificationLog, error)
}

type service struct {
	repo   Repository
	email  Channel
	appURL string
	now    func() time.Time
}

func NewService(repo Repository, email Channel, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		email:  email,
		appURL: cfg.AppURL,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Deliver(ctx context.Context, job Job) error {
	now := s.now()
	entry := &NotificationLog{
		EventID:   job.EventID,
		Kind:      job.Kind,
		Channel:   "email",
		Recipient: job.Recipient,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	msg, err := Render(job, s.appURL)
	if err != nil {
		// Still logged, so the organizer sees the attempt.
		errMsg := err.Error()
		entry.Status = StatusFailed
		entry.Error = &errMsg
		if logErr := s.repo.CreateLog(ctx, entry); logErr != nil {
			log.Printf("⚠️ Notification log create failed: %v", logErr)
		}
		log.Printf("❌ %s notification to %s not rendered: %v", job.Kind, job.Recipient, err)
		return err
	}
	entry.Subject = msg.Subject

	if err := s.repo.CreateLog(ctx, entry); err != nil {
		// Delivery matters more than the log row.
		log.Printf("⚠️ Notification log create failed: %v", err)
	}

	sendErr := s.email.Send([]string{job.Recipient}, msg.Subject, msg.Body)

	entry.Status = StatusSent
	if sendErr != nil {
		errMsg := sendErr.Error()
		entry.Status = StatusFailed
		entry.Error = &errMsg
	}
	entry.UpdatedAt = s.now()
	if entry.ID != 0 {
		if err := s.repo.UpdateLog(ctx, entry); err != nil {
			log.Printf("⚠️ Notification log update failed: %v", err)
		}
	}

	if sendErr != nil {
		log.Printf("❌ %s notification to %s failed: %v", job.Kind, job.Recipient, sendErr)
		return sendErr
	}
	log.Printf("✅ %s notification sent to %s", job.Kind, job.Recipient)
	return nil
}

func (s *service) ListByEvent(ctx context.Context, eventID string) ([]NotificationLog, error) {
	return s.repo.ListByEvent(ctx, eventID)
}
