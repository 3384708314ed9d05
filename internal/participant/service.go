package participant

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sharath018/secret-santa-backend/internal/apperr"
	"github.com/sharath018/secret-santa-backend/internal/auditlog"
	"github.com/sharath018/secret-santa-backend/internal/event"
	"github.com/sharath018/secret-santa-backend/internal/models"
	"github.com/sharath018/secret-santa-backend/internal/notification"
	"github.com/sharath018/secret-santa-backend/utils"
)

var (
	ErrParticipantNotFound   = apperr.New(apperr.ErrNotFound, "participant not found")
	ErrAlreadyJoined         = apperr.New(apperr.ErrConflict, "already joined this event")
	ErrCannotRemoveOrganizer = apperr.New(apperr.ErrInvalidState, "cannot remove the organizer")
	ErrInvalidStatus         = apperr.New(apperr.ErrInvalidInput, "status must be one of pending, accepted, declined")
	ErrInvalidParticipant    = apperr.New(apperr.ErrInvalidInput, "name and a valid email are required")
	ErrNoInvitees            = apperr.New(apperr.ErrInvalidInput, "at least one email is required")
)

type Service struct {
	Repo      Repository
	Events    *event.Service
	Scheduler notification.Scheduler
	AuditSvc  auditlog.Service

	now func() time.Time
}

func NewService(r Repository, events *event.Service, scheduler notification.Scheduler, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:      r,
		Events:    events,
		Scheduler: scheduler,
		AuditSvc:  auditSvc,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ===========================
// 🙋 Join by code
func (s *Service) Join(ctx context.Context, joinCode, name, email string) (*models.Participant, error) {
	name = strings.TrimSpace(name)
	email = utils.NormalizeEmail(email)
	if name == "" || !utils.IsValidEmail(email) {
		return nil, ErrInvalidParticipant
	}

	ev, err := s.Events.GetByJoinCode(ctx, joinCode)
	if err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetByEventAndEmail(ctx, ev.ID, email); err == nil {
		return nil, ErrAlreadyJoined
	} else if !errors.Is(err, ErrParticipantNotFound) {
		return nil, err
	}

	p := &models.Participant{
		ID:        uuid.NewString(),
		EventID:   ev.ID,
		Name:      name,
		Email:     email,
		Status:    models.StatusAccepted,
		CreatedAt: s.now(),
	}
	// The unique index still catches a concurrent join with the same email.
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	log.Printf("🙋 %s joined event %s", email, ev.ID)
	return p, nil
}

// ===========================
// 📄 Queries
func (s *Service) List(ctx context.Context, eventID string) ([]models.Participant, error) {
	if _, err := s.Events.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}
	participants, err := s.Repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []models.Participant{}
	}
	return participants, nil
}

// Get returns nil, nil when email is not a participant of the event.
func (s *Service) Get(ctx context.Context, eventID, email string) (*models.Participant, error) {
	p, err := s.Repo.GetByEventAndEmail(ctx, eventID, utils.NormalizeEmail(email))
	if errors.Is(err, ErrParticipantNotFound) {
		return nil, nil
	}
	return p, err
}

// ===========================
// 🛠 Self-service updates
func (s *Service) UpdateWishlist(ctx context.Context, eventID, email, wishlist string) error {
	return s.Repo.Update(ctx, eventID, utils.NormalizeEmail(email), map[string]interface{}{
		"wishlist": strings.TrimSpace(wishlist),
	})
}

func (s *Service) UpdateStatus(ctx context.Context, eventID, email, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.Repo.Update(ctx, eventID, utils.NormalizeEmail(email), map[string]interface{}{
		"status": status,
	})
}

// ===========================
// ❌ Remove participant (organizer only)
// The participant's assignments are voided; the rest are not re-paired.
func (s *Service) Remove(ctx context.Context, eventID, participantEmail, callerEmail string) error {
	ev, err := s.Events.CheckOrganizer(ctx, eventID, callerEmail, "remove participants")
	if err != nil {
		return err
	}

	target := utils.NormalizeEmail(participantEmail)
	if target == ev.OrganizerEmail {
		return ErrCannotRemoveOrganizer
	}

	voided, err := s.Repo.Remove(ctx, eventID, target)
	if err != nil {
		if !errors.Is(err, ErrParticipantNotFound) {
			auditlog.Record(ctx, s.AuditSvc, ev.OrganizerEmail, &ev.ID, auditlog.ActionParticipantRemoved,
				map[string]interface{}{"participant_email": target, "error": err.Error()}, auditlog.StatusFailure)
		}
		return err
	}

	auditlog.Record(ctx, s.AuditSvc, ev.OrganizerEmail, &ev.ID, auditlog.ActionParticipantRemoved,
		map[string]interface{}{"participant_email": target, "assignments_voided": voided}, auditlog.StatusSuccess)
	return nil
}

// ===========================
// 📨 Bulk invitations (organizer only)
// Invalid addresses and addresses that could not be queued land in Failed;
// existing participants are skipped silently.
func (s *Service) Invite(ctx context.Context, eventID, callerEmail string, emails []string) (*InviteResult, error) {
	if len(emails) == 0 {
		return nil, ErrNoInvitees
	}
	ev, err := s.Events.CheckOrganizer(ctx, eventID, callerEmail, "send invitations")
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	joined := make(map[string]bool, len(existing))
	for _, p := range existing {
		joined[p.Email] = true
	}

	result := &InviteResult{Failed: []string{}}
	seen := make(map[string]bool, len(emails))
	for _, raw := range emails {
		email := utils.NormalizeEmail(raw)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true

		if !utils.IsValidEmail(email) {
			result.Failed = append(result.Failed, email)
			continue
		}
		if joined[email] {
			continue
		}

		job := notification.Job{
			Kind:             notification.KindInvitation,
			EventID:          ev.ID,
			Recipient:        email,
			EventName:        ev.Name,
			EventDate:        ev.EventDate,
			Budget:           ev.Budget,
			OrganizerName:    ev.OrganizerName,
			EventDescription: ev.Description,
			JoinCode:         ev.JoinCode,
		}
		if err := s.Scheduler.Schedule(ctx, job); err != nil {
			log.Printf("⚠️ Failed to schedule invitation to %s: %v", email, err)
			result.Failed = append(result.Failed, email)
			continue
		}
		result.Sent++
	}

	auditlog.Record(ctx, s.AuditSvc, ev.OrganizerEmail, &ev.ID, auditlog.ActionInvitationsSent,
		map[string]interface{}{"sent": result.Sent, "failed": len(result.Failed)}, auditlog.StatusSuccess)
	return result, nil
}
