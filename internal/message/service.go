package message

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sharath018/secret-santa-backend/internal/apperr"
	"github.com/sharath018/secret-santa-backend/internal/event"
	"github.com/sharath018/secret-santa-backend/internal/models"
	"github.com/sharath018/secret-santa-backend/internal/participant"
	"github.com/sharath018/secret-santa-backend/utils"
)

const maxContentLength = 2000

var (
	ErrMessageNotFound = apperr.New(apperr.ErrNotFound, "message not found")
	ErrNotParticipant  = apperr.New(apperr.ErrUnauthorized, "only participants can use this event's messages")
	ErrNotAccepted     = apperr.New(apperr.ErrUnauthorized, "only accepted participants can send messages")
	ErrCannotDelete    = apperr.New(apperr.ErrUnauthorized, "only the sender or organizer can delete this message")
	ErrEmptyContent    = apperr.New(apperr.ErrInvalidInput, "message content is required")
	ErrContentTooLong  = apperr.New(apperr.ErrInvalidInput, "message content is too long")
)

type Service struct {
	Repo         Repository
	Events       *event.Service
	Participants participant.Repository

	now func() time.Time
}

func NewService(r Repository, events *event.Service, participants participant.Repository) *Service {
	return &Service{
		Repo:         r,
		Events:       events,
		Participants: participants,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) participantOf(ctx context.Context, eventID, email string) (*models.Participant, error) {
	if _, err := s.Events.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}
	p, err := s.Participants.GetByEventAndEmail(ctx, eventID, utils.NormalizeEmail(email))
	if errors.Is(err, participant.ErrParticipantNotFound) {
		return nil, ErrNotParticipant
	}
	return p, err
}

// ===========================
// 💬 Send Message (accepted participants only)
// An empty senderName falls back to the participant's stored name.
func (s *Service) Send(ctx context.Context, eventID, senderName, senderEmail, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > maxContentLength {
		return nil, ErrContentTooLong
	}

	p, err := s.participantOf(ctx, eventID, senderEmail)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusAccepted {
		return nil, ErrNotAccepted
	}

	name := strings.TrimSpace(senderName)
	if name == "" {
		name = p.Name
	}
	m := &models.Message{
		ID:          uuid.NewString(),
		EventID:     eventID,
		SenderName:  name,
		SenderEmail: p.Email,
		Content:     content,
		CreatedAt:   s.now(),
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ===========================
// 📄 List Messages (participants only, newest first)
func (s *Service) List(ctx context.Context, eventID, requestorEmail string) ([]models.Message, error) {
	if _, err := s.participantOf(ctx, eventID, requestorEmail); err != nil {
		return nil, err
	}
	messages, err := s.Repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// ===========================
// ❌ Delete Message (sender or organizer)
func (s *Service) Delete(ctx context.Context, messageID, requestorEmail string) error {
	m, err := s.Repo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	ev, err := s.Events.GetEventByID(ctx, m.EventID)
	if err != nil {
		return err
	}

	requestor := utils.NormalizeEmail(requestorEmail)
	if requestor != m.SenderEmail && requestor != ev.OrganizerEmail {
		return ErrCannotDelete
	}
	return s.Repo.Delete(ctx, messageID)
}
