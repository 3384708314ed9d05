package event

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sharath018/secret-santa-backend/internal/apperr"
	"github.com/sharath018/secret-santa-backend/internal/auditlog"
	"github.com/sharath018/secret-santa-backend/internal/models"
	"github.com/sharath018/secret-santa-backend/utils"
)

const (
	joinCodeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	joinCodeLength      = 6
	maxJoinCodeAttempts = 20
	dateLayout          = "2006-01-02"
)

var (
	ErrEventNotFound     = apperr.New(apperr.ErrNotFound, "event not found")
	ErrInvalidJoinCode   = apperr.New(apperr.ErrNotFound, "invalid join code")
	ErrJoinCodeExhausted = apperr.New(apperr.ErrTransient, "could not generate a unique join code, please try again")
	ErrInvalidDate       = apperr.New(apperr.ErrInvalidInput, "invalid event_date format. Use YYYY-MM-DD")
	ErrInvalidBudget     = apperr.New(apperr.ErrInvalidInput, "budget cannot be negative")
	ErrNameRequired      = apperr.New(apperr.ErrInvalidInput, "event name is required")
	ErrInvalidOrganizer  = apperr.New(apperr.ErrInvalidInput, "organizer name and a valid organizer email are required")
)

// RequireOrganizer fails with an Unauthorized error unless email is the
// event's organizer. action completes "only the organizer can ...".
func RequireOrganizer(e *models.Event, email, action string) error {
	if e.OrganizerEmail != utils.NormalizeEmail(email) {
		return apperr.New(apperr.ErrUnauthorized, "only the organizer can "+action)
	}
	return nil
}

// Service wraps business logic for Secret Santa events
type Service struct {
	Repo     Repository
	AuditSvc auditlog.Service

	now     func() time.Time
	newCode func() string
}

func NewService(r Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
		now:      func() time.Time { return time.Now().UTC() },
		newCode:  randomJoinCode,
	}
}

func randomJoinCode() string {
	var b strings.Builder
	for i := 0; i < joinCodeLength; i++ {
		b.WriteByte(joinCodeAlphabet[rand.IntN(len(joinCodeAlphabet))])
	}
	return b.String()
}

// NormalizeJoinCode is how user-typed codes are matched.
func NormalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ===========================
// 🎯 Create Event (organizer joins as the first accepted participant)
func (s *Service) CreateEvent(ctx context.Context, req *CreateEventRequest) (*CreateEventResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if _, err := time.Parse(dateLayout, req.EventDate); err != nil {
		return nil, ErrInvalidDate
	}
	if req.Budget != nil && *req.Budget < 0 {
		return nil, ErrInvalidBudget
	}
	organizerName := strings.TrimSpace(req.OrganizerName)
	organizerEmail := utils.NormalizeEmail(req.OrganizerEmail)
	if organizerName == "" || !utils.IsValidEmail(organizerEmail) {
		return nil, ErrInvalidOrganizer
	}

	code, err := s.uniqueJoinCode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ev := &models.Event{
		ID:             uuid.NewString(),
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		EventDate:      req.EventDate,
		Budget:         req.Budget,
		OrganizerName:  organizerName,
		OrganizerEmail: organizerEmail,
		JoinCode:       code,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	organizer := &models.Participant{
		ID:          uuid.NewString(),
		EventID:     ev.ID,
		Name:        organizerName,
		Email:       organizerEmail,
		Status:      models.StatusAccepted,
		IsOrganizer: true,
		CreatedAt:   now,
	}

	if err := s.Repo.Create(ctx, ev, organizer); err != nil {
		auditlog.Record(ctx, s.AuditSvc, organizerEmail, nil, auditlog.ActionEventCreated,
			map[string]interface{}{"name": name, "error": err.Error()}, auditlog.StatusFailure)
		return nil, err
	}

	auditlog.Record(ctx, s.AuditSvc, organizerEmail, &ev.ID, auditlog.ActionEventCreated,
		map[string]interface{}{"name": ev.Name, "event_date": ev.EventDate, "join_code": ev.JoinCode}, auditlog.StatusSuccess)

	return &CreateEventResponse{EventID: ev.ID, JoinCode: ev.JoinCode}, nil
}

func (s *Service) uniqueJoinCode(ctx context.Context) (string, error) {
	for i := 0; i < maxJoinCodeAttempts; i++ {
		code := s.newCode()
		exists, err := s.Repo.JoinCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrJoinCodeExhausted
}

// ===========================
// 🔍 Lookups
func (s *Service) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) GetByJoinCode(ctx context.Context, code string) (*models.Event, error) {
	return s.Repo.GetByJoinCode(ctx, NormalizeJoinCode(code))
}

func (s *Service) GetEventDetails(ctx context.Context, id string) (*EventDetails, error) {
	ev, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	participants, err := s.Repo.ListParticipants(ctx, id)
	if err != nil {
		return nil, err
	}

	accepted := 0
	for _, p := range participants {
		if p.Status == models.StatusAccepted {
			accepted++
		}
	}
	return &EventDetails{Event: *ev, Participants: participants, ParticipantCount: accepted}, nil
}

// CheckOrganizer loads the event and applies RequireOrganizer.
func (s *Service) CheckOrganizer(ctx context.Context, eventID, email, action string) (*models.Event, error) {
	ev, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := RequireOrganizer(ev, email, action); err != nil {
		return nil, err
	}
	return ev, nil
}

// ===========================
// 📄 Events the caller takes part in
func (s *Service) ListMyEvents(ctx context.Context, email string) ([]EventSummary, error) {
	events, err := s.Repo.ListByParticipantEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []EventSummary{}
	}
	return events, nil
}

// ===========================
// 🛠 Update Event (organizer only)
func (s *Service) UpdateEvent(ctx context.Context, id, callerEmail string, req *UpdateEventRequest) error {
	ev, err := s.CheckOrganizer(ctx, id, callerEmail, "update this event")
	if err != nil {
		return err
	}

	fields := map[string]interface{}{"updated_at": s.now()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return ErrNameRequired
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.EventDate != nil {
		if _, err := time.Parse(dateLayout, *req.EventDate); err != nil {
			return ErrInvalidDate
		}
		fields["event_date"] = *req.EventDate
	}
	if req.Budget != nil {
		if *req.Budget < 0 {
			return ErrInvalidBudget
		}
		fields["budget"] = *req.Budget
	}

	if err := s.Repo.Update(ctx, id, fields); err != nil {
		return err
	}

	delete(fields, "updated_at")
	auditlog.Record(ctx, s.AuditSvc, ev.OrganizerEmail, &ev.ID, auditlog.ActionEventUpdated,
		map[string]interface{}{"changes": fields}, auditlog.StatusSuccess)
	return nil
}

// ===========================
// ❌ Delete Event (organizer only, cascades)
func (s *Service) DeleteEvent(ctx context.Context, id, callerEmail string) error {
	ev, err := s.CheckOrganizer(ctx, id, callerEmail, "delete this event")
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		auditlog.Record(ctx, s.AuditSvc, ev.OrganizerEmail, &ev.ID, auditlog.ActionEventDeleted,
			map[string]interface{}{"name": ev.Name, "error": err.Error()}, auditlog.StatusFailure)
		return err
	}

	auditlog.Record(ctx, s.AuditSvc, ev.OrganizerEmail, &ev.ID, auditlog.ActionEventDeleted,
		map[string]interface{}{"name": ev.Name, "was_drawn": ev.IsDrawn}, auditlog.StatusSuccess)
	return nil
}
