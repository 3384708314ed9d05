package assignment

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sharath018/secret-santa-backend/internal/apperr"
	"github.com/sharath018/secret-santa-backend/internal/auditlog"
	"github.com/sharath018/secret-santa-backend/internal/event"
	"github.com/sharath018/secret-santa-backend/internal/models"
	"github.com/sharath018/secret-santa-backend/internal/notification"
	"github.com/sharath018/secret-santa-backend/internal/participant"
	"github.com/sharath018/secret-santa-backend/utils"
)

var (
	ErrAlreadyDrawn    = apperr.New(apperr.ErrInvalidState, "assignments have already been drawn for this event")
	ErrDrawInProgress  = apperr.New(apperr.ErrTransient, "a draw for this event is already in progress, please try again")
	ErrLockUnavailable = apperr.New(apperr.ErrTransient, "draws are temporarily unavailable, please try again later")
)

// lockFailure maps a Locker error to what the caller sees. Only a lock held
// by someone else means a draw is in progress; anything else is an outage.
func lockFailure(ctx context.Context, eventID string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, utils.ErrLockNotAcquired) || errors.Is(err, errLocalLockTimeout) {
		log.Printf("⚠️ Draw lock for event %s is held: %v", eventID, err)
		return ErrDrawInProgress
	}
	log.Printf("❌ Draw lock for event %s unavailable: %v", eventID, err)
	return ErrLockUnavailable
}

type Service struct {
	Repo         Repository
	Events       *event.Service
	Participants participant.Repository
	Scheduler    notification.Scheduler
	Locker       Locker
	AuditSvc     auditlog.Service
	Generator    *Generator

	now func() time.Time
}

func NewService(
	repo Repository,
	events *event.Service,
	participants participant.Repository,
	scheduler notification.Scheduler,
	locker Locker,
	auditSvc auditlog.Service,
	gen *Generator,
) *Service {
	if gen == nil {
		gen = NewGenerator(DefaultMaxAttempts)
	}
	return &Service{
		Repo:         repo,
		Events:       events,
		Participants: participants,
		Scheduler:    scheduler,
		Locker:       locker,
		AuditSvc:     auditSvc,
		Generator:    gen,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func drawLockKey(eventID string) string { return "draw:" + eventID }

// ===========================
// 🎲 Draw Assignments (organizer only, at most once until reset)
func (s *Service) Draw(ctx context.Context, eventID, callerEmail string) (*DrawResult, error) {
	ev, err := s.Events.CheckOrganizer(ctx, eventID, callerEmail, "draw assignments")
	if err != nil {
		return nil, err
	}

	drawn, res, pairs, err := s.draw(ctx, ev)
	if err != nil {
		auditlog.Record(ctx, s.AuditSvc, ev.OrganizerEmail, &ev.ID, auditlog.ActionAssignmentsDrawn,
			map[string]interface{}{"error": err.Error()}, auditlog.StatusFailure)
		return nil, err
	}

	auditlog.Record(ctx, s.AuditSvc, ev.OrganizerEmail, &ev.ID, auditlog.ActionAssignmentsDrawn,
		map[string]interface{}{"assignments": res.Assignments}, auditlog.StatusSuccess)
	log.Printf("🎲 Drew %d assignments for event %s", res.Assignments, ev.ID)

	s.notifyGivers(ctx, drawn, pairs)
	return res, nil
}

func (s *Service) draw(ctx context.Context, ev *models.Event) (*models.Event, *DrawResult, []Pair, error) {
	if ev.IsDrawn {
		return nil, nil, nil, ErrAlreadyDrawn
	}
	accepted, err := s.Participants.ListAccepted(ctx, ev.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := CheckParticipantCount(len(accepted)); err != nil {
		return nil, nil, nil, err
	}

	unlock, err := s.Locker.Lock(ctx, drawLockKey(ev.ID))
	if err != nil {
		return nil, nil, nil, lockFailure(ctx, ev.ID, err)
	}
	defer unlock()

	// Someone may have drawn or changed the roster while we waited.
	current, err := s.Events.GetEventByID(ctx, ev.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if current.IsDrawn {
		return nil, nil, nil, ErrAlreadyDrawn
	}
	accepted, err = s.Participants.ListAccepted(ctx, ev.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	pairs, err := s.Generator.Generate(accepted)
	if err != nil {
		return nil, nil, nil, err
	}

	now := s.now()
	rows := make([]models.Assignment, len(pairs))
	for i, p := range pairs {
		rows[i] = models.Assignment{
			ID:            uuid.NewString(),
			EventID:       ev.ID,
			GiverEmail:    p.Giver.Email,
			GiverName:     p.Giver.Name,
			ReceiverEmail: p.Receiver.Email,
			ReceiverName:  p.Receiver.Name,
			CreatedAt:     now,
		}
	}

	if err := s.Repo.CommitDraw(ctx, ev.ID, rows, now); err != nil {
		return nil, nil, nil, err
	}

	current.IsDrawn = true
	current.UpdatedAt = now
	return current, &DrawResult{EventID: ev.ID, Assignments: len(rows), DrawnAt: now}, pairs, nil
}

// notifyGivers schedules one assignment email per giver. It runs after the
// commit; failures are logged and never undo the draw.
func (s *Service) notifyGivers(ctx context.Context, ev *models.Event, pairs []Pair) {
	if s.Scheduler == nil {
		return
	}
	// The request context may be cancelled once the response is written.
	ctx = context.WithoutCancel(ctx)

	for _, p := range pairs {
		wishlist := p.Receiver.Wishlist
		if fresh, err := s.Participants.GetByEventAndEmail(ctx, ev.ID, p.Receiver.Email); err == nil {
			wishlist = fresh.Wishlist
		}

		job := notification.Job{
			Kind:             notification.KindAssignment,
			EventID:          ev.ID,
			Recipient:        p.Giver.Email,
			EventName:        ev.Name,
			EventDate:        ev.EventDate,
			Budget:           ev.Budget,
			GiverName:        p.Giver.Name,
			ReceiverName:     p.Receiver.Name,
			ReceiverWishlist: wishlist,
		}
		if err := s.Scheduler.Schedule(ctx, job); err != nil {
			log.Printf("⚠️ Failed to schedule assignment notification to %s: %v", p.Giver.Email, err)
		}
	}
}

// ===========================
// 🔄 Reset Assignments (organizer only)
func (s *Service) Reset(ctx context.Context, eventID, callerEmail string) (*ResetResult, error) {
	ev, err := s.Events.CheckOrganizer(ctx, eventID, callerEmail, "reset assignments")
	if err != nil {
		return nil, err
	}

	unlock, err := s.Locker.Lock(ctx, drawLockKey(ev.ID))
	if err != nil {
		return nil, lockFailure(ctx, ev.ID, err)
	}
	defer unlock()

	removed, err := s.Repo.Reset(ctx, ev.ID, s.now())
	if err != nil {
		auditlog.Record(ctx, s.AuditSvc, ev.OrganizerEmail, &ev.ID, auditlog.ActionAssignmentsReset,
			map[string]interface{}{"error": err.Error()}, auditlog.StatusFailure)
		return nil, err
	}

	auditlog.Record(ctx, s.AuditSvc, ev.OrganizerEmail, &ev.ID, auditlog.ActionAssignmentsReset,
		map[string]interface{}{"removed": removed}, auditlog.StatusSuccess)
	log.Printf("🔄 Reset %d assignments for event %s", removed, ev.ID)
	return &ResetResult{EventID: ev.ID, Removed: removed}, nil
}

// ===========================
// 🔍 Own assignment: nil, nil when the caller has none
func (s *Service) GetMyAssignment(ctx context.Context, eventID, email string) (*MyAssignment, error) {
	email = utils.NormalizeEmail(email)
	a, err := s.Repo.GetByGiver(ctx, eventID, email)
	if err != nil || a == nil {
		return nil, err
	}

	mine := &MyAssignment{
		EventID:       a.EventID,
		GiverEmail:    a.GiverEmail,
		GiverName:     a.GiverName,
		ReceiverEmail: a.ReceiverEmail,
		ReceiverName:  a.ReceiverName,
		CreatedAt:     a.CreatedAt,
	}
	receiver, err := s.Participants.GetByEventAndEmail(ctx, eventID, a.ReceiverEmail)
	switch {
	case err == nil:
		mine.ReceiverWishlist = receiver.Wishlist
	case !errors.Is(err, participant.ErrParticipantNotFound):
		return nil, err
	}
	return mine, nil
}

// ===========================
// 📄 All assignments (organizer only)
func (s *Service) GetEventAssignments(ctx context.Context, eventID, callerEmail string) ([]models.Assignment, error) {
	if _, err := s.Events.CheckOrganizer(ctx, eventID, callerEmail, "view all assignments"); err != nil {
		return nil, err
	}
	assignments, err := s.Repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	return assignments, nil
}
