// Package memstore keeps every repository in process memory behind one
// mutex. It backs the server when no database is configured and the
// service tests.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sharath018/secret-santa-backend/internal/assignment"
	"github.com/sharath018/secret-santa-backend/internal/auditlog"
	"github.com/sharath018/secret-santa-backend/internal/event"
	"github.com/sharath018/secret-santa-backend/internal/message"
	"github.com/sharath018/secret-santa-backend/internal/models"
	"github.com/sharath018/secret-santa-backend/internal/notification"
	"github.com/sharath018/secret-santa-backend/internal/participant"
)

var errDuplicateJoinCode = errors.New("memstore: join code already in use")

type Store struct {
	mu sync.RWMutex

	events        map[string]models.Event
	participants  []models.Participant
	assignments   []models.Assignment
	messages      []models.Message
	auditLogs     []auditlog.AuditLog
	notifications []notification.NotificationLog
}

func New() *Store {
	return &Store{events: make(map[string]models.Event)}
}

func (s *Store) Events() event.Repository { return eventRepo{s} }
func (s *Store) Participants() participant.Repository { return participantRepo{s} }
func (s *Store) Assignments() assignment.Repository { return assignmentRepo{s} }
func (s *Store) Messages() message.Repository { return messageRepo{s} }
func (s *Store) AuditLogs() auditlog.Repository { return auditRepo{s} }
func (s *Store) Notifications() notification.Repository { return notificationRepo{s} }

// ===========================
// 🎯 Events

type eventRepo struct{ s *Store }

func (r eventRepo) Create(_ context.Context, e *models.Event, organizer *models.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.events {
		if existing.JoinCode == e.JoinCode {
			return errDuplicateJoinCode
		}
	}
	r.s.events[e.ID] = *e
	r.s.participants = append(r.s.participants, *organizer)
	return nil
}

func (r eventRepo) GetByID(_ context.Context, id string) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return &e, nil
}

func (r eventRepo) GetByJoinCode(_ context.Context, code string) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.events {
		if e.JoinCode == code {
			return &e, nil
		}
	}
	return nil, event.ErrInvalidJoinCode
}

func (r eventRepo) JoinCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByJoinCode(ctx, code)
	return err == nil, nil
}

func (r eventRepo) Update(_ context.Context, id string, fields map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return event.ErrEventNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			e.Name = v.(string)
		case "description":
			e.Description = v.(string)
		case "event_date":
			e.EventDate = v.(string)
		case "budget":
			b := v.(float64)
			e.Budget = &b
		case "updated_at":
			e.UpdatedAt = v.(time.Time)
		}
	}
	r.s.events[id] = e
	return nil
}

func (r eventRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return event.ErrEventNotFound
	}
	delete(r.s.events, id)
	r.s.participants = filter(r.s.participants, func(p models.Participant) bool { return p.EventID != id })
	r.s.assignments = filter(r.s.assignments, func(a models.Assignment) bool { return a.EventID != id })
	r.s.messages = filter(r.s.messages, func(m models.Message) bool { return m.EventID != id })
	return nil
}

func (r eventRepo) ListByParticipantEmail(_ context.Context, email string) ([]event.EventSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []event.EventSummary
	for _, p := range r.s.participants {
		if p.Email != email || p.Status != models.StatusAccepted {
			continue
		}
		e, ok := r.s.events[p.EventID]
		if !ok {
			continue
		}
		out = append(out, event.EventSummary{
			Event:            e,
			IsOrganizer:      p.IsOrganizer,
			ParticipantCount: r.s.countAccepted(e.ID),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r eventRepo) ListParticipants(_ context.Context, eventID string) ([]models.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return filter(r.s.participants, func(p models.Participant) bool { return p.EventID == eventID }), nil
}

func (s *Store) countAccepted(eventID string) int {
	n := 0
	for _, p := range s.participants {
		if p.EventID == eventID && p.Status == models.StatusAccepted {
			n++
		}
	}
	return n
}

// ===========================
// 🙋 Participants

type participantRepo struct{ s *Store }

func (r participantRepo) Create(_ context.Context, p *models.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.participantIndex(p.EventID, p.Email) >= 0 {
		return participant.ErrAlreadyJoined
	}
	r.s.participants = append(r.s.participants, *p)
	return nil
}

func (r participantRepo) GetByEventAndEmail(_ context.Context, eventID, email string) (*models.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := r.s.participantIndex(eventID, email)
	if i < 0 {
		return nil, participant.ErrParticipantNotFound
	}
	p := r.s.participants[i]
	return &p, nil
}

func (r participantRepo) ListByEvent(_ context.Context, eventID string) ([]models.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return filter(r.s.participants, func(p models.Participant) bool { return p.EventID == eventID }), nil
}

func (r participantRepo) ListAccepted(_ context.Context, eventID string) ([]models.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return filter(r.s.participants, func(p models.Participant) bool {
		return p.EventID == eventID && p.Status == models.StatusAccepted
	}), nil
}

func (r participantRepo) Update(_ context.Context, eventID, email string, fields map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.participantIndex(eventID, email)
	if i < 0 {
		return participant.ErrParticipantNotFound
	}
	p := &r.s.participants[i]
	for k, v := range fields {
		switch k {
		case "wishlist":
			p.Wishlist = v.(string)
		case "status":
			p.Status = v.(string)
		case "name":
			p.Name = v.(string)
		}
	}
	return nil
}

func (r participantRepo) Remove(_ context.Context, eventID, email string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.participantIndex(eventID, email)
	if i < 0 {
		return 0, participant.ErrParticipantNotFound
	}
	r.s.participants = append(r.s.participants[:i:i], r.s.participants[i+1:]...)

	before := len(r.s.assignments)
	r.s.assignments = filter(r.s.assignments, func(a models.Assignment) bool {
		return a.EventID != eventID || (a.GiverEmail != email && a.ReceiverEmail != email)
	})
	return int64(before - len(r.s.assignments)), nil
}

func (s *Store) participantIndex(eventID, email string) int {
	for i, p := range s.participants {
		if p.EventID == eventID && p.Email == email {
			return i
		}
	}
	return -1
}

// ===========================
// 🎲 Assignments

type assignmentRepo struct{ s *Store }

// CommitDraw checks and writes under the store lock, the same all-or-nothing
// contract as the SQL transaction.
func (r assignmentRepo) CommitDraw(_ context.Context, eventID string, assignments []models.Assignment, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[eventID]
	if !ok {
		return event.ErrEventNotFound
	}
	if e.IsDrawn {
		return assignment.ErrAlreadyDrawn
	}

	givers := make(map[string]bool, len(assignments))
	receivers := make(map[string]bool, len(assignments))
	for _, a := range r.s.assignments {
		if a.EventID == eventID {
			givers[a.GiverEmail] = true
			receivers[a.ReceiverEmail] = true
		}
	}
	for _, a := range assignments {
		if givers[a.GiverEmail] || receivers[a.ReceiverEmail] {
			return assignment.ErrAlreadyDrawn
		}
		givers[a.GiverEmail] = true
		receivers[a.ReceiverEmail] = true
	}

	e.IsDrawn = true
	e.UpdatedAt = at
	r.s.events[eventID] = e
	r.s.assignments = append(r.s.assignments, assignments...)
	return nil
}

func (r assignmentRepo) Reset(_ context.Context, eventID string, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	before := len(r.s.assignments)
	r.s.assignments = filter(r.s.assignments, func(a models.Assignment) bool { return a.EventID != eventID })
	if e, ok := r.s.events[eventID]; ok {
		e.IsDrawn = false
		e.UpdatedAt = at
		r.s.events[eventID] = e
	}
	return int64(before - len(r.s.assignments)), nil
}

func (r assignmentRepo) ListByEvent(_ context.Context, eventID string) ([]models.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := filter(r.s.assignments, func(a models.Assignment) bool { return a.EventID == eventID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].GiverName < out[j].GiverName })
	return out, nil
}

func (r assignmentRepo) GetByGiver(_ context.Context, eventID, giverEmail string) (*models.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.assignments {
		if a.EventID == eventID && a.GiverEmail == giverEmail {
			return &a, nil
		}
	}
	return nil, nil
}

// ===========================
// 💬 Messages

type messageRepo struct{ s *Store }

func (r messageRepo) Create(_ context.Context, m *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.messages = append(r.s.messages, *m)
	return nil
}

func (r messageRepo) GetByID(_ context.Context, id string) (*models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.messages {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, message.ErrMessageNotFound
}

func (r messageRepo) ListByEvent(_ context.Context, eventID string) ([]models.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := filter(r.s.messages, func(m models.Message) bool { return m.EventID == eventID })
	// Appended in send order, so reverse for newest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r messageRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	before := len(r.s.messages)
	r.s.messages = filter(r.s.messages, func(m models.Message) bool { return m.ID != id })
	if len(r.s.messages) == before {
		return message.ErrMessageNotFound
	}
	return nil
}

// ===========================
// 🧾 Audit logs

type auditRepo struct{ s *Store }

func (r auditRepo) Create(_ context.Context, l *auditlog.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = uint(len(r.s.auditLogs) + 1)
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	r.s.auditLogs = append(r.s.auditLogs, *l)
	return nil
}

func (r auditRepo) ListByEvent(_ context.Context, eventID string, limit, offset int) ([]auditlog.AuditLog, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []auditlog.AuditLog
	for i := len(r.s.auditLogs) - 1; i >= 0; i-- {
		l := r.s.auditLogs[i]
		if l.EventID != nil && *l.EventID == eventID {
			matched = append(matched, l)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return []auditlog.AuditLog{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ===========================
// 📨 Notification logs

type notificationRepo struct{ s *Store }

func (r notificationRepo) CreateLog(_ context.Context, l *notification.NotificationLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = uint(len(r.s.notifications) + 1)
	r.s.notifications = append(r.s.notifications, *l)
	return nil
}

func (r notificationRepo) UpdateLog(_ context.Context, l *notification.NotificationLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.ID == 0 || int(l.ID) > len(r.s.notifications) {
		return errors.New("memstore: notification log not found")
	}
	r.s.notifications[l.ID-1] = *l
	return nil
}

func (r notificationRepo) ListByEvent(_ context.Context, eventID string) ([]notification.NotificationLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := filter(r.s.notifications, func(l notification.NotificationLog) bool { return l.EventID == eventID })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// filter returns a fresh slice, so callers never alias store memory.
func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
