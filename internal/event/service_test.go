package event_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/sharath018/secret-santa-backend/internal/apperr"
	"github.com/sharath018/secret-santa-backend/internal/auditlog"
	"github.com/sharath018/secret-santa-backend/internal/event"
	"github.com/sharath018/secret-santa-backend/internal/memstore"
	"github.com/sharath018/secret-santa-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (*event.Service, *memstore.Store) {
	store := memstore.New()
	return event.NewService(store.Events(), auditlog.NewService(store.AuditLogs())), store
}

func validRequest() *event.CreateEventRequest {
	return &event.CreateEventRequest{
		Name:           "  Family Exchange ",
		Description:    "Gifts under the tree",
		EventDate:      "2026-12-24",
		OrganizerName:  "Mrs Claus",
		OrganizerEmail: " Claus@NorthPole.org ",
	}
}

func TestCreateEvent(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	res, err := svc.CreateEvent(ctx, validRequest())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), res.JoinCode)

	details, err := svc.GetEventDetails(ctx, res.EventID)
	require.NoError(t, err)
	assert.Equal(t, "Family Exchange", details.Event.Name)
	assert.Equal(t, "claus@northpole.org", details.Event.OrganizerEmail)
	assert.False(t, details.Event.IsDrawn)
	require.Len(t, details.Participants, 1)
	assert.True(t, details.Participants[0].IsOrganizer)
	assert.Equal(t, models.StatusAccepted, details.Participants[0].Status)
	assert.Equal(t, 1, details.ParticipantCount)

	byCode, err := svc.GetByJoinCode(ctx, " "+strings.ToLower(res.JoinCode)+" ")
	require.NoError(t, err)
	assert.Equal(t, res.EventID, byCode.ID)

	logs, err := auditlog.NewService(store.AuditLogs()).ListByEvent(ctx, res.EventID, 1, 10)
	require.NoError(t, err)
	require.Len(t, logs.Data, 1)
	assert.Equal(t, auditlog.ActionEventCreated, logs.Data[0].Action)
}

func TestCreateEventValidation(t *testing.T) {
	negative := -1.0
	tests := []struct {
		name   string
		mutate func(r *event.CreateEventRequest)
		want   error
	}{
		{"blank name", func(r *event.CreateEventRequest) { r.Name = "   " }, event.ErrNameRequired},
		{"bad date", func(r *event.CreateEventRequest) { r.EventDate = "24/12/2026" }, event.ErrInvalidDate},
		{"negative budget", func(r *event.CreateEventRequest) { r.Budget = &negative }, event.ErrInvalidBudget},
		{"bad organizer email", func(r *event.CreateEventRequest) { r.OrganizerEmail = "claus" }, event.ErrInvalidOrganizer},
		{"missing organizer name", func(r *event.CreateEventRequest) { r.OrganizerName = "" }, event.ErrInvalidOrganizer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()
			req := validRequest()
			tt.mutate(req)

			_, err := svc.CreateEvent(context.Background(), req)
			assert.Equal(t, tt.want, err)
			assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
		})
	}
}

func TestJoinCodesAreUnique(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		res, err := svc.CreateEvent(ctx, validRequest())
		require.NoError(t, err)
		assert.False(t, seen[res.JoinCode], "duplicate join code %s", res.JoinCode)
		seen[res.JoinCode] = true
	}
}

func TestUnknownJoinCode(t *testing.T) {
	svc, _ := newService()
	_, err := svc.GetByJoinCode(context.Background(), "NOPE00")
	assert.Equal(t, event.ErrInvalidJoinCode, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateEvent(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	res, err := svc.CreateEvent(ctx, validRequest())
	require.NoError(t, err)

	name := "Renamed"
	budget := 15.5
	err = svc.UpdateEvent(ctx, res.EventID, "someone@else.org", &event.UpdateEventRequest{Name: &name})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
	assert.Equal(t, "only the organizer can update this event", err.Error())

	bad := "tomorrow"
	err = svc.UpdateEvent(ctx, res.EventID, "claus@northpole.org", &event.UpdateEventRequest{EventDate: &bad})
	assert.Equal(t, event.ErrInvalidDate, err)

	require.NoError(t, svc.UpdateEvent(ctx, res.EventID, "claus@northpole.org",
		&event.UpdateEventRequest{Name: &name, Budget: &budget}))

	ev, err := svc.GetEventByID(ctx, res.EventID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", ev.Name)
	require.NotNil(t, ev.Budget)
	assert.Equal(t, 15.5, *ev.Budget)
	assert.Equal(t, "2026-12-24", ev.EventDate)
}

func TestDeleteEventCascades(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()
	res, err := svc.CreateEvent(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, store.Participants().Create(ctx, &models.Participant{
		ID: "p2", EventID: res.EventID, Name: "Rudolph", Email: "rudolph@northpole.org", Status: models.StatusAccepted,
	}))
	require.NoError(t, store.Messages().Create(ctx, &models.Message{
		ID: "m1", EventID: res.EventID, SenderName: "Rudolph", SenderEmail: "rudolph@northpole.org", Content: "hi",
	}))

	err = svc.DeleteEvent(ctx, res.EventID, "rudolph@northpole.org")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	require.NoError(t, svc.DeleteEvent(ctx, res.EventID, "claus@northpole.org"))

	_, err = svc.GetEventByID(ctx, res.EventID)
	assert.Equal(t, event.ErrEventNotFound, err)
	left, _ := store.Participants().ListByEvent(ctx, res.EventID)
	assert.Empty(t, left)
	msgs, _ := store.Messages().ListByEvent(ctx, res.EventID)
	assert.Empty(t, msgs)
}

func TestListMyEvents(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	first, err := svc.CreateEvent(ctx, validRequest())
	require.NoError(t, err)
	other := validRequest()
	other.OrganizerEmail = "elf@northpole.org"
	second, err := svc.CreateEvent(ctx, other)
	require.NoError(t, err)
	require.NoError(t, store.Participants().Create(ctx, &models.Participant{
		ID: "p2", EventID: second.EventID, Name: "Claus", Email: "claus@northpole.org", Status: models.StatusAccepted,
	}))

	mine, err := svc.ListMyEvents(ctx, "CLAUS@northpole.org")
	require.NoError(t, err)
	require.Len(t, mine, 2)

	byID := map[string]event.EventSummary{}
	for _, s := range mine {
		byID[s.ID] = s
	}
	assert.True(t, byID[first.EventID].IsOrganizer)
	assert.False(t, byID[second.EventID].IsOrganizer)
	assert.Equal(t, 2, byID[second.EventID].ParticipantCount)

	none, err := svc.ListMyEvents(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
