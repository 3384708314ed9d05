package assignment_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sharath018/secret-santa-backend/internal/apperr"
	"github.com/sharath018/secret-santa-backend/internal/assignment"
	"github.com/sharath018/secret-santa-backend/internal/auditlog"
	"github.com/sharath018/secret-santa-backend/internal/event"
	"github.com/sharath018/secret-santa-backend/internal/memstore"
	"github.com/sharath018/secret-santa-backend/internal/models"
	"github.com/sharath018/secret-santa-backend/internal/notification"
	"github.com/sharath018/secret-santa-backend/internal/participant"
	"github.com/sharath018/secret-santa-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const organizer = "santa@example.com"

type recordingScheduler struct {
	mu   sync.Mutex
	jobs []notification.Job
	err  error
}

func (r *recordingScheduler) Schedule(_ context.Context, job notification.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.jobs = append(r.jobs, job)
	return nil
}

type fixture struct {
	store        *memstore.Store
	sched        *recordingScheduler
	audit        auditlog.Service
	events       *event.Service
	participants *participant.Service
	svc          *assignment.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	audit := auditlog.NewService(store.AuditLogs())
	sched := &recordingScheduler{}
	events := event.NewService(store.Events(), audit)
	participants := participant.NewService(store.Participants(), events, sched, audit)
	svc := assignment.NewService(store.Assignments(), events, store.Participants(), sched,
		assignment.NewLocalLocker(5*time.Second), audit, assignment.NewGenerator(assignment.DefaultMaxAttempts))
	return &fixture{store: store, sched: sched, audit: audit, events: events, participants: participants, svc: svc}
}

// newEvent creates an event whose organizer plus `others` joiners are accepted.
func (f *fixture) newEvent(t *testing.T, others int) *models.Event {
	t.Helper()
	ctx := context.Background()
	budget := 30.0
	res, err := f.events.CreateEvent(ctx, &event.CreateEventRequest{
		Name:           "Office Party",
		EventDate:      "2026-12-20",
		Budget:         &budget,
		OrganizerName:  "Santa",
		OrganizerEmail: organizer,
	})
	require.NoError(t, err)

	for i := 0; i < others; i++ {
		_, err := f.participants.Join(ctx, res.JoinCode, fmt.Sprintf("Elf %d", i), fmt.Sprintf("elf%d@example.com", i))
		require.NoError(t, err)
	}
	ev, err := f.events.GetEventByID(ctx, res.EventID)
	require.NoError(t, err)
	return ev
}

func TestDrawCreatesDerangement(t *testing.T) {
	f := newFixture(t)
	ev := f.newEvent(t, 4)
	ctx := context.Background()
	require.NoError(t, f.participants.UpdateWishlist(ctx, ev.ID, "elf0@example.com", "Board games"))

	res, err := f.svc.Draw(ctx, ev.ID, organizer)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Assignments)

	all, err := f.svc.GetEventAssignments(ctx, ev.ID, organizer)
	require.NoError(t, err)
	require.Len(t, all, 5)

	givers := map[string]bool{}
	receivers := map[string]bool{}
	for _, a := range all {
		assert.NotEqual(t, a.GiverEmail, a.ReceiverEmail)
		assert.Equal(t, all[0].CreatedAt, a.CreatedAt)
		givers[a.GiverEmail] = true
		receivers[a.ReceiverEmail] = true
	}
	assert.Len(t, givers, 5)
	assert.Len(t, receivers, 5)

	updated, err := f.events.GetEventByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsDrawn)
	assert.Equal(t, all[0].CreatedAt, updated.UpdatedAt)

	// One job per giver, wishlist read at draw time.
	require.Len(t, f.sched.jobs, 5)
	byRecipient := map[string]notification.Job{}
	for _, j := range f.sched.jobs {
		assert.Equal(t, notification.KindAssignment, j.Kind)
		assert.Equal(t, "Office Party", j.EventName)
		assert.Equal(t, "2026-12-20", j.EventDate)
		require.NotNil(t, j.Budget)
		byRecipient[j.Recipient] = j
	}
	for _, a := range all {
		j, ok := byRecipient[a.GiverEmail]
		require.True(t, ok)
		assert.Equal(t, a.ReceiverName, j.ReceiverName)
		if a.ReceiverEmail == "elf0@example.com" {
			assert.Equal(t, "Board games", j.ReceiverWishlist)
		}
	}

	logs, err := f.audit.ListByEvent(ctx, ev.ID, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, auditlog.ActionAssignmentsDrawn, logs.Data[0].Action)
	assert.Equal(t, auditlog.StatusSuccess, logs.Data[0].Status)
}

func TestDrawPreconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("event not found", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Draw(ctx, "missing", organizer)
		assert.Equal(t, event.ErrEventNotFound, err)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("not organizer", func(t *testing.T) {
		f := newFixture(t)
		ev := f.newEvent(t, 3)
		_, err := f.svc.Draw(ctx, ev.ID, "elf1@example.com")
		assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
		assert.Equal(t, "only the organizer can draw assignments", err.Error())
	})

	t.Run("organizer email is normalised", func(t *testing.T) {
		f := newFixture(t)
		ev := f.newEvent(t, 2)
		_, err := f.svc.Draw(ctx, ev.ID, "  SANTA@Example.com ")
		assert.NoError(t, err)
	})

	t.Run("already drawn", func(t *testing.T) {
		f := newFixture(t)
		ev := f.newEvent(t, 3)
		_, err := f.svc.Draw(ctx, ev.ID, organizer)
		require.NoError(t, err)

		before, err := f.svc.GetEventAssignments(ctx, ev.ID, organizer)
		require.NoError(t, err)
		jobs := len(f.sched.jobs)

		_, err = f.svc.Draw(ctx, ev.ID, organizer)
		assert.Equal(t, assignment.ErrAlreadyDrawn, err)

		after, err := f.svc.GetEventAssignments(ctx, ev.ID, organizer)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Len(t, f.sched.jobs, jobs)
	})

	t.Run("no accepted participants", func(t *testing.T) {
		f := newFixture(t)
		ev := f.newEvent(t, 0)
		require.NoError(t, f.participants.UpdateStatus(ctx, ev.ID, organizer, models.StatusDeclined))

		_, err := f.svc.Draw(ctx, ev.ID, organizer)
		assert.Equal(t, assignment.ErrInsufficientParticipants, err)

		all, _ := f.svc.GetEventAssignments(ctx, ev.ID, organizer)
		assert.Empty(t, all)
		assert.Empty(t, f.sched.jobs)
	})

	for _, tc := range []struct {
		others int
		want   error
	}{
		{0, assignment.ErrInsufficientParticipants},
		{1, assignment.ErrInsufficientParticipantsForFairness},
	} {
		t.Run(fmt.Sprintf("%d accepted", tc.others+1), func(t *testing.T) {
			f := newFixture(t)
			ev := f.newEvent(t, tc.others)

			_, err := f.svc.Draw(ctx, ev.ID, organizer)
			assert.Equal(t, tc.want, err)

			all, _ := f.svc.GetEventAssignments(ctx, ev.ID, organizer)
			assert.Empty(t, all)
			current, _ := f.events.GetEventByID(ctx, ev.ID)
			assert.False(t, current.IsDrawn)
			assert.Empty(t, f.sched.jobs)
		})
	}
}

func TestDrawIgnoresNonAcceptedParticipants(t *testing.T) {
	f := newFixture(t)
	ev := f.newEvent(t, 3)
	ctx := context.Background()
	require.NoError(t, f.participants.UpdateStatus(ctx, ev.ID, "elf0@example.com", models.StatusDeclined))
	require.NoError(t, f.participants.UpdateStatus(ctx, ev.ID, "elf1@example.com", models.StatusPending))

	// Santa and elf2 remain: too few.
	_, err := f.svc.Draw(ctx, ev.ID, organizer)
	assert.Equal(t, assignment.ErrInsufficientParticipantsForFairness, err)

	require.NoError(t, f.participants.UpdateStatus(ctx, ev.ID, "elf1@example.com", models.StatusAccepted))
	_, err = f.svc.Draw(ctx, ev.ID, organizer)
	require.NoError(t, err)

	all, _ := f.svc.GetEventAssignments(ctx, ev.ID, organizer)
	require.Len(t, all, 3)
	for _, a := range all {
		assert.NotEqual(t, "elf0@example.com", a.GiverEmail)
		assert.NotEqual(t, "elf0@example.com", a.ReceiverEmail)
	}
}

func TestDrawRetriesExhaustedWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.svc.Generator = &assignment.Generator{MaxAttempts: 3, Intn: func(n int) int { return n - 1 }}
	ev := f.newEvent(t, 3)
	ctx := context.Background()

	_, err := f.svc.Draw(ctx, ev.ID, organizer)
	assert.Equal(t, assignment.ErrDerangementRetriesExhausted, err)
	assert.True(t, errors.Is(err, apperr.ErrTransient))

	current, _ := f.events.GetEventByID(ctx, ev.ID)
	assert.False(t, current.IsDrawn)
	all, _ := f.svc.GetEventAssignments(ctx, ev.ID, organizer)
	assert.Empty(t, all)
	assert.Empty(t, f.sched.jobs)

	logs, _ := f.audit.ListByEvent(ctx, ev.ID, 1, 50)
	assert.Equal(t, auditlog.StatusFailure, logs.Data[0].Status)
}

func TestConcurrentDrawsSucceedOnce(t *testing.T) {
	f := newFixture(t)
	ev := f.newEvent(t, 6)

	const callers = 10
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Draw(context.Background(), ev.ID, organizer)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.Equal(t, assignment.ErrAlreadyDrawn, err)
	}
	assert.Equal(t, 1, successes)

	all, _ := f.svc.GetEventAssignments(context.Background(), ev.ID, organizer)
	assert.Len(t, all, 7)
	assert.Len(t, f.sched.jobs, 7)
}

func TestDrawSurvivesSchedulerFailure(t *testing.T) {
	f := newFixture(t)
	f.sched.err = errors.New("queue full")
	ev := f.newEvent(t, 3)
	ctx := context.Background()

	_, err := f.svc.Draw(ctx, ev.ID, organizer)
	require.NoError(t, err)

	current, _ := f.events.GetEventByID(ctx, ev.ID)
	assert.True(t, current.IsDrawn)
	all, _ := f.svc.GetEventAssignments(ctx, ev.ID, organizer)
	assert.Len(t, all, 4)
}

func TestGetMyAssignment(t *testing.T) {
	f := newFixture(t)
	ev := f.newEvent(t, 3)
	ctx := context.Background()

	mine, err := f.svc.GetMyAssignment(ctx, ev.ID, "elf0@example.com")
	require.NoError(t, err)
	assert.Nil(t, mine, "no assignment before the draw")

	_, err = f.svc.Draw(ctx, ev.ID, organizer)
	require.NoError(t, err)

	mine, err = f.svc.GetMyAssignment(ctx, ev.ID, " ELF0@example.com")
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, "elf0@example.com", mine.GiverEmail)
	assert.NotEqual(t, mine.GiverEmail, mine.ReceiverEmail)
	assert.Empty(t, mine.ReceiverWishlist)

	// The wishlist is read live, after the draw.
	require.NoError(t, f.participants.UpdateWishlist(ctx, ev.ID, mine.ReceiverEmail, "Socks"))
	mine, err = f.svc.GetMyAssignment(ctx, ev.ID, "elf0@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Socks", mine.ReceiverWishlist)

	stranger, err := f.svc.GetMyAssignment(ctx, ev.ID, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, stranger)
}

func TestGetEventAssignmentsOrganizerOnly(t *testing.T) {
	f := newFixture(t)
	ev := f.newEvent(t, 3)
	ctx := context.Background()

	_, err := f.svc.GetEventAssignments(ctx, ev.ID, "elf0@example.com")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = f.svc.GetEventAssignments(ctx, "missing", organizer)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	all, err := f.svc.GetEventAssignments(ctx, ev.ID, organizer)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestResetAllowsRedraw(t *testing.T) {
	f := newFixture(t)
	ev := f.newEvent(t, 3)
	ctx := context.Background()

	_, err := f.svc.Reset(ctx, ev.ID, "elf0@example.com")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	// Resetting an undrawn event is harmless.
	res, err := f.svc.Reset(ctx, ev.ID, organizer)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Removed)

	_, err = f.svc.Draw(ctx, ev.ID, organizer)
	require.NoError(t, err)
	jobsAfterDraw := len(f.sched.jobs)

	res, err = f.svc.Reset(ctx, ev.ID, organizer)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Removed)
	assert.Len(t, f.sched.jobs, jobsAfterDraw, "reset sends nothing")

	current, _ := f.events.GetEventByID(ctx, ev.ID)
	assert.False(t, current.IsDrawn)
	all, _ := f.svc.GetEventAssignments(ctx, ev.ID, organizer)
	assert.Empty(t, all)

	_, err = f.svc.Draw(ctx, ev.ID, organizer)
	require.NoError(t, err)
	all, _ = f.svc.GetEventAssignments(ctx, ev.ID, organizer)
	assert.Len(t, all, 4)
}

func TestRemovingParticipantVoidsTheirAssignments(t *testing.T) {
	f := newFixture(t)
	ev := f.newEvent(t, 4)
	ctx := context.Background()

	_, err := f.svc.Draw(ctx, ev.ID, organizer)
	require.NoError(t, err)

	require.NoError(t, f.participants.Remove(ctx, ev.ID, "elf2@example.com", organizer))

	all, err := f.svc.GetEventAssignments(ctx, ev.ID, organizer)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for _, a := range all {
		assert.NotEqual(t, "elf2@example.com", a.GiverEmail)
		assert.NotEqual(t, "elf2@example.com", a.ReceiverEmail)
	}

	mine, err := f.svc.GetMyAssignment(ctx, ev.ID, "elf2@example.com")
	require.NoError(t, err)
	assert.Nil(t, mine)

	// Still drawn; the organizer resets to re-pair.
	current, _ := f.events.GetEventByID(ctx, ev.ID)
	assert.True(t, current.IsDrawn)
}

type failingLocker struct{ err error }

func (l failingLocker) Lock(context.Context, string) (func(), error) {
	return nil, l.err
}

func TestDrawLockFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		lockErr error
		want    error
	}{
		{"held by another replica", fmt.Errorf("wait: %w", utils.ErrLockNotAcquired), assignment.ErrDrawInProgress},
		{"redis down", errors.New("redis lock secret-santa:draw:x: connection refused"), assignment.ErrLockUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.svc.Locker = failingLocker{err: tt.lockErr}
			ev := f.newEvent(t, 3)

			_, err := f.svc.Draw(ctx, ev.ID, organizer)
			assert.Equal(t, tt.want, err)
			assert.True(t, errors.Is(err, apperr.ErrTransient))

			_, err = f.svc.Reset(ctx, ev.ID, organizer)
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestDrawLockTimeoutIsInProgress(t *testing.T) {
	ctx := context.Background()
	locker := assignment.NewLocalLocker(50 * time.Millisecond)
	f := newFixture(t)
	f.svc.Locker = locker
	ev := f.newEvent(t, 3)

	unlock, err := locker.Lock(ctx, "draw:"+ev.ID)
	require.NoError(t, err)
	defer unlock()

	_, err = f.svc.Draw(ctx, ev.ID, organizer)
	assert.Equal(t, assignment.ErrDrawInProgress, err)
}
