package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository"
)

func newAppointment(at time.Time, status model.AppointmentStatus) *model.Appointment {
	now := time.Now()
	return &model.Appointment{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:   uuid.New(),
		ScheduledAt: at,
		Status:      status,
	}
}

func TestCreateRejectsSecondLiveAppointmentAtSameInstant(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)

	require.NoError(t, repo.Create(ctx, newAppointment(at, model.AppointmentStatusScheduled)))

	err := repo.Create(ctx, newAppointment(at, model.AppointmentStatusScheduled))
	assert.ErrorIs(t, err, repository.ErrSlotTaken)
}

func TestCreateAllowsSlotHeldOnlyByCancelledAppointment(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)

	require.NoError(t, repo.Create(ctx, newAppointment(at, model.AppointmentStatusCancelled)))
	assert.NoError(t, repo.Create(ctx, newAppointment(at, model.AppointmentStatusScheduled)))
}

func TestMutateRejectsMoveOntoLiveAppointment(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)

	require.NoError(t, repo.Create(ctx, newAppointment(at, model.AppointmentStatusScheduled)))

	other := newAppointment(at.Add(time.Hour), model.AppointmentStatusScheduled)
	require.NoError(t, repo.Create(ctx, other))

	_, err := repo.Mutate(ctx, other.ID, func(a *model.Appointment) error {
		a.ScheduledAt = at
		return nil
	})
	assert.ErrorIs(t, err, repository.ErrSlotTaken)
}

func TestMutateAllowsOwnSlot(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)

	appt := newAppointment(at, model.AppointmentStatusScheduled)
	require.NoError(t, repo.Create(ctx, appt))

	updated, err := repo.Mutate(ctx, appt.ID, func(a *model.Appointment) error {
		a.SessionNotes = "updated"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.SessionNotes)
}

func TestMutateSeesCommittedState(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)

	appt := newAppointment(at, model.AppointmentStatusScheduled)
	require.NoError(t, repo.Create(ctx, appt))

	_, err := repo.Mutate(ctx, appt.ID, func(a *model.Appointment) error {
		a.Status = model.AppointmentStatusCancelled
		return nil
	})
	require.NoError(t, err)

	// The callback receives the cancelled value that was committed above,
	// not the scheduled value the caller may still hold.
	var seen model.AppointmentStatus
	_, err = repo.Mutate(ctx, appt.ID, func(a *model.Appointment) error {
		seen = a.Status
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, seen)
}

func TestMutateAbortsWhenCallbackErrors(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)

	appt := newAppointment(at, model.AppointmentStatusScheduled)
	require.NoError(t, repo.Create(ctx, appt))

	veto := errors.New("veto")
	_, err := repo.Mutate(ctx, appt.ID, func(a *model.Appointment) error {
		a.Status = model.AppointmentStatusCancelled
		return veto
	})
	assert.ErrorIs(t, err, veto)

	got, err := repo.Get(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, got.Status)
}

func TestMutateUnknownAppointment(t *testing.T) {
	repo := NewAppointmentRepository()

	_, err := repo.Mutate(context.Background(), uuid.New(), func(a *model.Appointment) error {
		return nil
	})
	assert.ErrorIs(t, err, repository.ErrAppointmentNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()

	appt := newAppointment(time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local), model.AppointmentStatusScheduled)
	require.NoError(t, repo.Create(ctx, appt))

	got, err := repo.Get(ctx, appt.ID)
	require.NoError(t, err)

	// Mutating the returned value must not touch the stored one.
	got.Status = model.AppointmentStatusCancelled

	again, err := repo.Get(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, again.Status)
}

func TestListSortsByScheduledAt(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	require.NoError(t, repo.Create(ctx, newAppointment(base.Add(2*time.Hour), model.AppointmentStatusScheduled)))
	require.NoError(t, repo.Create(ctx, newAppointment(base, model.AppointmentStatusScheduled)))
	require.NoError(t, repo.Create(ctx, newAppointment(base.Add(time.Hour), model.AppointmentStatusScheduled)))

	appointments, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, appointments, 3)
	assert.True(t, appointments[0].ScheduledAt.Before(appointments[1].ScheduledAt))
	assert.True(t, appointments[1].ScheduledAt.Before(appointments[2].ScheduledAt))
}

func TestListByDayFiltersOtherDays(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	require.NoError(t, repo.Create(ctx, newAppointment(day.Add(10*time.Hour), model.AppointmentStatusScheduled)))
	require.NoError(t, repo.Create(ctx, newAppointment(day.AddDate(0, 0, 1).Add(10*time.Hour), model.AppointmentStatusScheduled)))

	appointments, err := repo.ListByDay(ctx, day)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
}

// Concurrent bookings of the same slot: exactly one may win.
func TestConcurrentCreateSameSlot(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)

	const writers = 32
	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, newAppointment(at, model.AppointmentStatusScheduled))
		}(i)
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, repository.ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, created)
}
