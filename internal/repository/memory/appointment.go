package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository"
)

// appointmentRepository is the in-process scheduling store. It is the sole
// owner of the collection: every read hands out a copy, every write goes
// through Create or Update under the mutex, and both writes re-check the
// uniqueness invariant inside the critical section so that concurrent
// bookings of the same slot cannot both succeed.
type appointmentRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*model.Appointment
}

func NewAppointmentRepository() repository.AppointmentRepository {
	return &appointmentRepository{
		items: make(map[uuid.UUID]*model.Appointment),
	}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if appointment.IsLive() && r.conflictLocked(appointment.ScheduledAt, uuid.Nil) {
		return repository.ErrSlotTaken
	}

	stored := *appointment
	r.items[stored.ID] = &stored
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.items[id]
	if !ok {
		return nil, repository.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

// Mutate applies fn to a copy of the current stored value and commits the
// result, all inside the critical section. An error from fn aborts the
// write, so state-machine checks made in fn see the committed status, not
// a stale read. The uniqueness re-check runs after fn: a live appointment
// moving to an occupied instant, or a cancelled one being revived into an
// occupied instant, would break uniqueness.
func (r *appointmentRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(*model.Appointment) error) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return nil, repository.ErrAppointmentNotFound
	}

	updated := *current
	if err := fn(&updated); err != nil {
		return nil, err
	}

	if updated.IsLive() && r.conflictLocked(updated.ScheduledAt, id) {
		return nil, repository.ErrSlotTaken
	}

	r.items[id] = &updated
	copied := updated
	return &copied, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Appointment
	for _, appt := range r.items {
		if filters != nil {
			if filters.PatientID != uuid.Nil && appt.PatientID != filters.PatientID {
				continue
			}
			if filters.Status != "" && appt.Status != filters.Status {
				continue
			}
			if !filters.Day.IsZero() && !model.SameDay(appt.ScheduledAt, filters.Day) {
				continue
			}
		}
		copied := *appt
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ScheduledAt.Before(result[j].ScheduledAt)
	})
	return result, nil
}

func (r *appointmentRepository) ListByDay(ctx context.Context, day time.Time) ([]*model.Appointment, error) {
	return r.List(ctx, &model.AppointmentFilters{Day: day})
}

// conflictLocked reports whether a live appointment other than excludeID
// already occupies the given instant. Callers must hold the mutex.
func (r *appointmentRepository) conflictLocked(at time.Time, excludeID uuid.UUID) bool {
	for _, appt := range r.items {
		if appt.ID == excludeID {
			continue
		}
		if appt.IsLive() && model.SameInstant(appt.ScheduledAt, at) {
			return true
		}
	}
	return false
}
