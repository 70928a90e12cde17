package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository"
	"github.com/mindwell-clinic/clinic-api/internal/repository/memory"
)

func seedAppointment(t *testing.T, repo repository.AppointmentRepository, at time.Time, status model.AppointmentStatus, price float64, payment model.PaymentStatus) {
	t.Helper()
	now := time.Now()
	err := repo.Create(context.Background(), &model.Appointment{
		Base:          model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		PatientID:     uuid.New(),
		ScheduledAt:   at,
		Status:        status,
		Price:         price,
		PaymentStatus: payment,
	})
	require.NoError(t, err)
}

func TestGetOverview(t *testing.T) {
	appointments := memory.NewAppointmentRepository()
	patients := memory.NewPatientRepository()
	ctx := context.Background()

	now := time.Now()
	seedAppointment(t, appointments, now.Add(-48*time.Hour), model.AppointmentStatusCompleted, 100, model.PaymentStatusPaid)
	seedAppointment(t, appointments, now.Add(-24*time.Hour), model.AppointmentStatusCompleted, 80, model.PaymentStatusPending)
	seedAppointment(t, appointments, now.Add(24*time.Hour), model.AppointmentStatusScheduled, 100, model.PaymentStatusPending)
	seedAppointment(t, appointments, now.Add(48*time.Hour), model.AppointmentStatusCancelled, 100, model.PaymentStatusPending)

	require.NoError(t, patients.Create(ctx, &model.Patient{
		Base:   model.Base{ID: uuid.New()},
		Name:   "Ana",
		Email:  "ana@example.com",
		Status: model.PatientStatusActive,
	}))
	require.NoError(t, patients.Create(ctx, &model.Patient{
		Base:   model.Base{ID: uuid.New()},
		Name:   "Bruno",
		Email:  "bruno@example.com",
		Status: model.PatientStatusInactive,
	}))

	svc := NewService(appointments, patients)
	overview, err := svc.GetOverview(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, overview.TotalAppointments)
	assert.Equal(t, 2, overview.ByStatus[model.AppointmentStatusCompleted])
	assert.Equal(t, 1, overview.ByStatus[model.AppointmentStatusScheduled])
	assert.Equal(t, 1, overview.ByStatus[model.AppointmentStatusCancelled])
	// Only completed and paid sessions count toward revenue.
	assert.Equal(t, 100.0, overview.Revenue)
	assert.Equal(t, 1, overview.UpcomingCount)
	assert.Equal(t, 1, overview.ActivePatients)
}
