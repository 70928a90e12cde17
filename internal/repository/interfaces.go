package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell-clinic/clinic-api/internal/model"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrAnamnesisNotFound   = errors.New("anamnesis not found")
	ErrUserNotFound        = errors.New("user not found")

	// ErrSlotTaken is returned when a write would leave two live
	// appointments at the same instant.
	ErrSlotTaken = errors.New("slot already taken by a live appointment")
)

// All repository interfaces in one file
type (
	// AppointmentRepository owns the appointment collection. Create and
	// Mutate are atomic with respect to the uniqueness check: no two live
	// appointments may share a ScheduledAt instant. Mutate applies fn to the
	// current stored value inside the store's critical section; an error
	// from fn aborts the write.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Mutate(ctx context.Context, id uuid.UUID, fn func(*model.Appointment) error) (*model.Appointment, error)
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		ListByDay(ctx context.Context, day time.Time) ([]*model.Appointment, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	}

	AnamnesisRepository interface {
		Create(ctx context.Context, record *model.Anamnesis) error
		Get(ctx context.Context, id uuid.UUID) (*model.Anamnesis, error)
		GetByPatient(ctx context.Context, patientID uuid.UUID) (*model.Anamnesis, error)
		Update(ctx context.Context, record *model.Anamnesis) error
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}

	AuditRepository interface {
		Create(ctx context.Context, entry *model.AuditEntry) error
		List(ctx context.Context, limit int) ([]*model.AuditEntry, error)
	}
)
