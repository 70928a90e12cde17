package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known appointment statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leads out of s.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

type AppointmentType string

const (
	AppointmentTypeRemote   AppointmentType = "remote"
	AppointmentTypeInPerson AppointmentType = "in_person"
)

func (t AppointmentType) Valid() bool {
	return t == AppointmentTypeRemote || t == AppointmentTypeInPerson
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusWaived  PaymentStatus = "waived"
)

// ValidDurations are the session lengths offered by the booking forms.
var ValidDurations = []int{30, 50, 60, 90}

const DefaultDurationMinutes = 50

// ValidDuration reports whether minutes is one of the offered session lengths.
func ValidDuration(minutes int) bool {
	for _, d := range ValidDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// Appointment is a single session occupying one slot.
// ScheduledAt is the absolute session start; no two live (non-cancelled)
// appointments may share the same instant.
type Appointment struct {
	Base
	PatientID       uuid.UUID         `json:"patient_id"`
	ScheduledAt     time.Time         `json:"scheduled_at"`
	DurationMinutes int               `json:"duration_minutes"`
	Type            AppointmentType   `json:"type"`
	Status          AppointmentStatus `json:"status"`
	Price           float64           `json:"price"`
	PaymentStatus   PaymentStatus     `json:"payment_status"`
	SessionNotes    string            `json:"session_notes,omitempty"`
}

// IsLive reports whether the appointment occupies its slot.
func (a *Appointment) IsLive() bool {
	return a.Status != AppointmentStatusCancelled
}

// SlotKey is the canonical "HH:MM" start used by the availability engine.
func (a *Appointment) SlotKey() string {
	return a.ScheduledAt.Format("15:04")
}

// SameDay reports whether a and b fall on the same calendar day in local
// time. Availability grouping compares days; slot uniqueness compares
// instants via SameInstant.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameInstant reports whether a and b mark the identical instant.
func SameInstant(a, b time.Time) bool {
	return a.Equal(b)
}

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID       `json:"patient_id" binding:"required"`
	ScheduledAt     time.Time       `json:"scheduled_at" binding:"required"`
	DurationMinutes int             `json:"duration_minutes"`
	Type            AppointmentType `json:"type"`
	Price           float64         `json:"price"`
	SessionNotes    string          `json:"session_notes"`
}

// UpdateAppointmentRequest is a partial patch; nil fields are left untouched.
type UpdateAppointmentRequest struct {
	ScheduledAt     *time.Time       `json:"scheduled_at"`
	DurationMinutes *int             `json:"duration_minutes"`
	Type            *AppointmentType `json:"type"`
	Price           *float64         `json:"price"`
	PaymentStatus   *PaymentStatus   `json:"payment_status"`
	SessionNotes    *string          `json:"session_notes"`
}

type SetStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}

type AppointmentFilters struct {
	PatientID uuid.UUID
	Status    AppointmentStatus
	Day       time.Time
}
