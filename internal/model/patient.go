package model

import "time"

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	Base
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone,omitempty"`
	DateOfBirth *time.Time    `json:"date_of_birth,omitempty"`
	Status      PatientStatus `json:"status"`
	Notes       string        `json:"notes,omitempty"`
}

type CreatePatientRequest struct {
	Name        string     `json:"name" binding:"required"`
	Email       string     `json:"email" binding:"required,email"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Notes       string     `json:"notes"`
}

type UpdatePatientRequest struct {
	Name        *string        `json:"name"`
	Email       *string        `json:"email" binding:"omitempty,email"`
	Phone       *string        `json:"phone"`
	DateOfBirth *time.Time     `json:"date_of_birth"`
	Status      *PatientStatus `json:"status"`
	Notes       *string        `json:"notes"`
}

type PatientFilters struct {
	Status     PatientStatus
	SearchTerm string
}
