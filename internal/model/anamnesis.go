package model

import "github.com/google/uuid"

// Anamnesis is the patient intake record produced by the intake wizard.
// The scheduling core never reads it; it is stored and served as-is.
type Anamnesis struct {
	Base
	PatientID       uuid.UUID `json:"patient_id"`
	ChiefComplaint  string    `json:"chief_complaint"`
	History         string    `json:"history,omitempty"`
	Medications     string    `json:"medications,omitempty"`
	PreviousTherapy bool      `json:"previous_therapy"`
	Completed       bool      `json:"completed"`
}

type CreateAnamnesisRequest struct {
	PatientID       uuid.UUID `json:"patient_id" binding:"required"`
	ChiefComplaint  string    `json:"chief_complaint" binding:"required"`
	History         string    `json:"history"`
	Medications     string    `json:"medications"`
	PreviousTherapy bool      `json:"previous_therapy"`
}

type UpdateAnamnesisRequest struct {
	ChiefComplaint  *string `json:"chief_complaint"`
	History         *string `json:"history"`
	Medications     *string `json:"medications"`
	PreviousTherapy *bool   `json:"previous_therapy"`
	Completed       *bool   `json:"completed"`
}
