package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository"
	"github.com/mindwell-clinic/clinic-api/internal/service/audit"
	apperrors "github.com/mindwell-clinic/clinic-api/pkg/errors"
)

// Service is the patient collaborator: plain CRUD, no scheduling logic.
type Service struct {
	repo    repository.PatientRepository
	auditor *audit.Service
}

func NewService(repo repository.PatientRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	now := time.Now()
	patient := &model.Patient{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Status:      model.PatientStatusActive,
		Notes:       req.Notes,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.auditor.Log(ctx, "create", "patient", patient.ID, patient)
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrPatientNotFound {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.Status != nil {
		patient.Status = *req.Status
	}
	if req.Notes != nil {
		patient.Notes = *req.Notes
	}
	patient.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, patient); err != nil {
		if err == repository.ErrPatientNotFound {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	s.auditor.Log(ctx, "update", "patient", id, req)
	return patient, nil
}

func (s *Service) ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
