package anamnesis

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

// Service stores intake records produced by the anamnesis wizard. The
// scheduling core never reads them.
type Service struct {
	repo    repository.AnamnesisRepository
	auditor *audit.Service
}

func NewService(repo repository.AnamnesisRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) CreateRecord(ctx context.Context, req *model.CreateAnamnesisRequest) (*model.Anamnesis, error) {
	now := time.Now()
	record := &model.Anamnesis{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:       req.PatientID,
		ChiefComplaint:  req.ChiefComplaint,
		History:         req.History,
		Medications:     req.Medications,
		PreviousTherapy: req.PreviousTherapy,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create anamnesis record: %w", err)
	}

	s.auditor.Log(ctx, "create", "anamnesis", record.ID, record)
	return record, nil
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*model.Anamnesis, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrAnamnesisNotFound {
			return nil, apperrors.NotFound("anamnesis record", err)
		}
		return nil, fmt.Errorf("failed to get anamnesis record: %w", err)
	}
	return record, nil
}

func (s *Service) GetPatientRecord(ctx context.Context, patientID uuid.UUID) (*model.Anamnesis, error) {
	record, err := s.repo.GetByPatient(ctx, patientID)
	if err != nil {
		if err == repository.ErrAnamnesisNotFound {
			return nil, apperrors.NotFound("anamnesis record", err)
		}
		return nil, fmt.Errorf("failed to get anamnesis record: %w", err)
	}
	return record, nil
}

func (s *Service) UpdateRecord(ctx context.Context, id uuid.UUID, req *model.UpdateAnamnesisRequest) (*model.Anamnesis, error) {
	record, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ChiefComplaint != nil {
		record.ChiefComplaint = *req.ChiefComplaint
	}
	if req.History != nil {
		record.History = *req.History
	}
	if req.Medications != nil {
		record.Medications = *req.Medications
	}
	if req.PreviousTherapy != nil {
		record.PreviousTherapy = *req.PreviousTherapy
	}
	if req.Completed != nil {
		record.Completed = *req.Completed
	}
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, record); err != nil {
		if err == repository.ErrAnamnesisNotFound {
			return nil, apperrors.NotFound("anamnesis record", err)
		}
		return nil, fmt.Errorf("failed to update anamnesis record: %w", err)
	}

	s.auditor.Log(ctx, "update", "anamnesis", id, req)
	return record, nil
}
