package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository"
)

type anamnesisRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*model.Anamnesis
}

func NewAnamnesisRepository() repository.AnamnesisRepository {
	return &anamnesisRepository{
		items: make(map[uuid.UUID]*model.Anamnesis),
	}
}

func (r *anamnesisRepository) Create(ctx context.Context, record *model.Anamnesis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *record
	r.items[stored.ID] = &stored
	return nil
}

func (r *anamnesisRepository) Get(ctx context.Context, id uuid.UUID) (*model.Anamnesis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.items[id]
	if !ok {
		return nil, repository.ErrAnamnesisNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *anamnesisRepository) GetByPatient(ctx context.Context, patientID uuid.UUID) (*model.Anamnesis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.items {
		if record.PatientID == patientID {
			copied := *record
			return &copied, nil
		}
	}
	return nil, repository.ErrAnamnesisNotFound
}

func (r *anamnesisRepository) Update(ctx context.Context, record *model.Anamnesis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[record.ID]; !ok {
		return repository.ErrAnamnesisNotFound
	}
	stored := *record
	r.items[stored.ID] = &stored
	return nil
}
