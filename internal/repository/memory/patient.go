package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository"
)

type patientRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*model.Patient
}

func NewPatientRepository() repository.PatientRepository {
	return &patientRepository{
		items: make(map[uuid.UUID]*model.Patient),
	}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *patient
	r.items[stored.ID] = &stored
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patient, ok := r.items[id]
	if !ok {
		return nil, repository.ErrPatientNotFound
	}
	copied := *patient
	return &copied, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[patient.ID]; !ok {
		return repository.ErrPatientNotFound
	}
	stored := *patient
	r.items[stored.ID] = &stored
	return nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Patient
	for _, patient := range r.items {
		if filters != nil {
			if filters.Status != "" && patient.Status != filters.Status {
				continue
			}
			if filters.SearchTerm != "" && !matchesSearch(patient, filters.SearchTerm) {
				continue
			}
		}
		copied := *patient
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func matchesSearch(patient *model.Patient, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(patient.Name), term) ||
		strings.Contains(strings.ToLower(patient.Email), term)
}
