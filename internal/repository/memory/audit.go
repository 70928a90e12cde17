package memory

import (
	"context"
	"sync"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository"
)

type auditRepository struct {
	mu      sync.RWMutex
	entries []*model.AuditEntry
}

func NewAuditRepository() repository.AuditRepository {
	return &auditRepository{}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *entry
	r.entries = append(r.entries, &stored)
	return nil
}

// List returns the most recent entries, newest first.
func (r *auditRepository) List(ctx context.Context, limit int) ([]*model.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}

	result := make([]*model.AuditEntry, 0, limit)
	for i := len(r.entries) - 1; i >= len(r.entries)-limit; i-- {
		copied := *r.entries[i]
		result = append(result, &copied)
	}
	return result, nil
}
