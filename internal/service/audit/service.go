package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository"
)

// Service records every mutation performed through the scheduling core.
type Service struct {
	repo repository.AuditRepository
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo}
}

// Log creates an audit entry. Failures are logged and swallowed: auditing
// must never fail the mutation it describes.
func (s *Service) Log(ctx context.Context, action, entityType string, entityID uuid.UUID, changes interface{}) {
	var payload json.RawMessage
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			log.Warn().Err(err).Str("action", action).Msg("failed to marshal audit changes")
		} else {
			payload = data
		}
	}

	entry := &model.AuditEntry{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    payload,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).Str("action", action).Msg("failed to write audit entry")
	}
}

func (s *Service) List(ctx context.Context, limit int) ([]*model.AuditEntry, error) {
	return s.repo.List(ctx, limit)
}
