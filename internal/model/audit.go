package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditEntry records one mutation performed through the scheduling core.
type AuditEntry struct {
	ID         uuid.UUID       `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
