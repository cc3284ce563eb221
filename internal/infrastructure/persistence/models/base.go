package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
)

// AggregateColumns are the identity, tenant and version columns every table
// starts with.
type AggregateColumns struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Version   int       `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func columnsOf(a shared.Aggregate) AggregateColumns {
	return AggregateColumns{
		ID:        a.ID,
		TenantID:  a.TenantID,
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// aggregate rebuilds the domain header. Loaded records have no pending
// events.
func (c AggregateColumns) aggregate() shared.Aggregate {
	return shared.Aggregate{
		ID:        c.ID,
		TenantID:  c.TenantID,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// encodeJSON stores v as a JSON document, writing empty for nil values
func encodeJSON(v any, empty string) (string, error) {
	if v == nil {
		return empty, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" {
		return empty, nil
	}
	return string(b), nil
}

func decodeJSON(raw string, v any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}
