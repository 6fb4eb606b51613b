package entity

import (
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewBase stamps a fresh id and matching timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}
