package entity

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	Region      int        `db:"location_region"`
	Coordinates [2]float64 `db:"-"` // latitude, longitude
}

type Event struct {
	Base
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	Description string    `db:"description"`
	Banner      string    `db:"banner"`
	CategoryID  uuid.UUID `db:"category_id"`
	IsFeatured  bool      `db:"is_featured"`
	IsOnline    bool      `db:"is_online"`
	IsPublish   bool      `db:"is_publish"`
	CreatedBy   uuid.UUID `db:"created_by"`
	Location    Location
}
