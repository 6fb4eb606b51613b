package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon" validate:"required"`
}

type LocationRequest struct {
	Region      int        `json:"region" validate:"required,gt=0"`
	Coordinates [2]float64 `json:"coordinates"`
}

type EventRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Slug        string          `json:"slug" validate:"omitempty,max=255"`
	StartDate   time.Time       `json:"startDate" validate:"required"`
	EndDate     time.Time       `json:"endDate" validate:"required,gtefield=StartDate"`
	Description string          `json:"description" validate:"required"`
	Banner      string          `json:"banner" validate:"required"`
	Category    string          `json:"category" validate:"required,uuid"`
	IsFeatured  bool            `json:"isFeatured"`
	IsOnline    bool            `json:"isOnline"`
	IsPublish   bool            `json:"isPublish"`
	Location    LocationRequest `json:"location"`
}

type TicketRequest struct {
	Events      string          `json:"events" validate:"required,uuid"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
}

type BannerRequest struct {
	Title  string `json:"title" validate:"required,max=255"`
	Image  string `json:"image" validate:"required"`
	IsShow bool   `json:"isShow"`
}
