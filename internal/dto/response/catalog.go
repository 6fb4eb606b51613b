package response

import (
	"time"

	"event-ticketing/internal/data/entity"
)

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type LocationResponse struct {
	Region      int        `json:"region"`
	Coordinates [2]float64 `json:"coordinates"`
}

type EventResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	StartDate   time.Time        `json:"startDate"`
	EndDate     time.Time        `json:"endDate"`
	Description string           `json:"description"`
	Banner      string           `json:"banner"`
	Category    string           `json:"category"`
	IsFeatured  bool             `json:"isFeatured"`
	IsOnline    bool             `json:"isOnline"`
	IsPublish   bool             `json:"isPublish"`
	CreatedBy   string           `json:"createdBy"`
	Location    LocationResponse `json:"location"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type TicketResponse struct {
	ID          string    `json:"id"`
	Events      string    `json:"events"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type BannerResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	IsShow    bool      `json:"isShow"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func CategoryToResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func EventToResponse(e *entity.Event) EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Slug:        e.Slug,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Description: e.Description,
		Banner:      e.Banner,
		Category:    e.CategoryID.String(),
		IsFeatured:  e.IsFeatured,
		IsOnline:    e.IsOnline,
		IsPublish:   e.IsPublish,
		CreatedBy:   e.CreatedBy.String(),
		Location: LocationResponse{
			Region:      e.Location.Region,
			Coordinates: e.Location.Coordinates,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func TicketToResponse(t *entity.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID.String(),
		Events:      t.EventID.String(),
		Name:        t.Name,
		Description: t.Description,
		Price:       t.Price.InexactFloat64(),
		Quantity:    t.Quantity,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func BannerToResponse(b *entity.Banner) BannerResponse {
	return BannerResponse{
		ID:        b.ID.String(),
		Title:     b.Title,
		Image:     b.Image,
		IsShow:    b.IsShow,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
