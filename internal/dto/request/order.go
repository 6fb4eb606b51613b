package request

type CreateOrderRequest struct {
	Events   string `json:"events" validate:"required,uuid"`
	Ticket   string `json:"ticket" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}
