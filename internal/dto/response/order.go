package response

import (
	"time"

	"event-ticketing/internal/data/entity"
)

type PaymentResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

type VoucherResponse struct {
	VoucherID string `json:"voucherId"`
	IsPrint   bool   `json:"isPrint"`
}

type OrderResponse struct {
	ID        string             `json:"id"`
	OrderID   string             `json:"orderId"`
	CreatedBy string             `json:"createdBy"`
	Events    string             `json:"events"`
	Ticket    string             `json:"ticket"`
	Quantity  int                `json:"quantity"`
	Total     float64            `json:"total"`
	Status    entity.OrderStatus `json:"status"`
	Payment   PaymentResponse    `json:"payment"`
	Vouchers  []VoucherResponse  `json:"vouchers"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func OrderToResponse(o *entity.Order) OrderResponse {
	vouchers := make([]VoucherResponse, len(o.Vouchers))
	for i, v := range o.Vouchers {
		vouchers[i] = VoucherResponse{VoucherID: v.VoucherID, IsPrint: v.IsPrint}
	}

	return OrderResponse{
		ID:        o.ID.String(),
		OrderID:   o.OrderID,
		CreatedBy: o.CreatedBy.String(),
		Events:    o.EventID.String(),
		Ticket:    o.TicketID.String(),
		Quantity:  o.Quantity,
		Total:     o.Total.InexactFloat64(),
		Status:    o.Status,
		Payment: PaymentResponse{
			Token:       o.Payment.Token,
			RedirectURL: o.Payment.RedirectURL,
		},
		Vouchers:  vouchers,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
