package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancel"
)

// Voucher is one admission unit issued when an order completes.
type Voucher struct {
	VoucherID string `json:"voucherId"`
	IsPrint   bool   `json:"isPrint"`
}

// PaymentLink is what the gateway hands back for the customer to pay.
type PaymentLink struct {
	Token       string `db:"payment_token"`
	RedirectURL string `db:"payment_redirect_url"`
}

type Order struct {
	Base
	OrderID   string          `db:"order_id"`
	CreatedBy uuid.UUID       `db:"created_by"`
	EventID   uuid.UUID       `db:"event_id"`
	TicketID  uuid.UUID       `db:"ticket_id"`
	Quantity  int             `db:"quantity"`
	Total     decimal.Decimal `db:"total"`
	Status    OrderStatus     `db:"status"`
	Payment   PaymentLink
	Vouchers  []Voucher `db:"vouchers"`
}
