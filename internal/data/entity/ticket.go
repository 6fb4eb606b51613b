package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket is a purchasable tier of an event. Quantity is the remaining stock.
type Ticket struct {
	Base
	EventID     uuid.UUID       `db:"event_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Quantity    int             `db:"quantity"`
}
