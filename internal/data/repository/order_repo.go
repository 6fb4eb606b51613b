package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrStatusChanged means a conditional status update found the order no longer pending.
var ErrStatusChanged = errors.New("order status changed")

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error)
	FindByOrderIDAndUser(ctx context.Context, orderID string, userID uuid.UUID) (*entity.Order, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Order, error)
	Count(ctx context.Context, search string) (int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, orderID string) error

	// State transitions, each guarded by status = 'pending'
	MarkCompleted(ctx context.Context, orderID string, vouchers []entity.Voucher) error
	MarkCancelled(ctx context.Context, orderID string) error
}

type orderRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewOrderRepository(db database.DBTX, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, order_id, created_by, event_id, ticket_id, quantity, total, status,
		       payment_token, payment_redirect_url, vouchers, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		order    entity.Order
		vouchers []byte
	)
	err := row.Scan(
		&order.ID,
		&order.OrderID,
		&order.CreatedBy,
		&order.EventID,
		&order.TicketID,
		&order.Quantity,
		&order.Total,
		&order.Status,
		&order.Payment.Token,
		&order.Payment.RedirectURL,
		&vouchers,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Vouchers = []entity.Voucher{}
	if len(vouchers) > 0 {
		if err := json.Unmarshal(vouchers, &order.Vouchers); err != nil {
			return nil, fmt.Errorf("decode vouchers: %w", err)
		}
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	vouchers, err := json.Marshal(nonNilVouchers(order.Vouchers))
	if err != nil {
		return fmt.Errorf("encode vouchers: %w", err)
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = database.Conn(ctx, r.db).Exec(ctx, query,
		order.ID,
		order.OrderID,
		order.CreatedBy,
		order.EventID,
		order.TicketID,
		order.Quantity,
		order.Total,
		order.Status,
		order.Payment.Token,
		order.Payment.RedirectURL,
		vouchers,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_id", order.OrderID),
			zap.String("user_id", order.CreatedBy.String()),
		)
		return fmt.Errorf("create order %s: %w", order.OrderID, err)
	}

	return nil
}

func (r *orderRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`

	order, err := scanOrder(database.Conn(ctx, r.db).QueryRow(ctx, query, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by order ID", zap.Error(err), zap.String("order_id", orderID))
		return nil, fmt.Errorf("find order by order ID %s: %w", orderID, err)
	}

	return order, nil
}

func (r *orderRepository) FindByOrderIDAndUser(ctx context.Context, orderID string, userID uuid.UUID) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1 AND created_by = $2`

	order, err := scanOrder(database.Conn(ctx, r.db).QueryRow(ctx, query, orderID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by order ID and user",
			zap.Error(err),
			zap.String("order_id", orderID),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find order %s for user %s: %w", orderID, userID.String(), err)
	}

	return order, nil
}

// FindAll matches search as a case-insensitive prefix of the order code
func (r *orderRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR order_id ILIKE $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, likeLiteral(search), limit, offset)
}

func (r *orderRepository) Count(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM orders WHERE ($1 = '' OR order_id ILIKE $1 || '%')`

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, likeLiteral(search)).Scan(&count); err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("count orders: %w", err)
	}

	return count, nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE created_by = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, userID, limit, offset)
}

func (r *orderRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM orders WHERE created_by = $1`

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count orders by user ID", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("count orders by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find orders", zap.Error(err))
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) Delete(ctx context.Context, orderID string) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM orders WHERE order_id = $1`, orderID)
	if err != nil {
		r.log.Error("Failed to delete order", zap.Error(err), zap.String("order_id", orderID))
		return fmt.Errorf("delete order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *orderRepository) MarkCompleted(ctx context.Context, orderID string, vouchers []entity.Voucher) error {
	encoded, err := json.Marshal(nonNilVouchers(vouchers))
	if err != nil {
		return fmt.Errorf("encode vouchers: %w", err)
	}

	query := `
		UPDATE orders
		SET status = $2, vouchers = $3, updated_at = NOW()
		WHERE order_id = $1 AND status = $4
	`

	return r.transition(ctx, "complete", query, orderID, entity.OrderStatusCompleted, encoded, entity.OrderStatusPending)
}

func (r *orderRepository) MarkCancelled(ctx context.Context, orderID string) error {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE order_id = $1 AND status = $3
	`

	return r.transition(ctx, "cancel", query, orderID, entity.OrderStatusCancelled, entity.OrderStatusPending)
}

func (r *orderRepository) transition(ctx context.Context, op, query string, orderID string, args ...any) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, query, append([]any{orderID}, args...)...)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("op", op),
			zap.String("order_id", orderID),
		)
		return fmt.Errorf("%s order %s: %w", op, orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusChanged
	}

	return nil
}

func nonNilVouchers(vouchers []entity.Voucher) []entity.Voucher {
	if vouchers == nil {
		return []entity.Voucher{}
	}
	return vouchers
}
