package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/dto/response"
	"event-ticketing/internal/events"
	"event-ticketing/internal/payment"
	"event-ticketing/pkg/apperror"
	"event-ticketing/pkg/database"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// orderCodeAttempts bounds how many codes are drawn before giving up on a free one.
const orderCodeAttempts = 3

// Caller is whoever acts on an existing order. Admins reach every order,
// anyone else only their own.
type Caller struct {
	UserID uuid.UUID
	Role   string
}

func (c Caller) isAdmin() bool {
	return c.Role == string(entity.RoleAdmin)
}

// OrderService drives an order through pending -> completed | cancel.
// Stock is committed only at completion.
type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	Complete(ctx context.Context, orderID string, caller Caller) (*response.OrderResponse, error)
	Cancel(ctx context.Context, orderID string, caller Caller) (*response.OrderResponse, error)
	Remove(ctx context.Context, orderID string) (*response.OrderResponse, error)

	FindOne(ctx context.Context, orderID string) (*response.OrderResponse, error)
	FindOneForMember(ctx context.Context, orderID string, userID uuid.UUID) (*response.OrderResponse, error)
	FindAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	FindAllByMember(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
}

type orderService struct {
	repo       *repository.Repository
	tx         database.Transactor
	inventory  *InventoryLedger
	vouchers   *VoucherIssuer
	gateway    payment.Gateway
	publisher  events.Publisher
	codeLength int
	newCode    func(length int) (string, error)
	log        *zap.Logger
}

func NewOrderService(
	repo *repository.Repository,
	tx database.Transactor,
	gateway payment.Gateway,
	publisher events.Publisher,
	config utils.OrderConfig,
	log *zap.Logger,
) OrderService {
	return &orderService{
		repo:       repo,
		tx:         tx,
		inventory:  NewInventoryLedger(repo.Ticket, log),
		vouchers:   NewVoucherIssuer(config.CodeLength),
		gateway:    gateway,
		publisher:  publisher,
		codeLength: config.CodeLength,
		newCode:    utils.GenerateCode,
		log:        log.With(zap.String("service", "order")),
	}
}

func (s *orderService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	order, err := s.create(ctx, userID, req)
	if err != nil {
		trackOrderFailure("create", err)
		return nil, err
	}

	ordersCreated.Inc()
	s.publisher.Publish(ctx, events.NewOrderEvent(events.OrderCreated, order))

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) create(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*entity.Order, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("validation failed", errs)
	}

	eventID, err := uuid.Parse(req.Events)
	if err != nil {
		return nil, apperror.Validation("invalid event id", map[string]string{"events": "Must be a valid UUID"})
	}
	ticketID, err := uuid.Parse(req.Ticket)
	if err != nil {
		return nil, apperror.Validation("invalid ticket id", map[string]string{"ticket": "Must be a valid UUID"})
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("load ticket %s: %w", ticketID, err)
	}
	if ticket == nil {
		return nil, apperror.NotFound("ticket not found")
	}
	if ticket.EventID != eventID {
		return nil, apperror.Validation("ticket does not belong to event",
			map[string]string{"ticket": "Ticket does not belong to the given event"})
	}
	if ticket.Quantity < req.Quantity {
		return nil, apperror.InsufficientStock("ticket quantity is not enough")
	}

	// frozen at creation; later price changes do not touch it
	total := ticket.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))

	code, err := s.freeOrderCode(ctx)
	if err != nil {
		return nil, err
	}

	// The gateway is called before anything is written, so a failure leaves no order behind.
	link, err := s.gateway.CreateLink(ctx, code, total)
	if err != nil {
		s.log.Warn("Payment link request failed",
			zap.String("order_id", code),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, apperror.GatewayUnavailable(err)
	}

	order := &entity.Order{
		Base:      entity.NewBase(),
		OrderID:   code,
		CreatedBy: userID,
		EventID:   eventID,
		TicketID:  ticketID,
		Quantity:  req.Quantity,
		Total:     total,
		Status:    entity.OrderStatusPending,
		Payment:   *link,
		Vouchers:  []entity.Voucher{},
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Internal("order code collision", err)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info("Order created",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", userID.String()),
		zap.String("ticket_id", ticketID.String()),
		zap.Int("quantity", order.Quantity),
		zap.String("total", total.String()),
	)

	return order, nil
}

func (s *orderService) freeOrderCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < orderCodeAttempts; attempt++ {
		code, err := s.newCode(s.codeLength)
		if err != nil {
			return "", fmt.Errorf("generate order code: %w", err)
		}

		existing, err := s.repo.Order.FindByOrderID(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check order code: %w", err)
		}
		if existing == nil {
			return code, nil
		}

		s.log.Warn("Order code already taken", zap.String("order_id", code), zap.Int("attempt", attempt+1))
	}

	return "", apperror.Internal("could not allocate an order code", nil)
}

func (s *orderService) Complete(ctx context.Context, orderID string, caller Caller) (*response.OrderResponse, error) {
	order, err := s.complete(ctx, orderID, caller)
	if err != nil {
		trackOrderFailure("complete", err)
		return nil, err
	}

	ordersCompleted.Inc()
	ticketsSold.Add(float64(order.Quantity))
	s.publisher.Publish(ctx, events.NewOrderEvent(events.OrderCompleted, order))

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) complete(ctx context.Context, orderID string, caller Caller) (*entity.Order, error) {
	order, err := s.findPending(ctx, orderID, caller)
	if err != nil {
		return nil, err
	}

	ok, err := s.inventory.CheckAvailable(ctx, order.TicketID, order.Quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.InsufficientStock("ticket quantity is not enough")
	}

	vouchers, err := s.vouchers.Issue(order.Quantity)
	if err != nil {
		return nil, fmt.Errorf("issue vouchers: %w", err)
	}

	// Stock and order move together or not at all.
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.inventory.Decrement(ctx, order.TicketID, order.Quantity); err != nil {
			return err
		}

		if err := s.repo.Order.MarkCompleted(ctx, order.OrderID, vouchers); err != nil {
			if errors.Is(err, repository.ErrStatusChanged) {
				return apperror.Conflict("order is no longer pending")
			}
			return fmt.Errorf("mark order completed: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Order completion failed",
			zap.String("order_id", orderID),
			zap.String("user_id", caller.UserID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	order.Status = entity.OrderStatusCompleted
	order.Vouchers = vouchers
	order.UpdatedAt = time.Now().UTC()

	s.log.Info("Order completed",
		zap.String("order_id", order.OrderID),
		zap.String("by", caller.UserID.String()),
		zap.String("ticket_id", order.TicketID.String()),
		zap.Int("quantity", order.Quantity),
	)

	return order, nil
}

func (s *orderService) Cancel(ctx context.Context, orderID string, caller Caller) (*response.OrderResponse, error) {
	order, err := s.cancel(ctx, orderID, caller)
	if err != nil {
		trackOrderFailure("cancel", err)
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewOrderEvent(events.OrderCancelled, order))

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) cancel(ctx context.Context, orderID string, caller Caller) (*entity.Order, error) {
	order, err := s.findPending(ctx, orderID, caller)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Order.MarkCancelled(ctx, order.OrderID); err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, apperror.Conflict("order is no longer pending")
		}
		return nil, fmt.Errorf("mark order cancelled: %w", err)
	}

	order.Status = entity.OrderStatusCancelled
	order.UpdatedAt = time.Now().UTC()

	s.log.Info("Order cancelled",
		zap.String("order_id", order.OrderID),
		zap.String("by", caller.UserID.String()),
	)

	return order, nil
}

// findPending hides other members' orders behind NotFound.
func (s *orderService) findPending(ctx context.Context, orderID string, caller Caller) (*entity.Order, error) {
	var (
		order *entity.Order
		err   error
	)
	if caller.isAdmin() {
		order, err = s.repo.Order.FindByOrderID(ctx, orderID)
	} else {
		order, err = s.repo.Order.FindByOrderIDAndUser(ctx, orderID, caller.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", orderID, err)
	}
	if order == nil {
		return nil, apperror.NotFound("order not found")
	}

	switch order.Status {
	case entity.OrderStatusPending:
		return order, nil
	case entity.OrderStatusCompleted:
		return nil, apperror.Conflict("order already completed")
	case entity.OrderStatusCancelled:
		return nil, apperror.Conflict("order already cancelled")
	default:
		return nil, apperror.Internal(fmt.Sprintf("order %s has unknown status %q", orderID, order.Status), nil)
	}
}

func (s *orderService) Remove(ctx context.Context, orderID string) (*response.OrderResponse, error) {
	order, err := s.repo.Order.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", orderID, err)
	}
	if order == nil {
		return nil, apperror.NotFound("order not found")
	}

	if err := s.repo.Order.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("order not found")
		}
		return nil, fmt.Errorf("delete order %s: %w", orderID, err)
	}

	s.log.Info("Order removed", zap.String("order_id", orderID))

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) FindOne(ctx context.Context, orderID string) (*response.OrderResponse, error) {
	order, err := s.repo.Order.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", orderID, err)
	}
	if order == nil {
		return nil, apperror.NotFound("order not found")
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) FindOneForMember(ctx context.Context, orderID string, userID uuid.UUID) (*response.OrderResponse, error) {
	order, err := s.repo.Order.FindByOrderIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", orderID, err)
	}
	if order == nil {
		return nil, apperror.NotFound("order not found")
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) FindAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindAll(ctx, req.Search, req.PerPage(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}

	total, err := s.repo.Order.Count(ctx, req.Search)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	return response.NewPaginatedResponse(ordersToResponse(orders), req.CurrentPage(), req.PerPage(), total), nil
}

func (s *orderService) FindAllByMember(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindByUserID(ctx, userID, req.PerPage(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find orders of user %s: %w", userID, err)
	}

	total, err := s.repo.Order.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count orders of user %s: %w", userID, err)
	}

	return response.NewPaginatedResponse(ordersToResponse(orders), req.CurrentPage(), req.PerPage(), total), nil
}

func ordersToResponse(orders []*entity.Order) []response.OrderResponse {
	out := make([]response.OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = response.OrderToResponse(o)
	}
	return out
}
