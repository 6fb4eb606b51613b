package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/events"
	"event-ticketing/internal/payment"
	"event-ticketing/pkg/apperror"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderFixture struct {
	svc       *orderService
	store     *memStore
	orders    *memOrders
	publisher *recordingPublisher
	eventID   uuid.UUID
	member    uuid.UUID
	owner     Caller
	admin     Caller
}

func newOrderFixture(t *testing.T, gateway payment.Gateway) *orderFixture {
	t.Helper()

	store := newMemStore()
	orders := &memOrders{store: store}
	repo := &repository.Repository{
		Ticket: &memTickets{store: store},
		Order:  orders,
	}
	publisher := &recordingPublisher{}

	svc, ok := NewOrderService(repo, &memTx{store: store}, gateway, publisher,
		utils.OrderConfig{CodeLength: 5}, zap.NewNop()).(*orderService)
	require.True(t, ok)

	var seq atomic.Int64
	svc.newCode = func(int) (string, error) {
		return fmt.Sprintf("ORD%02d", seq.Add(1)), nil
	}

	member := uuid.New()
	return &orderFixture{
		svc:       svc,
		store:     store,
		orders:    orders,
		publisher: publisher,
		eventID:   uuid.New(),
		member:    member,
		owner:     Caller{UserID: member, Role: string(entity.RoleMember)},
		admin:     Caller{UserID: uuid.New(), Role: string(entity.RoleAdmin)},
	}
}

func (f *orderFixture) create(t *testing.T, ticket entity.Ticket, quantity int) string {
	t.Helper()

	resp, err := f.svc.Create(context.Background(), f.member, &request.CreateOrderRequest{
		Events:   ticket.EventID.String(),
		Ticket:   ticket.ID.String(),
		Quantity: quantity,
	})
	require.NoError(t, err)
	return resp.OrderID
}

func TestOrderService_Create(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 150000, 10)

	resp, err := f.svc.Create(context.Background(), f.member, &request.CreateOrderRequest{
		Events:   f.eventID.String(),
		Ticket:   ticket.ID.String(),
		Quantity: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "ORD01", resp.OrderID)
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.Equal(t, float64(450000), resp.Total)
	assert.Equal(t, "token-ORD01", resp.Payment.Token)
	assert.Empty(t, resp.Vouchers)

	// stock is only committed at completion
	assert.Equal(t, 10, f.store.stock(ticket.ID))
	assert.Equal(t, []events.Type{events.OrderCreated}, f.publisher.types())
}

func TestOrderService_Create_TotalFrozenAtCreation(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 100000, 10)

	orderID := f.create(t, ticket, 2)
	f.store.setPrice(ticket.ID, 250000)

	resp, err := f.svc.FindOne(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, float64(200000), resp.Total)

	completed, err := f.svc.Complete(context.Background(), orderID, f.owner)
	require.NoError(t, err)
	assert.Equal(t, float64(200000), completed.Total)
}

func TestOrderService_Create_Rejected(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 50000, 2)

	tests := []struct {
		name string
		req  *request.CreateOrderRequest
		kind apperror.Kind
	}{
		{
			name: "quantity above stock",
			req:  &request.CreateOrderRequest{Events: f.eventID.String(), Ticket: ticket.ID.String(), Quantity: 3},
			kind: apperror.KindInsufficientStock,
		},
		{
			name: "zero quantity",
			req:  &request.CreateOrderRequest{Events: f.eventID.String(), Ticket: ticket.ID.String(), Quantity: 0},
			kind: apperror.KindValidation,
		},
		{
			name: "unknown ticket",
			req:  &request.CreateOrderRequest{Events: f.eventID.String(), Ticket: uuid.NewString(), Quantity: 1},
			kind: apperror.KindNotFound,
		},
		{
			name: "ticket of another event",
			req:  &request.CreateOrderRequest{Events: uuid.NewString(), Ticket: ticket.ID.String(), Quantity: 1},
			kind: apperror.KindValidation,
		},
		{
			name: "malformed ids",
			req:  &request.CreateOrderRequest{Events: "x", Ticket: "y", Quantity: 1},
			kind: apperror.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), f.member, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}

	assert.Zero(t, f.store.orderCount())
	assert.Empty(t, f.publisher.types())
}

func TestOrderService_Create_GatewayFailureLeavesNoOrder(t *testing.T) {
	f := newOrderFixture(t, gatewayFunc(func(context.Context, string, decimal.Decimal) (*entity.PaymentLink, error) {
		return nil, fmt.Errorf("%w: status 500", payment.ErrGatewayUnavailable)
	}))
	ticket := f.store.addTicket(f.eventID, 50000, 5)

	_, err := f.svc.Create(context.Background(), f.member, &request.CreateOrderRequest{
		Events:   f.eventID.String(),
		Ticket:   ticket.ID.String(),
		Quantity: 1,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindGatewayUnavailable, apperror.KindOf(err))
	assert.ErrorIs(t, err, payment.ErrGatewayUnavailable)
	assert.Zero(t, f.store.orderCount())
}

func TestOrderService_Create_SkipsTakenCode(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 50000, 5)

	first := f.create(t, ticket, 1)

	codes := []string{first, first, "FRESH"}
	var i int
	f.svc.newCode = func(int) (string, error) {
		code := codes[i]
		i++
		return code, nil
	}

	second := f.create(t, ticket, 1)
	assert.Equal(t, "FRESH", second)
}

func TestOrderService_Create_NoFreeCode(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 50000, 5)

	taken := f.create(t, ticket, 1)
	f.svc.newCode = func(int) (string, error) { return taken, nil }

	_, err := f.svc.Create(context.Background(), f.member, &request.CreateOrderRequest{
		Events:   f.eventID.String(),
		Ticket:   ticket.ID.String(),
		Quantity: 1,
	})
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.Equal(t, 1, f.store.orderCount())
}

func TestOrderService_Complete(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 75000, 5)
	orderID := f.create(t, ticket, 3)

	resp, err := f.svc.Complete(context.Background(), orderID, f.owner)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, resp.Status)
	require.Len(t, resp.Vouchers, 3)
	seen := map[string]bool{}
	for _, v := range resp.Vouchers {
		assert.Len(t, v.VoucherID, 5)
		assert.False(t, v.IsPrint)
		assert.False(t, seen[v.VoucherID], "duplicate voucher %s", v.VoucherID)
		seen[v.VoucherID] = true
	}

	assert.Equal(t, 2, f.store.stock(ticket.ID))
	stored, _ := f.store.order(orderID)
	assert.Equal(t, entity.OrderStatusCompleted, stored.Status)
	assert.Len(t, stored.Vouchers, 3)
	assert.Equal(t, []events.Type{events.OrderCreated, events.OrderCompleted}, f.publisher.types())
}

func TestOrderService_Complete_Twice(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 75000, 5)
	orderID := f.create(t, ticket, 2)

	_, err := f.svc.Complete(context.Background(), orderID, f.owner)
	require.NoError(t, err)

	_, err = f.svc.Complete(context.Background(), orderID, f.owner)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, 3, f.store.stock(ticket.ID))
}

func TestOrderService_Complete_PendingOrdersCompeteForStock(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 75000, 5)

	first := f.create(t, ticket, 3)
	second := f.create(t, ticket, 3)

	resp, err := f.svc.Complete(context.Background(), first, f.owner)
	require.NoError(t, err)
	assert.Len(t, resp.Vouchers, 3)
	assert.Equal(t, 2, f.store.stock(ticket.ID))

	_, err = f.svc.Complete(context.Background(), second, f.owner)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInsufficientStock, apperror.KindOf(err))

	stored, _ := f.store.order(second)
	assert.Equal(t, entity.OrderStatusPending, stored.Status)
	assert.Empty(t, stored.Vouchers)
	assert.Equal(t, 2, f.store.stock(ticket.ID))
}

func TestOrderService_Complete_RollsBackStockWhenTransitionFails(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 75000, 5)
	orderID := f.create(t, ticket, 2)

	f.orders.markCompletedErr = repository.ErrStatusChanged

	_, err := f.svc.Complete(context.Background(), orderID, f.owner)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, 5, f.store.stock(ticket.ID))

	f.orders.markCompletedErr = errors.New("connection reset")
	_, err = f.svc.Complete(context.Background(), orderID, f.owner)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.Equal(t, 5, f.store.stock(ticket.ID))
}

func TestOrderService_Complete_ConcurrentNeverOversells(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 75000, 10)

	const orders = 8
	ids := make([]string, orders)
	for i := range ids {
		ids[i] = f.create(t, ticket, 3)
	}

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int64
		rejected  atomic.Int64
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.svc.Complete(context.Background(), id, f.owner)
			switch {
			case err == nil:
				succeeded.Add(1)
			case apperror.Is(err, apperror.KindInsufficientStock):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error for %s: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	assert.EqualValues(t, 3, succeeded.Load())
	assert.EqualValues(t, orders-3, rejected.Load())
	assert.Equal(t, 1, f.store.stock(ticket.ID))
	assert.GreaterOrEqual(t, f.store.stock(ticket.ID), 0)
}

func TestOrderService_Complete_OtherMembersOrder(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 75000, 5)
	orderID := f.create(t, ticket, 1)

	_, err := f.svc.Complete(context.Background(), orderID, Caller{UserID: uuid.New(), Role: string(entity.RoleMember)})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, 5, f.store.stock(ticket.ID))
}

func TestOrderService_Complete_ByAdmin(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 75000, 5)
	orderID := f.create(t, ticket, 2)

	resp, err := f.svc.Complete(context.Background(), orderID, f.admin)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, resp.Status)
	assert.Equal(t, f.member.String(), resp.CreatedBy)
	assert.Len(t, resp.Vouchers, 2)
	assert.Equal(t, 3, f.store.stock(ticket.ID))

	_, err = f.svc.Complete(context.Background(), "NOPE1", f.admin)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestOrderService_Cancel_ByAdmin(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 75000, 5)
	orderID := f.create(t, ticket, 2)

	resp, err := f.svc.Cancel(context.Background(), orderID, f.admin)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)
	assert.Equal(t, 5, f.store.stock(ticket.ID))
}

func TestOrderService_Cancel(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 75000, 5)
	orderID := f.create(t, ticket, 2)

	resp, err := f.svc.Cancel(context.Background(), orderID, f.owner)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)
	assert.Equal(t, 5, f.store.stock(ticket.ID))

	_, err = f.svc.Complete(context.Background(), orderID, f.owner)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, 5, f.store.stock(ticket.ID))
}

func TestOrderService_Cancel_Completed(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 75000, 5)
	orderID := f.create(t, ticket, 2)

	_, err := f.svc.Complete(context.Background(), orderID, f.owner)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), orderID, f.owner)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, 3, f.store.stock(ticket.ID))

	stored, _ := f.store.order(orderID)
	assert.Equal(t, entity.OrderStatusCompleted, stored.Status)
}

func TestOrderService_Remove(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 75000, 5)
	orderID := f.create(t, ticket, 1)

	resp, err := f.svc.Remove(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, resp.OrderID)
	assert.Zero(t, f.store.orderCount())

	_, err = f.svc.Remove(context.Background(), orderID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestOrderService_FindOneForMember(t *testing.T) {
	f := newOrderFixture(t, okGateway())
	ticket := f.store.addTicket(f.eventID, 75000, 5)
	orderID := f.create(t, ticket, 1)

	resp, err := f.svc.FindOneForMember(context.Background(), orderID, f.member)
	require.NoError(t, err)
	assert.Equal(t, f.member.String(), resp.CreatedBy)

	_, err = f.svc.FindOneForMember(context.Background(), orderID, uuid.New())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.svc.FindOne(context.Background(), "NOPE1")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
